// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package kmod

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestCanonical(t *testing.T) {
	for _, x := range []struct{ name, want string }{
		{"sonic-support-driver", "sonic_support_driver"},
		{"/lib/modules/crow-fan-driver.ko", "crow_fan_driver"},
		{"i2c-dev", "i2c_dev"},
		{"eeprom", "eeprom"},
	} {
		if got := Canonical(x.name); got != x.want {
			t.Errorf("%q != %q", got, x.want)
		}
	}
}

func TestIsFile(t *testing.T) {
	if IsFile("scd") {
		t.Error("scd is a module name")
	}
	if !IsFile("http://host/scd.ko") || !IsFile("./scd.ko") {
		t.Error("expected module image")
	}
}

func TestLoaded(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "modules")
	err := os.WriteFile(fn, []byte(
		"i2c_dev 20480 0 - Live 0x0000000000000000\n"+
			"eeprom 16384 0 - Live 0x0000000000000000\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}
	save := ProcModules
	defer func() { ProcModules = save }()
	ProcModules = fn
	if !Loaded("i2c-dev") {
		t.Error("i2c-dev not loaded")
	}
	if Loaded("scd") {
		t.Error("scd loaded")
	}
}

func TestSim(t *testing.T) {
	sim := &Sim{Fail: map[string]error{"bad": errors.New("bad")}}
	sim.Load("eeprom")
	sim.Load("i2c-dev")
	sim.Load("scd", "debug=1")
	sim.Load("eeprom")
	if err := sim.Load("bad"); err == nil {
		t.Error("expected failure")
	}
	sim.Unload("i2c-dev")
	if got, want := sim.Loaded(), []string{"eeprom", "scd"}; !reflect.DeepEqual(got, want) {
		t.Errorf("%v != %v", got, want)
	}
	if sim.Log[2] != "load scd debug=1" {
		t.Error(sim.Log[2])
	}
	if n := len(sim.Log); n != 6 {
		t.Error("log", sim.Log)
	}
}

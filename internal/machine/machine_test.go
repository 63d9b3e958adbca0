// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package machine

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/platinasystems/scd/internal/cmdline"
	"github.com/platinasystems/scd/internal/config"
	"github.com/platinasystems/scd/internal/platform"
	"github.com/platinasystems/scd/internal/scd"
)

func isolate(t *testing.T) string {
	dir := t.TempDir()
	cl, fn := cmdline.File, config.File
	t.Cleanup(func() { cmdline.File, config.File = cl, fn })
	cmdline.File = filepath.Join(dir, "cmdline")
	config.File = filepath.Join(dir, "goes-arista.yaml")
	return dir
}

func TestOpen(t *testing.T) {
	isolate(t)
	m, flag, args, err := Open([]string{"-sku", "DCS-7260CX3-64",
		"-reset", "-driver", "scd-hwmon", "extra"}, "-reset")
	if err != nil {
		t.Fatal(err)
	}
	if !flag.ByName["-reset"] || !reflect.DeepEqual(args, []string{"extra"}) {
		t.Error(flag.ByName, args)
	}
	if !m.Env.Simulation || m.Sim == nil || m.Env.Scd != scd.Hwmon {
		t.Errorf("%+v", m.Env)
	}
	sku, p, err := m.Platform()
	if err != nil {
		t.Fatal(err)
	}
	if sku != "DCS-7260CX3-64" || p.Name != "Gardena" {
		t.Error(sku, p.Name)
	}
	if s := scd.Find(p); len(s) != 1 || s[0].Driver != scd.Hwmon {
		t.Error("driver not applied")
	}
}

func TestPrecedence(t *testing.T) {
	dir := isolate(t)
	os.WriteFile(cmdline.File, []byte("Aboot=x\n"), 0644)
	os.WriteFile(config.File, []byte("sku: DCS-7060CX-32S\n"), 0644)
	flag, parm, _ := Parse(nil)
	cfg, err := Configure(flag, parm)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.IsSimulation() || cfg.Sku != "DCS-7060CX-32S" {
		t.Errorf("%+v", cfg)
	}

	fn := filepath.Join(dir, "other.yaml")
	os.WriteFile(fn, []byte("simulation: false\nsku: DCS-7050QX-32\n"), 0644)
	flag, parm, _ = Parse([]string{"-config", fn, "-simulate"})
	if cfg, err = Configure(flag, parm); err != nil {
		t.Fatal(err)
	}
	if !cfg.IsSimulation() || cfg.Sku != "DCS-7050QX-32" {
		t.Errorf("%+v", cfg)
	}

	flag, parm, _ = Parse([]string{"-config", filepath.Join(dir, "nope")})
	if _, err = Configure(flag, parm); err == nil {
		t.Error("missing -config file accepted")
	}
}

func TestUnknownSku(t *testing.T) {
	isolate(t)
	m, _, _, err := Open(nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err = m.Platform(); !errors.Is(err, platform.ErrNotFound) {
		t.Error(err)
	}
}

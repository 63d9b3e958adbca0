// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cmdline

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	m := Parse("console=ttyS0,9600n8 Aboot=Aboot-norcal6-6.1.2 quiet " +
		"arista-debug platform='raven x' sid=\"Clearlake\"\n")
	want := Cmdline{
		"console":      "ttyS0,9600n8",
		"Aboot":        "Aboot-norcal6-6.1.2",
		"quiet":        "true",
		"arista-debug": "true",
		"platform":     "raven x",
		"sid":          "Clearlake",
	}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("%v != %v", m, want)
	}
	if !m.Has(Aboot) || !m.Has(Debug) || m.Has("single") {
		t.Error("Has")
	}
	s := "Aboot=Aboot-norcal6-6.1.2 arista-debug console=ttyS0,9600n8 " +
		"platform='raven x' quiet sid=Clearlake"
	if m.String() != s {
		t.Error(m.String())
	}
}

func TestRead(t *testing.T) {
	defer func(fn string) { File = fn }(File)
	File = filepath.Join(t.TempDir(), "cmdline")
	if _, err := Read(); err == nil {
		t.Error("read missing", File)
	}
	if err := os.WriteFile(File, []byte("Aboot=x\n"), 0644); err != nil {
		t.Fatal(err)
	}
	m, err := Read()
	if err != nil {
		t.Fatal(err)
	}
	if m["Aboot"] != "x" {
		t.Error(m)
	}
}

// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/platinasystems/scd/internal/cmdline"
)

func TestDefault(t *testing.T) {
	c := Default()
	if !c.IsSimulation() || c.Debug || c.Hash != DefaultHash {
		t.Errorf("%+v", c)
	}
	c.Cmdline(cmdline.Parse("Aboot=Aboot-norcal6 arista-debug"))
	if c.IsSimulation() || !c.Debug {
		t.Errorf("%+v", c)
	}
}

func TestDecode(t *testing.T) {
	c := Default()
	c.Cmdline(cmdline.Parse("Aboot=x"))
	err := c.Decode(strings.NewReader(`
simulation: true
sku: DCS-7060CX-32S
driver: scd-hwmon
eeprom:
  - /tmp/eeprom
`))
	if err != nil {
		t.Fatal(err)
	}
	if !c.IsSimulation() || c.Sku != "DCS-7060CX-32S" ||
		c.Driver != "scd-hwmon" || len(c.Eeprom) != 1 {
		t.Errorf("%+v", c)
	}
	if c.Hash != DefaultHash {
		t.Error("hash overwritten:", c.Hash)
	}
	if err = c.Decode(strings.NewReader("")); err != nil {
		t.Error(err)
	}
	if err = c.Decode(strings.NewReader("sku: [")); err == nil {
		t.Error("bad yaml decoded")
	}
}

func TestLoad(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "goes-arista.yaml")
	c := Default()
	if err := c.Load(fn); !os.IsNotExist(err) {
		t.Error(err)
	}
	if err := os.WriteFile(fn, []byte("simulation: false\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := c.Load(fn); err != nil {
		t.Fatal(err)
	}
	if c.IsSimulation() {
		t.Error("still simulated")
	}
	buf := new(bytes.Buffer)
	if _, err := c.WriteTo(buf); err != nil {
		t.Fatal(err)
	}
	if s := buf.String(); !strings.Contains(s, "simulation: false") {
		t.Error(s)
	}
}

func TestNew(t *testing.T) {
	dir := t.TempDir()
	defer func(cl, fn string) {
		cmdline.File, File = cl, fn
	}(cmdline.File, File)
	cmdline.File = filepath.Join(dir, "cmdline")
	File = filepath.Join(dir, "missing.yaml")
	os.WriteFile(cmdline.File, []byte("Aboot=x arista-debug\n"), 0644)
	c, err := New("")
	if err != nil {
		t.Fatal(err)
	}
	if c.IsSimulation() || !c.Debug {
		t.Errorf("%+v", c)
	}
	if _, err = New(File); err == nil {
		t.Error("missing named file accepted")
	}
	fn := filepath.Join(dir, "sim.yaml")
	os.WriteFile(fn, []byte("simulation: true\n"), 0644)
	if c, err = New(fn); err != nil || !c.IsSimulation() || !c.Debug {
		t.Errorf("%+v %v", c, err)
	}
}

// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package device

import (
	"errors"
	"reflect"
	"testing"

	"github.com/platinasystems/scd/internal/component"
	"github.com/platinasystems/scd/internal/hal"
	"github.com/platinasystems/scd/internal/hw"
	"github.com/platinasystems/scd/internal/sysfs"
)

func TestPci(t *testing.T) {
	p := NewPci(hw.PciAddr{Bus: 2})
	if got, want := p.SysfsPath(), "/sys/bus/pci/devices/0000:02:00.0"; got != want {
		t.Errorf("%q != %q", got, want)
	}
	d := NewPciKernel(p, hal.Simulated(), "scd")
	if d.SysfsPath() != p.SysfsPath() {
		t.Error(d.SysfsPath())
	}
	if s := d.String(); s != "PciKernelDriver(module=scd, addr=0000:02:00.0)" {
		t.Error(s)
	}
}

func TestI2cKernel(t *testing.T) {
	sim := hal.NewSim()
	c := NewI2cKernel(sim.Env(), hw.I2cAddr{Bus: 3, Address: 0x4e}, "pmbus")
	if err := component.Up(c); err != nil {
		t.Fatal(err)
	}
	want := sysfs.Attrs{
		{Name: "/sys/bus/i2c/devices/i2c-3/new_device", Value: "pmbus 0x4e"},
	}
	if got := sim.Sysfs.Writes(); !reflect.DeepEqual(got, want) {
		t.Errorf("%v != %v", got, want)
	}
	if got, want := sim.Modules.Log, []string{"load pmbus"}; !reflect.DeepEqual(got, want) {
		t.Errorf("%v != %v", got, want)
	}
}

func TestI2cKernelChipModule(t *testing.T) {
	sim := hal.NewSim()
	for _, c := range []*I2cKernel{
		NewI2cKernel(sim.Env(), hw.I2cAddr{Bus: 2, Address: 0x4c}, "max6658"),
		NewI2cKernel(sim.Env(), hw.I2cAddr{Bus: 3, Address: 0x4e}, "ucd90120"),
		NewI2cKernel(sim.Env(), hw.I2cAddr{Bus: 10, Address: 0x50}, "sff8436"),
		NewI2cKernelModule(sim.Env(), hw.I2cAddr{Bus: 5, Address: 0x50},
			"24c02", "at24"),
	} {
		if err := component.Up(c); err != nil {
			t.Fatal(err)
		}
	}
	want := []string{"load lm90", "load ucd9000", "load sff_8436_eeprom",
		"load at24"}
	if got := sim.Modules.Log; !reflect.DeepEqual(got, want) {
		t.Errorf("%v != %v", got, want)
	}
}

func TestI2cKernelLoadFailure(t *testing.T) {
	sim := hal.NewSim()
	errLoad := errors.New("no such module")
	sim.Modules.Fail = map[string]error{"pmbus": errLoad}
	c := NewI2cKernel(sim.Env(), hw.I2cAddr{Bus: 5, Address: 0x58}, "pmbus")
	if err := component.Up(c); !errors.Is(err, errLoad) {
		t.Errorf("%v != %v", err, errLoad)
	}
	if n := len(sim.Sysfs.Writes()); n != 0 {
		t.Error("client instantiated", sim.Sysfs.Writes())
	}
}

func TestI2cKernelExisting(t *testing.T) {
	sim := hal.NewSim()
	sim.Sysfs.Set("/sys/bus/i2c/devices/2-004c/name", "max6658")
	c := NewI2cKernel(sim.Env(), hw.I2cAddr{Bus: 2, Address: 0x4c},
		"max6658")
	if err := c.Setup(); err != nil {
		t.Fatal(err)
	}
	if n := len(sim.Sysfs.Writes()); n != 0 {
		t.Error("unexpected writes", sim.Sysfs.Writes())
	}
	if err := c.Clean(); err != nil {
		t.Fatal(err)
	}
	want := sysfs.Attrs{
		{Name: "/sys/bus/i2c/devices/i2c-2/delete_device", Value: "0x4c"},
	}
	if got := sim.Sysfs.Writes(); !reflect.DeepEqual(got, want) {
		t.Errorf("%v != %v", got, want)
	}
}

// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package device provides the generic PCI and I2C component kinds and
// their kernel drivers.
package device

import (
	"fmt"
	"path/filepath"

	"github.com/platinasystems/log"
	"github.com/platinasystems/scd/internal/component"
	"github.com/platinasystems/scd/internal/driver"
	"github.com/platinasystems/scd/internal/hal"
	"github.com/platinasystems/scd/internal/hw"
)

const (
	PciDevices = "/sys/bus/pci/devices"
	I2cDevices = "/sys/bus/i2c/devices"
)

type Pci struct {
	component.Component
	Addr hw.PciAddr
}

func NewPci(addr hw.PciAddr) *Pci { return &Pci{Addr: addr} }

func (p *Pci) SysfsPath() string {
	return filepath.Join(PciDevices, p.Addr.String())
}

func (p *Pci) String() string {
	return component.Format("PciComponent", "addr", p.Addr)
}

// PciKernel is a module bound to a PCI function.
type PciKernel struct {
	driver.Kernel
	Owner *Pci
}

func NewPciKernel(owner *Pci, env hal.Env, module string,
	params ...string) *PciKernel {
	return &PciKernel{
		Kernel: driver.Kernel{Env: env, Module: module, Params: params},
		Owner:  owner,
	}
}

func (d *PciKernel) SysfsPath() string { return d.Owner.SysfsPath() }

func (d *PciKernel) String() string {
	return component.Format("PciKernelDriver", "module", d.Module,
		"addr", d.Owner.Addr)
}

type I2c struct {
	component.Component
	Addr hw.I2cAddr
}

func NewI2c(addr hw.I2cAddr) *I2c { return &I2c{Addr: addr} }

// SysfsPath is the client directory, e.g. /sys/bus/i2c/devices/3-0060.
func (c *I2c) SysfsPath() string {
	return filepath.Join(I2cDevices, c.Addr.String())
}

// BusPath is the adapter directory, e.g. /sys/bus/i2c/devices/i2c-3.
func (c *I2c) BusPath() string {
	return filepath.Join(I2cDevices, fmt.Sprint("i2c-", c.Addr.Bus))
}

func (c *I2c) String() string {
	return component.Format("I2cComponent", "addr", c.Addr)
}

// ChipModules maps chip names to the module that drives them when the two
// differ.
var ChipModules = map[string]string{
	"crow_cpld": "crow-fan-driver",
	"max6658":   "lm90",
	"sff8436":   "sff_8436_eeprom",
	"ucd90120":  "ucd9000",
}

// ChipModule returns the module that drives the named chip.
func ChipModule(name string) string {
	if module, found := ChipModules[name]; found {
		return module
	}
	return name
}

// I2cKernel is an i2c client the kernel drives once instantiated by
// chip name.
type I2cKernel struct {
	I2c
	Name string
}

func NewI2cKernel(env hal.Env, addr hw.I2cAddr, name string) *I2cKernel {
	return NewI2cKernelModule(env, addr, name, ChipModule(name))
}

// NewI2cKernelModule is NewI2cKernel with an explicit driving module.
func NewI2cKernelModule(env hal.Env, addr hw.I2cAddr, name,
	module string) *I2cKernel {
	c := &I2cKernel{I2c: I2c{Addr: addr}, Name: name}
	c.AddDriver(&I2cKernelDriver{
		Kernel: driver.Kernel{Env: env, Module: module},
		Owner:  c,
	})
	return c
}

func (c *I2cKernel) String() string {
	return component.Format("I2cKernelComponent", "addr", c.Addr,
		"name", c.Name)
}

// I2cKernelDriver loads the chip module then instantiates its owner
// through the adapter's new_device file unless the client already
// exists. Clean removes the client through delete_device and leaves the
// module loaded since other clients may share it.
type I2cKernelDriver struct {
	driver.Kernel
	Owner *I2cKernel
}

func (d *I2cKernelDriver) Setup() error {
	if err := d.Kernel.Setup(); err != nil {
		return err
	}
	c := d.Owner
	if d.Env.Sysfs.Exists(c.SysfsPath()) {
		log.Print("debug", c.SysfsPath(), " already exists")
		return nil
	}
	return d.Env.Sysfs.WriteFile(filepath.Join(c.BusPath(), "new_device"),
		fmt.Sprintf("%s 0x%02x", c.Name, c.Addr.Address))
}

func (d *I2cKernelDriver) Clean() error {
	c := d.Owner
	if !d.Env.Sysfs.Exists(c.SysfsPath()) {
		return nil
	}
	return d.Env.Sysfs.WriteFile(filepath.Join(c.BusPath(), "delete_device"),
		fmt.Sprintf("0x%02x", c.Addr.Address))
}

func (d *I2cKernelDriver) String() string {
	return component.Format("I2cKernelDriver", "name", d.Owner.Name,
		"module", d.Module)
}

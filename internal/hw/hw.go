// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package hw provides the addressing types used to describe a switch
// board: PCI functions, I2C clients and the GPIO lines of an SCD.
package hw

import (
	"fmt"
	"strings"
)

type PciAddr struct {
	Domain uint16
	Bus    uint8
	Device uint8
	Func   uint8
}

func (a PciAddr) String() string {
	return fmt.Sprintf("%04x:%02x:%02x.%01x",
		a.Domain, a.Bus, a.Device, a.Func)
}

func (a PciAddr) Less(b PciAddr) bool {
	switch {
	case a.Domain != b.Domain:
		return a.Domain < b.Domain
	case a.Bus != b.Bus:
		return a.Bus < b.Bus
	case a.Device != b.Device:
		return a.Device < b.Device
	}
	return a.Func < b.Func
}

// ParsePciAddr accepts DDDD:BB:DD.F or the short BB:DD.F form.
func ParsePciAddr(s string) (PciAddr, error) {
	var a PciAddr
	var domain, bus, dev, fn uint
	if strings.Count(s, ":") == 1 {
		s = "0000:" + s
	}
	if n, err := fmt.Sscanf(s, "%x:%x:%x.%x", &domain, &bus, &dev,
		&fn); err != nil || n != 4 {
		return a, fmt.Errorf("%s: invalid pci address", s)
	}
	if domain > 0xffff || bus > 0xff || dev > 0x1f || fn > 7 {
		return a, fmt.Errorf("%s: pci address out of range", s)
	}
	a.Domain = uint16(domain)
	a.Bus = uint8(bus)
	a.Device = uint8(dev)
	a.Func = uint8(fn)
	return a, nil
}

// I2cAddr is a client address on a numbered adapter.
type I2cAddr struct {
	Bus     int
	Address int
}

// String returns the sysfs client name, e.g. 3-0060.
func (a I2cAddr) String() string {
	return fmt.Sprintf("%d-%04x", a.Bus, a.Address)
}

func (a I2cAddr) Less(b I2cAddr) bool {
	if a.Bus != b.Bus {
		return a.Bus < b.Bus
	}
	return a.Address < b.Address
}

// Gpio is a single bit of an SCD register.
type Gpio struct {
	Bit       uint
	ReadOnly  bool
	ActiveLow bool
}

func (g Gpio) Mask() uint32 { return 1 << g.Bit }

func (g Gpio) String() string {
	s := fmt.Sprint("bit ", g.Bit)
	if g.ReadOnly {
		s += " ro"
	}
	if g.ActiveLow {
		s += " active-low"
	}
	return s
}

// NamedGpio locates a Gpio by register address and gives it a kernel
// visible name.
type NamedGpio struct {
	Addr uint32
	Gpio
	Name string
}

func NewNamedGpio(addr uint32, bit uint, ro, activeLow bool,
	name string) NamedGpio {
	return NamedGpio{
		Addr: addr,
		Gpio: Gpio{Bit: bit, ReadOnly: ro, ActiveLow: activeLow},
		Name: name,
	}
}

func (g NamedGpio) String() string {
	return fmt.Sprintf("%s@%#x %v", g.Name, g.Addr, g.Gpio)
}

// ResetGpio is a writable line that holds a device in reset.
type ResetGpio struct {
	NamedGpio
}

func NewResetGpio(addr uint32, bit uint, activeLow bool,
	name string) ResetGpio {
	return ResetGpio{NewNamedGpio(addr, bit, false, activeLow, name)}
}

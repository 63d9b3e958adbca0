// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package scd describes the System Control Device, the PCI function that
// exposes a switch board's SMBus masters, LEDs, resets and transceiver
// control lines, and configures its kernel driver.
package scd

import (
	"fmt"

	"github.com/platinasystems/scd/internal/component"
	"github.com/platinasystems/scd/internal/device"
	"github.com/platinasystems/scd/internal/driver"
	"github.com/platinasystems/scd/internal/hal"
	"github.com/platinasystems/scd/internal/hw"
)

// Kernel driver strategies.
const (
	SonicSupport = "sonic-support-driver"
	Hwmon        = "scd-hwmon"
)

const MasterSpacing = 0x100

type Led struct {
	Addr uint32
	Name string
}

// Xcvr is a transceiver slot; Lines follow the positional template of
// its kind.
type Xcvr struct {
	Addr  uint32
	ID    int
	Kind  Kind
	Lines []hw.Gpio
}

func (x Xcvr) Name() string { return fmt.Sprintf("%s%d", x.Kind, x.ID) }

// SbGpio is a south-bridge gpio by number.
type SbGpio struct {
	Num       int
	ReadOnly  bool
	ActiveLow bool
	Name      string
}

type SbLed struct {
	Num  int
	Name string
}

var (
	// interrupt, present, interrupt_changed, present_changed,
	// lp_mode, reset, modsel
	QsfpLines = []hw.Gpio{
		{Bit: 0, ReadOnly: true, ActiveLow: true},
		{Bit: 2, ReadOnly: true, ActiveLow: true},
		{Bit: 3, ReadOnly: true},
		{Bit: 5, ReadOnly: true},
		{Bit: 6},
		{Bit: 7},
		{Bit: 8, ActiveLow: true},
	}
	// rxlos, txfault, present, rxlos_changed, txfault_changed,
	// present_changed, txdisable, rate_select0, rate_select1
	SfpLines = []hw.Gpio{
		{Bit: 0, ReadOnly: true},
		{Bit: 1, ReadOnly: true},
		{Bit: 2, ReadOnly: true, ActiveLow: true},
		{Bit: 3, ReadOnly: true},
		{Bit: 4, ReadOnly: true},
		{Bit: 5, ReadOnly: true},
		{Bit: 6},
		{Bit: 7},
		{Bit: 8},
	}
)

type Scd struct {
	device.Pci

	Masters []uint32
	Resets  []hw.ResetGpio
	Gpios   []hw.NamedGpio
	Leds    []Led
	Qsfps   []Xcvr
	Sfps    []Xcvr
	SbGpios []SbGpio
	SbLeds  []SbLed

	// Driver is the kernel driver strategy in use.
	Driver string
}

// New returns an Scd at addr that loads the scd module and then
// configures it with env's strategy, sonic-support-driver by default.
func New(env hal.Env, addr hw.PciAddr) *Scd {
	s := &Scd{Pci: device.Pci{Addr: addr}, Driver: env.Scd}
	s.AddDriver(driver.NewKernel(env, "scd"))
	switch s.Driver {
	case Hwmon:
		s.AddDriver(NewHwmonDriver(s, env))
	default:
		s.Driver = SonicSupport
		s.AddDriver(NewSonicDriver(s, env))
	}
	return s
}

func (s *Scd) String() string {
	return component.Format("Scd", "addr", s.Addr)
}

func (s *Scd) AddSmbusMaster(addr uint32) {
	s.Masters = append(s.Masters, addr)
}

// AddSmbusMasterRange adds count+1 masters from addr, spacing apart.
func (s *Scd) AddSmbusMasterRange(addr uint32, count int, spacing uint32) {
	for i := 0; i <= count; i++ {
		s.AddSmbusMaster(addr + uint32(i)*spacing)
	}
}

func (s *Scd) AddLed(addr uint32, name string) {
	s.Leds = append(s.Leds, Led{addr, name})
}

func (s *Scd) AddLeds(leds ...Led) {
	s.Leds = append(s.Leds, leds...)
}

func (s *Scd) AddReset(r hw.ResetGpio) {
	s.Resets = append(s.Resets, r)
}

func (s *Scd) AddResets(l ...hw.ResetGpio) {
	s.Resets = append(s.Resets, l...)
}

func (s *Scd) AddGpio(g hw.NamedGpio) {
	s.Gpios = append(s.Gpios, g)
}

func (s *Scd) AddGpios(l ...hw.NamedGpio) {
	s.Gpios = append(s.Gpios, l...)
}

// AddQsfp adds or, for a known addr, replaces a QSFP slot.
func (s *Scd) AddQsfp(addr uint32, id int) {
	s.Qsfps = addXcvr(s.Qsfps, Xcvr{addr, id, KindQsfp, QsfpLines})
}

// AddSfp adds or, for a known addr, replaces an SFP slot.
func (s *Scd) AddSfp(addr uint32, id int) {
	s.Sfps = addXcvr(s.Sfps, Xcvr{addr, id, KindSfp, SfpLines})
}

func addXcvr(l []Xcvr, x Xcvr) []Xcvr {
	x.Lines = append([]hw.Gpio(nil), x.Lines...)
	for i := range l {
		if l[i].Addr == x.Addr {
			l[i] = x
			return l
		}
	}
	return append(l, x)
}

func (s *Scd) AddSbGpio(num int, ro, activeLow bool, name string) {
	s.SbGpios = append(s.SbGpios, SbGpio{num, ro, activeLow, name})
}

func (s *Scd) AddSbLed(num int, name string) {
	s.SbLeds = append(s.SbLeds, SbLed{num, name})
}

// ResetNames lists the reset line links the kernel exports under the
// PCI device, optionally followed by each transceiver's reset.
func (s *Scd) ResetNames(xcvrs bool) []string {
	var l []string
	for _, r := range s.Resets {
		l = append(l, r.Name)
	}
	if xcvrs {
		for _, x := range s.Qsfps {
			l = append(l, x.Name()+"_reset")
		}
		for _, x := range s.Sfps {
			l = append(l, x.Name()+"_reset")
		}
	}
	return l
}

// Find returns every Scd in the tree below and including n.
func Find(n component.Node) []*Scd {
	var l []*Scd
	component.Walk(n, func(n component.Node, _ int) error {
		if s, ok := n.(*Scd); ok {
			l = append(l, s)
		}
		return nil
	})
	return l
}

// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package platforms holds the board descriptions of each supported SKU.
package platforms

import (
	"fmt"

	"github.com/platinasystems/scd/internal/device"
	"github.com/platinasystems/scd/internal/hal"
	"github.com/platinasystems/scd/internal/hw"
	"github.com/platinasystems/scd/internal/platform"
	"github.com/platinasystems/scd/internal/scd"
)

// RegisterAll adds every board of this package to r.
func RegisterAll(r *platform.Registry) {
	r.Register(Cloverdale, "DCS-7050QX-32")
	r.Register(Clearlake, "DCS-7050QX-32S", "DCS-7050QX2-32S")
	r.Register(Upperlake, "DCS-7060CX-32S")
	r.Register(Gardena, "DCS-7260CX3-64")
}

// span is [first, last].
func span(first, last int) []int {
	var l []int
	for i := first; i <= last; i++ {
		l = append(l, i)
	}
	return l
}

// Front panel and power supply LEDs common to every board.
var systemLeds = []scd.Led{
	{Addr: 0x6050, Name: "status"},
	{Addr: 0x6060, Name: "fan_status"},
	{Addr: 0x6070, Name: "psu1"},
	{Addr: 0x6080, Name: "psu2"},
	{Addr: 0x6090, Name: "beacon"},
}

var psuGpios = []hw.NamedGpio{
	hw.NewNamedGpio(0x5000, 0, true, false, "psu1"),
	hw.NewNamedGpio(0x5000, 1, true, false, "psu2"),
}

func i2cKernel(env hal.Env, bus, addr int, name string) *device.I2cKernel {
	return device.NewI2cKernel(env, hw.I2cAddr{Bus: bus, Address: addr},
		name)
}

// laneLeds adds four LEDs, one per lane, to each of the QSFPs.
func laneLeds(s *scd.Scd, addr uint32, ids []int) {
	for _, id := range ids {
		for lane := 1; lane <= 4; lane++ {
			s.AddLed(addr, fmt.Sprintf("qsfp%d_%d", id, lane))
			addr += 0x10
		}
	}
}

func sfpLeds(s *scd.Scd, addr uint32, ids []int) {
	for _, id := range ids {
		s.AddLed(addr, fmt.Sprint("sfp", id))
		addr += 0x10
	}
}

// singleLeds adds one LED per QSFP. These are laid out in pairs, the
// odd id 0x30 after its predecessor and the even 0x50.
func singleLeds(s *scd.Scd, addr uint32, ids []int) {
	for _, id := range ids {
		s.AddLed(addr, fmt.Sprint("qsfp", id))
		if id%2 != 0 {
			addr += 0x30
		} else {
			addr += 0x50
		}
	}
}

// slots adds a transceiver slot and its eeprom client per id, from addr
// and bus on. With a non-nil inventory, each port's eeprom is recorded.
func slots(env hal.Env, s *scd.Scd, inv *platform.Inventory, kind scd.Kind,
	addr uint32, bus int, ids []int) {
	for _, id := range ids {
		if kind == scd.KindSfp {
			s.AddSfp(addr, id)
		} else {
			s.AddQsfp(addr, id)
		}
		s.AddComponent(i2cKernel(env, bus, 0x50, "sff8436"))
		if inv != nil {
			inv.PortEeprom[id] = platform.EepromPath(bus)
		}
		addr += 0x10
		bus++
	}
}

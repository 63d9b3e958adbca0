// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package ds125br programs the pair of DS125BR signal repeaters that sit
// in front of the last two QSFP cages.
package ds125br

import (
	"fmt"

	"github.com/platinasystems/log"
	"github.com/platinasystems/scd/internal/component"
	"github.com/platinasystems/scd/internal/device"
	"github.com/platinasystems/scd/internal/hal"
	"github.com/platinasystems/scd/internal/hw"
)

// Per channel register fields, in address order.
const (
	Squelch = iota
	InputTermination
	RxEqualization
	OutputAmplitude
	TxDeEmphasis
	NFields
)

const (
	Channels = 8
	BaseAddr = 0x0d
)

var defaults = [NFields]uint8{
	Squelch:          0x02,
	InputTermination: 0x0c,
	RxEqualization:   0x00,
	OutputAmplitude:  0xaa,
	TxDeEmphasis:     0x00,
}

type Reg struct {
	Addr, Val uint8
}

// Control registers written after the channels: disable CRC, then
// squelch mode.
var Control = []Reg{
	{0x06, 0x18},
	{0x28, 0x40},
}

// Matrix is indexed by channel then field.
type Matrix [][NFields]Reg

// NewMatrix returns the default settings of n channels. Channel rows
// are seven registers apart, skipping 0x28.
func NewMatrix(n int) Matrix {
	m := make(Matrix, n)
	for ch := range m {
		offset := ch * 7
		if BaseAddr+offset > 0x27 {
			offset++
		}
		for field := range m[ch] {
			m[ch][field] = Reg{
				Addr: uint8(BaseAddr + offset + field),
				Val:  defaults[field],
			}
		}
	}
	return m
}

// Repeater is one DS125BR and its output amplitude overrides by channel.
type Repeater struct {
	Name      string
	Addr      int
	Amplitude map[int]uint8
}

var Repeaters = []Repeater{
	{
		Name: "qsfp35",
		Addr: 0x59,
		Amplitude: map[int]uint8{
			4: 0xa8,
			5: 0xa9,
			6: 0xa8,
			7: 0xa9,
		},
	},
	{
		Name: "qsfp36",
		Addr: 0x58,
		Amplitude: map[int]uint8{
			4: 0xa9,
			5: 0xa9,
			6: 0xa9,
			7: 0xaa,
		},
	},
}

func (r Repeater) Matrix(channels int) Matrix {
	m := NewMatrix(channels)
	for ch, v := range r.Amplitude {
		if ch < len(m) {
			m[ch][OutputAmplitude].Val = v
		}
	}
	return m
}

type Ds125Br struct {
	device.I2c
	Channels int
}

func New(env hal.Env, addr hw.I2cAddr) *Ds125Br {
	c := &Ds125Br{I2c: device.I2c{Addr: addr}, Channels: Channels}
	c.AddDriver(&Driver{Env: env, Owner: c})
	return c
}

func (c *Ds125Br) String() string {
	return component.Format("Ds125Br", "addr", c.Addr,
		"channels", c.Channels)
}

// Driver writes every repeater's matrix then its control registers.
type Driver struct {
	component.Base
	Env   hal.Env
	Owner *Ds125Br
}

func (d *Driver) Setup() error {
	log.Print("debug", "setting up ds125br repeaters")
	bus, err := d.Env.Smbus.Open(d.Owner.Addr.Bus)
	if err != nil {
		return err
	}
	defer bus.Close()
	for _, r := range Repeaters {
		for _, row := range r.Matrix(d.Owner.Channels) {
			for _, reg := range row {
				err = bus.WriteByteData(r.Addr, reg.Addr, reg.Val)
				if err != nil {
					return fmt.Errorf("%s: %v", r.Name, err)
				}
			}
		}
		for _, reg := range Control {
			err = bus.WriteByteData(r.Addr, reg.Addr, reg.Val)
			if err != nil {
				return fmt.Errorf("%s: %v", r.Name, err)
			}
		}
	}
	return nil
}

func (d *Driver) String() string {
	return component.Format("Ds125BrDriver", "repeaters", len(Repeaters))
}

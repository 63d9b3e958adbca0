// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package smbus provides byte-data access to devices behind a numbered
// i2c adapter.
package smbus

import (
	"fmt"
	"sync"

	"github.com/platinasystems/i2c"
	"github.com/platinasystems/log"
)

type Bus interface {
	WriteByteData(addr int, reg, v uint8) error
	ReadByteData(addr int, reg uint8) (uint8, error)
	Close() error
}

type Opener interface {
	Open(bus int) (Bus, error)
}

// Linux opens /dev/i2c-N through the i2c-dev interface.
type Linux struct{}

func (Linux) Open(index int) (Bus, error) {
	b := &linuxBus{index: index}
	if err := b.bus.Open(index); err != nil {
		return nil, fmt.Errorf("i2c-%d: %v", index, err)
	}
	return b, nil
}

type linuxBus struct {
	index int
	bus   i2c.Bus
}

func (b *linuxBus) WriteByteData(addr int, reg, v uint8) error {
	if err := b.bus.ForceSlaveAddress(addr); err != nil {
		return fmt.Errorf("i2c-%d: %#x: %v", b.index, addr, err)
	}
	var data i2c.SMBusData
	data[0] = v
	err := b.bus.Do(i2c.Write, reg, i2c.ByteData, &data)
	if err != nil {
		return fmt.Errorf("i2c-%d: %#x: write %#x: %v",
			b.index, addr, reg, err)
	}
	return nil
}

func (b *linuxBus) ReadByteData(addr int, reg uint8) (uint8, error) {
	if err := b.bus.ForceSlaveAddress(addr); err != nil {
		return 0, fmt.Errorf("i2c-%d: %#x: %v", b.index, addr, err)
	}
	var data i2c.SMBusData
	err := b.bus.Do(i2c.Read, reg, i2c.ByteData, &data)
	if err != nil {
		return 0, fmt.Errorf("i2c-%d: %#x: read %#x: %v",
			b.index, addr, reg, err)
	}
	return data[0], nil
}

func (b *linuxBus) Close() error { return b.bus.Close() }

// Write is a recorded simulated transfer.
type Write struct {
	Bus, Addr int
	Reg, Val  uint8
}

func (w Write) String() string {
	return fmt.Sprintf("i2c-%d %#02x [%#02x]=%#02x", w.Bus, w.Addr, w.Reg,
		w.Val)
}

// Sim logs and records writes; reads return the last value written.
type Sim struct {
	mu     sync.Mutex
	writes []Write
}

func (s *Sim) Open(index int) (Bus, error) {
	log.Print("debug", "sim open i2c-", index)
	return simBus{s, index}, nil
}

func (s *Sim) Writes() []Write {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Write(nil), s.writes...)
}

type simBus struct {
	sim   *Sim
	index int
}

func (b simBus) WriteByteData(addr int, reg, v uint8) error {
	w := Write{b.index, addr, reg, v}
	log.Print("debug", "sim ", w)
	b.sim.mu.Lock()
	defer b.sim.mu.Unlock()
	b.sim.writes = append(b.sim.writes, w)
	return nil
}

func (b simBus) ReadByteData(addr int, reg uint8) (uint8, error) {
	b.sim.mu.Lock()
	defer b.sim.mu.Unlock()
	for i := len(b.sim.writes) - 1; i >= 0; i-- {
		w := b.sim.writes[i]
		if w.Bus == b.index && w.Addr == addr && w.Reg == reg {
			return w.Val, nil
		}
	}
	return 0, nil
}

func (simBus) Close() error { return nil }

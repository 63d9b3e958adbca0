// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package platform

import (
	"fmt"
	"sort"
)

// Inventory locates each front panel port's transceiver eeprom.
type Inventory struct {
	PortStart, PortEnd int
	QsfpStart, QsfpEnd int
	SfpStart, SfpEnd   int
	EepromOffset       int
	PortEeprom         map[int]string
}

func NewInventory() *Inventory {
	return &Inventory{PortEeprom: make(map[int]string)}
}

// Xcvrs describes the port ranges, inclusive, and the eeprom of each port.
func Xcvrs(portStart, portEnd, qsfpStart, qsfpEnd, sfpStart, sfpEnd,
	eepromOffset int, portEeprom map[int]string) *Inventory {
	return &Inventory{
		PortStart:    portStart,
		PortEnd:      portEnd,
		QsfpStart:    qsfpStart,
		QsfpEnd:      qsfpEnd,
		SfpStart:     sfpStart,
		SfpEnd:       sfpEnd,
		EepromOffset: eepromOffset,
		PortEeprom:   portEeprom,
	}
}

// EepromPath is the eeprom of the transceiver at 0x50 on an adapter.
func EepromPath(bus int) string {
	return fmt.Sprintf("/sys/class/i2c-adapter/i2c-%d/%d-0050/eeprom",
		bus, bus)
}

// PortToEepromPath maps each port of [start, end] to the eeprom on
// adapter port+busOffset.
func PortToEepromPath(start, end, busOffset int) map[int]string {
	m := make(map[int]string)
	for port := start; port <= end; port++ {
		m[port] = EepromPath(port + busOffset)
	}
	return m
}

func (inv *Inventory) EepromPath(port int) (string, error) {
	if fn, found := inv.PortEeprom[port]; found {
		return fn, nil
	}
	return "", fmt.Errorf("port %d: %w", port, ErrNotFound)
}

// Ports lists the mapped ports in ascending order.
func (inv *Inventory) Ports() []int {
	ports := make([]int, 0, len(inv.PortEeprom))
	for port := range inv.PortEeprom {
		ports = append(ports, port)
	}
	sort.Ints(ports)
	return ports
}

func (inv *Inventory) IsQsfp(port int) bool {
	return inv.QsfpStart <= port && port <= inv.QsfpEnd
}

func (inv *Inventory) IsSfp(port int) bool {
	return inv.SfpStart <= port && port <= inv.SfpEnd
}

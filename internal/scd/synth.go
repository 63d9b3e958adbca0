// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package scd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/platinasystems/scd/internal/hw"
	"github.com/platinasystems/scd/internal/sysfs"
)

// Kind is the gpio_type code of a register group.
type Kind uint32

const (
	KindQsfp Kind = iota
	KindSfp
	KindPsu
	KindMux
)

var kindNames = []string{
	KindQsfp: "qsfp",
	KindSfp:  "sfp",
	KindPsu:  "psu",
	KindMux:  "mux",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprint("kind", uint32(k))
}

// Suffixes are appended, bit by bit in ascending order, to a group's
// name to form the gpio links the kernel exports.
var Suffixes = map[Kind][]string{
	KindQsfp: {
		"_interrupt",
		"_present",
		"_interrupt_changed",
		"_present_changed",
		"_lp_mode",
		"_reset",
		"_modsel",
	},
	KindSfp: {
		"_rxlos",
		"_txfault",
		"_present",
		"_rxlos_changed",
		"_txfault_changed",
		"_present_changed",
		"_txdisable",
		"_rate_select0",
		"_rate_select1",
	},
	KindPsu: {"1_present", "2_present"},
	KindMux: {"_sfp_qsfp"},
}

// Group is every gpio of one register.
type Group struct {
	Addr  uint32
	Kind  Kind
	Name  string
	Lines []hw.Gpio
}

// Pack folds lines into a register's mask, read-only mask and
// active-low mask.
func Pack(lines []hw.Gpio) (mask, ro, activeLow uint32) {
	for _, g := range lines {
		mask |= g.Mask()
		if g.ReadOnly {
			ro |= g.Mask()
		}
		if g.ActiveLow {
			activeLow |= g.Mask()
		}
	}
	return
}

// Bits lists the set bits of mask in ascending order.
func Bits(mask uint32) []uint {
	var l []uint
	for bit := uint(0); bit < 32; bit++ {
		if mask&(1<<bit) != 0 {
			l = append(l, bit)
		}
	}
	return l
}

// Groups returns the gpio registers in ascending address order. Named
// gpios sharing an address form a psu group, or a mux group if any of
// its lines is named mux*. Each transceiver slot is a group of its own.
func (s *Scd) Groups() []Group {
	byAddr := make(map[uint32]*Group)
	for _, g := range s.Gpios {
		grp, found := byAddr[g.Addr]
		if !found {
			grp = &Group{Addr: g.Addr, Kind: KindPsu}
			byAddr[g.Addr] = grp
		}
		grp.Lines = append(grp.Lines, g.Gpio)
		if strings.HasPrefix(g.Name, "mux") {
			grp.Kind = KindMux
		}
	}
	for _, grp := range byAddr {
		grp.Name = grp.Kind.String()
	}
	for _, l := range [][]Xcvr{s.Qsfps, s.Sfps} {
		for _, x := range l {
			byAddr[x.Addr] = &Group{
				Addr:  x.Addr,
				Kind:  x.Kind,
				Name:  x.Name(),
				Lines: x.Lines,
			}
		}
	}
	groups := make([]Group, 0, len(byAddr))
	for _, grp := range byAddr {
		groups = append(groups, *grp)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Addr < groups[j].Addr
	})
	return groups
}

// GpioLinks lists the gpio link names the kernel exports for every
// group, in register order.
func (s *Scd) GpioLinks() []string {
	var l []string
	for _, grp := range s.Groups() {
		mask, _, _ := Pack(grp.Lines)
		sfx := Suffixes[grp.Kind]
		for i := range Bits(mask) {
			if i < len(sfx) {
				l = append(l, grp.Name+sfx[i])
			}
		}
	}
	return l
}

// Config is the packed form consumed by the sonic support driver.
type Config struct {
	MasterAddrs   []uint32 `yaml:"master_addrs"`
	ResetAddrs    []uint32 `yaml:"reset_addrs"`
	ResetNames    []string `yaml:"reset_names"`
	ResetMasks    []uint32 `yaml:"reset_masks"`
	GpioAddrs     []uint32 `yaml:"gpio_addrs"`
	GpioMasks     []uint32 `yaml:"gpio_masks"`
	GpioNames     []string `yaml:"gpio_names"`
	GpioRo        []uint32 `yaml:"gpio_ro"`
	GpioType      []Kind   `yaml:"gpio_type"`
	GpioActiveLow []uint32 `yaml:"gpio_active_low"`
	LedAddrs      []uint32 `yaml:"led_addrs"`
	LedNames      []string `yaml:"led_names"`

	SbGpios          []int    `yaml:"sb_gpios,omitempty"`
	SbGpioNames      []string `yaml:"sb_gpio_names,omitempty"`
	SbGpiosRo        []int    `yaml:"sb_gpios_ro,omitempty"`
	SbGpiosActiveLow []int    `yaml:"sb_gpios_active_low,omitempty"`
	SbLeds           []int    `yaml:"sb_leds,omitempty"`
	SbLedNames       []string `yaml:"sb_led_names,omitempty"`
}

// Synthesize packs the resets, gpios, transceiver slots, LEDs and
// masters of s. Resets are grouped by address in ascending order with
// names kept in the order added.
func (s *Scd) Synthesize() Config {
	var c Config

	c.MasterAddrs = append(c.MasterAddrs, s.Masters...)

	resets := make(map[uint32][]hw.ResetGpio)
	for _, r := range s.Resets {
		if _, found := resets[r.Addr]; !found {
			c.ResetAddrs = append(c.ResetAddrs, r.Addr)
		}
		resets[r.Addr] = append(resets[r.Addr], r)
	}
	sort.Slice(c.ResetAddrs, func(i, j int) bool {
		return c.ResetAddrs[i] < c.ResetAddrs[j]
	})
	for _, addr := range c.ResetAddrs {
		var mask uint32
		for _, r := range resets[addr] {
			mask |= r.Mask()
			c.ResetNames = append(c.ResetNames, r.Name)
		}
		c.ResetMasks = append(c.ResetMasks, mask)
	}

	for _, grp := range s.Groups() {
		mask, ro, activeLow := Pack(grp.Lines)
		c.GpioAddrs = append(c.GpioAddrs, grp.Addr)
		c.GpioMasks = append(c.GpioMasks, mask)
		c.GpioRo = append(c.GpioRo, ro)
		c.GpioActiveLow = append(c.GpioActiveLow, activeLow)
		c.GpioNames = append(c.GpioNames, grp.Name)
		c.GpioType = append(c.GpioType, grp.Kind)
	}

	for _, led := range s.Leds {
		c.LedAddrs = append(c.LedAddrs, led.Addr)
		c.LedNames = append(c.LedNames, led.Name)
	}

	for _, g := range s.SbGpios {
		c.SbGpios = append(c.SbGpios, g.Num)
		c.SbGpioNames = append(c.SbGpioNames, g.Name)
		c.SbGpiosRo = append(c.SbGpiosRo, b2i(g.ReadOnly))
		c.SbGpiosActiveLow = append(c.SbGpiosActiveLow,
			b2i(g.ActiveLow))
	}
	for _, led := range s.SbLeds {
		c.SbLeds = append(c.SbLeds, led.Num)
		c.SbLedNames = append(c.SbLedNames, led.Name)
	}
	return c
}

// Attrs renders c as the driver's attribute files in write order.
func (c Config) Attrs() sysfs.Attrs {
	var attrs sysfs.Attrs
	types := make([]uint32, len(c.GpioType))
	for i, k := range c.GpioType {
		types[i] = uint32(k)
	}
	attrs.Add("master_addrs", hex(c.MasterAddrs))
	attrs.Add("reset_addrs", hex(c.ResetAddrs))
	attrs.Add("reset_names", strings.Join(c.ResetNames, ","))
	attrs.Add("reset_masks", hex(c.ResetMasks))
	attrs.Add("gpio_addrs", hex(c.GpioAddrs))
	attrs.Add("gpio_masks", hex(c.GpioMasks))
	attrs.Add("gpio_names", strings.Join(c.GpioNames, ","))
	attrs.Add("gpio_ro", dec(c.GpioRo))
	attrs.Add("gpio_type", hex(types))
	attrs.Add("gpio_active_low", dec(c.GpioActiveLow))
	attrs.Add("led_addrs", hex(c.LedAddrs))
	attrs.Add("led_names", strings.Join(c.LedNames, ","))
	if len(c.SbGpios) > 0 {
		attrs.Add("sb_gpios", ints(c.SbGpios))
		attrs.Add("sb_gpio_names", strings.Join(c.SbGpioNames, ","))
		attrs.Add("sb_gpios_ro", ints(c.SbGpiosRo))
		attrs.Add("sb_gpios_active_low", ints(c.SbGpiosActiveLow))
	}
	if len(c.SbLeds) > 0 {
		attrs.Add("sb_leds", ints(c.SbLeds))
		attrs.Add("sb_led_names", strings.Join(c.SbLedNames, ","))
	}
	return attrs
}

// Config is the attribute form of Synthesize.
func (s *Scd) Config() sysfs.Attrs { return s.Synthesize().Attrs() }

func hex(l []uint32) string {
	ss := make([]string, len(l))
	for i, v := range l {
		ss[i] = fmt.Sprintf("0x%08x", v)
	}
	return strings.Join(ss, ",")
}

func dec(l []uint32) string {
	ss := make([]string, len(l))
	for i, v := range l {
		ss[i] = fmt.Sprint(v)
	}
	return strings.Join(ss, ",")
}

func ints(l []int) string {
	ss := make([]string, len(l))
	for i, v := range l {
		ss[i] = fmt.Sprint(v)
	}
	return strings.Join(ss, ",")
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package scd

import (
	"reflect"
	"testing"

	"github.com/platinasystems/scd/internal/hal"
	"github.com/platinasystems/scd/internal/hw"
	"github.com/platinasystems/scd/internal/sysfs"
)

func newTestScd() *Scd {
	s := New(hal.Simulated(), hw.PciAddr{Bus: 0x02})
	s.AddSmbusMasterRange(0x8000, 2, MasterSpacing)
	s.AddLeds(Led{0x6050, "status"}, Led{0x6060, "fan_status"})
	s.AddReset(hw.NewResetGpio(0x4000, 0, false, "switch_chip_reset"))
	s.AddGpios(
		hw.NewNamedGpio(0x5000, 0, true, false, "psu1"),
		hw.NewNamedGpio(0x5000, 1, true, false, "psu2"),
		hw.NewNamedGpio(0x6940, 0, false, false, "mux"),
	)
	s.AddQsfp(0x5010, 5)
	return s
}

func TestConfig(t *testing.T) {
	want := sysfs.Attrs{
		{Name: "master_addrs", Value: "0x00008000,0x00008100,0x00008200"},
		{Name: "reset_addrs", Value: "0x00004000"},
		{Name: "reset_names", Value: "switch_chip_reset"},
		{Name: "reset_masks", Value: "0x00000001"},
		{Name: "gpio_addrs", Value: "0x00005000,0x00005010,0x00006940"},
		{Name: "gpio_masks", Value: "0x00000003,0x000001ed,0x00000001"},
		{Name: "gpio_names", Value: "psu,qsfp5,mux"},
		{Name: "gpio_ro", Value: "3,45,0"},
		{Name: "gpio_type", Value: "0x00000002,0x00000000,0x00000003"},
		{Name: "gpio_active_low", Value: "0,261,0"},
		{Name: "led_addrs", Value: "0x00006050,0x00006060"},
		{Name: "led_names", Value: "status,fan_status"},
	}
	if got := newTestScd().Config(); !reflect.DeepEqual(got, want) {
		t.Errorf("\n%v\n!=\n%v", got, want)
	}
}

func TestResetGrouping(t *testing.T) {
	s := New(hal.Simulated(), hw.PciAddr{Bus: 4})
	s.AddResets(
		hw.NewResetGpio(0x4000, 0, false, "a"),
		hw.NewResetGpio(0x3000, 1, false, "b"),
		hw.NewResetGpio(0x4000, 2, false, "c"),
	)
	c := s.Synthesize()
	if want := []uint32{0x3000, 0x4000}; !reflect.DeepEqual(c.ResetAddrs, want) {
		t.Errorf("%v != %v", c.ResetAddrs, want)
	}
	if want := []uint32{0x2, 0x5}; !reflect.DeepEqual(c.ResetMasks, want) {
		t.Errorf("%v != %v", c.ResetMasks, want)
	}
	if want := []string{"b", "a", "c"}; !reflect.DeepEqual(c.ResetNames, want) {
		t.Errorf("%v != %v", c.ResetNames, want)
	}
}

func TestTemplates(t *testing.T) {
	for _, x := range []struct {
		name                string
		kind                Kind
		lines               []hw.Gpio
		mask, ro, activeLow uint32
	}{
		{"qsfp", KindQsfp, QsfpLines, 0x1ed, 0x2d, 0x105},
		{"sfp", KindSfp, SfpLines, 0x1ff, 0x3f, 0x4},
	} {
		t.Run(x.name, func(t *testing.T) {
			if n := len(Suffixes[x.kind]); len(x.lines) != n {
				t.Fatalf("%d lines != %d", len(x.lines), n)
			}
			mask, ro, activeLow := Pack(x.lines)
			if mask != x.mask || ro != x.ro || activeLow != x.activeLow {
				t.Errorf("%#x %#x %#x", mask, ro, activeLow)
			}
			var bits []uint
			for _, g := range x.lines {
				bits = append(bits, g.Bit)
			}
			if got := Bits(mask); !reflect.DeepEqual(got, bits) {
				t.Errorf("%v != %v", got, bits)
			}
		})
	}
}

func TestPackBits(t *testing.T) {
	for _, x := range []struct {
		name                string
		lines               []hw.Gpio
		bits, ro, activeLow []uint
	}{
		{"empty", nil, nil, nil, nil},
		{"unordered", []hw.Gpio{
			{Bit: 31, ReadOnly: true, ActiveLow: true},
			{Bit: 0},
			{Bit: 7, ReadOnly: true},
			{Bit: 16, ActiveLow: true},
			{Bit: 3, ReadOnly: true, ActiveLow: true},
		}, []uint{0, 3, 7, 16, 31}, []uint{3, 7, 31}, []uint{3, 16, 31}},
		{"single", []hw.Gpio{{Bit: 12, ActiveLow: true}},
			[]uint{12}, nil, []uint{12}},
	} {
		t.Run(x.name, func(t *testing.T) {
			mask, ro, activeLow := Pack(x.lines)
			if got := Bits(mask); !reflect.DeepEqual(got, x.bits) {
				t.Errorf("mask %v != %v", got, x.bits)
			}
			if got := Bits(ro); !reflect.DeepEqual(got, x.ro) {
				t.Errorf("ro %v != %v", got, x.ro)
			}
			if got := Bits(activeLow); !reflect.DeepEqual(got, x.activeLow) {
				t.Errorf("active low %v != %v", got, x.activeLow)
			}
			if ro&^mask != 0 || activeLow&^mask != 0 {
				t.Errorf("%#x %#x outside %#x", ro, activeLow, mask)
			}
		})
	}
}

func TestGroupsFollowAddressOrder(t *testing.T) {
	s := New(hal.Simulated(), hw.PciAddr{Bus: 2})
	s.AddSfp(0x5210, 1)
	s.AddGpio(hw.NewNamedGpio(0x6940, 0, false, false, "mux"))
	s.AddQsfp(0x5010, 5)
	s.AddGpio(hw.NewNamedGpio(0x5000, 0, true, false, "psu1"))
	c := s.Synthesize()
	if want := []string{"psu", "qsfp5", "sfp1", "mux"}; !reflect.DeepEqual(c.GpioNames, want) {
		t.Errorf("%v != %v", c.GpioNames, want)
	}
	if want := []Kind{KindPsu, KindQsfp, KindSfp, KindMux}; !reflect.DeepEqual(c.GpioType, want) {
		t.Errorf("%v != %v", c.GpioType, want)
	}
	if want := []uint32{0x5000, 0x5010, 0x5210, 0x6940}; !reflect.DeepEqual(c.GpioAddrs, want) {
		t.Errorf("%v != %v", c.GpioAddrs, want)
	}
}

func TestEmpty(t *testing.T) {
	s := New(hal.Simulated(), hw.PciAddr{Bus: 2})
	attrs := s.Config()
	if len(attrs) != 12 {
		t.Fatal(attrs.Names())
	}
	for _, a := range attrs {
		if a.Value != "" {
			t.Errorf("%s: %q", a.Name, a.Value)
		}
	}
}

func TestSouthBridge(t *testing.T) {
	s := New(hal.Simulated(), hw.PciAddr{Bus: 4})
	s.AddSbGpio(203, true, false, "fan1_id0")
	s.AddSbGpio(206, true, true, "fan1_present")
	s.AddSbLed(207, "fan1_led")
	attrs := s.Config()
	for _, x := range []struct{ name, want string }{
		{"sb_gpios", "203,206"},
		{"sb_gpio_names", "fan1_id0,fan1_present"},
		{"sb_gpios_ro", "1,1"},
		{"sb_gpios_active_low", "0,1"},
		{"sb_leds", "207"},
		{"sb_led_names", "fan1_led"},
	} {
		if got, _ := attrs.Get(x.name); got != x.want {
			t.Errorf("%s: %q != %q", x.name, got, x.want)
		}
	}
}

func TestAddXcvrReplaces(t *testing.T) {
	s := New(hal.Simulated(), hw.PciAddr{Bus: 2})
	s.AddQsfp(0x5010, 1)
	s.AddQsfp(0x5020, 2)
	s.AddQsfp(0x5010, 3)
	if len(s.Qsfps) != 2 || s.Qsfps[0].ID != 3 || s.Qsfps[1].ID != 2 {
		t.Error(s.Qsfps)
	}
	s.Qsfps[0].Lines[0].Bit = 31
	if QsfpLines[0].Bit != 0 {
		t.Error("template modified through slot")
	}
}

func TestMasterRange(t *testing.T) {
	s := New(hal.Simulated(), hw.PciAddr{Bus: 6})
	s.AddSmbusMasterRange(0x8000, 10, 0x80)
	if n := len(s.Masters); n != 11 {
		t.Fatal(n)
	}
	if s.Masters[10] != 0x8500 {
		t.Errorf("%#x", s.Masters[10])
	}
}

func TestGpioLinks(t *testing.T) {
	want := []string{
		"psu1_present",
		"psu2_present",
		"qsfp5_interrupt",
		"qsfp5_present",
		"qsfp5_interrupt_changed",
		"qsfp5_present_changed",
		"qsfp5_lp_mode",
		"qsfp5_reset",
		"qsfp5_modsel",
		"mux_sfp_qsfp",
	}
	if got := newTestScd().GpioLinks(); !reflect.DeepEqual(got, want) {
		t.Errorf("%v != %v", got, want)
	}
}

func TestResetNames(t *testing.T) {
	s := newTestScd()
	s.AddSfp(0x5210, 1)
	want := []string{"switch_chip_reset", "qsfp5_reset", "sfp1_reset"}
	if got := s.ResetNames(true); !reflect.DeepEqual(got, want) {
		t.Errorf("%v != %v", got, want)
	}
	if got := s.ResetNames(false); !reflect.DeepEqual(got, want[:1]) {
		t.Errorf("%v != %v", got, want[:1])
	}
}

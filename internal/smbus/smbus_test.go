// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package smbus

import "testing"

func TestSim(t *testing.T) {
	sim := new(Sim)
	bus, err := sim.Open(8)
	if err != nil {
		t.Fatal(err)
	}
	defer bus.Close()
	bus.WriteByteData(0x58, 0x06, 0x18)
	bus.WriteByteData(0x58, 0x06, 0x19)
	if v, _ := bus.ReadByteData(0x58, 0x06); v != 0x19 {
		t.Errorf("%#x != 0x19", v)
	}
	if v, _ := bus.ReadByteData(0x59, 0x06); v != 0 {
		t.Errorf("%#x != 0", v)
	}
	if n := len(sim.Writes()); n != 2 {
		t.Error("writes", n)
	}
	if s := sim.Writes()[0].String(); s != "i2c-8 0x58 [0x06]=0x18" {
		t.Error(s)
	}
}

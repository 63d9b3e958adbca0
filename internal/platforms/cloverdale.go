// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package platforms

import (
	"fmt"

	"github.com/platinasystems/scd/internal/driver"
	"github.com/platinasystems/scd/internal/hal"
	"github.com/platinasystems/scd/internal/hw"
	"github.com/platinasystems/scd/internal/platform"
	"github.com/platinasystems/scd/internal/scd"
)

// Fans managed through south-bridge gpios on Cloverdale.
const cloverdaleFans = 4

// Cloverdale is the DCS-7050QX-32.
func Cloverdale(env hal.Env) *platform.Platform {
	p := platform.New(env, "Cloverdale")
	// The transceiver eeproms are reached through the switch chip, so
	// the inventory only has port ranges.
	p.Inventory = platform.Xcvrs(1, 32, 1, 32, 33, 32, 0,
		make(map[int]string))
	p.AddDriver(driver.NewKernel(env, "raven-fan-driver"))
	p.AddDriver(driver.NewKernel(env, "lm73"))
	p.AddDriver(driver.NewKernel(env, "lm90"))

	s := scd.New(env, hw.PciAddr{Bus: 0x04})
	p.AddComponent(s)

	s.AddSmbusMasterRange(0x8000, 4, scd.MasterSpacing)
	s.AddLeds(systemLeds...)
	s.AddReset(hw.NewResetGpio(0x4000, 0, false, "switch_chip_reset"))
	for i := 1; i <= 4; i++ {
		s.AddReset(hw.NewResetGpio(0x4000, uint(i+1), false,
			fmt.Sprintf("phy%d_reset", i)))
	}
	s.AddGpios(psuGpios...)

	laneLeds(s, 0x6100, span(1, 24))
	singleLeds(s, 0x6720, span(25, 32))

	addr := uint32(0x5010)
	for _, id := range span(1, 32) {
		s.AddQsfp(addr, id)
		addr += 0x10
	}

	for i := 0; i < cloverdaleFans; i++ {
		num, fan := 203+6*i, i+1
		s.AddSbGpio(num, true, false, fmt.Sprintf("fan%d_id0", fan))
		s.AddSbGpio(num+1, true, false, fmt.Sprintf("fan%d_id1", fan))
		s.AddSbGpio(num+2, true, false, fmt.Sprintf("fan%d_id2", fan))
		s.AddSbGpio(num+3, true, true, fmt.Sprintf("fan%d_present", fan))
		s.AddSbLed(num+4, fmt.Sprintf("fan%d_led", fan))
	}
	return p
}

// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package platforms

import (
	"github.com/platinasystems/scd/internal/driver"
	"github.com/platinasystems/scd/internal/ds125br"
	"github.com/platinasystems/scd/internal/hal"
	"github.com/platinasystems/scd/internal/hw"
	"github.com/platinasystems/scd/internal/platform"
	"github.com/platinasystems/scd/internal/scd"
)

// Clearlake is the DCS-7050QX-32S and DCS-7050QX2-32S.
func Clearlake(env hal.Env) *platform.Platform {
	// TODO: enable sfp1-4 once the kernel drivers handle them.
	var sfpRange []int
	qsfpAutoRange := span(5, 28)
	qsfpOnlyRange := span(29, 36)

	p := platform.New(env, "Clearlake")
	p.Inventory = platform.Xcvrs(1, 36, 5, 36, 1, 4, 5,
		make(map[int]string))
	p.AddDriver(driver.NewKernel(env, "crow-fan-driver"))

	s := scd.New(env, hw.PciAddr{Bus: 0x02})
	p.AddComponent(s)

	s.AddComponents(
		i2cKernel(env, 2, 0x4c, "max6658"),
		i2cKernel(env, 3, 0x60, "crow_cpld"),
		i2cKernel(env, 3, 0x4e, "pmbus"), // ucd90120A
		i2cKernel(env, 5, 0x58, "pmbus"),
		i2cKernel(env, 6, 0x58, "pmbus"),
		i2cKernel(env, 7, 0x4e, "pmbus"), // ucd90120A
		ds125br.New(env, hw.I2cAddr{Bus: 8, Address: 0xff}),
	)

	s.AddSmbusMasterRange(0x8000, 6, scd.MasterSpacing)
	s.AddLeds(systemLeds...)
	s.AddReset(hw.NewResetGpio(0x4000, 0, false, "switch_chip_reset"))
	s.AddGpios(psuGpios...)
	s.AddGpio(hw.NewNamedGpio(0x6940, 0, false, false, "mux"))

	laneLeds(s, 0x6100, qsfpAutoRange)
	singleLeds(s, 0x6720, qsfpOnlyRange)
	sfpLeds(s, 0x6900, sfpRange)

	qsfps := append(append([]int(nil), qsfpAutoRange...), qsfpOnlyRange...)
	slots(env, s, p.Inventory, scd.KindQsfp, 0x5010, 10, qsfps)
	slots(env, s, p.Inventory, scd.KindSfp, 0x5210, 42, sfpRange)
	return p
}

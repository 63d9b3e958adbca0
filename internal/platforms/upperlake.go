// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package platforms

import (
	"github.com/platinasystems/scd/internal/hal"
	"github.com/platinasystems/scd/internal/hw"
	"github.com/platinasystems/scd/internal/platform"
	"github.com/platinasystems/scd/internal/scd"
)

// Upperlake is the DCS-7060CX-32S.
func Upperlake(env hal.Env) *platform.Platform {
	sfpRange := span(33, 34)
	qsfpRange := span(1, 32)

	p := platform.New(env, "Upperlake")
	p.Inventory = platform.Xcvrs(1, 34, 1, 32, 33, 34, 17,
		make(map[int]string))

	s := scd.New(env, hw.PciAddr{Bus: 0x02})
	p.AddComponent(s)

	s.AddComponents(
		i2cKernel(env, 2, 0x1a, "max6697"),
		i2cKernel(env, 2, 0x4c, "max6658"),
		i2cKernel(env, 3, 0x60, "crow_cpld"),
		i2cKernel(env, 3, 0x4e, "ucd90120"), // ucd90120A
		i2cKernel(env, 5, 0x50, "eeprom"),
		i2cKernel(env, 5, 0x58, "pmbus"),
		i2cKernel(env, 6, 0x50, "eeprom"),
		i2cKernel(env, 6, 0x58, "pmbus"),
		i2cKernel(env, 7, 0x4e, "ucd90120"),
	)

	s.AddSmbusMasterRange(0x8000, 5, 0x80)
	s.AddLeds(systemLeds...)
	s.AddReset(hw.NewResetGpio(0x4000, 0, false, "switch_chip_reset"))
	s.AddGpios(psuGpios...)

	sfpLeds(s, 0x6100, sfpRange)
	laneLeds(s, 0x6140, qsfpRange)

	slots(env, s, p.Inventory, scd.KindSfp, 0x5010, 10, sfpRange)
	slots(env, s, p.Inventory, scd.KindQsfp, 0x5050, 18, qsfpRange)
	return p
}

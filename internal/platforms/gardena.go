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

// Gardena is the DCS-7260CX3-64.
func Gardena(env hal.Env) *platform.Platform {
	// TODO: add sfp0 once the kernel allows more gpio pins.
	var sfpRange []int
	qsfpRange := span(0, 64)

	p := platform.New(env, "Gardena")
	p.Inventory = platform.Xcvrs(0, 65, 0, 63, 64, 65, 9,
		platform.PortToEepromPath(0, 65, 10))

	s := scd.New(env, hw.PciAddr{Bus: 0x06})
	p.AddComponent(s)

	s.AddComponents(
		i2cKernel(env, 1, 0x4c, "max6658"),
		i2cKernel(env, 3, 0x58, "pmbus"),
		i2cKernel(env, 4, 0x58, "pmbus"),
	)

	s.AddSmbusMasterRange(0x8000, 10, 0x80)
	s.AddReset(hw.NewResetGpio(0x4000, 0, false, "switch_chip_reset"))
	s.AddGpios(psuGpios...)

	laneLeds(s, 0x6100, qsfpRange)
	sfpLeds(s, 0x7200, sfpRange)

	slots(env, s, nil, scd.KindQsfp, 0xa010, 9, qsfpRange)
	slots(env, s, nil, scd.KindSfp, 0xa400, 73, sfpRange)
	return p
}

// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package syseeprom prints the system identity record.
package syseeprom

import (
	"context"

	"github.com/platinasystems/scd/internal/goes"
	"github.com/platinasystems/scd/internal/machine"
	"github.com/platinasystems/scd/internal/prefdl"
)

const Usage = "[-onie] " + machine.Usage

// Onie is the ONIE eeprom read with -onie.
var Onie = prefdl.Onie{Bus: 0, Addr: 0x51}

func Main(ctx context.Context, args ...string) error {
	if goes.Help(ctx, Usage, args...) {
		return nil
	}
	m, flag, args, err := machine.Open(args, "-onie")
	if err != nil {
		return goes.ErrorfWith(ctx, "%v", err)
	}
	if len(args) > 0 {
		return goes.ErrorfWith(ctx, "%v: unexpected", args)
	}
	id := m.Identity
	if flag.ByName["-onie"] {
		id = prefdl.NewCache(Onie)
	}
	rec, err := id.Record()
	if err != nil {
		return goes.ErrorfWith(ctx, "%v", err)
	}
	_, err = rec.WriteTo(goes.OutputOf(ctx))
	return err
}

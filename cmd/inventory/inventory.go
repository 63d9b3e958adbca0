// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package inventory prints the transceiver eeprom of each port.
package inventory

import (
	"context"
	"strconv"

	"github.com/platinasystems/scd/internal/goes"
	"github.com/platinasystems/scd/internal/machine"
)

const Usage = machine.Usage + " [PORT]"

func Main(ctx context.Context, args ...string) error {
	if goes.Help(ctx, Usage, args...) {
		return nil
	}
	m, _, args, err := machine.Open(args)
	if err != nil {
		return goes.ErrorfWith(ctx, "%v", err)
	}
	_, p, err := m.Platform()
	if err != nil {
		return goes.ErrorfWith(ctx, "%v", err)
	}
	inv := p.Inventory
	o := goes.OutputOf(ctx)
	switch len(args) {
	case 0:
		for _, port := range inv.Ports() {
			kind := "-"
			if inv.IsQsfp(port) {
				kind = "qsfp"
			} else if inv.IsSfp(port) {
				kind = "sfp"
			}
			fn, _ := inv.EepromPath(port)
			o.Printf("%d\t%s\t%s\n", port, kind, fn)
		}
	case 1:
		port, err := strconv.Atoi(args[0])
		if err != nil {
			return goes.ErrorfWith(ctx, "%s: invalid port", args[0])
		}
		fn, err := inv.EepromPath(port)
		if err != nil {
			return goes.ErrorfWith(ctx, "%v", err)
		}
		o.Println(fn)
	default:
		return goes.ErrorfWith(ctx, "%v: unexpected", args[1:])
	}
	return nil
}

// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package clean tears down the platform, last component first.
package clean

import (
	"context"

	"github.com/platinasystems/log"
	"github.com/platinasystems/scd/internal/goes"
	"github.com/platinasystems/scd/internal/machine"
)

const Usage = machine.Usage

func Main(ctx context.Context, args ...string) error {
	if goes.Help(ctx, Usage, args...) {
		return nil
	}
	m, _, args, err := machine.Open(args)
	if err != nil {
		return goes.ErrorfWith(ctx, "%v", err)
	}
	if len(args) > 0 {
		return goes.ErrorfWith(ctx, "%v: unexpected", args)
	}
	sku, p, err := m.Platform()
	if err != nil {
		return goes.ErrorfWith(ctx, "%v", err)
	}
	goes.Progress(ctx, "cleaning", p)
	if err = p.Clean(); err != nil {
		return goes.ErrorfWith(ctx, "%v", err)
	}
	log.Print("info", sku, " cleaned")
	return nil
}

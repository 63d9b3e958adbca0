// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package reset asserts, releases or toggles the platform's reset lines.
package reset

import (
	"context"

	"github.com/platinasystems/scd/internal/goes"
	"github.com/platinasystems/scd/internal/machine"
)

const Usage = machine.Usage + " [in | out]"

func Main(ctx context.Context, args ...string) error {
	if goes.Help(ctx, Usage, args...) {
		return nil
	}
	m, _, args, err := machine.Open(args)
	if err != nil {
		return goes.ErrorfWith(ctx, "%v", err)
	}
	in, out := true, true
	switch len(args) {
	case 0:
	case 1:
		switch args[0] {
		case "in":
			out = false
		case "out":
			in = false
		default:
			return goes.ErrorfWith(ctx, "%s: neither in nor out",
				args[0])
		}
	default:
		return goes.ErrorfWith(ctx, "%v: unexpected", args[1:])
	}
	_, p, err := m.Platform()
	if err != nil {
		return goes.ErrorfWith(ctx, "%v", err)
	}
	if in {
		goes.Progress(ctx, "putting in reset", p)
		if err = p.ResetIn(); err != nil {
			return goes.ErrorfWith(ctx, "in: %v", err)
		}
	}
	if out {
		goes.Progress(ctx, "taking out of reset", p)
		if err = p.ResetOut(); err != nil {
			return goes.ErrorfWith(ctx, "out: %v", err)
		}
	}
	return nil
}

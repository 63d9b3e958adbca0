// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package platforms lists the supported SKUs.
package platforms

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/platinasystems/scd/internal/goes"
	"github.com/platinasystems/scd/internal/hal"
	"github.com/platinasystems/scd/internal/platform"
	boards "github.com/platinasystems/scd/internal/platforms"
)

const Usage = ""

func Main(ctx context.Context, args ...string) error {
	if goes.Help(ctx, Usage, args...) {
		return nil
	}
	if len(args) > 0 {
		return goes.ErrorfWith(ctx, "%v: unexpected", args)
	}
	r := platform.NewRegistry()
	boards.RegisterAll(r)
	w := tabwriter.NewWriter(goes.OutputOf(ctx), 0, 8, 1, ' ', 0)
	for _, sku := range r.Skus() {
		b, _ := r.Lookup(sku)
		p := b(hal.Simulated())
		fmt.Fprintf(w, "%s\t%s\t%d ports\n", sku, p.Name,
			len(p.Inventory.Ports()))
	}
	return w.Flush()
}

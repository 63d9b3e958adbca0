// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package setup brings up the platform of the running system.
package setup

import (
	"context"

	"github.com/platinasystems/log"
	"github.com/platinasystems/scd/internal/goes"
	"github.com/platinasystems/scd/internal/machine"
	"github.com/platinasystems/scd/internal/redis"
	uuid "github.com/satori/go.uuid"
)

const Usage = "[-reset] [-publish] " + machine.Usage

func Main(ctx context.Context, args ...string) error {
	if goes.Help(ctx, Usage, args...) {
		return nil
	}
	m, flag, args, err := machine.Open(args, "-reset", "-publish")
	if err != nil {
		return goes.ErrorfWith(ctx, "%v", err)
	}
	if len(args) > 0 {
		return goes.ErrorfWith(ctx, "%v: unexpected", args)
	}
	run := uuid.NewV4()
	sku, p, err := m.Platform()
	if err != nil {
		return goes.ErrorfWith(ctx, "%v", err)
	}
	log.Print("info", "run ", run, ": setup ", sku)
	goes.Progress(ctx, "setting up", p)
	if err = p.Setup(); err != nil {
		return goes.ErrorfWith(ctx, "%v", err)
	}
	if flag.ByName["-reset"] {
		goes.Progress(ctx, "resetting", p)
		if err = p.ResetIn(); err != nil {
			return goes.ErrorfWith(ctx, "reset in: %v", err)
		}
		if err = p.ResetOut(); err != nil {
			return goes.ErrorfWith(ctx, "reset out: %v", err)
		}
	}
	if flag.ByName["-publish"] || m.Config.Publish {
		conn, err := redis.Dial(m.Config.Redis)
		if err != nil {
			return goes.ErrorfWith(ctx, "redis: %v", err)
		}
		defer conn.Close()
		pub := &redis.Publisher{Conn: conn, Hash: m.Config.Hash}
		if err = pub.Platform(p, sku, run.String()); err != nil {
			return goes.ErrorfWith(ctx, "%v", err)
		}
	}
	log.Print("info", "run ", run, ": ", sku, " is up")
	if m.Sim != nil {
		goes.OutputOf(ctx).Println(len(m.Sim.Sysfs.Writes()),
			"simulated sysfs writes;", len(m.Sim.Modules.Loaded()),
			"modules")
	}
	return nil
}

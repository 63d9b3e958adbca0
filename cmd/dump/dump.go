// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package dump prints the platform's component tree or the synthesized
// configuration of its SCDs.
package dump

import (
	"context"

	"github.com/platinasystems/scd/internal/component"
	"github.com/platinasystems/scd/internal/goes"
	"github.com/platinasystems/scd/internal/machine"
	"github.com/platinasystems/scd/internal/scd"
	"gopkg.in/yaml.v3"
)

const Usage = "[-attrs] [-yaml] [-links] " + machine.Usage

func Main(ctx context.Context, args ...string) error {
	if goes.Help(ctx, Usage, args...) {
		return nil
	}
	m, flag, args, err := machine.Open(args, "-attrs", "-yaml", "-links")
	if err != nil {
		return goes.ErrorfWith(ctx, "%v", err)
	}
	if len(args) > 0 {
		return goes.ErrorfWith(ctx, "%v: unexpected", args)
	}
	_, p, err := m.Platform()
	if err != nil {
		return goes.ErrorfWith(ctx, "%v", err)
	}
	o := goes.OutputOf(ctx)
	switch {
	case flag.ByName["-yaml"]:
		configs := make(map[string]scd.Config)
		for _, s := range scd.Find(p) {
			configs[s.Addr.String()] = s.Synthesize()
		}
		enc := yaml.NewEncoder(o)
		if err = enc.Encode(configs); err != nil {
			return err
		}
		return enc.Close()
	case flag.ByName["-attrs"]:
		for _, s := range scd.Find(p) {
			o.Println(s)
			for _, attr := range s.Config() {
				o.Print("   ", attr.Name, " ", attr.Value, "\n")
			}
		}
	case flag.ByName["-links"]:
		for _, s := range scd.Find(p) {
			for _, link := range s.GpioLinks() {
				o.Println(link)
			}
		}
	default:
		component.Dump(o, p)
	}
	return nil
}

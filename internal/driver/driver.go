// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package driver provides the kernel module driver shared by every
// component kind.
package driver

import (
	"strings"

	"github.com/platinasystems/log"
	"github.com/platinasystems/scd/internal/component"
	"github.com/platinasystems/scd/internal/hal"
)

// Kernel loads a module on Setup and unloads it on Clean. A load
// failure fails the Setup.
type Kernel struct {
	component.Base
	Env    hal.Env
	Module string
	Params []string
}

func NewKernel(env hal.Env, module string, params ...string) *Kernel {
	return &Kernel{Env: env, Module: module, Params: params}
}

func (d *Kernel) Setup() error {
	log.Print("debug", "loading module ", d.Module)
	return d.Env.Modules.Load(d.Module, d.Params...)
}

func (d *Kernel) Clean() error {
	log.Print("debug", "unloading module ", d.Module)
	return d.Env.Modules.Unload(d.Module)
}

func (d *Kernel) String() string {
	if len(d.Params) == 0 {
		return component.Format("KernelDriver", "module", d.Module)
	}
	return component.Format("KernelDriver", "module", d.Module,
		"params", strings.Join(d.Params, " "))
}

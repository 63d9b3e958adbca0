// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package hal bundles the I/O ports a platform tree is built against.
package hal

import (
	"github.com/platinasystems/scd/internal/kmod"
	"github.com/platinasystems/scd/internal/smbus"
	"github.com/platinasystems/scd/internal/sysfs"
)

type Env struct {
	Sysfs      sysfs.Port
	Modules    kmod.Loader
	Smbus      smbus.Opener
	Simulation bool
	// Scd names the SCD kernel driver strategy; empty is the default.
	Scd string
}

// Host returns the ports of real hardware; a non-empty root prefixes
// every sysfs name.
func Host(root string, verbose bool) Env {
	return Env{
		Sysfs:   sysfs.Real{Root: root},
		Modules: kmod.Modprobe{Verbose: verbose},
		Smbus:   smbus.Linux{},
	}
}

// Sim holds the recording ports behind a simulated Env.
type Sim struct {
	Sysfs   *sysfs.Sim
	Modules *kmod.Sim
	Smbus   *smbus.Sim
}

func (s *Sim) Env() Env {
	return Env{
		Sysfs:      s.Sysfs,
		Modules:    s.Modules,
		Smbus:      s.Smbus,
		Simulation: true,
	}
}

func NewSim() *Sim {
	return &Sim{
		Sysfs:   sysfs.NewSim(),
		Modules: new(kmod.Sim),
		Smbus:   new(smbus.Sim),
	}
}

// Simulated is a fresh simulated Env.
func Simulated() Env { return NewSim().Env() }

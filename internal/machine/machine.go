// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package machine resolves the configuration, I/O ports, identity and
// platform shared by every command.
package machine

import (
	"github.com/platinasystems/flags"
	"github.com/platinasystems/log"
	"github.com/platinasystems/parms"
	"github.com/platinasystems/scd/internal/config"
	"github.com/platinasystems/scd/internal/hal"
	"github.com/platinasystems/scd/internal/platform"
	"github.com/platinasystems/scd/internal/platforms"
	"github.com/platinasystems/scd/internal/prefdl"
)

// Options common to every command.
var (
	Flags = []interface{}{"-simulate", "-debug"}
	Parms = []interface{}{"-sku", "-config", "-driver", "-root", "-redis"}
)

const Usage = "[-simulate] [-debug] [-sku SKU] [-config FILE] " +
	"[-driver NAME] [-root DIR] [-redis ADDR]"

type Machine struct {
	Config   *config.Config
	Env      hal.Env
	Sim      *hal.Sim
	Identity *prefdl.Cache
	Registry *platform.Registry
}

// Parse removes the common options and the command's own flags from args.
func Parse(args []string, extra ...string) (*flags.Flags, *parms.Parms,
	[]string) {
	l := append([]interface{}(nil), Flags...)
	for _, s := range extra {
		l = append(l, s)
	}
	flag, args := flags.New(args, l...)
	parm, args := parms.New(args, Parms...)
	return flag, parm, args
}

// Configure applies the command options over the built-in, kernel
// command line and file configuration.
func Configure(flag *flags.Flags, parm *parms.Parms) (*config.Config, error) {
	cfg, err := config.New(parm.ByName["-config"])
	if err != nil {
		return nil, err
	}
	if flag.ByName["-simulate"] {
		cfg.SetSimulation(true)
	}
	if flag.ByName["-debug"] {
		cfg.Debug = true
	}
	for name, p := range map[string]*string{
		"-sku":    &cfg.Sku,
		"-driver": &cfg.Driver,
		"-root":   &cfg.SysfsRoot,
		"-redis":  &cfg.Redis,
	} {
		if s := parm.ByName[name]; len(s) > 0 {
			*p = s
		}
	}
	return cfg, nil
}

func New(cfg *config.Config) *Machine {
	m := &Machine{
		Config:   cfg,
		Registry: platform.NewRegistry(),
	}
	platforms.RegisterAll(m.Registry)
	var src prefdl.Source
	if cfg.IsSimulation() {
		m.Sim = hal.NewSim()
		m.Env = m.Sim.Env()
		src = prefdl.Sim{Sku: cfg.Sku}
	} else {
		m.Env = hal.Host(cfg.SysfsRoot, cfg.Debug)
		if len(cfg.Sku) > 0 {
			src = prefdl.Sim{Sku: cfg.Sku}
		} else {
			src = prefdl.Sysfs{
				Port:    m.Env.Sysfs,
				Modules: m.Env.Modules,
				Paths:   cfg.Eeprom,
			}
		}
	}
	m.Env.Scd = cfg.Driver
	m.Identity = prefdl.NewCache(src)
	return m
}

// Open is New of the configuration selected by args, returning the
// remaining arguments and the command's own flags.
func Open(args []string, extra ...string) (*Machine, *flags.Flags,
	[]string, error) {
	flag, parm, args := Parse(args, extra...)
	cfg, err := Configure(flag, parm)
	if err != nil {
		return nil, nil, nil, err
	}
	return New(cfg), flag, args, nil
}

// Platform builds the tree of the detected SKU.
func (m *Machine) Platform() (string, *platform.Platform, error) {
	sku, b, err := m.Registry.Detect(m.Identity)
	if err != nil {
		return sku, nil, err
	}
	log.Print("debug", "platform ", sku, ", simulation ",
		m.Env.Simulation)
	return sku, b(m.Env), nil
}

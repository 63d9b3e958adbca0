// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package scd

import (
	"path/filepath"
	"time"

	"github.com/platinasystems/log"
	"github.com/platinasystems/scd/internal/component"
	"github.com/platinasystems/scd/internal/device"
	"github.com/platinasystems/scd/internal/hal"
)

// WaitTime bounds the wait for a driver's sysfs nodes after loading it.
var WaitTime = 5 * time.Second

// SonicDriver writes the synthesized configuration into the sonic
// support driver's attribute files, then triggers initialization.
type SonicDriver struct {
	*device.PciKernel
	Scd *Scd
}

func NewSonicDriver(s *Scd, env hal.Env) *SonicDriver {
	return &SonicDriver{
		PciKernel: device.NewPciKernel(&s.Pci, env, SonicSupport),
		Scd:       s,
	}
}

// ConfigPath is the attribute directory of the driver.
func (d *SonicDriver) ConfigPath() string {
	return filepath.Join(d.SysfsPath(), "sonic_support_driver",
		"sonic_support_driver")
}

func (d *SonicDriver) Setup() error {
	if err := d.PciKernel.Setup(); err != nil {
		return err
	}
	port := d.Env.Sysfs
	if err := port.Wait(d.ConfigPath(), WaitTime); err != nil {
		return err
	}
	attrs := d.Scd.Config()
	if n := WriteConfig(port, d.ConfigPath(), attrs); n > 0 {
		log.Print("err", d.Scd, ": ", n, " of ", len(attrs),
			" attributes failed")
	}
	return nil
}

func (d *SonicDriver) Finish() error {
	log.Print("debug", "applying scd configuration")
	port := d.Env.Sysfs
	err := port.WriteFile(filepath.Join(d.SysfsPath(), "init_trigger"), "1")
	if err != nil {
		return err
	}
	log.Print("debug", "setting gpio directions")
	if n := d.Scd.Directions(port); n > 0 {
		log.Print("err", d.Scd, ": ", n, " directions failed")
	}
	return d.PciKernel.Finish()
}

func (d *SonicDriver) ResetIn() error {
	return d.Scd.SetResets(d.Env.Sysfs, true)
}

func (d *SonicDriver) ResetOut() error {
	return d.Scd.SetResets(d.Env.Sysfs, false)
}

func (d *SonicDriver) String() string {
	return component.Format("ScdKernelDriver", "module", d.Module,
		"addr", d.Scd.Addr)
}

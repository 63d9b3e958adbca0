// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package scd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/platinasystems/log"
	"github.com/platinasystems/scd/internal/component"
	"github.com/platinasystems/scd/internal/device"
	"github.com/platinasystems/scd/internal/hal"
)

// MasterBuses is the number of buses behind each SMBus master.
const MasterBuses = 8

var PageSize = os.Getpagesize()

// HwmonDriver declares each object to the scd-hwmon driver, one line
// per object written to new_object, then triggers initialization.
type HwmonDriver struct {
	*device.PciKernel
	Scd *Scd
}

func NewHwmonDriver(s *Scd, env hal.Env) *HwmonDriver {
	return &HwmonDriver{
		PciKernel: device.NewPciKernel(&s.Pci, env, Hwmon),
		Scd:       s,
	}
}

// Objects lists the new_object lines: masters, LEDs, transceivers,
// resets then gpios.
func (s *Scd) Objects() []string {
	var l []string
	for i, addr := range s.Masters {
		l = append(l, fmt.Sprintf("master %#x %d %d", addr, i,
			MasterBuses))
	}
	for _, led := range s.Leds {
		l = append(l, fmt.Sprintf("led %#x %s", led.Addr, led.Name))
	}
	for _, x := range s.Qsfps {
		l = append(l, fmt.Sprintf("qsfp %#x %d", x.Addr, x.ID))
	}
	for _, x := range s.Sfps {
		l = append(l, fmt.Sprintf("sfp %#x %d", x.Addr, x.ID))
	}
	for _, r := range s.Resets {
		l = append(l, fmt.Sprintf("reset %#x %s %d", r.Addr, r.Name,
			r.Bit))
	}
	for _, g := range s.Gpios {
		l = append(l, fmt.Sprintf("gpio %#x %s %d %d %d", g.Addr, g.Name,
			g.Bit, b2i(g.ReadOnly), b2i(g.ActiveLow)))
	}
	return l
}

// Chunks joins lines into newline terminated writes of at most max
// bytes; a line is never split.
func Chunks(lines []string, max int) []string {
	var chunks []string
	sb := new(strings.Builder)
	for _, line := range lines {
		if sb.Len() > 0 && sb.Len()+len(line)+1 > max {
			chunks = append(chunks, sb.String())
			sb.Reset()
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if sb.Len() > 0 {
		chunks = append(chunks, sb.String())
	}
	return chunks
}

func (d *HwmonDriver) Setup() error {
	if err := d.PciKernel.Setup(); err != nil {
		return err
	}
	port := d.Env.Sysfs
	fn := filepath.Join(d.SysfsPath(), "new_object")
	if err := port.Wait(fn, WaitTime); err != nil {
		return err
	}
	failed := 0
	for _, chunk := range Chunks(d.Scd.Objects(), PageSize) {
		if err := port.WriteFile(fn, chunk); err != nil {
			log.Print("err", "write ", fn, ": ", err)
			failed++
		}
	}
	if failed > 0 {
		log.Print("err", d.Scd, ": ", failed, " object writes failed")
	}
	return nil
}

func (d *HwmonDriver) Finish() error {
	log.Print("debug", "applying scd configuration")
	err := d.Env.Sysfs.WriteFile(filepath.Join(d.SysfsPath(),
		"init_trigger"), "1")
	if err != nil {
		return err
	}
	return d.PciKernel.Finish()
}

func (d *HwmonDriver) ResetIn() error {
	return d.Scd.SetResets(d.Env.Sysfs, true)
}

func (d *HwmonDriver) ResetOut() error {
	return d.Scd.SetResets(d.Env.Sysfs, false)
}

func (d *HwmonDriver) String() string {
	return component.Format("ScdHwmonDriver", "module", d.Module,
		"addr", d.Scd.Addr)
}

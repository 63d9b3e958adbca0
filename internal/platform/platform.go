// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package platform provides the root component of a switch, its
// transceiver inventory and the SKU registry of platform builders.
package platform

import (
	"errors"

	"github.com/platinasystems/scd/internal/component"
	"github.com/platinasystems/scd/internal/driver"
	"github.com/platinasystems/scd/internal/hal"
)

var ErrNotFound = errors.New("not found")

// Platform is the root of a board's tree. Every platform loads the
// eeprom and i2c-dev modules before anything else.
type Platform struct {
	component.Component
	Name      string
	Inventory *Inventory
}

func New(env hal.Env, name string) *Platform {
	p := &Platform{Name: name, Inventory: NewInventory()}
	p.AddDriver(driver.NewKernel(env, "eeprom"))
	p.AddDriver(driver.NewKernel(env, "i2c-dev"))
	return p
}

func (p *Platform) String() string {
	return component.Format(p.Name)
}

// Setup brings up the whole tree: the platform's drivers then,
// recursively, every component below it.
func (p *Platform) Setup() error {
	if err := p.Component.Setup(); err != nil {
		return err
	}
	return p.Component.Finish()
}

// Finish is done by Setup.
func (p *Platform) Finish() error { return nil }

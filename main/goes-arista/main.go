// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// This is the goes machine of Arista switches; it sets up, resets and
// tears down the platform drivers of the running SKU.
package main

import (
	"github.com/platinasystems/scd/cmd/clean"
	"github.com/platinasystems/scd/cmd/dump"
	"github.com/platinasystems/scd/cmd/inventory"
	"github.com/platinasystems/scd/cmd/platforms"
	"github.com/platinasystems/scd/cmd/reset"
	"github.com/platinasystems/scd/cmd/setup"
	"github.com/platinasystems/scd/cmd/syseeprom"
	"github.com/platinasystems/scd/internal/goes"
)

var Goes = goes.Selection{
	"clean":     clean.Main,
	"dump":      dump.Main,
	"inventory": inventory.Main,
	"platforms": platforms.Main,
	"reset":     reset.Main,
	"setup":     setup.Main,
	"syseeprom": syseeprom.Main,
}

func main() {
	Goes.Main()
}

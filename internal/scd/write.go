// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package scd

import (
	"github.com/platinasystems/log"
	"github.com/platinasystems/scd/internal/sysfs"
)

// WriteConfig writes attrs into dir, logging each attribute first so
// that a partial configuration can be diagnosed.
func WriteConfig(port sysfs.Port, dir string, attrs sysfs.Attrs) int {
	for _, a := range attrs {
		log.Print("debug", dir, ": ", a)
	}
	return sysfs.WriteAttrs(port, dir, attrs)
}

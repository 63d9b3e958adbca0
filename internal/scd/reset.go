// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package scd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/platinasystems/log"
	"github.com/platinasystems/scd/internal/sysfs"
)

// SetResets drives every reset line, transceivers included, to the
// logical state asserted; each line's value is XORed with its
// active_low file.
func (s *Scd) SetResets(port sysfs.Port, asserted bool) error {
	log.Print("debug", s, " resets asserted ", asserted)
	for _, name := range s.ResetNames(true) {
		dir := filepath.Join(s.SysfsPath(), name)
		fn := filepath.Join(dir, "active_low")
		buf, err := port.ReadFile(fn)
		if err != nil {
			return err
		}
		al, err := strconv.ParseInt(buf, 0, 64)
		if err != nil {
			return fmt.Errorf("%s: %v", fn, err)
		}
		v := "0"
		if asserted != (al != 0) {
			v = "1"
		}
		if err = port.WriteFile(filepath.Join(dir, "value"), v); err != nil {
			return err
		}
	}
	return nil
}

// Directions sets every reset line to an output.
func (s *Scd) Directions(port sysfs.Port) int {
	var attrs sysfs.Attrs
	for _, name := range s.ResetNames(true) {
		attrs.Add(filepath.Join(name, "direction"), "out")
	}
	return sysfs.WriteAttrs(port, s.SysfsPath(), attrs)
}

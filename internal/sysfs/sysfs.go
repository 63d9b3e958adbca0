// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package sysfs is the kernel pseudo-file surface of the platform layer.
// Drivers never touch the file system directly; they go through a Port
// so that the same tree may be walked against real hardware, a scratch
// directory, or a logging simulation. Failing wraps any Port to refuse
// writes to chosen names; it is a test port for driver error paths and
// is never selected by the platform layer.
package sysfs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jpillora/backoff"
	"github.com/platinasystems/log"
)

type Port interface {
	ReadFile(name string) (string, error)
	WriteFile(name, value string) error
	Exists(name string) bool
	// Wait until name exists or max has elapsed.
	Wait(name string, max time.Duration) error
}

// Real is the host file system; Root prefixes every name and is empty
// on hardware.
type Real struct {
	Root string
}

func (r Real) path(name string) string {
	if len(r.Root) == 0 {
		return name
	}
	return filepath.Join(r.Root, name)
}

func (r Real) ReadFile(name string) (string, error) {
	b, err := os.ReadFile(r.path(name))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func (r Real) WriteFile(name, value string) error {
	fn := r.path(name)
	f, err := os.OpenFile(fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	_, err = f.WriteString(value)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("%s: %v", fn, err)
	}
	return nil
}

func (r Real) Exists(name string) bool {
	_, err := os.Stat(r.path(name))
	return err == nil
}

func (r Real) Wait(name string, max time.Duration) error {
	b := &backoff.Backoff{
		Min:    10 * time.Millisecond,
		Max:    500 * time.Millisecond,
		Factor: 2,
		Jitter: false,
	}
	deadline := time.Now().Add(max)
	for !r.Exists(name) {
		if time.Now().After(deadline) {
			return fmt.Errorf("%s: not found after %v", r.path(name), max)
		}
		time.Sleep(b.Duration())
	}
	return nil
}

type Attr struct {
	Name, Value string
}

func (a Attr) String() string { return a.Name + "=" + a.Value }

// Attrs is an ordered list of attribute writes.
type Attrs []Attr

func (l *Attrs) Add(name, value string) {
	*l = append(*l, Attr{name, value})
}

func (l Attrs) Get(name string) (string, bool) {
	for _, a := range l {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func (l Attrs) Names() []string {
	names := make([]string, len(l))
	for i, a := range l {
		names[i] = a.Name
	}
	return names
}

// WriteAttrs writes each attribute to dir/name in order. A failed write
// is logged and the remainder still written; the number of failures is
// returned.
func WriteAttrs(port Port, dir string, attrs Attrs) (failed int) {
	for _, a := range attrs {
		fn := filepath.Join(dir, a.Name)
		if err := port.WriteFile(fn, a.Value); err != nil {
			log.Print("err", "write ", fn, ": ", err)
			failed++
		}
	}
	return
}

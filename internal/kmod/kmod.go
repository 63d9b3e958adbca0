// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package kmod loads and unloads kernel modules.
package kmod

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/platinasystems/log"
	"github.com/platinasystems/url"
	"golang.org/x/sys/unix"
)

type Loader interface {
	Load(name string, params ...string) error
	Unload(name string) error
}

var ProcModules = "/proc/modules"

// Canonical returns the name the kernel lists a module by, e.g.
// /lib/modules/x/sonic-support-driver.ko is sonic_support_driver.
func Canonical(name string) string {
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, ".ko")
	return strings.Replace(name, "-", "_", -1)
}

// IsFile reports whether name refers to a module image rather than a
// module known to modprobe.
func IsFile(name string) bool {
	return strings.HasSuffix(name, ".ko") || strings.Contains(name, "/")
}

// Modprobe is the host loader. Module names go through modprobe so that
// dependencies are resolved; module images (path or URL ending in .ko)
// are inserted directly.
type Modprobe struct {
	Verbose bool
}

func (m Modprobe) Load(name string, params ...string) error {
	if IsFile(name) {
		return m.insmod(name, params...)
	}
	args := append([]string{name}, params...)
	out, err := exec.Command("modprobe", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("modprobe %s: %v: %s", name, err,
			strings.TrimSpace(string(out)))
	}
	if m.Verbose {
		log.Print("info", "loaded ", name)
	}
	return nil
}

func (m Modprobe) insmod(fn string, params ...string) error {
	f, err := url.Open(fn)
	if err != nil {
		return err
	}
	defer f.Close()
	contents, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("%s: %v", fn, err)
	}
	err = unix.InitModule(contents, strings.Join(params, " "))
	if err == unix.EEXIST {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("insmod %s: %v", fn, err)
	}
	if m.Verbose {
		log.Print("info", "inserted ", fn)
	}
	return nil
}

func (m Modprobe) Unload(name string) error {
	name = Canonical(name)
	if !Loaded(name) {
		return nil
	}
	if err := unix.DeleteModule(name, unix.O_NONBLOCK); err != nil {
		return fmt.Errorf("rmmod %s: %v", name, err)
	}
	if m.Verbose {
		log.Print("info", "removed ", name)
	}
	return nil
}

// Loaded reports whether /proc/modules lists the module.
func Loaded(name string) bool {
	f, err := os.Open(ProcModules)
	if err != nil {
		return false
	}
	defer f.Close()
	name = Canonical(name)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		x := strings.Fields(scanner.Text())
		if len(x) > 0 && x[0] == name {
			return true
		}
	}
	return false
}

// Sim logs and records loads and unloads.
type Sim struct {
	mu     sync.Mutex
	loaded []string
	// Fail lists modules that fail to load.
	Fail map[string]error
	Log  []string
}

func (s *Sim) Load(name string, params ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	args := strings.Join(append([]string{name}, params...), " ")
	log.Print("debug", "sim modprobe ", args)
	s.Log = append(s.Log, "load "+args)
	if err := s.Fail[name]; err != nil {
		return err
	}
	name = Canonical(name)
	for _, x := range s.loaded {
		if x == name {
			return nil
		}
	}
	s.loaded = append(s.loaded, name)
	return nil
}

func (s *Sim) Unload(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	log.Print("debug", "sim rmmod ", name)
	s.Log = append(s.Log, "unload "+name)
	name = Canonical(name)
	for i, x := range s.loaded {
		if x == name {
			s.loaded = append(s.loaded[:i], s.loaded[i+1:]...)
			break
		}
	}
	return nil
}

// Loaded lists the modules currently loaded, in load order.
func (s *Sim) Loaded() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.loaded...)
}

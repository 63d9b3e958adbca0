// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package sysfs

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/platinasystems/log"
)

// Sim logs and records writes instead of performing them. Unwritten
// files read as "0".
type Sim struct {
	mu     sync.Mutex
	writes Attrs
	files  map[string]string
}

func NewSim() *Sim {
	return &Sim{files: make(map[string]string)}
}

// Set presets a file as if the kernel had created it.
func (s *Sim) Set(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = value
}

func (s *Sim) ReadFile(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	log.Print("debug", "sim read ", name)
	if v, found := s.files[name]; found {
		return v, nil
	}
	return "0", nil
}

func (s *Sim) WriteFile(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	log.Print("debug", "sim write ", name, " ", value)
	s.writes.Add(name, value)
	s.files[name] = value
	return nil
}

func (s *Sim) Exists(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.files[name]; found {
		return true
	}
	dir := strings.TrimSuffix(name, "/") + "/"
	for k := range s.files {
		if strings.HasPrefix(k, dir) {
			return true
		}
	}
	return false
}

func (s *Sim) Wait(name string, max time.Duration) error {
	log.Print("debug", "sim wait ", name)
	return nil
}

// Writes returns a copy of every write in the order performed.
func (s *Sim) Writes() Attrs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(Attrs(nil), s.writes...)
}

// Reset forgets recorded writes but keeps preset files.
func (s *Sim) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes = s.writes[:0]
}

// Failing is a test Port that fails every write to the listed names.
type Failing struct {
	Port
	Names map[string]bool
}

func (f Failing) WriteFile(name, value string) error {
	if f.Names[name] {
		return &os.PathError{Op: "write", Path: name, Err: os.ErrPermission}
	}
	return f.Port.WriteFile(name, value)
}

// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package config merges the built-in defaults, the kernel command line
// and an optional YAML file. Command flags are applied last by the
// caller.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/platinasystems/log"
	"github.com/platinasystems/scd/internal/cmdline"
	"gopkg.in/yaml.v3"
)

var File = "/etc/goes-arista.yaml"

const DefaultHash = "platform"

type Config struct {
	// Simulation is on unless the kernel was booted by Aboot.
	Simulation *bool    `yaml:"simulation,omitempty"`
	Debug      bool     `yaml:"debug,omitempty"`
	Sku        string   `yaml:"sku,omitempty"`
	SysfsRoot  string   `yaml:"sysfs_root,omitempty"`
	Driver     string   `yaml:"driver,omitempty"`
	Eeprom     []string `yaml:"eeprom,omitempty"`
	Redis      string   `yaml:"redis,omitempty"`
	Hash       string   `yaml:"hash,omitempty"`
	Publish    bool     `yaml:"publish,omitempty"`
}

func Default() *Config {
	sim := true
	return &Config{Simulation: &sim, Hash: DefaultHash}
}

// New reads the command line then the named file over Default. An empty
// name is File, which may be absent.
func New(fn string) (*Config, error) {
	c := Default()
	if m, err := cmdline.Read(); err != nil {
		log.Print("debug", "cmdline: ", err)
	} else {
		c.Cmdline(m)
	}
	optional := len(fn) == 0
	if optional {
		fn = File
	}
	err := c.Load(fn)
	if err != nil && !(optional && errors.Is(err, os.ErrNotExist)) {
		return nil, err
	}
	return c, nil
}

func (c *Config) Cmdline(m cmdline.Cmdline) {
	if m.Has(cmdline.Aboot) {
		c.SetSimulation(false)
	}
	if m.Has(cmdline.Debug) {
		c.Debug = true
	}
}

// Load overlays the settings present in the named YAML file.
func (c *Config) Load(fn string) error {
	f, err := os.Open(fn)
	if err != nil {
		return err
	}
	defer f.Close()
	if err = c.Decode(f); err != nil {
		return fmt.Errorf("%s: %w", fn, err)
	}
	return nil
}

func (c *Config) Decode(r io.Reader) error {
	err := yaml.NewDecoder(r).Decode(c)
	if err == io.EOF {
		err = nil
	}
	return err
}

func (c *Config) SetSimulation(t bool) { c.Simulation = &t }

func (c *Config) IsSimulation() bool {
	return c.Simulation == nil || *c.Simulation
}

func (c *Config) WriteTo(w io.Writer) (int64, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(b)
	return int64(n), err
}

// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package prefdl reads the system identity record, whose SKU selects
// the platform.
package prefdl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/platinasystems/eeprom"
	"github.com/platinasystems/log"
	"github.com/platinasystems/scd/internal/kmod"
	"github.com/platinasystems/scd/internal/sysfs"
)

const Sku = "SKU"

var (
	ErrNoEeprom = errors.New("could not find valid system eeprom")
	ErrNoSku    = errors.New("system eeprom has no " + Sku)
)

// Paths are the candidate system eeprom files, tried in order.
var Paths = []string{
	"/sys/bus/i2c/drivers/eeprom/1-0052/eeprom",
}

type Record map[string]string

// Keys are sorted.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (r Record) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, k := range r.Keys() {
		i, err := fmt.Fprintf(w, "%s: %s\n", k, r[k])
		n += int64(i)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// Decode parses the "Key: Value" lines of a decoded prefdl.
func Decode(r io.Reader) (Record, error) {
	rec := make(Record)
	scan := bufio.NewScanner(r)
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if len(line) == 0 {
			continue
		}
		k, v, found := strings.Cut(line, ":")
		if !found {
			return nil, fmt.Errorf("%q: missing separator", line)
		}
		rec[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	if err := scan.Err(); err != nil {
		return nil, err
	}
	if len(rec) == 0 {
		return nil, errors.New("empty record")
	}
	return rec, nil
}

type Source interface {
	Read() (Record, error)
}

// Sysfs reads the record through the eeprom kernel driver.
type Sysfs struct {
	Port    sysfs.Port
	Modules kmod.Loader
	// Paths overrides the package Paths.
	Paths []string
}

func (s Sysfs) Read() (Record, error) {
	if err := s.Modules.Load("eeprom"); err != nil {
		return nil, err
	}
	paths := s.Paths
	if len(paths) == 0 {
		paths = Paths
	}
	for _, fn := range paths {
		if !s.Port.Exists(fn) {
			continue
		}
		log.Print("debug", "reading system eeprom from ", fn)
		text, err := s.Port.ReadFile(fn)
		if err == nil {
			var rec Record
			rec, err = Decode(strings.NewReader(text))
			if err == nil {
				return rec, nil
			}
		}
		log.Print("warning", "could not obtain prefdl from ", fn, ": ",
			err)
	}
	return nil, ErrNoEeprom
}

// Onie reads an ONIE TLV eeprom, its part number being the SKU.
type Onie struct {
	Bus, Addr int
}

func (o Onie) Read() (Record, error) {
	d := eeprom.Device{
		BusIndex:   o.Bus,
		BusAddress: o.Addr,
	}
	if err := d.GetInfo(); err != nil {
		return nil, fmt.Errorf("eeprom %d-%04x: %v", o.Bus, o.Addr, err)
	}
	rec := make(Record)
	for k, v := range map[string]string{
		Sku:            d.Fields.PartNumber,
		"SerialNumber": d.Fields.SerialNumber,
		"ProductName":  d.Fields.ProductName,
		"PlatformName": d.Fields.PlatformName,
		"Manufacturer": d.Fields.Manufacturer,
	} {
		if len(v) > 0 {
			rec[k] = v
		}
	}
	return rec, nil
}

// Sim is the identity of a simulated system.
type Sim struct {
	Sku string
}

func (s Sim) Read() (Record, error) {
	sku := s.Sku
	if len(sku) == 0 {
		sku = "simulation"
	}
	log.Print("debug", "bypass prefdl reading, sku ", sku)
	return Record{Sku: sku}, nil
}

// Cache reads its source once.
type Cache struct {
	Source Source

	once sync.Once
	rec  Record
	err  error
}

func NewCache(src Source) *Cache { return &Cache{Source: src} }

func (c *Cache) Record() (Record, error) {
	c.once.Do(func() {
		c.rec, c.err = c.Source.Read()
		if c.err == nil {
			if _, found := c.rec[Sku]; !found {
				c.rec, c.err = nil, ErrNoSku
			}
		}
	})
	return c.rec, c.err
}

func (c *Cache) Sku() (string, error) {
	rec, err := c.Record()
	if err != nil {
		return "", err
	}
	return rec[Sku], nil
}

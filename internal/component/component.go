// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package component describes a board as a tree of hardware components,
// each owning an ordered list of drivers and an ordered list of child
// components.
//
// Bring-up is two phase. A component's Setup runs every driver's Setup
// then every driver's Finish; its Finish brings up each child the same
// way, all children's Setup before any child's Finish, since children
// need their parent fully initialized. Clean and ResetIn tear down in
// reverse: children last to first, then drivers last to first. ResetOut
// runs drivers then children in attach order.
//
// The first error aborts the walk and is returned as is; nothing already
// done is rolled back.
package component

import (
	"fmt"
	"io"
	"reflect"
	"strings"
)

type Driver interface {
	Setup() error
	Finish() error
	Clean() error
	ResetIn() error
	ResetOut() error
	String() string
}

// Base is embedded by drivers to default every verb to a no-op.
type Base struct{}

func (Base) Setup() error    { return nil }
func (Base) Finish() error   { return nil }
func (Base) Clean() error    { return nil }
func (Base) ResetIn() error  { return nil }
func (Base) ResetOut() error { return nil }

type Node interface {
	Setup() error
	Finish() error
	Clean() error
	ResetIn() error
	ResetOut() error
	Components() []Node
	Drivers() []Driver
	String() string
}

// Component is embedded by each concrete kind, which adds its typed
// configuration and overrides String.
type Component struct {
	components []Node
	drivers    []Driver
}

func (c *Component) String() string { return "Component()" }

func (c *Component) Components() []Node { return c.components }

func (c *Component) Drivers() []Driver { return c.drivers }

func (c *Component) AddComponent(n Node) *Component {
	if isNil(n) {
		panic("component: nil component")
	}
	c.components = append(c.components, n)
	return c
}

func (c *Component) AddComponents(l ...Node) *Component {
	for _, n := range l {
		c.AddComponent(n)
	}
	return c
}

func (c *Component) AddDriver(d Driver) *Component {
	if isNil(d) {
		panic("component: nil driver")
	}
	c.drivers = append(c.drivers, d)
	return c
}

func (c *Component) Setup() error {
	for _, d := range c.drivers {
		if err := d.Setup(); err != nil {
			return err
		}
	}
	for _, d := range c.drivers {
		if err := d.Finish(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Component) Finish() error {
	for _, n := range c.components {
		if err := n.Setup(); err != nil {
			return err
		}
	}
	for _, n := range c.components {
		if err := n.Finish(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Component) Clean() error {
	for i := len(c.components) - 1; i >= 0; i-- {
		if err := c.components[i].Clean(); err != nil {
			return err
		}
	}
	for i := len(c.drivers) - 1; i >= 0; i-- {
		if err := c.drivers[i].Clean(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Component) ResetIn() error {
	for i := len(c.components) - 1; i >= 0; i-- {
		if err := c.components[i].ResetIn(); err != nil {
			return err
		}
	}
	for i := len(c.drivers) - 1; i >= 0; i-- {
		if err := c.drivers[i].ResetIn(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Component) ResetOut() error {
	for _, d := range c.drivers {
		if err := d.ResetOut(); err != nil {
			return err
		}
	}
	for _, n := range c.components {
		if err := n.ResetOut(); err != nil {
			return err
		}
	}
	return nil
}

// Up brings up a root: Setup then Finish.
func Up(n Node) error {
	if err := n.Setup(); err != nil {
		return err
	}
	return n.Finish()
}

// Walk calls f for n and each of its descendants, parents first.
func Walk(n Node, f func(n Node, depth int) error) error {
	return walk(n, 0, f)
}

func walk(n Node, depth int, f func(Node, int) error) error {
	if err := f(n, depth); err != nil {
		return err
	}
	for _, c := range n.Components() {
		if err := walk(c, depth+1, f); err != nil {
			return err
		}
	}
	return nil
}

// Dump prints the tree, one node per line; a lone driver shares its
// node's line.
func Dump(w io.Writer, n Node) {
	Walk(n, func(n Node, depth int) error {
		indent := strings.Repeat("   ", 2*depth)
		fmt.Fprint(w, indent, "- ", n)
		ds := n.Drivers()
		if len(ds) == 1 {
			fmt.Fprint(w, " => ", ds[0])
		}
		fmt.Fprintln(w)
		if len(ds) > 1 {
			fmt.Fprintln(w, indent+"   drivers:")
			for _, d := range ds {
				fmt.Fprintln(w, indent+"      *", d)
			}
		}
		if len(n.Components()) > 0 {
			fmt.Fprintln(w, indent+"   components:")
		}
		return nil
	})
}

// Format renders name(k=v, ...) as used by each kind's String.
func Format(name string, kv ...interface{}) string {
	sb := new(strings.Builder)
	sb.WriteString(name)
	sb.WriteByte('(')
	for i := 0; i+1 < len(kv); i += 2 {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprint(sb, kv[i], "=", kv[i+1])
	}
	sb.WriteByte(')')
	return sb.String()
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func,
		reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package redis publishes platform state to the goes redis server.
package redis

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/garyburd/redigo/redis"
	"github.com/platinasystems/atsock"
	"github.com/platinasystems/scd/internal/platform"
	"github.com/platinasystems/scd/internal/scd"
)

const (
	Timeout = 500 * time.Millisecond
	// Socket is the abstract socket of the goes redis server.
	Socket = "redisd"
)

// Dial connects to addr: empty or @NAME is an abstract socket, a path
// is a unix socket and anything else is a TCP HOST:PORT.
func Dial(addr string) (redis.Conn, error) {
	var conn net.Conn
	var err error
	switch {
	case len(addr) == 0:
		conn, err = atsock.Dial(Socket)
	case strings.HasPrefix(addr, "@"):
		conn, err = atsock.Dial(addr[1:])
	case strings.Contains(addr, "/"):
		conn, err = net.DialTimeout("unix", addr, Timeout)
	default:
		conn, err = net.DialTimeout("tcp", addr, Timeout)
	}
	if err != nil {
		return nil, err
	}
	return redis.NewConn(conn, Timeout, Timeout), nil
}

// Key brackets a key component that itself has dots.
//
//	0000:02:00.0 -> [0000:02:00.0]
func Key(v interface{}) string {
	s := fmt.Sprint(v)
	if strings.Contains(s, ".") {
		s = fmt.Sprint("[", s, "]")
	}
	return s
}

// Publisher sets fields of one hash.
type Publisher struct {
	Conn redis.Conn
	Hash string
}

func (p *Publisher) Hset(field string, v interface{}) error {
	_, err := p.Conn.Do("HSET", p.Hash, field, v)
	if err != nil {
		return fmt.Errorf("hset %s %s: %v", p.Hash, field, err)
	}
	return nil
}

// Platform publishes the identity of a platform, its SCDs and the
// eeprom of each port.
func (p *Publisher) Platform(pl *platform.Platform, sku, runID string) error {
	fields := [][2]interface{}{
		{"platform.sku", sku},
		{"platform.name", pl.Name},
		{"platform.run", runID},
	}
	for _, s := range scd.Find(pl) {
		prefix := fmt.Sprint("scd.", Key(s.Addr), ".")
		fields = append(fields,
			[2]interface{}{prefix + "driver", s.Driver},
			[2]interface{}{prefix + "gpios", len(s.Groups())},
			[2]interface{}{prefix + "leds", len(s.Leds)},
		)
	}
	inv := pl.Inventory
	for _, port := range inv.Ports() {
		prefix := fmt.Sprint("port.", port, ".")
		kind := "unknown"
		switch {
		case inv.IsQsfp(port):
			kind = "qsfp"
		case inv.IsSfp(port):
			kind = "sfp"
		}
		fn, _ := inv.EepromPath(port)
		fields = append(fields,
			[2]interface{}{prefix + "kind", kind},
			[2]interface{}{prefix + "eeprom", fn},
		)
	}
	for _, kv := range fields {
		if err := p.Hset(kv[0].(string), kv[1]); err != nil {
			return err
		}
	}
	return nil
}

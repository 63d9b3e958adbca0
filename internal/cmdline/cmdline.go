// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package cmdline maps the kernel command line, whose Aboot and
// arista-debug flags select hardware and debug mode.
package cmdline

import (
	"os"
	"regexp"
	"sort"
	"strings"
)

const (
	Aboot = "Aboot"
	Debug = "arista-debug"
)

type Cmdline map[string]string

var File = "/proc/cmdline"

var argRe = regexp.MustCompile(`\S+='[^']*'|\S+="[^"]*"|\S+`)

// Read maps File.
func Read() (Cmdline, error) {
	b, err := os.ReadFile(File)
	if err != nil {
		return nil, err
	}
	return Parse(string(b)), nil
}

func Parse(s string) Cmdline {
	m := make(Cmdline)
	for _, arg := range argRe.FindAllString(s, -1) {
		m.Set(arg)
	}
	return m
}

// Set is m[KEY] = VALUE if kv has '=' and m[KEY] = "true" otherwise.
// Quotes around VALUE are removed.
func (m Cmdline) Set(kv string) {
	k, v, found := strings.Cut(kv, "=")
	if !found || len(k) == 0 {
		m[kv] = "true"
		return
	}
	if n := len(v); n >= 2 && (v[0] == '\'' || v[0] == '"') &&
		v[n-1] == v[0] {
		v = v[1 : n-1]
	}
	m[k] = v
}

func (m Cmdline) Has(k string) bool {
	_, found := m[k]
	return found
}

func (m Cmdline) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String reformats the command line with sorted keys.
func (m Cmdline) String() string {
	var sb strings.Builder
	for _, k := range m.Keys() {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(k)
		if v := m[k]; v != "true" {
			sb.WriteByte('=')
			if strings.ContainsAny(v, " \t") {
				v = "'" + v + "'"
			}
			sb.WriteString(v)
		}
	}
	return sb.String()
}

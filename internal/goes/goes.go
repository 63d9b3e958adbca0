// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package goes runs a selection of commands with the command path,
// output and usage carried by the context.
package goes

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"
)

var Prog = filepath.Base(os.Args[0])

type Func = func(context.Context, ...string) error

type Selection map[string]Func

func Version(ctx context.Context, args ...string) error {
	if bi, ok := debug.ReadBuildInfo(); ok {
		OutputOf(ctx).Println(bi.Main.Version)
	}
	return nil
}

func (m Selection) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Main runs the command named by os.Args and exits on error.
func (m Selection) Main() {
	StyleLog()
	ctx, stop := signal.NotifyContext(context.Background(),
		TerminationSignals...)
	defer stop()
	if _, found := m["version"]; !found {
		m["version"] = Version
	}
	ctx = WithOutput(ctx, os.Stdout)
	defer recovery()
	if err := m.Run(ctx, os.Args[1:]...); err != nil {
		PlainLog()
		Fatal(err)
	}
}

// Run is Select with the program as the root of the path.
func (m Selection) Run(ctx context.Context, args ...string) error {
	ctx = WithRoot(ctx, m)
	ctx = WithPath(ctx, Prog)
	ctx, args = Preempt(ctx, args)
	return m.Select(ctx, args...)
}

func (m Selection) Select(ctx context.Context, args ...string) error {
	preemption := Preemption(ctx)
	if len(args) == 0 {
		switch preemption {
		case "complete":
			m.complete(ctx)
		case "help":
			Usage(ctx, "COMMAND [OPTION]...\n", m)
		default:
			if f, found := m[""]; found {
				return f(ctx)
			}
			return ErrorfWith(ctx, "incomplete")
		}
		return nil
	}
	f, found := m[args[0]]
	if found {
		return f(WithPath(ctx, args[0]), args[1:]...)
	}
	switch preemption {
	case "complete":
		m.complete(ctx, args...)
	case "help":
		Usage(ctx, "COMMAND [OPTION]...\n", m)
	default:
		return ErrorfWith(ctx, "%s: command not found", args[0])
	}
	return nil
}

func (m Selection) complete(ctx context.Context, args ...string) {
	o := OutputOf(ctx)
	for _, s := range CompleteStrings(m.Keys(), args) {
		o.Println(s)
	}
}

func recovery() {
	r := recover()
	if r == nil {
		return
	}
	sb := new(strings.Builder)
	fmt.Fprintln(sb, r)
	pcs := make([]uintptr, 64)
	if n := runtime.Callers(2, pcs); n > 0 {
		frames := runtime.CallersFrames(pcs[:n])
		for more := true; more; {
			var f runtime.Frame
			f, more = frames.Next()
			if strings.Contains(f.File, "runtime/") {
				continue
			}
			fmt.Fprint(sb, "    ", f.Function, "()\n")
			fmt.Fprint(sb, "        ", f.File, ":", f.Line, "\n")
		}
	}
	PlainLog()
	Fatal(sb)
}

// CompleteStrings are those of l prefixed by the last of args.
func CompleteStrings(l []string, args []string) (c []string) {
	var arg string
	if n := len(args); n > 0 {
		arg = args[n-1]
	}
	for _, s := range l {
		if len(s) > 0 && strings.HasPrefix(s, arg) {
			c = append(c, s)
		}
	}
	return
}

// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package goes

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

type key int

const (
	outputKey key = iota
	pathKey
	rootKey
)

// Output discards everything once its context is done.
type Output struct {
	ctx context.Context
	w   io.Writer
}

func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey, w)
}

func OutputOf(ctx context.Context) Output {
	w, _ := ctx.Value(outputKey).(io.Writer)
	return Output{ctx, w}
}

func (o Output) Write(b []byte) (int, error) {
	if err := o.ctx.Err(); err != nil {
		return 0, err
	}
	if o.w == nil {
		return len(b), nil
	}
	return o.w.Write(b)
}

func (o Output) Print(args ...interface{}) { fmt.Fprint(o, args...) }

func (o Output) Printf(format string, args ...interface{}) {
	fmt.Fprintf(o, format, args...)
}

func (o Output) Println(args ...interface{}) { fmt.Fprintln(o, args...) }

// Interactive is whether stderr is a terminal.
func Interactive() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Progress echoes a line to stderr of interactive runs.
func Progress(ctx context.Context, args ...interface{}) {
	if Interactive() && ctx.Err() == nil {
		fmt.Fprint(os.Stderr, strings.Join(PathOf(ctx), " "), ": ")
		fmt.Fprintln(os.Stderr, args...)
	}
}

// PathOf returns each command name appended to the context, first to
// last.
func PathOf(ctx context.Context) []string {
	l, _ := ctx.Value(pathKey).([]string)
	return l
}

func WithPath(ctx context.Context, name string) context.Context {
	l := PathOf(ctx)
	return context.WithValue(ctx, pathKey,
		append(l[:len(l):len(l)], name))
}

func RootOf(ctx context.Context) Selection {
	if m, ok := ctx.Value(rootKey).(Selection); ok {
		return m
	}
	return Selection{}
}

func WithRoot(ctx context.Context, m Selection) context.Context {
	return context.WithValue(ctx, rootKey, m)
}

var preemptive = map[string]bool{
	"complete": true,
	"help":     true,
}

// Preemption is "complete" or "help" if the command path was preempted
// by either and empty otherwise.
func Preemption(ctx context.Context) string {
	if p := PathOf(ctx); len(p) > 1 && preemptive[p[1]] {
		return p[1]
	}
	return ""
}

// Preempt moves leading "complete" and "help" arguments to the path.
func Preempt(ctx context.Context, args []string) (context.Context, []string) {
	for len(args) > 0 && preemptive[args[0]] {
		ctx = WithPath(ctx, args[0])
		args = args[1:]
	}
	return ctx, args
}

// Usage prints "usage: PATH ARGS" where PATH omits any preemption.
// String ARGS are printed as is; a Selection lists its commands.
func Usage(ctx context.Context, args ...interface{}) {
	o := OutputOf(ctx)
	o.Print("usage:")
	p := PathOf(ctx)
	if len(p) > 1 && preemptive[p[1]] {
		p = append(p[:1:1], p[2:]...)
	}
	for _, s := range p {
		o.Print(" ", s)
	}
	if len(args) == 0 {
		o.Println()
		return
	}
	o.Print(" ")
	for _, v := range args {
		if sel, ok := v.(Selection); ok {
			for _, s := range sel.Keys() {
				if len(s) > 0 {
					o.Println(" ", s)
				}
			}
		} else {
			o.Print(v)
		}
	}
}

// ErrorfWith prefaces the error with the command path.
func ErrorfWith(ctx context.Context, format string, args ...interface{}) error {
	return fmt.Errorf(strings.Join(PathOf(ctx), " ")+": "+format, args...)
}

// Help prints the usage of a command preempted by "help" or completes
// its options for "complete". It is false if the command should run.
func Help(ctx context.Context, usage string, args ...string) bool {
	switch Preemption(ctx) {
	case "help":
		Usage(ctx, usage, "\n")
	case "complete":
		o := OutputOf(ctx)
		for _, s := range CompleteStrings(Options(usage), args) {
			o.Println(s)
		}
	default:
		return false
	}
	return true
}

// Options are the dashed words of a usage.
func Options(usage string) []string {
	var l []string
	for _, s := range strings.FieldsFunc(usage, func(r rune) bool {
		return strings.ContainsRune(" \t\n[]|", r)
	}) {
		if strings.HasPrefix(s, "-") {
			l = append(l, s)
		}
	}
	return l
}

// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package syseeprom

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/platinasystems/scd/internal/cmdline"
	"github.com/platinasystems/scd/internal/config"
	"github.com/platinasystems/scd/internal/goes"
)

func testContext(t *testing.T, buf *bytes.Buffer) context.Context {
	dir := t.TempDir()
	cl, fn := cmdline.File, config.File
	t.Cleanup(func() { cmdline.File, config.File = cl, fn })
	cmdline.File = filepath.Join(dir, "cmdline")
	config.File = filepath.Join(dir, "goes-arista.yaml")
	ctx := goes.WithOutput(context.Background(), buf)
	return goes.WithPath(goes.WithPath(ctx, "goes"), "syseeprom")
}

func TestSyseeprom(t *testing.T) {
	buf := new(bytes.Buffer)
	ctx := testContext(t, buf)
	if err := Main(ctx, "-sku", "DCS-7060CX-32S"); err != nil {
		t.Fatal(err)
	}
	if s := buf.String(); s != "SKU: DCS-7060CX-32S\n" {
		t.Errorf("%q", s)
	}
	buf.Reset()
	if err := Main(ctx); err != nil {
		t.Fatal(err)
	}
	if s := buf.String(); !strings.HasSuffix(s, "simulation\n") {
		t.Errorf("%q", s)
	}
}

// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/platinasystems/scd/internal/goes"
)

func TestHelp(t *testing.T) {
	buf := new(bytes.Buffer)
	ctx := goes.WithOutput(context.Background(), buf)
	if err := Goes.Run(ctx, "help"); err != nil {
		t.Fatal(err)
	}
	for _, name := range Goes.Keys() {
		if !strings.Contains(buf.String(), "  "+name+"\n") {
			t.Error("missing", name)
		}
	}
	buf.Reset()
	if err := Goes.Run(ctx, "help", "dump"); err != nil {
		t.Fatal(err)
	}
	if s := buf.String(); !strings.HasSuffix(s, " dump [-attrs] "+
		"[-yaml] [-links] [-simulate] [-debug] [-sku SKU] "+
		"[-config FILE] [-driver NAME] [-root DIR] [-redis ADDR]\n") {
		t.Errorf("%q", s)
	}
}

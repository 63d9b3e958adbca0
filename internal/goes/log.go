// Copyright © 2018-2022 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package goes

import (
	"log"
	"os"
	"syscall"
)

var Fatal = log.Fatal

var TerminationSignals = []os.Signal{
	os.Interrupt,
	syscall.SIGTERM,
}

func PlainLog() {
	log.SetFlags(0)
	log.SetPrefix(Prog + ": ")
}

func StyleLog() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Lshortfile)
	log.SetPrefix(Prog + ":")
}

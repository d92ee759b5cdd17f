// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package siginfo

import (
	"os"
	"syscall"
)

// SIGINFO isn't part of the stdlib, but it's 29 on the BSDs
var Signal os.Signal = syscall.Signal(29)

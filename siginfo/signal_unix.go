// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

//go:build !windows && !plan9 && !js && !wasip1 && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package siginfo

import (
	"os"
	"syscall"
)

// no SIGINFO here, use SIGUSR1 (kill -USR1 <pid>)
var Signal os.Signal = syscall.SIGUSR1

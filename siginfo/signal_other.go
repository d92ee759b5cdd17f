// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

//go:build windows || plan9 || js || wasip1

package siginfo

import "os"

var Signal os.Signal

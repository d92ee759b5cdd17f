// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

// Package siginfo runs a function each time the user asks for status,
// ^T on systems with SIGINFO, SIGUSR1 elsewhere.
package siginfo

import (
	"os"
	"os/signal"
)

// SetHandler calls f for every status signal until the returned stop is called.
// Where there is no status signal it does nothing.
func SetHandler(f func()) (stop func()) {
	if Signal == nil {
		return func() {}
	}
	ch := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(ch, Signal)

	go func() {
		defer close(done)
		for range ch {
			f()
		}
	}()
	return func() {
		signal.Stop(ch)
		close(ch)
		<-done
	}
}

// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

// Package progress prints how far each worker is through its partition.
// The cursors it reads are written by the workers without synchronization
// beyond an atomic store, so what it prints may be slightly stale.
package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"leb.io/hrff"

	"leb.io/twinprime/partition"
)

// DefaultInterval is how often the line is redrawn.
const DefaultInterval = 500 * time.Millisecond

// Reporter redraws one carriage-returned line with a percentage per worker.
type Reporter struct {
	w        io.Writer
	parts    []*partition.Partition
	interval time.Duration
	poke     rate.Sometimes
	start    time.Time

	mu      sync.Mutex // serializes writes to w
	stopped bool
	stop    chan struct{}
	done chan struct{}
	once sync.Once
}

// New returns a Reporter for parts writing to w. It does nothing until Start.
func New(w io.Writer, parts []*partition.Partition, interval time.Duration) *Reporter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Reporter{
		w:        w,
		parts:    parts,
		interval: interval,
		poke:     rate.Sometimes{Interval: interval / 5},
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Line formats the current state, e.g. "12.50% 3.10% 100.00% 1.2 Gn/s".
func (r *Reporter) Line() string {
	var sb strings.Builder
	var tested uint64
	for _, p := range r.parts {
		f := p.Progress()
		tested += uint64(f * float64(p.Len()))
		fmt.Fprintf(&sb, "%.2f%% ", f*100)
	}
	if !r.start.IsZero() {
		if d := time.Since(r.start); d > 0 {
			speed := hrff.Float64{V: float64(tested) / d.Seconds(), U: "n/s"}
			fmt.Fprintf(&sb, "%h", speed)
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

func (r *Reporter) draw() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}
	fmt.Fprintf(r.w, "\r%s", r.Line())
}

// Start redraws the line every interval until Stop.
func (r *Reporter) Start() {
	r.start = time.Now()
	go func() {
		defer close(r.done)
		t := time.NewTicker(r.interval)
		defer t.Stop()
		for {
			select {
			case <-r.stop:
				return
			case <-t.C:
				r.draw()
			}
		}
	}()
}

// Poke redraws now, at most a few times per interval. It is safe to call
// from a signal handler goroutine and does nothing after Stop.
func (r *Reporter) Poke() {
	r.poke.Do(r.draw)
}

// Stop ends the redraw loop, draws the final state and ends the line.
func (r *Reporter) Stop() {
	r.once.Do(func() {
		close(r.stop)
		if !r.start.IsZero() {
			<-r.done
		}
		r.draw()
		r.mu.Lock()
		r.stopped = true
		fmt.Fprintln(r.w)
		r.mu.Unlock()
	})
}

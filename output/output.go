// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

// Package output writes and reads the numbered twin prime listing:
//
//	1.	1000000007 1000000009
//	2.	1000000409 1000000411
//
//	2 pairs.
package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"leb.io/twinprime/pairs"
)

// ErrFormat is returned when a listing can not be parsed.
var ErrFormat = errors.New("output: malformed listing")

// Write writes ps to w, one numbered pair per line, then the pair count.
// It returns the number of pairs written.
func Write(w io.Writer, ps []pairs.Pair) (int, error) {
	bw := bufio.NewWriter(w)
	for i, p := range ps {
		if _, err := fmt.Fprintf(bw, "%d.\t%d %d\n", i+1, p.Low, p.High); err != nil {
			return i, err
		}
	}
	if _, err := fmt.Fprintf(bw, "\n%d pairs.\n", len(ps)); err != nil {
		return len(ps), err
	}
	return len(ps), bw.Flush()
}

// Read parses a listing produced by Write and checks the trailing count.
func Read(r io.Reader) ([]pairs.Pair, error) {
	var ps []pairs.Pair
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		s := sc.Text()
		if s == "" {
			break
		}
		var idx int
		var p pairs.Pair
		if _, err := fmt.Sscanf(s, "%d.\t%d %d", &idx, &p.Low, &p.High); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrFormat, line, err)
		}
		if idx != len(ps)+1 {
			return nil, fmt.Errorf("%w: line %d: index %d", ErrFormat, line, idx)
		}
		ps = append(ps, p)
	}
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: missing pair count", ErrFormat)
	}
	var n int
	s := strings.TrimSpace(sc.Text())
	if _, err := fmt.Sscanf(s, "%d pairs.", &n); err != nil {
		return nil, fmt.Errorf("%w: summary %q", ErrFormat, s)
	}
	if n != len(ps) {
		return nil, fmt.Errorf("%w: summary says %d pairs, read %d", ErrFormat, n, len(ps))
	}
	return ps, nil
}

// Save writes ps to path, compressed according to its suffix.
// If the file can not be created or written 0 is returned with the error;
// ps itself is untouched and may be written elsewhere.
func Save(path string, ps []pairs.Pair) (int, error) {
	wc, err := Create(path)
	if err != nil {
		return 0, err
	}
	n, err := Write(wc, ps)
	if cerr := wc.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, fmt.Errorf("output: %s: %w", path, err)
	}
	return n, nil
}

// Load reads a listing saved by Save.
func Load(path string) ([]pairs.Pair, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	ps, err := Read(rc)
	if err != nil {
		return nil, fmt.Errorf("output: %s: %w", path, err)
	}
	return ps, nil
}

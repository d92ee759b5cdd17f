// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"leb.io/twinprime/primes"
)

func parse(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q: %w", s, err)
	}
	if n > primes.Big {
		return 0, fmt.Errorf("%d is larger than %d", n, uint64(primes.Big))
	}
	return n, nil
}

func newPrimesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "primes <from> [to]",
		Short: "Print the first prime >= from, or every prime in [from, to]",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lo, err := parse(args[0])
			if err != nil {
				return err
			}
			w := bufio.NewWriter(cmd.OutOrStdout())
			if len(args) == 1 {
				fmt.Fprintln(w, primes.NextPrime(lo))
				return w.Flush()
			}
			hi, err := parse(args[1])
			if err != nil {
				return err
			}
			if hi < lo {
				return fmt.Errorf("to %d < from %d", hi, lo)
			}
			primes.Primes(lo, hi, func(p uint64) bool {
				fmt.Fprintln(w, p)
				return true
			})
			return w.Flush()
		},
	}
}

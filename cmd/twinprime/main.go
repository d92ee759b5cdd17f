// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

// Command twinprime finds the twin primes in a range and writes them to a file.
//
//	twinprime --from 1000000000 --to 2000000000 --workers 8 -o primePairs.txt.zst
//	twinprime primes 1000000000 1000000100
//
// While the search runs a line with the percentage done by each worker is
// redrawn on stderr, ^T (SIGUSR1 where there is no SIGINFO) redraws it at once.
package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"leb.io/hrff"

	"leb.io/twinprime"
	"leb.io/twinprime/check"
	"leb.io/twinprime/output"
	"leb.io/twinprime/pairs"
	"leb.io/twinprime/progress"
	"leb.io/twinprime/siginfo"
)

// DefaultOutput is where the pairs go when -o is not given.
const DefaultOutput = "primePairs.txt"

type options struct {
	from, to   uint32
	workers    int
	skew       float64
	headroom   float64
	output     string
	config     string
	hash       string
	interval   time.Duration
	quiet      bool
	verify     bool
	cpuprofile string
	memprofile string
	verbose    bool

	log *zap.Logger
	cpu *os.File
}

func hi(v int, u string) hrff.Int64 {
	return hrff.Int64{V: int64(v), U: u}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func newRootCmd() *cobra.Command {
	o := &options{}
	d := twinprime.DefaultConfig()

	cmd := &cobra.Command{
		Use:           "twinprime",
		Short:         "Find the twin primes in a range",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(o.verbose)
			if err != nil {
				return err
			}
			o.log = log
			return o.startProfile()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			defer o.log.Sync() //nolint:errcheck
			return o.stopProfile()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.configure(cmd)
			if err != nil {
				return err
			}
			return o.run(cmd, cfg)
		},
	}

	f := cmd.Flags()
	f.Uint32Var(&o.from, "from", d.From, "first candidate")
	f.Uint32Var(&o.to, "to", d.To, "one past the last candidate")
	f.IntVarP(&o.workers, "workers", "w", 0, "workers, 0 for one per CPU")
	f.Float64Var(&o.skew, "skew", d.Skew, "fraction of its share each worker hands to the one before it")
	f.Float64Var(&o.headroom, "headroom", d.Headroom, "scale of the per worker result buffer estimate")
	f.StringVarP(&o.output, "output", "o", DefaultOutput, "output file, .gz .zst .lz4 compress")
	f.StringVarP(&o.config, "config", "c", "", "YAML config file, flags override it")
	f.StringVar(&o.hash, "hash", "m3", fmt.Sprintf("digest hash %v", pairs.Hashes))
	f.DurationVar(&o.interval, "progress", progress.DefaultInterval, "progress redraw interval")
	f.BoolVarP(&o.quiet, "quiet", "q", false, "no progress line")
	f.BoolVar(&o.verify, "verify", false, "check the pairs against a segmented sieve")

	pf := cmd.PersistentFlags()
	pf.StringVar(&o.cpuprofile, "cpuprofile", "", "write cpu profile to file")
	pf.StringVar(&o.memprofile, "memprofile", "", "write memory profile to this file")
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "verbose")

	cmd.AddCommand(newPrimesCmd())
	return cmd
}

// configure builds the config from defaults, then the file, then the flags set on the command line.
func (o *options) configure(cmd *cobra.Command) (twinprime.Config, error) {
	cfg := twinprime.DefaultConfig()
	if o.config != "" {
		if err := twinprime.LoadConfig(o.config, &cfg); err != nil {
			return cfg, err
		}
	}
	f := cmd.Flags()
	if f.Changed("from") {
		cfg.From = o.from
	}
	if f.Changed("to") {
		cfg.To = o.to
	}
	if f.Changed("workers") {
		cfg.Workers = o.workers
	}
	if f.Changed("skew") {
		cfg.Skew = o.skew
	}
	if f.Changed("headroom") {
		cfg.Headroom = o.headroom
	}
	if _, err := pairs.Digest(nil, o.hash); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (o *options) run(cmd *cobra.Command, cfg twinprime.Config) error {
	out := cmd.OutOrStdout()
	s, err := twinprime.New(cfg, twinprime.WithLogger(o.log))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%h base primes generated, largest %d\n", hi(s.BasePrimes, ""), s.Base().Max())

	var r *progress.Reporter
	stop := func() {}
	if !o.quiet {
		r = progress.New(cmd.ErrOrStderr(), s.Partitions(), o.interval)
		r.Start()
		stop = siginfo.SetHandler(r.Poke)
	}
	ps, err := s.Run()
	stop()
	if r != nil {
		r.Stop()
	}
	if err != nil {
		return err
	}

	sum, err := pairs.Digest(ps, o.hash)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%h primes found in [%d, %d) by %d workers in %v",
		hi(s.Primes, ""), s.From, s.To, len(s.Partitions()), s.Elapsed.Round(time.Millisecond))
	if s.Elapsed > 0 {
		fmt.Fprintf(out, ", %h", hrff.Float64{V: float64(s.To-s.From) / s.Elapsed.Seconds(), U: "n/s"})
	}
	fmt.Fprintln(out)

	n, err := output.Save(o.output, ps)
	if err != nil {
		o.log.Error("save failed", zap.String("file", o.output), zap.Int("pairs", len(ps)), zap.Error(err))
		fmt.Fprintf(out, "%h twin primes found, none saved, %s digest %#016x\n", hi(len(ps), ""), o.hash, sum)
		return err
	}
	fmt.Fprintf(out, "%h twin primes saved to %s, %s digest %#016x\n", hi(n, ""), o.output, o.hash, sum)

	if o.verify {
		if err := check.Results(s.Partitions(), s.Results()); err != nil {
			return err
		}
		if err := check.Pairs(s.From, s.To, ps); err != nil {
			return err
		}
		fmt.Fprintln(out, "verified against segmented sieve")
	}
	return nil
}

func (o *options) startProfile() error {
	if o.cpuprofile == "" {
		return nil
	}
	f, err := os.Create(o.cpuprofile)
	if err != nil {
		return err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return err
	}
	o.cpu = f
	return nil
}

func (o *options) stopProfile() error {
	var errs []error
	if o.cpu != nil {
		pprof.StopCPUProfile()
		errs = append(errs, o.cpu.Close())
		o.cpu = nil
	}
	if o.memprofile != "" {
		f, err := os.Create(o.memprofile)
		if err != nil {
			return errors.Join(append(errs, err)...)
		}
		runtime.GC()
		errs = append(errs, pprof.WriteHeapProfile(f), f.Close())
	}
	return errors.Join(errs...)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "twinprime:", err)
		os.Exit(1)
	}
}

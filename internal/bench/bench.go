// Package bench times repeated end-to-end dungeon generation at increasing
// grid sizes.
package bench

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"bsp-dungeon/internal/generate"
)

// Options controls a stress test.
type Options struct {
	Sizes []int // square grid edge lengths, run in order
	Runs  int   // generations per size

	// Seed makes the batch reproducible: run i uses Seed+i. Zero seeds every
	// run from the clock.
	Seed int64

	// Config builds the generator config for one run. Nil uses
	// generate.DefaultConfig.
	Config func(size int, seed int64) generate.Config
}

// DefaultOptions returns ten runs at each of 128² through 4096².
func DefaultOptions() Options {
	return Options{
		Sizes: []int{128, 256, 512, 1024, 2048, 4096},
		Runs:  10,
	}
}

// Stats holds timing statistics for one batch.
type Stats struct {
	Size   int
	Runs   int
	Total  time.Duration
	Mean   time.Duration
	Median time.Duration
	Min    time.Duration
	Max    time.Duration
	Rooms  int // rooms in the last run, for a sense of scale
}

func (s Stats) String() string {
	return fmt.Sprintf("%dx%d runs=%d total=%v mean=%v median=%v min=%v max=%v rooms=%d",
		s.Size, s.Size, s.Runs, s.Total, s.Mean, s.Median, s.Min, s.Max, s.Rooms)
}

// Report is the outcome of a stress test.
type Report struct {
	Started time.Time
	Seed    int64
	Batches []Stats
}

// WriteTable prints one line per batch.
func (r *Report) WriteTable(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%-11s %4s %12s %12s %12s %12s %12s\n",
		"size", "runs", "total", "mean", "median", "min", "max"); err != nil {
		return err
	}
	for _, s := range r.Batches {
		if _, err := fmt.Fprintf(w, "%-11s %4d %12v %12v %12v %12v %12v\n",
			fmt.Sprintf("%dx%d", s.Size, s.Size), s.Runs,
			s.Total, s.Mean, s.Median, s.Min, s.Max); err != nil {
			return err
		}
	}
	return nil
}

// Summarize computes batch statistics. The median of an even number of
// samples is the mean of the middle two.
func Summarize(size int, samples []time.Duration) Stats {
	s := Stats{Size: size, Runs: len(samples)}
	if len(samples) == 0 {
		return s
	}
	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	for _, d := range sorted {
		s.Total += d
	}
	n := len(sorted)
	s.Mean = s.Total / time.Duration(n)
	s.Min = sorted[0]
	s.Max = sorted[n-1]
	if n%2 == 1 {
		s.Median = sorted[n/2]
	} else {
		s.Median = (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return s
}

// StressTest runs the full generation pipeline opts.Runs times at every size,
// one run after another, and logs the statistics of each batch as it
// completes. It returns instead of exiting; callers decide what happens next.
func StressTest(opts Options, logger *slog.Logger) (*Report, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Runs < 1 {
		return nil, fmt.Errorf("stress test: runs must be positive, got %d", opts.Runs)
	}
	build := opts.Config
	if build == nil {
		build = func(size int, seed int64) generate.Config {
			return generate.DefaultConfig(size, size, seed)
		}
	}

	report := &Report{Started: time.Now(), Seed: opts.Seed}
	for _, size := range opts.Sizes {
		samples := make([]time.Duration, 0, opts.Runs)
		rooms := 0
		for i := 0; i < opts.Runs; i++ {
			seed := int64(0)
			if opts.Seed != 0 {
				seed = opts.Seed + int64(i)
			}
			cfg := build(size, seed)
			start := time.Now()
			d, err := generate.Generate(cfg)
			elapsed := time.Since(start)
			if err != nil {
				return report, fmt.Errorf("stress test %dx%d run %d: %w", size, size, i, err)
			}
			samples = append(samples, elapsed)
			rooms = len(d.Rooms())
		}
		stats := Summarize(size, samples)
		stats.Rooms = rooms
		report.Batches = append(report.Batches, stats)
		logger.Info("bench batch",
			"size", fmt.Sprintf("%dx%d", size, size),
			"runs", stats.Runs,
			"total", stats.Total,
			"mean", stats.Mean,
			"median", stats.Median,
			"min", stats.Min,
			"max", stats.Max,
			"rooms", stats.Rooms)
	}
	return report, nil
}

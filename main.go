// bsp-dungeon runs the generation stress test once at every default size,
// prints the timing table and exits. Use ./cmd/dungeon for everything else.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"bsp-dungeon/internal/bench"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	report, err := bench.StressTest(bench.DefaultOptions(), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := report.WriteTable(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}

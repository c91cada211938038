package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"bess-dashboard/internal/data"
	"bess-dashboard/internal/sample"
)

// Writes a deterministic synthetic market dataset so the dashboard and CLI can
// run without the real extracts.
func main() {
	out := flag.String("out", "./data", "Output directory")
	format := flag.String("format", "feather", "Output format: feather or csv")
	days := flag.Int("days", 14, "Number of days to generate")
	start := flag.String("start", "2021-01-01T06:00:00Z", "First timestamp (RFC3339)")
	flag.Parse()

	opts := sample.DefaultOptions()
	opts.Hours = *days * 24
	t, err := time.Parse(time.RFC3339, *start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "--start: %v\n", err)
		os.Exit(2)
	}
	opts.Start = t.UTC()

	f := data.Format(*format)
	if f != data.FormatFeather && f != data.FormatCSV {
		fmt.Fprintf(os.Stderr, "--format must be feather or csv, got %q\n", *format)
		os.Exit(2)
	}

	ds := sample.Generate(opts)
	if err := data.WriteDatasets(*out, ds, f); err != nil {
		panic(err)
	}
	fmt.Printf("Wrote %d datasets (%d hours, %d batteries) to %s\n",
		len(ds.Names())-1, opts.Hours, len(opts.Resources), *out)
}

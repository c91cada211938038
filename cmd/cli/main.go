package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"bess-dashboard/internal/analysis"
	"bess-dashboard/internal/chart"
	"bess-dashboard/internal/dashboard"
	"bess-dashboard/internal/log"
	"bess-dashboard/internal/model"
	"bess-dashboard/internal/report"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "resources":
		cmdResources(os.Args[2:])
	case "revenue":
		cmdRevenue(os.Args[2:])
	case "variation":
		cmdVariation(os.Args[2:])
	case "render":
		cmdRender(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli resources --data ./data")
	fmt.Println("  cli revenue --data ./data --mode total --out results/revenue.csv")
	fmt.Println("  cli variation --data ./data --kind energy --out results/variation.csv")
	fmt.Println("  cli render --data ./data --out results/charts --battery BATT_ALPHA")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - datasets are read as <name>.feather, falling back to <name>.csv")
	fmt.Println("  - revenue --mode accepts total ($) or per_mw ($/MW)")
	fmt.Println("  - variation is (max-min)/|mean|*100 across batteries for each timestamp")
}

func openSession(dir string) *dashboard.Session {
	if err := log.Setup(os.Getenv("LOG_LEVEL")); err != nil {
		panic(err)
	}
	s, err := dashboard.NewSession(context.Background(), dashboard.DirLoader(dir))
	if err != nil {
		panic(err)
	}
	return s
}

func cmdResources(args []string) {
	fs := flag.NewFlagSet("resources", flag.ExitOnError)
	dataDir := fs.String("data", "./data", "Directory holding the datasets")
	_ = fs.Parse(args)

	s := openSession(*dataDir)
	res, err := s.NewResources(context.Background())
	if err != nil {
		panic(err)
	}

	fmt.Printf("%-24s %-8s %-20s\n", "resource", "new", "online since")
	for _, name := range s.Resources() {
		since := "-"
		if t, ok := res.OnlineSince[name]; ok {
			since = t.Format(time.RFC3339)
		}
		fmt.Printf("%-24s %-8t %-20s\n", name, contains(res.New, name), since)
	}
	if len(res.Unobserved) > 0 {
		fmt.Printf("\nno status reported for: %v\n", res.Unobserved)
	}
}

func cmdRevenue(args []string) {
	fs := flag.NewFlagSet("revenue", flag.ExitOnError)
	dataDir := fs.String("data", "./data", "Directory holding the datasets")
	mode := fs.String("mode", "total", "Ranking metric: total or per_mw")
	outPath := fs.String("out", "", "Optional: write the ranked table as CSV")
	_ = fs.Parse(args)

	metric, ok := model.ParseRevenueMetric(*mode)
	if !ok {
		fmt.Printf("--mode must be total or per_mw, got %q\n", *mode)
		os.Exit(2)
	}

	s := openSession(*dataDir)
	ranked, err := s.RankedRevenue(context.Background(), metric)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%-4s %-24s %-14s %-10s %-14s\n", "rank", "resource", "revenue$", "max MW", "revenue$/MW")
	for _, r := range ranked {
		fmt.Printf("%-4d %-24s %-14.2f %-10.2f %-14.2f\n",
			r.Rank,
			r.Resource,
			r.Total,
			r.MaxPowerMW,
			r.TotalPerMW,
		)
	}

	if *outPath == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := report.WriteCSVFile(*outPath, report.RevenueFrame(ranked)); err != nil {
		panic(err)
	}
	fmt.Printf("Wrote %d rows to %s\n", len(ranked), *outPath)
}

func cmdVariation(args []string) {
	fs := flag.NewFlagSet("variation", flag.ExitOnError)
	dataDir := fs.String("data", "./data", "Directory holding the datasets")
	kindFlag := fs.String("kind", "energy", "Price family: energy or ancillary")
	outPath := fs.String("out", "", "Optional: write the variation series as CSV")
	_ = fs.Parse(args)

	kind, err := dashboard.ParseVariationKind(*kindFlag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	s := openSession(*dataDir)
	series, err := s.Variation(kind)
	if err != nil {
		panic(err)
	}

	summaries := analysis.SortByMedianDesc(analysis.SummarizeSeries(series...))
	fmt.Printf("%-10s %-8s %-10s %-10s %-10s %-10s %-10s\n", "price", "count", "min%", "p25%", "median%", "p75%", "max%")
	for _, sm := range summaries {
		fmt.Printf("%-10s %-8d %-10.2f %-10.2f %-10.2f %-10.2f %-10.2f\n",
			sm.Name, sm.Count, sm.Min, sm.P25, sm.Median, sm.P75, sm.Max)
	}

	if *outPath == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := report.WriteCSVFile(*outPath, report.VariationFrame(series)); err != nil {
		panic(err)
	}
	fmt.Printf("Wrote %d series to %s\n", len(series), *outPath)
}

func cmdRender(args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	dataDir := fs.String("data", "./data", "Directory holding the datasets")
	outDir := fs.String("out", "results/charts", "Output directory for PNG files")
	battery := fs.String("battery", "", "Battery for the single-battery charts (default: last one)")
	width := fs.Float64("width", 10, "Chart width in inches")
	height := fs.Float64("height", 3, "Chart height in inches")
	_ = fs.Parse(args)

	if err := log.Setup(os.Getenv("LOG_LEVEL")); err != nil {
		panic(err)
	}
	ctx := context.Background()
	s, err := dashboard.NewSession(ctx, dashboard.DirLoader(*dataDir), dashboard.WithChartSize(*width, *height))
	if err != nil {
		panic(err)
	}

	name := *battery
	if name == "" {
		name = s.DefaultResource()
	}
	if err := s.CheckResource(name); err != nil {
		panic(err)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		panic(err)
	}

	charts := map[string]func() (*chart.Chart, error){
		"status_" + name:      func() (*chart.Chart, error) { return s.StatusChart(name) },
		"waterfall_" + name:   func() (*chart.Chart, error) { return s.WaterfallChart(ctx, name) },
		"energy_price":        func() (*chart.Chart, error) { return s.EnergyPriceChart() },
		"variation_energy":    func() (*chart.Chart, error) { return s.VariationChart(dashboard.VariationEnergy) },
		"variation_ancillary": func() (*chart.Chart, error) { return s.VariationChart(dashboard.VariationAncillary) },
		"revenue_total":       func() (*chart.Chart, error) { return s.RevenueChart(ctx, model.MetricTotal) },
		"revenue_per_mw":      func() (*chart.Chart, error) { return s.RevenueChart(ctx, model.MetricPerMW) },
	}
	files := make([]string, 0, len(charts))
	for file := range charts {
		files = append(files, file)
	}
	sort.Strings(files)

	for _, file := range files {
		c, err := charts[file]()
		if err != nil {
			fmt.Printf("skip %s: %v\n", file, err)
			continue
		}
		path := filepath.Join(*outDir, file+".png")
		if err := c.Save(path); err != nil {
			panic(err)
		}
		fmt.Printf("Wrote %s\n", path)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

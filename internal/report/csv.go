// Package report exports computed tables as CSV.
package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"time"

	"bess-dashboard/internal/analysis"
	"bess-dashboard/internal/model"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// RevenueFrame lays out a ranked revenue table, one row per resource.
func RevenueFrame(ranked []analysis.RankedRevenue) dataframe.DataFrame {
	n := len(ranked)
	rank := make([]int, n)
	resource := make([]string, n)
	items := make([][]float64, model.NumLineItems)
	for i := range items {
		items[i] = make([]float64, n)
	}
	total := make([]float64, n)
	maxPower := make([]float64, n)
	perMW := make([]float64, n)
	for i, r := range ranked {
		rank[i] = r.Rank
		resource[i] = r.Resource
		for j, v := range r.Items {
			items[j][i] = v
		}
		total[i] = r.Total
		maxPower[i] = r.MaxPowerMW
		perMW[i] = r.TotalPerMW
	}

	cols := []series.Series{
		series.New(rank, series.Int, "rank"),
		series.New(resource, series.String, "resource"),
	}
	for _, item := range model.LineItems {
		cols = append(cols, series.New(items[item], series.Float, item.String()))
	}
	cols = append(cols,
		series.New(total, series.Float, "total_revenue"),
		series.New(maxPower, series.Float, "max_power_mw"),
		series.New(perMW, series.Float, "total_revenue_per_mw"),
	)
	return dataframe.New(cols...)
}

// VariationFrame lays out variation series side by side on the union of
// their timestamps. Hours a series does not cover are NaN.
func VariationFrame(all []model.Series) dataframe.DataFrame {
	seen := map[time.Time]bool{}
	index := []time.Time{}
	for _, s := range all {
		for _, ts := range s.Index {
			if !seen[ts] {
				seen[ts] = true
				index = append(index, ts)
			}
		}
	}
	sort.Slice(index, func(i, j int) bool { return index[i].Before(index[j]) })
	row := make(map[time.Time]int, len(index))
	stamps := make([]string, len(index))
	for i, ts := range index {
		row[ts] = i
		stamps[i] = ts.UTC().Format(time.RFC3339)
	}

	cols := []series.Series{series.New(stamps, series.String, model.ColTimestamp)}
	for _, s := range all {
		vals := make([]float64, len(index))
		for i := range vals {
			vals[i] = math.NaN()
		}
		for i, ts := range s.Index {
			vals[row[ts]] = s.Values[i]
		}
		cols = append(cols, series.New(vals, series.Float, s.Name))
	}
	return dataframe.New(cols...)
}

// SummaryFrame lays out distribution summaries, one row per column or series.
func SummaryFrame(summaries []analysis.Summary) dataframe.DataFrame {
	n := len(summaries)
	name := make([]string, n)
	count := make([]int, n)
	stats := [6][]float64{}
	for i := range stats {
		stats[i] = make([]float64, n)
	}
	for i, s := range summaries {
		name[i] = s.Name
		count[i] = s.Count
		for j, v := range []float64{s.Min, s.P25, s.Median, s.P75, s.Max, s.Mean} {
			stats[j][i] = v
		}
	}
	cols := []series.Series{
		series.New(name, series.String, "name"),
		series.New(count, series.Int, "count"),
	}
	for j, label := range []string{"min", "p25", "median", "p75", "max", "mean"} {
		cols = append(cols, series.New(stats[j], series.Float, label))
	}
	return dataframe.New(cols...)
}

// WriteCSV writes df with a header row.
func WriteCSV(w io.Writer, df dataframe.DataFrame) error {
	if df.Err != nil {
		return fmt.Errorf("build table: %w", df.Err)
	}
	return df.WriteCSV(w)
}

// WriteCSVFile writes df to path.
func WriteCSVFile(path string, df dataframe.DataFrame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := WriteCSV(f, df); err != nil {
		return err
	}
	return f.Close()
}

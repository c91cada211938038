package analysis

import (
	"math"
	"sort"

	"bess-dashboard/internal/model"

	"gonum.org/v1/gonum/stat"
)

// Summary describes the distribution of one column or series. Non-finite
// values are excluded.
type Summary struct {
	Name   string  `json:"name"`
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	P25    float64 `json:"p25"`
	Median float64 `json:"median"`
	P75    float64 `json:"p75"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
}

func Summarize(name string, values []float64) Summary {
	vals := FiniteSorted(values)
	s := Summary{Name: name, Count: len(vals)}
	if len(vals) == 0 {
		nan := math.NaN()
		s.Min, s.P25, s.Median, s.P75, s.Max, s.Mean = nan, nan, nan, nan, nan, nan
		return s
	}
	s.Min = vals[0]
	s.Max = vals[len(vals)-1]
	s.Mean = stat.Mean(vals, nil)
	s.P25 = percentileSorted(vals, 0.25)
	s.Median = percentileSorted(vals, 0.5)
	s.P75 = percentileSorted(vals, 0.75)
	return s
}

// SummarizeColumns summarizes every resource column of p, in column order.
func SummarizeColumns(p *model.Pivot) []Summary {
	out := make([]Summary, 0, len(p.Columns))
	for _, c := range p.Columns {
		vals, _ := p.Column(c)
		out = append(out, Summarize(c, vals))
	}
	return out
}

// SummarizeSeries summarizes each series, in the given order.
func SummarizeSeries(series ...model.Series) []Summary {
	out := make([]Summary, 0, len(series))
	for _, s := range series {
		out = append(out, Summarize(s.Name, s.Values))
	}
	return out
}

// SortByMedianDesc orders summaries by descending median; empty ones go last.
// The input is not modified.
func SortByMedianDesc(in []Summary) []Summary {
	out := make([]Summary, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		return lessFinite(out[j].Median, out[i].Median)
	})
	return out
}

// FiniteSorted returns the finite values of in, sorted ascending.
func FiniteSorted(in []float64) []float64 {
	out := make([]float64, 0, len(in))
	for _, v := range in {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	sort.Float64s(out)
	return out
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// lessFinite orders finite values ascending with non-finite values first, so
// that sorting by !less puts them last.
func lessFinite(a, b float64) bool {
	fa := !math.IsNaN(a) && !math.IsInf(a, 0)
	fb := !math.IsNaN(b) && !math.IsInf(b, 0)
	switch {
	case fa && fb:
		return a < b
	case !fa && fb:
		return true
	default:
		return false
	}
}

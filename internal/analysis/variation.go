package analysis

import (
	"fmt"
	"math"
	"time"

	"bess-dashboard/internal/model"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// HourStats summarizes one hour of an hour × resource price table.
type HourStats struct {
	Timestamp time.Time `json:"timestamp"`
	Count     int       `json:"count"`
	Min       float64   `json:"min"`
	Max       float64   `json:"max"`
	Mean      float64   `json:"mean"`
	// Variation is (Max-Min)/|Mean|*100. Hours close to a zero mean produce
	// very large values; they are kept as is.
	Variation float64 `json:"variation"`
}

// HourlyStats computes the cross-resource min, max, mean and percentage
// variation for every hour of p. Missing values are skipped; an hour with no
// values at all has NaN statistics.
func HourlyStats(p *model.Pivot) []HourStats {
	out := make([]HourStats, len(p.Index))
	vals := make([]float64, 0, len(p.Columns))
	for i, ts := range p.Index {
		vals = vals[:0]
		for _, v := range p.Values[i] {
			if !math.IsNaN(v) {
				vals = append(vals, v)
			}
		}
		hs := HourStats{Timestamp: ts, Count: len(vals)}
		if len(vals) == 0 {
			hs.Min, hs.Max, hs.Mean, hs.Variation = math.NaN(), math.NaN(), math.NaN(), math.NaN()
			out[i] = hs
			continue
		}
		hs.Min = floats.Min(vals)
		hs.Max = floats.Max(vals)
		hs.Mean = stat.Mean(vals, nil)
		hs.Variation = (hs.Max - hs.Min) / math.Abs(hs.Mean) * 100
		out[i] = hs
	}
	return out
}

// HourlyVariation returns the percentage variation series of p, one value per hour.
func HourlyVariation(name string, p *model.Pivot) model.Series {
	stats := HourlyStats(p)
	s := model.Series{
		Name:   name,
		Index:  make([]time.Time, len(stats)),
		Values: make([]float64, len(stats)),
	}
	for i, hs := range stats {
		s.Index[i] = hs.Timestamp
		s.Values[i] = hs.Variation
	}
	return s
}

// EnergyPrices unstacks the real-time LMPs into an interval × resource table.
func EnergyPrices(ds *model.Datasets) (*model.Pivot, error) {
	lmps, err := ds.Get(model.DatasetBESSLMPs)
	if err != nil {
		return nil, err
	}
	return lmps.Unstack(model.ColRTMLMPs)
}

// EnergyPriceVariation is the hourly variation of the real-time LMPs across
// resources.
func EnergyPriceVariation(ds *model.Datasets) (model.Series, error) {
	p, err := EnergyPrices(ds)
	if err != nil {
		return model.Series{}, err
	}
	return HourlyVariation("energy", p), nil
}

// AncillaryPriceVariation returns one variation series per float column of the
// merged ancillary-service price table, in column order.
func AncillaryPriceVariation(priceAS *model.Frame) ([]model.Series, error) {
	out := []model.Series{}
	for _, col := range priceAS.Columns() {
		if !priceAS.IsFloatColumn(col) {
			continue
		}
		p, err := priceAS.Unstack(col)
		if err != nil {
			return nil, fmt.Errorf("unstack %s: %w", col, err)
		}
		out = append(out, HourlyVariation(col, p))
	}
	return out, nil
}

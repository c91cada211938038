package model

import (
	"math"
	"time"
)

// Pivot is an hour × resource matrix, the unstacked form of a Frame column.
// Values[i][j] is the value at Index[i] for Columns[j]; NaN means missing.
type Pivot struct {
	Index   []time.Time
	Columns []string
	Values  [][]float64
}

func NewPivot(index []time.Time, columns []string) *Pivot {
	p := &Pivot{
		Index:   index,
		Columns: columns,
		Values:  make([][]float64, len(index)),
	}
	for i := range p.Values {
		row := make([]float64, len(columns))
		for j := range row {
			row[j] = math.NaN()
		}
		p.Values[i] = row
	}
	return p
}

// Column returns a copy of one resource's values, aligned with Index.
func (p *Pivot) Column(name string) ([]float64, bool) {
	for j, c := range p.Columns {
		if c != name {
			continue
		}
		out := make([]float64, len(p.Index))
		for i := range p.Values {
			out[i] = p.Values[i][j]
		}
		return out, true
	}
	return nil, false
}

// ResampleHourlySum floors every timestamp to its UTC hour and sums the values
// that fall into it, skipping missing ones. The result covers every hour from
// the first to the last observed hour; hours with nothing to sum are 0.
func (p *Pivot) ResampleHourlySum() *Pivot {
	if len(p.Index) == 0 {
		return NewPivot(nil, p.Columns)
	}
	first := p.Index[0].UTC().Truncate(time.Hour)
	last := p.Index[len(p.Index)-1].UTC().Truncate(time.Hour)
	n := int(last.Sub(first)/time.Hour) + 1

	index := make([]time.Time, n)
	for i := range index {
		index[i] = first.Add(time.Duration(i) * time.Hour)
	}
	out := NewPivot(index, p.Columns)
	for i := range out.Values {
		for j := range out.Values[i] {
			out.Values[i][j] = 0
		}
	}
	for i, ts := range p.Index {
		row := int(ts.UTC().Truncate(time.Hour).Sub(first) / time.Hour)
		for j, v := range p.Values[i] {
			if !math.IsNaN(v) {
				out.Values[row][j] += v
			}
		}
	}
	return out
}

// Series is a named, time-indexed sequence of values.
type Series struct {
	Name   string
	Index  []time.Time
	Values []float64
}

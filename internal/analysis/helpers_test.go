package analysis

import (
	"math"
	"time"

	"bess-dashboard/internal/model"
)

var t0 = time.Date(2021, 1, 1, 6, 0, 0, 0, time.UTC)

func hour(h int) time.Time { return t0.Add(time.Duration(h) * time.Hour) }

func floatFrame(name, col string, cells map[model.Key]float64) *model.Frame {
	f := model.NewFrame(name)
	f.AddFloatColumn(col)
	for k, v := range cells {
		_ = f.SetFloat(k, col, v)
	}
	return f
}

func statusFrame(rows map[string][]string) *model.Frame {
	f := model.NewFrame(model.DatasetDAMGen)
	f.AddStringColumn(model.ColResourceStatus)
	for res, statuses := range rows {
		for h, s := range statuses {
			_ = f.SetString(model.NewKey(hour(h), res), model.ColResourceStatus, s)
		}
	}
	return f
}

func pivot(cols map[string][]float64, names ...string) *model.Pivot {
	n := len(cols[names[0]])
	index := make([]time.Time, n)
	for i := range index {
		index[i] = hour(i)
	}
	p := model.NewPivot(index, names)
	for j, name := range names {
		for i, v := range cols[name] {
			p.Values[i][j] = v
		}
	}
	return p
}

var nan = math.NaN()

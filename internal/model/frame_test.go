package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

func hour(h int) time.Time { return t0.Add(time.Duration(h) * time.Hour) }

func TestFrame_SetAndGet(t *testing.T) {
	f := NewFrame("prices")
	f.AddFloatColumn("rrs")
	f.AddStringColumn(ColResourceStatus)

	require.NoError(t, f.SetFloat(NewKey(hour(0), "A"), "rrs", 4.5))
	require.NoError(t, f.SetString(NewKey(hour(1), "B"), ColResourceStatus, "ON"))
	assert.Error(t, f.SetFloat(NewKey(hour(0), "A"), ColResourceStatus, 1))
	assert.Error(t, f.SetString(NewKey(hour(0), "A"), "rrs", "x"))

	v, ok := f.Float(NewKey(hour(0), "A"), "rrs")
	assert.True(t, ok)
	assert.Equal(t, 4.5, v)

	_, ok = f.Float(NewKey(hour(1), "B"), "rrs")
	assert.False(t, ok, "row added by another column is missing here")

	s, ok := f.String(NewKey(hour(1), "B"), ColResourceStatus)
	assert.True(t, ok)
	assert.Equal(t, "ON", s)

	assert.Equal(t, 2, f.Len())
	assert.Equal(t, []string{"rrs", ColResourceStatus}, f.Columns())
}

func TestFrame_KeysNormalizeToUTC(t *testing.T) {
	f := NewFrame("x")
	f.AddFloatColumn("v")
	central := time.FixedZone("CST", -6*3600)
	require.NoError(t, f.SetFloat(NewKey(hour(6).In(central), "A"), "v", 1))

	v, ok := f.Float(NewKey(hour(6), "A"), "v")
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)
}

func TestFrame_ResourcesAndTimestampsSorted(t *testing.T) {
	f := NewFrame("x")
	f.AddFloatColumn("v")
	require.NoError(t, f.SetFloat(NewKey(hour(2), "C"), "v", 1))
	require.NoError(t, f.SetFloat(NewKey(hour(0), "A"), "v", 1))
	require.NoError(t, f.SetFloat(NewKey(hour(1), "B"), "v", 1))
	require.NoError(t, f.SetFloat(NewKey(hour(0), "C"), "v", 1))

	assert.Equal(t, []string{"A", "B", "C"}, f.Resources())
	assert.Equal(t, []time.Time{hour(0), hour(1), hour(2)}, f.Timestamps())
}

func TestFrame_Unstack(t *testing.T) {
	f := NewFrame("lmps")
	f.AddFloatColumn(ColRTMLMPs)
	require.NoError(t, f.SetFloat(NewKey(hour(0), "A"), ColRTMLMPs, 10))
	require.NoError(t, f.SetFloat(NewKey(hour(1), "A"), ColRTMLMPs, 20))
	require.NoError(t, f.SetFloat(NewKey(hour(1), "B"), ColRTMLMPs, 30))

	p, err := f.Unstack(ColRTMLMPs)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, p.Columns)
	assert.Equal(t, 10.0, p.Values[0][0])
	assert.True(t, math.IsNaN(p.Values[0][1]))
	assert.Equal(t, 30.0, p.Values[1][1])

	_, err = f.Unstack("missing")
	assert.Error(t, err)
}

func TestCombineFirst(t *testing.T) {
	gen := NewFrame(DatasetGenPriceAS)
	gen.AddFloatColumn(ColRRS)
	load := NewFrame(DatasetLoadPriceAS)
	load.AddFloatColumn(ColRRS)

	require.NoError(t, gen.SetFloat(NewKey(hour(0), "A"), ColRRS, 5))
	require.NoError(t, gen.SetFloat(NewKey(hour(1), "A"), ColRRS, math.NaN()))
	require.NoError(t, load.SetFloat(NewKey(hour(0), "A"), ColRRS, 99))
	require.NoError(t, load.SetFloat(NewKey(hour(1), "A"), ColRRS, 6))
	require.NoError(t, load.SetFloat(NewKey(hour(2), "A"), ColRRS, 7))

	merged := CombineFirst(DatasetPriceAS, gen, load)
	assert.Equal(t, 3, merged.Len())

	for h, want := range []float64{5, 6, 7} {
		v, ok := merged.Float(NewKey(hour(h), "A"), ColRRS)
		assert.True(t, ok)
		assert.Equal(t, want, v, "hour %d", h)
	}
}

func TestPivot_ResampleHourlySum(t *testing.T) {
	idx := []time.Time{
		hour(0),
		hour(0).Add(15 * time.Minute),
		hour(0).Add(45 * time.Minute),
		hour(2).Add(30 * time.Minute),
	}
	p := NewPivot(idx, []string{"A"})
	p.Values[0][0] = 1
	p.Values[1][0] = 2
	p.Values[2][0] = math.NaN()
	p.Values[3][0] = 4

	out := p.ResampleHourlySum()
	assert.Equal(t, []time.Time{hour(0), hour(1), hour(2)}, out.Index)
	col, ok := out.Column("A")
	require.True(t, ok)
	assert.Equal(t, []float64{3, 0, 4}, col)
}

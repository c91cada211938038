package analysis

import (
	"math"
	"testing"
	"time"

	"bess-dashboard/internal/data"
	"bess-dashboard/internal/model"
	"bess-dashboard/internal/sample"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// revenueFixture has two resources over two hours. The ancillary price tables
// only cover hour 0 and the real-time tables are half-hourly.
func revenueFixture(t *testing.T) *model.Datasets {
	t.Helper()
	k := model.NewKey
	half := 30 * time.Minute

	damGen := model.NewFrame(model.DatasetDAMGen)
	for _, c := range []string{model.ColNonSpinAwarded, model.ColRRSAwarded, model.ColRegUpAwarded} {
		damGen.AddFloatColumn(c)
	}
	genPrice := model.NewFrame(model.DatasetGenPriceAS)
	for _, c := range []string{model.ColNonSpin, model.ColRRS, model.ColRegUp} {
		genPrice.AddFloatColumn(c)
	}
	damLoad := model.NewFrame(model.DatasetDAMLoad)
	damLoad.AddFloatColumn(model.ColRegDownAwarded)
	damLoad.AddFloatColumn(model.ColMaxPower)
	loadPrice := model.NewFrame(model.DatasetLoadPriceAS)
	loadPrice.AddFloatColumn(model.ColRegDown)

	for _, res := range []string{"A", "B"} {
		for h := 0; h < 2; h++ {
			key := k(hour(h), res)
			require.NoError(t, damGen.SetFloat(key, model.ColNonSpinAwarded, float64(2+h)))
			require.NoError(t, damGen.SetFloat(key, model.ColRRSAwarded, 1))
			require.NoError(t, damGen.SetFloat(key, model.ColRegUpAwarded, nan))
			require.NoError(t, damLoad.SetFloat(key, model.ColRegDownAwarded, 4))
			require.NoError(t, damLoad.SetFloat(key, model.ColMaxPower, float64(8-h)))
		}
		key := k(hour(0), res)
		require.NoError(t, genPrice.SetFloat(key, model.ColNonSpin, 5))
		require.NoError(t, genPrice.SetFloat(key, model.ColRRS, 3))
		require.NoError(t, genPrice.SetFloat(key, model.ColRegUp, 7))
		require.NoError(t, loadPrice.SetFloat(key, model.ColRegDown, 0.5))
	}
	// A price row for a resource with no awards is never joined.
	require.NoError(t, genPrice.SetFloat(k(hour(0), "Z"), model.ColNonSpin, 1000))

	rtm := floatFrame(model.DatasetRTMPower, model.ColMW, map[model.Key]float64{
		k(hour(0), "A"):           1,
		k(hour(0).Add(half), "A"): 2,
		k(hour(1), "A"):           4,
		k(hour(0), "B"):           -1,
		k(hour(1), "B"):           -1,
	})
	lmps := floatFrame(model.DatasetBESSLMPs, model.ColRTMLMPs, map[model.Key]float64{
		k(hour(0), "A"):           10,
		k(hour(0).Add(half), "A"): 20,
		k(hour(0), "B"):           5,
	})

	ds := model.NewDatasets()
	ds.Add(model.DatasetGenPriceAS, genPrice)
	ds.Add(model.DatasetLoadPriceAS, loadPrice)
	ds.Add(model.DatasetDAMGen, damGen)
	ds.Add(model.DatasetDAMLoad, damLoad)
	ds.Add(model.DatasetBESSLMPs, lmps)
	ds.Add(model.DatasetRTMPower, rtm)
	require.NoError(t, data.AddMergedPrices(ds))
	return ds
}

func TestAncillaryRevenue_IgnoresUnmatchedHours(t *testing.T) {
	as, err := AncillaryRevenue(revenueFixture(t))
	require.NoError(t, err)

	// Hour 1 has awards but no price, so only hour 0 counts.
	assert.Equal(t, ResourceTotals{"A": 10, "B": 10}, as[model.LineNonSpin])
	assert.Equal(t, ResourceTotals{"A": 3, "B": 3}, as[model.LineRRS])
	// Missing awards contribute 0 on a matched hour.
	assert.Equal(t, ResourceTotals{"A": 0, "B": 0}, as[model.LineRegUp])
	assert.Equal(t, ResourceTotals{"A": 2, "B": 2}, as[model.LineRegDown])
	_, ok := as[model.LineNonSpin]["Z"]
	assert.False(t, ok)
}

func TestEnergyRevenue(t *testing.T) {
	ds := revenueFixture(t)

	energy, err := EnergyRevenue(ds)
	require.NoError(t, err)
	// A: hourly MWh 3 × hourly price 30; hour 1 has no price.
	assert.Equal(t, ResourceTotals{"A": 90, "B": -5}, energy)

	byHour, err := EnergyRevenueByHour(ds)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{hour(0), hour(1)}, byHour.Index)
	assert.Equal(t, []float64{85, 0}, byHour.Values)
}

func TestMaxPower(t *testing.T) {
	mp, err := MaxPower(revenueFixture(t))
	require.NoError(t, err)
	assert.Equal(t, ResourceTotals{"A": 8, "B": 8}, mp)
}

func TestRevenueTable(t *testing.T) {
	table, err := RevenueTable(revenueFixture(t))
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)

	a, ok := table.Row("A")
	require.True(t, ok)
	assert.Equal(t, [model.NumLineItems]float64{90, 10, 3, 0, 2}, a.Items)
	assert.Equal(t, 105.0, a.Total)
	assert.Equal(t, 8.0, a.MaxPowerMW)
	assert.Equal(t, 105.0/8, a.TotalPerMW)

	b, _ := table.Row("B")
	assert.Equal(t, 10.0, b.Total)
}

func TestRevenueTable_MissingServiceCountsAsZero(t *testing.T) {
	ds := revenueFixture(t)
	get := func(name string) *model.Frame {
		f, err := ds.Get(name)
		require.NoError(t, err)
		return f
	}
	// C has awards on both sides but no load-side price, so reg_down never joins.
	key := model.NewKey(hour(0), "C")
	require.NoError(t, get(model.DatasetDAMGen).SetFloat(key, model.ColNonSpinAwarded, 1))
	require.NoError(t, get(model.DatasetDAMGen).SetFloat(key, model.ColRRSAwarded, 1))
	require.NoError(t, get(model.DatasetGenPriceAS).SetFloat(key, model.ColNonSpin, 5))
	require.NoError(t, get(model.DatasetGenPriceAS).SetFloat(key, model.ColRRS, 3))
	require.NoError(t, get(model.DatasetDAMLoad).SetFloat(key, model.ColRegDownAwarded, 4))
	require.NoError(t, get(model.DatasetDAMLoad).SetFloat(key, model.ColMaxPower, 2))
	require.NoError(t, get(model.DatasetRTMPower).SetFloat(key, model.ColMW, 1))
	require.NoError(t, get(model.DatasetBESSLMPs).SetFloat(key, model.ColRTMLMPs, 10))

	as, err := AncillaryRevenue(ds)
	require.NoError(t, err)
	_, ok := as[model.LineRegDown]["C"]
	require.False(t, ok)

	table, err := RevenueTable(ds)
	require.NoError(t, err)
	require.Len(t, table.Rows, 3)
	c, ok := table.Row("C")
	require.True(t, ok)
	assert.Equal(t, [model.NumLineItems]float64{10, 5, 3, 0, 0}, c.Items)
	assert.Equal(t, 18.0, c.Total)
	assert.Equal(t, 9.0, c.TotalPerMW)
}

func TestRevenueTable_Idempotent(t *testing.T) {
	ds := sample.Generate(sample.DefaultOptions())

	first, err := RevenueTable(ds)
	require.NoError(t, err)
	second, err := RevenueTable(ds)
	require.NoError(t, err)

	require.Equal(t, len(first.Rows), len(second.Rows))
	for i := range first.Rows {
		a, b := first.Rows[i], second.Rows[i]
		assert.Equal(t, a.Resource, b.Resource)
		for j := range a.Items {
			assert.Equal(t, math.Float64bits(a.Items[j]), math.Float64bits(b.Items[j]))
		}
		assert.Equal(t, math.Float64bits(a.Total), math.Float64bits(b.Total))
		assert.Equal(t, math.Float64bits(a.TotalPerMW), math.Float64bits(b.TotalPerMW))
	}
}

func TestRankRevenue(t *testing.T) {
	table := &model.RevenueTable{Rows: []model.RevenueRow{
		model.NewRevenueRow("A", [model.NumLineItems]float64{100}, 10),
		model.NewRevenueRow("B", [model.NumLineItems]float64{300}, 0),
		model.NewRevenueRow("C", [model.NumLineItems]float64{200}, 50),
	}}

	byTotal := RankRevenue(table, model.MetricTotal)
	assert.Equal(t, []string{"B", "C", "A"}, rankedNames(byTotal))
	assert.Equal(t, 1, byTotal[0].Rank)
	assert.Equal(t, 300.0, byTotal[0].Value)

	// B has no max power, so its per-MW value is infinite and sorts last.
	byMW := RankRevenue(table, model.MetricPerMW)
	assert.Equal(t, []string{"A", "C", "B"}, rankedNames(byMW))
	assert.Equal(t, 10.0, byMW[0].Value)
}

func rankedNames(rows []RankedRevenue) []string {
	out := []string{}
	for _, r := range rows {
		out = append(out, r.Resource)
	}
	return out
}

package analysis

import (
	"fmt"
	"math"
	"sort"
	"time"

	"bess-dashboard/internal/model"
)

// ResourceTotals maps a resource to a dollar (or MW) amount.
type ResourceTotals map[string]float64

// AncillaryPair names the quantity and price columns that make up one
// ancillary-service revenue line.
type AncillaryPair struct {
	Item           model.LineItem
	QuantityTable  string
	PriceTable     string
	QuantityColumn string
	PriceColumn    string
}

// AncillaryPairs are the four ancillary-service revenue lines.
var AncillaryPairs = []AncillaryPair{
	{model.LineNonSpin, model.DatasetDAMGen, model.DatasetGenPriceAS, model.ColNonSpinAwarded, model.ColNonSpin},
	{model.LineRRS, model.DatasetDAMGen, model.DatasetGenPriceAS, model.ColRRSAwarded, model.ColRRS},
	{model.LineRegUp, model.DatasetDAMGen, model.DatasetGenPriceAS, model.ColRegUpAwarded, model.ColRegUp},
	{model.LineRegDown, model.DatasetDAMLoad, model.DatasetLoadPriceAS, model.ColRegDownAwarded, model.ColRegDown},
}

// AncillaryRevenue computes, for each pair, the sum over matched
// (hour, resource) keys of awarded quantity × price, per resource. Keys
// present on only one side are dropped; a missing value on a matched key
// contributes 0.
func AncillaryRevenue(ds *model.Datasets) (map[model.LineItem]ResourceTotals, error) {
	out := make(map[model.LineItem]ResourceTotals, len(AncillaryPairs))
	for _, pair := range AncillaryPairs {
		totals, err := pairRevenue(ds, pair)
		if err != nil {
			return nil, fmt.Errorf("%s revenue: %w", pair.Item, err)
		}
		out[pair.Item] = totals
	}
	return out, nil
}

func pairRevenue(ds *model.Datasets, pair AncillaryPair) (ResourceTotals, error) {
	qty, err := ds.Get(pair.QuantityTable)
	if err != nil {
		return nil, err
	}
	price, err := ds.Get(pair.PriceTable)
	if err != nil {
		return nil, err
	}
	for _, c := range []struct {
		f   *model.Frame
		col string
	}{{qty, pair.QuantityColumn}, {price, pair.PriceColumn}} {
		if !c.f.IsFloatColumn(c.col) {
			return nil, fmt.Errorf("table %s has no numeric column %q", c.f.Name, c.col)
		}
	}

	totals := ResourceTotals{}
	for _, k := range qty.Keys() {
		if !price.Has(k) {
			continue
		}
		if _, ok := totals[k.Resource]; !ok {
			totals[k.Resource] = 0
		}
		q, ok := qty.Float(k, pair.QuantityColumn)
		if !ok {
			continue
		}
		p, ok := price.Float(k, pair.PriceColumn)
		if !ok {
			continue
		}
		totals[k.Resource] += q * p
	}
	return totals, nil
}

// hourlyEnergy resamples dispatch and LMP to hourly sums.
func hourlyEnergy(ds *model.Datasets) (qty, price *model.Pivot, err error) {
	rtm, err := ds.Get(model.DatasetRTMPower)
	if err != nil {
		return nil, nil, err
	}
	lmps, err := ds.Get(model.DatasetBESSLMPs)
	if err != nil {
		return nil, nil, err
	}
	q, err := rtm.Unstack(model.ColMW)
	if err != nil {
		return nil, nil, err
	}
	p, err := lmps.Unstack(model.ColRTMLMPs)
	if err != nil {
		return nil, nil, err
	}
	return q.ResampleHourlySum(), p.ResampleHourlySum(), nil
}

// energyProducts calls fn with the hourly quantity × price product of every
// (hour, resource) cell of the quantity table that has a matching price.
func energyProducts(qty, price *model.Pivot, fn func(hour time.Time, resource string, v float64)) {
	rows := make(map[time.Time]int, len(price.Index))
	for i, ts := range price.Index {
		rows[ts] = i
	}
	cols := make(map[string]int, len(price.Columns))
	for j, r := range price.Columns {
		cols[r] = j
	}
	for i, ts := range qty.Index {
		pi, ok := rows[ts]
		if !ok {
			continue
		}
		for j, res := range qty.Columns {
			pj, ok := cols[res]
			if !ok {
				continue
			}
			v := qty.Values[i][j] * price.Values[pi][pj]
			if math.IsNaN(v) {
				continue
			}
			fn(ts, res, v)
		}
	}
}

// EnergyRevenue computes the real-time energy revenue per resource: dispatch
// and LMP are resampled to hourly sums, price is left-joined onto quantity and
// the products are summed. Hours without a price contribute nothing.
func EnergyRevenue(ds *model.Datasets) (ResourceTotals, error) {
	qty, price, err := hourlyEnergy(ds)
	if err != nil {
		return nil, fmt.Errorf("energy revenue: %w", err)
	}
	totals := ResourceTotals{}
	for _, res := range qty.Columns {
		totals[res] = 0
	}
	energyProducts(qty, price, func(_ time.Time, res string, v float64) {
		totals[res] += v
	})
	return totals, nil
}

// EnergyRevenueByHour is the market-wide energy revenue: the same products as
// EnergyRevenue summed across resources for each hour.
func EnergyRevenueByHour(ds *model.Datasets) (model.Series, error) {
	qty, price, err := hourlyEnergy(ds)
	if err != nil {
		return model.Series{}, fmt.Errorf("energy revenue: %w", err)
	}
	s := model.Series{
		Name:   model.LineEnergy.String(),
		Index:  append([]time.Time(nil), qty.Index...),
		Values: make([]float64, len(qty.Index)),
	}
	row := make(map[time.Time]int, len(s.Index))
	for i, ts := range s.Index {
		row[ts] = i
	}
	energyProducts(qty, price, func(ts time.Time, _ string, v float64) {
		s.Values[row[ts]] += v
	})
	return s, nil
}

// MaxPower is the largest declared max power consumption per resource. A
// resource that never declares one maps to NaN.
func MaxPower(ds *model.Datasets) (ResourceTotals, error) {
	load, err := ds.Get(model.DatasetDAMLoad)
	if err != nil {
		return nil, err
	}
	if !load.IsFloatColumn(model.ColMaxPower) {
		return nil, fmt.Errorf("table %s has no numeric column %q", load.Name, model.ColMaxPower)
	}
	out := ResourceTotals{}
	for _, k := range load.Keys() {
		cur, seen := out[k.Resource]
		if !seen {
			cur = math.NaN()
		}
		if v, ok := load.Float(k, model.ColMaxPower); ok && (math.IsNaN(cur) || v > cur) {
			cur = v
		}
		out[k.Resource] = cur
	}
	return out, nil
}

// RevenueTable combines energy and ancillary-service revenue per resource with
// the resource's max power. Resources need energy and max power rows; an
// ancillary service with no matched hour contributes 0.
func RevenueTable(ds *model.Datasets) (*model.RevenueTable, error) {
	energy, err := EnergyRevenue(ds)
	if err != nil {
		return nil, err
	}
	as, err := AncillaryRevenue(ds)
	if err != nil {
		return nil, err
	}
	maxPower, err := MaxPower(ds)
	if err != nil {
		return nil, err
	}

	resources := make([]string, 0, len(energy))
	for res := range energy {
		resources = append(resources, res)
	}
	sort.Strings(resources)

	table := &model.RevenueTable{Rows: []model.RevenueRow{}}
	for _, res := range resources {
		mw, ok := maxPower[res]
		if !ok {
			continue
		}
		var items [model.NumLineItems]float64
		items[model.LineEnergy] = energy[res]
		for _, pair := range AncillaryPairs {
			// No matched hour for this service means no revenue from it.
			items[pair.Item] = as[pair.Item][res]
		}
		table.Rows = append(table.Rows, model.NewRevenueRow(res, items, mw))
	}
	return table, nil
}

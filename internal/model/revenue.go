package model

import "math"

// LineItem is one revenue category.
type LineItem int

const (
	LineEnergy LineItem = iota
	LineNonSpin
	LineRRS
	LineRegUp
	LineRegDown

	NumLineItems = 5
)

// LineItems lists the categories in display order.
var LineItems = []LineItem{LineEnergy, LineNonSpin, LineRRS, LineRegUp, LineRegDown}

func (l LineItem) String() string {
	switch l {
	case LineEnergy:
		return "Energy"
	case LineNonSpin:
		return "Non-spinning Reserve"
	case LineRRS:
		return "Responsive Reserve"
	case LineRegUp:
		return "Regulation-Up"
	case LineRegDown:
		return "Regulation-Down"
	default:
		return "Unknown"
	}
}

// RevenueRow is one resource's revenue for the analysis period, in $.
type RevenueRow struct {
	Resource   string
	Items      [NumLineItems]float64
	Total      float64
	MaxPowerMW float64
	// TotalPerMW is Total / MaxPowerMW ($/MW). Not finite when MaxPowerMW is 0.
	TotalPerMW float64
}

// NewRevenueRow computes Total (NaN items skipped) and TotalPerMW.
func NewRevenueRow(resource string, items [NumLineItems]float64, maxPowerMW float64) RevenueRow {
	total := 0.0
	for _, v := range items {
		if !math.IsNaN(v) {
			total += v
		}
	}
	return RevenueRow{
		Resource:   resource,
		Items:      items,
		Total:      total,
		MaxPowerMW: maxPowerMW,
		TotalPerMW: total / maxPowerMW,
	}
}

// RevenueTable holds one row per resource, sorted by resource.
type RevenueTable struct {
	Rows []RevenueRow
}

func (t *RevenueTable) Row(resource string) (RevenueRow, bool) {
	for _, r := range t.Rows {
		if r.Resource == resource {
			return r, true
		}
	}
	return RevenueRow{}, false
}

// RevenueMetric selects which total a ranking or bar chart uses.
type RevenueMetric string

const (
	MetricTotal RevenueMetric = "total"
	MetricPerMW RevenueMetric = "per_mw"
)

func (m RevenueMetric) Value(r RevenueRow) float64 {
	if m == MetricPerMW {
		return r.TotalPerMW
	}
	return r.Total
}

func (m RevenueMetric) Label() string {
	if m == MetricPerMW {
		return "Total revenue ($/MW)"
	}
	return "Total revenue ($)"
}

func (m RevenueMetric) Unit() string {
	if m == MetricPerMW {
		return "Yearly revenue per MW ($/MW)"
	}
	return "Yearly revenue ($)"
}

// ParseRevenueMetric accepts "total"/"$" and "per_mw"/"$/MW"; empty means total.
func ParseRevenueMetric(s string) (RevenueMetric, bool) {
	switch s {
	case "", "total", "$":
		return MetricTotal, true
	case "per_mw", "$/MW":
		return MetricPerMW, true
	default:
		return "", false
	}
}

package analysis

import (
	"sort"

	"bess-dashboard/internal/model"
)

type RankedRevenue struct {
	Rank  int
	Value float64
	model.RevenueRow
}

// RankRevenue sorts the table's rows descending by the chosen metric.
// Non-finite values (a zero max power, for instance) sort last.
func RankRevenue(table *model.RevenueTable, metric model.RevenueMetric) []RankedRevenue {
	out := make([]RankedRevenue, 0, len(table.Rows))
	for _, row := range table.Rows {
		out = append(out, RankedRevenue{Value: metric.Value(row), RevenueRow: row})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return lessFinite(out[j].Value, out[i].Value)
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

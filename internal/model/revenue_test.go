package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRevenueRow(t *testing.T) {
	row := NewRevenueRow("A", [NumLineItems]float64{10, 20, 0, 5, 100}, 8)
	assert.Equal(t, 135.0, row.Total)
	assert.Equal(t, 16.875, row.TotalPerMW)

	row = NewRevenueRow("B", [NumLineItems]float64{10, math.NaN(), 0, 0, 0}, 2)
	assert.Equal(t, 10.0, row.Total)
	assert.Equal(t, 5.0, row.TotalPerMW)

	row = NewRevenueRow("C", [NumLineItems]float64{1, 0, 0, 0, 0}, 0)
	assert.True(t, math.IsInf(row.TotalPerMW, 1))
}

func TestParseRevenueMetric(t *testing.T) {
	tests := []struct {
		in   string
		want RevenueMetric
		ok   bool
	}{
		{"", MetricTotal, true},
		{"$", MetricTotal, true},
		{"total", MetricTotal, true},
		{"$/MW", MetricPerMW, true},
		{"per_mw", MetricPerMW, true},
		{"euros", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseRevenueMetric(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

package dashboard

import (
	"context"

	"bess-dashboard/internal/chart"
	"bess-dashboard/internal/model"
)

func (s *Session) sized(c *chart.Chart, err error) (*chart.Chart, error) {
	if err != nil {
		return nil, err
	}
	return c.WithSize(s.chartWidth, s.chartHeight), nil
}

// StatusChart renders the status timeline of one resource.
func (s *Session) StatusChart(name string) (*chart.Chart, error) {
	runs, err := s.StatusTimeline(name)
	if err != nil {
		return nil, err
	}
	return s.sized(chart.StatusTimeline(name, runs))
}

// WaterfallChart renders one resource's revenue breakdown in M$.
func (s *Session) WaterfallChart(ctx context.Context, name string) (*chart.Chart, error) {
	row, err := s.ResourceRevenue(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.sized(chart.RevenueWaterfall(row, s.Year()))
}

func (s *Session) EnergyPriceChart() (*chart.Chart, error) {
	prices, err := s.EnergyPrices()
	if err != nil {
		return nil, err
	}
	return s.sized(chart.EnergyPriceBoxes(prices))
}

func (s *Session) VariationChart(kind VariationKind) (*chart.Chart, error) {
	series, err := s.Variation(kind)
	if err != nil {
		return nil, err
	}
	return s.sized(chart.VariationBoxes(kind.PriceType(), series...))
}

func (s *Session) RevenueChart(ctx context.Context, metric model.RevenueMetric) (*chart.Chart, error) {
	t, err := s.Revenue(ctx)
	if err != nil {
		return nil, err
	}
	return s.sized(chart.RevenueBars(t, metric))
}

// Package dashboard runs the load → compute → render pipeline for one
// dashboard session and memoizes the expensive revenue table.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"bess-dashboard/internal/analysis"
	"bess-dashboard/internal/data"
	"bess-dashboard/internal/log"
	"bess-dashboard/internal/model"
)

var (
	ErrUnknownResource = errors.New("unknown resource")
	ErrUnknownKind     = errors.New("unknown variation kind")
)

// VariationKind selects the price family of a variation analysis.
type VariationKind string

const (
	VariationEnergy    VariationKind = "energy"
	VariationAncillary VariationKind = "ancillary"
)

func ParseVariationKind(s string) (VariationKind, error) {
	switch VariationKind(s) {
	case VariationEnergy, VariationAncillary:
		return VariationKind(s), nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownKind, s)
}

// PriceType is the chart wording for the kind.
func (k VariationKind) PriceType() string {
	if k == VariationAncillary {
		return "ancillary services"
	}
	return "energy"
}

// Loader reads the datasets of a session.
type Loader func(ctx context.Context) (*model.Datasets, error)

// DirLoader loads the datasets stored in dir.
func DirLoader(dir string) Loader {
	return func(context.Context) (*model.Datasets, error) {
		return data.Load(dir)
	}
}

// StaticLoader always returns ds.
func StaticLoader(ds *model.Datasets) Loader {
	return func(context.Context) (*model.Datasets, error) {
		return ds, nil
	}
}

type Option func(*Session)

// WithChartSize sets the figure size, in inches, of every chart the session
// renders.
func WithChartSize(widthIn, heightIn float64) Option {
	return func(s *Session) {
		s.chartWidth, s.chartHeight = widthIn, heightIn
	}
}

// Session holds the loaded datasets. Datasets are never modified after load,
// so readers work on a snapshot outside the lock.
type Session struct {
	load  Loader
	cache *data.ResultCache

	chartWidth, chartHeight float64

	mu       sync.RWMutex
	ds       *model.Datasets
	loadedAt time.Time
}

// NewSession loads the datasets once and returns the session.
func NewSession(ctx context.Context, load Loader, opts ...Option) (*Session, error) {
	s := &Session{load: load, cache: data.NewResultCache()}
	for _, opt := range opts {
		opt(s)
	}
	ds, err := load(ctx)
	if err != nil {
		return nil, err
	}
	s.ds = ds
	s.loadedAt = time.Now()
	log.Ctx(ctx).InfoContext(ctx, "datasets loaded",
		slog.Any("datasets", ds.Names()),
		slog.String("fingerprint", ds.Fingerprint),
	)
	return s, nil
}

// Reload reads the datasets again. When their content is unchanged the
// memoized results are kept; otherwise the new datasets replace the old ones
// and the cache is cleared. On error the session keeps its current datasets.
func (s *Session) Reload(ctx context.Context) (bool, error) {
	ds, err := s.load(ctx)
	if err != nil {
		return false, fmt.Errorf("reload: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ds.Fingerprint != "" && ds.Fingerprint == s.ds.Fingerprint {
		log.Ctx(ctx).DebugContext(ctx, "datasets unchanged", slog.String("fingerprint", ds.Fingerprint))
		return false, nil
	}
	s.ds = ds
	s.loadedAt = time.Now()
	s.cache.Clear()
	log.Ctx(ctx).InfoContext(ctx, "datasets reloaded", slog.String("fingerprint", ds.Fingerprint))
	return true, nil
}

func (s *Session) snapshot() *model.Datasets {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds
}

func (s *Session) Datasets() *model.Datasets {
	return s.snapshot()
}

func (s *Session) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Resources lists every resource, sorted ascending.
func (s *Session) Resources() []string {
	return analysis.ListResources(s.snapshot())
}

// DefaultResource is the resource selected when none is chosen: the last one.
func (s *Session) DefaultResource() string {
	res := s.Resources()
	if len(res) == 0 {
		return ""
	}
	return res[len(res)-1]
}

// CheckResource returns ErrUnknownResource unless name is a loaded resource.
func (s *Session) CheckResource(name string) error {
	for _, r := range s.Resources() {
		if r == name {
			return nil
		}
	}
	return fmt.Errorf("%w %q", ErrUnknownResource, name)
}

// NewResources reports the resources that came online after the data starts.
// Resources that never report a status are logged.
func (s *Session) NewResources(ctx context.Context) (analysis.NewResourcesResult, error) {
	ds := s.snapshot()
	status, err := ds.Get(model.DatasetDAMGen)
	if err != nil {
		return analysis.NewResourcesResult{}, err
	}
	res := analysis.NewResources(status, analysis.ListResources(ds))
	if len(res.Unobserved) > 0 {
		log.Ctx(ctx).WarnContext(ctx, "resources never report a status",
			slog.Any("resources", res.Unobserved),
		)
	}
	return res, nil
}

// StatusTimeline returns the status runs of one resource.
func (s *Session) StatusTimeline(name string) ([]analysis.StatusRun, error) {
	if err := s.CheckResource(name); err != nil {
		return nil, err
	}
	status, err := s.snapshot().Get(model.DatasetDAMGen)
	if err != nil {
		return nil, err
	}
	return analysis.StatusTimeline(status, name)
}

// Revenue returns the combined revenue table, computing it at most once per
// dataset content.
func (s *Session) Revenue(ctx context.Context) (*model.RevenueTable, error) {
	ds := s.snapshot()
	key := data.GenerateCacheKey("revenue", ds.Fingerprint)
	if t, ok := s.cache.Get(key); ok {
		return t, nil
	}
	start := time.Now()
	t, err := analysis.RevenueTable(ds)
	if err != nil {
		return nil, err
	}
	// A reload may have replaced the datasets while computing.
	if s.snapshot() == ds {
		s.cache.Set(key, t)
	}
	log.Ctx(ctx).DebugContext(ctx, "revenue computed",
		slog.Int("resources", len(t.Rows)),
		slog.Duration("took", time.Since(start)),
	)
	return t, nil
}

// ResourceRevenue returns one resource's revenue row.
func (s *Session) ResourceRevenue(ctx context.Context, name string) (model.RevenueRow, error) {
	if err := s.CheckResource(name); err != nil {
		return model.RevenueRow{}, err
	}
	t, err := s.Revenue(ctx)
	if err != nil {
		return model.RevenueRow{}, err
	}
	row, ok := t.Row(name)
	if !ok {
		// Known resource without complete revenue inputs.
		return model.RevenueRow{}, fmt.Errorf("%w %q: no revenue data", ErrUnknownResource, name)
	}
	return row, nil
}

// RankedRevenue ranks the revenue table by metric.
func (s *Session) RankedRevenue(ctx context.Context, metric model.RevenueMetric) ([]analysis.RankedRevenue, error) {
	t, err := s.Revenue(ctx)
	if err != nil {
		return nil, err
	}
	return analysis.RankRevenue(t, metric), nil
}

func (s *Session) EnergyPrices() (*model.Pivot, error) {
	return analysis.EnergyPrices(s.snapshot())
}

// Variation returns the hourly cross-resource variation series of a price
// family: one series for energy, one per ancillary service otherwise.
func (s *Session) Variation(kind VariationKind) ([]model.Series, error) {
	ds := s.snapshot()
	switch kind {
	case VariationEnergy:
		series, err := analysis.EnergyPriceVariation(ds)
		if err != nil {
			return nil, err
		}
		return []model.Series{series}, nil
	case VariationAncillary:
		prices, err := ds.Get(model.DatasetPriceAS)
		if err != nil {
			return nil, err
		}
		return analysis.AncillaryPriceVariation(prices)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownKind, kind)
}

// Year is the calendar year the data starts in.
func (s *Session) Year() int {
	first := s.snapshot().First()
	if first == nil {
		return 0
	}
	ts := first.Timestamps()
	if len(ts) == 0 {
		return 0
	}
	return ts[0].Year()
}

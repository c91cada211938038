package analysis

import (
	"time"

	"bess-dashboard/internal/model"
)

// ListResources returns the resources of the first loaded table, sorted
// ascending. Every table is assumed to cover the same resources.
func ListResources(ds *model.Datasets) []string {
	first := ds.First()
	if first == nil {
		return []string{}
	}
	return first.Resources()
}

// NewResourcesResult splits resources by when their status is first observed.
type NewResourcesResult struct {
	// New resources first report a status after the table's first timestamp.
	New []string
	// Unobserved resources never report a status. They are neither new nor
	// present from the start.
	Unobserved []string
	// OnlineSince is the first observed status timestamp per resource.
	OnlineSince map[string]time.Time
}

// NewResources finds, for each resource, the first timestamp with a
// non-missing status in the status table, and reports the resources whose
// first observation is later than the table's first timestamp. Order follows
// resources.
func NewResources(status *model.Frame, resources []string) NewResourcesResult {
	out := NewResourcesResult{
		New:         []string{},
		Unobserved:  []string{},
		OnlineSince: map[string]time.Time{},
	}
	hours := status.Timestamps()
	if len(hours) == 0 {
		out.Unobserved = append(out.Unobserved, resources...)
		return out
	}
	start := hours[0]
	for _, res := range resources {
		first, ok := firstObserved(status, res, hours)
		if !ok {
			out.Unobserved = append(out.Unobserved, res)
			continue
		}
		out.OnlineSince[res] = first
		if first.After(start) {
			out.New = append(out.New, res)
		}
	}
	return out
}

func firstObserved(status *model.Frame, resource string, hours []time.Time) (time.Time, bool) {
	for _, ts := range hours {
		if _, ok := status.String(model.NewKey(ts, resource), model.ColResourceStatus); ok {
			return ts, true
		}
	}
	return time.Time{}, false
}

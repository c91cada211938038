package analysis

import (
	"fmt"
	"time"

	"bess-dashboard/internal/model"
)

// StatusRun is a contiguous stretch of time with the same status.
// Start is inclusive, End exclusive. Hours is the elapsed time End-Start.
type StatusRun struct {
	Status model.Status `json:"status"`
	Start  time.Time    `json:"start"`
	End    time.Time    `json:"end"`
	Hours  float64      `json:"hours"`
}

// StatusTimeline returns the status runs of one resource over every hour of
// the status table. Missing hours are UNKNOWN. Runs are consecutive: each run
// ends where the next starts, and the last one ends an hour after the final
// timestamp. A status outside the known set is an error.
func StatusTimeline(status *model.Frame, resource string) ([]StatusRun, error) {
	hours := status.Timestamps()
	runs := []StatusRun{}
	for i, ts := range hours {
		raw, _ := status.String(model.NewKey(ts, resource), model.ColResourceStatus)
		s, err := model.ParseStatus(raw)
		if err != nil {
			return nil, fmt.Errorf("resource %s at %s: %w", resource, ts.Format(time.RFC3339), err)
		}
		end := ts.Add(time.Hour)
		if i+1 < len(hours) {
			end = hours[i+1]
		}
		if n := len(runs); n > 0 && runs[n-1].Status == s {
			runs[n-1].End = end
			continue
		}
		runs = append(runs, StatusRun{Status: s, Start: ts, End: end})
	}
	for i := range runs {
		runs[i].Hours = runs[i].End.Sub(runs[i].Start).Hours()
	}
	return runs, nil
}

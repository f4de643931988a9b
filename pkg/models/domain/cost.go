package domain

import "time"

// Provider identifies a cloud billing backend.
type Provider string

const (
	ProviderAWS   Provider = "AWS"
	ProviderAzure Provider = "Azure"
	ProviderGCP   Provider = "GCP"
)

// CostRecord is one normalized spend observation for a service on a given day.
// Records are immutable once produced by a provider adapter.
type CostRecord struct {
	Service    string
	Cost       float64
	Currency   string
	Date       time.Time // truncated to day, UTC
	Provider   Provider
	ResourceID string            // optional, opaque
	Tags       map[string]string // optional, preserved but unused by aggregation
}

// Window is an inclusive day range for a single report.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow truncates both bounds to day granularity.
func NewWindow(start, end time.Time) Window {
	return Window{Start: Day(start), End: Day(end)}
}

// LastDays returns a window covering the previous `days` days up to today.
func LastDays(days int) Window {
	end := time.Now().UTC()
	return NewWindow(end.AddDate(0, 0, -days), end)
}

// Days returns the number of calendar days covered, inclusive.
func (w Window) Days() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

func (w Window) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(w.Start) && !d.After(w.End)
}

// Day truncates a timestamp to midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

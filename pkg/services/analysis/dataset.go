package analysis

import (
	"sort"
	"time"

	"github.com/de-tools/cost-atlas/pkg/models/domain"
	"github.com/samber/lo"
)

// Dataset is the aggregated multiset of cost records for one reporting
// window. It is read-only once built; every reduction derives a fresh
// value and never mutates the underlying records.
type Dataset struct {
	window  domain.Window
	records []domain.CostRecord
}

// NewDataset merges per-provider record batches into a single dataset.
// Empty batches contribute nothing, so a failed (fail-empty) adapter
// never blocks the rest of the report.
func NewDataset(window domain.Window, batches ...[]domain.CostRecord) *Dataset {
	var records []domain.CostRecord
	for _, batch := range batches {
		records = append(records, batch...)
	}
	return &Dataset{window: window, records: records}
}

func (d *Dataset) Window() domain.Window { return d.window }

func (d *Dataset) Empty() bool { return len(d.records) == 0 }

func (d *Dataset) Len() int { return len(d.records) }

// Records returns the backing slice. Callers must treat it as read-only.
func (d *Dataset) Records() []domain.CostRecord { return d.records }

// TotalCost sums cost over every record.
func (d *Dataset) TotalCost() float64 {
	return lo.SumBy(d.records, func(r domain.CostRecord) float64 { return r.Cost })
}

// CostByDate sums cost per calendar day across all providers.
func (d *Dataset) CostByDate() map[time.Time]float64 {
	return sumBy(d.records, func(r domain.CostRecord) time.Time { return r.Date })
}

// CostByProvider sums cost per cloud provider.
func (d *Dataset) CostByProvider() map[domain.Provider]float64 {
	return sumBy(d.records, func(r domain.CostRecord) domain.Provider { return r.Provider })
}

// CostByService sums cost per service name. Service names are
// provider-specific, so identical names from different providers fold
// into one bucket.
func (d *Dataset) CostByService() map[string]float64 {
	return sumBy(d.records, func(r domain.CostRecord) string { return r.Service })
}

// DailyCostByProvider sums cost per (provider, day) pair.
func (d *Dataset) DailyCostByProvider() map[domain.Provider]map[time.Time]float64 {
	totals := make(map[domain.Provider]map[time.Time]float64)
	for _, r := range d.records {
		days, ok := totals[r.Provider]
		if !ok {
			days = make(map[time.Time]float64)
			totals[r.Provider] = days
		}
		days[r.Date] += r.Cost
	}
	return totals
}

// TopServices ranks services by total cost descending and returns at
// most n entries. Ties keep the order services were first encountered
// in, so the ranking is stable within one run.
func (d *Dataset) TopServices(n int) []domain.ServiceCost {
	totals := make(map[string]float64)
	var order []string
	for _, r := range d.records {
		if _, seen := totals[r.Service]; !seen {
			order = append(order, r.Service)
		}
		totals[r.Service] += r.Cost
	}

	ranked := make([]domain.ServiceCost, 0, len(order))
	for _, service := range order {
		ranked = append(ranked, domain.ServiceCost{Service: service, Cost: totals[service]})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Cost > ranked[j].Cost })

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Currencies returns the distinct currency codes present, sorted.
func (d *Dataset) Currencies() []string {
	currencies := lo.Uniq(lo.Map(d.records, func(r domain.CostRecord, _ int) string { return r.Currency }))
	sort.Strings(currencies)
	return currencies
}

func sumBy[K comparable](records []domain.CostRecord, key func(domain.CostRecord) K) map[K]float64 {
	groups := lo.GroupBy(records, key)
	return lo.MapValues(groups, func(rs []domain.CostRecord, _ K) float64 {
		return lo.SumBy(rs, func(r domain.CostRecord) float64 { return r.Cost })
	})
}

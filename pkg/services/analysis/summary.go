package analysis

import (
	"github.com/de-tools/cost-atlas/pkg/models/domain"
)

const topServicesCount = 10

// Summarize derives the summary snapshot for a dataset. The second
// return value is false for an empty dataset; no statistics are
// computed in that case, so callers never see NaN or division by zero.
func Summarize(ds *Dataset) (*domain.Summary, bool) {
	if ds.Empty() {
		return nil, false
	}

	byDate := ds.CostByDate()
	total := ds.TotalCost()

	records := ds.Records()
	start, end := records[0].Date, records[0].Date
	for _, r := range records[1:] {
		if r.Date.Before(start) {
			start = r.Date
		}
		if r.Date.After(end) {
			end = r.Date
		}
	}

	return &domain.Summary{
		TotalCost:        total,
		AverageDailyCost: total / float64(len(byDate)),
		CostByProvider:   ds.CostByProvider(),
		TopServices:      ds.TopServices(topServicesCount),
		DateRange:        domain.Window{Start: start, End: end},
		Currencies:       ds.Currencies(),
	}, true
}

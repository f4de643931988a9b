package adapters

import (
	"github.com/de-tools/cost-atlas/pkg/models/api"
	"github.com/de-tools/cost-atlas/pkg/models/domain"
)

const dateLayout = "2006-01-02"

func MapSummaryDomainToApi(s *domain.Summary) *api.Summary {
	if s == nil {
		return nil
	}

	byProvider := make(map[string]float64, len(s.CostByProvider))
	for provider, cost := range s.CostByProvider {
		byProvider[string(provider)] = cost
	}

	top := make([]api.ServiceCost, 0, len(s.TopServices))
	for _, sc := range s.TopServices {
		top = append(top, api.ServiceCost{Service: sc.Service, Cost: sc.Cost})
	}

	return &api.Summary{
		TotalCost:          s.TotalCost,
		AverageDailyCost:   s.AverageDailyCost,
		CostByProvider:     byProvider,
		CostByServiceTop10: top,
		DateRange: api.DateRange{
			Start: s.DateRange.Start.Format(dateLayout),
			End:   s.DateRange.End.Format(dateLayout),
		},
		Currencies: s.Currencies,
	}
}

func MapAnomalyDomainToApi(a domain.Anomaly) api.Anomaly {
	return api.Anomaly{
		Date:          a.Date.Format(dateLayout),
		Provider:      string(a.Provider),
		Cost:          a.Cost,
		ExpectedRange: a.ExpectedRange,
		Severity:      string(a.Severity),
	}
}

func MapCostReportDomainToApi(r *domain.CostReport) api.CostReport {
	anomalies := make([]api.Anomaly, 0, len(r.Anomalies))
	for _, a := range r.Anomalies {
		anomalies = append(anomalies, MapAnomalyDomainToApi(a))
	}

	return api.CostReport{
		Summary:         MapSummaryDomainToApi(r.Summary),
		Anomalies:       anomalies,
		Recommendations: r.Recommendations,
	}
}

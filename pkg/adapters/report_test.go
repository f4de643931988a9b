package adapters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/cost-atlas/pkg/models/domain"
)

func TestMapCostReportDomainToApi(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	report := &domain.CostReport{
		Summary: &domain.Summary{
			TotalCost:        3400,
			AverageDailyCost: 340,
			CostByProvider: map[domain.Provider]float64{
				domain.ProviderAWS: 1400,
				domain.ProviderGCP: 2000,
			},
			TopServices: []domain.ServiceCost{
				{Service: "EC2", Cost: 1400},
				{Service: "BigQuery", Cost: 2000},
			},
			DateRange:  domain.Window{Start: start, End: end},
			Currencies: []string{"USD"},
		},
		Anomalies: []domain.Anomaly{
			{
				Date:          time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
				Provider:      domain.ProviderAWS,
				Cost:          500,
				ExpectedRange: "-112.98 - 392.98",
				Severity:      domain.SeverityHigh,
			},
		},
		Recommendations: []string{"Review EC2 usage - accounts for $1400.00 in costs"},
	}

	got := MapCostReportDomainToApi(report)

	require.NotNil(t, got.Summary)
	assert.Equal(t, map[string]float64{"AWS": 1400, "GCP": 2000}, got.Summary.CostByProvider)
	assert.Equal(t, "2024-01-01", got.Summary.DateRange.Start)
	assert.Equal(t, "2024-01-10", got.Summary.DateRange.End)
	require.Len(t, got.Anomalies, 1)
	assert.Equal(t, "2024-01-05", got.Anomalies[0].Date)
	assert.Equal(t, "high", got.Anomalies[0].Severity)
	assert.Equal(t, "-112.98 - 392.98", got.Anomalies[0].ExpectedRange)
	assert.Equal(t, report.Recommendations, got.Recommendations)
}

func TestMapCostReportDomainToApi_NoData(t *testing.T) {
	got := MapCostReportDomainToApi(&domain.CostReport{
		Recommendations: []string{"No data available for recommendations"},
	})

	assert.Nil(t, got.Summary)
	assert.Empty(t, got.Anomalies)
	assert.Len(t, got.Recommendations, 1)
}

package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/cost-atlas/pkg/models/domain"
	"github.com/de-tools/cost-atlas/pkg/services/analysis"
	"github.com/de-tools/cost-atlas/pkg/services/providers"
)

func staticAdapter(provider domain.Provider, records []domain.CostRecord) providers.Adapter {
	return providers.Func{
		Provider: provider,
		FetchFn: func(context.Context, domain.Window) []domain.CostRecord {
			return records
		},
	}
}

// brokenAdapter simulates a provider honoring the fail-empty contract.
func brokenAdapter(provider domain.Provider) providers.Adapter {
	return providers.Func{
		Provider: provider,
		FetchFn: func(context.Context, domain.Window) []domain.CostRecord {
			return nil
		},
	}
}

func testRecords(provider domain.Provider, service string, date time.Time, costs ...float64) []domain.CostRecord {
	var records []domain.CostRecord
	for i, cost := range costs {
		records = append(records, domain.CostRecord{
			Service:  service,
			Cost:     cost,
			Currency: "USD",
			Date:     date.AddDate(0, 0, i),
			Provider: provider,
		})
	}
	return records
}

func TestNewGenerator_NoAdapters_ShouldError(t *testing.T) {
	_, err := NewGenerator(nil, Options{})

	require.Error(t, err)
}

func TestNewGenerator_NegativeThreshold_ShouldError(t *testing.T) {
	adapter := staticAdapter(domain.ProviderAWS, nil)

	_, err := NewGenerator([]providers.Adapter{adapter}, Options{AnomalyThreshold: -1})

	require.Error(t, err)
}

func TestGenerator_Generate_MergesAllProviders(t *testing.T) {
	// Given
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	window := domain.NewWindow(start, start.AddDate(0, 0, 9))

	gen, err := NewGenerator([]providers.Adapter{
		staticAdapter(domain.ProviderAWS, testRecords(domain.ProviderAWS, "EC2", start, 10, 20, 30)),
		staticAdapter(domain.ProviderAzure, testRecords(domain.ProviderAzure, "Compute", start, 5, 5)),
	}, Options{})
	require.NoError(t, err)

	// When
	result := gen.Generate(context.Background(), window)

	// Then
	require.NotNil(t, result.Summary)
	assert.InDelta(t, 70, result.Summary.TotalCost, 1e-9)
	assert.Len(t, result.Records, 5)
	assert.Equal(t, window, result.Window)
	assert.NotEmpty(t, result.Recommendations)
}

func TestGenerator_Generate_FailedAdapterDoesNotBlockOthers(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	window := domain.NewWindow(start, start.AddDate(0, 0, 9))

	gen, err := NewGenerator([]providers.Adapter{
		brokenAdapter(domain.ProviderAzure),
		staticAdapter(domain.ProviderAWS, testRecords(domain.ProviderAWS, "EC2", start, 100, 100, 100)),
	}, Options{})
	require.NoError(t, err)

	result := gen.Generate(context.Background(), window)

	require.NotNil(t, result.Summary)
	assert.InDelta(t, 300, result.Summary.TotalCost, 1e-9)
	assert.Equal(t, map[domain.Provider]float64{domain.ProviderAWS: 300},
		result.Summary.CostByProvider)
}

func TestGenerator_Generate_AllAdaptersEmpty_ShouldYieldNoDataReport(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	window := domain.NewWindow(start, start.AddDate(0, 0, 9))

	gen, err := NewGenerator([]providers.Adapter{
		brokenAdapter(domain.ProviderAWS),
		brokenAdapter(domain.ProviderGCP),
	}, Options{})
	require.NoError(t, err)

	result := gen.Generate(context.Background(), window)

	// A run with no data still yields a well-defined report.
	assert.Nil(t, result.Summary)
	assert.Empty(t, result.Anomalies)
	assert.Equal(t, []string{analysis.NoDataRecommendation}, result.Recommendations)
}

func TestGenerator_Generate_DetectsAnomaliesAcrossProviders(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	window := domain.NewWindow(start, start.AddDate(0, 0, 13))

	costs := make([]float64, 14)
	for i := range costs {
		costs[i] = 100
	}
	costs[6] = 5000

	gen, err := NewGenerator([]providers.Adapter{
		staticAdapter(domain.ProviderAWS, testRecords(domain.ProviderAWS, "EC2", start, costs...)),
	}, Options{})
	require.NoError(t, err)

	result := gen.Generate(context.Background(), window)

	require.Len(t, result.Anomalies, 1)
	assert.Equal(t, domain.ProviderAWS, result.Anomalies[0].Provider)
	assert.Equal(t, start.AddDate(0, 0, 6), result.Anomalies[0].Date)
}

func TestGenerator_Providers(t *testing.T) {
	gen, err := NewGenerator([]providers.Adapter{
		staticAdapter(domain.ProviderGCP, nil),
		staticAdapter(domain.ProviderAWS, nil),
	}, Options{})
	require.NoError(t, err)

	assert.Equal(t, []domain.Provider{domain.ProviderGCP, domain.ProviderAWS}, gen.Providers())
}

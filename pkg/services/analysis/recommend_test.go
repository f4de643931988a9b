package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/cost-atlas/pkg/models/domain"
)

func TestRecommend_EmptyDataset_ShouldReturnSentinel(t *testing.T) {
	ds := NewDataset(testWindow(t))

	assert.Equal(t, []string{NoDataRecommendation}, Recommend(ds))
}

func TestRecommend_TopServicesLines(t *testing.T) {
	d1 := day(t, "2024-01-01")
	ds := NewDataset(testWindow(t), []domain.CostRecord{
		record(domain.ProviderAWS, "EC2", d1, 300),
		record(domain.ProviderAWS, "S3", d1, 200),
		record(domain.ProviderAWS, "RDS", d1, 100),
		record(domain.ProviderAWS, "Lambda", d1, 50),
	})

	got := Recommend(ds)

	// Single provider and a short window: only the top-3 service lines.
	require.Equal(t, []string{
		"Review EC2 usage - accounts for $300.00 in costs",
		"Review S3 usage - accounts for $200.00 in costs",
		"Review RDS usage - accounts for $100.00 in costs",
	}, got)
}

func TestRecommend_ProviderDistributionLine(t *testing.T) {
	d1 := day(t, "2024-01-01")
	ds := NewDataset(testWindow(t), []domain.CostRecord{
		record(domain.ProviderAWS, "EC2", d1, 300),
		record(domain.ProviderAzure, "Compute", d1, 100),
	})

	got := Recommend(ds)

	require.Len(t, got, 3)
	assert.Equal(t, "Consider workload distribution - AWS accounts for 75.0% of costs", got[2])
}

func TestRecommend_TrendSpikeWarning(t *testing.T) {
	// Given: 3 quiet days followed by 7 expensive days. The recent
	// 7-day mean (100) exceeds the overall mean (73) by more than 20%.
	dates := days(t, 10)
	var records []domain.CostRecord
	for i, d := range dates {
		cost := 100.0
		if i < 3 {
			cost = 10
		}
		records = append(records, record(domain.ProviderAWS, "EC2", d, cost))
	}
	ds := NewDataset(testWindow(t), records)

	got := Recommend(ds)

	require.NotEmpty(t, got)
	assert.Equal(t, "Recent costs are 20% above average - investigate recent deployments", got[len(got)-1])
}

func TestRecommend_NoTrendWarningForFlatSpend(t *testing.T) {
	dates := days(t, 14)
	ds := NewDataset(testWindow(t), constantSeries(domain.ProviderAWS, "EC2", dates, 100))

	for _, line := range Recommend(ds) {
		assert.NotContains(t, line, "Recent costs")
	}
}

func TestRecommend_ShortWindowSkipsTrendCheck(t *testing.T) {
	// Seven days or fewer: no trend comparison at all.
	dates := days(t, 7)
	records := constantSeries(domain.ProviderAWS, "EC2", dates, 10)
	records[6].Cost = 10000

	for _, line := range Recommend(NewDataset(testWindow(t), records)) {
		assert.NotContains(t, line, "Recent costs")
	}
}

func TestRecommend_DeterministicWithTies(t *testing.T) {
	// Equal-cost services inserted in a known sequence must rank the
	// same way on every call.
	d1 := day(t, "2024-01-01")
	ds := NewDataset(testWindow(t), []domain.CostRecord{
		record(domain.ProviderAWS, "zeta", d1, 100),
		record(domain.ProviderAWS, "alpha", d1, 100),
		record(domain.ProviderAWS, "mira", d1, 100),
	})

	first := Recommend(ds)
	second := Recommend(ds)

	require.Equal(t, first, second)
	assert.Equal(t, "Review zeta usage - accounts for $100.00 in costs", first[0])
	assert.Equal(t, "Review alpha usage - accounts for $100.00 in costs", first[1])
	assert.Equal(t, "Review mira usage - accounts for $100.00 in costs", first[2])
}

func TestRecommend_FixedSectionOrder(t *testing.T) {
	// Services first, provider distribution second, trend warning last.
	dates := days(t, 10)
	var records []domain.CostRecord
	for i, d := range dates {
		cost := 500.0
		if i < 3 {
			cost = 10
		}
		records = append(records, record(domain.ProviderAWS, "EC2", d, cost))
		records = append(records, record(domain.ProviderAzure, "Compute", d, 1))
	}
	ds := NewDataset(testWindow(t), records)

	got := Recommend(ds)

	require.Len(t, got, 4)
	assert.Contains(t, got[0], "Review EC2 usage")
	assert.Contains(t, got[1], "Review Compute usage")
	assert.Contains(t, got[2], "Consider workload distribution - AWS")
	assert.Equal(t, "Recent costs are 20% above average - investigate recent deployments", got[3])
}

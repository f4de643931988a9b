package analysis

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// NoDataRecommendation is the sentinel returned for an empty dataset.
const NoDataRecommendation = "No data available for recommendations"

const (
	topCostlyServices  = 3
	trendWindowDays    = 7
	trendSpikeFraction = 1.2
)

// Recommend derives optimization hints from the dataset. The output
// order is fixed: costliest services first, then provider distribution,
// then the recent-trend warning. Identical input yields identical
// output.
func Recommend(ds *Dataset) []string {
	if ds.Empty() {
		return []string{NoDataRecommendation}
	}

	var recommendations []string

	for _, sc := range ds.TopServices(topCostlyServices) {
		recommendations = append(recommendations,
			fmt.Sprintf("Review %s usage - accounts for $%.2f in costs", sc.Service, sc.Cost))
	}

	if line, ok := providerDistribution(ds); ok {
		recommendations = append(recommendations, line)
	}

	if line, ok := recentTrend(ds); ok {
		recommendations = append(recommendations, line)
	}

	return recommendations
}

// providerDistribution names the costliest provider and its share of
// the overall spend. Single-provider datasets produce nothing. Cost
// ties break on provider name so repeated runs agree.
func providerDistribution(ds *Dataset) (string, bool) {
	byProvider := ds.CostByProvider()
	if len(byProvider) < 2 {
		return "", false
	}

	providers := lo.Keys(byProvider)
	sort.Slice(providers, func(i, j int) bool { return providers[i] < providers[j] })

	top := providers[0]
	for _, p := range providers[1:] {
		if byProvider[p] > byProvider[top] {
			top = p
		}
	}

	total := lo.Sum(lo.Values(byProvider))
	share := byProvider[top] / total * 100

	return fmt.Sprintf("Consider workload distribution - %s accounts for %.1f%% of costs", top, share), true
}

// recentTrend warns when the mean daily cost of the last seven days
// exceeds the whole-window mean by more than 20%.
func recentTrend(ds *Dataset) (string, bool) {
	byDate := ds.CostByDate()
	if len(byDate) <= trendWindowDays {
		return "", false
	}

	dates := sortedDates(byDate)

	var overall float64
	for _, d := range dates {
		overall += byDate[d]
	}
	overall /= float64(len(dates))

	var recent float64
	for _, d := range dates[len(dates)-trendWindowDays:] {
		recent += byDate[d]
	}
	recent /= trendWindowDays

	if recent <= overall*trendSpikeFraction {
		return "", false
	}
	return "Recent costs are 20% above average - investigate recent deployments", true
}

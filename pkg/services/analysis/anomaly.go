package analysis

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/de-tools/cost-atlas/pkg/models/domain"
)

const (
	// DefaultThreshold flags days more than two standard deviations
	// away from the provider's mean daily cost.
	DefaultThreshold = 2.0

	highSeverityScore = 3.0
)

// DetectAnomalies flags provider days whose total cost deviates from
// that provider's own distribution by more than threshold standard
// deviations. Each provider is normalized independently so a large
// spender cannot mask deviations in a smaller one. The result is
// ordered most recent first.
func DetectAnomalies(ds *Dataset, threshold float64) []domain.Anomaly {
	var anomalies []domain.Anomaly

	daily := ds.DailyCostByProvider()
	for _, provider := range sortedProviders(daily) {
		days := daily[provider]
		dates := sortedDates(days)

		series := make([]float64, 0, len(dates))
		for _, date := range dates {
			series = append(series, days[date])
		}
		mean, stddev := meanStddev(series)

		for _, date := range dates {
			cost := days[date]

			// Zero variance means every day is equal; no deviation is
			// reportable and dividing by sigma would blow up.
			var z float64
			if stddev > 0 {
				z = (cost - mean) / stddev
			}
			if math.Abs(z) <= threshold {
				continue
			}

			severity := domain.SeverityMedium
			if math.Abs(z) > highSeverityScore {
				severity = domain.SeverityHigh
			}

			anomalies = append(anomalies, domain.Anomaly{
				Date:          date,
				Provider:      provider,
				Cost:          cost,
				ExpectedRange: fmt.Sprintf("%.2f - %.2f", mean-threshold*stddev, mean+threshold*stddev),
				Severity:      severity,
			})
		}
	}

	sort.SliceStable(anomalies, func(i, j int) bool {
		return anomalies[i].Date.After(anomalies[j].Date)
	})
	return anomalies
}

// meanStddev returns the mean and sample standard deviation of the
// series. A series shorter than two points has no variance to estimate,
// so its deviation is reported as zero.
func meanStddev(series []float64) (float64, float64) {
	n := float64(len(series))
	if n == 0 {
		return 0, 0
	}

	var sum float64
	for _, v := range series {
		sum += v
	}
	mean := sum / n

	if n < 2 {
		return mean, 0
	}

	var squares float64
	for _, v := range series {
		d := v - mean
		squares += d * d
	}
	return mean, math.Sqrt(squares / (n - 1))
}

// Map iteration order is random; providers and dates are walked in
// sorted order so repeated runs over the same dataset yield identical
// output.
func sortedProviders(daily map[domain.Provider]map[time.Time]float64) []domain.Provider {
	providers := make([]domain.Provider, 0, len(daily))
	for p := range daily {
		providers = append(providers, p)
	}
	sort.Slice(providers, func(i, j int) bool { return providers[i] < providers[j] })
	return providers
}

func sortedDates(days map[time.Time]float64) []time.Time {
	dates := make([]time.Time, 0, len(days))
	for d := range days {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

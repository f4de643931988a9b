package domain

import "time"

// ServiceCost is one entry of an ordered service ranking.
type ServiceCost struct {
	Service string
	Cost    float64
}

// Summary is a read-only snapshot derived from one aggregated dataset.
type Summary struct {
	TotalCost        float64
	AverageDailyCost float64
	CostByProvider   map[Provider]float64
	// TopServices holds the ten costliest services, descending by cost.
	TopServices []ServiceCost
	// DateRange covers the dates actually present in the dataset,
	// which may be narrower than the requested window.
	DateRange Window
	// Currencies lists every currency seen in the dataset. More than one
	// entry means totals mix units; no conversion is performed.
	Currencies []string
}

// Severity classifies how far an anomalous day deviates from its
// provider's mean.
type Severity string

const (
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Anomaly flags a provider day whose total cost deviates statistically
// from that provider's distribution within the window.
type Anomaly struct {
	Date          time.Time
	Provider      Provider
	Cost          float64
	ExpectedRange string // "lo - hi", two decimals
	Severity      Severity
}

// CostReport is the full output of one report generation.
type CostReport struct {
	Window Window
	// Summary is nil when no provider returned any records.
	Summary         *Summary
	Anomalies       []Anomaly
	Recommendations []string
	// Records is the normalized dataset backing the report, suitable
	// for tabular export.
	Records []CostRecord
}

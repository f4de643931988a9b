package api

// Summary is the wire representation of a cost summary.
type Summary struct {
	TotalCost          float64            `json:"total_cost"`
	AverageDailyCost   float64            `json:"average_daily_cost"`
	CostByProvider     map[string]float64 `json:"cost_by_provider"`
	CostByServiceTop10 []ServiceCost      `json:"cost_by_service_top10"`
	DateRange          DateRange          `json:"date_range"`
	Currencies         []string           `json:"currencies,omitempty"`
}

type ServiceCost struct {
	Service string  `json:"service"`
	Cost    float64 `json:"cost"`
}

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Anomaly struct {
	Date          string  `json:"date"`
	Provider      string  `json:"provider"`
	Cost          float64 `json:"cost"`
	ExpectedRange string  `json:"expected_range"`
	Severity      string  `json:"severity"`
}

type CostReport struct {
	// Summary is null when no provider returned any records.
	Summary         *Summary  `json:"summary"`
	Anomalies       []Anomaly `json:"anomalies"`
	Recommendations []string  `json:"recommendations"`
}

type ProviderList struct {
	Providers []string `json:"providers"`
}

package gcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/de-tools/cost-atlas/pkg/models/domain"
	"github.com/de-tools/cost-atlas/pkg/services/config"
	"github.com/de-tools/cost-atlas/pkg/services/providers"
)

const (
	bigQueryScope   = "https://www.googleapis.com/auth/bigquery.readonly"
	queryEndpoint   = "https://bigquery.googleapis.com/bigquery/v2/projects/%s/queries"
	defaultDataset  = "billing_export"
	dateLayout      = "2006-01-02"
	requestTimeout  = 30 * time.Second
	maxQueryResults = 10000
)

type adapter struct {
	projectID  string
	dataset    string
	httpClient *http.Client
}

// AdapterFactory builds the GCP adapter from the profile's gcp section.
// Cost data is read from the standard billing export in BigQuery.
func AdapterFactory(ctx context.Context, profile *config.Profile) (providers.Adapter, error) {
	cfg := profile.GCP
	if cfg == nil {
		return nil, fmt.Errorf("profile has no gcp section")
	}
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("gcp project_id is required")
	}

	key, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read GCP credentials file: %w", err)
	}

	creds, err := google.CredentialsFromJSON(ctx, key, bigQueryScope)
	if err != nil {
		return nil, fmt.Errorf("invalid GCP credentials: %w", err)
	}

	dataset := cfg.BillingDataset
	if dataset == "" {
		dataset = defaultDataset
	}

	client := oauth2.NewClient(ctx, creds.TokenSource)
	client.Timeout = requestTimeout

	return &adapter{
		projectID:  cfg.ProjectID,
		dataset:    dataset,
		httpClient: client,
	}, nil
}

// NewAdapter wires an adapter over an existing HTTP client, which must
// already carry credentials.
func NewAdapter(projectID, dataset string, client *http.Client) providers.Adapter {
	return &adapter{projectID: projectID, dataset: dataset, httpClient: client}
}

func (a *adapter) Name() domain.Provider { return domain.ProviderGCP }

func (a *adapter) Fetch(ctx context.Context, window domain.Window) []domain.CostRecord {
	records, err := a.fetch(ctx, window)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to fetch GCP cost data")
		return nil
	}
	return records
}

type queryRequest struct {
	Query        string `json:"query"`
	UseLegacySQL bool   `json:"useLegacySql"`
	MaxResults   int    `json:"maxResults,omitempty"`
	TimeoutMs    int    `json:"timeoutMs,omitempty"`
}

type queryResponse struct {
	Schema struct {
		Fields []struct {
			Name string `json:"name"`
			Type string `json:"type"`
		} `json:"fields"`
	} `json:"schema"`
	Rows        []queryRow `json:"rows"`
	JobComplete bool       `json:"jobComplete"`
}

type queryRow struct {
	F []queryCell `json:"f"`
}

type queryCell struct {
	V interface{} `json:"v"`
}

func (a *adapter) fetch(ctx context.Context, window domain.Window) ([]domain.CostRecord, error) {
	// Table layout of the standard GCP billing export:
	// PROJECT.DATASET.gcp_billing_export_v1_BILLING_ACCOUNT.
	query := fmt.Sprintf(`
		SELECT
			FORMAT_DATE('%%Y-%%m-%%d', DATE(usage_start_time)) AS day,
			service.description AS service_name,
			SUM(cost) AS total_cost,
			currency
		FROM `+"`%s.%s.gcp_billing_export_*`"+`
		WHERE DATE(usage_start_time) BETWEEN '%s' AND '%s'
		GROUP BY day, service_name, currency
		ORDER BY day, service_name`,
		a.projectID, a.dataset,
		window.Start.Format(dateLayout), window.End.Format(dateLayout),
	)

	body, err := json.Marshal(queryRequest{
		Query:        query,
		UseLegacySQL: false,
		MaxResults:   maxQueryResults,
		TimeoutMs:    int(requestTimeout.Milliseconds()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query request: %w", err)
	}

	url := fmt.Sprintf(queryEndpoint, a.projectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create query request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query billing export: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("billing export query failed: %d %s", resp.StatusCode, string(payload))
	}

	var result queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode query response: %w", err)
	}

	return transformQueryResponse(&result)
}

func transformQueryResponse(result *queryResponse) ([]domain.CostRecord, error) {
	columns := map[string]int{}
	for i, field := range result.Schema.Fields {
		columns[field.Name] = i
	}

	for _, name := range []string{"day", "service_name", "total_cost", "currency"} {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("query response missing column %q", name)
		}
	}

	var records []domain.CostRecord
	for _, row := range result.Rows {
		day, ok := cell(row.F, columns["day"])
		if !ok {
			continue
		}
		service, ok := cell(row.F, columns["service_name"])
		if !ok {
			continue
		}
		rawCost, ok := cell(row.F, columns["total_cost"])
		if !ok {
			continue
		}
		currency, _ := cell(row.F, columns["currency"])

		date, err := time.Parse(dateLayout, day)
		if err != nil {
			return nil, fmt.Errorf("failed to parse day %q: %w", day, err)
		}
		cost, err := strconv.ParseFloat(rawCost, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse cost %q: %w", rawCost, err)
		}

		records = append(records, domain.CostRecord{
			Service:  service,
			Cost:     cost,
			Currency: currency,
			Date:     date,
			Provider: domain.ProviderGCP,
		})
	}

	return records, nil
}

// cell extracts a row value; BigQuery's REST API encodes every scalar
// as a string.
func cell(fields []queryCell, idx int) (string, bool) {
	if idx >= len(fields) {
		return "", false
	}
	v, ok := fields[idx].V.(string)
	return v, ok
}

package azure

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/costmanagement/armcostmanagement"
	"github.com/rs/zerolog"

	"github.com/de-tools/cost-atlas/pkg/models/domain"
	"github.com/de-tools/cost-atlas/pkg/services/config"
	"github.com/de-tools/cost-atlas/pkg/services/providers"
)

// QueryAPI is the slice of the cost management query client the adapter
// needs.
type QueryAPI interface {
	Usage(
		ctx context.Context,
		scope string,
		parameters armcostmanagement.QueryDefinition,
		options *armcostmanagement.QueryClientUsageOptions,
	) (armcostmanagement.QueryClientUsageResponse, error)
}

type adapter struct {
	client QueryAPI
	scope  string
}

// AdapterFactory builds the Azure adapter from the profile's azure
// section.
func AdapterFactory(_ context.Context, profile *config.Profile) (providers.Adapter, error) {
	if profile.Azure == nil {
		return nil, fmt.Errorf("profile has no azure section")
	}

	cfg, err := LoadConfig(profile.Azure)
	if err != nil {
		return nil, fmt.Errorf("failed to load Azure credentials: %w", err)
	}

	clientFactory, err := armcostmanagement.NewClientFactory(cfg.Credentials, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cost management client factory: %w", err)
	}

	return NewAdapter(clientFactory.NewQueryClient(), cfg.SubscriptionID), nil
}

// NewAdapter wires an adapter over an existing query client.
func NewAdapter(client QueryAPI, subscriptionID string) providers.Adapter {
	return &adapter{
		client: client,
		scope:  fmt.Sprintf("/subscriptions/%s", subscriptionID),
	}
}

func (a *adapter) Name() domain.Provider { return domain.ProviderAzure }

func (a *adapter) Fetch(ctx context.Context, window domain.Window) []domain.CostRecord {
	records, err := a.fetch(ctx, window)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to fetch Azure cost data")
		return nil
	}
	return records
}

func (a *adapter) fetch(ctx context.Context, window domain.Window) ([]domain.CostRecord, error) {
	exportType := armcostmanagement.ExportTypeActualCost
	granularity := armcostmanagement.GranularityTypeDaily
	timeframe := armcostmanagement.TimeframeTypeCustom
	dimension := armcostmanagement.QueryColumnTypeDimension
	sum := armcostmanagement.FunctionTypeSum

	// Azure treats both bounds as inclusive.
	timeFrom := window.Start
	timeTo := window.End

	params := armcostmanagement.QueryDefinition{
		Type:      &exportType,
		Timeframe: &timeframe,
		TimePeriod: &armcostmanagement.QueryTimePeriod{
			From: &timeFrom,
			To:   &timeTo,
		},
		Dataset: &armcostmanagement.QueryDataset{
			Granularity: &granularity,
			Aggregation: map[string]*armcostmanagement.QueryAggregation{
				"totalCost": {
					Name:     to.Ptr("Cost"),
					Function: &sum,
				},
			},
			Grouping: []*armcostmanagement.QueryGrouping{
				{
					Name: to.Ptr("ServiceName"),
					Type: &dimension,
				},
			},
		},
	}

	result, err := a.client.Usage(ctx, a.scope, params, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query costs: %w", err)
	}

	return transformQueryResult(&result.QueryResult)
}

// transformQueryResult maps query rows onto cost records using the
// column metadata; row layout is not guaranteed to be positional.
func transformQueryResult(result *armcostmanagement.QueryResult) ([]domain.CostRecord, error) {
	if result.Properties == nil {
		return nil, nil
	}

	columns := map[string]int{}
	for i, col := range result.Properties.Columns {
		if col != nil && col.Name != nil {
			columns[*col.Name] = i
		}
	}

	costIdx, ok := columns["Cost"]
	if !ok {
		return nil, fmt.Errorf("query result has no Cost column")
	}
	dateIdx, hasDate := columns["UsageDate"]
	serviceIdx, hasService := columns["ServiceName"]
	currencyIdx, hasCurrency := columns["Currency"]

	var records []domain.CostRecord
	for _, row := range result.Properties.Rows {
		cost, ok := floatCell(row, costIdx)
		if !ok {
			continue
		}

		record := domain.CostRecord{
			Cost:     cost,
			Currency: "USD",
			Provider: domain.ProviderAzure,
		}

		if hasService {
			if service, ok := stringCell(row, serviceIdx); ok {
				record.Service = service
			}
		}
		if hasCurrency {
			if currency, ok := stringCell(row, currencyIdx); ok {
				record.Currency = currency
			}
		}
		if hasDate {
			usageDate, ok := floatCell(row, dateIdx)
			if !ok {
				continue
			}
			date, err := parseUsageDate(usageDate)
			if err != nil {
				return nil, err
			}
			record.Date = date
		}

		records = append(records, record)
	}

	return records, nil
}

// parseUsageDate decodes the numeric yyyymmdd UsageDate column.
func parseUsageDate(v float64) (time.Time, error) {
	date, err := time.Parse("20060102", strconv.FormatFloat(v, 'f', 0, 64))
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse usage date %v: %w", v, err)
	}
	return date, nil
}

func floatCell(row []interface{}, idx int) (float64, bool) {
	if idx >= len(row) {
		return 0, false
	}
	v, ok := row[idx].(float64)
	return v, ok
}

func stringCell(row []interface{}, idx int) (string, bool) {
	if idx >= len(row) {
		return "", false
	}
	v, ok := row[idx].(string)
	return v, ok
}

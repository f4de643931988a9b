package aws

import (
	"context"
	"fmt"
	"strconv"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/rs/zerolog"

	"github.com/de-tools/cost-atlas/pkg/models/domain"
	"github.com/de-tools/cost-atlas/pkg/services/config"
	"github.com/de-tools/cost-atlas/pkg/services/providers"
)

const dateLayout = "2006-01-02"

// CostExplorerAPI is the slice of the Cost Explorer client the adapter
// needs.
type CostExplorerAPI interface {
	GetCostAndUsage(
		ctx context.Context,
		params *costexplorer.GetCostAndUsageInput,
		optFns ...func(*costexplorer.Options),
	) (*costexplorer.GetCostAndUsageOutput, error)
}

type adapter struct {
	client CostExplorerAPI
}

// AdapterFactory builds the AWS adapter from the profile's aws section.
func AdapterFactory(ctx context.Context, profile *config.Profile) (providers.Adapter, error) {
	if profile.AWS == nil {
		return nil, fmt.Errorf("profile has no aws section")
	}

	cfg, err := LoadConfig(ctx, profile.AWS)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	return &adapter{client: costexplorer.NewFromConfig(*cfg)}, nil
}

// NewAdapter wires an adapter over an existing client.
func NewAdapter(client CostExplorerAPI) providers.Adapter {
	return &adapter{client: client}
}

func (a *adapter) Name() domain.Provider { return domain.ProviderAWS }

func (a *adapter) Fetch(ctx context.Context, window domain.Window) []domain.CostRecord {
	records, err := a.fetch(ctx, window)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to fetch AWS cost data")
		return nil
	}
	return records
}

func (a *adapter) fetch(ctx context.Context, window domain.Window) ([]domain.CostRecord, error) {
	// Cost Explorer treats End as exclusive; push it one day out so the
	// window stays inclusive.
	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &types.DateInterval{
			Start: awssdk.String(window.Start.Format(dateLayout)),
			End:   awssdk.String(window.End.AddDate(0, 0, 1).Format(dateLayout)),
		},
		Granularity: types.GranularityDaily,
		Metrics:     []string{"UnblendedCost"},
		Filter: &types.Expression{
			Not: &types.Expression{
				Dimensions: &types.DimensionValues{
					Key:    types.DimensionRecordType,
					Values: []string{"Credit", "Refund"},
				},
			},
		},
		GroupBy: []types.GroupDefinition{
			{
				Type: types.GroupDefinitionTypeDimension,
				Key:  awssdk.String("SERVICE"),
			},
		},
	}

	var records []domain.CostRecord
	for {
		result, err := a.client.GetCostAndUsage(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to get cost and usage: %w", err)
		}

		batch, err := transformCostAndUsage(result)
		if err != nil {
			return nil, err
		}
		records = append(records, batch...)

		if result.NextPageToken == nil {
			break
		}
		input.NextPageToken = result.NextPageToken
	}

	return records, nil
}

func transformCostAndUsage(result *costexplorer.GetCostAndUsageOutput) ([]domain.CostRecord, error) {
	var records []domain.CostRecord

	for _, resultByTime := range result.ResultsByTime {
		date, err := time.Parse(dateLayout, *resultByTime.TimePeriod.Start)
		if err != nil {
			return nil, fmt.Errorf("failed to parse period start: %w", err)
		}

		for _, group := range resultByTime.Groups {
			if len(group.Keys) == 0 {
				continue
			}

			metric, ok := group.Metrics["UnblendedCost"]
			if !ok || metric.Amount == nil {
				continue
			}

			amount, err := strconv.ParseFloat(*metric.Amount, 64)
			if err != nil {
				return nil, fmt.Errorf("failed to parse cost amount %q: %w", *metric.Amount, err)
			}

			currency := "USD"
			if metric.Unit != nil {
				currency = *metric.Unit
			}

			records = append(records, domain.CostRecord{
				Service:  group.Keys[0],
				Cost:     amount,
				Currency: currency,
				Date:     date,
				Provider: domain.ProviderAWS,
			})
		}
	}

	return records, nil
}

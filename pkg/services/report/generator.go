package report

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/de-tools/cost-atlas/pkg/models/domain"
	"github.com/de-tools/cost-atlas/pkg/services/analysis"
	"github.com/de-tools/cost-atlas/pkg/services/providers"
)

// Generator sequences provider adapters into one cost report:
// fan-out fetch, aggregate, then summary, anomalies and
// recommendations over the single resulting dataset.
type Generator struct {
	adapters  []providers.Adapter
	threshold float64
}

type Options struct {
	// AnomalyThreshold is the z-score cutoff; zero selects the default.
	AnomalyThreshold float64
}

func NewGenerator(adapters []providers.Adapter, opts Options) (*Generator, error) {
	if len(adapters) == 0 {
		return nil, fmt.Errorf("at least one provider adapter must be configured")
	}

	threshold := opts.AnomalyThreshold
	if threshold == 0 {
		threshold = analysis.DefaultThreshold
	}
	if threshold < 0 {
		return nil, fmt.Errorf("anomaly threshold must be positive, got %v", threshold)
	}

	return &Generator{adapters: adapters, threshold: threshold}, nil
}

// Generate produces the report for one window. Adapters run
// concurrently; the fail-empty contract means a broken provider
// contributes an empty batch instead of an error, so the group never
// fails and every healthy provider still lands in the dataset. The
// dataset is assembled only after every adapter has returned.
func (g *Generator) Generate(ctx context.Context, window domain.Window) *domain.CostReport {
	logger := zerolog.Ctx(ctx)

	batches := make([][]domain.CostRecord, len(g.adapters))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, adapter := range g.adapters {
		i, adapter := i, adapter
		group.Go(func() error {
			records := adapter.Fetch(groupCtx, window)
			logger.Info().
				Str("provider", string(adapter.Name())).
				Int("records", len(records)).
				Msg("retrieved cost records")
			batches[i] = records
			return nil
		})
	}
	// Adapters never return errors, Wait only synchronizes.
	_ = group.Wait()

	ds := analysis.NewDataset(window, batches...)

	summary, _ := analysis.Summarize(ds)

	return &domain.CostReport{
		Window:          window,
		Summary:         summary,
		Anomalies:       analysis.DetectAnomalies(ds, g.threshold),
		Recommendations: analysis.Recommend(ds),
		Records:         ds.Records(),
	}
}

// Providers lists the adapters the generator will query.
func (g *Generator) Providers() []domain.Provider {
	names := make([]domain.Provider, 0, len(g.adapters))
	for _, a := range g.adapters {
		names = append(names, a.Name())
	}
	return names
}

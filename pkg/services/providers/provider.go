package providers

import (
	"context"

	"github.com/de-tools/cost-atlas/pkg/models/domain"
)

// Adapter produces normalized cost records for one cloud provider.
//
// Fetch follows the fail-empty contract: an adapter that hits an
// internal error (network, auth, malformed response) logs it through
// the context logger and returns an empty slice instead of an error, so
// one broken provider never prevents a report from the others.
type Adapter interface {
	Name() domain.Provider
	Fetch(ctx context.Context, window domain.Window) []domain.CostRecord
}

// Func adapts a plain function to the Adapter interface.
type Func struct {
	Provider domain.Provider
	FetchFn  func(ctx context.Context, window domain.Window) []domain.CostRecord
}

func (f Func) Name() domain.Provider { return f.Provider }

func (f Func) Fetch(ctx context.Context, window domain.Window) []domain.CostRecord {
	return f.FetchFn(ctx, window)
}

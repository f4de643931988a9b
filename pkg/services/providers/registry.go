package providers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/de-tools/cost-atlas/pkg/models/domain"
	"github.com/de-tools/cost-atlas/pkg/services/config"
)

// AdapterFactory builds an adapter from the relevant section of a
// profile. A factory fails when its section is missing or malformed;
// that failure is terminal (it happens before any fetch runs).
type AdapterFactory func(ctx context.Context, profile *config.Profile) (Adapter, error)

// Registry manages provider adapter factories.
type Registry interface {
	// Register adds a factory for a provider.
	Register(provider domain.Provider, factory AdapterFactory) error
	// Create instantiates the adapter for the given provider.
	Create(ctx context.Context, provider domain.Provider, profile *config.Profile) (Adapter, error)
	// ListProviders returns the registered providers, sorted.
	ListProviders() []domain.Provider
}

type registry struct {
	mu        sync.RWMutex
	factories map[domain.Provider]AdapterFactory
}

// NewRegistry creates a registry pre-populated with the given factories.
func NewRegistry(factories map[domain.Provider]AdapterFactory) Registry {
	r := &registry{factories: make(map[domain.Provider]AdapterFactory)}
	for provider, factory := range factories {
		r.factories[provider] = factory
	}
	return r
}

func (r *registry) Register(provider domain.Provider, factory AdapterFactory) error {
	if provider == "" {
		return fmt.Errorf("provider name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[provider]; exists {
		return fmt.Errorf("provider %q is already registered", provider)
	}

	r.factories[provider] = factory
	return nil
}

func (r *registry) Create(
	ctx context.Context,
	provider domain.Provider,
	profile *config.Profile,
) (Adapter, error) {
	r.mu.RLock()
	factory, exists := r.factories[provider]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("provider %q is not registered", provider)
	}

	return factory(ctx, profile)
}

func (r *registry) ListProviders() []domain.Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providers := make([]domain.Provider, 0, len(r.factories))
	for provider := range r.factories {
		providers = append(providers, provider)
	}
	sort.Slice(providers, func(i, j int) bool { return providers[i] < providers[j] })
	return providers
}

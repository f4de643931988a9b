package providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/cost-atlas/pkg/models/domain"
	"github.com/de-tools/cost-atlas/pkg/services/config"
)

func stubFactory(adapter Adapter) AdapterFactory {
	return func(context.Context, *config.Profile) (Adapter, error) {
		return adapter, nil
	}
}

func TestRegistry_Create(t *testing.T) {
	// Given
	adapter := Func{Provider: domain.ProviderAWS}
	registry := NewRegistry(map[domain.Provider]AdapterFactory{
		domain.ProviderAWS: stubFactory(adapter),
	})

	// When
	created, err := registry.Create(context.Background(), domain.ProviderAWS, &config.Profile{})

	// Then
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderAWS, created.Name())
}

func TestRegistry_Create_UnknownProvider_ShouldError(t *testing.T) {
	registry := NewRegistry(nil)

	_, err := registry.Create(context.Background(), domain.ProviderGCP, &config.Profile{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not registered")
}

func TestRegistry_Register_Duplicate_ShouldError(t *testing.T) {
	registry := NewRegistry(map[domain.Provider]AdapterFactory{
		domain.ProviderAzure: stubFactory(Func{Provider: domain.ProviderAzure}),
	})

	err := registry.Register(domain.ProviderAzure, stubFactory(Func{Provider: domain.ProviderAzure}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegistry_Register_Validation(t *testing.T) {
	registry := NewRegistry(nil)

	assert.Error(t, registry.Register("", stubFactory(Func{})))
	assert.Error(t, registry.Register(domain.ProviderAWS, nil))
}

func TestRegistry_ListProviders_Sorted(t *testing.T) {
	registry := NewRegistry(map[domain.Provider]AdapterFactory{
		domain.ProviderGCP:   stubFactory(Func{Provider: domain.ProviderGCP}),
		domain.ProviderAWS:   stubFactory(Func{Provider: domain.ProviderAWS}),
		domain.ProviderAzure: stubFactory(Func{Provider: domain.ProviderAzure}),
	})

	assert.Equal(t, []domain.Provider{
		domain.ProviderAWS,
		domain.ProviderAzure,
		domain.ProviderGCP,
	}, registry.ListProviders())
}

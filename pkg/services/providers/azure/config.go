package azure

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"gopkg.in/ini.v1"

	"github.com/de-tools/cost-atlas/pkg/services/config"
)

const DefaultProfile = "default"

type Config struct {
	SubscriptionID string
	Credentials    *azidentity.AzureCLICredential
}

// LoadConfig resolves the subscription from the profile, falling back
// to the named section of ~/.azure/config, and builds CLI credentials.
func LoadConfig(cfg *config.AzureConfig) (*Config, error) {
	subscription := cfg.SubscriptionID
	if subscription == "" {
		var err error
		subscription, err = subscriptionFromAzureConfig(cfg.Profile)
		if err != nil {
			return nil, err
		}
	}

	credentials, err := azidentity.NewAzureCLICredential(&azidentity.AzureCLICredentialOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure CLI credential: %w", err)
	}

	return &Config{
		SubscriptionID: subscription,
		Credentials:    credentials,
	}, nil
}

func subscriptionFromAzureConfig(profile string) (string, error) {
	if profile == "" {
		profile = DefaultProfile
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("unable to get home directory: %w", err)
	}

	configPath := filepath.Join(homeDir, ".azure", "config")
	file, err := ini.Load(configPath)
	if err != nil {
		return "", fmt.Errorf("unable to load Azure config file: %w", err)
	}

	section, err := file.GetSection(profile)
	if err != nil {
		return "", fmt.Errorf("profile %s not found in Azure config: %w", profile, err)
	}

	subscription := section.Key("subscription").String()
	if subscription == "" {
		return "", fmt.Errorf("subscription ID not found in profile %s", profile)
	}
	return subscription, nil
}

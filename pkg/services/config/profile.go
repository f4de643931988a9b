package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Profile holds per-provider credentials and settings for one report
// run. Sections are optional; a provider without a section is simply
// not queried.
type Profile struct {
	AWS   *AWSConfig   `mapstructure:"aws"`
	Azure *AzureConfig `mapstructure:"azure"`
	GCP   *GCPConfig   `mapstructure:"gcp"`
}

type AWSConfig struct {
	// Profile selects a shared-config profile (~/.aws/config).
	Profile string `mapstructure:"profile"`
	Region  string `mapstructure:"region"`
}

type AzureConfig struct {
	SubscriptionID string `mapstructure:"subscription_id"`
	// Profile selects a section of ~/.azure/config when the
	// subscription is not set explicitly.
	Profile string `mapstructure:"profile"`
}

type GCPConfig struct {
	ProjectID       string `mapstructure:"project_id"`
	BillingAccount  string `mapstructure:"billing_account"`
	BillingDataset  string `mapstructure:"billing_dataset"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

// LoadProfile reads a profile file (any format viper understands).
func LoadProfile(profilePath string) (*Profile, error) {
	v := viper.New()
	v.SetConfigFile(profilePath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var profile Profile
	if err := v.Unmarshal(&profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	return &profile, nil
}

// Providers lists the section names configured in the profile.
func (p *Profile) Providers() []string {
	var names []string
	if p.AWS != nil {
		names = append(names, "aws")
	}
	if p.Azure != nil {
		names = append(names, "azure")
	}
	if p.GCP != nil {
		names = append(names, "gcp")
	}
	return names
}

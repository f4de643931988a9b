package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/de-tools/cost-atlas/pkg/services/config"
)

const (
	// Cost Explorer is a global API served out of us-east-1.
	DefaultRegion = "us-east-1"
)

func LoadConfig(ctx context.Context, cfg *config.AWSConfig) (*awssdk.Config, error) {
	region := cfg.Region
	if region == "" {
		region = DefaultRegion
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithSharedConfigProfile(cfg.Profile),
		awsconfig.WithDefaultRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	// Test the credentials
	_, err = awsCfg.Credentials.Retrieve(ctx)
	if err != nil {
		return nil, fmt.Errorf("invalid AWS credentials for profile %s: %w", cfg.Profile, err)
	}

	return &awsCfg, nil
}

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/cost-atlas/pkg/models/domain"
	"github.com/de-tools/cost-atlas/pkg/server"
	"github.com/de-tools/cost-atlas/pkg/services/config"
	"github.com/de-tools/cost-atlas/pkg/services/providers"
	"github.com/de-tools/cost-atlas/pkg/services/providers/aws"
	"github.com/de-tools/cost-atlas/pkg/services/providers/azure"
	"github.com/de-tools/cost-atlas/pkg/services/providers/gcp"
	"github.com/de-tools/cost-atlas/pkg/services/report"
)

var (
	cfgPath string
	addr    string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Cost Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "cost-atlas.yaml",
		"Path to the provider configuration profile")
	rootCmd.Flags().StringVar(&addr, "addr", ":8080", "Address to listen on")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	profile, err := config.LoadProfile(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	registry := providers.NewRegistry(map[domain.Provider]providers.AdapterFactory{
		domain.ProviderAWS:   aws.AdapterFactory,
		domain.ProviderAzure: azure.AdapterFactory,
		domain.ProviderGCP:   gcp.AdapterFactory,
	})

	var adapters []providers.Adapter
	for _, provider := range registry.ListProviders() {
		if !configured(profile, provider) {
			continue
		}
		adapter, err := registry.Create(ctx, provider, profile)
		if err != nil {
			return fmt.Errorf("failed to configure %s adapter: %w", provider, err)
		}
		adapters = append(adapters, adapter)
	}

	generator, err := report.NewGenerator(adapters, report.Options{})
	if err != nil {
		return err
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr:            addr,
		ShutdownTimeout: 10 * time.Second,
		Generator:       generator,
	})

	return api.Start()
}

func configured(profile *config.Profile, provider domain.Provider) bool {
	switch provider {
	case domain.ProviderAWS:
		return profile.AWS != nil
	case domain.ProviderAzure:
		return profile.Azure != nil
	case domain.ProviderGCP:
		return profile.GCP != nil
	default:
		return false
	}
}

package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/cost-atlas/pkg/export"
	"github.com/de-tools/cost-atlas/pkg/models/domain"
	"github.com/de-tools/cost-atlas/pkg/services/analysis"
	"github.com/de-tools/cost-atlas/pkg/services/config"
	"github.com/de-tools/cost-atlas/pkg/services/providers"
	"github.com/de-tools/cost-atlas/pkg/services/report"
)

const dateLayout = "2006-01-02"

type AnalyzeCmd struct {
	profilePath string
	days        int
	startDate   string
	endDate     string
	threshold   float64
	csvPath     string
	registry    providers.Registry
	reporter    *export.Reporter
}

func NewAnalyzeCmd(registry providers.Registry, reporter *export.Reporter) *cobra.Command {
	ac := &AnalyzeCmd{registry: registry, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze costs across all configured cloud providers",
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.profilePath, "profile", "", "Path to the provider configuration profile")
	cmd.Flags().IntVar(&ac.days, "days", 30, "Number of days back to analyze")
	cmd.Flags().StringVar(&ac.startDate, "start", "", "Window start (YYYY-MM-DD, overrides --days)")
	cmd.Flags().StringVar(&ac.endDate, "end", "", "Window end (YYYY-MM-DD, requires --start)")
	cmd.Flags().Float64Var(&ac.threshold, "threshold", analysis.DefaultThreshold,
		"Anomaly z-score threshold")
	cmd.Flags().StringVar(&ac.csvPath, "csv", "", "Write the normalized dataset to this CSV file")

	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func (ac *AnalyzeCmd) run(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	window, err := ac.window()
	if err != nil {
		return err
	}

	profile, err := config.LoadProfile(ac.profilePath)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	var adapters []providers.Adapter
	for _, provider := range configuredProviders(profile) {
		adapter, err := ac.registry.Create(ctx, provider, profile)
		if err != nil {
			return fmt.Errorf("failed to configure %s adapter: %w", provider, err)
		}
		adapters = append(adapters, adapter)
	}

	generator, err := report.NewGenerator(adapters, report.Options{AnomalyThreshold: ac.threshold})
	if err != nil {
		return err
	}

	costReport := generator.Generate(ctx, window)

	if err := ac.reporter.Handle(costReport); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if ac.csvPath != "" {
		if err := export.WriteCSVFile(ac.csvPath, costReport.Records); err != nil {
			return fmt.Errorf("failed to export report: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nDetailed report saved to %q\n", ac.csvPath)
	}

	return nil
}

func (ac *AnalyzeCmd) window() (domain.Window, error) {
	if ac.startDate == "" {
		if ac.endDate != "" {
			return domain.Window{}, fmt.Errorf("--end requires --start")
		}
		if ac.days < 1 {
			return domain.Window{}, fmt.Errorf("--days must be at least 1")
		}
		return domain.LastDays(ac.days), nil
	}

	start, err := time.Parse(dateLayout, ac.startDate)
	if err != nil {
		return domain.Window{}, fmt.Errorf("invalid --start date: %w", err)
	}

	end := time.Now().UTC()
	if ac.endDate != "" {
		end, err = time.Parse(dateLayout, ac.endDate)
		if err != nil {
			return domain.Window{}, fmt.Errorf("invalid --end date: %w", err)
		}
	}

	if end.Before(start) {
		return domain.Window{}, fmt.Errorf("--end must not precede --start")
	}
	return domain.NewWindow(start, end), nil
}

// configuredProviders maps profile sections to provider names,
// preserving a fixed order.
func configuredProviders(profile *config.Profile) []domain.Provider {
	var out []domain.Provider
	if profile.AWS != nil {
		out = append(out, domain.ProviderAWS)
	}
	if profile.Azure != nil {
		out = append(out, domain.ProviderAzure)
	}
	if profile.GCP != nil {
		out = append(out, domain.ProviderGCP)
	}
	return out
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/cost-atlas/pkg/services/providers"
)

func NewProvidersCmd(registry providers.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List supported cloud providers",
		Run: func(cmd *cobra.Command, _ []string) {
			for _, provider := range registry.ListProviders() {
				fmt.Fprintln(cmd.OutOrStdout(), provider)
			}
		},
	}
}

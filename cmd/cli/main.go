package main

import (
	"fmt"
	"os"

	"github.com/de-tools/cost-atlas/pkg/models/domain"
	"github.com/de-tools/cost-atlas/pkg/runtime/terminal"
	"github.com/de-tools/cost-atlas/pkg/services/providers"
	"github.com/de-tools/cost-atlas/pkg/services/providers/aws"
	"github.com/de-tools/cost-atlas/pkg/services/providers/azure"
	"github.com/de-tools/cost-atlas/pkg/services/providers/gcp"
)

func main() {
	cli := terminal.NewCLI(terminal.Options{
		Registry: providers.NewRegistry(map[domain.Provider]providers.AdapterFactory{
			domain.ProviderAWS:   aws.AdapterFactory,
			domain.ProviderAzure: azure.AdapterFactory,
			domain.ProviderGCP:   gcp.AdapterFactory,
		}),
		Output: os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

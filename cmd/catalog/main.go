package main

import (
	"os"

	"github.com/spf13/cobra"

	"catalog/internal/interfaces/cli/migrate"
	"catalog/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Catalog - dataset metadata service",
		Long:  `Catalog aggregates dataset metadata across storage systems and resolves each caller's access to it.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

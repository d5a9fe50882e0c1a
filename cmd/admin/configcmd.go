package main

import (
	"github.com/spf13/cobra"

	"content-hub/internal/config"
)

func newConfigCommand(cfg func() *config.AppConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML with secrets masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cfg().WriteYAML(cmd.OutOrStdout())
		},
	})
	return cmd
}

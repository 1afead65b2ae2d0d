package main

import (
	"github.com/spf13/cobra"

	"github.com/dusk-indust/edstrip/internal/report"
	"github.com/dusk-indust/edstrip/internal/strip"
)

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the supported languages and the files they match",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return report.Languages(cmd.OutOrStdout(), strip.DefaultRegistry().Languages())
		},
	}
}

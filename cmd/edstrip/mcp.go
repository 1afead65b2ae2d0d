package main

import (
	"github.com/spf13/cobra"

	"github.com/dusk-indust/edstrip/internal/mcptools"
)

func newMCPCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run as an MCP server on stdio",
		Long: `Run a Model Context Protocol server on stdin/stdout exposing the
strip_source and list_languages tools. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, gf)
			if err != nil {
				return err
			}
			log := newLogger(cmd.ErrOrStderr(), cfg.Log)
			s, err := newStripper(cfg)
			if err != nil {
				return err
			}

			server := mcptools.NewMCPServer(mcptools.NewStripService(s, log))
			log.Info("serving MCP on stdio", "version", version)
			return mcptools.RunStdio(cmd.Context(), server)
		},
	}
}

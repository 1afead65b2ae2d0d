package main

import (
	"github.com/spf13/cobra"

	"github.com/dusk-indust/edstrip/internal/api"
	"github.com/dusk-indust/edstrip/internal/mcptools"
)

func newServeCmd(gf *globalFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and MCP over HTTP",
		Long: `Serve the stripper over HTTP:

  POST /v1/strip      strip a JSON request or a raw body
  GET  /v1/languages  list supported languages
  GET  /health        liveness probe
       /mcp           MCP streamable HTTP transport`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, gf)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			log := newLogger(cmd.ErrOrStderr(), cfg.Log)
			s, err := newStripper(cfg)
			if err != nil {
				return err
			}

			srv := api.NewServer(mcptools.NewStripService(s, log), log, cfg.Server)
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	return cmd
}

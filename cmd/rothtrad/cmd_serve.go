package main

import (
	"github.com/spf13/cobra"

	"github.com/rpgo/rothtrad/internal/api"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the comparison API over HTTP",
		Long: `Starts the HTTP API:
  POST /api/compare        run a comparison for a JSON scenario
  GET  /api/limits/{year}  contribution limits for a plan year
  GET  /metrics            Prometheus metrics
  GET  /healthz            liveness check`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.settings.Server
			if addr != "" {
				cfg.Addr = addr
			}
			return api.NewServer(a.engine, cfg, a.logger).ListenAndServe(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	return cmd
}

package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/danmuck/genlstats/internal/inspect"
	"github.com/danmuck/genlstats/internal/observability"
	"github.com/danmuck/genlstats/internal/server"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the codec over HTTP",
		Long: `Serve exposes /health, /metrics, POST /v1/taskstats/decode?kind=request|event
(hex body) and POST /v1/taskstats/encode (JSON body).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			listen := root.cfg.ListenAddr
			if cmd.Flags().Changed("addr") {
				listen = addr
			}
			observability.ServiceLogger("statsctl", listen)
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return server.Appear(listen, inspect.Options{FamilyID: root.cfg.FamilyID}).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/greenleaf/lsp"
)

func newLSPCmd() *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("metrics-addr") {
				cfg.LSP.MetricsAddr = metricsAddr
			}
			server := lsp.NewServer(version, cfg)
			return server.RunStdio()
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	return cmd
}

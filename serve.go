package main

import (
	"os"
	"os/signal"
	"syscall"

	"mcsat/communication/server"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solve endpoint over HTTP",
		Long: `Serve POST /solve and GET /healthz. Settings given here are the
server defaults; each request may override them.`,
		Args: cobra.NoArgs,
	}
	settings := addSettingsFlags(cmd.Flags())
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		options, err := settings.options(cmd.Flags())
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return server.New(options...).ListenAndServe(ctx, addr)
	}
	return cmd
}

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	apisim "github.com/kilianp07/gridsim/api/simulate"
	"github.com/kilianp07/gridsim/app"
)

func newServeCmd(load configLoader) *cobra.Command {
	var addr string
	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulation HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Address = addr
			}
			svc, err := app.New(cfg)
			if err != nil {
				return err
			}
			h := apisim.NewHandler(svc, apisim.Options{
				MaxUploadBytes: cfg.Server.MaxUploadBytes,
				AllowedOrigins: cfg.Server.AllowedOrigins,
				Log:            svc.Logger(),
			})
			return svc.Serve(ctx, h)
		},
	}
	c.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.address)")
	return c
}

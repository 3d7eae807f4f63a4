package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-planner/internal/config"
	"github.com/smokyabdulrahman/prayer-planner/internal/server"
)

func (a *app) newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planner over a JSON HTTP API",
		Long:  "Start the HTTP API on --addr (default $" + config.EnvHTTPAddr + ") and run until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			if addr == "" {
				addr = a.cfg.HTTPAddr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.New(addr, server.Services{
				Prayers:  svc.Prayers,
				Holidays: svc.Holidays,
				Ramadan:  svc.Ramadan,
				Clock:    svc.Clock,
			}, svc.Logger)
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, host:port")
	return cmd
}

package cli

import (
	"time"

	"github.com/spf13/cobra"

	apphttp "ledger/internal/http"
	"ledger/internal/log"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand(app *App) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = app.cfg.Port
			}

			srv := apphttp.NewServer(":"+port, app.entries, app.aggregator, app.store, app.logger,
				apphttp.Options{
					Currency: app.cfg.Currency,
					Location: app.location,
					Now:      app.Now,
				})
			srv.ReadTimeout = 10 * time.Second
			srv.WriteTimeout = 60 * time.Second
			srv.IdleTimeout = 60 * time.Second
			srv.MaxHeaderBytes = 1 << 16

			ctx, stop := SignalContext(cmd.Context())
			defer stop()

			app.logger.InfoContext(ctx, "Serving ledger",
				log.FieldDBPath, app.store.Path(),
				"currency", app.cfg.Currency,
				"timezone", app.location.String())

			return RunServer(ctx, srv, app.logger, shutdownTimeout)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")
	return cmd
}

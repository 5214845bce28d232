package main

import (
	"context"
	"net/http"

	"github.com/ardanlabs/conf"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ctstone/libsignal/internal/app"
)

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the issuer HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadIssuerConfig(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.APIHost = addr
			}
			log := app.ConfigureLogging(cfg.Server.LogLevel)
			if s, err := conf.String(cfg); err == nil {
				log.Debugf("config:\n%s", s)
			}

			pass, err := passphrase(cfg, false)
			if err != nil {
				return err
			}
			iss, err := app.NewIssuer(cfg, pass, log)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:         cfg.Server.APIHost,
				Handler:      iss.Handler,
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				log.WithField("addr", srv.Addr).Info("issuer listening")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return errors.Wrap(err, "listen")
				}
				return nil
			})
			g.Go(func() error {
				<-ctx.Done()
				log.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})
			return g.Wait()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.api_host)")
	return cmd
}

package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	httpLayer "hei-calculator/http"
)

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				rootOpts.Config.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, rootOpts)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")

	return cmd
}

// runServe serves until ctx is cancelled, then shuts down gracefully.
func runServe(ctx context.Context, rootOpts *RootOptions) error {
	cfg := rootOpts.Config
	log := rootOpts.Log

	svc := rootOpts.buildServices(ctx)
	defer svc.close()

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Window)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.Handlers{
		Projection:  httpLayer.NewProjectionHandler(svc.projection, svc.narrative, cfg.Projection.DefaultHorizonYears, log),
		Sensitivity: httpLayer.NewSensitivityHandler(svc.sensitivity, cfg.Projection.DefaultHorizonYears, log),
		Settlement:  httpLayer.NewSettlementHandler(svc.settlement, log),
	}, rateLimiter, httpLayer.RouterOptions{
		JWTSecret: cfg.Auth.JWTSecret,
		SweepCost: cfg.RateLimit.SweepCost,
	}, log)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infof("HEI API listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return WrapExitError(ExitCommandError, "server failed", err)
	case <-ctx.Done():
		log.Info("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("error during server shutdown")
		return WrapExitError(ExitCommandError, "shutdown failed", err)
	}

	log.Info("Server exited")
	return nil
}

package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	autostream "github.com/servicehive/autostream"
	"github.com/servicehive/autostream/internal/config"
	"github.com/servicehive/autostream/pkg/adapters/httpapi"
	"github.com/servicehive/autostream/pkg/adapters/memory"
	redisstore "github.com/servicehive/autostream/pkg/adapters/redis"
	"github.com/servicehive/autostream/pkg/observability"
	"github.com/servicehive/autostream/pkg/ports"
	"github.com/servicehive/autostream/pkg/session"
)

const shutdownTimeout = 5 * time.Second

// RunServe starts the HTTP server with graceful shutdown. Sessions live in
// Redis when configured, otherwise in process memory.
func RunServe(ctx context.Context, cfg *config.Config) error {
	logger := NewLogger(cfg)

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)

	agent, err := NewAgent(ctx, cfg, logger,
		autostream.WithLifecycleHooks(*metrics.Hooks()),
	)
	if err != nil {
		return err
	}

	var store ports.StateStore
	if cfg.Redis.Addr != "" {
		rs := redisstore.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redisstore.WithTTL(cfg.Redis.SessionTTL),
		)
		defer rs.Close()
		if err := rs.Ping(ctx); err != nil {
			return fmt.Errorf("redis unreachable at %s: %w", cfg.Redis.Addr, err)
		}
		store = rs
		logger.Info("using redis session store", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.SessionTTL)
	} else {
		store = memory.NewStore()
		logger.Info("using in-memory session store")
	}

	sessions := session.NewManager(store)
	api := httpapi.NewHandler(agent, sessions, httpapi.WithLogger(logger))

	root := chi.NewRouter()
	root.Handle("/metrics", promhttp.Handler())
	root.Mount("/", api)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: root,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("starting shutdown", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("failed to stop server: %w", err)
			}
		}
		logger.Info("server stopped")
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fortuna/backstage/internal/api/rest"
	"github.com/fortuna/backstage/internal/api/websocket"
	"github.com/fortuna/backstage/internal/publisher"
	"github.com/fortuna/backstage/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API and the standings websocket feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	logger.Info("starting service", zap.String("service", serviceName), zap.String("version", serviceVersion))

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	lg, err := openLeague(ctx)
	if err != nil {
		return err
	}
	defer lg.Close()

	orchestrator := scheduler.NewOrchestrator(lg.services.Standings, &scheduler.Config{
		RefreshInterval:      cfg.StandingsRefresh,
		MaxConsecutiveErrors: 5,
		Backoff:              time.Minute,
	}, logger.Named("scheduler"))
	lg.services.Games.AddSink(orchestrator)

	if cfg.RedisURL != "" {
		pub, err := connectPublisher()
		if err != nil {
			return err
		}
		defer pub.Close()
		orchestrator.AddSink(pub)
	} else {
		logger.Info("REDIS_URL not set, event streams disabled")
	}

	wsServer := websocket.NewServer(cfg.WSPort, lg.services.Standings, logger.Named("websocket"))
	orchestrator.AddSink(wsServer)

	restServer := rest.NewServer(cfg.RESTPort, rest.NewHandler(lg.services, lg.db, logger.Named("rest")), logger.Named("rest"))

	go orchestrator.Start(ctx)

	errCh := make(chan error, 2)
	go func() {
		if err := restServer.Start(); err != nil {
			errCh <- fmt.Errorf("REST server: %w", err)
		}
	}()
	go func() {
		if err := wsServer.Start(ctx); err != nil {
			errCh <- fmt.Errorf("websocket server: %w", err)
		}
	}()

	logger.Info("service started",
		zap.String("rest", fmt.Sprintf("http://0.0.0.0:%s", cfg.RESTPort)),
		zap.String("websocket", fmt.Sprintf("ws://0.0.0.0:%s", cfg.WSPort)),
	)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var runErr error
	select {
	case sig := <-sigChan:
		logger.Info("shutting down gracefully", zap.String("signal", sig.String()))
	case runErr = <-errCh:
		logger.Error("server failed, shutting down", zap.Error(runErr))
	}

	// Graceful shutdown
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("REST API server shutdown error", zap.Error(err))
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("websocket server shutdown error", zap.Error(err))
	}

	logger.Info("stopped")
	return runErr
}

// connectPublisher dials Redis, retrying while it comes up
func connectPublisher() (*publisher.RedisPublisher, error) {
	logger.Info("connecting to Redis", zap.Int("max_retries", cfg.RedisRetries))

	var lastErr error
	for i := 0; i < cfg.RedisRetries; i++ {
		pub, err := publisher.NewRedisPublisher(cfg.RedisURL)
		if err == nil {
			logger.Info("redis publisher initialized")
			return pub, nil
		}
		lastErr = err

		if i < cfg.RedisRetries-1 {
			logger.Warn("redis connection attempt failed",
				zap.Int("attempt", i+1),
				zap.Duration("retry_in", cfg.RedisRetryDelay),
				zap.Error(err),
			)
			time.Sleep(cfg.RedisRetryDelay)
		}
	}
	return nil, fmt.Errorf("failed to connect to Redis after %d attempts: %w", cfg.RedisRetries, lastErr)
}

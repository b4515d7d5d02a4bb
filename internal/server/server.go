// Package server boots the storefront processes: configuration, data
// stores, background queue, gRPC health endpoint and the HTTP server.
package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/storefront/app/notifications"
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/internal/kernel"
	"github.com/shashiranjanraj/storefront/pkg/cache"
	"github.com/shashiranjanraj/storefront/pkg/database"
	grpcserver "github.com/shashiranjanraj/storefront/pkg/grpc"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/queue"
	"github.com/shashiranjanraj/storefront/pkg/storage"
)

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}
	logger.SetupMongoSink()
	defer logger.CloseMongoSink()

	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		// Cache-backed features degrade, the shop still serves.
		logger.Error("server: cache unavailable", "error", err)
	}
	storage.Connect()
	setupQueue()

	httpKernel := kernel.NewHTTPKernel()

	grpcSrv, _, err := grpcserver.Start(config.GRPCPort())
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           httpKernel.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: http listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		grpcserver.Stop(grpcSrv)
		return err
	case <-ctx.Done():
	}

	logger.Info("server: shutting down")
	grpcserver.Stop(grpcSrv)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// setupQueue selects the queue driver and registers the background jobs
// that checkout may re-queue.
func setupQueue() {
	if config.QueueDriver() == "redis" && cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	if database.DB != nil {
		queue.UseDB(database.DB)
	}
	queue.Register("notifications.PurchaseConfirmationJob", func() queue.Job {
		return &notifications.PurchaseConfirmationJob{}
	})
}

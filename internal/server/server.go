// Package server owns the process lifecycle: it serves HTTP and gRPC until
// the context is cancelled, then drains HTTP, stops gRPC and closes the
// database pool, in that order.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/grpc"
	"github.com/shashiranjanraj/storefront/pkg/logger"
)

type Options struct {
	Addr            string
	GRPCEnabled     bool
	GRPCAddr        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	HealthInterval  time.Duration

	// OnReady, when set, is called with the bound addresses once both
	// listeners are open. grpcAddr is "" when gRPC is disabled.
	OnReady func(httpAddr, grpcAddr string)
}

func OptionsFromConfig() Options {
	return Options{
		Addr:            ":" + config.AppPort(),
		GRPCEnabled:     config.GRPCEnabled(),
		GRPCAddr:        ":" + config.GRPCPort(),
		ReadTimeout:     config.HTTPReadTimeout(),
		WriteTimeout:    config.HTTPWriteTimeout(),
		ShutdownTimeout: config.ShutdownTimeout(),
		HealthInterval:  10 * time.Second,
	}
}

// Run serves handler until ctx is done or a listener fails.
func Run(ctx context.Context, handler http.Handler, db *gorm.DB, opts Options) error {
	if opts.HealthInterval <= 0 {
		opts.HealthInterval = 10 * time.Second
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 30 * time.Second
	}

	httpLis, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		_ = database.Close(db)
		return fmt.Errorf("server: listen on %s: %w", opts.Addr, err)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       2 * opts.ReadTimeout,
	}

	errCh := make(chan error, 2)
	monitorCtx, stopMonitor := context.WithCancel(ctx)
	defer stopMonitor()

	var (
		grpcSrv  *grpc.Server
		grpcAddr string
	)
	if opts.GRPCEnabled {
		grpcLis, err := net.Listen("tcp", opts.GRPCAddr)
		if err != nil {
			_ = httpLis.Close()
			_ = database.Close(db)
			return fmt.Errorf("server: listen on %s: %w", opts.GRPCAddr, err)
		}
		grpcAddr = grpcLis.Addr().String()
		grpcSrv = grpc.New()
		go grpcSrv.Monitor(monitorCtx, func(ctx context.Context) error { return database.Ping(ctx, db) }, opts.HealthInterval)
		go func() {
			if err := grpcSrv.Serve(grpcLis); err != nil {
				errCh <- fmt.Errorf("server: grpc: %w", err)
			}
		}()
	}

	go func() {
		logger.Info("HTTP server starting", "addr", httpLis.Addr().String(), "env", config.AppEnv())
		if err := srv.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server: http: %w", err)
		}
	}()

	if opts.OnReady != nil {
		opts.OnReady(httpLis.Addr().String(), grpcAddr)
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case runErr = <-errCh:
		logger.Error("server failed", "error", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), opts.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown", "error", err)
		runErr = errors.Join(runErr, err)
	}
	stopMonitor()
	grpcSrv.Stop()
	if err := database.Close(db); err != nil {
		logger.Error("database close", "error", err)
		runErr = errors.Join(runErr, err)
	}

	logger.Info("server stopped")
	return runErr
}

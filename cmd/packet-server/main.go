package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/tigagency/contracting-packet/internal/config"
	"github.com/tigagency/contracting-packet/internal/generator"
	"github.com/tigagency/contracting-packet/internal/httpapi"
	"github.com/tigagency/contracting-packet/internal/logging"
	"github.com/tigagency/contracting-packet/internal/storage"
	"github.com/tigagency/contracting-packet/internal/store"
)

func main() {
	cfg, err := config.LoadFromFlags()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	defer logger.Sync() //nolint:errcheck

	if cfg.IsDebug() {
		logger.Debug("starting with configuration", zap.String("config", cfg.String()))
	}

	opts := []generator.Option{
		generator.WithHTTPClient(&http.Client{Timeout: 30 * time.Second}),
	}

	if cfg.DatabaseDSN != "" {
		db, err := store.Open(cfg.DatabaseDSN, logger)
		if err != nil {
			logger.Fatal("failed to open database", zap.Error(err))
		}
		defer db.Close() //nolint:errcheck
		opts = append(opts, generator.WithConfigSource(db), generator.WithDocumentIndex(db))
	}

	if cfg.StorageEnabled() {
		uploader, err := storage.NewUploader(storage.Config{
			Endpoint:  cfg.StorageEndpoint,
			Region:    cfg.StorageRegion,
			Bucket:    cfg.StorageBucket,
			AccessKey: cfg.StorageAccessKey,
			SecretKey: cfg.StorageSecretKey,
			UseSSL:    cfg.StorageUseSSL,
		}, logger)
		if err != nil {
			logger.Fatal("failed to configure storage", zap.Error(err))
		}
		opts = append(opts, generator.WithObjectStorage(uploader))
	}

	gen := generator.New(logger, opts...)
	api := httpapi.NewServer(gen, logger)

	srv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runServer(ctx, cancel, srv, logger)
}

// runServer handles server execution with signal handling for graceful
// shutdown.
func runServer(ctx context.Context, cancel context.CancelFunc, srv *http.Server, logger *zap.Logger) {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	serverErrCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		serverErrCh <- srv.ListenAndServe()
	}()

	select {
	case sig := <-signalCh:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", zap.Error(err))
			os.Exit(1)
		}
		<-serverErrCh

	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"catalog/internal/config"
	"catalog/internal/delivery/http/route"
	"catalog/internal/repository/memory"
	"catalog/internal/repository/mongodb"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Start the catalog web server",
	RunE:    runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "port to listen on")
	serveCmd.Flags().String("store", "", "store driver (mongo, memory)")
}

// dependencies opens the configured store. The returned close func releases it.
func dependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (route.Dependencies, func(), error) {
	deps := route.Dependencies{Logger: logger}

	if cfg.Store.Driver == config.DriverMemory {
		store := memory.NewStore()
		deps.Categories = store.Categories()
		deps.Items = store.Items()
		deps.Pinger = store
		logger.Warn("using in-memory store; data is lost on exit")
		return deps, func() {}, nil
	}

	client, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Timeout)
	if err != nil {
		return deps, nil, err
	}
	db := client.Database(cfg.Mongo.Database)
	deps.Categories = mongodb.NewCategoryRepository(db, cfg.Mongo.Timeout)
	deps.Items = mongodb.NewItemRepository(db, cfg.Mongo.Timeout)
	deps.Pinger = mongodb.NewPinger(client)
	logger.Info("connected to mongo", zap.String("database", cfg.Mongo.Database))

	closeFn := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error("failed to disconnect from mongo", zap.Error(err))
		}
	}
	return deps, closeFn, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, closeStore, err := dependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	gin.SetMode(cfg.Server.Mode)
	app, err := route.NewRouter(deps)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: app,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

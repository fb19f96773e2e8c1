// Package main initializes and starts the BookmarkKeeper HTTP server,
// setting up configuration, logging, the database connection, repositories,
// services and handlers.
package main

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/atinyakov/BookmarkKeeper/internal/config"
	"github.com/atinyakov/BookmarkKeeper/internal/db"
	"github.com/atinyakov/BookmarkKeeper/internal/logger"
	"github.com/atinyakov/BookmarkKeeper/internal/repository"
	"github.com/atinyakov/BookmarkKeeper/internal/server/handler/http"
	"github.com/atinyakov/BookmarkKeeper/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	defer func() { _ = log.Log.Sync() }()
	zapLogger := log.Log

	// Initialize PostgreSQL connection and schema.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Make sure the demo user the client signs in as exists.
	if err := db.SeedDemoUser(context.Background(), postgresDB); err != nil {
		zapLogger.Fatal("cannot seed demo user", zap.Error(err))
	}

	// Initialize repositories.
	bookmarkRepo := repository.NewPostgresBookmarkRepository(postgresDB)
	imageRepo := repository.NewPostgresImageRepository(postgresDB)
	userRepo := repository.NewPostgresUserRepository(postgresDB)

	// Initialize business-logic services.
	bookmarkService := service.NewBookmarkService(bookmarkRepo)
	imageService := service.NewImageService(imageRepo)
	userService := service.NewUserService(userRepo)

	// Create HTTP handlers for the bookmark, image and user endpoints.
	bookmarkHandler := &http.BookmarkHandler{Service: bookmarkService, Log: zapLogger}
	imageHandler := &http.ImageHandler{Service: imageService, Log: zapLogger}
	userHandler := &http.UserHandler{Service: userService, Log: zapLogger}

	// Build the router with middleware and routes.
	router := http.NewRouter(bookmarkHandler, imageHandler, userHandler, zapLogger)

	server := &nethttp.Server{
		Addr:              options.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != nethttp.ErrServerClosed {
			zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
		}
	case sig := <-stop:
		zapLogger.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			zapLogger.Error("shutdown failed", zap.Error(err))
		}
		if err := postgresDB.Close(); err != nil {
			zapLogger.Error("closing database failed", zap.Error(err))
		}
	}
}

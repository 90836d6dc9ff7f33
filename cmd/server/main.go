package main

import (
	"PartsCatalog/internal/config"
	"PartsCatalog/internal/handlers"
	"PartsCatalog/internal/middleware"
	"PartsCatalog/internal/repo"
	"PartsCatalog/internal/repo/fs"
	"PartsCatalog/internal/service"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	gormDB, err := repo.InitDB(cfg)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		defer sqlDB.Close()
	}

	images, err := fs.NewImageStore(cfg.UploadDir)
	if err != nil {
		sugar.Fatalw("failed to initialize upload dir", "dir", cfg.UploadDir, "error", err)
	}

	userService := service.NewUserService(repo.NewUserRepository(gormDB), sugar)
	partService := service.NewPartService(repo.NewPartRepository(gormDB), images, sugar)

	if cfg.SeedUsers {
		if err := userService.SeedUsers(ctx); err != nil {
			sugar.Fatalw("failed to seed users", "error", err)
		}
		sugar.Infow("Test users created", "admin", "admin@example.com", "user", "user@example.com")
	}

	h := handlers.NewHandler(userService, partService, sugar, cfg)

	srv := &http.Server{
		Addr:              cfg.BaseURL,
		Handler:           h.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sugar.Infow("Starting server",
		"addr", cfg.BaseURL,
		"version", version,
		"buildDate", buildDate,
	)
	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"UploadDir", cfg.UploadDir,
		"UploadMaxMB", cfg.UploadMaxMB,
		"CORSOrigins", cfg.CORSOrigins,
	)

	errCh := make(chan error, 1)
	go func() {
		if cfg.EnableHTTPS {
			errCh <- srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
			return
		}
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	case <-ctx.Done():
		sugar.Infow("Shutting down server")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("Graceful shutdown failed", "error", err)
		}
	}
}

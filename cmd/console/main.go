// Package main запускает HTTP-сервер консоли кондитерской.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/flora-console/internal/api"
	"github.com/mmeshcher/flora-console/internal/config"
	"github.com/mmeshcher/flora-console/internal/handler"
	"github.com/mmeshcher/flora-console/internal/middleware"
	"github.com/mmeshcher/flora-console/internal/repository"
	"github.com/mmeshcher/flora-console/internal/service"
	"github.com/mmeshcher/flora-console/internal/session"
	"github.com/mmeshcher/flora-console/internal/validation"
)

// sessionStore хранит сеансы и умеет чистить простаивающие записи.
type sessionStore interface {
	session.Store
	service.Purger
	Close() error
}

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	// .env необязателен: в контейнере переменные приходят из окружения
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		sugar.Warnw("load .env", "error", err.Error())
	}

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}
	if cfg.APIBaseURL == "" {
		sugar.Warn("API_BASE_URL is not set, every API call will fail")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store sessionStore
	if cfg.DatabaseURI != "" {
		pg, err := repository.NewPostgresStore(ctx, cfg.DatabaseURI)
		if err != nil {
			sugar.Fatalw("database initialization error", "error", err.Error())
		}
		store = pg
	} else {
		sugar.Info("DATABASE_URI is not set, sessions are kept in memory")
		store = repository.NewMemoryStore()
	}
	defer store.Close()

	client := api.NewClient(cfg.APIBaseURL, cfg.APITimeout)
	validator := validation.New(cfg.PhoneRegion, cfg.Location())
	svc := service.NewService(client, validator, cfg.Location())

	sessions := session.NewManager(store)
	authMiddleware := middleware.NewAuthMiddleware(cfg.SessionSecret, sessions, logger)
	h := handler.NewHandler(svc, sessions, logger, authMiddleware)

	server := &http.Server{
		Addr:              cfg.RunAddress,
		Handler:           h.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	// Фоновая очистка простаивающих сеансов
	g.Go(func() error {
		service.RunSessionPurge(ctx, store, cfg.PurgeInterval, cfg.SessionIdle, logger)
		return nil
	})

	g.Go(func() error {
		sugar.Infow("starting flora console", "addr", cfg.RunAddress, "api", cfg.APIBaseURL, "timezone", cfg.Timezone)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown при отмене контекста (сигнал или ошибка в другой горутине)
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}

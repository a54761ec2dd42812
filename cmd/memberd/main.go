// Package main запускает memberd — бэкенд коллекции участников
// с REST API и push-каналом обновлений.
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"member-roster-service/internal/config"
	httpapi "member-roster-service/internal/http"
	"member-roster-service/internal/repository"
	"member-roster-service/internal/service"
)

func main() {
	// Контекст для корректного завершения
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализация логгера (JSON)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Чтение конфигурации из ENV
	cfg := config.Load()

	// Выбор репозитория: PostgreSQL при заданном DB_DSN, иначе память
	var repo service.MemberRepository
	if cfg.DatabaseDSN != "" {
		db, err := repository.NewPostgres(ctx, cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("failed to init postgres: %v", err)
		}
		defer db.Close()

		pgRepo := repository.NewMemberRepo(db)
		if err := pgRepo.EnsureSchema(ctx); err != nil {
			log.Fatalf("failed to ensure schema: %v", err)
		}
		repo = pgRepo
		logger.Info("using postgres repository")
	} else {
		repo = repository.NewMemoryMemberRepo()
		logger.Info("using in-memory repository")
	}

	// Сервис, push-hub и HTTP-обработчик
	memberService := service.NewMemberService(repo)
	hub := httpapi.NewHub(logger)
	defer hub.Close()

	handler := httpapi.NewHandler(memberService, hub, logger)

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: handler.Router(),
	}

	// Запуск сервера в горутине
	go func() {
		logger.Info("starting http server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("err", err))
			cancel()
		}
	}()

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
	case <-ctx.Done():
	}
	logger.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("server shutdown error", slog.Any("err", err))
	}

	logger.Info("server stopped")
}

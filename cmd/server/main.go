package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sevlyar/go-daemon"

	"telegram-chat-analyzer/internal/adapters/parser"
	"telegram-chat-analyzer/internal/cache"
	"telegram-chat-analyzer/internal/core/services"
	"telegram-chat-analyzer/internal/log"
	"telegram-chat-analyzer/internal/pkg/config"
	"telegram-chat-analyzer/internal/server"
	"telegram-chat-analyzer/internal/server/usecase"
)

// cleanupInterval — период фоновой очистки просроченных задач и кеша.
const cleanupInterval = 10 * time.Minute

func main() {
	daemonize := flag.Bool("daemon", false, "запустить сервер в фоновом режиме")
	flag.Parse()

	if *daemonize {
		dctx := &daemon.Context{
			PidFileName: "analyzer-server.pid",
			PidFilePerm: 0o644,
			LogFileName: "analyzer-server.log",
			LogFilePerm: 0o640,
			Umask:       0o27,
		}

		child, err := dctx.Reborn()
		if err != nil {
			fmt.Fprintf(os.Stderr, "не удалось перейти в фоновый режим: %v\n", err)
			os.Exit(1)
		}
		if child != nil {
			// Родительский процесс: потомок запущен, выходим
			return
		}
		defer func() {
			if err := dctx.Release(); err != nil {
				slog.Error("Не удалось освободить ресурсы демона", "error", err)
			}
		}()
	}

	if err := run(); err != nil {
		slog.Error("Запуск приложения не удался", "error", err)
		os.Exit(1)
	}
}

// run инкапсулирует всю логику инициализации и запуска приложения.
func run() error {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		// Логгер еще не инициализирован, выводим в stderr
		fmt.Fprintf(os.Stderr, "не удалось загрузить конфигурацию: %v\n", err)
		os.Exit(1)
	}

	// 2. Инициализация логгера
	logger := log.New(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(logger)

	// 3. Валидация конфигурации (после инициализации логгера)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("конфигурация некорректна: %w", err)
	}

	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// 4. Инициализация зависимостей
	taskStore := server.NewTaskStore()
	cacheStore := cache.NewCacheStore()
	parserSvc := parser.NewJsonParser()
	querySvc := services.NewQueryService()
	analyzer := usecase.NewAnalyzeChatUseCase(cfg, parserSvc, querySvc, cacheStore)

	// 5. Фоновая очистка просроченных задач и элементов кеша
	taskStore.StartCleanupTicker(appCtx, cleanupInterval)
	cacheStore.StartCleanupTicker(appCtx, cleanupInterval)

	// 6. Создание и запуск HTTP-сервера
	srv, err := server.New(cfg, analyzer, taskStore, cacheStore)
	if err != nil {
		return fmt.Errorf("не удалось создать сервер: %w", err)
	}

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Start()
	}()

	// 7. Ожидание сигнала остановки или ошибки сервера
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("ошибка сервера: %w", err)
		}
	case sig := <-quit:
		slog.Info("Получен сигнал остановки", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("не удалось корректно остановить сервер: %w", err)
		}
	}

	slog.Info("Сервер остановлен")
	return nil
}

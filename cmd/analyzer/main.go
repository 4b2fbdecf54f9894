package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"telegram-chat-analyzer/internal/adapters/parser"
	"telegram-chat-analyzer/internal/adapters/source"
	"telegram-chat-analyzer/internal/core/services"
	"telegram-chat-analyzer/internal/log"
	"telegram-chat-analyzer/internal/pkg/config"
	"telegram-chat-analyzer/internal/pkg/term"
	"telegram-chat-analyzer/internal/repl"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

// run инкапсулирует всю логику инициализации и запуска приложения.
func run() error {
	var inputFile string
	flag.StringVar(&inputFile, "i", "", "путь к JSON-файлу экспорта чата")
	flag.StringVar(&inputFile, "input-file", "", "путь к JSON-файлу экспорта чата")
	flag.Parse()

	// Файл можно передать и позиционным аргументом
	if inputFile == "" && flag.NArg() > 0 {
		inputFile = flag.Arg(0)
	}
	if inputFile == "" {
		return fmt.Errorf("не указан файл экспорта. Использование: analyzer -i <файл>")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}

	// Stdout занят интерактивной сессией, логи уходят в stderr
	logger := log.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(logger)

	ds := source.NewCliSource(inputFile)
	data, err := ds.Fetch()
	if err != nil {
		return fmt.Errorf("не удалось извлечь данные из %s: %w", inputFile, err)
	}

	chat, err := parser.NewJsonParser().Parse(data)
	if err != nil {
		return fmt.Errorf("не удалось разобрать данные из %s: %w", inputFile, err)
	}
	slog.Info("Чат загружен", "name", chat.Name(), "message_count", len(chat.Messages()))

	app := repl.New(chat, services.NewQueryService(), cfg, term.NewPrompt(), os.Stdout)
	return app.Run()
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"telegram-chat-analyzer/internal/adapters/source"
	"telegram-chat-analyzer/internal/cache"
	"telegram-chat-analyzer/internal/domain"
	"telegram-chat-analyzer/internal/pkg/config"
	"telegram-chat-analyzer/internal/ports"
)

// AnalyzeChatUseCase инкапсулирует бизнес-логику анализа файлов экспорта чата.
type AnalyzeChatUseCase struct {
	cfg        *config.Config
	parser     ports.Parser
	query      ports.QueryService
	cacheStore *cache.CacheStore
}

// NewAnalyzeChatUseCase создает новый экземпляр AnalyzeChatUseCase.
func NewAnalyzeChatUseCase(
	cfg *config.Config,
	parser ports.Parser,
	query ports.QueryService,
	cacheStore *cache.CacheStore,
) *AnalyzeChatUseCase {
	return &AnalyzeChatUseCase{
		cfg:        cfg,
		parser:     parser,
		query:      query,
		cacheStore: cacheStore,
	}
}

// AnalyzeChat обрабатывает несколько файлов экспорта чата: загружает,
// разбирает и собирает сводную статистику по каждому. Результат набора
// файлов кешируется по объединенному хешу их содержимого.
func (uc *AnalyzeChatUseCase) AnalyzeChat(ctx context.Context, filePaths []string) ([]domain.ChatStats, error) {
	fileHashes := make([]string, 0, len(filePaths))
	for _, filePath := range filePaths {
		fileHash, err := cache.CalculateFileHash(filePath)
		if err != nil {
			return nil, fmt.Errorf("не удалось вычислить хеш файла %s: %w", filePath, err)
		}
		fileHashes = append(fileHashes, fileHash)
	}

	// Единый хеш для набора файлов
	combinedHash := cache.CalculateHashFromString(strings.Join(fileHashes, ","))

	if cachedItem, found := uc.cacheStore.Get(combinedHash); found {
		slog.Info("Попадание в кеш для набора файлов", "hash", combinedHash)
		return cachedItem.Data, nil
	}

	allStats := make([]domain.ChatStats, 0, len(filePaths))
	for _, filePath := range filePaths {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("анализ прерван: %w", err)
		}

		slog.Info("Обработка файла", "path", filePath)

		ds := source.NewCliSource(filePath)
		data, err := ds.Fetch()
		if err != nil {
			return nil, fmt.Errorf("не удалось извлечь данные из %s: %w", filePath, err)
		}

		chat, err := uc.parser.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("не удалось разобрать данные из %s: %w", filePath, err)
		}
		slog.Info("Разобран чат", "path", filePath, "message_count", len(chat.Messages()))

		allStats = append(allStats, *uc.query.Summarize(chat))
	}

	ttl := uc.cfg.Processing.CacheTTL()
	uc.cacheStore.Put(combinedHash, allStats, ttl)
	slog.Info("Результат кеширован для набора файлов", "hash", combinedHash, "ttl", ttl.String())

	slog.Info("Анализ успешно завершен", "chat_count", len(allStats))
	return allStats, nil
}

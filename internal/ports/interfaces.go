package ports

import "telegram-chat-analyzer/internal/domain"

// DataSource определяет интерфейс для получения исходных данных чата.
type DataSource interface {
	// Fetch загружает данные из источника и возвращает их в виде байтового среза.
	Fetch() ([]byte, error)
}

// Parser определяет интерфейс для разбора данных экспорта чата.
type Parser interface {
	// Parse преобразует сырые данные в готовую модель чата.
	// Если хотя бы одна запись некорректна, модель не создается.
	Parse(data []byte) (*domain.ChatExport, error)
}

// QueryService определяет интерфейс аналитических запросов к загруженному
// чату. Все запросы только читают модель.
type QueryService interface {
	// CountWords считает вхождения каждого слова по всем сообщениям.
	CountWords(chat *domain.ChatExport, words []string, caseSensitive bool) map[string]int
	// CountWordsPerUser считает вхождения слов по каждому отправителю.
	// Служебные сообщения не учитываются.
	CountWordsPerUser(chat *domain.ChatExport, words []string, caseSensitive bool) map[string]map[string]int
	// Grep возвращает сообщения, содержащие хотя бы одно из слов.
	Grep(chat *domain.ChatExport, words []string, caseSensitive bool) []domain.GrepMatch
	// CountMessages возвращает общее число сообщений.
	CountMessages(chat *domain.ChatExport) int
	// CountMessagesPerUser возвращает число сообщений по каждому отправителю
	// по возрастанию счетчика. Служебные сообщения не учитываются.
	CountMessagesPerUser(chat *domain.ChatExport) []domain.UserMessageCount
	// Summarize собирает сводную статистику по чату.
	Summarize(chat *domain.ChatExport) *domain.ChatStats
}

// Exporter определяет интерфейс для вывода результата анализа.
type Exporter interface {
	// Export принимает итоговую статистику и выводит ее.
	Export(stats []domain.ChatStats) error
}

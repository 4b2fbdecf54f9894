package services

import (
	"sort"

	"telegram-chat-analyzer/internal/domain"
	"telegram-chat-analyzer/internal/ports"
)

// serviceSender — метка отправителя для служебных сообщений в результатах
// поиска; у них нет пользователя-автора.
const serviceSender = "<service>"

// QueryServiceImpl реализует интерфейс QueryService.
type QueryServiceImpl struct{}

// NewQueryService создает новый экземпляр QueryServiceImpl.
func NewQueryService() ports.QueryService {
	return &QueryServiceImpl{}
}

// CountWords считает вхождения каждого слова по всем сообщениям чата.
// В результате присутствует каждое запрошенное слово, даже с нулем вхождений.
func (s *QueryServiceImpl) CountWords(chat *domain.ChatExport, words []string, caseSensitive bool) map[string]int {
	counts := make(map[string]int, len(words))
	for _, word := range words {
		counts[word] = 0
	}

	for _, msg := range chat.Messages() {
		for _, word := range words {
			counts[word] += msg.Text.Count(word, caseSensitive)
		}
	}

	return counts
}

// CountWordsPerUser считает вхождения слов по каждому отправителю.
// Служебные сообщения пропускаются явной проверкой варианта: у них нет
// отправителя. Пользователи без единого вхождения в результат не попадают.
func (s *QueryServiceImpl) CountWordsPerUser(chat *domain.ChatExport, words []string, caseSensitive bool) map[string]map[string]int {
	perUser := make(map[string]map[string]int)

	for _, msg := range chat.Messages() {
		if msg.Kind != domain.KindRegular {
			continue
		}
		from, _ := msg.From()

		for _, word := range words {
			count := msg.Text.Count(word, caseSensitive)
			if count == 0 {
				continue
			}
			if perUser[from] == nil {
				perUser[from] = make(map[string]int)
			}
			perUser[from][word] += count
		}
	}

	return perUser
}

// Grep возвращает по одному совпадению на пару (слово, сообщение) для всех
// сообщений, содержащих слово. Служебные сообщения тоже участвуют в поиске
// и помечаются отправителем "<service>".
func (s *QueryServiceImpl) Grep(chat *domain.ChatExport, words []string, caseSensitive bool) []domain.GrepMatch {
	var matches []domain.GrepMatch

	for _, msg := range chat.Messages() {
		sender := serviceSender
		if msg.Kind == domain.KindRegular {
			sender, _ = msg.From()
		}

		for _, word := range words {
			if msg.Text.Count(word, caseSensitive) == 0 {
				continue
			}
			matches = append(matches, domain.GrepMatch{
				Word:   word,
				Sender: sender,
				Text:   msg.Text.Render(),
			})
		}
	}

	return matches
}

// CountMessages возвращает общее число сообщений в чате.
func (s *QueryServiceImpl) CountMessages(chat *domain.ChatExport) int {
	return len(chat.Messages())
}

// CountMessagesPerUser возвращает число сообщений каждого отправителя по
// возрастанию счетчика; при равенстве — по имени. Служебные сообщения
// пропускаются явной проверкой варианта.
func (s *QueryServiceImpl) CountMessagesPerUser(chat *domain.ChatExport) []domain.UserMessageCount {
	counts := make(map[string]int)
	for _, msg := range chat.Messages() {
		if msg.Kind != domain.KindRegular {
			continue
		}
		from, _ := msg.From()
		counts[from]++
	}

	result := make([]domain.UserMessageCount, 0, len(counts))
	for user, count := range counts {
		result = append(result, domain.UserMessageCount{User: user, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count < result[j].Count
		}
		return result[i].User < result[j].User
	})

	return result
}

// Summarize собирает сводную статистику по чату.
func (s *QueryServiceImpl) Summarize(chat *domain.ChatExport) *domain.ChatStats {
	regular := 0
	for _, msg := range chat.Messages() {
		if msg.Kind == domain.KindRegular {
			regular++
		}
	}

	return &domain.ChatStats{
		Name:         chat.Name(),
		ID:           chat.ID(),
		MessageCount: len(chat.Messages()),
		RegularCount: regular,
		ServiceCount: len(chat.Messages()) - regular,
		PerUser:      s.CountMessagesPerUser(chat),
	}
}

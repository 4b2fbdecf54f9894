package parser

import (
	"encoding/json"
	"fmt"

	"telegram-chat-analyzer/internal/domain"
	"telegram-chat-analyzer/internal/ports"
)

// JsonParser реализует интерфейс Parser для разбора JSON данных экспорта.
type JsonParser struct{}

// NewJsonParser создает новый экземпляр JsonParser.
func NewJsonParser() ports.Parser {
	return &JsonParser{}
}

// rawDocument представляет корневую структуру файла экспорта до нормализации.
type rawDocument struct {
	Name     string       `json:"name"`
	ID       int          `json:"id"`
	Messages []rawMessage `json:"messages"`
}

// rawMessage представляет одну запись сообщения до нормализации.
// Поля "text" и "date_unixtime" могут иметь разные JSON-типы,
// поэтому они читаются как json.RawMessage.
type rawMessage struct {
	ID           int             `json:"id"`
	Type         string          `json:"type"`
	Date         string          `json:"date"`
	DateUnixtime json.RawMessage `json:"date_unixtime"`
	From         string          `json:"from"`
	Action       string          `json:"action"`
	Text         json.RawMessage `json:"text"`
}

// messageKinds — таблица соответствия дискриминанта "type" варианту сообщения.
var messageKinds = map[string]domain.MessageKind{
	"message": domain.KindRegular,
	"service": domain.KindService,
}

// Parse преобразует срез байт с JSON в модель ChatExport. Каждая запись
// сразу превращается в domain.Message; сырые записи в модель не попадают.
// Ошибка в любой записи отменяет всю загрузку.
func (p *JsonParser) Parse(data []byte) (*domain.ChatExport, error) {
	var doc rawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal json: %w", err)
	}

	messages := make([]domain.Message, 0, len(doc.Messages))
	for i, raw := range doc.Messages {
		msg, err := buildMessage(raw)
		if err != nil {
			return nil, fmt.Errorf("message at index %d: %w", i, err)
		}
		messages = append(messages, msg)
	}

	return domain.NewChatExport(doc.Name, doc.ID, messages), nil
}

// buildMessage создает domain.Message нужного варианта из одной сырой записи.
func buildMessage(raw rawMessage) (domain.Message, error) {
	kind, ok := messageKinds[raw.Type]
	if !ok {
		return domain.Message{}, &domain.UnhandledMessageTypeError{Type: raw.Type}
	}

	text, err := NormalizeText(raw.Text)
	if err != nil {
		return domain.Message{}, fmt.Errorf("failed to normalize text: %w", err)
	}

	unixtime, err := normalizeUnixtime(raw.DateUnixtime)
	if err != nil {
		return domain.Message{}, err
	}

	if kind == domain.KindRegular {
		return domain.NewRegularMessage(raw.ID, raw.Date, unixtime, text, raw.From), nil
	}
	return domain.NewServiceMessage(raw.ID, raw.Date, unixtime, text, raw.Action), nil
}

// normalizeUnixtime приводит поле "date_unixtime" к строке: в экспортах
// оно встречается и как строка, и как число.
func normalizeUnixtime(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("date_unixtime is neither string nor number: %w", err)
	}
	return n.String(), nil
}

package parser

import (
	"encoding/json"
	"fmt"

	"telegram-chat-analyzer/internal/domain"
)

// rawEntity представляет объект-сущность внутри поля "text".
// Указатель отличает отсутствующее поле "text" от пустой строки.
type rawEntity struct {
	Type string  `json:"type"`
	Text *string `json:"text"`
}

// NormalizeText преобразует сырое значение поля "text" в TextContent.
// Сырое значение — либо одна строка, либо массив, элементы которого —
// строки или объекты-сущности вида {"type": ..., "text"?: ...}.
// Порядок элементов сохраняется.
func NormalizeText(raw json.RawMessage) (domain.TextContent, error) {
	if len(raw) == 0 {
		return domain.PlainText(""), nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return domain.PlainText(s), nil
	}

	var parts []json.RawMessage
	if err := json.Unmarshal(raw, &parts); err != nil {
		return domain.TextContent{}, fmt.Errorf("text is neither string nor array: %w", err)
	}

	segments := make([]domain.Segment, 0, len(parts))
	for i, part := range parts {
		var plain string
		if err := json.Unmarshal(part, &plain); err == nil {
			segments = append(segments, domain.Segment{Plain: plain})
			continue
		}

		var entity rawEntity
		if err := json.Unmarshal(part, &entity); err != nil {
			return domain.TextContent{}, fmt.Errorf("text element at index %d is neither string nor entity: %w", i, err)
		}
		segments = append(segments, domain.Segment{
			Entity: &domain.TextEntity{Type: entity.Type, Text: entity.Text},
		})
	}

	return domain.NewTextContent(segments), nil
}

package parser

import (
	"errors"
	"testing"

	"telegram-chat-analyzer/internal/domain"
)

func TestJsonParser(t *testing.T) {
	t.Run("NewJsonParser создает корректный экземпляр", func(t *testing.T) {
		parser := NewJsonParser()
		if parser == nil {
			t.Error("Ожидался экземпляр JsonParser, получен nil")
		}
	})

	t.Run("Разбор корректного JSON", func(t *testing.T) {
		parser := &JsonParser{}
		testData := `{
			"name": "Test Chat",
			"id": 12345,
			"messages": [
				{
					"id": 1,
					"type": "message",
					"date": "2023-01-01T00:00:00",
					"date_unixtime": "1672531200",
					"from": "John Doe",
					"text": "Hello, World!"
				},
				{
					"id": 2,
					"type": "service",
					"date": "2023-01-01T00:01:00",
					"date_unixtime": 1672531260,
					"action": "invite_members",
					"text": ""
				}
			]
		}`

		chat, err := parser.Parse([]byte(testData))
		if err != nil {
			t.Fatalf("Неожиданная ошибка: %v", err)
		}

		if chat.Name() != "Test Chat" {
			t.Errorf("Ожидалось имя 'Test Chat', получено '%s'", chat.Name())
		}
		if chat.ID() != 12345 {
			t.Errorf("Ожидался ID 12345, получено %d", chat.ID())
		}
		if len(chat.Messages()) != 2 {
			t.Fatalf("Ожидалось 2 сообщения, получено %d", len(chat.Messages()))
		}

		first := chat.Messages()[0]
		if first.Kind != domain.KindRegular {
			t.Errorf("Ожидался вариант %q, получен %q", domain.KindRegular, first.Kind)
		}
		if from, err := first.From(); err != nil || from != "John Doe" {
			t.Errorf("Ожидался отправитель 'John Doe', получено '%s' (ошибка %v)", from, err)
		}
		if first.Text.Render() != "Hello, World!" {
			t.Errorf("Ожидался текст 'Hello, World!', получено '%s'", first.Text.Render())
		}
		if first.DateUnixtime != "1672531200" {
			t.Errorf("Ожидалось date_unixtime '1672531200', получено '%s'", first.DateUnixtime)
		}

		second := chat.Messages()[1]
		if second.Kind != domain.KindService {
			t.Errorf("Ожидался вариант %q, получен %q", domain.KindService, second.Kind)
		}
		if action, err := second.Action(); err != nil || action != "invite_members" {
			t.Errorf("Ожидалось действие 'invite_members', получено '%s' (ошибка %v)", action, err)
		}
		// Числовое date_unixtime приводится к строке
		if second.DateUnixtime != "1672531260" {
			t.Errorf("Ожидалось date_unixtime '1672531260', получено '%s'", second.DateUnixtime)
		}
	})

	t.Run("Неизвестный тип сообщения отменяет всю загрузку", func(t *testing.T) {
		parser := &JsonParser{}
		testData := `{
			"name": "Test Chat",
			"id": 12345,
			"messages": [
				{"id": 1, "type": "message", "date": "2023-01-01T00:00:00", "from": "John Doe", "text": "ok"},
				{"id": 2, "type": "poll", "date": "2023-01-01T00:01:00", "text": ""}
			]
		}`

		chat, err := parser.Parse([]byte(testData))
		if err == nil {
			t.Fatal("Ожидалась ошибка для неизвестного типа, получено nil")
		}
		if chat != nil {
			t.Error("Ожидался nil чат, частичная модель недопустима")
		}

		var unhandled *domain.UnhandledMessageTypeError
		if !errors.As(err, &unhandled) {
			t.Fatalf("Ожидалась UnhandledMessageTypeError, получено %T", err)
		}
		if unhandled.Type != "poll" {
			t.Errorf("Ожидался тип 'poll' в ошибке, получено '%s'", unhandled.Type)
		}
	})

	t.Run("Разбор некорректного JSON возвращает ошибку", func(t *testing.T) {
		parser := &JsonParser{}
		invalidData := `{"name": "Test Chat", "invalid_json":}`

		chat, err := parser.Parse([]byte(invalidData))
		if err == nil {
			t.Error("Ожидалась ошибка для некорректного JSON, получено nil")
		}
		if chat != nil {
			t.Error("Ожидался nil чат для некорректного JSON, получен чат")
		}
	})

	t.Run("Разбор пустого JSON возвращает ошибку", func(t *testing.T) {
		parser := &JsonParser{}

		chat, err := parser.Parse([]byte(``))
		if err == nil {
			t.Error("Ожидалась ошибка для пустого JSON, получено nil")
		}
		if chat != nil {
			t.Error("Ожидался nil чат для пустого JSON, получен чат")
		}
	})

	t.Run("Порядок и число сообщений сохраняются", func(t *testing.T) {
		parser := &JsonParser{}
		testData := `{
			"name": "Test Chat",
			"id": 1,
			"messages": [
				{"id": 10, "type": "message", "date": "d", "from": "A", "text": "a"},
				{"id": 20, "type": "service", "date": "d", "action": "x", "text": ""},
				{"id": 30, "type": "message", "date": "d", "from": "B", "text": "b"},
				{"id": 40, "type": "message", "date": "d", "from": "A", "text": "c"}
			]
		}`

		chat, err := parser.Parse([]byte(testData))
		if err != nil {
			t.Fatalf("Неожиданная ошибка: %v", err)
		}

		if len(chat.Messages()) != 4 {
			t.Fatalf("Ожидалось 4 сообщения, получено %d", len(chat.Messages()))
		}
		for i, wantID := range []int{10, 20, 30, 40} {
			if chat.Messages()[i].ID != wantID {
				t.Errorf("Ожидался ID %d на позиции %d, получено %d", wantID, i, chat.Messages()[i].ID)
			}
		}
	})

	t.Run("Разбор текста со смешанными сущностями", func(t *testing.T) {
		parser := &JsonParser{}
		testData := `{
			"name": "Test Chat",
			"id": 1,
			"messages": [
				{
					"id": 1,
					"type": "message",
					"date": "2023-01-01T00:00:00",
					"from": "John Doe",
					"text": ["a", {"type": "link", "text": "b"}, "c", {"type": "mention"}]
				}
			]
		}`

		chat, err := parser.Parse([]byte(testData))
		if err != nil {
			t.Fatalf("Неожиданная ошибка: %v", err)
		}

		text := chat.Messages()[0].Text
		if got := text.Render(); got != "abc<mention>" {
			t.Errorf("Ожидалось 'abc<mention>', получено '%s'", got)
		}
		if len(text.Segments()) != 4 {
			t.Errorf("Ожидалось 4 сегмента, получено %d", len(text.Segments()))
		}
	})
}

func TestNormalizeText(t *testing.T) {
	t.Run("Строка дает один простой сегмент", func(t *testing.T) {
		tc, err := NormalizeText([]byte(`"Hello"`))
		if err != nil {
			t.Fatalf("Неожиданная ошибка: %v", err)
		}
		if len(tc.Segments()) != 1 {
			t.Fatalf("Ожидался 1 сегмент, получено %d", len(tc.Segments()))
		}
		if tc.Segments()[0].Entity != nil || tc.Segments()[0].Plain != "Hello" {
			t.Errorf("Ожидался простой сегмент 'Hello', получено %+v", tc.Segments()[0])
		}
	})

	t.Run("Пустая строка дает один пустой сегмент", func(t *testing.T) {
		tc, err := NormalizeText([]byte(`""`))
		if err != nil {
			t.Fatalf("Неожиданная ошибка: %v", err)
		}
		if len(tc.Segments()) != 1 {
			t.Errorf("Ожидался 1 сегмент, получено %d", len(tc.Segments()))
		}
		if tc.Render() != "" {
			t.Errorf("Ожидалась пустая строка, получено '%s'", tc.Render())
		}
	})

	t.Run("Массив сохраняет порядок и виды элементов", func(t *testing.T) {
		tc, err := NormalizeText([]byte(`["see ", {"type": "link"}, " link"]`))
		if err != nil {
			t.Fatalf("Неожиданная ошибка: %v", err)
		}

		segments := tc.Segments()
		if len(segments) != 3 {
			t.Fatalf("Ожидалось 3 сегмента, получено %d", len(segments))
		}
		if segments[0].Entity != nil || segments[1].Entity == nil || segments[2].Entity != nil {
			t.Errorf("Виды сегментов не соответствуют исходным элементам: %+v", segments)
		}
		if segments[1].Entity.Type != "link" {
			t.Errorf("Ожидался тип 'link', получено '%s'", segments[1].Entity.Type)
		}
		if segments[1].Entity.Text != nil {
			t.Error("Ожидалось отсутствие текста у сущности")
		}
	})

	t.Run("Сущность с пустым текстом отличается от сущности без текста", func(t *testing.T) {
		tc, err := NormalizeText([]byte(`[{"type": "bold", "text": ""}]`))
		if err != nil {
			t.Fatalf("Неожиданная ошибка: %v", err)
		}

		entity := tc.Segments()[0].Entity
		if entity == nil || entity.Text == nil {
			t.Fatal("Ожидалась сущность с пустым, но присутствующим текстом")
		}
		if tc.Render() != "" {
			t.Errorf("Ожидалась пустая строка, получено '%s'", tc.Render())
		}
	})

	t.Run("Недопустимое значение текста возвращает ошибку", func(t *testing.T) {
		if _, err := NormalizeText([]byte(`42`)); err == nil {
			t.Error("Ожидалась ошибка для числового текста, получено nil")
		}
		if _, err := NormalizeText([]byte(`[42]`)); err == nil {
			t.Error("Ожидалась ошибка для числового элемента массива, получено nil")
		}
	})
}

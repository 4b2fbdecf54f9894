package domain

import "strings"

// MessageKind определяет вариант сообщения. Вариант фиксируется при
// создании сообщения и больше не меняется.
type MessageKind string

const (
	// KindRegular — обычное сообщение пользователя.
	KindRegular MessageKind = "message"
	// KindService — служебное сообщение (изменение состава чата и т.п.).
	KindService MessageKind = "service"
)

// TextEntity представляет "богатую" часть текста (упоминание, ссылка и т.д.).
// Text равен nil, когда сущность не несет собственного отображаемого текста.
type TextEntity struct {
	Type string
	Text *string
}

// Segment — одна единица нормализованного текста: либо простая строка,
// либо типизированная сущность. Entity == nil означает простой сегмент,
// в этом случае используется Plain.
type Segment struct {
	Plain  string
	Entity *TextEntity
}

// TextContent представляет нормализованное тело сообщения: упорядоченную
// последовательность сегментов. Порядок сегментов совпадает с порядком
// элементов исходного поля "text"; сегменты не отбрасываются и не склеиваются.
type TextContent struct {
	segments []Segment
}

// NewTextContent создает TextContent из последовательности сегментов.
func NewTextContent(segments []Segment) TextContent {
	return TextContent{segments: segments}
}

// PlainText создает TextContent из одной простой строки.
func PlainText(s string) TextContent {
	return TextContent{segments: []Segment{{Plain: s}}}
}

// Segments возвращает сегменты по порядку. Срез принадлежит TextContent,
// вызывающий не должен его изменять.
func (tc TextContent) Segments() []Segment {
	return tc.segments
}

// Render склеивает все сегменты по порядку в отображаемую строку.
// Сущность без собственного текста отображается как "<тип>".
func (tc TextContent) Render() string {
	var b strings.Builder
	for _, seg := range tc.segments {
		switch {
		case seg.Entity == nil:
			b.WriteString(seg.Plain)
		case seg.Entity.Text != nil:
			b.WriteString(*seg.Entity.Text)
		default:
			b.WriteString("<" + seg.Entity.Type + ">")
		}
	}
	return b.String()
}

// Count возвращает суммарное число непересекающихся вхождений word по всем
// сегментам. Сущности без собственного текста не участвуют в поиске.
// Пустое слово дает 0 вхождений.
func (tc TextContent) Count(word string, caseSensitive bool) int {
	if word == "" {
		return 0
	}
	if !caseSensitive {
		word = strings.ToLower(word)
	}

	total := 0
	for _, seg := range tc.segments {
		s := seg.Plain
		if seg.Entity != nil {
			if seg.Entity.Text == nil {
				continue
			}
			s = *seg.Entity.Text
		}
		if !caseSensitive {
			s = strings.ToLower(s)
		}
		total += strings.Count(s, word)
	}
	return total
}

// Message представляет одно сообщение в чате. Общие поля доступны напрямую,
// поля конкретного варианта — через From и Action.
type Message struct {
	ID           int
	Kind         MessageKind
	Date         string
	DateUnixtime string
	Text         TextContent

	from   string
	action string
}

// NewRegularMessage создает обычное сообщение пользователя.
func NewRegularMessage(id int, date, dateUnixtime string, text TextContent, from string) Message {
	return Message{
		ID:           id,
		Kind:         KindRegular,
		Date:         date,
		DateUnixtime: dateUnixtime,
		Text:         text,
		from:         from,
	}
}

// NewServiceMessage создает служебное сообщение.
func NewServiceMessage(id int, date, dateUnixtime string, text TextContent, action string) Message {
	return Message{
		ID:           id,
		Kind:         KindService,
		Date:         date,
		DateUnixtime: dateUnixtime,
		Text:         text,
		action:       action,
	}
}

// From возвращает отображаемое имя отправителя. Для служебного сообщения
// возвращает MissingFieldError.
func (m Message) From() (string, error) {
	if m.Kind != KindRegular {
		return "", &MissingFieldError{Field: "from", Kind: m.Kind}
	}
	return m.from, nil
}

// Action возвращает описание служебного события. Для обычного сообщения
// возвращает MissingFieldError.
func (m Message) Action() (string, error) {
	if m.Kind != KindService {
		return "", &MissingFieldError{Field: "action", Kind: m.Kind}
	}
	return m.action, nil
}

// ChatExport представляет загруженный экспорт одного чата. После создания
// не изменяется, любое число запросов может выполняться без координации.
type ChatExport struct {
	name     string
	id       int
	messages []Message
}

// NewChatExport создает ChatExport с готовым списком сообщений.
// Список становится собственностью ChatExport.
func NewChatExport(name string, id int, messages []Message) *ChatExport {
	return &ChatExport{name: name, id: id, messages: messages}
}

// Name возвращает название чата.
func (c *ChatExport) Name() string { return c.name }

// ID возвращает идентификатор чата.
func (c *ChatExport) ID() int { return c.id }

// Messages возвращает сообщения в порядке экспорта. Срез принадлежит
// ChatExport, вызывающий не должен его изменять.
func (c *ChatExport) Messages() []Message {
	return c.messages
}

// GrepMatch описывает одно совпадение поиска по сообщениям.
type GrepMatch struct {
	Word   string `json:"word"`
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// UserMessageCount — число сообщений одного пользователя.
type UserMessageCount struct {
	User  string `json:"user"`
	Count int    `json:"count"`
}

// ChatStats — сводная статистика по одному экспорту чата.
type ChatStats struct {
	Name         string             `json:"name"`
	ID           int                `json:"id"`
	MessageCount int                `json:"message_count"`
	RegularCount int                `json:"regular_count"`
	ServiceCount int                `json:"service_count"`
	PerUser      []UserMessageCount `json:"per_user"`
}

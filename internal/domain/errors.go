package domain

import "fmt"

// UnhandledMessageTypeError возвращается фабрикой сообщений, когда
// дискриминант "type" не входит в число известных вариантов. Ошибка
// фатальна для всей загрузки: частичная модель не создается.
type UnhandledMessageTypeError struct {
	Type string
}

func (e *UnhandledMessageTypeError) Error() string {
	return fmt.Sprintf("unhandled message type: %q", e.Type)
}

// MissingFieldError возвращается при обращении к полю варианта, которым
// сообщение не является (например, From у служебного сообщения).
type MissingFieldError struct {
	Field string
	Kind  MessageKind
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("field %q is not present on %q message", e.Field, string(e.Kind))
}

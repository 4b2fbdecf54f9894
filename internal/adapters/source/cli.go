package source

import (
	"bytes"
	"fmt"
	"os"

	"telegram-chat-analyzer/internal/ports"
)

// utf8BOM — маркер порядка байт, которым Telegram начинает файлы экспорта
// на некоторых платформах. encoding/json такой префикс не принимает.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CliSource реализует интерфейс DataSource для чтения данных из файла,
// указанного в командной строке.
type CliSource struct {
	filePath string
}

// NewCliSource создает новый экземпляр CliSource.
func NewCliSource(filePath string) ports.DataSource {
	return &CliSource{filePath: filePath}
}

// Fetch читает файл по указанному пути и возвращает его содержимое
// без UTF-8 BOM.
func (s *CliSource) Fetch() ([]byte, error) {
	if s.filePath == "" {
		return nil, fmt.Errorf("не указан путь к файлу")
	}

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", s.filePath, err)
	}

	return bytes.TrimPrefix(data, utf8BOM), nil
}

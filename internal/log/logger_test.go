package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("Уровень info отбрасывает debug-записи", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "info", "text")

		logger.Debug("скрытое сообщение")
		logger.Info("видимое сообщение")

		out := buf.String()
		if strings.Contains(out, "скрытое сообщение") {
			t.Errorf("Debug-запись не должна попадать в вывод: %s", out)
		}
		if !strings.Contains(out, "видимое сообщение") {
			t.Errorf("Info-запись должна попадать в вывод: %s", out)
		}
	})

	t.Run("Уровень debug пропускает debug-записи", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "debug", "text")

		if !logger.Enabled(context.Background(), slog.LevelDebug) {
			t.Error("Ожидался включенный уровень debug")
		}
	})

	t.Run("Формат json дает валидный JSON", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "info", "json")

		logger.Info("сообщение", "key", "value")

		var record map[string]any
		if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
			t.Fatalf("Ожидался валидный JSON, получено: %s", buf.String())
		}
		if record["msg"] != "сообщение" {
			t.Errorf("Ожидалось поле msg 'сообщение', получено %v", record["msg"])
		}
	})

	t.Run("Неизвестный уровень трактуется как info", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "unknown", "text")

		if logger.Enabled(context.Background(), slog.LevelDebug) {
			t.Error("Ожидался выключенный уровень debug")
		}
		if !logger.Enabled(context.Background(), slog.LevelInfo) {
			t.Error("Ожидался включенный уровень info")
		}
	})
}

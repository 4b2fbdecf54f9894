package exporter

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"telegram-chat-analyzer/internal/domain"
	"telegram-chat-analyzer/internal/ports"
)

// ExcelExporter реализует интерфейс Exporter для записи статистики
// в файл .xlsx.
type ExcelExporter struct {
	path string
}

// NewExcelExporter создает экспортер, пишущий в файл по указанному пути.
func NewExcelExporter(path string) ports.Exporter {
	return &ExcelExporter{path: path}
}

// Export записывает статистику всех чатов на один лист: по строке на
// каждого пользователя, плюс итоговая строка на чат.
func (e *ExcelExporter) Export(stats []domain.ChatStats) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("failed to close excel file", slog.String("error", err.Error()))
		}
	}()

	sheetName := "Статистика"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	// Заголовки
	headers := []string{"Дата экспорта", "Чат", "Пользователь", "Сообщений"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	// Данные
	exportDate := time.Now().Format(time.RFC3339)
	row := 2
	for _, st := range stats {
		for _, uc := range st.PerUser {
			f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), exportDate)
			f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), st.Name)
			f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), uc.User)
			f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), uc.Count)
			row++
		}
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), exportDate)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), st.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), "Всего")
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), st.MessageCount)
		row++
	}

	if err := f.SaveAs(e.path); err != nil {
		return fmt.Errorf("failed to save excel file %s: %w", e.path, err)
	}
	return nil
}

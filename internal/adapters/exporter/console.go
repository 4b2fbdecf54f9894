package exporter

import (
	"fmt"

	"telegram-chat-analyzer/internal/domain"
	"telegram-chat-analyzer/internal/ports"
)

// ConsoleExporter реализует интерфейс Exporter для вывода статистики в консоль.
type ConsoleExporter struct{}

// NewConsoleExporter создает новый экземпляр ConsoleExporter.
func NewConsoleExporter() ports.Exporter {
	return &ConsoleExporter{}
}

// Export выводит итоговую статистику чатов в консоль.
func (e *ConsoleExporter) Export(stats []domain.ChatStats) error {
	for _, st := range stats {
		fmt.Printf("--- Chat %q (id %d) ---\n", st.Name, st.ID)
		fmt.Printf("Messages: %d (regular: %d, service: %d)\n", st.MessageCount, st.RegularCount, st.ServiceCount)
		if len(st.PerUser) == 0 {
			fmt.Println("No user messages found.")
			continue
		}
		for _, uc := range st.PerUser {
			fmt.Printf("%s: %d\n", uc.User, uc.Count)
		}
	}
	return nil
}

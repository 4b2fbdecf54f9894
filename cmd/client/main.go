package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"telegram-chat-analyzer/internal/adapters/exporter"
	"telegram-chat-analyzer/internal/domain"
)

type taskStatusResponse struct {
	TaskID       string `json:"task_id"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
}

func main() {
	var (
		serverAddr   string
		pollInterval time.Duration
		excelPath    string
	)
	flag.StringVar(&serverAddr, "server", "http://localhost:8080", "адрес сервера анализа")
	flag.DurationVar(&pollInterval, "interval", 5*time.Second, "интервал опроса статуса задачи")
	flag.StringVar(&excelPath, "excel", "", "путь к файлу Excel для сохранения результата")
	flag.Parse()

	filePaths := flag.Args()
	if len(filePaths) == 0 {
		log.Fatal("Требуется хотя бы один путь к файлу. Использование: client [флаги] <файл1> <файл2> ...")
	}

	taskID, err := uploadFiles(serverAddr, filePaths)
	if err != nil {
		log.Fatalf("Не удалось загрузить файлы: %v", err)
	}

	fmt.Printf("Задача создана с идентификатором: %s\n", taskID)

	stats, err := waitForResult(serverAddr, taskID, pollInterval)
	if err != nil {
		log.Fatalf("%v", err)
	}

	out := exporter.NewConsoleExporter()
	if err := out.Export(stats); err != nil {
		log.Fatalf("Не удалось вывести результат: %v", err)
	}

	if excelPath != "" {
		xlsx := exporter.NewExcelExporter(excelPath)
		if err := xlsx.Export(stats); err != nil {
			log.Fatalf("Не удалось сохранить результат в Excel: %v", err)
		}
		fmt.Printf("Результат сохранен в %s\n", excelPath)
	}
}

// uploadFiles отправляет файлы экспорта на сервер и возвращает идентификатор
// созданной задачи.
func uploadFiles(serverAddr string, filePaths []string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for _, path := range filePaths {
		if err := addFormFile(writer, path); err != nil {
			return "", err
		}
	}

	// Закрытие writer записывает завершающую границу формы
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("не удалось закрыть multipart writer: %w", err)
	}

	resp, err := http.Post(serverAddr+"/api/v1/process", writer.FormDataContentType(), &body)
	if err != nil {
		return "", fmt.Errorf("не удалось отправить запрос: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		return "", fmt.Errorf("сервер вернул статус: %d", resp.StatusCode)
	}

	var taskResp map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&taskResp); err != nil {
		return "", fmt.Errorf("не удалось декодировать ответ: %w", err)
	}
	taskID := taskResp["task_id"]
	if taskID == "" {
		return "", fmt.Errorf("идентификатор задачи не найден в ответе")
	}

	return taskID, nil
}

func addFormFile(writer *multipart.Writer, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("не удалось открыть файл %s: %w", path, err)
	}
	defer file.Close()

	part, err := writer.CreateFormFile("files", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("не удалось создать файл формы для %s: %w", path, err)
	}

	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("не удалось записать данные файла %s: %w", path, err)
	}

	return nil
}

// waitForResult опрашивает сервер, пока задача не завершится, и возвращает
// итоговую статистику.
func waitForResult(serverAddr, taskID string, pollInterval time.Duration) ([]domain.ChatStats, error) {
	for {
		time.Sleep(pollInterval)

		status, err := fetchStatus(serverAddr, taskID)
		if err != nil {
			return nil, fmt.Errorf("не удалось опросить статус задачи: %w", err)
		}

		fmt.Printf("Статус задачи: %s\n", status.Status)

		switch status.Status {
		case "completed":
			return fetchResult(serverAddr, taskID)
		case "failed":
			return nil, fmt.Errorf("задача не выполнена: %s", status.ErrorMessage)
		case "pending", "processing":
			continue
		default:
			return nil, fmt.Errorf("неизвестный статус задачи: %s", status.Status)
		}
	}
}

func fetchStatus(serverAddr, taskID string) (*taskStatusResponse, error) {
	resp, err := http.Get(fmt.Sprintf("%s/api/v1/tasks/%s", serverAddr, taskID))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("сервер вернул статус: %d", resp.StatusCode)
	}

	var status taskStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("не удалось декодировать ответ статуса: %w", err)
	}

	return &status, nil
}

func fetchResult(serverAddr, taskID string) ([]domain.ChatStats, error) {
	resp, err := http.Get(fmt.Sprintf("%s/api/v1/tasks/%s/result", serverAddr, taskID))
	if err != nil {
		return nil, fmt.Errorf("не удалось получить результат: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("сервер вернул статус для результата: %d", resp.StatusCode)
	}

	var stats []domain.ChatStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("не удалось декодировать результат: %w", err)
	}

	return stats, nil
}

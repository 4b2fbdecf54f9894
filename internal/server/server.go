package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"telegram-chat-analyzer/internal/cache"
	"telegram-chat-analyzer/internal/domain"
	"telegram-chat-analyzer/internal/pkg/config"
)

// taskTTL — срок хранения записи о задаче до автоматической очистки.
const taskTTL = 24 * time.Hour

// ChatAnalyzer определяет интерфейс варианта использования, который
// анализирует файлы экспорта чатов.
type ChatAnalyzer interface {
	AnalyzeChat(ctx context.Context, filePaths []string) ([]domain.ChatStats, error)
}

// Server представляет HTTP-сервер анализа
type Server struct {
	HTTPServer *http.Server
	cfg        *config.Config
	taskStore  *TaskStore
	cacheStore *cache.CacheStore
	analyzer   ChatAnalyzer
}

// New создает новый экземпляр Server
func New(cfg *config.Config, analyzer ChatAnalyzer, taskStore *TaskStore, cacheStore *cache.CacheStore) (*Server, error) {
	s := &Server{
		cfg:        cfg,
		taskStore:  taskStore,
		cacheStore: cacheStore,
		analyzer:   analyzer,
	}

	chiRouter := chi.NewRouter()

	// Промежуточное ПО
	chiRouter.Use(middleware.Logger)
	chiRouter.Use(middleware.Recoverer)

	// Конечная точка для проверки работоспособности
	chiRouter.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "ok",
		})
	})

	// Маршруты API
	chiRouter.Route("/api/v1", func(r chi.Router) {
		r.Post("/process", s.handleProcess)
		r.Post("/process-by-hash", s.handleProcessByHash)
		r.Get("/tasks/{taskID}", s.handleTaskStatus)
		r.Get("/tasks/{taskID}/result", s.handleTaskResult)
	})

	s.HTTPServer = &http.Server{
		Addr:    cfg.Address(),
		Handler: chiRouter,
	}

	return s, nil
}

// handleProcess принимает файлы экспорта и запускает задачу анализа.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	// Разбор мультипарт-формы
	if err := r.ParseMultipartForm(10 << 20); err != nil { // максимум 10 MB
		http.Error(w, "Не удалось разобрать форму", http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		http.Error(w, "Не передано ни одного файла", http.StatusBadRequest)
		return
	}

	// Генерация уникального идентификатора задачи
	taskID := uuid.NewString()

	// Сохранение загруженных данных во временные файлы
	tempDir := os.TempDir()
	tempPaths := make([]string, 0, len(files))
	for i, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			http.Error(w, "Не удалось получить файл из формы", http.StatusBadRequest)
			return
		}

		tempPath := filepath.Join(tempDir, fmt.Sprintf("chat_%s_%d.json", taskID, i))
		out, err := os.Create(tempPath)
		if err != nil {
			file.Close()
			http.Error(w, "Не удалось создать временный файл", http.StatusInternalServerError)
			return
		}

		_, err = io.Copy(out, file)
		file.Close()
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			http.Error(w, "Не удалось сохранить загруженный файл", http.StatusInternalServerError)
			return
		}
		tempPaths = append(tempPaths, tempPath)
	}

	// Создание задачи в хранилище
	s.taskStore.CreateTask(taskID, taskTTL)

	// Запуск анализа в горутине
	go func() {
		s.taskStore.UpdateTaskStatus(taskID, TaskStatusProcessing)

		defer func() {
			for _, path := range tempPaths {
				os.Remove(path)
			}
		}()

		// Контекст задачи с таймаутом из конфигурации
		taskCtx := context.Background()
		if s.cfg.Processing.TaskTimeoutSeconds > 0 {
			var cancel context.CancelFunc
			taskCtx, cancel = context.WithTimeout(taskCtx, s.cfg.Processing.TaskTimeout())
			defer cancel()
		}

		result, err := s.analyzer.AnalyzeChat(taskCtx, tempPaths)
		if err != nil {
			slog.Error("Анализ не удался", "task_id", taskID, "error", err)
			s.taskStore.UpdateTaskError(taskID, err.Error())
			return
		}

		s.taskStore.UpdateTaskResult(taskID, result)
	}()

	// Возврат идентификатора задачи
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"task_id": taskID})
}

// handleProcessByHash запускает задачу по хешу ранее обработанного набора файлов.
func (s *Server) handleProcessByHash(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Hash string `json:"hash"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Не удалось декодировать тело запроса", http.StatusBadRequest)
		return
	}
	if req.Hash == "" {
		http.Error(w, "Требуется хеш", http.StatusBadRequest)
		return
	}

	taskID := uuid.NewString()
	s.taskStore.CreateTask(taskID, taskTTL)

	go func() {
		s.taskStore.UpdateTaskStatus(taskID, TaskStatusProcessing)

		if cachedItem, found := s.cacheStore.Get(req.Hash); found {
			s.taskStore.UpdateTaskResult(taskID, cachedItem.Data)
			slog.Info("Попадание в кеш для хеша", "hash", req.Hash, "task_id", taskID)
			return
		}

		// Без файла повторный анализ невозможен, промах кеша - ошибка задачи
		s.taskStore.UpdateTaskError(taskID, "Результат не найден в кеше для данного хеша")
		slog.Info("Промах кеша для хеша", "hash", req.Hash, "task_id", taskID)
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"task_id": taskID})
}

// handleTaskStatus возвращает статус задачи.
func (s *Server) handleTaskStatus(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")

	task, err := s.taskStore.GetTask(taskID)
	if err != nil {
		http.Error(w, "Задача не найдена", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"task_id":       task.ID,
		"status":        task.Status,
		"error_message": task.ErrorMessage,
	})
}

// handleTaskResult возвращает результат завершенной задачи.
func (s *Server) handleTaskResult(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")

	task, err := s.taskStore.GetTask(taskID)
	if err != nil {
		http.Error(w, "Задача не найдена", http.StatusNotFound)
		return
	}

	if task.Status != TaskStatusCompleted {
		http.Error(w, "Задача не завершена", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(task.Result)
}

// Start запускает HTTP-сервер и блокируется до его остановки.
func (s *Server) Start() error {
	slog.Info("Запуск HTTP-сервера", "address", s.HTTPServer.Addr)
	return s.HTTPServer.ListenAndServe()
}

// Shutdown корректно останавливает HTTP-сервер.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.HTTPServer.Shutdown(ctx)
}

package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-chat-analyzer/internal/domain"
)

func TestTaskStore(t *testing.T) {
	t.Run("Новая задача создается со статусом pending", func(t *testing.T) {
		store := NewTaskStore()
		store.CreateTask("task-1", time.Hour)

		task, err := store.GetTask("task-1")
		require.NoError(t, err)
		assert.Equal(t, TaskStatusPending, task.Status)
		assert.Equal(t, "task-1", task.ID)
	})

	t.Run("GetTask возвращает ошибку для неизвестной задачи", func(t *testing.T) {
		store := NewTaskStore()

		_, err := store.GetTask("missing")

		assert.Error(t, err)
	})

	t.Run("UpdateTaskStatus меняет статус", func(t *testing.T) {
		store := NewTaskStore()
		store.CreateTask("task-1", time.Hour)

		require.NoError(t, store.UpdateTaskStatus("task-1", TaskStatusProcessing))

		task, err := store.GetTask("task-1")
		require.NoError(t, err)
		assert.Equal(t, TaskStatusProcessing, task.Status)
	})

	t.Run("UpdateTaskResult завершает задачу с результатом", func(t *testing.T) {
		store := NewTaskStore()
		store.CreateTask("task-1", time.Hour)

		result := []domain.ChatStats{{Name: "Test Chat", ID: 1, MessageCount: 3}}
		require.NoError(t, store.UpdateTaskResult("task-1", result))

		task, err := store.GetTask("task-1")
		require.NoError(t, err)
		assert.Equal(t, TaskStatusCompleted, task.Status)
		assert.Equal(t, result, task.Result)
	})

	t.Run("UpdateTaskError переводит задачу в failed", func(t *testing.T) {
		store := NewTaskStore()
		store.CreateTask("task-1", time.Hour)

		require.NoError(t, store.UpdateTaskError("task-1", "что-то пошло не так"))

		task, err := store.GetTask("task-1")
		require.NoError(t, err)
		assert.Equal(t, TaskStatusFailed, task.Status)
		assert.Equal(t, "что-то пошло не так", task.ErrorMessage)
	})

	t.Run("Обновление неизвестной задачи возвращает ошибку", func(t *testing.T) {
		store := NewTaskStore()

		assert.Error(t, store.UpdateTaskStatus("missing", TaskStatusProcessing))
		assert.Error(t, store.UpdateTaskResult("missing", nil))
		assert.Error(t, store.UpdateTaskError("missing", "err"))
	})

	t.Run("CleanupExpired удаляет только просроченные задачи", func(t *testing.T) {
		store := NewTaskStore()
		store.CreateTask("expired", -time.Second)
		store.CreateTask("alive", time.Hour)

		store.CleanupExpired()

		_, err := store.GetTask("expired")
		assert.Error(t, err)
		_, err = store.GetTask("alive")
		assert.NoError(t, err)
	})
}

package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/St1cky1/task-tracker/internal/entity"
)

func ptr[T any](v T) *T {
	return &v
}

func TestToEntityIgnoresServerManagedFields(t *testing.T) {
	due := entity.NewDateTime(time.Date(2030, 1, 1, 9, 0, 0, 0, time.Local))
	task := ToEntity(&entity.CreateTaskRequest{
		Title:       "Buy milk",
		Description: ptr("2 liters"),
		DueDate:     &due,
	})

	assert.Zero(t, task.ID)
	assert.Empty(t, task.Status)
	assert.True(t, task.CreatedAt.IsZero())
	assert.Equal(t, "Buy milk", task.Title)
	require.NotNil(t, task.DueDate)
	assert.True(t, due.Time.Equal(*task.DueDate))
}

func TestUpdateEntityIgnoresNilFields(t *testing.T) {
	created := time.Date(2026, 1, 1, 8, 0, 0, 0, time.Local)
	due := time.Date(2030, 1, 1, 9, 0, 0, 0, time.Local)
	task := &entity.Task{
		ID:          7,
		Title:       "A",
		Description: ptr("desc"),
		DueDate:     &due,
		Status:      entity.StatusInProgress,
		CreatedAt:   created,
		UpdatedAt:   created,
	}

	UpdateEntity(task, &entity.UpdateTaskRequest{Title: ptr("B")})

	assert.Equal(t, int64(7), task.ID)
	assert.Equal(t, "B", task.Title)
	assert.Equal(t, "desc", *task.Description)
	assert.True(t, due.Equal(*task.DueDate))
	assert.Equal(t, entity.StatusInProgress, task.Status)
	assert.Equal(t, created, task.CreatedAt)
	assert.Equal(t, created, task.UpdatedAt)
}

func TestUpdateEntityOverwritesEmptyString(t *testing.T) {
	task := &entity.Task{Title: "A", Description: ptr("desc"), Status: entity.StatusTodo}

	UpdateEntity(task, &entity.UpdateTaskRequest{Description: ptr(""), Status: ptr(entity.StatusDone)})

	require.NotNil(t, task.Description)
	assert.Equal(t, "", *task.Description)
	assert.Equal(t, "A", task.Title)
	assert.Equal(t, entity.StatusDone, task.Status)
}

func TestToResponse(t *testing.T) {
	ts := time.Date(2026, 3, 4, 5, 6, 7, 0, time.Local)
	resp := ToResponse(&entity.Task{ID: 1, Title: "A", Status: entity.StatusTodo, CreatedAt: ts, UpdatedAt: ts})

	assert.Nil(t, resp.DueDate)
	assert.Nil(t, resp.Description)
	assert.Equal(t, "2026-03-04 05:06:07", resp.CreatedAt.String())
	assert.Equal(t, resp.CreatedAt, resp.UpdatedAt)
}

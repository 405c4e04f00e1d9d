package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateTimeJSON(t *testing.T) {
	var req CreateTaskRequest
	err := json.Unmarshal([]byte(`{"title":"X","dueDate":"2030-05-01 13:45:00"}`), &req)
	require.NoError(t, err)
	require.NotNil(t, req.DueDate)

	want := time.Date(2030, 5, 1, 13, 45, 0, 0, time.Local)
	assert.True(t, want.Equal(req.DueDate.Time))

	out, err := json.Marshal(req.DueDate)
	require.NoError(t, err)
	assert.Equal(t, `"2030-05-01 13:45:00"`, string(out))
}

func TestDateTimeNull(t *testing.T) {
	var req UpdateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"dueDate":null}`), &req))
	assert.Nil(t, req.DueDate)
}

func TestDateTimeRejectsOtherLayouts(t *testing.T) {
	var req CreateTaskRequest
	err := json.Unmarshal([]byte(`{"title":"X","dueDate":"2030-05-01T13:45:00Z"}`), &req)
	assert.Error(t, err)
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError(42)
	assert.Equal(t, "Task with ID 42 not found", err.Error())
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestTaskStatusIsValid(t *testing.T) {
	for _, s := range TaskStatuses {
		assert.True(t, s.IsValid(), s)
	}
	assert.Len(t, TaskStatuses, 3)

	assert.False(t, TaskStatus("ARCHIVED").IsValid())
	assert.False(t, TaskStatus("todo").IsValid())
	assert.False(t, TaskStatus("").IsValid())
}

package entity

import (
	"slices"
	"time"
)

type TaskStatus string

const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
)

// TaskStatuses lists every valid status in declaration order.
var TaskStatuses = []TaskStatus{StatusTodo, StatusInProgress, StatusDone}

func (s TaskStatus) IsValid() bool {
	return slices.Contains(TaskStatuses, s)
}

func (s TaskStatus) String() string {
	return string(s)
}

// Task is the persisted to-do item. CreatedAt and UpdatedAt are owned by the store.
type Task struct {
	ID          int64
	Title       string
	Description *string
	DueDate     *time.Time
	Status      TaskStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// валидация
type CreateTaskRequest struct {
	Title       string    `json:"title" validate:"required,notblank,max=255"`
	Description *string   `json:"description" validate:"omitnil,max=2000"`
	DueDate     *DateTime `json:"dueDate" validate:"omitnil,futureorpresent"`
}

// UpdateTaskRequest carries only the fields the caller wants to change; nil means "leave as is".
type UpdateTaskRequest struct {
	Title       *string     `json:"title" validate:"omitnil,notblank,max=255"`
	Description *string     `json:"description" validate:"omitnil,max=2000"`
	DueDate     *DateTime   `json:"dueDate" validate:"omitnil,futureorpresent"`
	Status      *TaskStatus `json:"status" validate:"omitnil,oneof=TODO IN_PROGRESS DONE"`
}

type TaskResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *DateTime  `json:"dueDate"`
	Status      TaskStatus `json:"status"`
	CreatedAt   DateTime   `json:"createdAt"`
	UpdatedAt   DateTime   `json:"updatedAt"`
}

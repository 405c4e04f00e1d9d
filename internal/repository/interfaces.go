package repository

import (
	"context"

	"github.com/St1cky1/task-tracker/internal/entity"
	"github.com/St1cky1/task-tracker/internal/validator"
)

// ITaskRepository - хранилище задач
type ITaskRepository interface {
	FindAll(ctx context.Context) ([]entity.Task, error)
	FindAllSorted(ctx context.Context, field validator.SortField, direction validator.SortDirection) ([]entity.Task, error)
	FindByStatusIn(ctx context.Context, statuses []entity.TaskStatus) ([]entity.Task, error)
	// FindById returns nil, nil when the task does not exist.
	FindById(ctx context.Context, id int64) (*entity.Task, error)
	ExistsById(ctx context.Context, id int64) (bool, error)
	// Save inserts when task.ID is zero and updates in place otherwise.
	Save(ctx context.Context, task *entity.Task) (*entity.Task, error)
	DeleteById(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

var sortColumns = map[validator.SortField]string{
	validator.SortByDueDate: "due_date",
	validator.SortByStatus:  "status",
}

// orderClause never interpolates raw input: unknown fields fall back to due_date.
func orderClause(field validator.SortField, direction validator.SortDirection) string {
	column, ok := sortColumns[field]
	if !ok {
		column = sortColumns[validator.SortByDueDate]
	}
	dir := "ASC"
	if direction == validator.SortDesc {
		dir = "DESC"
	}
	return column + " " + dir + ", id ASC"
}

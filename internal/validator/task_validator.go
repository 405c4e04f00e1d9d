package validator

import (
	"strings"

	"github.com/St1cky1/task-tracker/internal/entity"
)

type SortField string

const (
	SortByDueDate SortField = "dueDate"
	SortByStatus  SortField = "status"
)

type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// TaskValidator sanitizes sort parameters and checks existence preconditions.
// Unknown sort input never fails: it falls back to dueDate ascending.
type TaskValidator struct{}

func NewTaskValidator() *TaskValidator {
	return &TaskValidator{}
}

func (TaskValidator) ValidateSortField(sortBy string) SortField {
	switch field := SortField(sortBy); field {
	case SortByDueDate, SortByStatus:
		return field
	default:
		return SortByDueDate
	}
}

func (TaskValidator) ValidateSortDirection(direction string) SortDirection {
	if strings.EqualFold(direction, string(SortDesc)) {
		return SortDesc
	}
	return SortAsc
}

// AssertExists takes the existence flag from the caller so it stays free of I/O.
func (TaskValidator) AssertExists(id int64, exists bool) error {
	if !exists {
		return entity.NewNotFoundError(id)
	}
	return nil
}

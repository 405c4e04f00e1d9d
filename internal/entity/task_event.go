package entity

import (
	"time"
)

type ActionType string

const (
	ActionCreate ActionType = "Create"
	ActionUpdate ActionType = "Update"
	ActionDelete ActionType = "Delete"
)

// TaskEvent is published after every successful mutation of a task.
// Task holds the state after the change and is omitted for deletes.
type TaskEvent struct {
	ID         string        `json:"id"`
	Action     ActionType    `json:"action"`
	TaskID     int64         `json:"taskId"`
	Task       *TaskResponse `json:"task,omitempty"`
	OccurredAt time.Time     `json:"occurredAt"`
}

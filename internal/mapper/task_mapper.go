package mapper

import "github.com/St1cky1/task-tracker/internal/entity"

// ToEntity copies the caller-settable fields only; id, status and timestamps stay zero.
func ToEntity(req *entity.CreateTaskRequest) *entity.Task {
	task := &entity.Task{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.DueDate != nil {
		due := req.DueDate.Time
		task.DueDate = &due
	}
	return task
}

func ToResponse(task *entity.Task) entity.TaskResponse {
	resp := entity.TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		CreatedAt:   entity.NewDateTime(task.CreatedAt),
		UpdatedAt:   entity.NewDateTime(task.UpdatedAt),
	}
	if task.DueDate != nil {
		due := entity.NewDateTime(*task.DueDate)
		resp.DueDate = &due
	}
	return resp
}

func ToResponses(tasks []entity.Task) []entity.TaskResponse {
	out := make([]entity.TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, ToResponse(&tasks[i]))
	}
	return out
}

// UpdateEntity merges every non-nil request field onto task.
// ID, CreatedAt and UpdatedAt are never touched.
func UpdateEntity(task *entity.Task, req *entity.UpdateTaskRequest) {
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		desc := *req.Description
		task.Description = &desc
	}
	if req.DueDate != nil {
		due := req.DueDate.Time
		task.DueDate = &due
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/St1cky1/task-tracker/internal/entity"
	"github.com/St1cky1/task-tracker/internal/validator"
)

type TaskService interface {
	ListTasks(ctx context.Context) ([]entity.TaskResponse, error)
	FilterTasksByStatus(ctx context.Context, statuses []entity.TaskStatus) ([]entity.TaskResponse, error)
	GetSortedTasks(ctx context.Context, sortBy, direction string) ([]entity.TaskResponse, error)
	GetTaskById(ctx context.Context, id int64) (*entity.TaskResponse, error)
	CreateTask(ctx context.Context, req *entity.CreateTaskRequest) (*entity.TaskResponse, error)
	UpdateTask(ctx context.Context, id int64, req *entity.UpdateTaskRequest) (*entity.TaskResponse, error)
	DeleteTask(ctx context.Context, id int64) error
}

type TaskHandler struct {
	taskService TaskService
	validator   *validator.RequestValidator
	logger      zerolog.Logger
}

func NewTaskHandler(taskService TaskService, requestValidator *validator.RequestValidator, logger zerolog.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		validator:   requestValidator,
		logger:      logger.With().Str("component", "task_handler").Logger(),
	}
}

// ListTasks serves both the plain list and ?status= filtering.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	h.filter(w, r, "status")
}

// FilterTasks serves /filter?statuses=...
func (h *TaskHandler) FilterTasks(w http.ResponseWriter, r *http.Request) {
	h.filter(w, r, "statuses")
}

func (h *TaskHandler) filter(w http.ResponseWriter, r *http.Request, param string) {
	statuses, err := parseStatuses(r.URL.Query()[param])
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	tasks, err := h.taskService.FilterTasksByStatus(r.Context(), statuses)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) SortedTasks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	tasks, err := h.taskService.GetSortedTasks(r.Context(), query.Get("sortBy"), query.Get("direction"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req entity.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	if err := h.validator.ValidateCreate(&req); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	task, err := h.taskService.GetTaskById(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	var req entity.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	if err := h.validator.ValidateUpdate(&req); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), id); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func taskID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, entity.NewValidationError("Invalid task ID: %s", raw)
	}
	return id, nil
}

// parseStatuses accepts repeated and comma-separated values.
func parseStatuses(values []string) ([]entity.TaskStatus, error) {
	var statuses []entity.TaskStatus
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			status := entity.TaskStatus(part)
			if !status.IsValid() {
				return nil, entity.NewValidationError("Invalid status value: %s", part)
			}
			statuses = append(statuses, status)
		}
	}
	return statuses, nil
}

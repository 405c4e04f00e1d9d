package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/St1cky1/task-tracker/internal/entity"
	"github.com/St1cky1/task-tracker/internal/mapper"
	"github.com/St1cky1/task-tracker/internal/repository"
	"github.com/St1cky1/task-tracker/internal/validator"
)

// TaskEventPublisher delivers change notifications; a nil publisher disables them.
type TaskEventPublisher interface {
	PublishTaskEvent(ctx context.Context, event *entity.TaskEvent) error
}

type TaskService struct {
	taskRepo  repository.ITaskRepository
	validator *validator.TaskValidator
	publisher TaskEventPublisher
	logger    zerolog.Logger
}

func NewTaskService(
	taskRepo repository.ITaskRepository,
	taskValidator *validator.TaskValidator,
	publisher TaskEventPublisher,
	logger zerolog.Logger,
) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		validator: taskValidator,
		publisher: publisher,
		logger:    logger.With().Str("component", "task_service").Logger(),
	}
}

func (s *TaskService) ListTasks(ctx context.Context) ([]entity.TaskResponse, error) {
	tasks, err := s.taskRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapper.ToResponses(tasks), nil
}

// FilterTasksByStatus treats an empty filter as no filter at all.
func (s *TaskService) FilterTasksByStatus(ctx context.Context, statuses []entity.TaskStatus) ([]entity.TaskResponse, error) {
	if len(statuses) == 0 {
		return s.ListTasks(ctx)
	}

	tasks, err := s.taskRepo.FindByStatusIn(ctx, statuses)
	if err != nil {
		return nil, err
	}
	return mapper.ToResponses(tasks), nil
}

func (s *TaskService) GetSortedTasks(ctx context.Context, sortBy, direction string) ([]entity.TaskResponse, error) {
	field := s.validator.ValidateSortField(sortBy)
	dir := s.validator.ValidateSortDirection(direction)

	tasks, err := s.taskRepo.FindAllSorted(ctx, field, dir)
	if err != nil {
		return nil, err
	}
	return mapper.ToResponses(tasks), nil
}

func (s *TaskService) GetTaskById(ctx context.Context, id int64) (*entity.TaskResponse, error) {
	task, err := s.findTask(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := mapper.ToResponse(task)
	return &resp, nil
}

func (s *TaskService) CreateTask(ctx context.Context, req *entity.CreateTaskRequest) (*entity.TaskResponse, error) {
	task := mapper.ToEntity(req)
	task.Status = entity.StatusTodo

	saved, err := s.taskRepo.Save(ctx, task)
	if err != nil {
		return nil, err
	}

	resp := mapper.ToResponse(saved)
	s.logger.Info().Int64("task_id", saved.ID).Msg("created task")
	s.publish(ctx, entity.ActionCreate, saved.ID, &resp)

	return &resp, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, id int64, req *entity.UpdateTaskRequest) (*entity.TaskResponse, error) {
	task, err := s.findTask(ctx, id)
	if err != nil {
		return nil, err
	}

	mapper.UpdateEntity(task, req)

	saved, err := s.taskRepo.Save(ctx, task)
	if err != nil {
		return nil, err
	}

	resp := mapper.ToResponse(saved)
	s.logger.Info().Int64("task_id", id).Msg("updated task")
	s.publish(ctx, entity.ActionUpdate, id, &resp)

	return &resp, nil
}

// DeleteTask checks existence and deletes in two store calls; a concurrent delete in between is not guarded.
func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	exists, err := s.taskRepo.ExistsById(ctx, id)
	if err != nil {
		return err
	}
	if err := s.validator.AssertExists(id, exists); err != nil {
		return err
	}

	if err := s.taskRepo.DeleteById(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("task_id", id).Msg("deleted task")
	s.publish(ctx, entity.ActionDelete, id, nil)
	return nil
}

func (s *TaskService) findTask(ctx context.Context, id int64) (*entity.Task, error) {
	task, err := s.taskRepo.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, entity.NewNotFoundError(id)
	}
	return task, nil
}

// publish never fails the request: the mutation is already committed.
func (s *TaskService) publish(ctx context.Context, action entity.ActionType, taskID int64, task *entity.TaskResponse) {
	if s.publisher == nil {
		return
	}

	event := &entity.TaskEvent{
		Action:     action,
		TaskID:     taskID,
		Task:       task,
		OccurredAt: time.Now(),
	}
	if err := s.publisher.PublishTaskEvent(ctx, event); err != nil {
		s.logger.Warn().
			Err(err).
			Str("action", string(action)).
			Int64("task_id", taskID).
			Msg("failed to publish task event")
	}
}

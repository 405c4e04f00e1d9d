package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/St1cky1/task-tracker/internal/entity"
	"github.com/St1cky1/task-tracker/internal/validator"
)

const taskColumns = `id, title, description, due_date, status, created_at, updated_at`

type TaskRepository struct {
	db     *pgxpool.Pool
	logger zerolog.Logger
	now    func() time.Time
}

var _ ITaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *pgxpool.Pool, logger zerolog.Logger) *TaskRepository {
	return &TaskRepository{
		db:     db,
		logger: logger.With().Str("component", "task_repository").Logger(),
		now:    time.Now,
	}
}

func (r *TaskRepository) FindAll(ctx context.Context) ([]entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY id ASC`
	return r.queryTasks(ctx, query)
}

func (r *TaskRepository) FindAllSorted(ctx context.Context, field validator.SortField, direction validator.SortDirection) ([]entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY ` + orderClause(field, direction)
	return r.queryTasks(ctx, query)
}

func (r *TaskRepository) FindByStatusIn(ctx context.Context, statuses []entity.TaskStatus) ([]entity.Task, error) {
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE status = ANY($1) ORDER BY id ASC`
	return r.queryTasks(ctx, query, values)
}

func (r *TaskRepository) FindById(ctx context.Context, id int64) (*entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find task %d: %w", id, err)
	}
	return task, nil
}

func (r *TaskRepository) ExistsById(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM tasks WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check task %d: %w", id, err)
	}
	return exists, nil
}

func (r *TaskRepository) Save(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	if task.ID == 0 {
		return r.insert(ctx, task)
	}
	return r.update(ctx, task)
}

func (r *TaskRepository) insert(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	now := r.now()
	query := `
	INSERT INTO tasks (title, description, due_date, status, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $5)
	RETURNING ` + taskColumns

	saved, err := scanTask(r.db.QueryRow(ctx, query,
		task.Title,
		task.Description,
		task.DueDate,
		task.Status,
		now,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert task: %w", err)
	}

	r.logger.Debug().Int64("task_id", saved.ID).Msg("inserted task")
	return saved, nil
}

func (r *TaskRepository) update(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	query := `
	UPDATE tasks
	SET title = $1, description = $2, due_date = $3, status = $4, updated_at = $5
	WHERE id = $6
	RETURNING ` + taskColumns

	saved, err := scanTask(r.db.QueryRow(ctx, query,
		task.Title,
		task.Description,
		task.DueDate,
		task.Status,
		r.now(),
		task.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.NewNotFoundError(task.ID)
		}
		return nil, fmt.Errorf("failed to update task %d: %w", task.ID, err)
	}

	r.logger.Debug().Int64("task_id", saved.ID).Msg("updated task")
	return saved, nil
}

func (r *TaskRepository) DeleteById(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	return nil
}

func (r *TaskRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *TaskRepository) queryTasks(ctx context.Context, query string, args ...any) ([]entity.Task, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]entity.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

func scanTask(row pgx.Row) (*entity.Task, error) {
	var task entity.Task
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.DueDate,
		&task.Status,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

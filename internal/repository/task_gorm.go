package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/St1cky1/task-tracker/internal/entity"
	"github.com/St1cky1/task-tracker/internal/validator"
)

// TaskRecord is the gorm model behind GormTaskRepository.
type TaskRecord struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	Title       string  `gorm:"size:255;not null"`
	Description *string `gorm:"type:text"`
	DueDate     *time.Time
	Status      string    `gorm:"size:20;not null;index"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (TaskRecord) TableName() string {
	return "tasks"
}

func newTaskRecord(task *entity.Task) *TaskRecord {
	return &TaskRecord{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Status:      string(task.Status),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func (r *TaskRecord) toEntity() entity.Task {
	return entity.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		Status:      entity.TaskStatus(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// GormTaskRepository stores tasks through gorm; used with the sqlite driver.
type GormTaskRepository struct {
	db     *gorm.DB
	logger zerolog.Logger
	now    func() time.Time
}

var _ ITaskRepository = (*GormTaskRepository)(nil)

func NewGormTaskRepository(db *gorm.DB, logger zerolog.Logger) *GormTaskRepository {
	return &GormTaskRepository{
		db:     db,
		logger: logger.With().Str("component", "task_repository").Logger(),
		now:    time.Now,
	}
}

func (r *GormTaskRepository) FindAll(ctx context.Context) ([]entity.Task, error) {
	return r.find(r.db.WithContext(ctx).Order("id ASC"))
}

func (r *GormTaskRepository) FindAllSorted(ctx context.Context, field validator.SortField, direction validator.SortDirection) ([]entity.Task, error) {
	return r.find(r.db.WithContext(ctx).Order(orderClause(field, direction)))
}

func (r *GormTaskRepository) FindByStatusIn(ctx context.Context, statuses []entity.TaskStatus) ([]entity.Task, error) {
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}
	return r.find(r.db.WithContext(ctx).Where("status IN ?", values).Order("id ASC"))
}

func (r *GormTaskRepository) FindById(ctx context.Context, id int64) (*entity.Task, error) {
	var record TaskRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find task %d: %w", id, err)
	}
	task := record.toEntity()
	return &task, nil
}

func (r *GormTaskRepository) ExistsById(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&TaskRecord{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check task %d: %w", id, err)
	}
	return count > 0, nil
}

func (r *GormTaskRepository) Save(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	record := newTaskRecord(task)
	now := r.now()

	if record.ID == 0 {
		record.CreatedAt = now
		record.UpdatedAt = now
		if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
			return nil, fmt.Errorf("failed to insert task: %w", err)
		}
		r.logger.Debug().Int64("task_id", record.ID).Msg("inserted task")
		saved := record.toEntity()
		return &saved, nil
	}

	res := r.db.WithContext(ctx).
		Model(&TaskRecord{}).
		Where("id = ?", record.ID).
		Updates(map[string]any{
			"title":       record.Title,
			"description": record.Description,
			"due_date":    record.DueDate,
			"status":      record.Status,
			"updated_at":  now,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update task %d: %w", record.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, entity.NewNotFoundError(record.ID)
	}

	r.logger.Debug().Int64("task_id", record.ID).Msg("updated task")
	return r.FindById(ctx, record.ID)
}

func (r *GormTaskRepository) DeleteById(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&TaskRecord{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	return nil
}

func (r *GormTaskRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *GormTaskRepository) find(tx *gorm.DB) ([]entity.Task, error) {
	var records []TaskRecord
	if err := tx.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}

	tasks := make([]entity.Task, 0, len(records))
	for i := range records {
		tasks = append(tasks, records[i].toEntity())
	}
	return tasks, nil
}

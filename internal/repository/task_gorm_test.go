package repository

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/St1cky1/task-tracker/internal/validator"
)

func newGormStore(t *testing.T, clock *fakeClock) ITaskRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&TaskRecord{}))

	repo := NewGormTaskRepository(db, zerolog.Nop())
	repo.now = clock.Now
	return repo
}

func TestGormTaskRepository(t *testing.T) {
	testTaskStore(t, newGormStore)
}

func TestOrderClause(t *testing.T) {
	require.Equal(t, "due_date ASC, id ASC", orderClause(validator.SortByDueDate, validator.SortAsc))
	require.Equal(t, "status DESC, id ASC", orderClause(validator.SortByStatus, validator.SortDesc))
	require.Equal(t, "due_date ASC, id ASC", orderClause(validator.SortField("title; DROP TABLE tasks"), validator.SortDirection("sideways")))
}

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/St1cky1/task-tracker/internal/entity"
	"github.com/St1cky1/task-tracker/internal/validator"
)

// fakeClock is shared by the store implementations under test.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type storeFactory func(t *testing.T, clock *fakeClock) ITaskRepository

func ptr[T any](v T) *T {
	return &v
}

func testTaskStore(t *testing.T, newStore storeFactory) {
	ctx := context.Background()
	base := time.Date(2030, time.March, 1, 9, 0, 0, 0, time.UTC)

	t.Run("insert sets equal timestamps", func(t *testing.T) {
		store := newStore(t, &fakeClock{now: base})

		saved, err := store.Save(ctx, &entity.Task{Title: "Buy milk", Status: entity.StatusTodo})
		require.NoError(t, err)

		assert.NotZero(t, saved.ID)
		assert.Equal(t, "Buy milk", saved.Title)
		assert.Nil(t, saved.Description)
		assert.Nil(t, saved.DueDate)
		assert.Equal(t, entity.StatusTodo, saved.Status)
		assert.True(t, saved.CreatedAt.Equal(base), "createdAt %s", saved.CreatedAt)
		assert.True(t, saved.CreatedAt.Equal(saved.UpdatedAt))
	})

	t.Run("update refreshes updatedAt only", func(t *testing.T) {
		clock := &fakeClock{now: base}
		store := newStore(t, clock)

		saved, err := store.Save(ctx, &entity.Task{Title: "Draft", Status: entity.StatusTodo})
		require.NoError(t, err)

		clock.Advance(time.Hour)
		saved.Title = "Final"
		saved.Description = ptr("ready for review")
		saved.Status = entity.StatusInProgress

		updated, err := store.Save(ctx, saved)
		require.NoError(t, err)

		assert.Equal(t, saved.ID, updated.ID)
		assert.Equal(t, "Final", updated.Title)
		require.NotNil(t, updated.Description)
		assert.Equal(t, "ready for review", *updated.Description)
		assert.Equal(t, entity.StatusInProgress, updated.Status)
		assert.True(t, updated.CreatedAt.Equal(base))
		assert.True(t, updated.UpdatedAt.Equal(base.Add(time.Hour)))

		found, err := store.FindById(ctx, saved.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Final", found.Title)
	})

	t.Run("update of missing task", func(t *testing.T) {
		store := newStore(t, &fakeClock{now: base})

		_, err := store.Save(ctx, &entity.Task{ID: 404, Title: "Ghost", Status: entity.StatusTodo})
		require.Error(t, err)
		assert.True(t, errors.Is(err, entity.ErrTaskNotFound))
	})

	t.Run("find by id and exists", func(t *testing.T) {
		store := newStore(t, &fakeClock{now: base})

		due := base.Add(48 * time.Hour)
		saved, err := store.Save(ctx, &entity.Task{Title: "Pay rent", DueDate: &due, Status: entity.StatusTodo})
		require.NoError(t, err)

		found, err := store.FindById(ctx, saved.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		require.NotNil(t, found.DueDate)
		assert.True(t, found.DueDate.Equal(due))

		missing, err := store.FindById(ctx, saved.ID+100)
		require.NoError(t, err)
		assert.Nil(t, missing)

		exists, err := store.ExistsById(ctx, saved.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = store.ExistsById(ctx, saved.ID+100)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("find all and filter by status", func(t *testing.T) {
		store := newStore(t, &fakeClock{now: base})

		for _, s := range []entity.TaskStatus{entity.StatusTodo, entity.StatusDone, entity.StatusInProgress, entity.StatusDone} {
			_, err := store.Save(ctx, &entity.Task{Title: string(s), Status: s})
			require.NoError(t, err)
		}

		all, err := store.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 4)
		for i := 1; i < len(all); i++ {
			assert.Less(t, all[i-1].ID, all[i].ID)
		}

		done, err := store.FindByStatusIn(ctx, []entity.TaskStatus{entity.StatusDone})
		require.NoError(t, err)
		assert.Len(t, done, 2)

		mixed, err := store.FindByStatusIn(ctx, []entity.TaskStatus{entity.StatusTodo, entity.StatusInProgress})
		require.NoError(t, err)
		assert.Len(t, mixed, 2)
		for _, task := range mixed {
			assert.NotEqual(t, entity.StatusDone, task.Status)
		}
	})

	t.Run("sorted", func(t *testing.T) {
		store := newStore(t, &fakeClock{now: base})

		seed := []struct {
			title  string
			due    time.Duration
			status entity.TaskStatus
		}{
			{"c", 72 * time.Hour, entity.StatusTodo},
			{"a", 24 * time.Hour, entity.StatusDone},
			{"b", 48 * time.Hour, entity.StatusInProgress},
		}
		for _, s := range seed {
			due := base.Add(s.due)
			_, err := store.Save(ctx, &entity.Task{Title: s.title, DueDate: &due, Status: s.status})
			require.NoError(t, err)
		}

		titles := func(tasks []entity.Task) []string {
			out := make([]string, len(tasks))
			for i, task := range tasks {
				out[i] = task.Title
			}
			return out
		}

		asc, err := store.FindAllSorted(ctx, validator.SortByDueDate, validator.SortAsc)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, titles(asc))

		desc, err := store.FindAllSorted(ctx, validator.SortByDueDate, validator.SortDesc)
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "b", "a"}, titles(desc))

		byStatus, err := store.FindAllSorted(ctx, validator.SortByStatus, validator.SortAsc)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, titles(byStatus))
	})

	t.Run("delete", func(t *testing.T) {
		store := newStore(t, &fakeClock{now: base})

		saved, err := store.Save(ctx, &entity.Task{Title: "Temp", Status: entity.StatusTodo})
		require.NoError(t, err)

		require.NoError(t, store.DeleteById(ctx, saved.ID))

		exists, err := store.ExistsById(ctx, saved.ID)
		require.NoError(t, err)
		assert.False(t, exists)

		// повторное удаление ничего не делает
		require.NoError(t, store.DeleteById(ctx, saved.ID))
	})

	t.Run("ping", func(t *testing.T) {
		store := newStore(t, &fakeClock{now: base})
		assert.NoError(t, store.Ping(ctx))
	})
}

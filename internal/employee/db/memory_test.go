package db

import (
	"context"
	"sync"
	"testing"

	"github.com/gartstein/employees/internal/employee/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("save assigns sequential ids", func(t *testing.T) {
		repo := NewMemoryRepository()
		a, err := repo.Save(ctx, &models.Employee{Name: "Alice"})
		require.NoError(t, err)
		b, err := repo.Save(ctx, &models.Employee{Name: "Bob"})
		require.NoError(t, err)

		assert.Equal(t, int64(1), a.ID)
		assert.Equal(t, int64(2), b.ID)
	})

	t.Run("save does not alias the caller's value", func(t *testing.T) {
		repo := NewMemoryRepository()
		in := &models.Employee{Name: "Alice"}
		saved, err := repo.Save(ctx, in)
		require.NoError(t, err)

		assert.Zero(t, in.ID)
		saved.Name = "changed"
		got, ok, err := repo.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Alice", got.Name)
	})

	t.Run("save with id overwrites", func(t *testing.T) {
		repo := NewMemoryRepository()
		a, err := repo.Save(ctx, &models.Employee{Name: "Alice", Department: "HR", Salary: 60000})
		require.NoError(t, err)
		_, err = repo.Save(ctx, &models.Employee{ID: a.ID, Name: "Dana", Department: "Finance", Salary: 70000})
		require.NoError(t, err)

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []models.Employee{{ID: a.ID, Name: "Dana", Department: "Finance", Salary: 70000}}, all)
	})

	t.Run("explicit id advances the counter", func(t *testing.T) {
		repo := NewMemoryRepository()
		_, err := repo.Save(ctx, &models.Employee{ID: 10, Name: "Ten"})
		require.NoError(t, err)
		next, err := repo.Save(ctx, &models.Employee{Name: "Next"})
		require.NoError(t, err)
		assert.Equal(t, int64(11), next.ID)
	})

	t.Run("find all is ordered by id", func(t *testing.T) {
		repo := NewMemoryRepository()
		for _, name := range []string{"Alice", "Bob", "Charlie"} {
			_, err := repo.Save(ctx, &models.Employee{Name: name})
			require.NoError(t, err)
		}
		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "Alice", all[0].Name)
		assert.Equal(t, "Charlie", all[2].Name)
	})

	t.Run("delete is idempotent and ids are not reused", func(t *testing.T) {
		repo := NewMemoryRepository()
		a, err := repo.Save(ctx, &models.Employee{Name: "Alice"})
		require.NoError(t, err)

		require.NoError(t, repo.DeleteByID(ctx, a.ID))
		require.NoError(t, repo.DeleteByID(ctx, a.ID))
		_, ok, err := repo.FindByID(ctx, a.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		b, err := repo.Save(ctx, &models.Employee{Name: "Bob"})
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("delete all", func(t *testing.T) {
		repo := NewMemoryRepository()
		_, err := repo.Save(ctx, &models.Employee{Name: "Alice"})
		require.NoError(t, err)
		require.NoError(t, repo.DeleteAll(ctx))
		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("concurrent saves get distinct ids", func(t *testing.T) {
		repo := NewMemoryRepository()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = repo.Save(ctx, &models.Employee{Name: "worker"})
			}()
		}
		wg.Wait()

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 50)
	})
}

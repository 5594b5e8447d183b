package db

import (
	"context"
	"sort"
	"sync"

	"github.com/gartstein/employees/internal/employee/models"
)

// MemoryRepository keeps employees in a map keyed by ID. IDs come from a
// counter that only grows, so deleted IDs are never handed out again.
// The mutex protects the map itself; callers doing read-then-write get no
// atomicity from it.
type MemoryRepository struct {
	mu     sync.RWMutex
	rows   map[int64]models.Employee
	nextID int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{rows: make(map[int64]models.Employee)}
}

func (r *MemoryRepository) Save(_ context.Context, employee *models.Employee) (*models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved := *employee
	if saved.ID == 0 {
		r.nextID++
		saved.ID = r.nextID
	} else if saved.ID > r.nextID {
		r.nextID = saved.ID
	}
	r.rows[saved.ID] = saved
	return &saved, nil
}

func (r *MemoryRepository) FindAll(_ context.Context) ([]models.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	employees := make([]models.Employee, 0, len(r.rows))
	for _, e := range r.rows {
		employees = append(employees, e)
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].ID < employees[j].ID })
	return employees, nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id int64) (models.Employee, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.rows[id]
	return e, ok, nil
}

func (r *MemoryRepository) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.rows, id)
	return nil
}

func (r *MemoryRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows = make(map[int64]models.Employee)
	return nil
}

func (r *MemoryRepository) Close() error {
	return nil
}

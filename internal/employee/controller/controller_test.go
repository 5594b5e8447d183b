package controller

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/gartstein/employees/internal/employee/db"
	"github.com/gartstein/employees/internal/employee/events"
	"github.com/gartstein/employees/internal/employee/models"
	"go.uber.org/zap/zaptest"
)

// MockRepository implements the Repository interface for testing
type MockRepository struct {
	save       func(context.Context, *models.Employee) (*models.Employee, error)
	findAll    func(context.Context) ([]models.Employee, error)
	findByID   func(context.Context, int64) (models.Employee, bool, error)
	deleteByID func(context.Context, int64) error
	saves      int
}

func (m *MockRepository) Save(ctx context.Context, e *models.Employee) (*models.Employee, error) {
	m.saves++
	return m.save(ctx, e)
}

func (m *MockRepository) FindAll(ctx context.Context) ([]models.Employee, error) {
	return m.findAll(ctx)
}

func (m *MockRepository) FindByID(ctx context.Context, id int64) (models.Employee, bool, error) {
	return m.findByID(ctx, id)
}

func (m *MockRepository) DeleteByID(ctx context.Context, id int64) error {
	return m.deleteByID(ctx, id)
}

type producedEvent struct {
	EventType  events.EventType
	EmployeeID int64
	Employee   *models.Employee
}

// MockProducer is a test double for the Kafka producer.
type MockProducer struct {
	mu             sync.Mutex
	producedEvents []producedEvent
	wg             *sync.WaitGroup
}

// Produce records the event and signals the wait group.
func (m *MockProducer) Produce(eventType events.EventType, employeeID int64, employee *models.Employee) {
	m.mu.Lock()
	m.producedEvents = append(m.producedEvents, producedEvent{eventType, employeeID, employee})
	m.mu.Unlock()
	if m.wg != nil {
		m.wg.Done()
	}
}

func newTestService(t *testing.T, repo Repository, producer EventProducer) *EmployeeService {
	return NewEmployeeService(repo, producer, zaptest.NewLogger(t))
}

func TestEmployeeService_AddEmployee(t *testing.T) {
	tests := []struct {
		name        string
		input       *models.Employee
		mockSetup   func(*MockRepository)
		expectError bool
	}{
		{
			name:  "successful creation",
			input: &models.Employee{Name: "Alice", Department: "HR", Salary: 60000},
			mockSetup: func(mr *MockRepository) {
				mr.save = func(_ context.Context, e *models.Employee) (*models.Employee, error) {
					saved := *e
					saved.ID = 1
					return &saved, nil
				}
			},
		},
		{
			name:  "client supplied id is passed to the store",
			input: &models.Employee{ID: 99, Name: "Mallory"},
			mockSetup: func(mr *MockRepository) {
				mr.save = func(_ context.Context, e *models.Employee) (*models.Employee, error) {
					if e.ID != 99 {
						return nil, errors.New("id should have been kept")
					}
					saved := *e
					return &saved, nil
				}
			},
		},
		{
			name:  "empty record is accepted",
			input: &models.Employee{},
			mockSetup: func(mr *MockRepository) {
				mr.save = func(_ context.Context, e *models.Employee) (*models.Employee, error) {
					saved := *e
					saved.ID = 3
					return &saved, nil
				}
			},
		},
		{
			name:  "repository error",
			input: &models.Employee{Name: "Valid"},
			mockSetup: func(mr *MockRepository) {
				mr.save = func(_ context.Context, _ *models.Employee) (*models.Employee, error) {
					return nil, errors.New("database error")
				}
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockRepository{}
			mockProducer := &MockProducer{wg: new(sync.WaitGroup)}
			tt.mockSetup(mockRepo)
			service := newTestService(t, mockRepo, mockProducer)

			// For successful creation, add one waitgroup counter for the async event.
			if !tt.expectError {
				mockProducer.wg.Add(1)
			}

			result, err := service.AddEmployee(context.Background(), tt.input)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				return
			}
			mockProducer.wg.Wait()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.ID == 0 {
				t.Error("expected employee ID to be set")
			}
			if len(mockProducer.producedEvents) != 1 || mockProducer.producedEvents[0].EventType != events.EmployeeCreated {
				t.Error("expected creation event to be produced")
			}
		})
	}
}

func TestEmployeeService_GetEmployeeByID(t *testing.T) {
	alice := models.Employee{ID: 1, Name: "Alice", Department: "HR", Salary: 60000}

	tests := []struct {
		name        string
		input       int64
		mockSetup   func(*MockRepository)
		expectFound bool
		expectError bool
	}{
		{
			name:  "found",
			input: 1,
			mockSetup: func(mr *MockRepository) {
				mr.findByID = func(_ context.Context, _ int64) (models.Employee, bool, error) {
					return alice, true, nil
				}
			},
			expectFound: true,
		},
		{
			name:  "absent is not an error",
			input: 404,
			mockSetup: func(mr *MockRepository) {
				mr.findByID = func(_ context.Context, _ int64) (models.Employee, bool, error) {
					return models.Employee{}, false, nil
				}
			},
		},
		{
			name:  "repository error",
			input: 1,
			mockSetup: func(mr *MockRepository) {
				mr.findByID = func(_ context.Context, _ int64) (models.Employee, bool, error) {
					return models.Employee{}, false, errors.New("connection reset")
				}
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockRepository{}
			tt.mockSetup(mockRepo)
			service := newTestService(t, mockRepo, &MockProducer{})

			got, ok, err := service.GetEmployeeByID(context.Background(), tt.input)
			if tt.expectError {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tt.expectFound {
				t.Fatalf("expected found=%v, got %v", tt.expectFound, ok)
			}
			if ok && got != alice {
				t.Errorf("expected %+v, got %+v", alice, got)
			}
		})
	}
}

func TestEmployeeService_GetAllEmployees(t *testing.T) {
	t.Run("passes through store result", func(t *testing.T) {
		want := []models.Employee{{ID: 1, Name: "Alice"}, {ID: 2, Name: "Bob"}}
		mockRepo := &MockRepository{
			findAll: func(_ context.Context) ([]models.Employee, error) { return want, nil },
		}
		service := newTestService(t, mockRepo, &MockProducer{})

		got, err := service.GetAllEmployees(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 || got[1].Name != "Bob" {
			t.Errorf("unexpected result %+v", got)
		}
	})

	t.Run("repository error", func(t *testing.T) {
		dbErr := errors.New("database error")
		mockRepo := &MockRepository{
			findAll: func(_ context.Context) ([]models.Employee, error) { return nil, dbErr },
		}
		service := newTestService(t, mockRepo, &MockProducer{})

		_, err := service.GetAllEmployees(context.Background())
		if !errors.Is(err, dbErr) {
			t.Errorf("expected wrapped %v, got %v", dbErr, err)
		}
	})
}

func TestEmployeeService_UpdateEmployee(t *testing.T) {
	t.Run("overwrites all fields and keeps id", func(t *testing.T) {
		mockRepo := &MockRepository{
			findByID: func(_ context.Context, id int64) (models.Employee, bool, error) {
				return models.Employee{ID: id, Name: "Alice", Department: "HR", Salary: 60000}, true, nil
			},
			save: func(_ context.Context, e *models.Employee) (*models.Employee, error) {
				saved := *e
				return &saved, nil
			},
		}
		mockProducer := &MockProducer{wg: new(sync.WaitGroup)}
		mockProducer.wg.Add(1)
		service := newTestService(t, mockRepo, mockProducer)

		got, ok, err := service.UpdateEmployee(context.Background(), 1,
			models.Employee{ID: 77, Name: "Dana", Department: "Finance", Salary: 70000})
		mockProducer.wg.Wait()

		if err != nil || !ok {
			t.Fatalf("expected update to succeed, got ok=%v err=%v", ok, err)
		}
		want := models.Employee{ID: 1, Name: "Dana", Department: "Finance", Salary: 70000}
		if got != want {
			t.Errorf("expected %+v, got %+v", want, got)
		}
		if mockProducer.producedEvents[0].EventType != events.EmployeeUpdated {
			t.Error("expected update event to be produced")
		}
	})

	t.Run("zero values are written too", func(t *testing.T) {
		var written models.Employee
		mockRepo := &MockRepository{
			findByID: func(_ context.Context, id int64) (models.Employee, bool, error) {
				return models.Employee{ID: id, Name: "Alice", Department: "HR", Salary: 60000}, true, nil
			},
			save: func(_ context.Context, e *models.Employee) (*models.Employee, error) {
				written = *e
				return e, nil
			},
		}
		mockProducer := &MockProducer{wg: new(sync.WaitGroup)}
		mockProducer.wg.Add(1)
		service := newTestService(t, mockRepo, mockProducer)

		_, _, err := service.UpdateEmployee(context.Background(), 5, models.Employee{Name: "OnlyName"})
		mockProducer.wg.Wait()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if written != (models.Employee{ID: 5, Name: "OnlyName"}) {
			t.Errorf("expected full overwrite, got %+v", written)
		}
	})

	t.Run("absent id performs no write", func(t *testing.T) {
		mockRepo := &MockRepository{
			findByID: func(_ context.Context, _ int64) (models.Employee, bool, error) {
				return models.Employee{}, false, nil
			},
			save: func(_ context.Context, e *models.Employee) (*models.Employee, error) {
				return e, nil
			},
		}
		mockProducer := &MockProducer{}
		service := newTestService(t, mockRepo, mockProducer)

		_, ok, err := service.UpdateEmployee(context.Background(), 9, models.Employee{Name: "Ghost"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("expected ok=false for absent id")
		}
		if mockRepo.saves != 0 {
			t.Errorf("expected no save, got %d", mockRepo.saves)
		}
		if len(mockProducer.producedEvents) != 0 {
			t.Error("expected no event")
		}
	})

	t.Run("save error", func(t *testing.T) {
		mockRepo := &MockRepository{
			findByID: func(_ context.Context, id int64) (models.Employee, bool, error) {
				return models.Employee{ID: id}, true, nil
			},
			save: func(_ context.Context, _ *models.Employee) (*models.Employee, error) {
				return nil, errors.New("database error")
			},
		}
		service := newTestService(t, mockRepo, &MockProducer{})

		if _, _, err := service.UpdateEmployee(context.Background(), 1, models.Employee{}); err == nil {
			t.Fatal("expected error but got none")
		}
	})
}

func TestEmployeeService_DeleteEmployee(t *testing.T) {
	t.Run("success publishes id only", func(t *testing.T) {
		var deleted int64
		mockRepo := &MockRepository{
			deleteByID: func(_ context.Context, id int64) error {
				deleted = id
				return nil
			},
		}
		mockProducer := &MockProducer{wg: new(sync.WaitGroup)}
		mockProducer.wg.Add(1)
		service := newTestService(t, mockRepo, mockProducer)

		if err := service.DeleteEmployee(context.Background(), 4); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		mockProducer.wg.Wait()

		if deleted != 4 {
			t.Errorf("expected id 4 deleted, got %d", deleted)
		}
		ev := mockProducer.producedEvents[0]
		if ev.EventType != events.EmployeeDeleted || ev.EmployeeID != 4 || ev.Employee != nil {
			t.Errorf("unexpected event %+v", ev)
		}
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo := &MockRepository{
			deleteByID: func(_ context.Context, _ int64) error { return errors.New("database error") },
		}
		service := newTestService(t, mockRepo, &MockProducer{})

		if err := service.DeleteEmployee(context.Background(), 1); err == nil {
			t.Fatal("expected error but got none")
		}
	})
}

// TestEmployeeService_Lifecycle runs the service against the in-memory store.
func TestEmployeeService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t, db.NewMemoryRepository(), events.NopProducer{})

	alice, err := service.AddEmployee(ctx, &models.Employee{Name: "Alice", Department: "HR", Salary: 60000})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	bob, err := service.AddEmployee(ctx, &models.Employee{Name: "Bob", Department: "Engineering", Salary: 75000})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if alice.ID == bob.ID {
		t.Fatal("expected distinct ids")
	}

	all, err := service.GetAllEmployees(ctx)
	if err != nil || len(all) != 2 {
		t.Fatalf("expected 2 employees, got %d (err=%v)", len(all), err)
	}

	updated, ok, err := service.UpdateEmployee(ctx, alice.ID, models.Employee{Name: "Dana", Department: "Finance", Salary: 70000})
	if err != nil || !ok {
		t.Fatalf("update: ok=%v err=%v", ok, err)
	}
	if updated != (models.Employee{ID: alice.ID, Name: "Dana", Department: "Finance", Salary: 70000}) {
		t.Errorf("unexpected update result %+v", updated)
	}

	if _, ok, _ := service.UpdateEmployee(ctx, 1000, models.Employee{Name: "Ghost"}); ok {
		t.Error("update of unknown id should report absent")
	}
	if all, _ := service.GetAllEmployees(ctx); len(all) != 2 {
		t.Errorf("update of unknown id must not insert, have %d rows", len(all))
	}

	if err := service.DeleteEmployee(ctx, bob.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := service.DeleteEmployee(ctx, bob.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if _, ok, _ := service.GetEmployeeByID(ctx, bob.ID); ok {
		t.Error("deleted employee should be absent")
	}
}

// TestEmployeeService_AddWithExistingID checks that add with a known ID
// overwrites that record and leaves the caller's struct untouched.
func TestEmployeeService_AddWithExistingID(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t, db.NewMemoryRepository(), events.NopProducer{})

	alice, err := service.AddEmployee(ctx, &models.Employee{Name: "Alice", Department: "HR", Salary: 60000})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	input := &models.Employee{ID: alice.ID, Name: "Zed", Department: "Ops", Salary: 1}
	saved, err := service.AddEmployee(ctx, input)
	if err != nil {
		t.Fatalf("add with id: %v", err)
	}
	if saved.ID != alice.ID {
		t.Errorf("expected id %d, got %d", alice.ID, saved.ID)
	}
	if *input != (models.Employee{ID: alice.ID, Name: "Zed", Department: "Ops", Salary: 1}) {
		t.Errorf("caller's employee was modified: %+v", *input)
	}

	all, err := service.GetAllEmployees(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 1 || all[0].Name != "Zed" {
		t.Errorf("expected record %d overwritten to Zed, got %+v", alice.ID, all)
	}

	fresh := &models.Employee{Name: "Bob"}
	if _, err := service.AddEmployee(ctx, fresh); err != nil {
		t.Fatalf("add: %v", err)
	}
	if fresh.ID != 0 {
		t.Errorf("caller's employee got id %d assigned", fresh.ID)
	}
}

// Package db implements the employee record store: a GORM-backed
// repository for postgres or sqlite, and an in-memory variant.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	dbmodels "github.com/gartstein/employees/internal/employee/db/models"
	"github.com/gartstein/employees/internal/employee/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

var ErrUnsupportedDriver = errors.New("unsupported database driver")

type Repository struct {
	db *gorm.DB
}

type Config struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	// Path is the sqlite database file; ":memory:" is allowed.
	Path string
}

func NewRepository(cfg *Config, logger *zap.Logger) (*Repository, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(
			zap.NewStdLog(logger.Named("gorm")),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Driver == DriverSQLite && (cfg.Path == "" || cfg.Path == ":memory:") {
		// every new connection would open a separate, empty in-memory database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&dbmodels.Employee{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{db: db}, nil
}

func dialectorFor(cfg *Config) (gorm.Dialector, error) {
	switch cfg.Driver {
	case DriverPostgres, "":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
		return postgres.Open(dsn), nil
	case DriverSQLite:
		path := cfg.Path
		if path == "" {
			path = ":memory:"
		}
		return sqlite.Open(path), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// Save inserts the employee when it has no ID yet, otherwise it overwrites
// the row with that ID (inserting it if it is gone).
func (r *Repository) Save(ctx context.Context, employee *models.Employee) (*models.Employee, error) {
	row := dbmodels.FromDomain(employee)
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	saved := row.ToDomain()
	return &saved, nil
}

func (r *Repository) FindAll(ctx context.Context) ([]models.Employee, error) {
	var rows []dbmodels.Employee
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	employees := make([]models.Employee, 0, len(rows))
	for i := range rows {
		employees = append(employees, rows[i].ToDomain())
	}
	return employees, nil
}

// FindByID reports ok=false when no row has the given ID.
func (r *Repository) FindByID(ctx context.Context, id int64) (models.Employee, bool, error) {
	var row dbmodels.Employee
	result := r.db.WithContext(ctx).First(&row, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return models.Employee{}, false, nil
		}
		return models.Employee{}, false, result.Error
	}
	return row.ToDomain(), true, nil
}

// DeleteByID is a no-op for unknown IDs.
func (r *Repository) DeleteByID(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&dbmodels.Employee{}, "id = ?", id).Error
}

// DeleteAll removes every row. The ID sequence is not reset.
func (r *Repository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&dbmodels.Employee{}).Error
}

func (r *Repository) Exec(ctx context.Context, query string, params ...interface{}) error {
	result := r.db.WithContext(ctx).Exec(query, params...)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func (r *Repository) Close() error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

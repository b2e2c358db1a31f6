package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Liamshmuel20/Rant.GO/model"
)

// Store wraps the database and exposes typed queries per entity.
type Store struct {
	db *gorm.DB
}

// OpenStore connects to the database selected by the DSN (postgres://
// URLs open postgres, anything else is a sqlite path) and migrates the
// schema.
func OpenStore(dsn string) (*Store, error) {
	var dialector gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		return nil, err
	}

	slog.Info("store opened", "dialect", db.Dialector.Name())
	return store, nil
}

func (s *Store) migrate() error {
	err := s.db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.RentalRequest{},
		&model.Contract{},
		&model.Payment{},
		&model.Notification{},
		&model.ChatMessage{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Transaction runs fn against a Store bound to one database
// transaction; a returned error rolls everything back. Lifecycle
// transitions use this so a partial failure cannot leave a contract
// without its payment row or a request pointing at nothing.
func (s *Store) Transaction(fn func(tx *Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// one adapts gorm's not-found error to the (nil, nil) convention the
// handlers expect.
func one[T any](out *T, res *gorm.DB) (*T, error) {
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, res.Error
	}
	return out, nil
}

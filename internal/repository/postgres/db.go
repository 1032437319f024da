package postgres

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/andresuchdata/autopo-forecast/internal/config"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"golang.org/x/sync/semaphore"
)

const defaultMaxConcurrentReads = 10

type DB struct {
	*sqlx.DB
	sem *semaphore.Weighted
}

var (
	dbInstance *DB
	once       sync.Once
)

// NewDB creates a new database connection pool
func NewDB(cfg *config.DatabaseConfig) (*DB, error) {
	var err error
	once.Do(func() {
		connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

		var db *sqlx.DB
		db, err = sqlx.Connect("postgres", connStr)
		if err != nil {
			return
		}

		// Configure connection pool
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		dbInstance = Wrap(db, cfg.MaxConcurrentReads)
	})

	return dbInstance, err
}

// Wrap adapts an already opened connection, limiting concurrent reads to maxConcurrent.
func Wrap(db *sqlx.DB, maxConcurrent int) *DB {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrentReads
	}
	return &DB{
		DB:  db,
		sem: semaphore.NewWeighted(int64(maxConcurrent)),
	}
}

// withRead runs fn while holding one read slot. Batch forecasts fan out per SKU,
// so this keeps the ledger queries from exhausting the pool.
func (db *DB) withRead(ctx context.Context, fn func() error) error {
	if err := db.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("could not acquire semaphore: %w", err)
	}
	defer db.sem.Release(1)

	return fn()
}

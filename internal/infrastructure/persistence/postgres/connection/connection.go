package connection

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Sonder9999/Daily-Web/pkg/config"
	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	*gorm.DB
	dsn string
	cfg config.DatabaseConfig
}

func gormConfig(cfg config.DatabaseConfig) *gorm.Config {
	level := logger.Warn
	if cfg.LogQueries {
		level = logger.Info
	}
	return &gorm.Config{
		Logger:      logger.Default.LogMode(level),
		PrepareStmt: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func configurePool(db *gorm.DB, cfg config.DatabaseConfig) (*sql.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying *sql.DB: %w", err)
	}

	maxIdleConns, maxOpenConns, lifetime := 10, 100, time.Hour
	if cfg.MaxIdleConns > 0 {
		maxIdleConns = cfg.MaxIdleConns
	}
	if cfg.MaxOpenConns > 0 {
		maxOpenConns = cfg.MaxOpenConns
	}
	if cfg.ConnMaxLifetime > 0 {
		lifetime = cfg.ConnMaxLifetime
	}

	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetConnMaxLifetime(lifetime)
	return sqlDB, nil
}

// Reconnect attempts to reconnect to the database if the connection is lost
func (db *Database) Reconnect() error {
	newDB, err := gorm.Open(postgres.Open(db.dsn), gormConfig(db.cfg))
	if err != nil {
		return fmt.Errorf("failed to reconnect to database: %w", err)
	}
	if _, err := configurePool(newDB, db.cfg); err != nil {
		return err
	}

	db.DB = newDB
	return nil
}

// Ping checks the pool and reconnects once when the check fails.
func (db *Database) Ping(ctx context.Context) error {
	sqlDB, err := db.DB.DB()
	if err == nil {
		if err = sqlDB.PingContext(ctx); err == nil {
			return nil
		}
	}
	if rerr := db.Reconnect(); rerr != nil {
		return errors.Join(err, rerr)
	}
	sqlDB, err = db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func (db *Database) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func NewDatabase(cfg *config.Config) (*Database, error) {
	dsn := cfg.Database.DSN()

	// First try to establish a basic SQL connection to verify connectivity
	probe, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create sql.DB: %w", err)
	}
	defer probe.Close()

	probe.SetConnMaxLifetime(10 * time.Second)
	if err := probe.Ping(); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return nil, fmt.Errorf("postgres error: code=%s, message=%s, detail=%s", pqErr.Code, pqErr.Message, pqErr.Detail)
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig(cfg.Database))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database with GORM: %w", err)
	}

	sqlDB, err := configurePool(db, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping connection pool: %w", err)
	}

	return &Database{
		DB:  db,
		dsn: dsn,
		cfg: cfg.Database,
	}, nil
}

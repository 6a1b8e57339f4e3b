// Package db поднимает хранилище сервиса заметок: применяет миграции и открывает пул.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gonotes/internal/notes/config"
	"gonotes/pkg/db/postgres"
	"gonotes/pkg/logger"
	"gonotes/pkg/resilience"
)

// Сообщения logger.
const (
	LogDBInitializing    = "initializing notes database"
	LogDBInitialized     = "notes database initialized successfully"
	LogMigrationStarting = "starting notes database migrations"
)

// Контексты ошибок.
const (
	ErrDBMigrations = "failed to apply notes database migrations"
	ErrDBConnection = "failed to connect to notes database"
)

// DB - соединение с базой данных сервиса заметок.
type DB struct {
	database *postgres.Database
}

// New применяет миграции из cfg.MigrationsDir и открывает пул соединений.
func New(ctx context.Context, cfg *config.PostgresConfig) (*DB, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database))

	var database *postgres.Database
	err := resilience.Do(ctx, "connect notes database", cfg.ConnectPolicy(), func(ctx context.Context) error {
		var err error
		database, err = postgres.New(ctx, cfg.GetDSN(), cfg.PoolOptions())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogMigrationStarting, zap.String("migrations_dir", cfg.MigrationsDir))
	if err := postgres.MigrateDSN(ctx, cfg.GetConnectionURL(), cfg.MigrationsDir); err != nil {
		database.Close(ctx)
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	log.Info(ctx, LogDBInitialized)
	return &DB{database: database}, nil
}

// Pool возвращает пул соединений.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping проверяет соединение с базой данных.
func (db *DB) Ping(ctx context.Context) error {
	return db.database.Ping(ctx)
}

// Close закрывает пул.
func (db *DB) Close(ctx context.Context) error {
	db.database.Close(ctx)
	return nil
}

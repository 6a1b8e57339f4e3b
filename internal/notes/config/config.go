// Package config содержит конфигурацию сервиса заметок.
package config

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	pkgconfig "gonotes/pkg/config"
	"gonotes/pkg/logger"
)

const (
	serviceName = "notes"

	// EnvConfigPath - необязательный путь к файлу конфигурации (.env, yaml).
	EnvConfigPath = "NOTES_CONFIG_PATH"

	errLoadConfig = "failed to load notes configuration"
)

// Config - полная конфигурация сервиса заметок.
type Config struct {
	Postgres   PostgresConfig   `yaml:"postgres"`
	HTTP       HTTPConfig       `yaml:"http"`
	Logging    LoggingConfig    `yaml:"logging"`
	Shutdown   ShutdownConfig   `yaml:"shutdown"`
	Session    SessionConfig    `yaml:"session"`
	Validation ValidationConfig `yaml:"validation"`
	Redis      RedisConfig      `yaml:"redis"`
	Debug      DebugConfig      `yaml:"debug"`
}

// Load читает конфигурацию из окружения и файла NOTES_CONFIG_PATH, если он задан.
func Load(ctx context.Context) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, serviceName, os.Getenv(EnvConfigPath))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errLoadConfig, err)
	}

	logger.Log(ctx).Info(ctx, "notes configuration",
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Duration("session_idle_timeout", cfg.Session.IdleTimeout),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.Bool("debug_enabled", cfg.Debug.Enabled))

	return cfg, nil
}

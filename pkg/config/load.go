// Package config загружает конфигурацию сервисов через cleanenv.
package config

import (
	"context"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"gonotes/pkg/logger"
)

const (
	msgLoadingConfiguration = "loading configuration"
	msgConfigurationLoaded  = "configuration loaded"

	errReadConfigFile = "failed to read configuration file"
	errReadEnv        = "failed to read environment"
)

// Load заполняет T из файла path (.env, yaml, toml или json), если он указан,
// и из переменных окружения. Переменные окружения имеют приоритет над файлом.
func Load[T any](ctx context.Context, service, path string) (*T, error) {
	log := logger.Log(ctx).With(zap.String("service", service))
	log.Info(ctx, msgLoadingConfiguration, zap.String("path", path))

	var cfg T
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			log.Error(ctx, errReadConfigFile, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errReadConfigFile, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Error(ctx, errReadEnv, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errReadEnv, err)
	}

	log.Info(ctx, msgConfigurationLoaded)
	return &cfg, nil
}

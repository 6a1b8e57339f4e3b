package config

import (
	"time"

	"gonotes/pkg/db/redis"
)

// RedisConfig настраивает ограничение неудачных попыток входа.
type RedisConfig struct {
	Enabled          bool          `yaml:"enabled" env:"NOTES_REDIS_ENABLED" env-default:"false"`
	Host             string        `yaml:"host" env:"NOTES_REDIS_HOST" env-default:"localhost"`
	Port             int           `yaml:"port" env:"NOTES_REDIS_PORT" env-default:"6379"`
	Password         string        `yaml:"password" env:"NOTES_REDIS_PASSWORD" env-default:""`
	DB               int           `yaml:"db" env:"NOTES_REDIS_DB" env-default:"0"`
	PoolSize         int           `yaml:"pool_size" env:"NOTES_REDIS_POOL_SIZE" env-default:"10"`
	Timeout          time.Duration `yaml:"timeout" env:"NOTES_REDIS_TIMEOUT" env-default:"3s"`
	LoginMaxAttempts int           `yaml:"login_max_attempts" env:"NOTES_REDIS_LOGIN_MAX_ATTEMPTS" env-default:"5"`
	LoginWindow      time.Duration `yaml:"login_window" env:"NOTES_REDIS_LOGIN_WINDOW" env-default:"15m"`
}

// ClientConfig возвращает настройки клиента Redis.
func (c *RedisConfig) ClientConfig() redis.Config {
	return redis.Config{
		Host:     c.Host,
		Port:     c.Port,
		Password: c.Password,
		DB:       c.DB,
		PoolSize: c.PoolSize,
		Timeout:  c.Timeout,
	}
}

package config

import "time"

// SessionConfig задает политику сессий.
type SessionConfig struct {
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"NOTES_SESSION_IDLE_TIMEOUT" env-default:"1h"`
	CookieName  string        `yaml:"cookie_name" env:"NOTES_SESSION_COOKIE" env-default:"JAVASESSIONID"`
	BcryptCost  int           `yaml:"bcrypt_cost" env:"NOTES_SESSION_BCRYPT_COST" env-default:"10"`
}

// ValidationConfig задает ограничения на поля запросов.
type ValidationConfig struct {
	MaxNameLength     int `yaml:"max_name_length" env:"NOTES_MAX_NAME_LENGTH" env-default:"50"`
	MinPasswordLength int `yaml:"min_password_length" env:"NOTES_MIN_PASSWORD_LENGTH" env-default:"8"`
}

// DebugConfig включает служебные эндпоинты /api/debug.
type DebugConfig struct {
	Enabled bool `yaml:"enabled" env:"NOTES_DEBUG_ENABLED" env-default:"false"`
}

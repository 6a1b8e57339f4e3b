// Package services defines service interfaces for the notes service.
package services

import (
	"context"
	"time"
)

// PasswordService определяет операции для манипулирования паролем.
type PasswordService interface {
	Hash(ctx context.Context, password string) (string, error)

	Verify(ctx context.Context, password, hash string) (bool, error)
}

// TokenGenerator выдает непрозрачные токены сессий.
type TokenGenerator interface {
	Generate() string
}

// Clock - источник текущего времени.
type Clock interface {
	Now() time.Time
}

// LoginThrottle ограничивает число неудачных попыток входа по логину.
type LoginThrottle interface {
	Allowed(ctx context.Context, login string) (bool, error)
	Failed(ctx context.Context, login string) error
	Reset(ctx context.Context, login string) error
}

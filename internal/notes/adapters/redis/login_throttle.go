// Package redis ограничивает неудачные попытки входа счетчиками в Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"gonotes/internal/notes/ports/services"
	"gonotes/pkg/logger"
)

// Константы для логирования.
const (
	keyPrefix = "notes:login_failures:"

	ErrorFailedToRead  = "failed to read login failures"
	ErrorFailedToCount = "failed to count login failure"
	ErrorFailedToReset = "failed to reset login failures"
)

// LoginThrottle считает неудачные входы по логину в окне window.
type LoginThrottle struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewLoginThrottle создает ограничитель. После maxAttempts неудач в окне window вход блокируется до истечения окна.
func NewLoginThrottle(client *redis.Client, maxAttempts int, window time.Duration) services.LoginThrottle {
	return &LoginThrottle{client: client, maxAttempts: maxAttempts, window: window}
}

func key(login string) string {
	return keyPrefix + login
}

// Allowed сообщает, можно ли пробовать войти под login.
func (t *LoginThrottle) Allowed(ctx context.Context, login string) (bool, error) {
	n, err := t.client.Get(ctx, key(login)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return true, nil
		}
		logger.Log(ctx).Error(ctx, ErrorFailedToRead, zap.Error(err))
		return false, fmt.Errorf("%s: %w", ErrorFailedToRead, err)
	}

	return n < t.maxAttempts, nil
}

// Failed учитывает неудачную попытку. Окно отсчитывается от первой неудачи.
func (t *LoginThrottle) Failed(ctx context.Context, login string) error {
	log := logger.Log(ctx).With(zap.String("method", "Failed"))

	n, err := t.client.Incr(ctx, key(login)).Result()
	if err != nil {
		log.Error(ctx, ErrorFailedToCount, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToCount, err)
	}
	if n == 1 {
		if err := t.client.Expire(ctx, key(login), t.window).Err(); err != nil {
			log.Error(ctx, ErrorFailedToCount, zap.Error(err))
			return fmt.Errorf("%s: %w", ErrorFailedToCount, err)
		}
	}

	log.Debug(ctx, "login failure counted", zap.Int64("failures", n))
	return nil
}

// Reset сбрасывает счетчик после успешного входа.
func (t *LoginThrottle) Reset(ctx context.Context, login string) error {
	if err := t.client.Del(ctx, key(login)).Err(); err != nil {
		logger.Log(ctx).Error(ctx, ErrorFailedToReset, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToReset, err)
	}
	return nil
}

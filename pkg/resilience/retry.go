// Package resilience содержит повтор операций с экспоненциальной задержкой.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gonotes/pkg/logger"
)

// Policy описывает, сколько раз и с какой паузой повторять операцию.
type Policy struct {
	Attempts   int
	Backoff    time.Duration
	MaxBackoff time.Duration
	Factor     float64
	// Retryable решает, стоит ли повторять после ошибки. nil - повторять всё, кроме отмены контекста.
	Retryable func(error) bool
}

// ErrInterrupted возвращается, если контекст завершился во время паузы.
var ErrInterrupted = errors.New("retry interrupted")

// Сообщения logger.
const (
	LogAttemptFailed = "attempt failed, retrying"
	LogGaveUp        = "giving up after attempts"
	LogRecovered     = "operation recovered"
)

// Do выполняет op, пока она не вернёт nil или не закончатся попытки.
func Do(ctx context.Context, name string, p Policy, op func(context.Context) error) error {
	p = p.normalized()
	log := logger.Log(ctx).With(zap.String("operation", name))

	delay := p.Backoff
	var err error
	for attempt := 1; ; attempt++ {
		if err = op(ctx); err == nil {
			if attempt > 1 {
				log.Info(ctx, LogRecovered, zap.Int("attempts", attempt))
			}
			return nil
		}
		if !p.Retryable(err) {
			return err
		}
		if attempt >= p.Attempts {
			log.Warn(ctx, LogGaveUp, zap.Int("attempts", attempt), zap.Error(err))
			return err
		}

		log.Info(ctx, LogAttemptFailed,
			zap.Int("attempt", attempt),
			zap.Duration("backoff", delay),
			zap.Error(err))

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w: %w", ErrInterrupted, errors.Join(ctx.Err(), err))
		}

		delay = time.Duration(float64(delay) * p.Factor)
		if p.MaxBackoff > 0 && delay > p.MaxBackoff {
			delay = p.MaxBackoff
		}
	}
}

func (p Policy) normalized() Policy {
	if p.Attempts < 1 {
		p.Attempts = 1
	}
	if p.Factor < 1 {
		p.Factor = 1
	}
	if p.Retryable == nil {
		p.Retryable = func(err error) bool {
			return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
		}
	}
	return p
}

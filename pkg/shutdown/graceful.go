// Package shutdown предоставляет корректное завершение приложения
// по сигналам SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"gonotes/pkg/logger"
)

const (
	logShutdownStarted = "shutdown started"
	logHookFailed      = "shutdown hook failed"
	logShutdownTimeout = "shutdown timed out"
)

// Hook - шаг завершения работы.
type Hook func(ctx context.Context) error

// Wait блокируется до сигнала SIGINT/SIGTERM или отмены ctx, затем по очереди
// выполняет hooks в рамках timeout. Порядок важен: сначала останавливается
// прием запросов, затем закрываются хранилища.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) error {
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	return Run(context.WithoutCancel(ctx), timeout, hooks...)
}

// Run выполняет hooks последовательно и возвращает объединенную ошибку.
// После истечения timeout оставшиеся hooks получают отмененный контекст.
func Run(ctx context.Context, timeout time.Duration, hooks ...Hook) error {
	log := logger.Log(ctx)
	log.Info(ctx, logShutdownStarted, zap.Int("hooks", len(hooks)), zap.Duration("timeout", timeout))

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var errs []error
	for i, hook := range hooks {
		if err := hook(runCtx); err != nil {
			log.Error(ctx, logHookFailed, zap.Int("hook", i), zap.Error(err))
			errs = append(errs, err)
		}
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		log.Warn(ctx, logShutdownTimeout)
		errs = append(errs, runCtx.Err())
	}
	return errors.Join(errs...)
}

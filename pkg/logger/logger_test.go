package logger_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gonotes/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	levels := []string{"debug", "info", "warn", "warning", "error", "invalid", ""}

	for _, env := range []logger.Environment{logger.Development, logger.Production} {
		for _, level := range levels {
			t.Run(string(env)+"/level="+level, func(t *testing.T) {
				log, err := logger.NewLogger(env, level)
				require.NoError(t, err)
				require.NotNil(t, log)
			})
		}
	}
}

func TestParseEnvironment(t *testing.T) {
	testCases := []struct {
		mode string
		want logger.Environment
	}{
		{"development", logger.Development},
		{" Development ", logger.Development},
		{"production", logger.Production},
		{"", logger.Production},
		{"staging", logger.Production},
	}

	for _, tc := range testCases {
		t.Run(tc.mode, func(t *testing.T) {
			assert.Equal(t, tc.want, logger.ParseEnvironment(tc.mode))
		})
	}
}

func TestLoggerMethods(t *testing.T) {
	log, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)

	t.Run("With returns a new instance", func(t *testing.T) {
		child := log.With(zap.String("key", "value"), zap.Int("n", 1))
		assert.NotSame(t, log, child)
	})

	t.Run("logging does not panic with and without request id", func(t *testing.T) {
		ctxs := []context.Context{
			context.Background(),
			logger.NewRequestIDContext(context.Background(), "req-1"),
		}
		for _, ctx := range ctxs {
			assert.NotPanics(t, func() {
				log.Debug(ctx, "debug")
				log.Info(ctx, "info", zap.String("k", "v"))
				log.Warn(ctx, "warn")
				log.Error(ctx, "error")
			})
		}
	})

	t.Run("nop logger", func(t *testing.T) {
		assert.NotPanics(t, func() {
			logger.NewNop().Info(context.Background(), "dropped")
		})
	})
}

func TestContext(t *testing.T) {
	t.Run("FromContext returns stored logger", func(t *testing.T) {
		log := logger.NewNop()
		ctx := logger.NewContext(context.Background(), log)

		got, err := logger.FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, log, got)
	})

	t.Run("FromContext without logger", func(t *testing.T) {
		got, err := logger.FromContext(context.Background())
		require.ErrorIs(t, err, logger.ErrLoggerNotFound)
		assert.Nil(t, got)
	})

	t.Run("Log prefers context logger", func(t *testing.T) {
		log := logger.NewNop()
		ctx := logger.NewContext(context.Background(), log)
		assert.Same(t, log, logger.Log(ctx))
	})

	t.Run("Log falls back to global logger", func(t *testing.T) {
		global := logger.NewNop()
		logger.SetGlobalLogger(global)
		t.Cleanup(func() { logger.SetGlobalLogger(nil) })

		assert.Same(t, global, logger.Log(context.Background()))
	})

	t.Run("Log never returns nil", func(t *testing.T) {
		logger.SetGlobalLogger(nil)
		assert.NotNil(t, logger.Log(context.Background()))
	})

	t.Run("InitGlobalLoggerWithLevel keeps the first logger", func(t *testing.T) {
		logger.SetGlobalLogger(nil)
		t.Cleanup(func() { logger.SetGlobalLogger(nil) })

		require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Production, "error"))
		first := logger.Log(context.Background())

		require.NoError(t, logger.InitGlobalLogger(logger.Development))
		assert.Same(t, first, logger.Log(context.Background()))
	})
}

func TestRequestID(t *testing.T) {
	t.Run("keeps explicit id", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "abc")
		id, ok := logger.GetRequestID(ctx)
		assert.True(t, ok)
		assert.Equal(t, "abc", id)
	})

	t.Run("generates uuid when empty", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")
		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})

	t.Run("absent id", func(t *testing.T) {
		_, ok := logger.GetRequestID(context.Background())
		assert.False(t, ok)
	})

	t.Run("WithRequestID", func(t *testing.T) {
		log := logger.NewNop()
		assert.Same(t, log, log.WithRequestID(context.Background()))

		ctx := logger.NewRequestIDContext(context.Background(), "abc")
		assert.NotSame(t, log, log.WithRequestID(ctx))
	})
}

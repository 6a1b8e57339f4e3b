// Package main реализует точку входа службы заметок.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	notehttp "gonotes/internal/notes/adapters/http"
	"gonotes/internal/notes/adapters/http/handlers"
	"gonotes/internal/notes/adapters/http/validation"
	"gonotes/internal/notes/adapters/postgres"
	noteredis "gonotes/internal/notes/adapters/redis"
	"gonotes/internal/notes/adapters/services"
	"gonotes/internal/notes/app"
	"gonotes/internal/notes/config"
	"gonotes/internal/notes/db"
	ports "gonotes/internal/notes/ports/services"
	"gonotes/pkg/db/redis"
	"gonotes/pkg/logger"
	"gonotes/pkg/metrics"
	"gonotes/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "NOTES_LOGGER_MODE"
	EnvLoggerLevel = "NOTES_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrInitRedis            = "failed to connect to redis"
	ErrStartHTTP            = "failed to start HTTP server"
	ErrShutdown             = "shutdown finished with errors"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "note service started"
	LogServiceShutdownDone = "note service shutdown complete"
	LogClosingDB           = "closing database connections"
	LogClosingRedis        = "closing redis connection"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitRepo            = "initializing repositories"
	LogInitServices        = "initializing services"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogThrottleDisabled    = "redis disabled, login throttle is off"
	LogDebugEnabled        = "debug endpoints enabled"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		database, err := db.New(ctx, &cfg.Postgres)
		if err != nil {
			log.Error(ctx, ErrInitDB, zap.Error(err))
			exitCode = 1
			return
		}

		var (
			redisClient *redis.Client
			throttle    ports.LoginThrottle
		)
		if cfg.Redis.Enabled {
			redisClient, err = redis.NewClient(ctx, cfg.Redis.ClientConfig())
			if err != nil {
				log.Error(ctx, ErrInitRedis, zap.Error(err))
				_ = database.Close(ctx)
				exitCode = 1
				return
			}
			throttle = noteredis.NewLoginThrottle(redisClient.RawClient(), cfg.Redis.LoginMaxAttempts, cfg.Redis.LoginWindow)
		} else {
			log.Info(ctx, LogThrottleDisabled)
		}

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitRepo)
		repoFactory := postgres.NewRepositoryFactory(database.Pool())
		users := repoFactory.UserRepository()
		sessions := repoFactory.SessionRepository()
		notes := repoFactory.NoteRepository()
		tx := repoFactory.Transactor()

		log.Info(ctx, LogInitServices)
		serviceFactory := services.NewServiceFactory(cfg.Session.BcryptCost, throttle)
		clock := serviceFactory.Clock()

		log.Info(ctx, LogInitUseCases)
		sessionUseCase := app.NewSessionUseCase(users, sessions, serviceFactory.PasswordService(),
			serviceFactory.TokenGenerator(), serviceFactory.LoginThrottle(), clock, cfg.Session.IdleTimeout)
		userUseCase := app.NewUserUseCase(users, sessions, sessionUseCase, serviceFactory.PasswordService(), tx, clock)
		chain := app.NewRevisionChain(notes, repoFactory.RevisionRepository(), repoFactory.CommentRepository(), tx, clock)
		engine := app.NewNoteQueryEngine(notes, app.NewVisibilityResolver(repoFactory.RelationRepository()), chain)
		noteUseCase := app.NewNoteUseCase(notes, repoFactory.CommentRepository(), tx, chain, engine, app.NewRatingAggregator(notes))

		svc := handlers.Services{
			Sessions:  sessionUseCase,
			Accounts:  userUseCase,
			Relations: app.NewRelationUseCase(users, repoFactory.RelationRepository()),
			Sections:  app.NewSectionUseCase(repoFactory.SectionRepository()),
			Notes:     noteUseCase,
			Health:    database,
		}
		if cfg.Debug.Enabled {
			log.Warn(ctx, LogDebugEnabled)
			svc.Debug = app.NewDebugUseCase(repoFactory.MaintenanceRepository(), userUseCase, app.Settings{
				MaxNameLength:     cfg.Validation.MaxNameLength,
				MinPasswordLength: cfg.Validation.MinPasswordLength,
				UserIdleTimeout:   cfg.Session.IdleTimeout,
			})
		}

		log.Info(ctx, LogInitHTTPServer)
		httpApp := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
			IdleTimeout:  cfg.HTTP.IdleTimeout,
			ErrorHandler: notehttp.ErrorHandler,
		})

		validator := validation.New(validation.Limits{
			MaxNameLength:     cfg.Validation.MaxNameLength,
			MinPasswordLength: cfg.Validation.MinPasswordLength,
		})
		notehttp.SetupRouter(httpApp, handlers.NewHandler(svc, validator, cfg.Session.CookieName), notehttp.RouterConfig{
			APIPrefix:    cfg.HTTP.APIPrefix,
			CookieName:   cfg.Session.CookieName,
			DebugEnabled: cfg.Debug.Enabled,
			Logger:       log,
			Metrics:      metrics.New("notes"),
			Auth:         sessionUseCase,
		})

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := httpApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTP, zap.Error(err))
			}
		}()

		err = shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return httpApp.ShutdownWithContext(ctx)
			},
			func(ctx context.Context) error {
				if redisClient == nil {
					return nil
				}
				log.Info(ctx, LogClosingRedis)
				return redisClient.Close(ctx)
			},
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingDB)
				return database.Close(ctx)
			},
		)
		if err != nil {
			log.Error(ctx, ErrShutdown, zap.Error(err))
		}

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// Package app implements application business logic for the notes service.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gonotes/internal/notes/domain/apperr"
	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/ports/repositories"
	"gonotes/internal/notes/ports/services"
	"gonotes/pkg/logger"
)

const (
	methodAuthenticate = "Authenticate"
	methodLogin        = "Login"
	methodLogout       = "Logout"

	msgSessionExpired   = "session idle timeout exceeded"
	msgLoginThrottled   = "login attempts exhausted"
	msgLoginRejected    = "login and password do not match"
	msgUserLoggedIn     = "user logged in successfully"
	msgUserLoggedOut    = "user logged out successfully"
	msgThrottleDegraded = "login throttle unavailable"

	errCtxFindingSession    = "finding session"
	errCtxFindingUser       = "finding user"
	errCtxTouchingSession   = "touching session"
	errCtxVerifyingPassword = "verifying password"
	errCtxStoringSession    = "storing session"
	errCtxDeletingSession   = "deleting session"
)

// SessionUseCase проверяет сессии и выполняет вход и выход.
type SessionUseCase struct {
	users     repositories.UserRepository
	sessions  repositories.SessionRepository
	passwords services.PasswordService
	tokens    services.TokenGenerator
	throttle  services.LoginThrottle
	clock     services.Clock
	idle      time.Duration
}

// NewSessionUseCase создает сервис сессий. idle - допустимый простой сессии.
func NewSessionUseCase(
	users repositories.UserRepository,
	sessions repositories.SessionRepository,
	passwords services.PasswordService,
	tokens services.TokenGenerator,
	throttle services.LoginThrottle,
	clock services.Clock,
	idle time.Duration,
) *SessionUseCase {
	return &SessionUseCase{
		users:     users,
		sessions:  sessions,
		passwords: passwords,
		tokens:    tokens,
		throttle:  throttle,
		clock:     clock,
		idle:      idle,
	}
}

// Authenticate возвращает владельца токена. Просроченная сессия не удаляется,
// успешная проверка продлевает ее.
func (uc *SessionUseCase) Authenticate(ctx context.Context, token string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodAuthenticate))

	if token == "" {
		return nil, apperr.ErrSessionNotFound
	}

	session, err := uc.sessions.FindByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingSession, err)
	}

	now := uc.clock.Now()
	if session.Expired(now, uc.idle) {
		log.Info(ctx, msgSessionExpired, zap.Int64("userID", session.UserID))
		return nil, apperr.ErrSessionExpired
	}

	user, err := uc.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	if err := uc.sessions.Touch(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxTouchingSession, err)
	}

	return user, nil
}

// openSession выдает новый токен, заменяя прежнюю сессию пользователя.
func (uc *SessionUseCase) openSession(ctx context.Context, userID int64) (string, error) {
	token := uc.tokens.Generate()
	err := uc.sessions.Upsert(ctx, &entities.Session{Token: token, UserID: userID, LastActivity: uc.clock.Now()})
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtxStoringSession, err)
	}
	return token, nil
}

// Login проверяет логин и пароль и открывает сессию.
func (uc *SessionUseCase) Login(ctx context.Context, login, password string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("login", login))

	allowed, err := uc.throttle.Allowed(ctx, login)
	if err != nil {
		log.Warn(ctx, msgThrottleDegraded, zap.Error(err))
		allowed = true
	}
	if !allowed {
		log.Info(ctx, msgLoginThrottled)
		return "", apperr.ErrTooManyLoginAttempts
	}

	user, err := uc.users.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, apperr.ErrLoginNotFound) {
			return "", uc.reject(ctx, login)
		}
		return "", fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	ok, err := uc.passwords.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !ok {
		return "", uc.reject(ctx, login)
	}

	if err := uc.throttle.Reset(ctx, login); err != nil {
		log.Warn(ctx, msgThrottleDegraded, zap.Error(err))
	}

	token, err := uc.openSession(ctx, user.ID)
	if err != nil {
		return "", err
	}

	log.Info(ctx, msgUserLoggedIn, zap.Int64("userID", user.ID))
	return token, nil
}

func (uc *SessionUseCase) reject(ctx context.Context, login string) error {
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("login", login))
	log.Info(ctx, msgLoginRejected)
	if err := uc.throttle.Failed(ctx, login); err != nil {
		log.Warn(ctx, msgThrottleDegraded, zap.Error(err))
	}
	return apperr.ErrLoginAndPasswordNotFound
}

// Logout закрывает сессию пользователя.
func (uc *SessionUseCase) Logout(ctx context.Context, actor *entities.User) error {
	if err := uc.sessions.DeleteByUser(ctx, actor.ID); err != nil {
		return fmt.Errorf("%s: %w", errCtxDeletingSession, err)
	}
	logger.Log(ctx).Info(ctx, msgUserLoggedOut, zap.String("method", methodLogout), zap.Int64("userID", actor.ID))
	return nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gonotes/internal/notes/domain/apperr"
	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/ports/repositories"
	"gonotes/pkg/logger"
)

// SessionRepository реализует repositories.SessionRepository.
type SessionRepository struct {
	pool PgxPoolInterface
}

// NewSessionRepository создает репозиторий сессий.
func NewSessionRepository(pool PgxPoolInterface) repositories.SessionRepository {
	return &SessionRepository{pool: pool}
}

// Upsert сохраняет сессию, заменяя прежнюю сессию пользователя.
func (r *SessionRepository) Upsert(ctx context.Context, session *entities.Session) error {
	log := logger.Log(ctx).With(zap.String("repository", "session"), zap.String("method", "Upsert"))
	log.Debug(ctx, "storing session", zap.Int64("userID", session.UserID))

	_, err := conn(ctx, r.pool).Exec(ctx,
		`INSERT INTO sessions (token, user_id, last_activity) VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET token = EXCLUDED.token, last_activity = EXCLUDED.last_activity`,
		session.Token, session.UserID, session.LastActivity,
	)
	if err != nil {
		log.Error(ctx, "failed to store session", zap.Error(err))
		return fmt.Errorf("failed to store session: %w", err)
	}

	return nil
}

// FindByToken находит сессию по токену.
func (r *SessionRepository) FindByToken(ctx context.Context, token string) (*entities.Session, error) {
	log := logger.Log(ctx).With(zap.String("repository", "session"), zap.String("method", "FindByToken"))

	var s entities.Session
	err := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT token, user_id, last_activity FROM sessions WHERE token = $1`,
		token,
	).Scan(&s.Token, &s.UserID, &s.LastActivity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "session not found")
			return nil, apperr.ErrSessionNotFound
		}
		log.Error(ctx, "failed to find session", zap.Error(err))
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	return &s, nil
}

// Touch обновляет время последней активности.
func (r *SessionRepository) Touch(ctx context.Context, userID int64, at time.Time) error {
	_, err := conn(ctx, r.pool).Exec(ctx,
		`UPDATE sessions SET last_activity = $2 WHERE user_id = $1`,
		userID, at,
	)
	if err != nil {
		logger.Log(ctx).Error(ctx, "failed to touch session", zap.Int64("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to touch session: %w", err)
	}

	return nil
}

// DeleteByUser удаляет сессию пользователя.
func (r *SessionRepository) DeleteByUser(ctx context.Context, userID int64) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	if err != nil {
		logger.Log(ctx).Error(ctx, "failed to delete session", zap.Int64("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

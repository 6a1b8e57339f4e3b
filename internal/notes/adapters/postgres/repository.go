// Package postgres provides PostgreSQL implementations of repositories.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"gonotes/internal/notes/ports/repositories"
	"gonotes/pkg/logger"
)

// PgxPoolInterface - часть pgxpool.Pool, используемая репозиториями.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

type querier interface {
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
}

type txKey struct{}

// conn возвращает транзакцию из контекста, если она открыта, иначе пул.
func conn(ctx context.Context, pool PgxPoolInterface) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return pool
}

// Контексты ошибок транзакций.
const (
	errBeginTx    = "failed to begin transaction"
	errCommitTx   = "failed to commit transaction"
	errRollbackTx = "failed to rollback transaction"
)

// Transactor реализует repositories.Transactor поверх пула pgx.
type Transactor struct {
	pool PgxPoolInterface
}

// NewTransactor создает Transactor.
func NewTransactor(pool PgxPoolInterface) *Transactor {
	return &Transactor{pool: pool}
}

// WithinTx выполняет fn в транзакции. Вложенный вызов использует уже открытую транзакцию.
func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", errBeginTx, err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			logger.Log(ctx).Error(ctx, errRollbackTx, zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", errCommitTx, err)
	}
	return nil
}

// Коды ошибок PostgreSQL.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isViolation(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// RepositoryFactory создает репозитории для работы с базой данных.
type RepositoryFactory struct {
	pool PgxPoolInterface
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{pool: pool}
}

// Transactor возвращает исполнитель транзакций.
func (f *RepositoryFactory) Transactor() repositories.Transactor {
	return NewTransactor(f.pool)
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return NewUserRepository(f.pool)
}

// SessionRepository возвращает репозиторий сессий.
func (f *RepositoryFactory) SessionRepository() repositories.SessionRepository {
	return NewSessionRepository(f.pool)
}

// RelationRepository возвращает репозиторий подписок и игнора.
func (f *RepositoryFactory) RelationRepository() repositories.RelationRepository {
	return NewRelationRepository(f.pool)
}

// SectionRepository возвращает репозиторий разделов.
func (f *RepositoryFactory) SectionRepository() repositories.SectionRepository {
	return NewSectionRepository(f.pool)
}

// NoteRepository возвращает репозиторий для работы с заметками.
func (f *RepositoryFactory) NoteRepository() repositories.NoteRepository {
	return NewNoteRepository(f.pool)
}

// RevisionRepository возвращает репозиторий ревизий.
func (f *RepositoryFactory) RevisionRepository() repositories.RevisionRepository {
	return NewRevisionRepository(f.pool)
}

// CommentRepository возвращает репозиторий комментариев.
func (f *RepositoryFactory) CommentRepository() repositories.CommentRepository {
	return NewCommentRepository(f.pool)
}

// MaintenanceRepository возвращает репозиторий служебных операций.
func (f *RepositoryFactory) MaintenanceRepository() repositories.MaintenanceRepository {
	return NewMaintenanceRepository(f.pool)
}

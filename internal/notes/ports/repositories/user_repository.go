package repositories

import (
	"context"
	"time"

	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/domain/query"
)

// Transactor выполняет fn в одной транзакции. Репозитории, вызванные с ctx
// внутри fn, работают в этой транзакции.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository определяет интерфейс для работы с пользователями.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (int64, error)
	FindByID(ctx context.Context, userID int64) (*entities.User, error)
	// FindByLogin ищет только среди неудаленных пользователей.
	FindByLogin(ctx context.Context, login string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	MarkDeleted(ctx context.Context, userID int64) error
	SetType(ctx context.Context, userID int64, userType entities.UserType) error
	List(ctx context.Context, q query.UserQuery) ([]entities.UserSummary, error)
}

// SessionRepository хранит не больше одной сессии на пользователя.
type SessionRepository interface {
	// Upsert заменяет прежнюю сессию пользователя.
	Upsert(ctx context.Context, session *entities.Session) error
	FindByToken(ctx context.Context, token string) (*entities.Session, error)
	Touch(ctx context.Context, userID int64, at time.Time) error
	DeleteByUser(ctx context.Context, userID int64) error
}

// RelationRepository хранит подписки и игнор. Для упорядоченной пары хранится одна связь.
type RelationRepository interface {
	// Put атомарно заменяет связь пары на kind.
	Put(ctx context.Context, userID, targetID int64, kind entities.RelationKind) error
	Remove(ctx context.Context, userID, targetID int64, kind entities.RelationKind) error
	TargetIDs(ctx context.Context, userID int64, kind entities.RelationKind) ([]int64, error)
}

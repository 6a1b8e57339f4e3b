package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gonotes/internal/notes/domain/apperr"
	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/domain/query"
	"gonotes/internal/notes/ports/repositories"
	"gonotes/pkg/logger"
)

// UserRepository реализует интерфейс repositories.UserRepository для работы с Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = "id, first_name, last_name, COALESCE(patronymic, ''), login, password_hash, user_type, deleted, registered_at"

func scanUser(row pgx.Row) (*entities.User, error) {
	var (
		user     entities.User
		userType string
	)
	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Patronymic,
		&user.Login,
		&user.PasswordHash,
		&userType,
		&user.Deleted,
		&user.RegisteredAt,
	)
	if err != nil {
		return nil, err
	}
	user.Type = entities.UserType(userType)
	return &user, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Create создает нового пользователя. Занятый логин дает LOGIN_ALREADY_BUSY.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (int64, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))
	log.Debug(ctx, "creating user", zap.String("login", user.Login))

	var userID int64
	err := conn(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO users (first_name, last_name, patronymic, login, password_hash, user_type, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		user.FirstName, user.LastName, nullable(user.Patronymic), user.Login, user.PasswordHash,
		string(user.Type), user.RegisteredAt,
	).Scan(&userID)
	if err != nil {
		if isViolation(err, pgUniqueViolation) {
			log.Debug(ctx, "login already busy", zap.String("login", user.Login))
			return 0, apperr.ErrLoginAlreadyBusy
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return userID, nil
}

// FindByID находит пользователя по ID, включая удаленных.
func (r *UserRepository) FindByID(ctx context.Context, userID int64) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByID"))

	user, err := scanUser(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.Int64("id", userID))
			return nil, apperr.ErrUserIDNotFound
		}
		log.Error(ctx, "error finding user by id", zap.Error(err))
		return nil, fmt.Errorf("error querying user by id: %w", err)
	}

	return user, nil
}

// FindByLogin находит неудаленного пользователя по логину.
func (r *UserRepository) FindByLogin(ctx context.Context, login string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByLogin"))

	user, err := scanUser(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE login = $1 AND NOT deleted`, login))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("login", login))
			return nil, apperr.ErrLoginNotFound
		}
		log.Error(ctx, "error finding user by login", zap.Error(err))
		return nil, fmt.Errorf("error querying user by login: %w", err)
	}

	return user, nil
}

// Update обновляет ФИО и хэш пароля.
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Update"))

	result, err := conn(ctx, r.pool).Exec(ctx,
		`UPDATE users SET first_name = $2, last_name = $3, patronymic = $4, password_hash = $5 WHERE id = $1`,
		user.ID, user.FirstName, user.LastName, nullable(user.Patronymic), user.PasswordHash,
	)
	if err != nil {
		log.Error(ctx, "error updating user", zap.Error(err))
		return fmt.Errorf("error updating user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.ErrUserIDNotFound
	}

	return nil
}

// MarkDeleted логически удаляет пользователя.
func (r *UserRepository) MarkDeleted(ctx context.Context, userID int64) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "MarkDeleted"))

	result, err := conn(ctx, r.pool).Exec(ctx, `UPDATE users SET deleted = TRUE WHERE id = $1`, userID)
	if err != nil {
		log.Error(ctx, "error deleting user", zap.Error(err))
		return fmt.Errorf("error deleting user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.ErrUserIDNotFound
	}

	return nil
}

// SetType меняет уровень привилегий.
func (r *UserRepository) SetType(ctx context.Context, userID int64, userType entities.UserType) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "SetType"))

	result, err := conn(ctx, r.pool).Exec(ctx, `UPDATE users SET user_type = $2 WHERE id = $1`, userID, string(userType))
	if err != nil {
		log.Error(ctx, "error changing user type", zap.Error(err))
		return fmt.Errorf("error changing user type: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.ErrUserIDNotFound
	}

	return nil
}

// userSummarySelect считает для каждого пользователя признак онлайн и средний рейтинг заметок.
const userSummarySelect = "WITH summary AS (" +
	"SELECT u.id, u.first_name, u.last_name, COALESCE(u.patronymic, '') AS patronymic, u.login, " +
	"u.user_type, u.deleted, u.registered_at, " +
	"EXISTS (SELECT 1 FROM sessions s WHERE s.user_id = u.id) AS online, " +
	"COALESCE((SELECT AVG(n.rating) FROM notes n WHERE n.author_id = u.id), 0) AS rating " +
	"FROM users u" +
	") SELECT id, first_name, last_name, patronymic, login, user_type, deleted, registered_at, online, rating FROM summary"

// compileUserQuery строит запрос списка пользователей.
func compileUserQuery(q query.UserQuery) (string, []any) {
	a := &argList{}

	var where string
	relation := func(column, other string, kind entities.RelationKind) string {
		return "id IN (SELECT " + column + " FROM user_relations WHERE " + other + " = " +
			a.add(q.ViewerID) + " AND kind = " + a.add(string(kind)) + ")"
	}

	switch q.Kind {
	case query.UsersHighRating:
		where = "rating > 0 AND rating = (SELECT MAX(rating) FROM summary WHERE rating > 0)"
	case query.UsersLowRating:
		where = "rating > 0 AND rating = (SELECT MIN(rating) FROM summary WHERE rating > 0)"
	case query.UsersFollowings:
		where = relation("target_id", "user_id", entities.RelationFollow)
	case query.UsersFollowers:
		where = relation("user_id", "target_id", entities.RelationFollow)
	case query.UsersIgnore:
		where = relation("target_id", "user_id", entities.RelationIgnore)
	case query.UsersIgnoredBy:
		where = relation("user_id", "target_id", entities.RelationIgnore)
	case query.UsersDeleted:
		where = "deleted"
	case query.UsersSuper:
		where = "user_type = " + a.add(string(entities.UserTypeAdmin))
	}

	var sb strings.Builder
	sb.WriteString(userSummarySelect)
	if where != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(where)
	}

	sb.WriteString(" ORDER BY ")
	switch q.Sort {
	case query.SortAsc:
		sb.WriteString("rating ASC, id")
	case query.SortDesc:
		sb.WriteString("rating DESC, id")
	default:
		sb.WriteString("id")
	}

	sb.WriteString(" OFFSET ")
	sb.WriteString(a.add(q.Page.From))
	if q.Page.Count != nil {
		sb.WriteString(" LIMIT ")
		sb.WriteString(a.add(*q.Page.Count))
	}

	return sb.String(), a.args
}

// List возвращает строки списка пользователей.
func (r *UserRepository) List(ctx context.Context, q query.UserQuery) ([]entities.UserSummary, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "List"))

	sql, args := compileUserQuery(q)
	rows, err := conn(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		log.Error(ctx, "error listing users", zap.Error(err))
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	users := make([]entities.UserSummary, 0)
	for rows.Next() {
		var (
			u        entities.UserSummary
			userType string
		)
		err := rows.Scan(
			&u.ID,
			&u.FirstName,
			&u.LastName,
			&u.Patronymic,
			&u.Login,
			&userType,
			&u.Deleted,
			&u.RegisteredAt,
			&u.Online,
			&u.Rating,
		)
		if err != nil {
			log.Error(ctx, "error scanning user", zap.Error(err))
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		u.Type = entities.UserType(userType)
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return users, nil
}

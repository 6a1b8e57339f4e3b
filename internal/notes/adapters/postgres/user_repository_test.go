package postgres_test

import (
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonotes/internal/notes/adapters/postgres"
	"gonotes/internal/notes/domain/apperr"
	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/domain/query"
)

var userRowColumns = []string{
	"id", "first_name", "last_name", "patronymic", "login", "password_hash", "user_type", "deleted", "registered_at",
}

func TestUserRepository_Create(t *testing.T) {
	ctx := testContext()
	user := &entities.User{
		FirstName: "Ivan", LastName: "Petrov", Login: "ivan", PasswordHash: "hash",
		Type: entities.UserTypeUser, RegisteredAt: testTime,
	}

	t.Run("empty patronymic stored as null", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("Ivan", "Petrov", (*string)(nil), "ivan", "hash", "user", testTime).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))

		id, err := postgres.NewUserRepository(mock).Create(ctx, user)

		require.NoError(t, err)
		assert.Equal(t, int64(1), id)
	})

	t.Run("login busy", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("Ivan", "Petrov", (*string)(nil), "ivan", "hash", "user", testTime).
			WillReturnError(uniqueViolation)

		_, err := postgres.NewUserRepository(mock).Create(ctx, user)

		require.ErrorIs(t, err, apperr.ErrLoginAlreadyBusy)
	})
}

func TestUserRepository_Find(t *testing.T) {
	ctx := testContext()

	t.Run("by login skips deleted", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE login = $1 AND NOT deleted")).
			WithArgs("ivan").
			WillReturnRows(pgxmock.NewRows(userRowColumns).
				AddRow(int64(1), "Ivan", "Petrov", "", "ivan", "hash", "admin", false, testTime))

		user, err := postgres.NewUserRepository(mock).FindByLogin(ctx, "ivan")

		require.NoError(t, err)
		assert.True(t, user.IsAdmin())
	})

	t.Run("unknown login", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE login = $1")).WithArgs("ghost").WillReturnError(pgx.ErrNoRows)

		_, err := postgres.NewUserRepository(mock).FindByLogin(ctx, "ghost")

		require.ErrorIs(t, err, apperr.ErrLoginNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).WithArgs(int64(9)).WillReturnError(pgx.ErrNoRows)

		_, err := postgres.NewUserRepository(mock).FindByID(ctx, 9)

		require.ErrorIs(t, err, apperr.ErrUserIDNotFound)
	})
}

func TestUserRepository_Mutations(t *testing.T) {
	ctx := testContext()

	t.Run("update", func(t *testing.T) {
		mock := newMock(t)
		patronymic := "Ivanovich"
		mock.ExpectExec("UPDATE users SET first_name").
			WithArgs(int64(1), "Ivan", "Petrov", &patronymic, "new-hash").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := postgres.NewUserRepository(mock).Update(ctx, &entities.User{
			ID: 1, FirstName: "Ivan", LastName: "Petrov", Patronymic: patronymic, PasswordHash: "new-hash",
		})

		require.NoError(t, err)
	})

	t.Run("mark deleted", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET deleted = TRUE WHERE id = $1")).
			WithArgs(int64(1)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, postgres.NewUserRepository(mock).MarkDeleted(ctx, 1))
	})

	t.Run("set type of missing user", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET user_type = $2 WHERE id = $1")).
			WithArgs(int64(5), "admin").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := postgres.NewUserRepository(mock).SetType(ctx, 5, entities.UserTypeAdmin)

		require.ErrorIs(t, err, apperr.ErrUserIDNotFound)
	})
}

func TestUserRepository_List(t *testing.T) {
	ctx := testContext()
	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id IN (SELECT target_id FROM user_relations WHERE user_id = $1 AND kind = $2)")).
		WithArgs(int64(1), "follow", 0).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "first_name", "last_name", "patronymic", "login", "user_type", "deleted", "registered_at", "online", "rating",
		}).AddRow(int64(2), "Anna", "Smirnova", "", "anna", "user", false, testTime, true, 3.25))

	users, err := postgres.NewUserRepository(mock).List(ctx, query.UserQuery{Kind: query.UsersFollowings, ViewerID: 1})

	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.True(t, users[0].Online)
	assert.Equal(t, entities.UserTypeUser, users[0].Type)
	assert.InDelta(t, 3.25, users[0].Rating, 1e-9)
}

func TestSessionRepository(t *testing.T) {
	ctx := testContext()

	t.Run("upsert replaces previous session", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (user_id) DO UPDATE SET token = EXCLUDED.token")).
			WithArgs("t2", int64(1), testTime).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := postgres.NewSessionRepository(mock).Upsert(ctx, &entities.Session{Token: "t2", UserID: 1, LastActivity: testTime})

		require.NoError(t, err)
	})

	t.Run("find by token", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM sessions WHERE token = $1")).
			WithArgs("t2").
			WillReturnRows(pgxmock.NewRows([]string{"token", "user_id", "last_activity"}).AddRow("t2", int64(1), testTime))

		s, err := postgres.NewSessionRepository(mock).FindByToken(ctx, "t2")

		require.NoError(t, err)
		assert.Equal(t, &entities.Session{Token: "t2", UserID: 1, LastActivity: testTime}, s)
	})

	t.Run("unknown token", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM sessions WHERE token = $1")).WithArgs("gone").WillReturnError(pgx.ErrNoRows)

		_, err := postgres.NewSessionRepository(mock).FindByToken(ctx, "gone")

		require.ErrorIs(t, err, apperr.ErrSessionNotFound)
	})

	t.Run("touch and delete", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE sessions SET last_activity = $2 WHERE user_id = $1")).
			WithArgs(int64(1), testTime).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sessions WHERE user_id = $1")).
			WithArgs(int64(1)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		repo := postgres.NewSessionRepository(mock)
		require.NoError(t, repo.Touch(ctx, 1, testTime))
		require.NoError(t, repo.DeleteByUser(ctx, 1))
	})
}

func TestRelationRepository(t *testing.T) {
	ctx := testContext()

	t.Run("put overwrites the pair", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (user_id, target_id) DO UPDATE SET kind = EXCLUDED.kind")).
			WithArgs(int64(1), int64(2), "follow").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, postgres.NewRelationRepository(mock).Put(ctx, 1, 2, entities.RelationFollow))
	})

	t.Run("remove only matching kind", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM user_relations WHERE user_id = $1 AND target_id = $2 AND kind = $3")).
			WithArgs(int64(1), int64(2), "ignore").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		require.NoError(t, postgres.NewRelationRepository(mock).Remove(ctx, 1, 2, entities.RelationIgnore))
	})

	t.Run("target ids", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT target_id FROM user_relations").
			WithArgs(int64(1), "ignore").
			WillReturnRows(pgxmock.NewRows([]string{"target_id"}).AddRow(int64(3)).AddRow(int64(4)))

		ids, err := postgres.NewRelationRepository(mock).TargetIDs(ctx, 1, entities.RelationIgnore)

		require.NoError(t, err)
		assert.Equal(t, []int64{3, 4}, ids)
	})
}

func TestSectionRepository(t *testing.T) {
	ctx := testContext()

	t.Run("create duplicate", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("INSERT INTO sections").
			WithArgs("Work", int64(1)).
			WillReturnError(uniqueViolation)

		_, err := postgres.NewSectionRepository(mock).Create(ctx, &entities.Section{Name: "Work", OwnerID: 1})

		require.ErrorIs(t, err, apperr.ErrSectionNameAlreadyBusy)
	})

	t.Run("rename duplicate", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE sections SET name = $2 WHERE id = $1")).
			WithArgs(int64(1), "Home").
			WillReturnError(uniqueViolation)

		err := postgres.NewSectionRepository(mock).Rename(ctx, 1, "Home")

		require.ErrorIs(t, err, apperr.ErrSectionNameAlreadyBusy)
	})

	t.Run("find missing", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("FROM sections WHERE id").WithArgs(int64(4)).WillReturnError(pgx.ErrNoRows)

		_, err := postgres.NewSectionRepository(mock).FindByID(ctx, 4)

		require.ErrorIs(t, err, apperr.ErrSectionNotFound)
	})

	t.Run("list ordered by id", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, owner_id FROM sections ORDER BY id")).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name", "owner_id"}).
				AddRow(int64(1), "Work", int64(1)).
				AddRow(int64(2), "Home", int64(2)))

		sections, err := postgres.NewSectionRepository(mock).List(ctx)

		require.NoError(t, err)
		assert.Equal(t, []entities.Section{{ID: 1, Name: "Work", OwnerID: 1}, {ID: 2, Name: "Home", OwnerID: 2}}, sections)
	})

	t.Run("delete", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sections WHERE id = $1")).
			WithArgs(int64(2)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		require.NoError(t, postgres.NewSectionRepository(mock).Delete(ctx, 2))
	})
}

func TestMaintenanceRepository_Clear(t *testing.T) {
	ctx := testContext()
	mock := newMock(t)
	mock.ExpectExec("TRUNCATE comments, revisions, notes, sections, user_relations, sessions, users RESTART IDENTITY CASCADE").
		WillReturnResult(pgxmock.NewResult("TRUNCATE", 0))

	require.NoError(t, postgres.NewMaintenanceRepository(mock).Clear(ctx))
}

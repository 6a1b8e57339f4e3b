package app_test

import (
	"context"
	"errors"
	"time"

	"github.com/stretchr/testify/mock"

	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/domain/query"
)

var errDatabase = errors.New("database error")

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type staticTokens struct{ token string }

func (s staticTokens) Generate() string { return s.token }

type txMarker struct{}

// passthroughTx выполняет fn без транзакции, считает вызовы и помечает контекст.
type passthroughTx struct{ calls int }

func (tx *passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	return fn(context.WithValue(ctx, txMarker{}, true))
}

// inTx совпадает только с контекстом, выданным passthroughTx.
var inTx = mock.MatchedBy(func(ctx context.Context) bool {
	return ctx.Value(txMarker{}) != nil
})

type mockNoteRepository struct{ mock.Mock }

func (m *mockNoteRepository) Create(ctx context.Context, note *entities.Note) (int64, error) {
	args := m.Called(ctx, note)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNoteRepository) FindByID(ctx context.Context, noteID int64) (*entities.Note, error) {
	args := m.Called(ctx, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) Lock(ctx context.Context, noteID int64) error {
	return m.Called(ctx, noteID).Error(0)
}

func (m *mockNoteRepository) Transfer(ctx context.Context, noteID, sectionID int64) error {
	return m.Called(ctx, noteID, sectionID).Error(0)
}

func (m *mockNoteRepository) Delete(ctx context.Context, noteID int64) error {
	return m.Called(ctx, noteID).Error(0)
}

func (m *mockNoteRepository) Rate(ctx context.Context, noteID int64, value int) error {
	return m.Called(ctx, noteID, value).Error(0)
}

func (m *mockNoteRepository) List(ctx context.Context, q query.NoteQuery) ([]entities.Note, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Note), args.Error(1)
}

type mockRevisionRepository struct{ mock.Mock }

func (m *mockRevisionRepository) Append(ctx context.Context, noteID int64, body string, at time.Time) (*entities.Revision, error) {
	args := m.Called(ctx, noteID, body, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Revision), args.Error(1)
}

func (m *mockRevisionRepository) ListByNotes(ctx context.Context, noteIDs []int64) ([]entities.Revision, error) {
	args := m.Called(ctx, noteIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Revision), args.Error(1)
}

type mockCommentRepository struct{ mock.Mock }

func (m *mockCommentRepository) Create(ctx context.Context, comment *entities.Comment) (int64, error) {
	args := m.Called(ctx, comment)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCommentRepository) FindByID(ctx context.Context, commentID int64) (*entities.Comment, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Comment), args.Error(1)
}

func (m *mockCommentRepository) Rebind(ctx context.Context, commentID int64, body string) (*entities.Comment, error) {
	args := m.Called(ctx, commentID, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Comment), args.Error(1)
}

func (m *mockCommentRepository) Delete(ctx context.Context, commentID int64) error {
	return m.Called(ctx, commentID).Error(0)
}

func (m *mockCommentRepository) DeleteOnCurrentRevision(ctx context.Context, noteID int64) error {
	return m.Called(ctx, noteID).Error(0)
}

func (m *mockCommentRepository) ListByNotes(ctx context.Context, noteIDs []int64) ([]entities.Comment, error) {
	args := m.Called(ctx, noteIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Comment), args.Error(1)
}

type mockSectionRepository struct{ mock.Mock }

func (m *mockSectionRepository) Create(ctx context.Context, section *entities.Section) (int64, error) {
	args := m.Called(ctx, section)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSectionRepository) FindByID(ctx context.Context, sectionID int64) (*entities.Section, error) {
	args := m.Called(ctx, sectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Section), args.Error(1)
}

func (m *mockSectionRepository) Rename(ctx context.Context, sectionID int64, name string) error {
	return m.Called(ctx, sectionID, name).Error(0)
}

func (m *mockSectionRepository) Delete(ctx context.Context, sectionID int64) error {
	return m.Called(ctx, sectionID).Error(0)
}

func (m *mockSectionRepository) List(ctx context.Context) ([]entities.Section, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.Section), args.Error(1)
}

type mockUserRepository struct{ mock.Mock }

func (m *mockUserRepository) Create(ctx context.Context, user *entities.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, userID int64) (*entities.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByLogin(ctx context.Context, login string) (*entities.User, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) MarkDeleted(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockUserRepository) SetType(ctx context.Context, userID int64, userType entities.UserType) error {
	return m.Called(ctx, userID, userType).Error(0)
}

func (m *mockUserRepository) List(ctx context.Context, q query.UserQuery) ([]entities.UserSummary, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.UserSummary), args.Error(1)
}

type mockSessionRepository struct{ mock.Mock }

func (m *mockSessionRepository) Upsert(ctx context.Context, session *entities.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockSessionRepository) FindByToken(ctx context.Context, token string) (*entities.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Session), args.Error(1)
}

func (m *mockSessionRepository) Touch(ctx context.Context, userID int64, at time.Time) error {
	return m.Called(ctx, userID, at).Error(0)
}

func (m *mockSessionRepository) DeleteByUser(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

type mockRelationRepository struct{ mock.Mock }

func (m *mockRelationRepository) Put(ctx context.Context, userID, targetID int64, kind entities.RelationKind) error {
	return m.Called(ctx, userID, targetID, kind).Error(0)
}

func (m *mockRelationRepository) Remove(ctx context.Context, userID, targetID int64, kind entities.RelationKind) error {
	return m.Called(ctx, userID, targetID, kind).Error(0)
}

func (m *mockRelationRepository) TargetIDs(ctx context.Context, userID int64, kind entities.RelationKind) ([]int64, error) {
	args := m.Called(ctx, userID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

type mockMaintenanceRepository struct{ mock.Mock }

func (m *mockMaintenanceRepository) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockPasswordService struct{ mock.Mock }

func (m *mockPasswordService) Hash(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) Verify(ctx context.Context, password, hash string) (bool, error) {
	args := m.Called(ctx, password, hash)
	return args.Bool(0), args.Error(1)
}

type mockThrottle struct{ mock.Mock }

func (m *mockThrottle) Allowed(ctx context.Context, login string) (bool, error) {
	args := m.Called(ctx, login)
	return args.Bool(0), args.Error(1)
}

func (m *mockThrottle) Failed(ctx context.Context, login string) error {
	return m.Called(ctx, login).Error(0)
}

func (m *mockThrottle) Reset(ctx context.Context, login string) error {
	return m.Called(ctx, login).Error(0)
}

func regularUser(id int64) *entities.User {
	return &entities.User{ID: id, Login: "user", Type: entities.UserTypeUser, PasswordHash: "hash"}
}

func adminUser(id int64) *entities.User {
	return &entities.User{ID: id, Login: "admin", Type: entities.UserTypeAdmin, PasswordHash: "hash"}
}

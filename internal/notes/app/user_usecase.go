package app

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"gonotes/internal/notes/domain/apperr"
	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/domain/query"
	"gonotes/internal/notes/ports/repositories"
	"gonotes/internal/notes/ports/services"
	"gonotes/pkg/logger"
)

const (
	methodRegister    = "Register"
	methodEditProfile = "EditProfile"
	methodDeleteUser  = "DeleteAccount"
	methodPromote     = "Promote"

	msgStartRegistration = "starting user registration"
	msgUserRegistered    = "user registered successfully"
	msgWrongPassword     = "supplied password does not match"
	msgProfileUpdated    = "profile updated"
	msgUserDeleted       = "user deleted"
	msgUserPromoted      = "user promoted to admin"

	errCtxHashingPassword = "hashing password"
	errCtxCreatingUser    = "creating user"
	errCtxUpdatingUser    = "updating user"
	errCtxDeletingUser    = "deleting user"
	errCtxPromotingUser   = "promoting user"
	errCtxListingUsers    = "listing users"
)

// RegisterInput - данные регистрации.
type RegisterInput struct {
	FirstName  string
	LastName   string
	Patronymic string
	Login      string
	Password   string
}

// EditProfileInput - новые данные профиля. OldPassword подтверждает изменение.
type EditProfileInput struct {
	FirstName   string
	LastName    string
	Patronymic  string
	OldPassword string
	NewPassword string
}

// UserUseCase управляет учетными записями.
type UserUseCase struct {
	users     repositories.UserRepository
	sessions  *SessionUseCase
	sessRepo  repositories.SessionRepository
	passwords services.PasswordService
	tx        repositories.Transactor
	clock     services.Clock
}

// NewUserUseCase создает сервис учетных записей.
func NewUserUseCase(
	users repositories.UserRepository,
	sessRepo repositories.SessionRepository,
	sessions *SessionUseCase,
	passwords services.PasswordService,
	tx repositories.Transactor,
	clock services.Clock,
) *UserUseCase {
	return &UserUseCase{
		users:     users,
		sessions:  sessions,
		sessRepo:  sessRepo,
		passwords: passwords,
		tx:        tx,
		clock:     clock,
	}
}

// Register создает пользователя и его сессию в одной транзакции.
func (uc *UserUseCase) Register(ctx context.Context, in RegisterInput) (*entities.User, string, error) {
	return uc.register(ctx, in, entities.UserTypeUser)
}

// RegisterAdmin создает администратора. Используется только служебным API.
func (uc *UserUseCase) RegisterAdmin(ctx context.Context, in RegisterInput) (*entities.User, string, error) {
	return uc.register(ctx, in, entities.UserTypeAdmin)
}

func (uc *UserUseCase) register(ctx context.Context, in RegisterInput, userType entities.UserType) (*entities.User, string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("login", in.Login))
	log.Debug(ctx, msgStartRegistration)

	hash, err := uc.passwords.Hash(ctx, in.Password)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	user := &entities.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Patronymic:   in.Patronymic,
		Login:        in.Login,
		PasswordHash: hash,
		Type:         userType,
		RegisteredAt: uc.clock.Now(),
	}

	var token string
	err = uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		id, err := uc.users.Create(ctx, user)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtxCreatingUser, err)
		}
		user.ID = id

		token, err = uc.sessions.openSession(ctx, id)
		return err
	})
	if err != nil {
		return nil, "", err
	}

	log.Info(ctx, msgUserRegistered, zap.Int64("userID", user.ID), zap.String("type", string(userType)))
	return user, token, nil
}

func (uc *UserUseCase) checkPassword(ctx context.Context, actor *entities.User, password string) error {
	ok, err := uc.passwords.Verify(ctx, password, actor.PasswordHash)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !ok {
		logger.Log(ctx).Info(ctx, msgWrongPassword, zap.Int64("userID", actor.ID))
		return apperr.ErrWrongPassword
	}
	return nil
}

// EditProfile меняет ФИО и пароль после проверки текущего пароля.
func (uc *UserUseCase) EditProfile(ctx context.Context, actor *entities.User, in EditProfileInput) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodEditProfile), zap.Int64("userID", actor.ID))

	if err := uc.checkPassword(ctx, actor, in.OldPassword); err != nil {
		return nil, err
	}

	hash, err := uc.passwords.Hash(ctx, in.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	updated := *actor
	updated.FirstName = in.FirstName
	updated.LastName = in.LastName
	updated.Patronymic = in.Patronymic
	updated.PasswordHash = hash

	if err := uc.users.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingUser, err)
	}

	log.Info(ctx, msgProfileUpdated)
	return &updated, nil
}

// DeleteAccount закрывает сессию и логически удаляет пользователя.
func (uc *UserUseCase) DeleteAccount(ctx context.Context, actor *entities.User, password string) error {
	if err := uc.checkPassword(ctx, actor, password); err != nil {
		return err
	}

	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := uc.sessRepo.DeleteByUser(ctx, actor.ID); err != nil {
			return fmt.Errorf("%s: %w", errCtxDeletingSession, err)
		}
		if err := uc.users.MarkDeleted(ctx, actor.ID); err != nil {
			return fmt.Errorf("%s: %w", errCtxDeletingUser, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Log(ctx).Info(ctx, msgUserDeleted, zap.String("method", methodDeleteUser), zap.Int64("userID", actor.ID))
	return nil
}

// Promote делает пользователя администратором. Доступно только администратору.
func (uc *UserUseCase) Promote(ctx context.Context, actor *entities.User, userID int64) error {
	if err := RequireAdmin(actor); err != nil {
		return err
	}

	if _, err := uc.users.FindByID(ctx, userID); err != nil {
		return fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	if err := uc.users.SetType(ctx, userID, entities.UserTypeAdmin); err != nil {
		return fmt.Errorf("%s: %w", errCtxPromotingUser, err)
	}

	logger.Log(ctx).Info(ctx, msgUserPromoted, zap.String("method", methodPromote), zap.Int64("userID", userID))
	return nil
}

// List возвращает список пользователей глазами actor. Список администраторов
// видит только администратор.
func (uc *UserUseCase) List(ctx context.Context, actor *entities.User, q query.UserQuery) ([]entities.UserSummary, error) {
	if q.Kind == query.UsersSuper && !actor.IsAdmin() {
		return []entities.UserSummary{}, nil
	}

	q.ViewerID = actor.ID
	users, err := uc.users.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingUsers, err)
	}

	for i := range users {
		users[i].Rating = math.Round(users[i].Rating*10) / 10
	}
	return users, nil
}

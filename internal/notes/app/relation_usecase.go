package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/ports/repositories"
	"gonotes/pkg/logger"
)

// RelationUseCase управляет подписками и игнором.
type RelationUseCase struct {
	users     repositories.UserRepository
	relations repositories.RelationRepository
}

// NewRelationUseCase создает сервис связей.
func NewRelationUseCase(users repositories.UserRepository, relations repositories.RelationRepository) *RelationUseCase {
	return &RelationUseCase{users: users, relations: relations}
}

// Follow подписывает actor на login. Игнор этой пары снимается.
func (uc *RelationUseCase) Follow(ctx context.Context, actor *entities.User, login string) error {
	return uc.put(ctx, actor, login, entities.RelationFollow)
}

// Ignore добавляет login в игнор actor. Подписка этой пары снимается.
func (uc *RelationUseCase) Ignore(ctx context.Context, actor *entities.User, login string) error {
	return uc.put(ctx, actor, login, entities.RelationIgnore)
}

// Unfollow снимает подписку.
func (uc *RelationUseCase) Unfollow(ctx context.Context, actor *entities.User, login string) error {
	return uc.remove(ctx, actor, login, entities.RelationFollow)
}

// Unignore убирает login из игнора.
func (uc *RelationUseCase) Unignore(ctx context.Context, actor *entities.User, login string) error {
	return uc.remove(ctx, actor, login, entities.RelationIgnore)
}

func (uc *RelationUseCase) put(ctx context.Context, actor *entities.User, login string, kind entities.RelationKind) error {
	target, err := uc.users.FindByLogin(ctx, login)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	if err := uc.relations.Put(ctx, actor.ID, target.ID, kind); err != nil {
		return fmt.Errorf("storing %s relation: %w", kind, err)
	}

	logger.Log(ctx).Debug(ctx, "relation stored",
		zap.Int64("userID", actor.ID), zap.Int64("targetID", target.ID), zap.String("kind", string(kind)))
	return nil
}

func (uc *RelationUseCase) remove(ctx context.Context, actor *entities.User, login string, kind entities.RelationKind) error {
	target, err := uc.users.FindByLogin(ctx, login)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	if err := uc.relations.Remove(ctx, actor.ID, target.ID, kind); err != nil {
		return fmt.Errorf("removing %s relation: %w", kind, err)
	}
	return nil
}

package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"gonotes/internal/notes/domain/apperr"
	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/ports/repositories"
	"gonotes/pkg/logger"
)

const (
	errCtxFindingSection = "finding section"
)

// SectionUseCase управляет разделами.
type SectionUseCase struct {
	sections repositories.SectionRepository
}

// NewSectionUseCase создает сервис разделов.
func NewSectionUseCase(sections repositories.SectionRepository) *SectionUseCase {
	return &SectionUseCase{sections: sections}
}

// Create создает раздел, владельцем становится actor.
func (uc *SectionUseCase) Create(ctx context.Context, actor *entities.User, name string) (*entities.Section, error) {
	section := &entities.Section{Name: name, OwnerID: actor.ID}

	id, err := uc.sections.Create(ctx, section)
	if err != nil {
		return nil, fmt.Errorf("creating section: %w", err)
	}
	section.ID = id

	logger.Log(ctx).Debug(ctx, "section created", zap.Int64("sectionID", id), zap.String("name", name))
	return section, nil
}

// Rename переименовывает раздел. Доступно только владельцу.
func (uc *SectionUseCase) Rename(ctx context.Context, actor *entities.User, sectionID int64, name string) (*entities.Section, error) {
	section, err := uc.sections.FindByID(ctx, sectionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingSection, err)
	}

	if err := RequireOwner(actor, section.OwnerID, apperr.ErrNotOwnerOfSection); err != nil {
		return nil, err
	}

	if err := uc.sections.Rename(ctx, sectionID, name); err != nil {
		return nil, fmt.Errorf("renaming section: %w", err)
	}
	section.Name = name

	return section, nil
}

// Delete удаляет раздел вместе с заметками. Доступно владельцу и администратору.
func (uc *SectionUseCase) Delete(ctx context.Context, actor *entities.User, sectionID int64) error {
	section, err := uc.sections.FindByID(ctx, sectionID)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxFindingSection, err)
	}

	if err := RequireOwnerOrAdmin(actor, section.OwnerID, apperr.ErrNotOwnerOfSection); err != nil {
		return err
	}

	if err := uc.sections.Delete(ctx, sectionID); err != nil {
		return fmt.Errorf("deleting section: %w", err)
	}
	return nil
}

// Get возвращает раздел.
func (uc *SectionUseCase) Get(ctx context.Context, sectionID int64) (*entities.Section, error) {
	section, err := uc.sections.FindByID(ctx, sectionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingSection, err)
	}
	return section, nil
}

// List возвращает все разделы.
func (uc *SectionUseCase) List(ctx context.Context) ([]entities.Section, error) {
	sections, err := uc.sections.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sections: %w", err)
	}
	return sections, nil
}

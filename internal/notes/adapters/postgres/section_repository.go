package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gonotes/internal/notes/domain/apperr"
	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/ports/repositories"
	"gonotes/pkg/logger"
)

// SectionRepository реализует repositories.SectionRepository.
type SectionRepository struct {
	pool PgxPoolInterface
}

// NewSectionRepository создает репозиторий разделов.
func NewSectionRepository(pool PgxPoolInterface) repositories.SectionRepository {
	return &SectionRepository{pool: pool}
}

// Create сохраняет раздел. Занятое имя дает SECTION_NAME_ALREADY_BUSY.
func (r *SectionRepository) Create(ctx context.Context, section *entities.Section) (int64, error) {
	log := logger.Log(ctx).With(zap.String("repository", "section"), zap.String("method", "Create"))
	log.Debug(ctx, "creating section", zap.String("name", section.Name))

	var sectionID int64
	err := conn(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO sections (name, owner_id) VALUES ($1, $2) RETURNING id`,
		section.Name, section.OwnerID,
	).Scan(&sectionID)
	if err != nil {
		if isViolation(err, pgUniqueViolation) {
			return 0, apperr.ErrSectionNameAlreadyBusy
		}
		log.Error(ctx, "failed to create section", zap.Error(err))
		return 0, fmt.Errorf("failed to create section: %w", err)
	}

	return sectionID, nil
}

// FindByID получает раздел.
func (r *SectionRepository) FindByID(ctx context.Context, sectionID int64) (*entities.Section, error) {
	log := logger.Log(ctx).With(zap.String("repository", "section"), zap.String("method", "FindByID"))

	var s entities.Section
	err := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT id, name, owner_id FROM sections WHERE id = $1`,
		sectionID,
	).Scan(&s.ID, &s.Name, &s.OwnerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "section not found", zap.Int64("sectionID", sectionID))
			return nil, apperr.ErrSectionNotFound
		}
		log.Error(ctx, "failed to get section", zap.Error(err))
		return nil, fmt.Errorf("failed to get section: %w", err)
	}

	return &s, nil
}

// Rename меняет имя раздела.
func (r *SectionRepository) Rename(ctx context.Context, sectionID int64, name string) error {
	log := logger.Log(ctx).With(zap.String("repository", "section"), zap.String("method", "Rename"))

	result, err := conn(ctx, r.pool).Exec(ctx, `UPDATE sections SET name = $2 WHERE id = $1`, sectionID, name)
	if err != nil {
		if isViolation(err, pgUniqueViolation) {
			return apperr.ErrSectionNameAlreadyBusy
		}
		log.Error(ctx, "failed to rename section", zap.Error(err))
		return fmt.Errorf("failed to rename section: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.ErrSectionNotFound
	}

	return nil
}

// Delete удаляет раздел. Заметки раздела удаляются каскадно.
func (r *SectionRepository) Delete(ctx context.Context, sectionID int64) error {
	log := logger.Log(ctx).With(zap.String("repository", "section"), zap.String("method", "Delete"))

	result, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM sections WHERE id = $1`, sectionID)
	if err != nil {
		log.Error(ctx, "failed to delete section", zap.Error(err))
		return fmt.Errorf("failed to delete section: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.ErrSectionNotFound
	}

	return nil
}

// List возвращает все разделы по возрастанию id.
func (r *SectionRepository) List(ctx context.Context) ([]entities.Section, error) {
	log := logger.Log(ctx).With(zap.String("repository", "section"), zap.String("method", "List"))

	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT id, name, owner_id FROM sections ORDER BY id`)
	if err != nil {
		log.Error(ctx, "failed to list sections", zap.Error(err))
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	defer rows.Close()

	sections := make([]entities.Section, 0)
	for rows.Next() {
		var s entities.Section
		if err := rows.Scan(&s.ID, &s.Name, &s.OwnerID); err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		sections = append(sections, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return sections, nil
}

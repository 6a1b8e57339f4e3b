package postgres

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/ports/repositories"
	"gonotes/pkg/logger"
)

// RevisionRepository реализует repositories.RevisionRepository.
type RevisionRepository struct {
	pool PgxPoolInterface
}

// NewRevisionRepository создает репозиторий ревизий.
func NewRevisionRepository(pool PgxPoolInterface) repositories.RevisionRepository {
	return &RevisionRepository{pool: pool}
}

// Append добавляет ревизию. Номер равен числу более ранних ревизий заметки плюс один.
func (r *RevisionRepository) Append(ctx context.Context, noteID int64, body string, at time.Time) (*entities.Revision, error) {
	log := logger.Log(ctx).With(zap.String("repository", "revision"), zap.String("method", "Append"))
	log.Debug(ctx, "appending revision", zap.Int64("noteID", noteID))

	revision := entities.Revision{NoteID: noteID, Body: body}
	err := conn(ctx, r.pool).QueryRow(ctx,
		`WITH ins AS (INSERT INTO revisions (note_id, body, created_at) VALUES ($1, $2, $3) RETURNING id, created_at)
		SELECT ins.id, ins.created_at, (SELECT COUNT(*) FROM revisions r WHERE r.note_id = $1 AND r.id < ins.id) + 1 FROM ins`,
		noteID, body, at,
	).Scan(&revision.ID, &revision.CreatedAt, &revision.Ordinal)
	if err != nil {
		log.Error(ctx, "failed to append revision", zap.Error(err))
		return nil, fmt.Errorf("failed to append revision: %w", err)
	}

	log.Debug(ctx, "revision appended", zap.Int64("revisionID", revision.ID), zap.Int("ordinal", revision.Ordinal))
	return &revision, nil
}

// ListByNotes загружает ревизии всех заметок одним запросом.
func (r *RevisionRepository) ListByNotes(ctx context.Context, noteIDs []int64) ([]entities.Revision, error) {
	log := logger.Log(ctx).With(zap.String("repository", "revision"), zap.String("method", "ListByNotes"))

	if len(noteIDs) == 0 {
		return nil, nil
	}

	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT id, note_id, body, created_at, ROW_NUMBER() OVER (PARTITION BY note_id ORDER BY id) AS ordinal
		FROM revisions WHERE note_id = ANY($1) ORDER BY note_id, id`,
		noteIDs,
	)
	if err != nil {
		log.Error(ctx, "failed to list revisions", zap.Error(err))
		return nil, fmt.Errorf("failed to list revisions: %w", err)
	}
	defer rows.Close()

	revisions := make([]entities.Revision, 0)
	for rows.Next() {
		var rev entities.Revision
		if err := rows.Scan(&rev.ID, &rev.NoteID, &rev.Body, &rev.CreatedAt, &rev.Ordinal); err != nil {
			log.Error(ctx, "failed to scan revision", zap.Error(err))
			return nil, fmt.Errorf("failed to scan revision: %w", err)
		}
		revisions = append(revisions, rev)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return revisions, nil
}

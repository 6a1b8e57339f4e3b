package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gonotes/internal/notes/domain/apperr"
	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/domain/query"
	"gonotes/internal/notes/ports/repositories"
	"gonotes/pkg/logger"
)

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	pool PgxPoolInterface
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(pool PgxPoolInterface) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

func scanNote(row pgx.Row, note *entities.Note) error {
	return row.Scan(
		&note.ID,
		&note.Subject,
		&note.AuthorID,
		&note.SectionID,
		&note.CreatedAt,
		&note.Rating,
		&note.RatingCount,
		&note.Current.ID,
		&note.Current.Body,
		&note.Current.Ordinal,
		&note.Current.CreatedAt,
	)
}

// Create сохраняет строку заметки без ревизий.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (int64, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Create"))
	log.Debug(ctx, "creating new note", zap.Int64("authorID", note.AuthorID), zap.Int64("sectionID", note.SectionID))

	var noteID int64
	err := conn(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO notes (subject, author_id, section_id, created_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		note.Subject, note.AuthorID, note.SectionID, note.CreatedAt,
	).Scan(&noteID)
	if err != nil {
		if isViolation(err, pgForeignKeyViolation) {
			log.Debug(ctx, "section not found", zap.Int64("sectionID", note.SectionID))
			return 0, apperr.ErrSectionNotFound
		}
		log.Error(ctx, "failed to create note", zap.Error(err))
		return 0, fmt.Errorf("failed to create note: %w", err)
	}

	log.Debug(ctx, "note created", zap.Int64("noteID", noteID))
	return noteID, nil
}

// FindByID получает заметку с текущей ревизией.
func (r *NoteRepository) FindByID(ctx context.Context, noteID int64) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "FindByID"))

	var note entities.Note
	err := scanNote(conn(ctx, r.pool).QueryRow(ctx, noteSelect+" WHERE n.id = $1", noteID), &note)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.Int64("noteID", noteID))
			return nil, apperr.ErrNoteNotFound
		}
		log.Error(ctx, "failed to get note", zap.Error(err))
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	note.Current.NoteID = note.ID

	return &note, nil
}

// Lock берет FOR UPDATE на строку заметки. Правки одной заметки выстраиваются
// в очередь, и номер новой ревизии считается по зафиксированной истории.
func (r *NoteRepository) Lock(ctx context.Context, noteID int64) error {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Lock"))

	var id int64
	err := conn(ctx, r.pool).QueryRow(ctx, `SELECT id FROM notes WHERE id = $1 FOR UPDATE`, noteID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.ErrNoteNotFound
		}
		log.Error(ctx, "failed to lock note", zap.Error(err))
		return fmt.Errorf("failed to lock note: %w", err)
	}

	return nil
}

// Transfer переносит заметку в другой раздел.
func (r *NoteRepository) Transfer(ctx context.Context, noteID, sectionID int64) error {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Transfer"))
	log.Debug(ctx, "transferring note", zap.Int64("noteID", noteID), zap.Int64("sectionID", sectionID))

	result, err := conn(ctx, r.pool).Exec(ctx,
		`UPDATE notes SET section_id = $2 WHERE id = $1`,
		noteID, sectionID,
	)
	if err != nil {
		if isViolation(err, pgForeignKeyViolation) {
			return apperr.ErrSectionNotFound
		}
		log.Error(ctx, "failed to transfer note", zap.Error(err))
		return fmt.Errorf("failed to transfer note: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.ErrNoteNotFound
	}

	return nil
}

// Delete удаляет заметку вместе с ревизиями и комментариями.
func (r *NoteRepository) Delete(ctx context.Context, noteID int64) error {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Delete"))
	log.Debug(ctx, "deleting note", zap.Int64("noteID", noteID))

	result, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM notes WHERE id = $1`, noteID)
	if err != nil {
		log.Error(ctx, "failed to delete note", zap.Error(err))
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.ErrNoteNotFound
	}

	return nil
}

// Rate добавляет оценку к скользящему среднему. Чтение и запись выполняются одним выражением.
func (r *NoteRepository) Rate(ctx context.Context, noteID int64, value int) error {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Rate"))
	log.Debug(ctx, "rating note", zap.Int64("noteID", noteID), zap.Int("value", value))

	result, err := conn(ctx, r.pool).Exec(ctx,
		`UPDATE notes SET rating = (rating * rating_count + $2) / (rating_count + 1), rating_count = rating_count + 1 WHERE id = $1`,
		noteID, float64(value),
	)
	if err != nil {
		log.Error(ctx, "failed to rate note", zap.Error(err))
		return fmt.Errorf("failed to rate note: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.ErrNoteNotFound
	}

	return nil
}

// List выполняет запрос списка заметок.
func (r *NoteRepository) List(ctx context.Context, q query.NoteQuery) ([]entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "List"))

	sql, args := CompileNoteQuery(q)
	log.Debug(ctx, "listing notes", zap.Int("predicates", len(q.Predicates)), zap.String("sql", sql))

	rows, err := conn(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		log.Error(ctx, "failed to list notes", zap.Error(err))
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]entities.Note, 0)
	for rows.Next() {
		var note entities.Note
		if err := scanNote(rows, &note); err != nil {
			log.Error(ctx, "failed to scan note", zap.Error(err))
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		note.Current.NoteID = note.ID
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return notes, nil
}

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

// CommentRepository реализует repositories.CommentRepository.
type CommentRepository struct {
	pool PgxPoolInterface
}

// NewCommentRepository создает репозиторий комментариев.
func NewCommentRepository(pool PgxPoolInterface) repositories.CommentRepository {
	return &CommentRepository{pool: pool}
}

const commentColumns = "c.id, c.note_id, c.revision_id, c.author_id, c.body, c.created_at"

// Create сохраняет комментарий, привязанный к comment.RevisionID.
func (r *CommentRepository) Create(ctx context.Context, comment *entities.Comment) (int64, error) {
	log := logger.Log(ctx).With(zap.String("repository", "comment"), zap.String("method", "Create"))
	log.Debug(ctx, "creating comment", zap.Int64("noteID", comment.NoteID), zap.Int64("revisionID", comment.RevisionID))

	var commentID int64
	err := conn(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO comments (note_id, revision_id, author_id, body, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		comment.NoteID, comment.RevisionID, comment.AuthorID, comment.Body, comment.CreatedAt,
	).Scan(&commentID)
	if err != nil {
		if isViolation(err, pgForeignKeyViolation) {
			return 0, apperr.ErrNoteNotFound
		}
		log.Error(ctx, "failed to create comment", zap.Error(err))
		return 0, fmt.Errorf("failed to create comment: %w", err)
	}

	return commentID, nil
}

// FindByID получает комментарий с номером его ревизии.
func (r *CommentRepository) FindByID(ctx context.Context, commentID int64) (*entities.Comment, error) {
	log := logger.Log(ctx).With(zap.String("repository", "comment"), zap.String("method", "FindByID"))

	var c entities.Comment
	err := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+commentColumns+`, (SELECT COUNT(*) FROM revisions r WHERE r.note_id = c.note_id AND r.id <= c.revision_id)
		FROM comments c WHERE c.id = $1`,
		commentID,
	).Scan(&c.ID, &c.NoteID, &c.RevisionID, &c.AuthorID, &c.Body, &c.CreatedAt, &c.RevisionOrdinal)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "comment not found", zap.Int64("commentID", commentID))
			return nil, apperr.ErrCommentNotFound
		}
		log.Error(ctx, "failed to get comment", zap.Error(err))
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return &c, nil
}

// Rebind обновляет текст и переносит комментарий на последнюю ревизию заметки.
func (r *CommentRepository) Rebind(ctx context.Context, commentID int64, body string) (*entities.Comment, error) {
	log := logger.Log(ctx).With(zap.String("repository", "comment"), zap.String("method", "Rebind"))
	log.Debug(ctx, "rebinding comment", zap.Int64("commentID", commentID))

	var c entities.Comment
	err := conn(ctx, r.pool).QueryRow(ctx,
		`UPDATE comments c SET body = $2, revision_id = (SELECT MAX(r.id) FROM revisions r WHERE r.note_id = c.note_id)
		WHERE c.id = $1
		RETURNING `+commentColumns+`, (SELECT COUNT(*) FROM revisions r WHERE r.note_id = c.note_id)`,
		commentID, body,
	).Scan(&c.ID, &c.NoteID, &c.RevisionID, &c.AuthorID, &c.Body, &c.CreatedAt, &c.RevisionOrdinal)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrCommentNotFound
		}
		log.Error(ctx, "failed to rebind comment", zap.Error(err))
		return nil, fmt.Errorf("failed to rebind comment: %w", err)
	}

	log.Debug(ctx, "comment rebound", zap.Int64("revisionID", c.RevisionID), zap.Int("ordinal", c.RevisionOrdinal))
	return &c, nil
}

// Delete удаляет комментарий.
func (r *CommentRepository) Delete(ctx context.Context, commentID int64) error {
	log := logger.Log(ctx).With(zap.String("repository", "comment"), zap.String("method", "Delete"))

	result, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM comments WHERE id = $1`, commentID)
	if err != nil {
		log.Error(ctx, "failed to delete comment", zap.Error(err))
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.ErrCommentNotFound
	}

	return nil
}

// DeleteOnCurrentRevision удаляет только комментарии последней ревизии заметки.
func (r *CommentRepository) DeleteOnCurrentRevision(ctx context.Context, noteID int64) error {
	log := logger.Log(ctx).With(zap.String("repository", "comment"), zap.String("method", "DeleteOnCurrentRevision"))

	result, err := conn(ctx, r.pool).Exec(ctx,
		`DELETE FROM comments WHERE revision_id = (SELECT MAX(id) FROM revisions WHERE note_id = $1)`,
		noteID,
	)
	if err != nil {
		log.Error(ctx, "failed to delete comments", zap.Error(err))
		return fmt.Errorf("failed to delete comments: %w", err)
	}

	log.Debug(ctx, "comments deleted", zap.Int64("noteID", noteID), zap.Int64("count", result.RowsAffected()))
	return nil
}

// ListByNotes загружает комментарии всех заметок одним запросом в порядке создания.
func (r *CommentRepository) ListByNotes(ctx context.Context, noteIDs []int64) ([]entities.Comment, error) {
	log := logger.Log(ctx).With(zap.String("repository", "comment"), zap.String("method", "ListByNotes"))

	if len(noteIDs) == 0 {
		return nil, nil
	}

	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT `+commentColumns+` FROM comments c WHERE c.note_id = ANY($1) ORDER BY c.id`,
		noteIDs,
	)
	if err != nil {
		log.Error(ctx, "failed to list comments", zap.Error(err))
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]entities.Comment, 0)
	for rows.Next() {
		var c entities.Comment
		if err := rows.Scan(&c.ID, &c.NoteID, &c.RevisionID, &c.AuthorID, &c.Body, &c.CreatedAt); err != nil {
			log.Error(ctx, "failed to scan comment", zap.Error(err))
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return comments, nil
}

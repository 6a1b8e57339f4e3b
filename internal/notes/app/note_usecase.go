package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"gonotes/internal/notes/domain/apperr"
	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/domain/query"
	"gonotes/internal/notes/ports/repositories"
	"gonotes/pkg/logger"
)

const (
	methodEditNote      = "EditNote"
	methodDeleteNote    = "DeleteNote"
	methodEditComment   = "EditComment"
	methodDeleteComment = "DeleteComment"

	msgNoteEdited     = "note edited"
	msgNoteDeleted    = "note deleted"
	msgCommentEdited  = "comment rebound to current revision"
	msgCommentDeleted = "comment deleted"

	errCtxTransferringNote = "transferring note"
	errCtxFindingComment   = "finding comment"
)

// NoteUseCase объединяет операции над заметками и комментариями.
type NoteUseCase struct {
	notes    repositories.NoteRepository
	comments repositories.CommentRepository
	tx       repositories.Transactor
	chain    *RevisionChain
	engine   *NoteQueryEngine
	ratings  *RatingAggregator
}

// NewNoteUseCase создает сервис заметок.
func NewNoteUseCase(
	notes repositories.NoteRepository,
	comments repositories.CommentRepository,
	tx repositories.Transactor,
	chain *RevisionChain,
	engine *NoteQueryEngine,
	ratings *RatingAggregator,
) *NoteUseCase {
	return &NoteUseCase{
		notes:    notes,
		comments: comments,
		tx:       tx,
		chain:    chain,
		engine:   engine,
		ratings:  ratings,
	}
}

// CreateNote создает заметку в разделе sectionID.
func (uc *NoteUseCase) CreateNote(ctx context.Context, actor *entities.User, sectionID int64, subject, body string) (*entities.Note, error) {
	return uc.chain.CreateNote(ctx, actor.ID, sectionID, subject, body)
}

// GetNote возвращает заметку с текущим телом.
func (uc *NoteUseCase) GetNote(ctx context.Context, noteID int64) (*entities.Note, error) {
	return uc.chain.Current(ctx, noteID)
}

// EditNote добавляет ревизию и/или переносит заметку в другой раздел.
// Тело меняет только владелец, перенос доступен и администратору.
func (uc *NoteUseCase) EditNote(ctx context.Context, actor *entities.User, noteID int64, body *string, sectionID *int64) (*entities.Note, error) {
	if body == nil && sectionID == nil {
		return nil, apperr.ErrAllParametersNull
	}

	log := logger.Log(ctx).With(zap.String("method", methodEditNote), zap.Int64("noteID", noteID))

	var note *entities.Note
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		note, err = uc.chain.LockCurrent(ctx, noteID)
		if err != nil {
			return err
		}

		if body != nil {
			if err := RequireOwner(actor, note.AuthorID, apperr.ErrNotOwnerOfNote); err != nil {
				return err
			}
			if _, err := uc.chain.AppendRevision(ctx, note, *body); err != nil {
				return err
			}
		}

		if sectionID != nil {
			if err := RequireOwnerOrAdmin(actor, note.AuthorID, apperr.ErrNotOwnerOfNote); err != nil {
				return err
			}
			if err := uc.notes.Transfer(ctx, noteID, *sectionID); err != nil {
				return fmt.Errorf("%s: %w", errCtxTransferringNote, err)
			}
			note.SectionID = *sectionID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug(ctx, msgNoteEdited, zap.Int("ordinal", note.Current.Ordinal), zap.Int64("sectionID", note.SectionID))
	return note, nil
}

// DeleteNote удаляет заметку с историей. Доступно владельцу и администратору.
func (uc *NoteUseCase) DeleteNote(ctx context.Context, actor *entities.User, noteID int64) error {
	note, err := uc.chain.Current(ctx, noteID)
	if err != nil {
		return err
	}

	if err := RequireOwnerOrAdmin(actor, note.AuthorID, apperr.ErrNotOwnerOfNote); err != nil {
		return err
	}

	if err := uc.notes.Delete(ctx, noteID); err != nil {
		return fmt.Errorf("deleting note: %w", err)
	}

	logger.Log(ctx).Info(ctx, msgNoteDeleted, zap.String("method", methodDeleteNote), zap.Int64("noteID", noteID))
	return nil
}

// CreateComment привязывает комментарий к текущей ревизии заметки.
func (uc *NoteUseCase) CreateComment(ctx context.Context, actor *entities.User, noteID int64, body string) (*entities.Comment, error) {
	var comment *entities.Comment
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		note, err := uc.chain.LockCurrent(ctx, noteID)
		if err != nil {
			return err
		}
		comment, err = uc.chain.AttachComment(ctx, note, actor.ID, body)
		return err
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// NoteComments возвращает комментарии всех ревизий заметки, начиная со старой ревизии.
func (uc *NoteUseCase) NoteComments(ctx context.Context, noteID int64) ([]entities.Comment, error) {
	note, err := uc.chain.Current(ctx, noteID)
	if err != nil {
		return nil, err
	}

	history, err := uc.chain.Expand(ctx, []entities.Note{*note}, query.Shape{Comments: true, CommentVersion: true})
	if err != nil {
		return nil, err
	}

	comments := []entities.Comment{}
	for _, rev := range history[0].Revisions {
		comments = append(comments, rev.Comments...)
	}
	return comments, nil
}

// EditComment меняет текст комментария. Доступно только автору.
func (uc *NoteUseCase) EditComment(ctx context.Context, actor *entities.User, commentID int64, body string) (*entities.Comment, error) {
	var comment *entities.Comment
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := uc.comments.FindByID(ctx, commentID)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtxFindingComment, err)
		}

		if err := RequireOwner(actor, existing.AuthorID, apperr.ErrNotOwnerOfComment); err != nil {
			return err
		}
		if err := uc.notes.Lock(ctx, existing.NoteID); err != nil {
			return fmt.Errorf("%s: %w", errCtxLockingNote, err)
		}

		comment, err = uc.chain.RebindComment(ctx, commentID, body)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Log(ctx).Debug(ctx, msgCommentEdited, zap.String("method", methodEditComment),
		zap.Int64("commentID", commentID), zap.Int("ordinal", comment.RevisionOrdinal))
	return comment, nil
}

// DeleteComment удаляет комментарий. Доступно автору, владельцу заметки и администратору.
func (uc *NoteUseCase) DeleteComment(ctx context.Context, actor *entities.User, commentID int64) error {
	comment, err := uc.comments.FindByID(ctx, commentID)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxFindingComment, err)
	}

	note, err := uc.chain.Current(ctx, comment.NoteID)
	if err != nil {
		return err
	}

	if err := RequireCommentOrNoteOwnerOrAdmin(actor, comment, note); err != nil {
		return err
	}

	if err := uc.comments.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}

	logger.Log(ctx).Debug(ctx, msgCommentDeleted, zap.String("method", methodDeleteComment), zap.Int64("commentID", commentID))
	return nil
}

// DeleteComments удаляет комментарии текущей ревизии. Исторические ревизии не затрагиваются.
func (uc *NoteUseCase) DeleteComments(ctx context.Context, actor *entities.User, noteID int64) error {
	note, err := uc.chain.Current(ctx, noteID)
	if err != nil {
		return err
	}

	if err := RequireOwner(actor, note.AuthorID, apperr.ErrNotOwnerOfNote); err != nil {
		return err
	}

	if err := uc.comments.DeleteOnCurrentRevision(ctx, noteID); err != nil {
		return fmt.Errorf("deleting comments: %w", err)
	}
	return nil
}

// Rate добавляет оценку заметке.
func (uc *NoteUseCase) Rate(ctx context.Context, actor *entities.User, noteID int64, value int) error {
	return uc.ratings.Rate(ctx, actor, noteID, value)
}

// List возвращает заметки по фильтрам.
func (uc *NoteUseCase) List(ctx context.Context, actor *entities.User, in ListNotesInput) ([]entities.NoteHistory, error) {
	return uc.engine.List(ctx, actor, in)
}

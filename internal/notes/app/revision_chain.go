package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/domain/query"
	"gonotes/internal/notes/ports/repositories"
	"gonotes/internal/notes/ports/services"
	"gonotes/pkg/logger"
)

const (
	errCtxCreatingNote      = "creating note"
	errCtxFindingNote       = "finding note"
	errCtxLockingNote       = "locking note"
	errCtxAppendingRevision = "appending revision"
	errCtxCreatingComment   = "creating comment"
	errCtxRebindingComment  = "rebinding comment"
	errCtxLoadingRevisions  = "loading revisions"
	errCtxLoadingComments   = "loading comments"
)

// RevisionChain ведет историю тел заметки и комментарии к ревизиям.
// Порядковые номера ревизий вычисляет хранилище, в приложении они не хранятся.
type RevisionChain struct {
	notes     repositories.NoteRepository
	revisions repositories.RevisionRepository
	comments  repositories.CommentRepository
	tx        repositories.Transactor
	clock     services.Clock
}

// NewRevisionChain создает менеджер ревизий.
func NewRevisionChain(
	notes repositories.NoteRepository,
	revisions repositories.RevisionRepository,
	comments repositories.CommentRepository,
	tx repositories.Transactor,
	clock services.Clock,
) *RevisionChain {
	return &RevisionChain{
		notes:     notes,
		revisions: revisions,
		comments:  comments,
		tx:        tx,
		clock:     clock,
	}
}

// CreateNote создает заметку и ее первую ревизию атомарно.
func (c *RevisionChain) CreateNote(ctx context.Context, authorID, sectionID int64, subject, body string) (*entities.Note, error) {
	note := entities.NewNote(authorID, sectionID, subject, body, c.clock.Now())

	err := c.tx.WithinTx(ctx, func(ctx context.Context) error {
		id, err := c.notes.Create(ctx, note)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtxCreatingNote, err)
		}
		note.ID = id

		rev, err := c.revisions.Append(ctx, id, body, note.CreatedAt)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtxAppendingRevision, err)
		}
		note.Current = *rev
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log(ctx).Debug(ctx, "note created", zap.Int64("noteID", note.ID), zap.Int64("sectionID", sectionID))
	return note, nil
}

// AppendRevision добавляет новое тело заметки. Существующие ревизии не меняются.
func (c *RevisionChain) AppendRevision(ctx context.Context, note *entities.Note, body string) (*entities.Revision, error) {
	rev, err := c.revisions.Append(ctx, note.ID, body, c.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxAppendingRevision, err)
	}
	note.Current = *rev
	return rev, nil
}

// Current загружает заметку вместе с ее последней ревизией.
func (c *RevisionChain) Current(ctx context.Context, noteID int64) (*entities.Note, error) {
	note, err := c.notes.FindByID(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingNote, err)
	}
	return note, nil
}

// LockCurrent блокирует заметку и перечитывает ее последнюю ревизию.
// Вызывается внутри транзакции перед добавлением ревизии или комментария.
func (c *RevisionChain) LockCurrent(ctx context.Context, noteID int64) (*entities.Note, error) {
	if err := c.notes.Lock(ctx, noteID); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxLockingNote, err)
	}
	return c.Current(ctx, noteID)
}

// AttachComment привязывает комментарий к текущей ревизии заметки.
func (c *RevisionChain) AttachComment(ctx context.Context, note *entities.Note, authorID int64, body string) (*entities.Comment, error) {
	comment := &entities.Comment{
		NoteID:          note.ID,
		RevisionID:      note.Current.ID,
		RevisionOrdinal: note.Current.Ordinal,
		AuthorID:        authorID,
		Body:            body,
		CreatedAt:       c.clock.Now(),
	}

	id, err := c.comments.Create(ctx, comment)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCreatingComment, err)
	}
	comment.ID = id
	return comment, nil
}

// RebindComment меняет текст комментария и переносит его на последнюю ревизию заметки.
func (c *RevisionChain) RebindComment(ctx context.Context, commentID int64, body string) (*entities.Comment, error) {
	comment, err := c.comments.Rebind(ctx, commentID, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxRebindingComment, err)
	}
	return comment, nil
}

// Expand достраивает историю заметок по shape. Ревизии и комментарии всех заметок
// загружаются двумя запросами. Без AllVersions и Comments история не загружается.
func (c *RevisionChain) Expand(ctx context.Context, notes []entities.Note, shape query.Shape) ([]entities.NoteHistory, error) {
	out := make([]entities.NoteHistory, len(notes))
	for i := range notes {
		out[i].Note = notes[i]
	}
	if !shape.NeedsHistory() || len(notes) == 0 {
		return out, nil
	}

	ids := make([]int64, len(notes))
	for i := range notes {
		ids[i] = notes[i].ID
	}

	revisions, err := c.revisions.ListByNotes(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxLoadingRevisions, err)
	}

	var comments []entities.Comment
	if shape.Comments {
		comments, err = c.comments.ListByNotes(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtxLoadingComments, err)
		}
	}

	return assembleHistory(out, revisions, comments), nil
}

// assembleHistory раскладывает ревизии по заметкам и комментарии по ревизиям,
// проставляя комментариям порядковый номер их ревизии.
func assembleHistory(out []entities.NoteHistory, revisions []entities.Revision, comments []entities.Comment) []entities.NoteHistory {
	type slot struct{ note, rev int }

	noteIdx := make(map[int64]int, len(out))
	for i := range out {
		noteIdx[out[i].ID] = i
		out[i].Revisions = []entities.RevisionWithComments{}
	}

	revIdx := make(map[int64]slot, len(revisions))
	for _, rev := range revisions {
		n, ok := noteIdx[rev.NoteID]
		if !ok {
			continue
		}
		revIdx[rev.ID] = slot{note: n, rev: len(out[n].Revisions)}
		out[n].Revisions = append(out[n].Revisions, entities.RevisionWithComments{Revision: rev, Comments: []entities.Comment{}})
	}

	for _, cm := range comments {
		s, ok := revIdx[cm.RevisionID]
		if !ok {
			continue
		}
		target := &out[s.note].Revisions[s.rev]
		cm.RevisionOrdinal = target.Ordinal
		target.Comments = append(target.Comments, cm)
	}

	return out
}

package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/domain/query"
	"gonotes/internal/notes/ports/repositories"
	"gonotes/pkg/logger"
)

// ListNotesInput - фильтры списка заметок. Все поля необязательны.
type ListNotesInput struct {
	SectionID *int64
	// AuthorID отменяет фильтр видимости Include.
	AuthorID *int64
	Include  query.IncludeMode
	TimeFrom *time.Time
	TimeTo   *time.Time
	Tags     []string
	AllTags  bool
	Sort     query.SortOrder
	Page     query.Page
	Shape    query.Shape
}

// NoteQueryEngine собирает фильтры в один запрос и разворачивает результат в историю.
type NoteQueryEngine struct {
	notes      repositories.NoteRepository
	visibility *VisibilityResolver
	chain      *RevisionChain
}

// NewNoteQueryEngine создает движок списков заметок.
func NewNoteQueryEngine(notes repositories.NoteRepository, visibility *VisibilityResolver, chain *RevisionChain) *NoteQueryEngine {
	return &NoteQueryEngine{notes: notes, visibility: visibility, chain: chain}
}

// Build переводит входные фильтры в запрос от имени viewerID.
func (e *NoteQueryEngine) Build(ctx context.Context, viewerID int64, in ListNotesInput) (query.NoteQuery, error) {
	q := query.NoteQuery{Sort: in.Sort, Page: in.Page}

	if in.SectionID != nil {
		q.Where(query.SectionIs{SectionID: *in.SectionID})
	}

	if in.AuthorID != nil {
		q.Where(query.AuthorIs{AuthorID: *in.AuthorID})
	} else {
		scope, err := e.visibility.Resolve(ctx, viewerID, in.Include)
		if err != nil {
			return query.NoteQuery{}, err
		}
		q.Where(scope.Predicate())
	}

	if in.TimeFrom != nil {
		q.Where(query.CreatedFrom{From: *in.TimeFrom})
	}
	if in.TimeTo != nil {
		q.Where(query.CreatedTo{To: *in.TimeTo})
	}
	if len(in.Tags) > 0 {
		q.Where(query.BodyContains{Tags: in.Tags, MatchAll: in.AllTags})
	}

	return q, nil
}

// List выполняет запрос и возвращает заметки в форме in.Shape.
func (e *NoteQueryEngine) List(ctx context.Context, viewer *entities.User, in ListNotesInput) ([]entities.NoteHistory, error) {
	q, err := e.Build(ctx, viewer.ID, in)
	if err != nil {
		return nil, err
	}

	notes, err := e.notes.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}

	logger.Log(ctx).Debug(ctx, "notes listed",
		zap.Int64("viewerID", viewer.ID), zap.Int("predicates", len(q.Predicates)), zap.Int("found", len(notes)))

	return e.chain.Expand(ctx, notes, in.Shape)
}

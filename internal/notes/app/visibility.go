package app

import (
	"context"
	"fmt"

	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/domain/query"
	"gonotes/internal/notes/ports/repositories"
)

// VisibilityResolver вычисляет множество авторов, заметки которых видит зритель.
type VisibilityResolver struct {
	relations repositories.RelationRepository
}

// NewVisibilityResolver создает резолвер видимости.
func NewVisibilityResolver(relations repositories.RelationRepository) *VisibilityResolver {
	return &VisibilityResolver{relations: relations}
}

// Resolve загружает подписки или игнор зрителя один раз на запрос.
func (r *VisibilityResolver) Resolve(ctx context.Context, viewerID int64, mode query.IncludeMode) (query.AuthorScope, error) {
	scope := query.AuthorScope{Mode: mode}

	var kind entities.RelationKind
	switch mode {
	case query.IncludeOnlyFollowed:
		kind = entities.RelationFollow
	case query.IncludeOnlyIgnored, query.IncludeExcludingIgnored:
		kind = entities.RelationIgnore
	default:
		return scope, nil
	}

	ids, err := r.relations.TargetIDs(ctx, viewerID, kind)
	if err != nil {
		return query.AuthorScope{}, fmt.Errorf("loading %s targets: %w", kind, err)
	}
	scope.IDs = ids
	return scope, nil
}

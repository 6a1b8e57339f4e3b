package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"gonotes/internal/notes/domain/query"
)

func TestCompileUserQuery(t *testing.T) {
	count := 10

	tests := []struct {
		name     string
		query    query.UserQuery
		wantTail string
		wantArgs []any
	}{
		{
			name:     "all users",
			query:    query.UserQuery{Kind: query.UsersAll, ViewerID: 1},
			wantTail: " ORDER BY id OFFSET $1",
			wantArgs: []any{0},
		},
		{
			name:     "followings",
			query:    query.UserQuery{Kind: query.UsersFollowings, ViewerID: 5},
			wantTail: " WHERE id IN (SELECT target_id FROM user_relations WHERE user_id = $1 AND kind = $2) ORDER BY id OFFSET $3",
			wantArgs: []any{int64(5), "follow", 0},
		},
		{
			name:     "ignored by",
			query:    query.UserQuery{Kind: query.UsersIgnoredBy, ViewerID: 5},
			wantTail: " WHERE id IN (SELECT user_id FROM user_relations WHERE target_id = $1 AND kind = $2) ORDER BY id OFFSET $3",
			wantArgs: []any{int64(5), "ignore", 0},
		},
		{
			name:     "high rating",
			query:    query.UserQuery{Kind: query.UsersHighRating},
			wantTail: " WHERE rating > 0 AND rating = (SELECT MAX(rating) FROM summary WHERE rating > 0) ORDER BY id OFFSET $1",
			wantArgs: []any{0},
		},
		{
			name:     "super sorted with limit",
			query:    query.UserQuery{Kind: query.UsersSuper, Sort: query.SortAsc, Page: query.Page{From: 2, Count: &count}},
			wantTail: " WHERE user_type = $1 ORDER BY rating ASC, id OFFSET $2 LIMIT $3",
			wantArgs: []any{"admin", 2, 10},
		},
		{
			name:     "deleted",
			query:    query.UserQuery{Kind: query.UsersDeleted, Sort: query.SortDesc},
			wantTail: " WHERE deleted ORDER BY rating DESC, id OFFSET $1",
			wantArgs: []any{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := compileUserQuery(tt.query)

			assert.True(t, strings.HasPrefix(sql, userSummarySelect))
			assert.Equal(t, tt.wantTail, strings.TrimPrefix(sql, userSummarySelect))
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

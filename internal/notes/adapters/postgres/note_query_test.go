package postgres_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gonotes/internal/notes/adapters/postgres"
	"gonotes/internal/notes/domain/query"
)

func tail(sql string) string {
	_, after, _ := strings.Cut(sql, ") cur ON TRUE")
	return after
}

func intPtr(v int) *int { return &v }

func TestCompileNoteQuery(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		query    query.NoteQuery
		wantTail string
		wantArgs []any
	}{
		{
			name:     "no filters",
			query:    query.NoteQuery{},
			wantTail: " ORDER BY n.id OFFSET $1",
			wantArgs: []any{0},
		},
		{
			name: "section and author",
			query: query.NoteQuery{Predicates: []query.Predicate{
				query.SectionIs{SectionID: 3},
				query.AuthorIs{AuthorID: 7},
			}},
			wantTail: " WHERE n.section_id = $1 AND n.author_id = $2 ORDER BY n.id OFFSET $3",
			wantArgs: []any{int64(3), int64(7), 0},
		},
		{
			name: "time range",
			query: query.NoteQuery{Predicates: []query.Predicate{
				query.CreatedFrom{From: from},
				query.CreatedTo{To: to},
			}},
			wantTail: " WHERE n.created_at >= $1 AND n.created_at <= $2 ORDER BY n.id OFFSET $3",
			wantArgs: []any{from, to, 0},
		},
		{
			name: "all tags",
			query: query.NoteQuery{Predicates: []query.Predicate{
				query.BodyContains{Tags: []string{"foo", "bar"}, MatchAll: true},
			}},
			wantTail: " WHERE (strpos(cur.body, $1) > 0 AND strpos(cur.body, $2) > 0) ORDER BY n.id OFFSET $3",
			wantArgs: []any{"foo", "bar", 0},
		},
		{
			name: "any tag",
			query: query.NoteQuery{Predicates: []query.Predicate{
				query.BodyContains{Tags: []string{"foo", "bar"}},
			}},
			wantTail: " WHERE (strpos(cur.body, $1) > 0 OR strpos(cur.body, $2) > 0) ORDER BY n.id OFFSET $3",
			wantArgs: []any{"foo", "bar", 0},
		},
		{
			name: "match all without tags does not filter",
			query: query.NoteQuery{Predicates: []query.Predicate{
				query.BodyContains{MatchAll: true},
			}},
			wantTail: " ORDER BY n.id OFFSET $1",
			wantArgs: []any{0},
		},
		{
			name: "author set",
			query: query.NoteQuery{Predicates: []query.Predicate{
				query.AuthorIn{AuthorIDs: []int64{1, 2}},
			}},
			wantTail: " WHERE n.author_id = ANY($1) ORDER BY n.id OFFSET $2",
			wantArgs: []any{[]int64{1, 2}, 0},
		},
		{
			name: "empty author set matches nothing",
			query: query.NoteQuery{Predicates: []query.Predicate{
				query.AuthorIn{},
			}},
			wantTail: " WHERE FALSE ORDER BY n.id OFFSET $1",
			wantArgs: []any{0},
		},
		{
			name: "excluded authors",
			query: query.NoteQuery{Predicates: []query.Predicate{
				query.AuthorNotIn{AuthorIDs: []int64{4}},
			}},
			wantTail: " WHERE NOT (n.author_id = ANY($1)) ORDER BY n.id OFFSET $2",
			wantArgs: []any{[]int64{4}, 0},
		},
		{
			name: "nobody excluded",
			query: query.NoteQuery{Predicates: []query.Predicate{
				query.AuthorNotIn{},
			}},
			wantTail: " ORDER BY n.id OFFSET $1",
			wantArgs: []any{0},
		},
		{
			name: "sorted page",
			query: query.NoteQuery{
				Sort: query.SortDesc,
				Page: query.Page{From: 1, Count: intPtr(1)},
			},
			wantTail: " ORDER BY n.rating DESC, n.id OFFSET $1 LIMIT $2",
			wantArgs: []any{1, 1},
		},
		{
			name:     "ascending",
			query:    query.NoteQuery{Sort: query.SortAsc},
			wantTail: " ORDER BY n.rating ASC, n.id OFFSET $1",
			wantArgs: []any{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := postgres.CompileNoteQuery(tt.query)

			assert.True(t, strings.HasPrefix(sql, "SELECT n.id, n.subject"))
			assert.Equal(t, tt.wantTail, tail(sql))
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestCompileNoteQueryMatchesLatestBody(t *testing.T) {
	sql, _ := postgres.CompileNoteQuery(query.NoteQuery{})

	assert.Contains(t, sql, "ORDER BY r.id DESC LIMIT 1")
	assert.Contains(t, sql, "COUNT(*) OVER () AS ordinal")
}

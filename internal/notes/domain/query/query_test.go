package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonotes/internal/notes/domain/query"
)

func TestParseSortOrder(t *testing.T) {
	testCases := []struct {
		in      string
		want    query.SortOrder
		wantErr bool
	}{
		{"asc", query.SortAsc, false},
		{"ASC", query.SortAsc, false},
		{"Desc", query.SortDesc, false},
		{"none", query.SortNone, false},
		{"up", query.SortNone, true},
		{"", query.SortNone, true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := query.ParseSortOrder(tc.in)
			if tc.wantErr {
				require.ErrorIs(t, err, query.ErrUnknownSortOrder)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNoteQueryWhereSkipsNil(t *testing.T) {
	var q query.NoteQuery
	q.Where(query.SectionIs{SectionID: 1}, nil, query.AuthorScope{Mode: query.IncludeAll}.Predicate())

	assert.Equal(t, []query.Predicate{query.SectionIs{SectionID: 1}}, q.Predicates)
}

func TestAuthorScopePartition(t *testing.T) {
	ignored := []int64{2, 5}
	all := []int64{1, 2, 3, 4, 5, 6}

	only := query.AuthorScope{Mode: query.IncludeOnlyIgnored, IDs: ignored}
	except := query.AuthorScope{Mode: query.IncludeExcludingIgnored, IDs: ignored}
	everyone := query.AuthorScope{Mode: query.IncludeAll}

	for _, id := range all {
		assert.True(t, everyone.Allows(id))
		assert.NotEqual(t, only.Allows(id), except.Allows(id), "author %d must be in exactly one set", id)
	}
}

func TestAuthorScopePredicate(t *testing.T) {
	ids := []int64{3}

	assert.Nil(t, query.AuthorScope{Mode: query.IncludeAll}.Predicate())
	assert.Equal(t, query.AuthorIn{AuthorIDs: ids}, query.AuthorScope{Mode: query.IncludeOnlyFollowed, IDs: ids}.Predicate())
	assert.Equal(t, query.AuthorIn{AuthorIDs: ids}, query.AuthorScope{Mode: query.IncludeOnlyIgnored, IDs: ids}.Predicate())
	assert.Equal(t, query.AuthorNotIn{AuthorIDs: ids}, query.AuthorScope{Mode: query.IncludeExcludingIgnored, IDs: ids}.Predicate())
}

func TestShapeNeedsHistory(t *testing.T) {
	assert.False(t, query.Shape{}.NeedsHistory())
	assert.False(t, query.Shape{CommentVersion: true}.NeedsHistory())
	assert.True(t, query.Shape{AllVersions: true}.NeedsHistory())
	assert.True(t, query.Shape{Comments: true}.NeedsHistory())
}

package postgres_test

import (
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonotes/internal/notes/adapters/postgres"
	"gonotes/internal/notes/domain/apperr"
	"gonotes/internal/notes/domain/entities"
)

var commentRowColumns = []string{"id", "note_id", "revision_id", "author_id", "body", "created_at", "ordinal"}

func TestCommentRepository_Create(t *testing.T) {
	ctx := testContext()
	comment := &entities.Comment{NoteID: 1, RevisionID: 5, AuthorID: 2, Body: "nice", CreatedAt: testTime}

	t.Run("binds to given revision", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("INSERT INTO comments").
			WithArgs(int64(1), int64(5), int64(2), "nice", testTime).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(8)))

		id, err := postgres.NewCommentRepository(mock).Create(ctx, comment)

		require.NoError(t, err)
		assert.Equal(t, int64(8), id)
	})

	t.Run("note removed concurrently", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("INSERT INTO comments").
			WithArgs(int64(1), int64(5), int64(2), "nice", testTime).
			WillReturnError(foreignKeyViolation)

		_, err := postgres.NewCommentRepository(mock).Create(ctx, comment)

		require.ErrorIs(t, err, apperr.ErrNoteNotFound)
	})
}

func TestCommentRepository_FindByID(t *testing.T) {
	ctx := testContext()

	t.Run("found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("FROM comments c WHERE c.id = \\$1").
			WithArgs(int64(8)).
			WillReturnRows(pgxmock.NewRows(commentRowColumns).
				AddRow(int64(8), int64(1), int64(5), int64(2), "nice", testTime, 2))

		c, err := postgres.NewCommentRepository(mock).FindByID(ctx, 8)

		require.NoError(t, err)
		assert.Equal(t, 2, c.RevisionOrdinal)
		assert.Equal(t, int64(1), c.NoteID)
	})

	t.Run("not found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("FROM comments c WHERE c.id = \\$1").WithArgs(int64(8)).WillReturnError(pgx.ErrNoRows)

		_, err := postgres.NewCommentRepository(mock).FindByID(ctx, 8)

		require.ErrorIs(t, err, apperr.ErrCommentNotFound)
	})
}

func TestCommentRepository_Rebind(t *testing.T) {
	ctx := testContext()
	rebind := regexp.QuoteMeta("SET body = $2, revision_id = (SELECT MAX(r.id) FROM revisions r WHERE r.note_id = c.note_id)")

	t.Run("moves comment to latest revision", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(rebind).
			WithArgs(int64(8), "edited").
			WillReturnRows(pgxmock.NewRows(commentRowColumns).
				AddRow(int64(8), int64(1), int64(9), int64(2), "edited", testTime, 3))

		c, err := postgres.NewCommentRepository(mock).Rebind(ctx, 8, "edited")

		require.NoError(t, err)
		assert.Equal(t, int64(9), c.RevisionID)
		assert.Equal(t, 3, c.RevisionOrdinal)
		assert.Equal(t, "edited", c.Body)
	})

	t.Run("not found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(rebind).WithArgs(int64(8), "edited").WillReturnError(pgx.ErrNoRows)

		_, err := postgres.NewCommentRepository(mock).Rebind(ctx, 8, "edited")

		require.ErrorIs(t, err, apperr.ErrCommentNotFound)
	})
}

func TestCommentRepository_Delete(t *testing.T) {
	ctx := testContext()

	t.Run("single comment", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM comments WHERE id = $1`)).
			WithArgs(int64(8)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		require.NoError(t, postgres.NewCommentRepository(mock).Delete(ctx, 8))
	})

	t.Run("only current revision", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM comments WHERE revision_id = (SELECT MAX(id) FROM revisions WHERE note_id = $1)`)).
			WithArgs(int64(1)).
			WillReturnResult(pgxmock.NewResult("DELETE", 2))

		require.NoError(t, postgres.NewCommentRepository(mock).DeleteOnCurrentRevision(ctx, 1))
	})
}

func TestCommentRepository_ListByNotes(t *testing.T) {
	ctx := testContext()
	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.note_id = ANY($1) ORDER BY c.id")).
		WithArgs([]int64{1}).
		WillReturnRows(pgxmock.NewRows(commentRowColumns[:6]).
			AddRow(int64(8), int64(1), int64(5), int64(2), "first", testTime).
			AddRow(int64(9), int64(1), int64(6), int64(3), "second", testTime))

	comments, err := postgres.NewCommentRepository(mock).ListByNotes(ctx, []int64{1})

	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, int64(6), comments[1].RevisionID)
}

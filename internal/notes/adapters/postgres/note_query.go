package postgres

import (
	"strconv"
	"strings"

	"gonotes/internal/notes/domain/query"
)

// noteSelect выбирает заметку вместе с последней ревизией. Номер последней
// ревизии равен числу ревизий заметки.
const noteSelect = "SELECT n.id, n.subject, n.author_id, n.section_id, n.created_at, n.rating, n.rating_count, " +
	"cur.id, cur.body, cur.ordinal, cur.created_at " +
	"FROM notes n JOIN LATERAL (" +
	"SELECT r.id, r.body, r.created_at, COUNT(*) OVER () AS ordinal " +
	"FROM revisions r WHERE r.note_id = n.id ORDER BY r.id DESC LIMIT 1" +
	") cur ON TRUE"

type argList struct {
	args []any
}

// add добавляет параметр и возвращает его плейсхолдер.
func (a *argList) add(v any) string {
	a.args = append(a.args, v)
	return "$" + strconv.Itoa(len(a.args))
}

// CompileNoteQuery сворачивает фильтры, сортировку и страницу в один параметризованный запрос.
func CompileNoteQuery(q query.NoteQuery) (string, []any) {
	a := &argList{}

	conds := make([]string, 0, len(q.Predicates))
	for _, p := range q.Predicates {
		if cond := compilePredicate(a, p); cond != "" {
			conds = append(conds, cond)
		}
	}

	var sb strings.Builder
	sb.WriteString(noteSelect)
	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}

	sb.WriteString(" ORDER BY ")
	switch q.Sort {
	case query.SortAsc:
		sb.WriteString("n.rating ASC, n.id")
	case query.SortDesc:
		sb.WriteString("n.rating DESC, n.id")
	default:
		sb.WriteString("n.id")
	}

	sb.WriteString(" OFFSET ")
	sb.WriteString(a.add(q.Page.From))
	if q.Page.Count != nil {
		sb.WriteString(" LIMIT ")
		sb.WriteString(a.add(*q.Page.Count))
	}

	return sb.String(), a.args
}

// compilePredicate возвращает пустую строку для фильтра, который ничего не ограничивает.
func compilePredicate(a *argList, p query.Predicate) string {
	switch p := p.(type) {
	case query.SectionIs:
		return "n.section_id = " + a.add(p.SectionID)
	case query.AuthorIs:
		return "n.author_id = " + a.add(p.AuthorID)
	case query.AuthorIn:
		if len(p.AuthorIDs) == 0 {
			return "FALSE"
		}
		return "n.author_id = ANY(" + a.add(p.AuthorIDs) + ")"
	case query.AuthorNotIn:
		if len(p.AuthorIDs) == 0 {
			return ""
		}
		return "NOT (n.author_id = ANY(" + a.add(p.AuthorIDs) + "))"
	case query.CreatedFrom:
		return "n.created_at >= " + a.add(p.From)
	case query.CreatedTo:
		return "n.created_at <= " + a.add(p.To)
	case query.BodyContains:
		return compileTags(a, p)
	default:
		return ""
	}
}

func compileTags(a *argList, p query.BodyContains) string {
	parts := make([]string, 0, len(p.Tags))
	for _, tag := range p.Tags {
		parts = append(parts, "strpos(cur.body, "+a.add(tag)+") > 0")
	}
	if len(parts) == 0 {
		return ""
	}

	sep := " OR "
	if p.MatchAll {
		sep = " AND "
	}
	return "(" + strings.Join(parts, sep) + ")"
}

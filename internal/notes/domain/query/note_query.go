// Package query describes note and user listings as typed filter predicates.
// A store adapter folds them into a single query.
package query

import "time"

// Predicate - один фильтр списка заметок. Разные фильтры объединяются через AND.
type Predicate interface {
	predicate()
}

// SectionIs оставляет заметки раздела.
type SectionIs struct{ SectionID int64 }

// AuthorIs оставляет заметки одного автора.
type AuthorIs struct{ AuthorID int64 }

// AuthorIn оставляет заметки авторов из списка. Пустой список не пропускает ничего.
type AuthorIn struct{ AuthorIDs []int64 }

// AuthorNotIn исключает заметки авторов из списка. Пустой список ничего не исключает.
type AuthorNotIn struct{ AuthorIDs []int64 }

// CreatedFrom - нижняя граница времени создания, включительно.
type CreatedFrom struct{ From time.Time }

// CreatedTo - верхняя граница времени создания, включительно.
type CreatedTo struct{ To time.Time }

// BodyContains проверяет теги как подстроки текущего тела заметки с учетом регистра.
// MatchAll требует все теги, иначе хотя бы один. Пустой список тегов не фильтрует.
type BodyContains struct {
	Tags     []string
	MatchAll bool
}

func (SectionIs) predicate()    {}
func (AuthorIs) predicate()     {}
func (AuthorIn) predicate()     {}
func (AuthorNotIn) predicate()  {}
func (CreatedFrom) predicate()  {}
func (CreatedTo) predicate()    {}
func (BodyContains) predicate() {}

// Page - смещение и необязательный размер страницы.
type Page struct {
	From  int
	Count *int
}

// Shape определяет, какие части истории попадают в ответ.
type Shape struct {
	AllVersions    bool
	Comments       bool
	CommentVersion bool
}

// NeedsHistory сообщает, нужна ли загрузка ревизий.
func (s Shape) NeedsHistory() bool {
	return s.AllVersions || s.Comments
}

// NoteQuery - полный запрос списка заметок.
type NoteQuery struct {
	Predicates []Predicate
	Sort       SortOrder
	Page       Page
}

// Where добавляет фильтры, пропуская nil.
func (q *NoteQuery) Where(preds ...Predicate) *NoteQuery {
	for _, p := range preds {
		if p != nil {
			q.Predicates = append(q.Predicates, p)
		}
	}
	return q
}

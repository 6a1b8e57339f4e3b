package query

import "slices"

// IncludeMode - правило видимости авторов для списка заметок.
type IncludeMode int

// Режимы видимости.
const (
	IncludeAll IncludeMode = iota
	IncludeOnlyFollowed
	IncludeOnlyIgnored
	IncludeExcludingIgnored
)

// AuthorScope - множество авторов, допустимых для зрителя.
type AuthorScope struct {
	Mode IncludeMode
	// IDs - подписки для IncludeOnlyFollowed, игнорируемые для остальных режимов.
	IDs []int64
}

// Allows сообщает, входит ли автор в множество.
func (s AuthorScope) Allows(authorID int64) bool {
	switch s.Mode {
	case IncludeOnlyFollowed, IncludeOnlyIgnored:
		return slices.Contains(s.IDs, authorID)
	case IncludeExcludingIgnored:
		return !slices.Contains(s.IDs, authorID)
	default:
		return true
	}
}

// Predicate переводит множество в фильтр. Для IncludeAll возвращает nil.
func (s AuthorScope) Predicate() Predicate {
	switch s.Mode {
	case IncludeOnlyFollowed, IncludeOnlyIgnored:
		return AuthorIn{AuthorIDs: s.IDs}
	case IncludeExcludingIgnored:
		return AuthorNotIn{AuthorIDs: s.IDs}
	default:
		return nil
	}
}

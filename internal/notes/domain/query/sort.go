package query

import (
	"errors"
	"strings"
)

// ErrUnknownSortOrder возвращается для неизвестного порядка сортировки.
var ErrUnknownSortOrder = errors.New("unknown sort order")

// SortOrder - сортировка по рейтингу.
type SortOrder int

// Порядки сортировки. SortNone сохраняет порядок вставки.
const (
	SortNone SortOrder = iota
	SortAsc
	SortDesc
)

// ParseSortOrder разбирает asc/desc без учета регистра.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(s) {
	case "asc":
		return SortAsc, nil
	case "desc":
		return SortDesc, nil
	case "none":
		return SortNone, nil
	default:
		return SortNone, ErrUnknownSortOrder
	}
}

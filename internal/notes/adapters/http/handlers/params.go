package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"gonotes/internal/notes/adapters/http/dto"
	"gonotes/internal/notes/app"
	"gonotes/internal/notes/domain/apperr"
	"gonotes/internal/notes/domain/query"
)

// searchParams - параметры строки запроса. Повторяющиеся имена собираются в список.
type searchParams map[string][]string

// parseSearchParams отклоняет параметры, которых нет в allowed.
func parseSearchParams(c fiber.Ctx, allowed ...string) (searchParams, error) {
	known := make(map[string]struct{}, len(allowed))
	for _, name := range allowed {
		known[name] = struct{}{}
	}

	params := make(searchParams)
	var unknown bool
	c.Request().URI().QueryArgs().VisitAll(func(key, value []byte) {
		name := string(key)
		if _, ok := known[name]; !ok {
			unknown = true
			return
		}
		params[name] = append(params[name], string(value))
	})
	if unknown {
		return nil, apperr.ErrWrongSearchParam
	}
	return params, nil
}

func (p searchParams) value(name string) (string, bool) {
	values, ok := p[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[len(values)-1], true
}

func (p searchParams) int64Ptr(name string) (*int64, error) {
	s, ok := p.value(name)
	if !ok {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, apperr.ErrInvalidParamValue
	}
	return &v, nil
}

func (p searchParams) nonNegative(name string) (*int, error) {
	s, ok := p.value(name)
	if !ok {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return nil, apperr.ErrInvalidParamValue
	}
	return &v, nil
}

func (p searchParams) bool(name string) (bool, error) {
	s, ok := p.value(name)
	if !ok {
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, apperr.ErrInvalidParamValue
	}
	return v, nil
}

func (p searchParams) time(name string) (*time.Time, error) {
	s, ok := p.value(name)
	if !ok {
		return nil, nil
	}
	t, err := dto.ParseTime(s)
	if err != nil {
		return nil, apperr.ErrInvalidParamValue
	}
	return &t, nil
}

func (p searchParams) sort(name string) (query.SortOrder, error) {
	s, ok := p.value(name)
	if !ok {
		return query.SortNone, nil
	}
	order, err := query.ParseSortOrder(s)
	if err != nil {
		return query.SortNone, apperr.ErrInvalidParamValue
	}
	return order, nil
}

// list собирает значения через запятую и повторяющиеся параметры. Пустые элементы отбрасываются.
func (p searchParams) list(name string) []string {
	var out []string
	for _, v := range p[name] {
		for _, part := range strings.Split(v, ",") {
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (p searchParams) page() (query.Page, error) {
	from, err := p.nonNegative("from")
	if err != nil {
		return query.Page{}, err
	}
	count, err := p.nonNegative("count")
	if err != nil {
		return query.Page{}, err
	}

	page := query.Page{Count: count}
	if from != nil {
		page.From = *from
	}
	return page, nil
}

func pathID(c fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil {
		return 0, apperr.ErrInvalidParamValue
	}
	return id, nil
}

var userListKinds = map[string]query.UserListKind{
	"highRating": query.UsersHighRating,
	"lowRating":  query.UsersLowRating,
	"followings": query.UsersFollowings,
	"followers":  query.UsersFollowers,
	"ignore":     query.UsersIgnore,
	"ignoredBy":  query.UsersIgnoredBy,
	"deleted":    query.UsersDeleted,
	"super":      query.UsersSuper,
}

var includeModes = map[string]query.IncludeMode{
	"notIgnore":      query.IncludeExcludingIgnored,
	"onlyFollowings": query.IncludeOnlyFollowed,
	"onlyIgnore":     query.IncludeOnlyIgnored,
}

func parseUserQuery(c fiber.Ctx) (query.UserQuery, error) {
	p, err := parseSearchParams(c, "sortByRating", "type", "from", "count")
	if err != nil {
		return query.UserQuery{}, err
	}

	var q query.UserQuery
	if s, ok := p.value("type"); ok {
		kind, known := userListKinds[s]
		if !known {
			return query.UserQuery{}, apperr.ErrInvalidParamValue
		}
		q.Kind = kind
	}
	if q.Sort, err = p.sort("sortByRating"); err != nil {
		return query.UserQuery{}, err
	}
	if q.Page, err = p.page(); err != nil {
		return query.UserQuery{}, err
	}
	return q, nil
}

func parseNoteQuery(c fiber.Ctx) (in app.ListNotesInput, err error) {
	p, err := parseSearchParams(c, "sectionId", "sortByRating", "tags", "alltags", "timeFrom", "timeTo",
		"user", "include", "comments", "allVersions", "commentVersion", "from", "count")
	if err != nil {
		return in, err
	}

	if in.SectionID, err = p.int64Ptr("sectionId"); err != nil {
		return in, err
	}
	if in.AuthorID, err = p.int64Ptr("user"); err != nil {
		return in, err
	}
	if s, ok := p.value("include"); ok {
		mode, known := includeModes[s]
		if !known {
			return in, apperr.ErrInvalidParamValue
		}
		in.Include = mode
	}
	if in.TimeFrom, err = p.time("timeFrom"); err != nil {
		return in, err
	}
	if in.TimeTo, err = p.time("timeTo"); err != nil {
		return in, err
	}
	in.Tags = p.list("tags")
	if in.AllTags, err = p.bool("alltags"); err != nil {
		return in, err
	}
	if in.Sort, err = p.sort("sortByRating"); err != nil {
		return in, err
	}
	if in.Page, err = p.page(); err != nil {
		return in, err
	}
	if in.Shape.Comments, err = p.bool("comments"); err != nil {
		return in, err
	}
	if in.Shape.AllVersions, err = p.bool("allVersions"); err != nil {
		return in, err
	}
	if in.Shape.CommentVersion, err = p.bool("commentVersion"); err != nil {
		return in, err
	}
	return in, nil
}

package query

// UserListKind выбирает подмножество пользователей для списка.
type UserListKind int

// Виды списков пользователей.
const (
	UsersAll UserListKind = iota
	UsersHighRating
	UsersLowRating
	UsersFollowings
	UsersFollowers
	UsersIgnore
	UsersIgnoredBy
	UsersDeleted
	UsersSuper
)

// UserQuery - запрос списка пользователей от имени ViewerID.
type UserQuery struct {
	Kind     UserListKind
	ViewerID int64
	Sort     SortOrder
	Page     Page
}

package entities

import "time"

// UserType - уровень привилегий пользователя.
type UserType string

// Уровни привилегий.
const (
	UserTypeUser  UserType = "user"
	UserTypeAdmin UserType = "admin"
)

// User - зарегистрированный пользователь. Удаление логическое: строка остается.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Patronymic   string
	Login        string
	PasswordHash string
	Type         UserType
	Deleted      bool
	RegisteredAt time.Time
}

// IsAdmin сообщает, является ли пользователь администратором.
func (u *User) IsAdmin() bool {
	return u.Type == UserTypeAdmin
}

// UserSummary - строка списка пользователей.
type UserSummary struct {
	User
	Online bool
	Rating float64
}

// RelationKind - тип направленной связи между пользователями.
type RelationKind string

// Связи взаимоисключающие для каждой упорядоченной пары.
const (
	RelationFollow RelationKind = "follow"
	RelationIgnore RelationKind = "ignore"
)

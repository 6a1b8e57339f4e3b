package dto

import "gonotes/internal/notes/domain/entities"

// RegisterRequest - тело регистрации.
type RegisterRequest struct {
	FirstName  string `json:"firstName" validate:"required,personname"`
	LastName   string `json:"lastName" validate:"required,personname"`
	Patronymic string `json:"patronymic" validate:"omitempty,personname"`
	Login      string `json:"login" validate:"required,login"`
	Password   string `json:"password" validate:"required,password"`
}

// EditProfileRequest - тело изменения профиля.
type EditProfileRequest struct {
	FirstName   string `json:"firstName" validate:"required,personname"`
	LastName    string `json:"lastName" validate:"required,personname"`
	Patronymic  string `json:"patronymic" validate:"omitempty,personname"`
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,password"`
}

// PasswordRequest - тело удаления учетной записи.
type PasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

// LoginRequest - тело входа.
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginTargetRequest - тело подписки и игнора.
type LoginTargetRequest struct {
	Login string `json:"login" validate:"required"`
}

// ProfileResponse - профиль пользователя.
type ProfileResponse struct {
	ID         int64  `json:"id,omitempty"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Patronymic string `json:"patronymic,omitempty"`
	Login      string `json:"login"`
}

// UserItem - строка списка пользователей.
type UserItem struct {
	ID             int64   `json:"id"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Patronymic     string  `json:"patronymic,omitempty"`
	Login          string  `json:"login"`
	TimeRegistered string  `json:"timeRegistered"`
	Online         bool    `json:"online"`
	Deleted        bool    `json:"deleted"`
	Super          *bool   `json:"super,omitempty"`
	Rating         float64 `json:"rating"`
}

// NewProfile строит профиль без идентификатора.
func NewProfile(u *entities.User) ProfileResponse {
	return ProfileResponse{FirstName: u.FirstName, LastName: u.LastName, Patronymic: u.Patronymic, Login: u.Login}
}

// NewProfileWithID строит профиль с идентификатором.
func NewProfileWithID(u *entities.User) ProfileResponse {
	p := NewProfile(u)
	p.ID = u.ID
	return p
}

// NewUserItems строит список пользователей. Признак super видят только администраторы.
func NewUserItems(users []entities.UserSummary, viewerIsAdmin bool) []UserItem {
	items := make([]UserItem, 0, len(users))
	for i := range users {
		u := &users[i]
		item := UserItem{
			ID:             u.ID,
			FirstName:      u.FirstName,
			LastName:       u.LastName,
			Patronymic:     u.Patronymic,
			Login:          u.Login,
			TimeRegistered: FormatTime(u.RegisteredAt),
			Online:         u.Online,
			Deleted:        u.Deleted,
			Rating:         u.Rating,
		}
		if viewerIsAdmin {
			isAdmin := u.IsAdmin()
			item.Super = &isAdmin
		}
		items = append(items, item)
	}
	return items
}

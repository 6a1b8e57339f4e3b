package entities

import "time"

// Session связывает непрозрачный токен с пользователем.
// У пользователя не больше одной сессии.
type Session struct {
	Token        string
	UserID       int64
	LastActivity time.Time
}

// Expired сообщает, превышен ли допустимый простой на момент now.
func (s *Session) Expired(now time.Time, idle time.Duration) bool {
	return now.Sub(s.LastActivity) > idle
}

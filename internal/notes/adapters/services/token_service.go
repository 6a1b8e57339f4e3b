package services

import (
	"time"

	"github.com/google/uuid"

	svc "gonotes/internal/notes/ports/services"
)

// UUIDTokens выдает токены сессий в виде случайных UUID v4.
type UUIDTokens struct{}

// NewUUIDTokens создает генератор токенов.
func NewUUIDTokens() svc.TokenGenerator {
	return UUIDTokens{}
}

// Generate возвращает новый токен.
func (UUIDTokens) Generate() string {
	return uuid.NewString()
}

// SystemClock возвращает время UTC с точностью до микросекунды, как его хранит Postgres.
type SystemClock struct{}

// Now возвращает текущее время.
func (SystemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

package services

import (
	"context"

	"gonotes/internal/notes/ports/services"
)

// ServiceFactory создает все вспомогательные сервисы.
type ServiceFactory struct {
	passwordService services.PasswordService
	tokenGenerator  services.TokenGenerator
	clock           services.Clock
	throttle        services.LoginThrottle
}

// NewServiceFactory создает фабрику. throttle == nil отключает ограничение попыток входа.
func NewServiceFactory(bcryptCost int, throttle services.LoginThrottle) *ServiceFactory {
	if throttle == nil {
		throttle = NopThrottle{}
	}
	return &ServiceFactory{
		passwordService: NewBcrypt(bcryptCost),
		tokenGenerator:  NewUUIDTokens(),
		clock:           SystemClock{},
		throttle:        throttle,
	}
}

// PasswordService возвращает сервис для работы с паролями.
func (f *ServiceFactory) PasswordService() services.PasswordService {
	return f.passwordService
}

// TokenGenerator возвращает генератор токенов сессий.
func (f *ServiceFactory) TokenGenerator() services.TokenGenerator {
	return f.tokenGenerator
}

// Clock возвращает часы.
func (f *ServiceFactory) Clock() services.Clock {
	return f.clock
}

// LoginThrottle возвращает ограничитель попыток входа.
func (f *ServiceFactory) LoginThrottle() services.LoginThrottle {
	return f.throttle
}

// NopThrottle не ограничивает попытки входа.
type NopThrottle struct{}

// Allowed всегда разрешает попытку.
func (NopThrottle) Allowed(context.Context, string) (bool, error) { return true, nil }

// Failed ничего не делает.
func (NopThrottle) Failed(context.Context, string) error { return nil }

// Reset ничего не делает.
func (NopThrottle) Reset(context.Context, string) error { return nil }

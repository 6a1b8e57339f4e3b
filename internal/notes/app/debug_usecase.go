package app

import (
	"context"
	"fmt"
	"time"

	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/ports/repositories"
	"gonotes/pkg/logger"
)

// Settings - ограничения, которые клиенту полезно знать заранее.
type Settings struct {
	MaxNameLength     int
	MinPasswordLength int
	UserIdleTimeout   time.Duration
}

// DebugUseCase обслуживает служебный API: очистку данных и создание администратора.
type DebugUseCase struct {
	maintenance repositories.MaintenanceRepository
	users       *UserUseCase
	settings    Settings
}

// NewDebugUseCase создает служебный сервис.
func NewDebugUseCase(maintenance repositories.MaintenanceRepository, users *UserUseCase, settings Settings) *DebugUseCase {
	return &DebugUseCase{maintenance: maintenance, users: users, settings: settings}
}

// Clear удаляет все данные.
func (uc *DebugUseCase) Clear(ctx context.Context) error {
	if err := uc.maintenance.Clear(ctx); err != nil {
		return fmt.Errorf("clearing database: %w", err)
	}
	logger.Log(ctx).Warn(ctx, "all data cleared")
	return nil
}

// RegisterAdmin регистрирует администратора и открывает ему сессию.
func (uc *DebugUseCase) RegisterAdmin(ctx context.Context, in RegisterInput) (*entities.User, string, error) {
	return uc.users.RegisterAdmin(ctx, in)
}

// Settings возвращает текущие ограничения.
func (uc *DebugUseCase) Settings() Settings {
	return uc.settings
}

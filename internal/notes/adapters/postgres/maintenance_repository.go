package postgres

import (
	"context"
	"fmt"

	"gonotes/internal/notes/ports/repositories"
	"gonotes/pkg/logger"
)

// MaintenanceRepository реализует repositories.MaintenanceRepository.
type MaintenanceRepository struct {
	pool PgxPoolInterface
}

// NewMaintenanceRepository создает репозиторий служебных операций.
func NewMaintenanceRepository(pool PgxPoolInterface) repositories.MaintenanceRepository {
	return &MaintenanceRepository{pool: pool}
}

// Clear удаляет все данные и сбрасывает последовательности.
func (r *MaintenanceRepository) Clear(ctx context.Context) error {
	_, err := conn(ctx, r.pool).Exec(ctx,
		`TRUNCATE comments, revisions, notes, sections, user_relations, sessions, users RESTART IDENTITY CASCADE`)
	if err != nil {
		return fmt.Errorf("failed to clear database: %w", err)
	}

	logger.Log(ctx).Info(ctx, "database cleared")
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/ports/repositories"
	"gonotes/pkg/logger"
)

// RelationRepository реализует repositories.RelationRepository.
type RelationRepository struct {
	pool PgxPoolInterface
}

// NewRelationRepository создает репозиторий подписок и игнора.
func NewRelationRepository(pool PgxPoolInterface) repositories.RelationRepository {
	return &RelationRepository{pool: pool}
}

// Put записывает связь пары. Прежняя связь другого типа заменяется в той же строке.
func (r *RelationRepository) Put(ctx context.Context, userID, targetID int64, kind entities.RelationKind) error {
	log := logger.Log(ctx).With(zap.String("repository", "relation"), zap.String("method", "Put"))
	log.Debug(ctx, "storing relation",
		zap.Int64("userID", userID), zap.Int64("targetID", targetID), zap.String("kind", string(kind)))

	_, err := conn(ctx, r.pool).Exec(ctx,
		`INSERT INTO user_relations (user_id, target_id, kind) VALUES ($1, $2, $3)
		ON CONFLICT (user_id, target_id) DO UPDATE SET kind = EXCLUDED.kind`,
		userID, targetID, string(kind),
	)
	if err != nil {
		log.Error(ctx, "failed to store relation", zap.Error(err))
		return fmt.Errorf("failed to store relation: %w", err)
	}

	return nil
}

// Remove удаляет связь пары, если она имеет тип kind.
func (r *RelationRepository) Remove(ctx context.Context, userID, targetID int64, kind entities.RelationKind) error {
	_, err := conn(ctx, r.pool).Exec(ctx,
		`DELETE FROM user_relations WHERE user_id = $1 AND target_id = $2 AND kind = $3`,
		userID, targetID, string(kind),
	)
	if err != nil {
		logger.Log(ctx).Error(ctx, "failed to remove relation", zap.Error(err))
		return fmt.Errorf("failed to remove relation: %w", err)
	}

	return nil
}

// TargetIDs возвращает пользователей, с которыми userID связан отношением kind.
func (r *RelationRepository) TargetIDs(ctx context.Context, userID int64, kind entities.RelationKind) ([]int64, error) {
	log := logger.Log(ctx).With(zap.String("repository", "relation"), zap.String("method", "TargetIDs"))

	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT target_id FROM user_relations WHERE user_id = $1 AND kind = $2 ORDER BY target_id`,
		userID, string(kind),
	)
	if err != nil {
		log.Error(ctx, "failed to list relations", zap.Error(err))
		return nil, fmt.Errorf("failed to list relations: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan relation: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return ids, nil
}

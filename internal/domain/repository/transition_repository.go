package repository

import (
	"context"

	"github.com/jhoicas/people360/internal/domain/entity"
)

// TransitionRepository persiste la auditoría de cambios de estado.
type TransitionRepository interface {
	Create(ctx context.Context, t *entity.StatusTransition) error
	ListByEntity(ctx context.Context, companyID, entityType, entityID string) ([]*entity.StatusTransition, error)
	ListRecent(ctx context.Context, companyID string, limit int) ([]*entity.StatusTransition, error)
}

package repository

import (
	"context"

	"github.com/jhoicas/people360/internal/domain/entity"
)

// LeadFilter filtros para listar leads.
type LeadFilter struct {
	Page
	Stage      string
	Priority   string
	CustomerID string
	OwnerID    string
	Query      string
}

// LeadRepository define el puerto de persistencia para Lead.
type LeadRepository interface {
	Create(ctx context.Context, l *entity.Lead) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Lead, error)
	Update(ctx context.Context, l *entity.Lead) error
	List(ctx context.Context, companyID string, f LeadFilter) ([]*entity.Lead, int, error)
	// Delete borra la oportunidad y sus actividades.
	Delete(ctx context.Context, companyID, id string) error
}

// LeadActivityRepository define el puerto de persistencia para LeadActivity.
type LeadActivityRepository interface {
	Create(ctx context.Context, a *entity.LeadActivity) error
	ListByLead(ctx context.Context, companyID, leadID string) ([]*entity.LeadActivity, error)
}

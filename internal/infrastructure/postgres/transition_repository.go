package postgres

import (
	"context"

	"github.com/jhoicas/people360/internal/domain/entity"
	"github.com/jhoicas/people360/internal/domain/repository"
)

var _ repository.TransitionRepository = (*TransitionRepo)(nil)

const transitionColumns = `id, company_id, entity_type, entity_id, from_status, to_status, changed_by, changed_at, note`

// TransitionRepo persiste la auditoría de cambios de estado (solo inserción).
type TransitionRepo struct {
	q Querier
}

// NewTransitionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransitionRepository(q Querier) *TransitionRepo {
	return &TransitionRepo{q: q}
}

// Create registra una transición.
func (r *TransitionRepo) Create(ctx context.Context, t *entity.StatusTransition) error {
	query := `INSERT INTO status_transitions (` + transitionColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.CompanyID, t.EntityType, t.EntityID, t.FromStatus, t.ToStatus, t.ChangedBy, t.ChangedAt, t.Note)
	if err != nil {
		return dbError("insert status transition", err)
	}
	return nil
}

// ListByEntity devuelve el historial de una entidad en orden cronológico.
func (r *TransitionRepo) ListByEntity(ctx context.Context, companyID, entityType, entityID string) ([]*entity.StatusTransition, error) {
	return r.list(ctx, `SELECT `+transitionColumns+` FROM status_transitions
		WHERE company_id = $1 AND entity_type = $2 AND entity_id = $3 ORDER BY changed_at, id`,
		companyID, entityType, entityID)
}

// ListRecent devuelve las últimas transiciones de la empresa.
func (r *TransitionRepo) ListRecent(ctx context.Context, companyID string, limit int) ([]*entity.StatusTransition, error) {
	return r.list(ctx, `SELECT `+transitionColumns+` FROM status_transitions
		WHERE company_id = $1 ORDER BY changed_at DESC, id LIMIT $2`, companyID, limit)
}

func (r *TransitionRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StatusTransition, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, dbError("list status transitions", err)
	}
	defer rows.Close()
	var list []*entity.StatusTransition
	for rows.Next() {
		var t entity.StatusTransition
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.EntityType, &t.EntityID, &t.FromStatus, &t.ToStatus,
			&t.ChangedBy, &t.ChangedAt, &t.Note); err != nil {
			return nil, dbError("scan status transition", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

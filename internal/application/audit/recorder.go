// Package audit registra las transiciones de estado y avisa a la caché del dashboard
// después de cada escritura.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/application/ports"
	"github.com/jhoicas/people360/internal/domain/entity"
	"github.com/jhoicas/people360/internal/domain/repository"
)

// Change datos de una transición legal ya validada.
type Change struct {
	CompanyID  string
	EntityType string
	EntityID   string
	From       string
	To         string
	ChangedBy  string
	Note       string
	At         time.Time
}

// Recorder un Recorder nil o sin caché es válido: solo omite la invalidación.
type Recorder struct {
	cache ports.DashboardCache
}

// NewRecorder cache puede ser nil (Redis deshabilitado).
func NewRecorder(cache ports.DashboardCache) *Recorder {
	return &Recorder{cache: cache}
}

// Transition escribe la fila de auditoría con el repo recibido (normalmente el de la tx en curso).
func (r *Recorder) Transition(ctx context.Context, repo repository.TransitionRepository, c Change) (*entity.StatusTransition, error) {
	at := c.At
	if at.IsZero() {
		at = time.Now()
	}
	t := &entity.StatusTransition{
		ID:         uuid.New().String(),
		CompanyID:  c.CompanyID,
		EntityType: c.EntityType,
		EntityID:   c.EntityID,
		FromStatus: c.From,
		ToStatus:   c.To,
		ChangedBy:  c.ChangedBy,
		ChangedAt:  at,
		Note:       c.Note,
	}
	if err := repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Touch invalida el dashboard de la empresa. Un fallo solo se registra.
func (r *Recorder) Touch(ctx context.Context, companyID string) {
	if r == nil || r.cache == nil {
		return
	}
	if err := r.cache.Invalidate(ctx, companyID); err != nil {
		log.Warn().Err(err).Str("company_id", companyID).Msg("no se pudo invalidar la caché del dashboard")
	}
}

// History historial de estados de una entidad, en orden cronológico.
func History(ctx context.Context, repo repository.TransitionRepository, companyID, entityType, entityID string) ([]dto.TransitionResponse, error) {
	list, err := repo.ListByEntity(ctx, companyID, entityType, entityID)
	if err != nil {
		return nil, err
	}
	return ToResponses(list), nil
}

// ToResponses mapea filas de auditoría a DTO; nunca devuelve nil.
func ToResponses(list []*entity.StatusTransition) []dto.TransitionResponse {
	out := make([]dto.TransitionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.TransitionResponse{
			ID:         t.ID,
			EntityType: t.EntityType,
			EntityID:   t.EntityID,
			FromStatus: t.FromStatus,
			ToStatus:   t.ToStatus,
			ChangedBy:  t.ChangedBy,
			ChangedAt:  t.ChangedAt.UTC().Format(time.RFC3339),
			Note:       t.Note,
		})
	}
	return out
}

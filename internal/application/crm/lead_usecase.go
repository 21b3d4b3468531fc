package crm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/people360/internal/application/audit"
	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/application/ports"
	"github.com/jhoicas/people360/internal/domain"
	"github.com/jhoicas/people360/internal/domain/entity"
	"github.com/jhoicas/people360/internal/domain/repository"
	"github.com/jhoicas/people360/internal/domain/workflow"
	"github.com/jhoicas/people360/pkg/sanitize"
	"github.com/jhoicas/people360/pkg/validator"
)

// LeadUseCase oportunidades comerciales y su pipeline.
type LeadUseCase struct {
	repos    repository.Repos
	tx       ports.TxRunner
	recorder *audit.Recorder
	now      func() time.Time
}

// NewLeadUseCase construye el caso de uso.
func NewLeadUseCase(repos repository.Repos, tx ports.TxRunner, recorder *audit.Recorder) *LeadUseCase {
	return &LeadUseCase{repos: repos, tx: tx, recorder: recorder, now: time.Now}
}

// Create registra la oportunidad en la etapa new.
func (uc *LeadUseCase) Create(ctx context.Context, companyID, actorID string, in dto.CreateLeadRequest) (*dto.LeadResponse, error) {
	in.Normalize()
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	if !dto.AmountInRange(in.EstimatedValue) {
		return nil, fmt.Errorf("%w: estimated_value fuera de rango", domain.ErrInvalidInput)
	}
	expected, err := dto.ParseOptionalDate(in.ExpectedCloseDate)
	if err != nil {
		return nil, err
	}
	customer, err := uc.repos.Customers.GetByID(ctx, companyID, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: customer_id no existe", domain.ErrInvalidInput)
	}
	now := uc.now()
	l := &entity.Lead{
		ID:                uuid.New().String(),
		CompanyID:         companyID,
		Code:              entity.NewCode(entity.PrefixLead),
		Title:             sanitize.Text(in.Title),
		CustomerID:        customer.ID,
		ContactName:       sanitize.Text(in.ContactName),
		ContactEmail:      strings.ToLower(strings.TrimSpace(in.ContactEmail)),
		Source:            orDefault(in.Source, "website"),
		Priority:          orDefault(in.Priority, entity.PriorityMedium),
		EstimatedValue:    in.EstimatedValue,
		Probability:       in.Probability,
		Stage:             workflow.LeadPipeline.Initial(),
		ExpectedCloseDate: expected,
		Description:       sanitize.RichText(in.Description),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	owner := in.OwnerID
	if owner == "" {
		owner = actorID
	} else if err := checkUser(ctx, uc.repos.Users, companyID, "owner_id", owner); err != nil {
		return nil, err
	}
	l.OwnerID = &owner
	if err := uc.repos.Leads.Create(ctx, l); err != nil {
		return nil, err
	}
	uc.recorder.Touch(ctx, companyID)
	log.Info().Str("lead_id", l.ID).Str("customer_id", l.CustomerID).Msg("oportunidad creada")
	return ToLeadResponse(l), nil
}

// GetByID obtiene la oportunidad.
func (uc *LeadUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.LeadResponse, error) {
	l, err := getLead(ctx, uc.repos.Leads, companyID, id)
	if err != nil {
		return nil, err
	}
	return ToLeadResponse(l), nil
}

// List lista oportunidades con filtros.
func (uc *LeadUseCase) List(ctx context.Context, companyID string, q dto.LeadListQuery) (dto.Paginated[dto.LeadResponse], error) {
	list, total, err := uc.repos.Leads.List(ctx, companyID, repository.LeadFilter{
		Page:       repository.Page{Limit: q.Limit(), Offset: q.Offset()},
		Stage:      q.Stage,
		Priority:   q.Priority,
		CustomerID: q.CustomerID,
		Query:      strings.TrimSpace(q.Q),
	})
	if err != nil {
		return dto.Paginated[dto.LeadResponse]{}, err
	}
	out := make([]dto.LeadResponse, 0, len(list))
	for _, l := range list {
		out = append(out, *ToLeadResponse(l))
	}
	return dto.NewPaginated(out, total, q.PageQuery), nil
}

// Update modifica los datos comerciales. La etapa se conserva tal cual.
func (uc *LeadUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateLeadRequest) (*dto.LeadResponse, error) {
	in.Normalize()
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	l, err := getLead(ctx, uc.repos.Leads, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		l.Title = sanitize.Text(*in.Title)
	}
	if in.OwnerID != nil {
		if err := checkUser(ctx, uc.repos.Users, companyID, "owner_id", *in.OwnerID); err != nil {
			return nil, err
		}
		l.OwnerID = in.OwnerID
	}
	if in.ContactName != nil {
		l.ContactName = sanitize.Text(*in.ContactName)
	}
	if in.ContactEmail != nil {
		l.ContactEmail = strings.ToLower(strings.TrimSpace(*in.ContactEmail))
	}
	setIf(&l.Source, in.Source)
	setIf(&l.Priority, in.Priority)
	if in.EstimatedValue != nil {
		if !dto.AmountInRange(*in.EstimatedValue) {
			return nil, fmt.Errorf("%w: estimated_value fuera de rango", domain.ErrInvalidInput)
		}
		l.EstimatedValue = *in.EstimatedValue
	}
	if in.Probability != nil {
		l.Probability = *in.Probability
	}
	if in.ExpectedCloseDate != nil {
		if l.ExpectedCloseDate, err = dto.ParseOptionalDate(*in.ExpectedCloseDate); err != nil {
			return nil, err
		}
	}
	if in.Description != nil {
		l.Description = sanitize.RichText(*in.Description)
	}
	l.UpdatedAt = uc.now()
	if err := uc.repos.Leads.Update(ctx, l); err != nil {
		return nil, err
	}
	uc.recorder.Touch(ctx, companyID)
	return ToLeadResponse(l), nil
}

// ChangeStage mueve la oportunidad en el pipeline. En la misma transacción escribe
// la auditoría y una actividad status_change. won y lost fijan la fecha de cierre.
func (uc *LeadUseCase) ChangeStage(ctx context.Context, companyID, actorID, id string, in dto.LeadStageRequest) (*dto.LeadResponse, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	var out *entity.Lead
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		l, err := getLead(ctx, repos.Leads, companyID, id)
		if err != nil {
			return err
		}
		if err := workflow.LeadPipeline.Validate(l.Stage, in.Stage); err != nil {
			return err
		}
		now := uc.now()
		from := l.Stage
		l.Stage = in.Stage
		l.UpdatedAt = now
		switch in.Stage {
		case entity.LeadStageWon:
			l.Probability = 100
			l.ActualCloseDate = &now
		case entity.LeadStageLost:
			l.Probability = 0
			l.ActualCloseDate = &now
		}
		if err := repos.Leads.Update(ctx, l); err != nil {
			return err
		}
		if _, err := uc.recorder.Transition(ctx, repos.Transitions, audit.Change{
			CompanyID: companyID, EntityType: entity.EntityLead, EntityID: l.ID,
			From: from, To: l.Stage, ChangedBy: actorID, Note: in.Note, At: now,
		}); err != nil {
			return err
		}
		out = l
		return repos.LeadActivities.Create(ctx, &entity.LeadActivity{
			ID:          uuid.New().String(),
			CompanyID:   companyID,
			LeadID:      l.ID,
			Type:        entity.ActivityStatusChange,
			Subject:     fmt.Sprintf("Status changed from %s to %s", from, l.Stage),
			Description: sanitize.Text(in.Note),
			CreatedBy:   actorID,
			CreatedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.recorder.Touch(ctx, companyID)
	return ToLeadResponse(out), nil
}

// Delete borra la oportunidad con sus actividades. La auditoría de etapas se conserva.
func (uc *LeadUseCase) Delete(ctx context.Context, companyID, id string) error {
	if err := uc.repos.Leads.Delete(ctx, companyID, id); err != nil {
		return err
	}
	uc.recorder.Touch(ctx, companyID)
	log.Info().Str("lead_id", id).Msg("oportunidad eliminada")
	return nil
}

// History auditoría de etapas de la oportunidad.
func (uc *LeadUseCase) History(ctx context.Context, companyID, id string) ([]dto.TransitionResponse, error) {
	if _, err := getLead(ctx, uc.repos.Leads, companyID, id); err != nil {
		return nil, err
	}
	return audit.History(ctx, uc.repos.Transitions, companyID, entity.EntityLead, id)
}

// AddActivity registra una llamada, correo, reunión o nota.
func (uc *LeadUseCase) AddActivity(ctx context.Context, companyID, actorID, leadID string, in dto.CreateLeadActivityRequest) (*dto.LeadActivityResponse, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	followUp, err := dto.ParseOptionalDate(in.FollowUpDate)
	if err != nil {
		return nil, err
	}
	l, err := getLead(ctx, uc.repos.Leads, companyID, leadID)
	if err != nil {
		return nil, err
	}
	a := &entity.LeadActivity{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		LeadID:       l.ID,
		Type:         in.Type,
		Subject:      sanitize.Text(in.Subject),
		Description:  sanitize.RichText(in.Description),
		Outcome:      sanitize.Text(in.Outcome),
		FollowUpDate: followUp,
		CreatedBy:    actorID,
		CreatedAt:    uc.now(),
	}
	if err := uc.repos.LeadActivities.Create(ctx, a); err != nil {
		return nil, err
	}
	return toActivityResponse(a), nil
}

// Activities historial comercial de la oportunidad.
func (uc *LeadUseCase) Activities(ctx context.Context, companyID, leadID string) ([]dto.LeadActivityResponse, error) {
	if _, err := getLead(ctx, uc.repos.Leads, companyID, leadID); err != nil {
		return nil, err
	}
	list, err := uc.repos.LeadActivities.ListByLead(ctx, companyID, leadID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LeadActivityResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toActivityResponse(a))
	}
	return out, nil
}

func getLead(ctx context.Context, repo repository.LeadRepository, companyID, id string) (*entity.Lead, error) {
	l, err := repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	return l, nil
}

// ToLeadResponse mapea la entidad a DTO.
func ToLeadResponse(l *entity.Lead) *dto.LeadResponse {
	return &dto.LeadResponse{
		ID:                l.ID,
		Code:              l.Code,
		Title:             l.Title,
		CustomerID:        l.CustomerID,
		OwnerID:           l.OwnerID,
		ContactName:       l.ContactName,
		ContactEmail:      l.ContactEmail,
		Source:            l.Source,
		Priority:          l.Priority,
		EstimatedValue:    l.EstimatedValue,
		Probability:       l.Probability,
		WeightedValue:     l.WeightedValue(),
		Stage:             l.Stage,
		StageLabel:        entity.LeadStageLabel(l.Stage),
		ExpectedCloseDate: dto.FormatDatePtr(l.ExpectedCloseDate),
		ActualCloseDate:   dto.FormatDatePtr(l.ActualCloseDate),
		Description:       l.Description,
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
}

func toActivityResponse(a *entity.LeadActivity) *dto.LeadActivityResponse {
	return &dto.LeadActivityResponse{
		ID:           a.ID,
		LeadID:       a.LeadID,
		Type:         a.Type,
		Subject:      a.Subject,
		Description:  a.Description,
		Outcome:      a.Outcome,
		FollowUpDate: dto.FormatDatePtr(a.FollowUpDate),
		CreatedBy:    a.CreatedBy,
		CreatedAt:    a.CreatedAt,
	}
}

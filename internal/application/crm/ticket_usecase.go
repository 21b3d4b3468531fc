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

// TicketUseCase tickets de soporte, sus respuestas y su flujo de estados.
type TicketUseCase struct {
	repos    repository.Repos
	tx       ports.TxRunner
	recorder *audit.Recorder
	notifier ports.Notifier
	now      func() time.Time
}

// NewTicketUseCase notifier puede ser nil.
func NewTicketUseCase(repos repository.Repos, tx ports.TxRunner, recorder *audit.Recorder, notifier ports.Notifier) *TicketUseCase {
	return &TicketUseCase{repos: repos, tx: tx, recorder: recorder, notifier: notifier, now: time.Now}
}

// Create abre un ticket para un cliente existente.
func (uc *TicketUseCase) Create(ctx context.Context, companyID string, in dto.CreateTicketRequest) (*dto.TicketResponse, error) {
	in.Normalize()
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	customer, err := uc.repos.Customers.GetByID(ctx, companyID, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: customer_id no existe", domain.ErrInvalidInput)
	}
	if err := checkUser(ctx, uc.repos.Users, companyID, "assigned_to", in.AssignedTo); err != nil {
		return nil, err
	}
	now := uc.now()
	t := &entity.Ticket{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Code:        entity.NewCode(entity.PrefixTicket),
		CustomerID:  customer.ID,
		Subject:     sanitize.Text(in.Subject),
		Description: sanitize.RichText(in.Description),
		Category:    strings.ToLower(orDefault(in.Category, "general")),
		Priority:    orDefault(in.Priority, entity.PriorityMedium),
		Severity:    orDefault(in.Severity, entity.SeverityMinor),
		Status:      workflow.TicketStatus.Initial(),
		Channel:     orDefault(in.Channel, "email"),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.AssignedTo != "" {
		t.AssignedTo = &in.AssignedTo
	}
	if err := uc.repos.Tickets.Create(ctx, t); err != nil {
		return nil, err
	}
	uc.recorder.Touch(ctx, companyID)
	log.Info().Str("ticket_id", t.ID).Str("code", t.Code).Str("priority", t.Priority).Msg("ticket creado")
	return uc.toResponse(t), nil
}

// GetByID obtiene el ticket.
func (uc *TicketUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.TicketResponse, error) {
	t, err := getTicket(ctx, uc.repos.Tickets, companyID, id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(t), nil
}

// List lista tickets con filtros.
func (uc *TicketUseCase) List(ctx context.Context, companyID string, q dto.TicketListQuery) (dto.Paginated[dto.TicketResponse], error) {
	list, total, err := uc.repos.Tickets.List(ctx, companyID, repository.TicketFilter{
		Page:       repository.Page{Limit: q.Limit(), Offset: q.Offset()},
		Status:     q.Status,
		Priority:   q.Priority,
		CustomerID: q.CustomerID,
		AssignedTo: q.AssignedTo,
		Query:      strings.TrimSpace(q.Q),
	})
	if err != nil {
		return dto.Paginated[dto.TicketResponse]{}, err
	}
	out := make([]dto.TicketResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *uc.toResponse(t))
	}
	return dto.NewPaginated(out, total, q.PageQuery), nil
}

// Update modifica los datos del ticket; el estado solo cambia con ChangeStatus.
// La calificación de satisfacción solo se acepta con el ticket resuelto o cerrado.
func (uc *TicketUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateTicketRequest) (*dto.TicketResponse, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	t, err := getTicket(ctx, uc.repos.Tickets, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Subject != nil {
		t.Subject = sanitize.Text(*in.Subject)
	}
	if in.Description != nil {
		t.Description = sanitize.RichText(*in.Description)
	}
	if in.Category != nil {
		t.Category = strings.ToLower(strings.TrimSpace(*in.Category))
	}
	setIf(&t.Priority, in.Priority)
	setIf(&t.Severity, in.Severity)
	if in.AssignedTo != nil {
		if err := checkUser(ctx, uc.repos.Users, companyID, "assigned_to", *in.AssignedTo); err != nil {
			return nil, err
		}
		t.AssignedTo = in.AssignedTo
	}
	if in.SatisfactionRating != nil {
		if !t.IsClosedForSLA() {
			return nil, fmt.Errorf("%w: solo se califica un ticket resuelto", domain.ErrConflict)
		}
		t.SatisfactionRating = in.SatisfactionRating
	}
	t.UpdatedAt = uc.now()
	if err := uc.repos.Tickets.Update(ctx, t); err != nil {
		return nil, err
	}
	uc.recorder.Touch(ctx, companyID)
	return uc.toResponse(t), nil
}

// ChangeStatus mueve el ticket por open → in_progress ⇄ waiting → resolved → closed,
// audita el cambio y avisa al cliente. resolved fija la fecha de resolución.
func (uc *TicketUseCase) ChangeStatus(ctx context.Context, companyID, actorID, id string, in dto.StatusChangeRequest) (*dto.TicketResponse, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	var (
		out      *entity.Ticket
		from     string
		customer *entity.Customer
	)
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		t, err := getTicket(ctx, repos.Tickets, companyID, id)
		if err != nil {
			return err
		}
		if err := workflow.TicketStatus.Validate(t.Status, in.Status); err != nil {
			return err
		}
		now := uc.now()
		from = t.Status
		t.Status = in.Status
		t.UpdatedAt = now
		if in.Status == entity.TicketStatusResolved && t.ResolutionDate == nil {
			t.ResolutionDate = &now
		}
		if err := repos.Tickets.Update(ctx, t); err != nil {
			return err
		}
		if _, err := uc.recorder.Transition(ctx, repos.Transitions, audit.Change{
			CompanyID: companyID, EntityType: entity.EntityTicket, EntityID: t.ID,
			From: from, To: t.Status, ChangedBy: actorID, Note: in.Note, At: now,
		}); err != nil {
			return err
		}
		if customer, err = repos.Customers.GetByID(ctx, companyID, t.CustomerID); err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.recorder.Touch(ctx, companyID)
	uc.notify(ctx, out, customer, from)
	return uc.toResponse(out), nil
}

func (uc *TicketUseCase) notify(ctx context.Context, t *entity.Ticket, c *entity.Customer, from string) {
	if uc.notifier == nil || c == nil || c.Email == "" {
		return
	}
	err := uc.notifier.TicketStatusChanged(ctx, ports.TicketUpdate{
		To:         c.Email,
		Customer:   c.DisplayName(),
		TicketCode: t.Code,
		Subject:    t.Subject,
		FromStatus: from,
		ToStatus:   t.Status,
	})
	if err != nil {
		log.Warn().Err(err).Str("ticket_id", t.ID).Msg("no se pudo notificar el cambio de estado del ticket")
	}
}

// Delete borra el ticket con sus respuestas. La auditoría de estados se conserva.
func (uc *TicketUseCase) Delete(ctx context.Context, companyID, id string) error {
	if err := uc.repos.Tickets.Delete(ctx, companyID, id); err != nil {
		return err
	}
	uc.recorder.Touch(ctx, companyID)
	log.Info().Str("ticket_id", id).Msg("ticket eliminado")
	return nil
}

// History auditoría de estados del ticket.
func (uc *TicketUseCase) History(ctx context.Context, companyID, id string) ([]dto.TransitionResponse, error) {
	if _, err := getTicket(ctx, uc.repos.Tickets, companyID, id); err != nil {
		return nil, err
	}
	return audit.History(ctx, uc.repos.Transitions, companyID, entity.EntityTicket, id)
}

// AddResponse agrega una respuesta o nota interna. Un ticket cerrado no admite respuestas.
func (uc *TicketUseCase) AddResponse(ctx context.Context, companyID, actorID, ticketID string, in dto.CreateTicketResponseRequest) (*dto.TicketReplyResponse, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	t, err := getTicket(ctx, uc.repos.Tickets, companyID, ticketID)
	if err != nil {
		return nil, err
	}
	if t.Status == entity.TicketStatusClosed {
		return nil, fmt.Errorf("%w: el ticket está cerrado", domain.ErrConflict)
	}
	msg := sanitize.RichText(in.Message)
	if msg == "" {
		return nil, fmt.Errorf("%w: el mensaje queda vacío tras limpiar el HTML", domain.ErrInvalidInput)
	}
	typ := orDefault(in.Type, entity.ResponseReply)
	r := &entity.TicketResponse{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		TicketID:   t.ID,
		AuthorID:   actorID,
		Type:       typ,
		Message:    msg,
		IsInternal: in.IsInternal || typ == entity.ResponseNote,
		CreatedAt:  uc.now(),
	}
	if err := uc.repos.TicketResponses.Create(ctx, r); err != nil {
		return nil, err
	}
	return toReplyResponse(r), nil
}

// Responses lista las respuestas; includeInternal incluye las notas internas.
func (uc *TicketUseCase) Responses(ctx context.Context, companyID, ticketID string, includeInternal bool) ([]dto.TicketReplyResponse, error) {
	if _, err := getTicket(ctx, uc.repos.Tickets, companyID, ticketID); err != nil {
		return nil, err
	}
	list, err := uc.repos.TicketResponses.ListByTicket(ctx, companyID, ticketID, includeInternal)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TicketReplyResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toReplyResponse(r))
	}
	return out, nil
}

func getTicket(ctx context.Context, repo repository.TicketRepository, companyID, id string) (*entity.Ticket, error) {
	t, err := repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func (uc *TicketUseCase) toResponse(t *entity.Ticket) *dto.TicketResponse {
	return &dto.TicketResponse{
		ID:                 t.ID,
		Code:               t.Code,
		CustomerID:         t.CustomerID,
		Subject:            t.Subject,
		Description:        t.Description,
		Category:           t.Category,
		Priority:           t.Priority,
		Severity:           t.Severity,
		Status:             t.Status,
		Channel:            t.Channel,
		AssignedTo:         t.AssignedTo,
		ResolutionDate:     t.ResolutionDate,
		SatisfactionRating: t.SatisfactionRating,
		IsOverdue:          t.IsOverdue(uc.now()),
		SLAHours:           entity.SLAHours(t.Priority),
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

func toReplyResponse(r *entity.TicketResponse) *dto.TicketReplyResponse {
	return &dto.TicketReplyResponse{
		ID:         r.ID,
		TicketID:   r.TicketID,
		AuthorID:   r.AuthorID,
		Type:       r.Type,
		Message:    r.Message,
		IsInternal: r.IsInternal,
		CreatedAt:  r.CreatedAt,
	}
}

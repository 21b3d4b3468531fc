package repository

import (
	"context"

	"github.com/jhoicas/people360/internal/domain/entity"
)

// TicketFilter filtros para listar tickets.
type TicketFilter struct {
	Page
	Status     string
	Priority   string
	CustomerID string
	AssignedTo string
	Query      string
}

// TicketRepository define el puerto de persistencia para Ticket.
type TicketRepository interface {
	Create(ctx context.Context, t *entity.Ticket) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Ticket, error)
	Update(ctx context.Context, t *entity.Ticket) error
	List(ctx context.Context, companyID string, f TicketFilter) ([]*entity.Ticket, int, error)
	// Delete borra el ticket y sus respuestas.
	Delete(ctx context.Context, companyID, id string) error
}

// TicketResponseRepository define el puerto de persistencia para TicketResponse.
type TicketResponseRepository interface {
	Create(ctx context.Context, r *entity.TicketResponse) error
	ListByTicket(ctx context.Context, companyID, ticketID string, includeInternal bool) ([]*entity.TicketResponse, error)
}

package dto

import "time"

// CreateTicketRequest alta de ticket; el estado inicial es open.
type CreateTicketRequest struct {
	CustomerID  string `json:"customer_id" validate:"required,uuid"`
	Subject     string `json:"subject" validate:"required,notblank,max=200"`
	Description string `json:"description" validate:"required,notblank"`
	Category    string `json:"category" validate:"omitempty,max=50"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Severity    string `json:"severity" validate:"omitempty,oneof=minor major critical blocker"`
	Channel     string `json:"channel" validate:"omitempty,max=20"`
	AssignedTo  string `json:"assigned_to" validate:"omitempty,uuid"`
}

// UpdateTicketRequest campos opcionales. El estado solo cambia vía /status.
type UpdateTicketRequest struct {
	Subject            *string `json:"subject" validate:"omitempty,notblank,max=200"`
	Description        *string `json:"description" validate:"omitempty,notblank"`
	Category           *string `json:"category" validate:"omitempty,max=50"`
	Priority           *string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Severity           *string `json:"severity" validate:"omitempty,oneof=minor major critical blocker"`
	AssignedTo         *string `json:"assigned_to" validate:"omitempty,uuid"`
	SatisfactionRating *int    `json:"satisfaction_rating" validate:"omitempty,min=1,max=5"`
}

// TicketListQuery filtros de GET /api/crm/tickets.
type TicketListQuery struct {
	PageQuery
	Status     string `query:"status"`
	Priority   string `query:"priority"`
	CustomerID string `query:"customer_id"`
	AssignedTo string `query:"assigned_to"`
	Q          string `query:"q"`
}

// TicketResponse salida de un ticket.
type TicketResponse struct {
	ID                 string     `json:"id"`
	Code               string     `json:"code"`
	CustomerID         string     `json:"customer_id"`
	Subject            string     `json:"subject"`
	Description        string     `json:"description"`
	Category           string     `json:"category"`
	Priority           string     `json:"priority"`
	Severity           string     `json:"severity"`
	Status             string     `json:"status"`
	Channel            string     `json:"channel"`
	AssignedTo         *string    `json:"assigned_to,omitempty"`
	ResolutionDate     *time.Time `json:"resolution_date,omitempty"`
	SatisfactionRating *int       `json:"satisfaction_rating,omitempty"`
	IsOverdue          bool       `json:"is_overdue"`
	SLAHours           int        `json:"sla_hours"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// CreateTicketResponseRequest respuesta al cliente o nota interna.
type CreateTicketResponseRequest struct {
	Type       string `json:"type" validate:"omitempty,oneof=reply note resolution escalation"`
	Message    string `json:"message" validate:"required,notblank"`
	IsInternal bool   `json:"is_internal"`
}

// TicketReplyResponse salida de una respuesta de ticket.
type TicketReplyResponse struct {
	ID         string    `json:"id"`
	TicketID   string    `json:"ticket_id"`
	AuthorID   string    `json:"author_id"`
	Type       string    `json:"type"`
	Message    string    `json:"message"`
	IsInternal bool      `json:"is_internal"`
	CreatedAt  time.Time `json:"created_at"`
}

// TicketTriageRequest texto a clasificar.
type TicketTriageRequest struct {
	Subject     string `json:"subject" validate:"required,notblank,max=200"`
	Description string `json:"description" validate:"required,notblank,max=5000"`
}

// TicketTriageDTO sugerencia de clasificación devuelta por el LLM.
type TicketTriageDTO struct {
	SuggestedCategory string  `json:"suggested_category"`
	SuggestedPriority string  `json:"suggested_priority"`
	SuggestedSeverity string  `json:"suggested_severity"`
	Confidence        float64 `json:"confidence"`
	Reasoning         string  `json:"reasoning"`
}

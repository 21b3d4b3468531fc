package entity

import "time"

// Estados de Ticket (ordenados).
const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusWaiting    = "waiting"
	TicketStatusResolved   = "resolved"
	TicketStatusClosed     = "closed"
)

// Severidades de Ticket.
const (
	SeverityMinor    = "minor"
	SeverityMajor    = "major"
	SeverityCritical = "critical"
	SeverityBlocker  = "blocker"
)

// slaHours horas máximas de atención por prioridad.
var slaHours = map[string]int{
	PriorityUrgent: 4,
	PriorityHigh:   24,
	PriorityMedium: 48,
	PriorityLow:    72,
}

// Ticket solicitud de soporte de un Customer.
type Ticket struct {
	ID                 string
	CompanyID          string
	Code               string // TKT + 6
	CustomerID         string
	Subject            string
	Description        string
	Category           string
	Priority           string
	Severity           string
	Status             string
	Channel            string
	AssignedTo         *string
	ResolutionDate     *time.Time
	SatisfactionRating *int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsClosedForSLA resuelto o cerrado: ya no cuenta para el SLA.
func (t *Ticket) IsClosedForSLA() bool {
	return t.Status == TicketStatusResolved || t.Status == TicketStatusClosed
}

// IsOverdue el ticket superó las horas de SLA de su prioridad.
func (t *Ticket) IsOverdue(now time.Time) bool {
	if t.IsClosedForSLA() {
		return false
	}
	hours, ok := slaHours[t.Priority]
	if !ok {
		hours = slaHours[PriorityMedium]
	}
	return now.Sub(t.CreatedAt) > time.Duration(hours)*time.Hour
}

// SLAHours horas de SLA para una prioridad (medium por defecto).
func SLAHours(priority string) int {
	if h, ok := slaHours[priority]; ok {
		return h
	}
	return slaHours[PriorityMedium]
}

// Tipos de TicketResponse.
const (
	ResponseReply      = "reply"
	ResponseNote       = "note"
	ResponseResolution = "resolution"
	ResponseEscalation = "escalation"
)

// TicketResponse respuesta o nota interna sobre un ticket.
type TicketResponse struct {
	ID         string
	CompanyID  string
	TicketID   string
	AuthorID   string
	Type       string
	Message    string
	IsInternal bool
	CreatedAt  time.Time
}

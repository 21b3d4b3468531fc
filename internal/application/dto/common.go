package dto

import "github.com/shopspring/decimal"

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// PageQuery paginación para listados (?page=1&per_page=20).
type PageQuery struct {
	Page    int `query:"page"`
	PerPage int `query:"per_page"`
}

// Normalize aplica valores por defecto y el máximo de per_page.
func (p PageQuery) Normalize() PageQuery {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Limit y Offset para el repositorio (sobre la página normalizada).
func (p PageQuery) Limit() int  { return p.Normalize().PerPage }
func (p PageQuery) Offset() int { n := p.Normalize(); return (n.Page - 1) * n.PerPage }

// Paginated sobre de los listados.
type Paginated[T any] struct {
	Items   []T  `json:"items"`
	Total   int  `json:"total"`
	Page    int  `json:"page"`
	PerPage int  `json:"per_page"`
	Pages   int  `json:"pages"`
	HasPrev bool `json:"has_prev"`
	HasNext bool `json:"has_next"`
}

// NewPaginated arma el sobre; items nil se serializa como [].
func NewPaginated[T any](items []T, total int, q PageQuery) Paginated[T] {
	q = q.Normalize()
	if items == nil {
		items = []T{}
	}
	pages := 0
	if total > 0 {
		pages = (total + q.PerPage - 1) / q.PerPage
	}
	return Paginated[T]{
		Items:   items,
		Total:   total,
		Page:    q.Page,
		PerPage: q.PerPage,
		Pages:   pages,
		HasPrev: q.Page > 1,
		HasNext: q.Page < pages,
	}
}

// StatusChangeRequest cambio de estado genérico (lead, ticket, job, application, payroll).
type StatusChangeRequest struct {
	Status string `json:"status" validate:"required"`
	Note   string `json:"note" validate:"omitempty,max=500"`
}

// TransitionResponse fila del historial de estados.
type TransitionResponse struct {
	ID         string `json:"id"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
	ChangedBy  string `json:"changed_by"`
	ChangedAt  string `json:"changed_at"`
	Note       string `json:"note,omitempty"`
}

// FieldError detalle de validación por campo.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

// MaxAmount tope exclusivo de los importes (columnas NUMERIC(14,2)).
var MaxAmount = decimal.New(1, 12)

// AmountInRange importe no negativo y menor que MaxAmount.
func AmountInRange(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThan(MaxAmount)
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLeadRequest alta de oportunidad; la etapa inicial es siempre new.
type CreateLeadRequest struct {
	Title             string          `json:"title" validate:"required,notblank,max=200"`
	CustomerID        string          `json:"customer_id" validate:"required,uuid"`
	OwnerID           string          `json:"owner_id" validate:"omitempty,uuid"`
	ContactName       string          `json:"contact_name" validate:"omitempty,max=200"`
	ContactEmail      string          `json:"contact_email" validate:"omitempty,email,max=255"`
	Source            string          `json:"source" validate:"omitempty,max=50"`
	Priority          string          `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	EstimatedValue    decimal.Decimal `json:"estimated_value"`
	Probability       int             `json:"probability" validate:"omitempty,min=0,max=100"`
	ExpectedCloseDate string          `json:"expected_close_date" validate:"omitempty,datetime=2006-01-02"`
	Description       string          `json:"description"`
}

// UpdateLeadRequest campos opcionales. La etapa solo cambia vía /stage.
type UpdateLeadRequest struct {
	Title             *string          `json:"title" validate:"omitempty,notblank,max=200"`
	OwnerID           *string          `json:"owner_id" validate:"omitempty,uuid"`
	ContactName       *string          `json:"contact_name" validate:"omitempty,max=200"`
	ContactEmail      *string          `json:"contact_email" validate:"omitempty,email,max=255"`
	Source            *string          `json:"source" validate:"omitempty,max=50"`
	Priority          *string          `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	EstimatedValue    *decimal.Decimal `json:"estimated_value"`
	Probability       *int             `json:"probability" validate:"omitempty,min=0,max=100"`
	ExpectedCloseDate *string          `json:"expected_close_date" validate:"omitempty,datetime=2006-01-02"`
	Description       *string          `json:"description"`
}

// LeadStageRequest movimiento en el pipeline.
type LeadStageRequest struct {
	Stage string `json:"stage" validate:"required"`
	Note  string `json:"note" validate:"omitempty,max=500"`
}

// LeadListQuery filtros de GET /api/crm/leads.
type LeadListQuery struct {
	PageQuery
	Stage      string `query:"stage"`
	Priority   string `query:"priority"`
	CustomerID string `query:"customer_id"`
	Q          string `query:"q"`
}

// LeadResponse salida de una oportunidad.
type LeadResponse struct {
	ID                string          `json:"id"`
	Code              string          `json:"code"`
	Title             string          `json:"title"`
	CustomerID        string          `json:"customer_id"`
	OwnerID           *string         `json:"owner_id,omitempty"`
	ContactName       string          `json:"contact_name"`
	ContactEmail      string          `json:"contact_email"`
	Source            string          `json:"source"`
	Priority          string          `json:"priority"`
	EstimatedValue    decimal.Decimal `json:"estimated_value"`
	Probability       int             `json:"probability"`
	WeightedValue     decimal.Decimal `json:"weighted_value"`
	Stage             string          `json:"stage"`
	StageLabel        string          `json:"stage_label"`
	ExpectedCloseDate string          `json:"expected_close_date,omitempty"`
	ActualCloseDate   string          `json:"actual_close_date,omitempty"`
	Description       string          `json:"description"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// CreateLeadActivityRequest registro manual en el historial comercial.
type CreateLeadActivityRequest struct {
	Type         string `json:"type" validate:"required,oneof=call email meeting note"`
	Subject      string `json:"subject" validate:"required,notblank,max=200"`
	Description  string `json:"description"`
	Outcome      string `json:"outcome" validate:"omitempty,max=200"`
	FollowUpDate string `json:"follow_up_date" validate:"omitempty,datetime=2006-01-02"`
}

// LeadActivityResponse salida de una actividad.
type LeadActivityResponse struct {
	ID           string    `json:"id"`
	LeadID       string    `json:"lead_id"`
	Type         string    `json:"type"`
	Subject      string    `json:"subject"`
	Description  string    `json:"description"`
	Outcome      string    `json:"outcome"`
	FollowUpDate string    `json:"follow_up_date,omitempty"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}

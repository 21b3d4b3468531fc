package dto

import "time"

// CreateLeaveRequest solicitud de ausencia. employee_id vacío usa el empleado del usuario autenticado.
type CreateLeaveRequest struct {
	EmployeeID string `json:"employee_id" validate:"omitempty,uuid"`
	Type       string `json:"type" validate:"required,oneof=vacation sick personal maternity paternity bereavement unpaid"`
	StartDate  string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Reason     string `json:"reason" validate:"omitempty,max=1000"`
}

// LeaveDecisionRequest nota opcional al aprobar/rechazar/cancelar.
type LeaveDecisionRequest struct {
	Note string `json:"note" validate:"omitempty,max=500"`
}

// LeaveListQuery filtros de GET /api/hr/leaves.
type LeaveListQuery struct {
	PageQuery
	EmployeeID string `query:"employee_id"`
	Status     string `query:"status"`
	Type       string `query:"type"`
}

// LeaveResponse salida de una solicitud.
type LeaveResponse struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employee_id"`
	Type       string     `json:"type"`
	StartDate  string     `json:"start_date"`
	EndDate    string     `json:"end_date"`
	Days       int        `json:"days"`
	Reason     string     `json:"reason"`
	Status     string     `json:"status"`
	ReviewedBy *string    `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// LeaveBalanceItem saldo anual por tipo.
type LeaveBalanceItem struct {
	Type      string `json:"type"`
	Allowance int    `json:"allowance"`
	Used      int    `json:"used"`
	Remaining int    `json:"remaining"`
}

// LeaveBalanceResponse saldo del empleado en el año.
type LeaveBalanceResponse struct {
	EmployeeID string             `json:"employee_id"`
	Year       int                `json:"year"`
	Balances   []LeaveBalanceItem `json:"balances"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RunPayrollRequest genera la nómina del período para los empleados activos (o solo los indicados).
type RunPayrollRequest struct {
	PeriodStart string   `json:"period_start" validate:"required,datetime=2006-01-02"`
	PeriodEnd   string   `json:"period_end" validate:"required,datetime=2006-01-02"`
	EmployeeIDs []string `json:"employee_ids" validate:"omitempty,dive,uuid"`
}

// RunPayrollResponse resultado de la corrida.
type RunPayrollResponse struct {
	Created  int               `json:"created"`
	Skipped  int               `json:"skipped"` // ya existía registro para el período
	TotalNet decimal.Decimal   `json:"total_net"`
	Records  []PayrollResponse `json:"records"`
}

// PayrollListQuery filtros de GET /api/hr/payroll.
type PayrollListQuery struct {
	PageQuery
	EmployeeID  string `query:"employee_id"`
	Status      string `query:"status"`
	PeriodStart string `query:"period_start"`
}

// PayrollResponse línea de nómina.
type PayrollResponse struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employee_id"`
	PeriodStart      string          `json:"period_start"`
	PeriodEnd        string          `json:"period_end"`
	WorkingDays      int             `json:"working_days"`
	PresentDays      int             `json:"present_days"`
	BasicSalary      decimal.Decimal `json:"basic_salary"`
	Allowances       decimal.Decimal `json:"allowances"`
	OvertimeHours    decimal.Decimal `json:"overtime_hours"`
	OvertimePay      decimal.Decimal `json:"overtime_pay"`
	AbsenceDeduction decimal.Decimal `json:"absence_deduction"`
	GrossPay         decimal.Decimal `json:"gross_pay"`
	Tax              decimal.Decimal `json:"tax"`
	OtherDeductions  decimal.Decimal `json:"other_deductions"`
	NetPay           decimal.Decimal `json:"net_pay"`
	Status           string          `json:"status"`
	ProcessedAt      *time.Time      `json:"processed_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

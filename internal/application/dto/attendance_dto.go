package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckRequest marcación de entrada/salida. employee_id vacío usa el del usuario autenticado.
type CheckRequest struct {
	EmployeeID string `json:"employee_id" validate:"omitempty,uuid"`
}

// AttendanceResponse registro diario.
type AttendanceResponse struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employee_id"`
	Date        string          `json:"date"`
	CheckIn     *time.Time      `json:"check_in,omitempty"`
	CheckOut    *time.Time      `json:"check_out,omitempty"`
	HoursWorked decimal.Decimal `json:"hours_worked"`
	Status      string          `json:"status"`
}

// AttendanceReportResponse resumen del período.
type AttendanceReportResponse struct {
	EmployeeID   string               `json:"employee_id"`
	Start        string               `json:"start"`
	End          string               `json:"end"`
	WorkingDays  int                  `json:"working_days"`
	PresentDays  int                  `json:"present_days"`
	LateDays     int                  `json:"late_days"`
	TotalHours   decimal.Decimal      `json:"total_hours"`
	AverageHours decimal.Decimal      `json:"average_hours"`
	Records      []AttendanceResponse `json:"records"`
}

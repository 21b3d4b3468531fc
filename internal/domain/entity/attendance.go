package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Attendance.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
	AttendanceHalfDay = "half_day"
)

// Attendance registro diario de entrada/salida (uno por empleado y fecha).
type Attendance struct {
	ID          string
	CompanyID   string
	EmployeeID  string
	Date        time.Time
	CheckIn     *time.Time
	CheckOut    *time.Time
	HoursWorked decimal.Decimal
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ComputeHours horas entre entrada y salida, redondeadas a 2 decimales.
func (a *Attendance) ComputeHours() decimal.Decimal {
	if a.CheckIn == nil || a.CheckOut == nil || !a.CheckOut.After(*a.CheckIn) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(a.CheckOut.Sub(*a.CheckIn).Hours()).Round(2)
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de PayrollRecord.
const (
	PayrollDraft     = "draft"
	PayrollProcessed = "processed"
	PayrollPaid      = "paid"
)

// PayrollRecord línea de nómina de un empleado para un período.
type PayrollRecord struct {
	ID               string
	CompanyID        string
	EmployeeID       string
	PeriodStart      time.Time
	PeriodEnd        time.Time
	WorkingDays      int
	PresentDays      int
	BasicSalary      decimal.Decimal
	Allowances       decimal.Decimal
	OvertimeHours    decimal.Decimal
	OvertimePay      decimal.Decimal
	AbsenceDeduction decimal.Decimal
	GrossPay         decimal.Decimal
	Tax              decimal.Decimal
	OtherDeductions  decimal.Decimal
	NetPay           decimal.Decimal
	Status           string
	ProcessedAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Package payroll implementa el cálculo de nómina (servicio de dominio puro).
package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/people360/internal/domain/entity"
)

var (
	hundred         = decimal.NewFromInt(100)
	thirty          = decimal.NewFromInt(30)
	twelve          = decimal.NewFromInt(12)
	eight           = decimal.NewFromInt(8)
	overtimeFactor  = decimal.NewFromFloat(1.5)
	allowanceRate   = decimal.NewFromInt(10) // % del básico
	taxRateHigh     = decimal.NewFromInt(15) // % si bruto > umbral
	taxRateLow      = decimal.NewFromInt(10)
	taxThreshold    = decimal.NewFromInt(50000)
	otherDeductRate = decimal.NewFromInt(5) // % del bruto
)

// DayWork horas trabajadas en un día con asistencia.
type DayWork struct {
	Date  time.Time
	Hours decimal.Decimal
}

// Input datos para calcular la nómina de un empleado en un período.
type Input struct {
	Salary      decimal.Decimal
	SalaryType  string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Attendance  []DayWork // solo días con asistencia registrada
}

// Result desglose de la nómina.
type Result struct {
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
}

// WorkingDays cuenta los días lunes a viernes entre start y end (ambos incluidos).
func WorkingDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	n := 0
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			n++
		}
	}
	return n
}

// MonthlyBasic convierte el salario pactado a básico del período.
func MonthlyBasic(salary decimal.Decimal, salaryType string, workingDays int) decimal.Decimal {
	switch salaryType {
	case entity.SalaryYearly:
		return salary.Div(twelve)
	case entity.SalaryHourly:
		return salary.Mul(eight).Mul(decimal.NewFromInt(int64(workingDays)))
	default:
		return salary
	}
}

// Calculate aplica las reglas de nómina:
//
//	diario       = básico / 30
//	ausencias    = (días hábiles - días presentes) × diario
//	horas extra  = horas > 8 por día, pagadas a (diario / 8) × 1.5
//	auxilios     = 10 % del básico
//	bruto        = básico + auxilios + extra - ausencias
//	impuesto     = 15 % si bruto > 50.000, si no 10 %
//	otros        = 5 % del bruto
//	neto         = bruto - impuesto - otros
func Calculate(in Input) Result {
	working := WorkingDays(in.PeriodStart, in.PeriodEnd)
	basic := MonthlyBasic(in.Salary, in.SalaryType, working)
	daily := basic.Div(thirty)

	present := 0
	overtimeHours := decimal.Zero
	seen := map[string]bool{}
	for _, d := range in.Attendance {
		key := d.Date.Format("2006-01-02")
		if seen[key] || d.Date.Before(dayStart(in.PeriodStart)) || d.Date.After(dayEnd(in.PeriodEnd)) {
			continue
		}
		seen[key] = true
		if wd := d.Date.Weekday(); wd != time.Saturday && wd != time.Sunday {
			present++
		}
		if d.Hours.GreaterThan(eight) {
			overtimeHours = overtimeHours.Add(d.Hours.Sub(eight))
		}
	}

	absent := working - present
	if absent < 0 {
		absent = 0
	}
	absence := daily.Mul(decimal.NewFromInt(int64(absent)))
	overtimePay := overtimeHours.Mul(daily.Div(eight)).Mul(overtimeFactor)
	allowances := basic.Mul(allowanceRate).Div(hundred)

	gross := basic.Add(allowances).Add(overtimePay).Sub(absence)
	if gross.IsNegative() {
		gross = decimal.Zero
	}
	rate := taxRateLow
	if gross.GreaterThan(taxThreshold) {
		rate = taxRateHigh
	}
	tax := gross.Mul(rate).Div(hundred)
	other := gross.Mul(otherDeductRate).Div(hundred)
	net := gross.Sub(tax).Sub(other)

	return Result{
		WorkingDays:      working,
		PresentDays:      present,
		BasicSalary:      basic.Round(2),
		Allowances:       allowances.Round(2),
		OvertimeHours:    overtimeHours.Round(2),
		OvertimePay:      overtimePay.Round(2),
		AbsenceDeduction: absence.Round(2),
		GrossPay:         gross.Round(2),
		Tax:              tax.Round(2),
		OtherDeductions:  other.Round(2),
		NetPay:           net.Round(2),
	}
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	return dayStart(t).Add(24*time.Hour - time.Nanosecond)
}

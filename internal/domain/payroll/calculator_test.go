package payroll_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/people360/internal/domain/entity"
	"github.com/jhoicas/people360/internal/domain/payroll"
)

// 2026-06-01 es lunes.
var (
	monday = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	sunday = time.Date(2026, 6, 7, 0, 0, 0, 0, time.UTC)
)

func day(offset int, hours float64) payroll.DayWork {
	return payroll.DayWork{Date: monday.AddDate(0, 0, offset), Hours: decimal.NewFromFloat(hours)}
}

func TestWorkingDays_ExcluyeFinDeSemana(t *testing.T) {
	assert.Equal(t, 5, payroll.WorkingDays(monday, sunday))
	assert.Equal(t, 22, payroll.WorkingDays(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, payroll.WorkingDays(sunday, sunday))
}

func TestCalculate_MensualConExtrasYAusencia(t *testing.T) {
	r := payroll.Calculate(payroll.Input{
		Salary:      decimal.NewFromInt(3000),
		SalaryType:  entity.SalaryMonthly,
		PeriodStart: monday,
		PeriodEnd:   sunday,
		Attendance:  []payroll.DayWork{day(0, 8), day(1, 10), day(2, 8), day(3, 9)},
	})

	assert.Equal(t, 5, r.WorkingDays)
	assert.Equal(t, 4, r.PresentDays)
	assert.Equal(t, "3000", r.BasicSalary.String())
	assert.Equal(t, "300", r.Allowances.String(), "auxilios = 10% del básico")
	assert.Equal(t, "3", r.OvertimeHours.String())
	assert.Equal(t, "56.25", r.OvertimePay.String(), "3h × (100/8) × 1.5")
	assert.Equal(t, "100", r.AbsenceDeduction.String(), "un día ausente × diario")
	assert.Equal(t, "3256.25", r.GrossPay.String())
	assert.Equal(t, "325.63", r.Tax.String(), "10% por debajo del umbral")
	assert.Equal(t, "162.81", r.OtherDeductions.String())
	assert.Equal(t, "2767.81", r.NetPay.String())
}

func TestCalculate_AnualSobreUmbralDeImpuesto(t *testing.T) {
	r := payroll.Calculate(payroll.Input{
		Salary:      decimal.NewFromInt(720000),
		SalaryType:  entity.SalaryYearly,
		PeriodStart: monday,
		PeriodEnd:   sunday,
		Attendance:  []payroll.DayWork{day(0, 8), day(1, 8), day(2, 8), day(3, 8), day(4, 8)},
	})

	assert.Equal(t, "60000", r.BasicSalary.String())
	assert.Equal(t, "0", r.AbsenceDeduction.String())
	assert.Equal(t, "66000", r.GrossPay.String())
	assert.Equal(t, "9900", r.Tax.String(), "15% por encima de 50.000")
	assert.Equal(t, "3300", r.OtherDeductions.String())
	assert.Equal(t, "52800", r.NetPay.String())
}

func TestCalculate_DiasDuplicadosOFueraDelPeriodoSeIgnoran(t *testing.T) {
	r := payroll.Calculate(payroll.Input{
		Salary:      decimal.NewFromInt(3000),
		SalaryType:  entity.SalaryMonthly,
		PeriodStart: monday,
		PeriodEnd:   sunday,
		Attendance:  []payroll.DayWork{day(0, 8), day(0, 8), day(10, 8)},
	})
	assert.Equal(t, 1, r.PresentDays)
}

func TestMonthlyBasic_PorHora(t *testing.T) {
	got := payroll.MonthlyBasic(decimal.NewFromInt(20), entity.SalaryHourly, 5)
	assert.True(t, decimal.NewFromInt(800).Equal(got), "20 × 8h × 5 días = 800, obtenido %s", got)
}

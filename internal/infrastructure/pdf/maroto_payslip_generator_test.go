package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/people360/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":          "0,00",
		"950":        "950,00",
		"25000":      "25.000,00",
		"1234567.5":  "1.234.567,50",
		"-3256.256":  "-3.256,26",
		"1000000.01": "1.000.000,01",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestGeneratePayslipPDF(t *testing.T) {
	g := NewMarotoPayslipGenerator()
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	rec := &entity.PayrollRecord{
		ID: "rec-1", EmployeeID: "emp-1", PeriodStart: start, PeriodEnd: start.AddDate(0, 0, 29),
		WorkingDays: 22, PresentDays: 21,
		BasicSalary: decimal.NewFromInt(3000), Allowances: decimal.NewFromInt(300),
		OvertimeHours: decimal.Zero, OvertimePay: decimal.Zero, AbsenceDeduction: decimal.NewFromInt(100),
		GrossPay: decimal.NewFromInt(3200), Tax: decimal.NewFromInt(320), OtherDeductions: decimal.NewFromInt(160),
		NetPay: decimal.NewFromInt(2720), Status: entity.PayrollProcessed,
	}
	emp := &entity.Employee{ID: "emp-1", Code: "EMPAAAAAA", FirstName: "jane", LastName: "doe", Department: "Eng"}
	co := &entity.Company{ID: "co-1", Name: "Acme"}

	out, err := g.GeneratePayslipPDF(context.Background(), co, emp, rec)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un PDF")
}

func TestGeneratePayslipPDF_DatosIncompletos(t *testing.T) {
	_, err := NewMarotoPayslipGenerator().GeneratePayslipPDF(context.Background(), nil, nil, nil)
	assert.Error(t, err)
}

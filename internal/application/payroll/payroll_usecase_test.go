package payroll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/people360/internal/application/audit"
	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/domain"
	"github.com/jhoicas/people360/internal/domain/entity"
	"github.com/jhoicas/people360/internal/testutil"
)

const (
	companyID = "c0000000-0000-4000-8000-000000000001"
	actorID   = "a0000000-0000-4000-8000-000000000001"
)

// 2026-06-01 es lunes.
var monday = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	store    *testutil.Store
	pdf      *testutil.PDF
	notifier *testutil.Notifier
	uc       *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := testutil.NewStore()
	pdf := &testutil.PDF{}
	notifier := &testutil.Notifier{}
	uc := NewUseCase(store.Repos(), testutil.TxRunner{Store: store}, audit.NewRecorder(testutil.NewCache()), pdf, notifier)
	uc.now = func() time.Time { return monday.AddDate(0, 0, 8) }
	require.NoError(t, store.Repos().Companies.Create(context.Background(), &entity.Company{ID: companyID, Name: "Acme"}))
	return &fixture{store: store, pdf: pdf, notifier: notifier, uc: uc}
}

func (f *fixture) employee(t *testing.T, id, code, status string, salary int64) {
	t.Helper()
	require.NoError(t, f.store.Repos().Employees.Create(context.Background(), &entity.Employee{
		ID: id, CompanyID: companyID, Code: code, FirstName: "Jane", LastName: "Doe", Email: code + "@x.com",
		Department: "Eng", Status: status, Salary: decimal.NewFromInt(salary), SalaryType: entity.SalaryMonthly,
		HireDate: monday.AddDate(-1, 0, 0),
	}))
}

func (f *fixture) worked(t *testing.T, employeeID string, offset int, hours float64) {
	t.Helper()
	require.NoError(t, f.store.Repos().Attendance.Create(context.Background(), &entity.Attendance{
		ID: employeeID + string(rune('a'+offset)), CompanyID: companyID, EmployeeID: employeeID,
		Date: monday.AddDate(0, 0, offset), HoursWorked: decimal.NewFromFloat(hours), Status: entity.AttendancePresent,
	}))
}

var week = dto.RunPayrollRequest{PeriodStart: "2026-06-01", PeriodEnd: "2026-06-07"}

const (
	jane = "e0000000-0000-4000-8000-000000000001"
	bob  = "e0000000-0000-4000-8000-000000000002"
)

func TestRun_CalculaConAsistenciaYOmiteInactivos(t *testing.T) {
	f := newFixture(t)
	f.employee(t, jane, "EMPJANE01", entity.EmployeeStatusActive, 3000)
	f.employee(t, bob, "EMPBOB001", entity.EmployeeStatusTerminated, 5000)
	for i, h := range []float64{8, 10, 8, 9} {
		f.worked(t, jane, i, h)
	}

	out, err := f.uc.Run(context.Background(), companyID, week)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Created)
	assert.Equal(t, 0, out.Skipped)
	require.Len(t, out.Records, 1)
	rec := out.Records[0]
	assert.Equal(t, jane, rec.EmployeeID)
	assert.Equal(t, 5, rec.WorkingDays)
	assert.Equal(t, 4, rec.PresentDays)
	assert.Equal(t, "56.25", rec.OvertimePay.String())
	assert.Equal(t, "2767.81", rec.NetPay.String())
	assert.Equal(t, entity.PayrollDraft, rec.Status)
	assert.Equal(t, "2767.81", out.TotalNet.String())
	assert.Equal(t, 1, f.store.TxCalls)
}

func TestRun_SegundaCorridaOmiteExistentes(t *testing.T) {
	f := newFixture(t)
	f.employee(t, jane, "EMPJANE01", entity.EmployeeStatusActive, 3000)
	_, err := f.uc.Run(context.Background(), companyID, week)
	require.NoError(t, err)

	out, err := f.uc.Run(context.Background(), companyID, week)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Created)
	assert.Equal(t, 1, out.Skipped)
	assert.True(t, out.TotalNet.IsZero())
}

func TestRun_ValidaPeriodoYEmpleados(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.employee(t, bob, "EMPBOB001", entity.EmployeeStatusTerminated, 5000)

	_, err := f.uc.Run(ctx, companyID, dto.RunPayrollRequest{PeriodStart: "2026-06-07", PeriodEnd: "2026-06-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.Run(ctx, companyID, dto.RunPayrollRequest{PeriodStart: "2026-06-01", PeriodEnd: "2026-08-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Run(ctx, companyID, dto.RunPayrollRequest{PeriodStart: "2026-06-01", PeriodEnd: "2026-06-07", EmployeeIDs: []string{jane}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "empleado inexistente")
	_, err = f.uc.Run(ctx, companyID, dto.RunPayrollRequest{PeriodStart: "2026-06-01", PeriodEnd: "2026-06-07", EmployeeIDs: []string{bob}})
	assert.ErrorIs(t, err, domain.ErrConflict, "empleado inactivo")
}

func TestChangeStatus_FlujoYAuditoria(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.employee(t, jane, "EMPJANE01", entity.EmployeeStatusActive, 3000)
	out, err := f.uc.Run(ctx, companyID, week)
	require.NoError(t, err)
	id := out.Records[0].ID

	processed, err := f.uc.ChangeStatus(ctx, companyID, actorID, id, dto.StatusChangeRequest{Status: entity.PayrollProcessed})
	require.NoError(t, err)
	require.NotNil(t, processed.ProcessedAt)
	assert.Empty(t, f.notifier.Payslips, "procesar no avisa")

	_, err = f.uc.ChangeStatus(ctx, companyID, actorID, id, dto.StatusChangeRequest{Status: entity.PayrollDraft})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	paid, err := f.uc.ChangeStatus(ctx, companyID, actorID, id, dto.StatusChangeRequest{Status: entity.PayrollPaid})
	require.NoError(t, err)
	assert.Equal(t, processed.ProcessedAt, paid.ProcessedAt, "la fecha de proceso no cambia al pagar")

	require.Len(t, f.notifier.Payslips, 1)
	notice := f.notifier.Payslips[0]
	assert.Equal(t, "EMPJANE01@x.com", notice.To)
	assert.Equal(t, "Jane Doe", notice.EmployeeName)
	assert.Equal(t, "2026-06-01 a 2026-06-07", notice.Period)
	assert.Equal(t, paid.NetPay.StringFixed(2), notice.NetPay)

	history, err := f.uc.History(ctx, companyID, id)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, entity.PayrollPaid, history[1].ToStatus)
}

func TestPayslip_SoloTrasProcesar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.employee(t, jane, "EMPJANE01", entity.EmployeeStatusActive, 3000)
	out, err := f.uc.Run(ctx, companyID, week)
	require.NoError(t, err)
	id := out.Records[0].ID

	_, _, err = f.uc.Payslip(ctx, companyID, id)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Zero(t, f.pdf.Calls)

	_, err = f.uc.ChangeStatus(ctx, companyID, actorID, id, dto.StatusChangeRequest{Status: entity.PayrollProcessed})
	require.NoError(t, err)
	pdf, filename, err := f.uc.Payslip(ctx, companyID, id)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, "payslip-EMPJANE01-2026-06.pdf", filename)
	assert.Equal(t, 1, f.pdf.Calls)

	_, _, err = f.uc.Payslip(ctx, "c0000000-0000-4000-8000-000000000099", id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_FiltraPorEstado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.employee(t, jane, "EMPJANE01", entity.EmployeeStatusActive, 3000)
	_, err := f.uc.Run(ctx, companyID, week)
	require.NoError(t, err)

	drafts, err := f.uc.List(ctx, companyID, dto.PayrollListQuery{Status: entity.PayrollDraft})
	require.NoError(t, err)
	assert.Equal(t, 1, drafts.Total)
	paid, err := f.uc.List(ctx, companyID, dto.PayrollListQuery{Status: entity.PayrollPaid})
	require.NoError(t, err)
	assert.Zero(t, paid.Total)
	_, err = f.uc.List(ctx, companyID, dto.PayrollListQuery{PeriodStart: "junio"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChangeStatus_FalloDeNotificacionNoRevierteElPago(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.notifier.Err = errors.New("smtp caído")
	f.employee(t, jane, "EMPJANE01", entity.EmployeeStatusActive, 3000)
	out, err := f.uc.Run(ctx, companyID, week)
	require.NoError(t, err)
	id := out.Records[0].ID

	_, err = f.uc.ChangeStatus(ctx, companyID, actorID, id, dto.StatusChangeRequest{Status: entity.PayrollProcessed})
	require.NoError(t, err)
	paid, err := f.uc.ChangeStatus(ctx, companyID, actorID, id, dto.StatusChangeRequest{Status: entity.PayrollPaid})
	require.NoError(t, err)
	assert.Equal(t, entity.PayrollPaid, paid.Status)
	assert.Len(t, f.notifier.Payslips, 1)
}

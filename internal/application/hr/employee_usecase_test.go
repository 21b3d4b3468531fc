package hr

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/domain"
	"github.com/jhoicas/people360/internal/domain/entity"
	"github.com/jhoicas/people360/pkg/validator"
)

func TestEmployee_CreateYGetDevuelvenLosMismosCampos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.employees.Create(ctx, companyID, actorID, dto.CreateEmployeeRequest{
		FirstName: "jane", LastName: "DOE", Email: "Jane@X.com", Department: "Eng", Position: "Backend",
		HireDate: "2026-05-01", Salary: decimal.NewFromInt(4000), SalaryType: entity.SalaryMonthly,
	})
	require.NoError(t, err)
	assert.Regexp(t, `^EMP[A-Z0-9]{6}$`, created.Code)
	assert.Equal(t, "Jane", created.FirstName)
	assert.Equal(t, "jane@x.com", created.Email)
	assert.Equal(t, "2026-05-01", created.HireDate)
	assert.Equal(t, entity.EmployeeStatusActive, created.Status)
	assert.Equal(t, entity.EmploymentFullTime, created.EmploymentType, "tipo por defecto")

	got, err := f.employees.GetByID(ctx, companyID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, 1, f.cache.InvalidationsFor(companyID), "crear invalida el dashboard")
}

func TestEmployee_Create_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.employees.Create(ctx, companyID, actorID, dto.CreateEmployeeRequest{FirstName: "  ", Email: "x@x.com", Department: "Eng"})
	var verr *validator.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "first_name", verr.Fields[0].Field)

	_, err = f.employees.Create(ctx, companyID, actorID, dto.CreateEmployeeRequest{
		FirstName: "Ana", Email: "ana@x.com", Department: "Eng", Salary: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	f.employee(t, "Ana", "ana@x.com", "Eng")
	_, err = f.employees.Create(ctx, companyID, actorID, dto.CreateEmployeeRequest{FirstName: "Ana", Email: "ANA@x.com", Department: "Eng"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestEmployee_ManagerDebeExistirYNoFormarCiclo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	boss := f.employee(t, "Boss", "boss@x.com", "Eng")
	mid := f.employee(t, "Mid", "mid@x.com", "Eng")

	_, err := f.employees.Create(ctx, companyID, actorID, dto.CreateEmployeeRequest{
		FirstName: "X", Email: "x@x.com", Department: "Eng", ManagerID: "00000000-0000-4000-8000-000000000099",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "manager inexistente")

	_, err = f.employees.Update(ctx, companyID, mid.ID, dto.UpdateEmployeeRequest{ManagerID: ptr(boss.ID)})
	require.NoError(t, err)

	_, err = f.employees.Update(ctx, companyID, boss.ID, dto.UpdateEmployeeRequest{ManagerID: ptr(mid.ID)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "ciclo boss → mid → boss")

	_, err = f.employees.Update(ctx, companyID, boss.ID, dto.UpdateEmployeeRequest{ManagerID: ptr(boss.ID)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "propio manager")

	reports, err := f.employees.Reports(ctx, companyID, boss.ID)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, mid.ID, reports[0].ID)

	updated, err := f.employees.Update(ctx, companyID, mid.ID, dto.UpdateEmployeeRequest{ManagerID: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, updated.ManagerID, "\"\" desasigna el manager")
}

func TestEmployee_ListFiltraPorDepartamento(t *testing.T) {
	f := newFixture(t)
	f.employee(t, "Jane", "jane@x.com", "Eng")
	f.employee(t, "Luis", "luis@x.com", "Sales")

	page, err := f.employees.List(context.Background(), companyID, dto.EmployeeListQuery{Department: "eng"})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	assert.Equal(t, "Jane", page.Items[0].FirstName)

	page, err = f.employees.List(context.Background(), "otra", dto.EmployeeListQuery{})
	require.NoError(t, err)
	assert.Empty(t, page.Items, "aislamiento por empresa")
	assert.NotNil(t, page.Items)
}

func TestEmployee_UpdateYDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	e := f.employee(t, "Jane", "jane@x.com", "Eng")

	got, err := f.employees.Update(ctx, companyID, e.ID, dto.UpdateEmployeeRequest{Position: ptr("Lead"), Status: ptr(entity.EmployeeStatusOnLeave)})
	require.NoError(t, err)
	assert.Equal(t, "Lead", got.Position)
	assert.Equal(t, "Eng", got.Department, "campos no enviados se conservan")

	require.NoError(t, f.employees.Delete(ctx, companyID, e.ID))
	_, err = f.employees.GetByID(ctx, companyID, e.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.employees.Delete(ctx, companyID, e.ID), domain.ErrNotFound)
}

func TestEmployee_BulkActualizaEstadoYDepartamento(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jane := f.employee(t, "Jane", "jane@x.com", "Eng")
	bob := f.employee(t, "Bob", "bob@x.com", "Eng")

	out, err := f.employees.Bulk(ctx, companyID, dto.BulkEmployeeRequest{
		Action: " Update_Status ", EmployeeIDs: []string{jane.ID, bob.ID, jane.ID}, Status: entity.EmployeeStatusOnLeave,
	})
	require.NoError(t, err)
	assert.Equal(t, &dto.BulkResponse{Action: dto.BulkUpdateStatus, Affected: 2}, out, "los ids repetidos cuentan una vez")

	_, err = f.employees.Bulk(ctx, companyID, dto.BulkEmployeeRequest{
		Action: dto.BulkUpdateDepartment, EmployeeIDs: []string{jane.ID, bob.ID}, Department: " Ventas ",
	})
	require.NoError(t, err)
	for _, id := range []string{jane.ID, bob.ID} {
		got, err := f.employees.GetByID(ctx, companyID, id)
		require.NoError(t, err)
		assert.Equal(t, entity.EmployeeStatusOnLeave, got.Status)
		assert.Equal(t, "Ventas", got.Department)
	}
}

func TestEmployee_BulkValidaAccionYParametros(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jane := f.employee(t, "Jane", "jane@x.com", "Eng")

	_, err := f.employees.Bulk(ctx, companyID, dto.BulkEmployeeRequest{Action: "archive", EmployeeIDs: []string{jane.ID}})
	var verr *validator.Error
	assert.ErrorAs(t, err, &verr, "acción desconocida")

	_, err = f.employees.Bulk(ctx, companyID, dto.BulkEmployeeRequest{Action: dto.BulkDelete})
	assert.ErrorAs(t, err, &verr, "sin ids")

	_, err = f.employees.Bulk(ctx, companyID, dto.BulkEmployeeRequest{Action: dto.BulkUpdateStatus, EmployeeIDs: []string{jane.ID}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "update_status sin status")

	_, err = f.employees.Bulk(ctx, companyID, dto.BulkEmployeeRequest{Action: dto.BulkUpdateDepartment, EmployeeIDs: []string{jane.ID}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "update_department sin department")
}

func TestEmployee_BulkEsTodoONada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jane := f.employee(t, "Jane", "jane@x.com", "Eng")
	bob := f.employee(t, "Bob", "bob@x.com", "Eng")

	_, err := f.employees.Bulk(ctx, companyID, dto.BulkEmployeeRequest{
		Action: dto.BulkDelete, EmployeeIDs: []string{jane.ID, "e0000000-0000-4000-8000-0000000000ff"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "id inexistente")

	require.NoError(t, f.store.Repos().Payroll.Create(ctx, &entity.PayrollRecord{
		ID: "f0000000-0000-4000-8000-000000000001", CompanyID: companyID, EmployeeID: bob.ID,
		PeriodStart: clock.AddDate(0, -1, 0), PeriodEnd: clock.AddDate(0, 0, -7), Status: entity.PayrollPaid,
	}))
	_, err = f.employees.Bulk(ctx, companyID, dto.BulkEmployeeRequest{
		Action: dto.BulkDelete, EmployeeIDs: []string{jane.ID, bob.ID},
	})
	assert.ErrorIs(t, err, domain.ErrConflict, "bob tiene nómina")

	page, err := f.employees.List(ctx, companyID, dto.EmployeeListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total, "no se borró ninguno")

	out, err := f.employees.Bulk(ctx, companyID, dto.BulkEmployeeRequest{Action: dto.BulkDelete, EmployeeIDs: []string{jane.ID}})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Affected)
	_, err = f.employees.GetByID(ctx, companyID, jane.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEmployee_ExportCSV(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.employee(t, "Jane", "jane@x.com", "Eng")
	f.employee(t, "Bob", "bob@x.com", "=SUM(A1)")

	out, filename, err := f.employees.ExportCSV(ctx, companyID)
	require.NoError(t, err)
	assert.Equal(t, "employees.csv", filename)
	lines := strings.Split(strings.TrimSpace(string(out)), "\r\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Employee ID,First Name,Last Name,Email"))
	assert.Contains(t, string(out), "jane@x.com,,Eng,,2026-06-03,full_time,0.00,active,")
	assert.Contains(t, string(out), ",'=SUM(A1),", "el departamento no se exporta como fórmula")

	empty, _, err := f.employees.ExportCSV(ctx, "c0000000-0000-4000-8000-000000000099")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(empty), "\r\n"), "solo la cabecera")
}

package hr

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/domain"
	"github.com/jhoicas/people360/internal/domain/entity"
)

func TestLeave_CreateUsaElEmpleadoDelUsuario(t *testing.T) {
	f := newFixture(t)
	emp := f.employee(t, "Hr", "hr@x.com", "People")

	l, err := f.leaves.Create(context.Background(), companyID, actorID, dto.CreateLeaveRequest{
		Type: entity.LeaveVacation, StartDate: "2026-07-06", EndDate: "2026-07-10", Reason: "<b>viaje</b>",
	})
	require.NoError(t, err)
	assert.Equal(t, emp.ID, l.EmployeeID)
	assert.Equal(t, 5, l.Days)
	assert.Equal(t, entity.LeavePending, l.Status)
	assert.Equal(t, "viaje", l.Reason)
}

func TestLeave_CreatePrefiereElUserIDAlEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.employee(t, "Homonimo", "hr@x.com", "People")
	linked, err := f.employees.Create(ctx, companyID, actorID, dto.CreateEmployeeRequest{
		UserID: actorID, FirstName: "Hr", LastName: "Doe", Email: "personal@x.com", Department: "People",
	})
	require.NoError(t, err)

	l, err := f.leaves.Create(ctx, companyID, actorID, dto.CreateLeaveRequest{
		Type: entity.LeaveSick, StartDate: "2026-07-06", EndDate: "2026-07-06",
	})
	require.NoError(t, err)
	assert.Equal(t, linked.ID, l.EmployeeID)
}

func TestLeave_Create_RangoSolapeYSaldo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	emp := f.employee(t, "Jane", "jane@x.com", "Eng")
	req := func(typ, start, end string) dto.CreateLeaveRequest {
		return dto.CreateLeaveRequest{EmployeeID: emp.ID, Type: typ, StartDate: start, EndDate: end}
	}

	_, err := f.leaves.Create(ctx, companyID, actorID, req(entity.LeaveSick, "2026-07-10", "2026-07-01"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "rango invertido")

	_, err = f.leaves.Create(ctx, companyID, actorID, req(entity.LeaveSick, "2026-07-01", "2026-07-03"))
	require.NoError(t, err)
	_, err = f.leaves.Create(ctx, companyID, actorID, req(entity.LeavePersonal, "2026-07-03", "2026-07-04"))
	assert.ErrorIs(t, err, domain.ErrConflict, "solape con pendiente")

	_, err = f.leaves.Create(ctx, companyID, actorID, req(entity.LeaveVacation, "2026-08-01", "2026-08-20"))
	assert.ErrorIs(t, err, domain.ErrConflict, "20 días superan los 15 de vacaciones")

	_, err = f.leaves.Create(ctx, companyID, actorID, req(entity.LeaveUnpaid, "2026-09-01", "2026-10-30"))
	assert.NoError(t, err, "unpaid sin tope")
}

func TestLeave_ApproveNotificaYDescuentaSaldo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	emp := f.employee(t, "Jane", "jane@x.com", "Eng")
	l, err := f.leaves.Create(ctx, companyID, actorID, dto.CreateLeaveRequest{
		EmployeeID: emp.ID, Type: entity.LeaveVacation, StartDate: "2026-07-06", EndDate: "2026-07-10",
	})
	require.NoError(t, err)

	got, err := f.leaves.Approve(ctx, companyID, actorID, l.ID, dto.LeaveDecisionRequest{Note: "ok"})
	require.NoError(t, err)
	assert.Equal(t, entity.LeaveApproved, got.Status)
	require.NotNil(t, got.ReviewedBy)

	require.Len(t, f.notifier.Leaves, 1)
	assert.Equal(t, "jane@x.com", f.notifier.Leaves[0].To)
	assert.Equal(t, entity.LeaveApproved, f.notifier.Leaves[0].Status)
	assert.Equal(t, "2026-07-06", f.notifier.Leaves[0].StartDate)

	balance, err := f.leaves.Balance(ctx, companyID, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, 2026, balance.Year)
	assert.Equal(t, dto.LeaveBalanceItem{Type: entity.LeaveVacation, Allowance: 15, Used: 5, Remaining: 10}, balance.Balances[0])

	_, err = f.leaves.Reject(ctx, companyID, actorID, l.ID, dto.LeaveDecisionRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "aprobada es terminal")
}

func TestLeave_ApproveRevalidaElSaldo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	emp := f.employee(t, "Jane", "jane@x.com", "Eng")
	create := func(start, end string) *dto.LeaveResponse {
		l, err := f.leaves.Create(ctx, companyID, actorID, dto.CreateLeaveRequest{
			EmployeeID: emp.ID, Type: entity.LeaveVacation, StartDate: start, EndDate: end,
		})
		require.NoError(t, err)
		return l
	}
	// cada una cabe en el saldo, las dos juntas no
	first := create("2026-07-01", "2026-07-10")
	second := create("2026-08-01", "2026-08-10")

	_, err := f.leaves.Approve(ctx, companyID, actorID, first.ID, dto.LeaveDecisionRequest{})
	require.NoError(t, err)

	_, err = f.leaves.Approve(ctx, companyID, actorID, second.ID, dto.LeaveDecisionRequest{})
	assert.ErrorIs(t, err, domain.ErrConflict)

	list, err := f.leaves.List(ctx, companyID, dto.LeaveListQuery{Status: entity.LeavePending})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, second.ID, list.Items[0].ID, "la segunda sigue pendiente")
	assert.Len(t, f.store.Transitions(), 1)
	assert.Len(t, f.notifier.Leaves, 1)

	got, err := f.leaves.Reject(ctx, companyID, actorID, second.ID, dto.LeaveDecisionRequest{})
	require.NoError(t, err, "rechazar no consume saldo")
	assert.Equal(t, entity.LeaveRejected, got.Status)
}

func TestLeave_CancelNoNotifica(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	emp := f.employee(t, "Jane", "jane@x.com", "Eng")
	l, err := f.leaves.Create(ctx, companyID, actorID, dto.CreateLeaveRequest{
		EmployeeID: emp.ID, Type: entity.LeaveSick, StartDate: "2026-07-06", EndDate: "2026-07-06",
	})
	require.NoError(t, err)

	got, err := f.leaves.Cancel(ctx, companyID, actorID, l.ID, dto.LeaveDecisionRequest{})
	require.NoError(t, err)
	assert.Equal(t, entity.LeaveCancelled, got.Status)
	assert.Nil(t, got.ReviewedBy)
	assert.Empty(t, f.notifier.Leaves)

	history := f.store.Transitions()
	require.Len(t, history, 1)
	assert.Equal(t, entity.EntityLeave, history[0].EntityType)
}

func TestLeave_FalloDeNotificacionNoRevierte(t *testing.T) {
	f := newFixture(t)
	f.notifier.Err = errors.New("smtp caído")
	ctx := context.Background()
	emp := f.employee(t, "Jane", "jane@x.com", "Eng")
	l, err := f.leaves.Create(ctx, companyID, actorID, dto.CreateLeaveRequest{
		EmployeeID: emp.ID, Type: entity.LeaveSick, StartDate: "2026-07-06", EndDate: "2026-07-06",
	})
	require.NoError(t, err)

	got, err := f.leaves.Reject(ctx, companyID, actorID, l.ID, dto.LeaveDecisionRequest{})
	require.NoError(t, err)
	assert.Equal(t, entity.LeaveRejected, got.Status)
}

func TestLeave_UsuarioSinFichaDeEmpleado(t *testing.T) {
	f := newFixture(t)
	_, err := f.leaves.Create(context.Background(), companyID, actorID, dto.CreateLeaveRequest{
		Type: entity.LeaveSick, StartDate: "2026-07-06", EndDate: "2026-07-06",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

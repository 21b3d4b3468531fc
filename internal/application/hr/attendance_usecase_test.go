package hr

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/domain"
	"github.com/jhoicas/people360/internal/domain/entity"
)

func at(hour, min int) func() time.Time {
	return func() time.Time { return time.Date(2026, 6, 3, hour, min, 0, 0, time.UTC) }
}

func TestAttendance_CheckInYCheckOut(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	emp := f.employee(t, "Jane", "jane@x.com", "Eng")

	f.attendance.now = at(8, 0)
	in, err := f.attendance.CheckIn(ctx, companyID, actorID, dto.CheckRequest{EmployeeID: emp.ID})
	require.NoError(t, err)
	assert.Equal(t, entity.AttendancePresent, in.Status)
	assert.Equal(t, "2026-06-03", in.Date)

	_, err = f.attendance.CheckIn(ctx, companyID, actorID, dto.CheckRequest{EmployeeID: emp.ID})
	assert.ErrorIs(t, err, domain.ErrConflict, "doble entrada")

	f.attendance.now = at(17, 30)
	out, err := f.attendance.CheckOut(ctx, companyID, actorID, dto.CheckRequest{EmployeeID: emp.ID})
	require.NoError(t, err)
	assert.Equal(t, "9.5", out.HoursWorked.String())

	_, err = f.attendance.CheckOut(ctx, companyID, actorID, dto.CheckRequest{EmployeeID: emp.ID})
	assert.ErrorIs(t, err, domain.ErrConflict, "doble salida")
}

func TestAttendance_TardanzaYMedioDia(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	emp := f.employee(t, "Jane", "jane@x.com", "Eng")

	f.attendance.now = at(9, 15)
	in, err := f.attendance.CheckIn(ctx, companyID, actorID, dto.CheckRequest{EmployeeID: emp.ID})
	require.NoError(t, err)
	assert.Equal(t, entity.AttendanceLate, in.Status)

	f.attendance.now = at(12, 0)
	out, err := f.attendance.CheckOut(ctx, companyID, actorID, dto.CheckRequest{EmployeeID: emp.ID})
	require.NoError(t, err)
	assert.Equal(t, entity.AttendanceHalfDay, out.Status)
}

func TestAttendance_CheckOutSinEntrada(t *testing.T) {
	f := newFixture(t)
	emp := f.employee(t, "Jane", "jane@x.com", "Eng")
	_, err := f.attendance.CheckOut(context.Background(), companyID, actorID, dto.CheckRequest{EmployeeID: emp.ID})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAttendance_Report(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	emp := f.employee(t, "Jane", "jane@x.com", "Eng")

	for day, hours := range map[int][2]int{1: {8, 17}, 2: {10, 18}} {
		d := day
		f.attendance.now = func() time.Time { return time.Date(2026, 6, d, hours[0], 0, 0, 0, time.UTC) }
		_, err := f.attendance.CheckIn(ctx, companyID, actorID, dto.CheckRequest{EmployeeID: emp.ID})
		require.NoError(t, err)
		f.attendance.now = func() time.Time { return time.Date(2026, 6, d, hours[1], 0, 0, 0, time.UTC) }
		_, err = f.attendance.CheckOut(ctx, companyID, actorID, dto.CheckRequest{EmployeeID: emp.ID})
		require.NoError(t, err)
	}

	r, err := f.attendance.Report(ctx, companyID, emp.ID, "2026-06-01", "2026-06-05")
	require.NoError(t, err)
	assert.Equal(t, 5, r.WorkingDays)
	assert.Equal(t, 2, r.PresentDays)
	assert.Equal(t, 1, r.LateDays)
	assert.Equal(t, "17", r.TotalHours.String())
	assert.Equal(t, "8.5", r.AverageHours.String())
	require.Len(t, r.Records, 2)
	assert.Equal(t, "2026-06-01", r.Records[0].Date)

	_, err = f.attendance.Report(ctx, companyID, emp.ID, "", "2026-06-05")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.attendance.Report(ctx, companyID, emp.ID, "2026-06-05", "2026-06-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

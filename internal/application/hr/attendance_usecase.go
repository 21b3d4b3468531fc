package hr

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/domain"
	"github.com/jhoicas/people360/internal/domain/entity"
	"github.com/jhoicas/people360/internal/domain/payroll"
	"github.com/jhoicas/people360/internal/domain/repository"
	"github.com/jhoicas/people360/pkg/validator"
)

// Hora límite de entrada (UTC) antes de marcar tardanza.
const (
	lateHour   = 9
	lateMinute = 0
)

// halfDayHours menos horas que esto al salir se registra como medio día.
var halfDayHours = decimal.NewFromInt(4)

// AttendanceUseCase marcaciones diarias y reporte de asistencia.
type AttendanceUseCase struct {
	repos repository.Repos
	now   func() time.Time
}

// NewAttendanceUseCase construye el caso de uso.
func NewAttendanceUseCase(repos repository.Repos) *AttendanceUseCase {
	return &AttendanceUseCase{repos: repos, now: time.Now}
}

// CheckIn crea el registro del día. Una segunda entrada el mismo día es conflicto.
func (uc *AttendanceUseCase) CheckIn(ctx context.Context, companyID, actorID string, in dto.CheckRequest) (*dto.AttendanceResponse, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	emp, err := resolveEmployee(ctx, uc.repos, companyID, actorID, in.EmployeeID)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	existing, err := uc.repos.Attendance.GetByEmployeeAndDate(ctx, companyID, emp.ID, day)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.CheckIn != nil {
		return nil, fmt.Errorf("%w: ya registró entrada hoy", domain.ErrConflict)
	}
	status := entity.AttendancePresent
	if now.After(day.Add(lateHour*time.Hour + lateMinute*time.Minute)) {
		status = entity.AttendanceLate
	}
	a := &entity.Attendance{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		EmployeeID: emp.ID,
		Date:       day,
		CheckIn:    &now,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repos.Attendance.Create(ctx, a); err != nil {
		return nil, err
	}
	return ToAttendanceResponse(a), nil
}

// CheckOut cierra el registro del día y calcula las horas trabajadas.
func (uc *AttendanceUseCase) CheckOut(ctx context.Context, companyID, actorID string, in dto.CheckRequest) (*dto.AttendanceResponse, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	emp, err := resolveEmployee(ctx, uc.repos, companyID, actorID, in.EmployeeID)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	a, err := uc.repos.Attendance.GetByEmployeeAndDate(ctx, companyID, emp.ID, now)
	if err != nil {
		return nil, err
	}
	if a == nil || a.CheckIn == nil {
		return nil, fmt.Errorf("%w: no hay entrada registrada hoy", domain.ErrConflict)
	}
	if a.CheckOut != nil {
		return nil, fmt.Errorf("%w: ya registró salida hoy", domain.ErrConflict)
	}
	a.CheckOut = &now
	a.HoursWorked = a.ComputeHours()
	if a.HoursWorked.LessThan(halfDayHours) {
		a.Status = entity.AttendanceHalfDay
	}
	a.UpdatedAt = now
	if err := uc.repos.Attendance.Update(ctx, a); err != nil {
		return nil, err
	}
	return ToAttendanceResponse(a), nil
}

// Report resumen de asistencia entre start y end (YYYY-MM-DD, ambos incluidos).
func (uc *AttendanceUseCase) Report(ctx context.Context, companyID, employeeID, startStr, endStr string) (*dto.AttendanceReportResponse, error) {
	if startStr == "" || endStr == "" {
		return nil, fmt.Errorf("%w: start y end son obligatorios", domain.ErrInvalidInput)
	}
	start, err := dto.ParseDate(startStr)
	if err != nil {
		return nil, err
	}
	end, err := dto.ParseDate(endStr)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end anterior a start", domain.ErrInvalidInput)
	}
	emp, err := uc.repos.Employees.GetByID(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repos.Attendance.ListByEmployee(ctx, companyID, emp.ID, start, end)
	if err != nil {
		return nil, err
	}

	out := &dto.AttendanceReportResponse{
		EmployeeID:  emp.ID,
		Start:       dto.FormatDate(start),
		End:         dto.FormatDate(end),
		WorkingDays: payroll.WorkingDays(start, end),
		TotalHours:  decimal.Zero,
		Records:     make([]dto.AttendanceResponse, 0, len(list)),
	}
	for _, a := range list {
		if a.CheckIn != nil {
			out.PresentDays++
		}
		if a.Status == entity.AttendanceLate {
			out.LateDays++
		}
		out.TotalHours = out.TotalHours.Add(a.HoursWorked)
		out.Records = append(out.Records, *ToAttendanceResponse(a))
	}
	out.AverageHours = decimal.Zero
	if out.PresentDays > 0 {
		out.AverageHours = out.TotalHours.Div(decimal.NewFromInt(int64(out.PresentDays))).Round(2)
	}
	return out, nil
}

// ToAttendanceResponse mapea el registro a DTO.
func ToAttendanceResponse(a *entity.Attendance) *dto.AttendanceResponse {
	return &dto.AttendanceResponse{
		ID:          a.ID,
		EmployeeID:  a.EmployeeID,
		Date:        dto.FormatDate(a.Date),
		CheckIn:     a.CheckIn,
		CheckOut:    a.CheckOut,
		HoursWorked: a.HoursWorked,
		Status:      a.Status,
	}
}

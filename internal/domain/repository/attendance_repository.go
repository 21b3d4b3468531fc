package repository

import (
	"context"
	"time"

	"github.com/jhoicas/people360/internal/domain/entity"
)

// AttendanceRepository define el puerto de persistencia para Attendance.
type AttendanceRepository interface {
	Create(ctx context.Context, a *entity.Attendance) error
	Update(ctx context.Context, a *entity.Attendance) error
	GetByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*entity.Attendance, error)
	ListByEmployee(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]*entity.Attendance, error)
}

package repository

import (
	"context"
	"time"

	"github.com/jhoicas/people360/internal/domain/entity"
)

// LeaveFilter filtros para listar ausencias.
type LeaveFilter struct {
	Page
	EmployeeID string
	Status     string
	Type       string
}

// LeaveRepository define el puerto de persistencia para LeaveRequest.
type LeaveRepository interface {
	Create(ctx context.Context, l *entity.LeaveRequest) error
	GetByID(ctx context.Context, companyID, id string) (*entity.LeaveRequest, error)
	Update(ctx context.Context, l *entity.LeaveRequest) error
	List(ctx context.Context, companyID string, f LeaveFilter) ([]*entity.LeaveRequest, int, error)
	// HasOverlap hay una ausencia pendiente o aprobada que se cruza con el rango.
	HasOverlap(ctx context.Context, companyID, employeeID string, start, end time.Time) (bool, error)
	// ApprovedDaysByType días aprobados por tipo dentro del año.
	ApprovedDaysByType(ctx context.Context, companyID, employeeID string, year int) (map[string]int, error)
	// LockEmployee bloquea al empleado hasta el fin de la transacción para que
	// dos aprobaciones simultáneas no consuman el mismo saldo.
	LockEmployee(ctx context.Context, companyID, employeeID string) error
}

package repository

import (
	"context"
	"time"

	"github.com/jhoicas/people360/internal/domain/entity"
)

// PayrollFilter filtros para listar nómina.
type PayrollFilter struct {
	Page
	EmployeeID  string
	Status      string
	PeriodStart *time.Time
}

// PayrollRepository define el puerto de persistencia para PayrollRecord.
type PayrollRepository interface {
	Create(ctx context.Context, p *entity.PayrollRecord) error
	GetByID(ctx context.Context, companyID, id string) (*entity.PayrollRecord, error)
	GetByEmployeeAndPeriod(ctx context.Context, companyID, employeeID string, start, end time.Time) (*entity.PayrollRecord, error)
	Update(ctx context.Context, p *entity.PayrollRecord) error
	List(ctx context.Context, companyID string, f PayrollFilter) ([]*entity.PayrollRecord, int, error)
}

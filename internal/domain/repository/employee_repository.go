package repository

import (
	"context"

	"github.com/jhoicas/people360/internal/domain/entity"
)

// EmployeeFilter filtros para listar empleados.
type EmployeeFilter struct {
	Page
	Department string
	Status     string
	Query      string // nombre, email o código
}

// EmployeeRepository define el puerto de persistencia para Employee.
type EmployeeRepository interface {
	Create(ctx context.Context, e *entity.Employee) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Employee, error)
	GetByEmail(ctx context.Context, companyID, email string) (*entity.Employee, error)
	// GetByUserID empleado vinculado a la cuenta de acceso.
	GetByUserID(ctx context.Context, companyID, userID string) (*entity.Employee, error)
	Update(ctx context.Context, e *entity.Employee) error
	Delete(ctx context.Context, companyID, id string) error
	List(ctx context.Context, companyID string, f EmployeeFilter) ([]*entity.Employee, int, error)
	ListReports(ctx context.Context, companyID, managerID string) ([]*entity.Employee, error)
	ListActive(ctx context.Context, companyID string) ([]*entity.Employee, error)
}

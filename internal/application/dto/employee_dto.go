package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEmployeeRequest alta de empleado. Fechas en formato YYYY-MM-DD.
type CreateEmployeeRequest struct {
	UserID         string          `json:"user_id" validate:"omitempty,uuid"`
	FirstName      string          `json:"first_name" validate:"required,notblank,max=100"`
	LastName       string          `json:"last_name" validate:"omitempty,max=100"`
	Email          string          `json:"email" validate:"required,email,max=255"`
	Phone          string          `json:"phone" validate:"omitempty,max=40"`
	DateOfBirth    string          `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Department     string          `json:"department" validate:"required,notblank,max=100"`
	Position       string          `json:"position" validate:"omitempty,max=100"`
	HireDate       string          `json:"hire_date" validate:"omitempty,datetime=2006-01-02"`
	EmploymentType string          `json:"employment_type" validate:"omitempty,oneof=full_time part_time contract intern"`
	Salary         decimal.Decimal `json:"salary"`
	SalaryType     string          `json:"salary_type" validate:"omitempty,oneof=hourly monthly yearly"`
	ManagerID      string          `json:"manager_id" validate:"omitempty,uuid"`
}

// UpdateEmployeeRequest campos opcionales; manager_id "" lo desasigna.
type UpdateEmployeeRequest struct {
	FirstName      *string          `json:"first_name" validate:"omitempty,notblank,max=100"`
	LastName       *string          `json:"last_name" validate:"omitempty,max=100"`
	Email          *string          `json:"email" validate:"omitempty,email,max=255"`
	Phone          *string          `json:"phone" validate:"omitempty,max=40"`
	Department     *string          `json:"department" validate:"omitempty,notblank,max=100"`
	Position       *string          `json:"position" validate:"omitempty,max=100"`
	EmploymentType *string          `json:"employment_type" validate:"omitempty,oneof=full_time part_time contract intern"`
	Status         *string          `json:"status" validate:"omitempty,oneof=active inactive terminated on_leave"`
	Salary         *decimal.Decimal `json:"salary"`
	SalaryType     *string          `json:"salary_type" validate:"omitempty,oneof=hourly monthly yearly"`
	ManagerID      *string          `json:"manager_id" validate:"omitempty,uuid"`
}

// EmployeeListQuery filtros de GET /api/hr/employees.
type EmployeeListQuery struct {
	PageQuery
	Department string `query:"department"`
	Status     string `query:"status"`
	Q          string `query:"q"`
}

// EmployeeResponse salida de un empleado.
type EmployeeResponse struct {
	ID             string          `json:"id"`
	Code           string          `json:"code"`
	UserID         *string         `json:"user_id,omitempty"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	FullName       string          `json:"full_name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	DateOfBirth    string          `json:"date_of_birth,omitempty"`
	Department     string          `json:"department"`
	Position       string          `json:"position"`
	HireDate       string          `json:"hire_date"`
	EmploymentType string          `json:"employment_type"`
	Status         string          `json:"status"`
	Salary         decimal.Decimal `json:"salary"`
	SalaryType     string          `json:"salary_type"`
	ManagerID      *string         `json:"manager_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

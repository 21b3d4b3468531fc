package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de contratación (compartidos por Employee y Job).
const (
	EmploymentFullTime = "full_time"
	EmploymentPartTime = "part_time"
	EmploymentContract = "contract"
	EmploymentIntern   = "intern"
)

// Estados de Employee.
const (
	EmployeeStatusActive     = "active"
	EmployeeStatusInactive   = "inactive"
	EmployeeStatusTerminated = "terminated"
	EmployeeStatusOnLeave    = "on_leave"
)

// Tipos de salario.
const (
	SalaryHourly  = "hourly"
	SalaryMonthly = "monthly"
	SalaryYearly  = "yearly"
)

// Employee ficha de un empleado (módulo HR).
type Employee struct {
	ID             string
	CompanyID      string
	Code           string  // EMP + 6
	UserID         *string // cuenta de acceso opcional
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	DateOfBirth    *time.Time
	Department     string
	Position       string
	HireDate       time.Time
	EmploymentType string
	Status         string
	Salary         decimal.Decimal
	SalaryType     string
	ManagerID      *string // auto-referencia opcional
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullName nombre y apellido.
func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// IsActive indica si el empleado está en nómina activa.
func (e *Employee) IsActive() bool {
	return e.Status == EmployeeStatusActive
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateJobRequest alta de vacante (queda en draft).
type CreateJobRequest struct {
	Title              string          `json:"title" validate:"required,notblank,max=200"`
	Department         string          `json:"department" validate:"required,notblank,max=100"`
	Location           string          `json:"location" validate:"omitempty,max=200"`
	EmploymentType     string          `json:"employment_type" validate:"omitempty,oneof=full_time part_time contract intern"`
	ExperienceLevel    string          `json:"experience_level" validate:"omitempty,oneof=entry mid_level senior executive"`
	Description        string          `json:"description"`
	Requirements       string          `json:"requirements"`
	SalaryMin          decimal.Decimal `json:"salary_min"`
	SalaryMax          decimal.Decimal `json:"salary_max"`
	SalaryCurrency     string          `json:"salary_currency" validate:"omitempty,len=3"`
	PositionsAvailable int             `json:"positions_available" validate:"omitempty,min=1"`
	ClosingDate        string          `json:"closing_date" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateJobRequest campos opcionales (el estado se cambia con /status).
type UpdateJobRequest struct {
	Title              *string          `json:"title" validate:"omitempty,notblank,max=200"`
	Department         *string          `json:"department" validate:"omitempty,notblank,max=100"`
	Location           *string          `json:"location" validate:"omitempty,max=200"`
	Description        *string          `json:"description"`
	Requirements       *string          `json:"requirements"`
	SalaryMin          *decimal.Decimal `json:"salary_min"`
	SalaryMax          *decimal.Decimal `json:"salary_max"`
	PositionsAvailable *int             `json:"positions_available" validate:"omitempty,min=1"`
	ClosingDate        *string          `json:"closing_date" validate:"omitempty,datetime=2006-01-02"`
}

// JobListQuery filtros de GET /api/hr/jobs.
type JobListQuery struct {
	PageQuery
	Department string `query:"department"`
	Status     string `query:"status"`
	Q          string `query:"q"`
}

// JobResponse salida de una vacante.
type JobResponse struct {
	ID                 string          `json:"id"`
	Code               string          `json:"code"`
	Title              string          `json:"title"`
	Department         string          `json:"department"`
	Location           string          `json:"location"`
	EmploymentType     string          `json:"employment_type"`
	ExperienceLevel    string          `json:"experience_level"`
	Description        string          `json:"description"`
	Requirements       string          `json:"requirements"`
	SalaryMin          decimal.Decimal `json:"salary_min"`
	SalaryMax          decimal.Decimal `json:"salary_max"`
	SalaryCurrency     string          `json:"salary_currency"`
	PositionsAvailable int             `json:"positions_available"`
	Status             string          `json:"status"`
	AcceptingApps      bool            `json:"accepting_applications"`
	PublishedAt        *time.Time      `json:"published_at,omitempty"`
	ClosingDate        string          `json:"closing_date,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// CreateApplicationRequest postulación a una vacante (candidato externo o empleado interno).
type CreateApplicationRequest struct {
	EmployeeID  string `json:"employee_id" validate:"omitempty,uuid"`
	FirstName   string `json:"first_name" validate:"required_without=EmployeeID,omitempty,max=100"`
	LastName    string `json:"last_name" validate:"omitempty,max=100"`
	Email       string `json:"email" validate:"required_without=EmployeeID,omitempty,email,max=255"`
	Phone       string `json:"phone" validate:"omitempty,max=40"`
	CoverLetter string `json:"cover_letter"`
	Source      string `json:"source" validate:"omitempty,max=50"`
}

// ApplicationStatusRequest cambio de estado de la postulación, con calificación opcional.
type ApplicationStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Rating *int   `json:"rating" validate:"omitempty,min=1,max=5"`
	Note   string `json:"note" validate:"omitempty,max=500"`
}

// ApplicationResponse salida de una postulación.
type ApplicationResponse struct {
	ID          string     `json:"id"`
	Code        string     `json:"code"`
	JobID       string     `json:"job_id"`
	EmployeeID  *string    `json:"employee_id,omitempty"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	CoverLetter string     `json:"cover_letter"`
	Source      string     `json:"source"`
	Status      string     `json:"status"`
	Rating      *int       `json:"rating,omitempty"`
	ReviewedBy  *string    `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

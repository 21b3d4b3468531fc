package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Job.
const (
	JobStatusDraft  = "draft"
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
	JobStatusFilled = "filled"
)

// Niveles de experiencia.
const (
	ExperienceEntry     = "entry"
	ExperienceMidLevel  = "mid_level"
	ExperienceSenior    = "senior"
	ExperienceExecutive = "executive"
)

// Job vacante publicada por HR.
type Job struct {
	ID                 string
	CompanyID          string
	Code               string // JOB + 6
	Title              string
	Department         string
	Location           string
	EmploymentType     string
	ExperienceLevel    string
	Description        string
	Requirements       string
	SalaryMin          decimal.Decimal
	SalaryMax          decimal.Decimal
	SalaryCurrency     string
	PositionsAvailable int
	Status             string
	PublishedAt        *time.Time
	ClosingDate        *time.Time
	CreatedBy          string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsAcceptingApplications la vacante está abierta y su fecha de cierre no pasó.
func (j *Job) IsAcceptingApplications(now time.Time) bool {
	if j.Status != JobStatusOpen {
		return false
	}
	if j.ClosingDate == nil {
		return true
	}
	closing := time.Date(j.ClosingDate.Year(), j.ClosingDate.Month(), j.ClosingDate.Day(), 23, 59, 59, 0, now.Location())
	return !now.After(closing)
}

// Estados de JobApplication.
const (
	ApplicationApplied      = "applied"
	ApplicationScreening    = "screening"
	ApplicationInterviewing = "interviewing"
	ApplicationOffered      = "offered"
	ApplicationHired        = "hired"
	ApplicationRejected     = "rejected"
)

// JobApplication relación Job↔candidato con su propio estado.
// EmployeeID se informa cuando el candidato es un empleado interno.
type JobApplication struct {
	ID          string
	CompanyID   string
	Code        string // APP + 6
	JobID       string
	EmployeeID  *string
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	CoverLetter string
	Source      string
	Status      string
	Rating      *int
	ReviewedBy  *string
	ReviewedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

package repository

import (
	"context"

	"github.com/jhoicas/people360/internal/domain/entity"
)

// JobFilter filtros para listar vacantes.
type JobFilter struct {
	Page
	Department string
	Status     string
	Query      string
}

// JobRepository define el puerto de persistencia para Job.
type JobRepository interface {
	Create(ctx context.Context, j *entity.Job) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Job, error)
	Update(ctx context.Context, j *entity.Job) error
	List(ctx context.Context, companyID string, f JobFilter) ([]*entity.Job, int, error)
	// Delete borra la vacante; con postulaciones devuelve ErrConflict.
	Delete(ctx context.Context, companyID, id string) error
}

// ApplicationRepository define el puerto de persistencia para JobApplication.
type ApplicationRepository interface {
	Create(ctx context.Context, a *entity.JobApplication) error
	GetByID(ctx context.Context, companyID, id string) (*entity.JobApplication, error)
	GetByJobAndEmail(ctx context.Context, companyID, jobID, email string) (*entity.JobApplication, error)
	Update(ctx context.Context, a *entity.JobApplication) error
	ListByJob(ctx context.Context, companyID, jobID string, p Page) ([]*entity.JobApplication, int, error)
}

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/people360/internal/domain"
	"github.com/jhoicas/people360/internal/domain/entity"
	"github.com/jhoicas/people360/internal/domain/repository"
)

var (
	_ repository.JobRepository         = (*JobRepo)(nil)
	_ repository.ApplicationRepository = (*ApplicationRepo)(nil)
)

const jobColumns = `id, company_id, code, title, department, location, employment_type, experience_level,
	description, requirements, salary_min, salary_max, salary_currency, positions_available, status,
	published_at, closing_date, created_by, created_at, updated_at`

// JobRepo implementación de JobRepository.
type JobRepo struct {
	q Querier
}

// NewJobRepository construye el adaptador. Pasar pool o tx (Querier).
func NewJobRepository(q Querier) *JobRepo {
	return &JobRepo{q: q}
}

func scanJob(row pgx.Row) (*entity.Job, error) {
	var j entity.Job
	err := row.Scan(&j.ID, &j.CompanyID, &j.Code, &j.Title, &j.Department, &j.Location, &j.EmploymentType,
		&j.ExperienceLevel, &j.Description, &j.Requirements, &j.SalaryMin, &j.SalaryMax, &j.SalaryCurrency,
		&j.PositionsAvailable, &j.Status, &j.PublishedAt, &j.ClosingDate, &j.CreatedBy, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// Create persiste una vacante.
func (r *JobRepo) Create(ctx context.Context, j *entity.Job) error {
	query := `INSERT INTO jobs (` + jobColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(ctx, query,
		j.ID, j.CompanyID, j.Code, j.Title, j.Department, j.Location, j.EmploymentType, j.ExperienceLevel,
		j.Description, j.Requirements, j.SalaryMin, j.SalaryMax, j.SalaryCurrency, j.PositionsAvailable, j.Status,
		j.PublishedAt, j.ClosingDate, j.CreatedBy, j.CreatedAt, j.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return dbError("insert job", err)
	}
	return nil
}

// GetByID obtiene una vacante por ID.
func (r *JobRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Job, error) {
	j, err := scanJob(r.q.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError("get job", err)
	}
	return j, nil
}

// Update actualiza una vacante.
func (r *JobRepo) Update(ctx context.Context, j *entity.Job) error {
	query := `
		UPDATE jobs SET title = $3, department = $4, location = $5, employment_type = $6, experience_level = $7,
			description = $8, requirements = $9, salary_min = $10, salary_max = $11, salary_currency = $12,
			positions_available = $13, status = $14, published_at = $15, closing_date = $16, updated_at = $17
		WHERE company_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query,
		j.CompanyID, j.ID, j.Title, j.Department, j.Location, j.EmploymentType, j.ExperienceLevel,
		j.Description, j.Requirements, j.SalaryMin, j.SalaryMax, j.SalaryCurrency,
		j.PositionsAvailable, j.Status, j.PublishedAt, j.ClosingDate, j.UpdatedAt,
	)
	if err != nil {
		return dbError("update job", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra la vacante; las postulaciones la bloquean (RESTRICT).
func (r *JobRepo) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM jobs WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return dbError("delete job", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista vacantes con filtros y paginación.
func (r *JobRepo) List(ctx context.Context, companyID string, f repository.JobFilter) ([]*entity.Job, int, error) {
	w := newWhere(companyID)
	if f.Department != "" {
		w.add("department = ?", f.Department)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.Query != "" {
		p := likePattern(f.Query)
		w.add("(title ILIKE ? OR code ILIKE ?)", p, p)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, dbError("count jobs", err)
	}
	limit, args := w.page(f.Page)
	rows, err := r.q.Query(ctx, `SELECT `+jobColumns+` FROM jobs`+w.sql()+` ORDER BY created_at DESC, id`+limit, args...)
	if err != nil {
		return nil, 0, dbError("list jobs", err)
	}
	defer rows.Close()
	var list []*entity.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, 0, dbError("scan job", err)
		}
		list = append(list, j)
	}
	return list, total, rows.Err()
}

const applicationColumns = `id, company_id, code, job_id, employee_id, first_name, last_name, email, phone,
	cover_letter, source, status, rating, reviewed_by, reviewed_at, created_at, updated_at`

// ApplicationRepo implementación de ApplicationRepository.
type ApplicationRepo struct {
	q Querier
}

// NewApplicationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewApplicationRepository(q Querier) *ApplicationRepo {
	return &ApplicationRepo{q: q}
}

func scanApplication(row pgx.Row) (*entity.JobApplication, error) {
	var a entity.JobApplication
	err := row.Scan(&a.ID, &a.CompanyID, &a.Code, &a.JobID, &a.EmployeeID, &a.FirstName, &a.LastName, &a.Email,
		&a.Phone, &a.CoverLetter, &a.Source, &a.Status, &a.Rating, &a.ReviewedBy, &a.ReviewedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persiste una postulación; (job, email) es único.
func (r *ApplicationRepo) Create(ctx context.Context, a *entity.JobApplication) error {
	query := `INSERT INTO job_applications (` + applicationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.CompanyID, a.Code, a.JobID, a.EmployeeID, a.FirstName, a.LastName, a.Email, a.Phone,
		a.CoverLetter, a.Source, a.Status, a.Rating, a.ReviewedBy, a.ReviewedAt, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return dbError("insert application", err)
	}
	return nil
}

// GetByID obtiene una postulación por ID.
func (r *ApplicationRepo) GetByID(ctx context.Context, companyID, id string) (*entity.JobApplication, error) {
	return r.findOne(ctx, `SELECT `+applicationColumns+` FROM job_applications WHERE company_id = $1 AND id = $2`, companyID, id)
}

// GetByJobAndEmail obtiene la postulación de un email a una vacante.
func (r *ApplicationRepo) GetByJobAndEmail(ctx context.Context, companyID, jobID, email string) (*entity.JobApplication, error) {
	return r.findOne(ctx, `SELECT `+applicationColumns+` FROM job_applications
		WHERE company_id = $1 AND job_id = $2 AND lower(email) = lower($3)`, companyID, jobID, email)
}

func (r *ApplicationRepo) findOne(ctx context.Context, query string, args ...any) (*entity.JobApplication, error) {
	a, err := scanApplication(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError("get application", err)
	}
	return a, nil
}

// Update actualiza estado, calificación y revisión de una postulación.
func (r *ApplicationRepo) Update(ctx context.Context, a *entity.JobApplication) error {
	query := `
		UPDATE job_applications SET employee_id = $3, status = $4, rating = $5, reviewed_by = $6,
			reviewed_at = $7, updated_at = $8
		WHERE company_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query,
		a.CompanyID, a.ID, a.EmployeeID, a.Status, a.Rating, a.ReviewedBy, a.ReviewedAt, a.UpdatedAt)
	if err != nil {
		return dbError("update application", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByJob lista las postulaciones de una vacante.
func (r *ApplicationRepo) ListByJob(ctx context.Context, companyID, jobID string, p repository.Page) ([]*entity.JobApplication, int, error) {
	w := newWhere(companyID)
	w.add("job_id = ?", jobID)
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM job_applications`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, dbError("count applications", err)
	}
	limit, args := w.page(p)
	rows, err := r.q.Query(ctx, `SELECT `+applicationColumns+` FROM job_applications`+w.sql()+
		` ORDER BY created_at, id`+limit, args...)
	if err != nil {
		return nil, 0, dbError("list applications", err)
	}
	defer rows.Close()
	var list []*entity.JobApplication
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, 0, dbError("scan application", err)
		}
		list = append(list, a)
	}
	return list, total, rows.Err()
}

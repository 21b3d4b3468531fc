package hr

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/people360/internal/application/audit"
	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/application/ports"
	"github.com/jhoicas/people360/internal/domain"
	"github.com/jhoicas/people360/internal/domain/entity"
	"github.com/jhoicas/people360/internal/domain/repository"
	"github.com/jhoicas/people360/internal/domain/workflow"
	"github.com/jhoicas/people360/pkg/labels"
	"github.com/jhoicas/people360/pkg/sanitize"
	"github.com/jhoicas/people360/pkg/validator"
)

// JobUseCase vacantes y sus postulaciones (relación M:N con estado propio).
type JobUseCase struct {
	repos    repository.Repos
	tx       ports.TxRunner
	recorder *audit.Recorder
	notifier ports.Notifier
	now      func() time.Time
}

// NewJobUseCase notifier puede ser nil.
func NewJobUseCase(repos repository.Repos, tx ports.TxRunner, recorder *audit.Recorder, notifier ports.Notifier) *JobUseCase {
	return &JobUseCase{repos: repos, tx: tx, recorder: recorder, notifier: notifier, now: time.Now}
}

// Create registra la vacante en estado draft.
func (uc *JobUseCase) Create(ctx context.Context, companyID, actorID string, in dto.CreateJobRequest) (*dto.JobResponse, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	closing, err := dto.ParseOptionalDate(in.ClosingDate)
	if err != nil {
		return nil, err
	}
	if err := checkSalaryRange(in.SalaryMin, in.SalaryMax); err != nil {
		return nil, err
	}
	now := uc.now()
	positions := in.PositionsAvailable
	if positions == 0 {
		positions = 1
	}
	j := &entity.Job{
		ID:                 uuid.New().String(),
		CompanyID:          companyID,
		Code:               entity.NewCode(entity.PrefixJob),
		Title:              strings.TrimSpace(in.Title),
		Department:         strings.TrimSpace(in.Department),
		Location:           strings.TrimSpace(in.Location),
		EmploymentType:     orDefault(in.EmploymentType, entity.EmploymentFullTime),
		ExperienceLevel:    orDefault(in.ExperienceLevel, entity.ExperienceMidLevel),
		Description:        sanitize.RichText(in.Description),
		Requirements:       sanitize.RichText(in.Requirements),
		SalaryMin:          in.SalaryMin,
		SalaryMax:          in.SalaryMax,
		SalaryCurrency:     strings.ToUpper(orDefault(in.SalaryCurrency, "USD")),
		PositionsAvailable: positions,
		Status:             workflow.JobStatus.Initial(),
		ClosingDate:        closing,
		CreatedBy:          actorID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.repos.Jobs.Create(ctx, j); err != nil {
		return nil, err
	}
	uc.recorder.Touch(ctx, companyID)
	log.Info().Str("job_id", j.ID).Str("code", j.Code).Msg("vacante creada")
	return uc.toJobResponse(j), nil
}

// GetByID obtiene la vacante.
func (uc *JobUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.JobResponse, error) {
	j, err := uc.getJob(ctx, uc.repos.Jobs, companyID, id)
	if err != nil {
		return nil, err
	}
	return uc.toJobResponse(j), nil
}

// List lista vacantes con filtros.
func (uc *JobUseCase) List(ctx context.Context, companyID string, q dto.JobListQuery) (dto.Paginated[dto.JobResponse], error) {
	list, total, err := uc.repos.Jobs.List(ctx, companyID, repository.JobFilter{
		Page:       repository.Page{Limit: q.Limit(), Offset: q.Offset()},
		Department: strings.TrimSpace(q.Department),
		Status:     q.Status,
		Query:      strings.TrimSpace(q.Q),
	})
	if err != nil {
		return dto.Paginated[dto.JobResponse]{}, err
	}
	items := make([]dto.JobResponse, 0, len(list))
	for _, j := range list {
		items = append(items, *uc.toJobResponse(j))
	}
	return dto.NewPaginated(items, total, q.PageQuery), nil
}

// Update modifica los datos de la vacante; el estado solo cambia con ChangeStatus.
func (uc *JobUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateJobRequest) (*dto.JobResponse, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	j, err := uc.getJob(ctx, uc.repos.Jobs, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		j.Title = strings.TrimSpace(*in.Title)
	}
	if in.Department != nil {
		j.Department = strings.TrimSpace(*in.Department)
	}
	if in.Location != nil {
		j.Location = strings.TrimSpace(*in.Location)
	}
	if in.Description != nil {
		j.Description = sanitize.RichText(*in.Description)
	}
	if in.Requirements != nil {
		j.Requirements = sanitize.RichText(*in.Requirements)
	}
	if in.SalaryMin != nil {
		j.SalaryMin = *in.SalaryMin
	}
	if in.SalaryMax != nil {
		j.SalaryMax = *in.SalaryMax
	}
	if err := checkSalaryRange(j.SalaryMin, j.SalaryMax); err != nil {
		return nil, err
	}
	if in.PositionsAvailable != nil {
		j.PositionsAvailable = *in.PositionsAvailable
	}
	if in.ClosingDate != nil {
		if j.ClosingDate, err = dto.ParseOptionalDate(*in.ClosingDate); err != nil {
			return nil, err
		}
	}
	j.UpdatedAt = uc.now()
	if err := uc.repos.Jobs.Update(ctx, j); err != nil {
		return nil, err
	}
	return uc.toJobResponse(j), nil
}

// ChangeStatus mueve la vacante por draft → open → closed|filled y audita el cambio.
// Al abrirse por primera vez se fija published_at.
func (uc *JobUseCase) ChangeStatus(ctx context.Context, companyID, actorID, id string, in dto.StatusChangeRequest) (*dto.JobResponse, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	var out *entity.Job
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		j, err := uc.getJob(ctx, repos.Jobs, companyID, id)
		if err != nil {
			return err
		}
		if err := workflow.JobStatus.Validate(j.Status, in.Status); err != nil {
			return err
		}
		now := uc.now()
		from := j.Status
		j.Status = in.Status
		j.UpdatedAt = now
		if in.Status == entity.JobStatusOpen && j.PublishedAt == nil {
			j.PublishedAt = &now
		}
		if err := repos.Jobs.Update(ctx, j); err != nil {
			return err
		}
		_, err = uc.recorder.Transition(ctx, repos.Transitions, audit.Change{
			CompanyID: companyID, EntityType: entity.EntityJob, EntityID: j.ID,
			From: from, To: j.Status, ChangedBy: actorID, Note: in.Note, At: now,
		})
		out = j
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.recorder.Touch(ctx, companyID)
	return uc.toJobResponse(out), nil
}

// Delete borra una vacante sin postulaciones. Con postulaciones devuelve ErrConflict:
// la vacante se cierra en lugar de borrarse.
func (uc *JobUseCase) Delete(ctx context.Context, companyID, id string) error {
	err := uc.repos.Jobs.Delete(ctx, companyID, id)
	if errors.Is(err, domain.ErrConflict) {
		return fmt.Errorf("%w: la vacante tiene postulaciones", err)
	}
	if err != nil {
		return err
	}
	uc.recorder.Touch(ctx, companyID)
	log.Info().Str("job_id", id).Msg("vacante eliminada")
	return nil
}

// History auditoría de estados de la vacante.
func (uc *JobUseCase) History(ctx context.Context, companyID, id string) ([]dto.TransitionResponse, error) {
	if _, err := uc.getJob(ctx, uc.repos.Jobs, companyID, id); err != nil {
		return nil, err
	}
	return audit.History(ctx, uc.repos.Transitions, companyID, entity.EntityJob, id)
}

// Apply registra una postulación. La vacante debe aceptar postulaciones y el email
// no puede repetirse en la misma vacante. Un empleado interno aporta sus datos.
func (uc *JobUseCase) Apply(ctx context.Context, companyID, jobID string, in dto.CreateApplicationRequest) (*dto.ApplicationResponse, error) {
	in.Normalize()
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	j, err := uc.getJob(ctx, uc.repos.Jobs, companyID, jobID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	if !j.IsAcceptingApplications(now) {
		return nil, fmt.Errorf("%w: la vacante no recibe postulaciones (%s)", domain.ErrConflict, labels.Humanize(j.Status))
	}
	a := &entity.JobApplication{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Code:        entity.NewCode(entity.PrefixApplication),
		JobID:       j.ID,
		FirstName:   labels.Name(in.FirstName),
		LastName:    labels.Name(in.LastName),
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:       strings.TrimSpace(in.Phone),
		CoverLetter: sanitize.Text(in.CoverLetter),
		Source:      orDefault(in.Source, "website"),
		Status:      workflow.ApplicationStatus.Initial(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.EmployeeID != "" {
		emp, err := uc.repos.Employees.GetByID(ctx, companyID, in.EmployeeID)
		if err != nil {
			return nil, err
		}
		if emp == nil {
			return nil, fmt.Errorf("%w: employee_id no existe", domain.ErrInvalidInput)
		}
		a.EmployeeID = &emp.ID
		a.FirstName, a.LastName, a.Email = emp.FirstName, emp.LastName, emp.Email
		if a.Phone == "" {
			a.Phone = emp.Phone
		}
		a.Source = "internal"
	}
	existing, err := uc.repos.Applications.GetByJobAndEmail(ctx, companyID, j.ID, a.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.repos.Applications.Create(ctx, a); err != nil {
		return nil, err
	}
	log.Info().Str("application_id", a.ID).Str("job_id", j.ID).Msg("postulación registrada")
	return ToApplicationResponse(a), nil
}

// Applications postulaciones de una vacante.
func (uc *JobUseCase) Applications(ctx context.Context, companyID, jobID string, q dto.PageQuery) (dto.Paginated[dto.ApplicationResponse], error) {
	if _, err := uc.getJob(ctx, uc.repos.Jobs, companyID, jobID); err != nil {
		return dto.Paginated[dto.ApplicationResponse]{}, err
	}
	list, total, err := uc.repos.Applications.ListByJob(ctx, companyID, jobID, repository.Page{Limit: q.Limit(), Offset: q.Offset()})
	if err != nil {
		return dto.Paginated[dto.ApplicationResponse]{}, err
	}
	items := make([]dto.ApplicationResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *ToApplicationResponse(a))
	}
	return dto.NewPaginated(items, total, q), nil
}

// GetApplication obtiene una postulación.
func (uc *JobUseCase) GetApplication(ctx context.Context, companyID, id string) (*dto.ApplicationResponse, error) {
	a, err := uc.getApplication(ctx, uc.repos.Applications, companyID, id)
	if err != nil {
		return nil, err
	}
	return ToApplicationResponse(a), nil
}

// ChangeApplicationStatus avanza la postulación, registra revisor y auditoría.
func (uc *JobUseCase) ChangeApplicationStatus(ctx context.Context, companyID, actorID, id string, in dto.ApplicationStatusRequest) (*dto.ApplicationResponse, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	var (
		out  *entity.JobApplication
		from string
		job  *entity.Job
	)
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		a, err := uc.getApplication(ctx, repos.Applications, companyID, id)
		if err != nil {
			return err
		}
		if err := workflow.ApplicationStatus.Validate(a.Status, in.Status); err != nil {
			return err
		}
		now := uc.now()
		from = a.Status
		a.Status = in.Status
		a.ReviewedBy = &actorID
		a.ReviewedAt = &now
		a.UpdatedAt = now
		if in.Rating != nil {
			a.Rating = in.Rating
		}
		if err := repos.Applications.Update(ctx, a); err != nil {
			return err
		}
		if _, err := uc.recorder.Transition(ctx, repos.Transitions, audit.Change{
			CompanyID: companyID, EntityType: entity.EntityApplication, EntityID: a.ID,
			From: from, To: a.Status, ChangedBy: actorID, Note: in.Note, At: now,
		}); err != nil {
			return err
		}
		if job, err = repos.Jobs.GetByID(ctx, companyID, a.JobID); err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.recorder.Touch(ctx, companyID)
	uc.notifyApplicant(ctx, out, job, from)
	return ToApplicationResponse(out), nil
}

// notifyApplicant avisa al candidato; un fallo de envío solo se registra.
func (uc *JobUseCase) notifyApplicant(ctx context.Context, a *entity.JobApplication, j *entity.Job, from string) {
	if uc.notifier == nil || a.Email == "" {
		return
	}
	title := ""
	if j != nil {
		title = j.Title
	}
	err := uc.notifier.ApplicationStatusChanged(ctx, ports.ApplicationUpdate{
		To:              a.Email,
		CandidateName:   strings.TrimSpace(a.FirstName + " " + a.LastName),
		JobTitle:        title,
		ApplicationCode: a.Code,
		FromStatus:      from,
		ToStatus:        a.Status,
	})
	if err != nil {
		log.Warn().Err(err).Str("application_id", a.ID).Msg("no se pudo notificar el cambio de postulación")
	}
}

func (uc *JobUseCase) getJob(ctx context.Context, repo repository.JobRepository, companyID, id string) (*entity.Job, error) {
	j, err := repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, domain.ErrNotFound
	}
	return j, nil
}

func (uc *JobUseCase) getApplication(ctx context.Context, repo repository.ApplicationRepository, companyID, id string) (*entity.JobApplication, error) {
	a, err := repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

// checkSalaryRange salary_max en cero significa sin tope publicado.
func checkSalaryRange(lo, hi decimal.Decimal) error {
	if !dto.AmountInRange(lo) || !dto.AmountInRange(hi) {
		return fmt.Errorf("%w: salario fuera de rango", domain.ErrInvalidInput)
	}
	if hi.IsPositive() && lo.GreaterThan(hi) {
		return fmt.Errorf("%w: salary_min mayor que salary_max", domain.ErrInvalidInput)
	}
	return nil
}

func (uc *JobUseCase) toJobResponse(j *entity.Job) *dto.JobResponse {
	return &dto.JobResponse{
		ID:                 j.ID,
		Code:               j.Code,
		Title:              j.Title,
		Department:         j.Department,
		Location:           j.Location,
		EmploymentType:     j.EmploymentType,
		ExperienceLevel:    j.ExperienceLevel,
		Description:        j.Description,
		Requirements:       j.Requirements,
		SalaryMin:          j.SalaryMin,
		SalaryMax:          j.SalaryMax,
		SalaryCurrency:     j.SalaryCurrency,
		PositionsAvailable: j.PositionsAvailable,
		Status:             j.Status,
		AcceptingApps:      j.IsAcceptingApplications(uc.now()),
		PublishedAt:        j.PublishedAt,
		ClosingDate:        dto.FormatDatePtr(j.ClosingDate),
		CreatedAt:          j.CreatedAt,
		UpdatedAt:          j.UpdatedAt,
	}
}

// ToApplicationResponse mapea la postulación a DTO.
func ToApplicationResponse(a *entity.JobApplication) *dto.ApplicationResponse {
	return &dto.ApplicationResponse{
		ID:          a.ID,
		Code:        a.Code,
		JobID:       a.JobID,
		EmployeeID:  a.EmployeeID,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Email:       a.Email,
		Phone:       a.Phone,
		CoverLetter: a.CoverLetter,
		Source:      a.Source,
		Status:      a.Status,
		Rating:      a.Rating,
		ReviewedBy:  a.ReviewedBy,
		ReviewedAt:  a.ReviewedAt,
		CreatedAt:   a.CreatedAt,
	}
}

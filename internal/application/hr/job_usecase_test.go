package hr

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/domain"
	"github.com/jhoicas/people360/internal/domain/entity"
	"github.com/jhoicas/people360/pkg/validator"
)

func openJob(t *testing.T, f *fixture) *dto.JobResponse {
	t.Helper()
	j, err := f.jobs.Create(context.Background(), companyID, actorID, dto.CreateJobRequest{
		Title: "Backend Go", Department: "Eng", SalaryMin: decimal.NewFromInt(3000), SalaryMax: decimal.NewFromInt(5000),
	})
	require.NoError(t, err)
	j, err = f.jobs.ChangeStatus(context.Background(), companyID, actorID, j.ID, dto.StatusChangeRequest{Status: entity.JobStatusOpen})
	require.NoError(t, err)
	return j
}

func TestJob_CreateQuedaEnDraftYGetCoincide(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	j, err := f.jobs.Create(ctx, companyID, actorID, dto.CreateJobRequest{
		Title: "Backend Go", Department: "Eng", Description: "<p>Go <script>x()</script></p>", ClosingDate: "2026-07-01",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.JobStatusDraft, j.Status)
	assert.False(t, j.AcceptingApps)
	assert.Nil(t, j.PublishedAt)
	assert.NotContains(t, j.Description, "script")
	assert.Equal(t, "USD", j.SalaryCurrency)
	assert.Equal(t, 1, j.PositionsAvailable)

	got, err := f.jobs.GetByID(ctx, companyID, j.ID)
	require.NoError(t, err)
	assert.Equal(t, j, got)
}

func TestJob_RangoSalarialInvertido(t *testing.T) {
	f := newFixture(t)
	_, err := f.jobs.Create(context.Background(), companyID, actorID, dto.CreateJobRequest{
		Title: "X", Department: "Eng", SalaryMin: decimal.NewFromInt(9000), SalaryMax: decimal.NewFromInt(5000),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestJob_ChangeStatus_PublicaYAudita(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	j := openJob(t, f)

	assert.Equal(t, entity.JobStatusOpen, j.Status)
	require.NotNil(t, j.PublishedAt)
	assert.Equal(t, clock, *j.PublishedAt)
	assert.True(t, j.AcceptingApps)

	_, err := f.jobs.ChangeStatus(ctx, companyID, actorID, j.ID, dto.StatusChangeRequest{Status: entity.JobStatusDraft})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "no se vuelve a draft")

	_, err = f.jobs.ChangeStatus(ctx, companyID, actorID, j.ID, dto.StatusChangeRequest{Status: "archivada"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.jobs.ChangeStatus(ctx, companyID, actorID, j.ID, dto.StatusChangeRequest{Status: entity.JobStatusFilled, Note: "cubierta"})
	require.NoError(t, err)

	history, err := f.jobs.History(ctx, companyID, j.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, entity.JobStatusDraft, history[0].FromStatus)
	assert.Equal(t, entity.JobStatusOpen, history[0].ToStatus)
	assert.Equal(t, entity.JobStatusFilled, history[1].ToStatus)
	assert.Equal(t, "cubierta", history[1].Note)
	assert.Equal(t, actorID, history[1].ChangedBy)
}

func TestJob_UpdateNoCambiaEstado(t *testing.T) {
	f := newFixture(t)
	j := openJob(t, f)

	got, err := f.jobs.Update(context.Background(), companyID, j.ID, dto.UpdateJobRequest{Title: ptr("Backend Senior")})
	require.NoError(t, err)
	assert.Equal(t, "Backend Senior", got.Title)
	assert.Equal(t, entity.JobStatusOpen, got.Status)
}

func TestApply_SoloConVacanteAbiertaYSinDuplicados(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	draft, err := f.jobs.Create(ctx, companyID, actorID, dto.CreateJobRequest{Title: "X", Department: "Eng"})
	require.NoError(t, err)
	_, err = f.jobs.Apply(ctx, companyID, draft.ID, dto.CreateApplicationRequest{FirstName: "Ana", Email: "ana@mail.com"})
	assert.ErrorIs(t, err, domain.ErrConflict, "draft no recibe postulaciones")

	j := openJob(t, f)
	app, err := f.jobs.Apply(ctx, companyID, j.ID, dto.CreateApplicationRequest{FirstName: "ana", Email: "Ana@Mail.com"})
	require.NoError(t, err)
	assert.Regexp(t, `^APP[A-Z0-9]{6}$`, app.Code)
	assert.Equal(t, entity.ApplicationApplied, app.Status)
	assert.Equal(t, "website", app.Source)

	_, err = f.jobs.Apply(ctx, companyID, j.ID, dto.CreateApplicationRequest{FirstName: "Ana", Email: "ana@mail.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = f.jobs.Apply(ctx, companyID, j.ID, dto.CreateApplicationRequest{LastName: "Sin datos"})
	var verr *validator.Error
	assert.ErrorAs(t, err, &verr, "externo sin nombre ni email")

	page, err := f.jobs.Applications(ctx, companyID, j.ID, dto.PageQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
}

func TestApply_EmpleadoInternoAportaSusDatos(t *testing.T) {
	f := newFixture(t)
	emp := f.employee(t, "Jane", "jane@x.com", "Eng")
	j := openJob(t, f)

	app, err := f.jobs.Apply(context.Background(), companyID, j.ID, dto.CreateApplicationRequest{EmployeeID: emp.ID})
	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", app.Email)
	assert.Equal(t, "internal", app.Source)
	require.NotNil(t, app.EmployeeID)
	assert.Equal(t, emp.ID, *app.EmployeeID)
}

func TestApplicationStatus_RegistraRevisorYCalificacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	j := openJob(t, f)
	app, err := f.jobs.Apply(ctx, companyID, j.ID, dto.CreateApplicationRequest{FirstName: "Ana", Email: "ana@mail.com"})
	require.NoError(t, err)

	got, err := f.jobs.ChangeApplicationStatus(ctx, companyID, actorID, app.ID, dto.ApplicationStatusRequest{
		Status: entity.ApplicationInterviewing, Rating: ptr(4),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationInterviewing, got.Status)
	require.NotNil(t, got.ReviewedBy)
	assert.Equal(t, actorID, *got.ReviewedBy)
	assert.Equal(t, 4, *got.Rating)

	require.Len(t, f.notifier.Applications, 1)
	notice := f.notifier.Applications[0]
	assert.Equal(t, "ana@mail.com", notice.To)
	assert.Equal(t, j.Title, notice.JobTitle)
	assert.Equal(t, app.Code, notice.ApplicationCode)
	assert.Equal(t, entity.ApplicationApplied, notice.FromStatus)
	assert.Equal(t, entity.ApplicationInterviewing, notice.ToStatus)

	_, err = f.jobs.ChangeApplicationStatus(ctx, companyID, actorID, app.ID, dto.ApplicationStatusRequest{Status: entity.ApplicationApplied})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.jobs.ChangeApplicationStatus(ctx, companyID, actorID, app.ID, dto.ApplicationStatusRequest{Status: entity.ApplicationHired, Rating: ptr(9)})
	var verr *validator.Error
	assert.ErrorAs(t, err, &verr, "rating fuera de 1-5")

	transitions := f.store.Transitions()
	assert.Equal(t, entity.EntityApplication, transitions[len(transitions)-1].EntityType)
	assert.Len(t, f.notifier.Applications, 1, "los cambios rechazados no avisan")
}

func TestJob_DeleteSoloSinPostulaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	draft, err := f.jobs.Create(ctx, companyID, actorID, dto.CreateJobRequest{Title: "X", Department: "Eng"})
	require.NoError(t, err)
	require.NoError(t, f.jobs.Delete(ctx, companyID, draft.ID))
	_, err = f.jobs.GetByID(ctx, companyID, draft.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.jobs.Delete(ctx, companyID, draft.ID), domain.ErrNotFound)

	j := openJob(t, f)
	_, err = f.jobs.Apply(ctx, companyID, j.ID, dto.CreateApplicationRequest{FirstName: "Ana", Email: "ana@mail.com"})
	require.NoError(t, err)
	assert.ErrorIs(t, f.jobs.Delete(ctx, companyID, j.ID), domain.ErrConflict)
	_, err = f.jobs.GetByID(ctx, companyID, j.ID)
	assert.NoError(t, err, "la vacante sigue ahí")
}

//go:build container

package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/people360/internal/application/audit"
	"github.com/jhoicas/people360/internal/application/auth"
	"github.com/jhoicas/people360/internal/application/crm"
	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/application/hr"
	"github.com/jhoicas/people360/internal/domain"
	"github.com/jhoicas/people360/internal/domain/repository"
	"github.com/jhoicas/people360/internal/infrastructure/postgres"
	"github.com/jhoicas/people360/pkg/config"
)

// startPostgres levanta un PostgreSQL efímero con el esquema migrado.
func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "people360",
				"POSTGRES_PASSWORD": "people360",
				"POSTGRES_DB":       "people360",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)
	dsn := fmt.Sprintf("postgres://people360:people360@%s:%s/people360?sslmode=disable", host, port.Port())

	db, err := postgres.OpenSQL(dsn)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, postgres.MigrateUp(ctx, db))

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 5})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

type pgFixture struct {
	repos     repository.Repos
	companyID string
	adminID   string
	employees *hr.EmployeeUseCase
	customers *crm.CustomerUseCase
	leads     *crm.LeadUseCase
	tickets   *crm.TicketUseCase
}

func newPGFixture(t *testing.T) *pgFixture {
	t.Helper()
	pool := startPostgres(t)
	repos := postgres.NewRepos(pool)
	tx := postgres.NewTxRunner(pool)
	recorder := audit.NewRecorder(nil)

	authUC := auth.NewAuthUseCase(repos.Users, repos.Companies, tx, nil, auth.JWTConfig{Secret: "s", ExpMinutes: 5, Issuer: "t"})
	reg, err := authUC.RegisterCompany(context.Background(), dto.RegisterCompanyRequest{
		CompanyName: "Acme", Username: "admin1", Email: "admin@x.com", Password: "supersecret",
	})
	require.NoError(t, err)

	return &pgFixture{
		repos:     repos,
		companyID: reg.Company.ID,
		adminID:   reg.User.ID,
		employees: hr.NewEmployeeUseCase(repos.Employees, repos.Users, tx, recorder),
		customers: crm.NewCustomerUseCase(repos.Customers, repos.Users, tx, recorder),
		leads:     crm.NewLeadUseCase(repos, tx, recorder),
		tickets:   crm.NewTicketUseCase(repos, tx, recorder, nil),
	}
}

func TestPostgres_EmpleadoCreadoSeLeeIgual(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()

	created, err := f.employees.Create(ctx, f.companyID, f.adminID, dto.CreateEmployeeRequest{
		FirstName: "Jane", LastName: "Doe", Email: "jane@x.com", Department: "Eng",
		HireDate: "2026-01-15", Salary: decimal.NewFromInt(3000),
	})
	require.NoError(t, err)

	got, err := f.employees.GetByID(ctx, f.companyID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Code, got.Code)
	assert.Equal(t, "Jane", got.FirstName)
	assert.Equal(t, "Eng", got.Department)
	assert.Equal(t, "2026-01-15", got.HireDate)
	assert.True(t, decimal.NewFromInt(3000).Equal(got.Salary))

	page, err := f.employees.List(ctx, f.companyID, dto.EmployeeListQuery{Q: "jane"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)

	_, err = f.employees.Create(ctx, f.companyID, f.adminID, dto.CreateEmployeeRequest{
		FirstName: "Otra", Email: "jane@x.com", Department: "Eng",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestPostgres_BorrarClienteConDependientes(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()

	customer, err := f.customers.Create(ctx, f.companyID, f.adminID, dto.CreateCustomerRequest{
		CompanyName: "Globex", Email: "ops@globex.com", Tags: []string{"VIP"},
	})
	require.NoError(t, err)
	_, err = f.tickets.Create(ctx, f.companyID, dto.CreateTicketRequest{
		CustomerID: customer.ID, Subject: "Caída", Description: "El portal no responde",
	})
	require.NoError(t, err)

	// la regla del caso de uso y la FK del esquema coinciden
	assert.ErrorIs(t, f.customers.Delete(ctx, f.companyID, customer.ID), domain.ErrCustomerHasDependents)
	assert.ErrorIs(t, f.repos.Customers.Delete(ctx, f.companyID, customer.ID), domain.ErrCustomerHasDependents)

	clean, err := f.customers.Create(ctx, f.companyID, f.adminID, dto.CreateCustomerRequest{
		CompanyName: "Initech", Email: "hola@initech.com",
	})
	require.NoError(t, err)
	require.NoError(t, f.customers.Delete(ctx, f.companyID, clean.ID))
	_, err = f.customers.GetByID(ctx, f.companyID, clean.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgres_EtapaDelLeadConAuditoria(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()

	customer, err := f.customers.Create(ctx, f.companyID, f.adminID, dto.CreateCustomerRequest{
		CompanyName: "Globex", Email: "ops@globex.com",
	})
	require.NoError(t, err)
	lead, err := f.leads.Create(ctx, f.companyID, f.adminID, dto.CreateLeadRequest{
		Title: "Licencias", CustomerID: customer.ID, EstimatedValue: decimal.NewFromInt(12000), Probability: 25,
	})
	require.NoError(t, err)

	title := "Licencias 2027"
	updated, err := f.leads.Update(ctx, f.companyID, lead.ID, dto.UpdateLeadRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, lead.Stage, updated.Stage, "actualizar otros campos no mueve la etapa")

	_, err = f.leads.ChangeStage(ctx, f.companyID, f.adminID, lead.ID, dto.LeadStageRequest{Stage: "qualified", Note: "presupuesto ok"})
	require.NoError(t, err)
	_, err = f.leads.ChangeStage(ctx, f.companyID, f.adminID, lead.ID, dto.LeadStageRequest{Stage: "new"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	history, err := f.leads.History(ctx, f.companyID, lead.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "new", history[0].FromStatus)
	assert.Equal(t, "qualified", history[0].ToStatus)

	activities, err := f.leads.Activities(ctx, f.companyID, lead.ID)
	require.NoError(t, err)
	require.NotEmpty(t, activities)
}

func TestPostgres_UsuarioDuplicado(t *testing.T) {
	f := newPGFixture(t)
	authUC := auth.NewAuthUseCase(f.repos.Users, f.repos.Companies, nil, nil, auth.JWTConfig{Secret: "s", ExpMinutes: 5})
	_, err := authUC.RegisterUser(context.Background(), dto.RegisterRequest{
		CompanyID: f.companyID, Username: "otro", Email: "admin@x.com", Password: "password123",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestPostgres_BorradoEnCascadaYMasivo(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()

	customer, err := f.customers.Create(ctx, f.companyID, f.adminID, dto.CreateCustomerRequest{
		CompanyName: "Globex", Email: "ops@globex.com",
	})
	require.NoError(t, err)
	lead, err := f.leads.Create(ctx, f.companyID, f.adminID, dto.CreateLeadRequest{Title: "Licencias", CustomerID: customer.ID})
	require.NoError(t, err)
	_, err = f.leads.ChangeStage(ctx, f.companyID, f.adminID, lead.ID, dto.LeadStageRequest{Stage: "qualified"})
	require.NoError(t, err)
	ticket, err := f.tickets.Create(ctx, f.companyID, dto.CreateTicketRequest{
		CustomerID: customer.ID, Subject: "Caída", Description: "El portal no responde",
	})
	require.NoError(t, err)
	_, err = f.tickets.AddResponse(ctx, f.companyID, f.adminID, ticket.ID, dto.CreateTicketResponseRequest{Message: "Revisando"})
	require.NoError(t, err)

	_, err = f.customers.Bulk(ctx, f.companyID, dto.BulkCustomerRequest{Action: "delete", CustomerIDs: []string{customer.ID}})
	assert.ErrorIs(t, err, domain.ErrCustomerHasDependents)

	// actividades y respuestas caen por ON DELETE CASCADE; la auditoría queda
	require.NoError(t, f.leads.Delete(ctx, f.companyID, lead.ID))
	require.NoError(t, f.tickets.Delete(ctx, f.companyID, ticket.ID))
	history, err := f.repos.Transitions.ListByEntity(ctx, f.companyID, "lead", lead.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	out, err := f.customers.Bulk(ctx, f.companyID, dto.BulkCustomerRequest{Action: "delete", CustomerIDs: []string{customer.ID}})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Affected)
	assert.ErrorIs(t, f.leads.Delete(ctx, f.companyID, lead.ID), domain.ErrNotFound)
}

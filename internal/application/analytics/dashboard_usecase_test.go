package analytics

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/domain"
	"github.com/jhoicas/people360/internal/domain/entity"
	"github.com/jhoicas/people360/internal/testutil"
)

const companyID = "c0000000-0000-4000-8000-000000000001"

var clock = time.Date(2026, 6, 3, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store *testutil.Store
	cache *testutil.Cache
	uc    *DashboardUseCase
	n     int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := testutil.NewStore()
	cache := testutil.NewCache()
	uc := NewDashboardUseCase(store.Analytics(), store.Repos().Transitions, cache)
	uc.now = func() time.Time { return clock }
	return &fixture{store: store, cache: cache, uc: uc}
}

func (f *fixture) employee(t *testing.T, first, dept string, hired time.Time) {
	t.Helper()
	f.n++
	require.NoError(t, f.store.Repos().Employees.Create(context.Background(), &entity.Employee{
		ID: fmt.Sprintf("e0000000-0000-4000-8000-%012d", f.n), CompanyID: companyID, Code: fmt.Sprintf("EMP%06d", f.n),
		FirstName: first, LastName: "Doe", Email: fmt.Sprintf("%s%d@x.com", first, f.n), Department: dept,
		Status: entity.EmployeeStatusActive, HireDate: hired,
	}))
}

func (f *fixture) customer(t *testing.T, name string) string {
	t.Helper()
	f.n++
	id := fmt.Sprintf("d0000000-0000-4000-8000-%012d", f.n)
	require.NoError(t, f.store.Repos().Customers.Create(context.Background(), &entity.Customer{
		ID: id, CompanyID: companyID, Code: fmt.Sprintf("CUS%06d", f.n), CompanyName: name,
		Email: fmt.Sprintf("c%d@x.com", f.n), Status: entity.CustomerStatusActive,
	}))
	return id
}

func (f *fixture) lead(t *testing.T, customerID, title, stage string, value int64) {
	t.Helper()
	f.n++
	require.NoError(t, f.store.Repos().Leads.Create(context.Background(), &entity.Lead{
		ID: fmt.Sprintf("f0000000-0000-4000-8000-%012d", f.n), CompanyID: companyID, Code: fmt.Sprintf("LEA%06d", f.n),
		CustomerID: customerID, Title: title, Stage: stage, EstimatedValue: decimal.NewFromInt(value),
		CreatedAt: clock,
	}))
}

func (f *fixture) transition(t *testing.T, entityType string, at time.Time) {
	t.Helper()
	f.n++
	require.NoError(t, f.store.Repos().Transitions.Create(context.Background(), &entity.StatusTransition{
		ID: fmt.Sprintf("t%d", f.n), CompanyID: companyID, EntityType: entityType, EntityID: "x",
		FromStatus: "a", ToStatus: "b", ChangedBy: "u", ChangedAt: at,
	}))
}

func seed(t *testing.T, f *fixture) {
	f.employee(t, "Jane", "Eng", clock.AddDate(0, 0, -5))
	f.employee(t, "Ana", "Eng", clock.AddDate(-2, 0, 0))
	f.employee(t, "Luis", "Ops", clock.AddDate(-1, 0, 0))
	c := f.customer(t, "Globex")
	f.lead(t, c, "Licencias", entity.LeadStageProposal, 1000)
	f.lead(t, c, "Soporte", entity.LeadStageNegotiation, 500)
	f.lead(t, c, "Piloto", entity.LeadStageWon, 200)
}

func TestGetStats_HRManagerSoloVeHR(t *testing.T) {
	f := newFixture(t)
	seed(t, f)

	out, err := f.uc.GetStats(context.Background(), companyID, entity.RoleHRManager)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Totals.ActiveEmployees)
	assert.Equal(t, 1, out.Totals.ActiveCustomers)
	require.NotNil(t, out.HR)
	assert.Equal(t, 3, out.HR.TotalEmployees)
	assert.Equal(t, 1, out.HR.RecentHires, "solo Jane ingresó en los últimos 30 días")
	assert.Nil(t, out.CRM)
	require.Len(t, out.Charts.EmployeesByDepartment, 2)
	assert.Equal(t, "Eng", out.Charts.EmployeesByDepartment[0].Key)
	assert.Equal(t, 2, out.Charts.EmployeesByDepartment[0].Count)
	assert.Empty(t, out.Charts.LeadsByStage)
}

func TestGetStats_SalesManagerVeCRM(t *testing.T) {
	f := newFixture(t)
	seed(t, f)

	out, err := f.uc.GetStats(context.Background(), companyID, entity.RoleSalesManager)
	require.NoError(t, err)
	assert.Nil(t, out.HR)
	require.NotNil(t, out.CRM)
	assert.Equal(t, 2, out.CRM.ActiveLeads)
	assert.Equal(t, "1500", out.CRM.PipelineValue.String())
	assert.Equal(t, "200", out.CRM.WonValue.String())
	assert.Empty(t, out.Charts.EmployeesByDepartment)
	for _, p := range out.Charts.LeadsByStage {
		if p.Key == entity.LeadStageWon {
			assert.Equal(t, "Closed Won", p.Label)
		}
	}
}

func TestGetStats_AdminVeAmbosBloques(t *testing.T) {
	f := newFixture(t)
	seed(t, f)
	out, err := f.uc.GetStats(context.Background(), companyID, entity.RoleAdmin)
	require.NoError(t, err)
	assert.NotNil(t, out.HR)
	assert.NotNil(t, out.CRM)
}

func TestGetStats_CacheadoHastaInvalidar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seed(t, f)

	first, err := f.uc.GetStats(ctx, companyID, entity.RoleAdmin)
	require.NoError(t, err)
	f.employee(t, "Nuevo", "Eng", clock)

	cached, err := f.uc.GetStats(ctx, companyID, entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, first.Totals, cached.Totals, "segunda lectura sale de la caché")

	require.NoError(t, f.cache.Invalidate(ctx, companyID))
	fresh, err := f.uc.GetStats(ctx, companyID, entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, 4, fresh.Totals.ActiveEmployees)
}

func TestGetStats_ActividadRecienteFiltradaPorRol(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 12; i++ {
		f.transition(t, entity.EntityLead, clock.Add(time.Duration(i)*time.Minute))
	}
	f.transition(t, entity.EntityLeave, clock.Add(time.Hour))

	admin, err := f.uc.GetStats(context.Background(), companyID, entity.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, admin.RecentActivity, 10)
	assert.Equal(t, entity.EntityLeave, admin.RecentActivity[0].EntityType, "la más reciente primero")

	hr, err := f.uc.GetStats(context.Background(), companyID, entity.RoleHRManager)
	require.NoError(t, err)
	require.Len(t, hr.RecentActivity, 1)
	assert.Equal(t, entity.EntityLeave, hr.RecentActivity[0].EntityType)

	customer, err := f.uc.GetStats(context.Background(), companyID, entity.RoleCustomer)
	require.NoError(t, err)
	assert.Empty(t, customer.RecentActivity)
}

func TestSearch_MinimoYFiltroPorRol(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.employee(t, "Globe", "Eng", clock)
	c := f.customer(t, "Globex")
	f.lead(t, c, "Globex renovación", entity.LeadStageNew, 10)

	_, err := f.uc.Search(ctx, companyID, entity.RoleAdmin, " g ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	all, err := f.uc.Search(ctx, companyID, entity.RoleAdmin, "glob")
	require.NoError(t, err)
	assert.Len(t, all.Results, 3)

	hr, err := f.uc.Search(ctx, companyID, entity.RoleHRManager, "glob")
	require.NoError(t, err)
	require.Len(t, hr.Results, 1)
	assert.Equal(t, KindEmployee, hr.Results[0].Kind)

	support, err := f.uc.Search(ctx, companyID, entity.RoleSupportAgent, "glob")
	require.NoError(t, err)
	require.Len(t, support.Results, 1)
	assert.Equal(t, KindCustomer, support.Results[0].Kind)

	none, err := f.uc.Search(ctx, companyID, entity.RoleCustomer, "glob")
	require.NoError(t, err)
	assert.Empty(t, none.Results)
}

func TestSearch_MaximoCincoPorTipo(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 8; i++ {
		f.employee(t, "Marta", "Eng", clock)
	}
	out, err := f.uc.Search(context.Background(), companyID, entity.RoleHRManager, "marta")
	require.NoError(t, err)
	assert.Len(t, out.Results, 5)
}

func TestSearch_TicketsYVacantesSegunRol(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repos := f.store.Repos()
	c := f.customer(t, "Initech")
	require.NoError(t, repos.Tickets.Create(ctx, &entity.Ticket{
		ID: "b0000000-0000-4000-8000-000000000001", CompanyID: companyID, Code: "TKT000001", CustomerID: c,
		Subject: "Router caído en sede norte", Status: entity.TicketStatusOpen,
	}))
	require.NoError(t, repos.Jobs.Create(ctx, &entity.Job{
		ID: "a1000000-0000-4000-8000-000000000001", CompanyID: companyID, Code: "JOB000001",
		Title: "Ingeniero de routers", Department: "Redes", Status: entity.JobStatusOpen,
	}))

	kinds := func(role string) []string {
		out, err := f.uc.Search(ctx, companyID, role, "router")
		require.NoError(t, err)
		var got []string
		for _, r := range out.Results {
			got = append(got, r.Kind)
		}
		return got
	}
	assert.ElementsMatch(t, []string{KindTicket, KindJob}, kinds(entity.RoleAdmin))
	assert.Equal(t, []string{KindTicket}, kinds(entity.RoleSupportAgent))
	assert.Equal(t, []string{KindTicket}, kinds(entity.RoleSalesManager))
	assert.Equal(t, []string{KindJob}, kinds(entity.RoleHRManager))
	assert.Equal(t, []string{KindJob}, kinds(entity.RoleEmployee))

	out, err := f.uc.Search(ctx, companyID, entity.RoleSupportAgent, "TKT000001")
	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "Router caído en sede norte", out.Results[0].Title)
	assert.Equal(t, entity.TicketStatusOpen, out.Results[0].Extra)
}

func TestEmployeeSummary_DesglosesYAltasRecientes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	add := func(id, dept, kind, status string, created time.Time) {
		require.NoError(t, f.store.Repos().Employees.Create(ctx, &entity.Employee{
			ID: id, CompanyID: companyID, Code: "EMP" + id[len(id)-6:], FirstName: "X", LastName: "Y", Email: id + "@x.com",
			Department: dept, EmploymentType: kind, Status: status, CreatedAt: created,
		}))
	}
	add("e0000000-0000-4000-8000-000000000001", "Eng", entity.EmploymentFullTime, entity.EmployeeStatusActive, clock.AddDate(0, 0, -2))
	add("e0000000-0000-4000-8000-000000000002", "Eng", entity.EmploymentFullTime, entity.EmployeeStatusOnLeave, clock.AddDate(0, -3, 0))
	add("e0000000-0000-4000-8000-000000000003", "", entity.EmploymentFullTime, entity.EmployeeStatusActive, clock.AddDate(-1, 0, 0))

	out, err := f.uc.EmployeeSummary(ctx, companyID)
	require.NoError(t, err)
	assert.Equal(t, 3, out.TotalEmployees)
	assert.Equal(t, 1, out.RecentHires)
	require.Len(t, out.DepartmentBreakdown, 2)
	assert.Equal(t, "Eng", out.DepartmentBreakdown[0].Key)
	assert.Equal(t, "Unassigned", out.DepartmentBreakdown[1].Key)
	assert.Equal(t, []dto.ChartPoint{{Key: entity.EmploymentFullTime, Label: "Full Time", Count: 3}}, out.EmploymentTypeBreakdown)
	require.Len(t, out.StatusBreakdown, 2)
	assert.Equal(t, "On Leave", out.StatusBreakdown[1].Label)
	assert.Equal(t, clock, out.GeneratedAt)

	empty, err := f.uc.EmployeeSummary(ctx, "c0000000-0000-4000-8000-000000000099")
	require.NoError(t, err)
	assert.Zero(t, empty.TotalEmployees)
	assert.NotNil(t, empty.DepartmentBreakdown, "se serializa como lista vacía")
}

func TestCustomerSummary_DesglosesYAltasRecientes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Repos().Customers.Create(ctx, &entity.Customer{
		ID: "d0000000-0000-4000-8000-000000000001", CompanyID: companyID, Code: "CUS000001", CompanyName: "Globex",
		Email: "a@x.com", Industry: "Retail", CustomerType: entity.CustomerTypeProspect, Priority: entity.PriorityMedium,
		Status: entity.CustomerStatusActive, CreatedAt: clock.AddDate(0, 0, -1),
	}))
	require.NoError(t, f.store.Repos().Customers.Create(ctx, &entity.Customer{
		ID: "d0000000-0000-4000-8000-000000000002", CompanyID: companyID, Code: "CUS000002", CompanyName: "Initech",
		Email: "b@x.com", CustomerType: entity.CustomerTypeProspect, Priority: entity.PriorityMedium,
		Status: entity.CustomerStatusActive, CreatedAt: clock.AddDate(0, -2, 0),
	}))

	out, err := f.uc.CustomerSummary(ctx, companyID)
	require.NoError(t, err)
	assert.Equal(t, 2, out.TotalCustomers)
	assert.Equal(t, 1, out.RecentCustomers)
	assert.Equal(t, []dto.ChartPoint{{Key: entity.CustomerTypeProspect, Label: "Prospect", Count: 2}}, out.TypeBreakdown)
	assert.ElementsMatch(t, []string{"Retail", "Unknown"}, []string{out.IndustryBreakdown[0].Key, out.IndustryBreakdown[1].Key})
	assert.Equal(t, 2, out.PriorityBreakdown[0].Count)
}

package crm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/people360/internal/application/audit"
	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/domain/entity"
	"github.com/jhoicas/people360/internal/testutil"
)

const (
	companyID = "c0000000-0000-4000-8000-000000000001"
	actorID   = "a0000000-0000-4000-8000-000000000002"
)

var clock = time.Date(2026, 6, 3, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store     *testutil.Store
	cache     *testutil.Cache
	notifier  *testutil.Notifier
	customers *CustomerUseCase
	leads     *LeadUseCase
	tickets   *TicketUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := testutil.NewStore()
	cache := testutil.NewCache()
	notifier := &testutil.Notifier{}
	repos := store.Repos()
	tx := testutil.TxRunner{Store: store}
	recorder := audit.NewRecorder(cache)
	now := func() time.Time { return clock }

	f := &fixture{
		store:     store,
		cache:     cache,
		notifier:  notifier,
		customers: NewCustomerUseCase(repos.Customers, repos.Users, tx, recorder),
		leads:     NewLeadUseCase(repos, tx, recorder),
		tickets:   NewTicketUseCase(repos, tx, recorder, notifier),
	}
	f.customers.now = now
	f.leads.now = now
	f.tickets.now = now

	require.NoError(t, repos.Companies.Create(context.Background(), &entity.Company{ID: companyID, Name: "Acme"}))
	require.NoError(t, repos.Users.Create(context.Background(), &entity.User{
		ID: actorID, CompanyID: companyID, Username: "sales", Email: "sales@x.com", Role: entity.RoleSalesManager, IsActive: true,
	}))
	return f
}

func (f *fixture) customer(t *testing.T, name, email string) *dto.CustomerResponse {
	t.Helper()
	c, err := f.customers.Create(context.Background(), companyID, actorID, dto.CreateCustomerRequest{
		CompanyName: name, Email: email,
	})
	require.NoError(t, err)
	return c
}

func (f *fixture) ticket(t *testing.T, customerID, priority string) *dto.TicketResponse {
	t.Helper()
	tk, err := f.tickets.Create(context.Background(), companyID, dto.CreateTicketRequest{
		CustomerID: customerID, Subject: "No puedo entrar", Description: "Error 500 al iniciar sesión", Priority: priority,
	})
	require.NoError(t, err)
	return tk
}

// foreignUser crea un usuario activo en otra empresa y devuelve su id.
func (f *fixture) foreignUser(t *testing.T) string {
	t.Helper()
	const otherCompany = "c0000000-0000-4000-8000-000000000099"
	const id = "a0000000-0000-4000-8000-000000000099"
	repos := f.store.Repos()
	require.NoError(t, repos.Companies.Create(context.Background(), &entity.Company{ID: otherCompany, Name: "Otra"}))
	require.NoError(t, repos.Users.Create(context.Background(), &entity.User{
		ID: id, CompanyID: otherCompany, Username: "ajeno", Email: "ajeno@otra.com", Role: entity.RoleSalesManager, IsActive: true,
	}))
	return id
}

func ptr[T any](v T) *T { return &v }

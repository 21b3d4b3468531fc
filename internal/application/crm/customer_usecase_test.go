package crm

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/domain"
)

func TestCustomer_CreateYGetDevuelvenLoMismo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.customers.Create(ctx, companyID, actorID, dto.CreateCustomerRequest{
		CompanyName: "Globex <script>x</script>", Email: " Ventas@Globex.com ", Tags: []string{"VIP", " vip ", "retail"},
	})
	require.NoError(t, err)
	assert.Regexp(t, `^CUS[A-Z0-9]{6}$`, created.Code)
	assert.Equal(t, "Globex", created.CompanyName)
	assert.Equal(t, "ventas@globex.com", created.Email)
	assert.Equal(t, "active", created.Status)
	assert.Equal(t, "prospect", created.CustomerType)
	assert.Equal(t, []string{"vip", "retail"}, created.Tags)

	got, err := f.customers.GetByID(ctx, companyID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, 1, f.cache.InvalidationsFor(companyID))
}

func TestCustomer_EmailDuplicado(t *testing.T) {
	f := newFixture(t)
	f.customer(t, "Globex", "ventas@globex.com")

	_, err := f.customers.Create(context.Background(), companyID, actorID, dto.CreateCustomerRequest{
		FirstName: "Otro", Email: "VENTAS@globex.com",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCustomer_UpdateSinNombreRechazado(t *testing.T) {
	f := newFixture(t)
	c := f.customer(t, "Globex", "ventas@globex.com")

	_, err := f.customers.Update(context.Background(), companyID, c.ID, dto.UpdateCustomerRequest{CompanyName: ptr("")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	upd, err := f.customers.Update(context.Background(), companyID, c.ID, dto.UpdateCustomerRequest{
		City: ptr("Bogotá"), Priority: ptr("high"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Bogotá", upd.City)
	assert.Equal(t, "high", upd.Priority)
	assert.Equal(t, "Globex", upd.CompanyName)
}

func TestCustomer_DeleteConTicketsRechazado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.customer(t, "Globex", "ventas@globex.com")
	f.ticket(t, c.ID, "high")

	err := f.customers.Delete(ctx, companyID, c.ID)
	assert.ErrorIs(t, err, domain.ErrCustomerHasDependents)

	_, err = f.customers.GetByID(ctx, companyID, c.ID)
	assert.NoError(t, err, "el cliente sigue existiendo")
}

func TestCustomer_DeleteConLeadsRechazado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.customer(t, "Globex", "ventas@globex.com")
	_, err := f.leads.Create(ctx, companyID, actorID, dto.CreateLeadRequest{Title: "Renovación", CustomerID: c.ID})
	require.NoError(t, err)

	assert.ErrorIs(t, f.customers.Delete(ctx, companyID, c.ID), domain.ErrCustomerHasDependents)
}

func TestCustomer_DeleteSinDependientes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.customer(t, "Globex", "ventas@globex.com")

	require.NoError(t, f.customers.Delete(ctx, companyID, c.ID))
	_, err := f.customers.GetByID(ctx, companyID, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.customers.Delete(ctx, companyID, c.ID), domain.ErrNotFound)
}

func TestCustomer_ListFiltraYPagina(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.customer(t, "Globex", "a@globex.com")
	f.customer(t, "Initech", "b@initech.com")
	f.customer(t, "Umbrella", "c@umbrella.com")

	page, err := f.customers.List(ctx, companyID, dto.CustomerListQuery{PageQuery: dto.PageQuery{Page: 1, PerPage: 2}})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Len(t, page.Items, 2)
	assert.True(t, page.HasNext)

	found, err := f.customers.List(ctx, companyID, dto.CustomerListQuery{Q: "initech"})
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Initech", found.Items[0].CompanyName)

	other, err := f.customers.List(ctx, "c0000000-0000-4000-8000-000000000099", dto.CustomerListQuery{})
	require.NoError(t, err)
	assert.Empty(t, other.Items)
}

func TestCustomer_OwnerDeOtraEmpresaRechazado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	foreign := f.foreignUser(t)

	_, err := f.customers.Create(ctx, companyID, actorID, dto.CreateCustomerRequest{
		CompanyName: "Globex", Email: "ventas@globex.com", OwnerID: foreign,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	c := f.customer(t, "Globex", "ventas@globex.com")
	_, err = f.customers.Update(ctx, companyID, c.ID, dto.UpdateCustomerRequest{OwnerID: ptr(foreign)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	upd, err := f.customers.Update(ctx, companyID, c.ID, dto.UpdateCustomerRequest{OwnerID: ptr(actorID)})
	require.NoError(t, err)
	require.NotNil(t, upd.OwnerID)
	assert.Equal(t, actorID, *upd.OwnerID)
}

func TestCustomer_LimitesDeColumna(t *testing.T) {
	f := newFixture(t)

	_, err := f.customers.Create(context.Background(), companyID, actorID, dto.CreateCustomerRequest{
		CompanyName: "Globex", Email: "ventas@globex.com", Address: strings.Repeat("a", 256),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.customers.Create(context.Background(), companyID, actorID, dto.CreateCustomerRequest{
		CompanyName: "Globex", Email: strings.Repeat("a", 250) + "@x.com",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.customers.Create(context.Background(), companyID, actorID, dto.CreateCustomerRequest{
		CompanyName: "Globex", Email: "ventas@globex.com", Address: strings.Repeat("a", 255),
	})
	assert.NoError(t, err)
}

func TestCustomer_BulkCambiaTipoYAsigna(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.customer(t, "Globex", "ventas@globex.com")
	b := f.customer(t, "Initech", "info@initech.com")

	out, err := f.customers.Bulk(ctx, companyID, dto.BulkCustomerRequest{
		Action: dto.BulkUpdateType, CustomerIDs: []string{a.ID, b.ID}, CustomerType: " Partner ",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Affected)

	_, err = f.customers.Bulk(ctx, companyID, dto.BulkCustomerRequest{
		Action: dto.BulkAssign, CustomerIDs: []string{a.ID, b.ID}, OwnerID: actorID,
	})
	require.NoError(t, err)
	for _, id := range []string{a.ID, b.ID} {
		got, err := f.customers.GetByID(ctx, companyID, id)
		require.NoError(t, err)
		assert.Equal(t, "partner", got.CustomerType)
		require.NotNil(t, got.OwnerID)
		assert.Equal(t, actorID, *got.OwnerID)
	}
}

func TestCustomer_BulkRechazaSinCambiarNada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.customer(t, "Globex", "ventas@globex.com")
	b := f.customer(t, "Initech", "info@initech.com")
	f.ticket(t, b.ID, "")

	_, err := f.customers.Bulk(ctx, companyID, dto.BulkCustomerRequest{Action: dto.BulkAssign, CustomerIDs: []string{a.ID}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "assign sin owner_id")
	_, err = f.customers.Bulk(ctx, companyID, dto.BulkCustomerRequest{Action: dto.BulkUpdateType, CustomerIDs: []string{a.ID}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "update_type sin customer_type")
	_, err = f.customers.Bulk(ctx, companyID, dto.BulkCustomerRequest{
		Action: dto.BulkAssign, CustomerIDs: []string{a.ID}, OwnerID: f.foreignUser(t),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "owner de otra empresa")

	_, err = f.customers.Bulk(ctx, companyID, dto.BulkCustomerRequest{Action: dto.BulkDelete, CustomerIDs: []string{a.ID, b.ID}})
	assert.ErrorIs(t, err, domain.ErrCustomerHasDependents)
	_, err = f.customers.GetByID(ctx, companyID, a.ID)
	assert.NoError(t, err, "a no se borró aunque no tiene dependientes")

	out, err := f.customers.Bulk(ctx, companyID, dto.BulkCustomerRequest{Action: dto.BulkDelete, CustomerIDs: []string{a.ID}})
	require.NoError(t, err)
	assert.Equal(t, &dto.BulkResponse{Action: dto.BulkDelete, Affected: 1}, out)
}

func TestCustomer_ExportCSV(t *testing.T) {
	f := newFixture(t)
	f.customer(t, "Globex, S.A.", "ventas@globex.com")

	out, filename, err := f.customers.ExportCSV(context.Background(), companyID)
	require.NoError(t, err)
	assert.Equal(t, "customers.csv", filename)
	lines := strings.Split(strings.TrimSpace(string(out)), "\r\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Customer ID,Company Name,First Name,Last Name,Email,Phone,Industry,Customer Type,Priority,Status,Created At", lines[0])
	assert.Contains(t, lines[1], `,"Globex, S.A.",,,ventas@globex.com,,,prospect,medium,active,2026-06-03T10:00:00Z`)
}

package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/people360/internal/application/analytics"
	"github.com/jhoicas/people360/internal/application/audit"
	"github.com/jhoicas/people360/internal/application/auth"
	"github.com/jhoicas/people360/internal/application/crm"
	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/application/hr"
	"github.com/jhoicas/people360/internal/application/payroll"
	"github.com/jhoicas/people360/internal/application/usecase"
	"github.com/jhoicas/people360/internal/infrastructure/permission"
	apphttp "github.com/jhoicas/people360/internal/interfaces/http"
	"github.com/jhoicas/people360/internal/testutil"
)

// newAPI arma la API completa sobre repositorios en memoria.
func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	store := testutil.NewStore()
	repos := store.Repos()
	tx := testutil.TxRunner{Store: store}
	cache := testutil.NewCache()
	tokens := testutil.NewTokens()
	notifier := &testutil.Notifier{}
	recorder := audit.NewRecorder(cache)

	enforcer, err := permission.NewEnforcer()
	require.NoError(t, err)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(repos.Users, repos.Companies, tx, tokens, auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}),
		UserUC:       usecase.NewUserUseCase(repos.Users),
		EmployeeUC:   hr.NewEmployeeUseCase(repos.Employees, repos.Users, tx, recorder),
		JobUC:        hr.NewJobUseCase(repos, tx, recorder, notifier),
		LeaveUC:      hr.NewLeaveUseCase(repos, tx, recorder, notifier),
		AttendanceUC: hr.NewAttendanceUseCase(repos),
		PayrollUC:    payroll.NewUseCase(repos, tx, recorder, &testutil.PDF{}, notifier),
		CustomerUC:   crm.NewCustomerUseCase(repos.Customers, repos.Users, tx, recorder),
		LeadUC:       crm.NewLeadUseCase(repos, tx, recorder),
		TicketUC:     crm.NewTicketUseCase(repos, tx, recorder, notifier),
		AIUC:         usecase.NewAIUseCase(nil),
		DashboardUC:  appanalytics.NewDashboardUseCase(store.Analytics(), repos.Transitions, cache),
		Permissions:  enforcer,
		Tokens:       tokens,
		Users:        repos.Users,
		Metrics:      apphttp.NewMetrics("people360_test"),
		JWTSecret:    testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

// registerCompany crea la empresa Acme con su admin y devuelve el id de la empresa.
func registerCompany(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, raw := call(t, app, http.MethodPost, "/api/auth/register-company", "", dto.RegisterCompanyRequest{
		CompanyName: "Acme", Username: "admin1", Email: "admin@x.com", Password: "supersecret",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	out := decode[dto.RegisterCompanyResponse](t, raw)
	assert.Equal(t, "admin", out.User.Role)
	return out.Company.ID
}

func login(t *testing.T, app *fiber.App, user, password string) string {
	t.Helper()
	resp, raw := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Login: user, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	out := decode[dto.LoginResponse](t, raw)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func TestAPI_RegistroLoginYAltaDeEmpleado(t *testing.T) {
	app := newAPI(t)
	companyID := registerCompany(t, app)

	resp, raw := call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		CompanyID: companyID, Username: "hr1", Email: "hr@x.com", Password: "password123", Role: "hr_manager",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	token := login(t, app, "hr@x.com", "password123")

	resp, raw = call(t, app, http.MethodPost, "/api/hr/employees", token, dto.CreateEmployeeRequest{
		FirstName: "Jane", Email: "jane@x.com", Department: "Eng",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = call(t, app, http.MethodGet, "/api/hr/employees", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	page := decode[dto.Paginated[dto.EmployeeResponse]](t, raw)

	janes := 0
	for _, e := range page.Items {
		if e.FirstName == "Jane" {
			janes++
			assert.Equal(t, "Eng", e.Department)
		}
	}
	assert.Equal(t, 1, janes)
	assert.Equal(t, 1, page.Total)

	// hr_manager no entra a CRM
	resp, _ = call(t, app, http.MethodGet, "/api/crm/customers", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAPI_ValidacionDevuelveDetalles(t *testing.T) {
	app := newAPI(t)
	registerCompany(t, app)
	token := login(t, app, "admin@x.com", "supersecret")

	resp, raw := call(t, app, http.MethodPost, "/api/hr/employees", token, map[string]any{"first_name": "Jane"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, raw)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.NotEmpty(t, body.Details)

	req := httptest.NewRequest(http.MethodPost, "/api/hr/employees", bytes.NewBufferString("{no json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	r, err := app.Test(req, -1)
	require.NoError(t, err)
	r.Body.Close()
	assert.Equal(t, http.StatusBadRequest, r.StatusCode)
}

func TestAPI_BorrarClienteConTicket_Retorna409(t *testing.T) {
	app := newAPI(t)
	registerCompany(t, app)
	token := login(t, app, "admin@x.com", "supersecret")

	resp, raw := call(t, app, http.MethodPost, "/api/crm/customers", token, dto.CreateCustomerRequest{
		CompanyName: "Globex", Email: "ops@globex.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	customer := decode[dto.CustomerResponse](t, raw)

	resp, raw = call(t, app, http.MethodPost, "/api/crm/tickets", token, dto.CreateTicketRequest{
		CustomerID: customer.ID, Subject: "Caída", Description: "El portal no responde",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = call(t, app, http.MethodDelete, "/api/crm/customers/"+customer.ID, token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CUSTOMER_HAS_DEPENDENTS", decode[dto.ErrorResponse](t, raw).Code)

	resp, _ = call(t, app, http.MethodGet, "/api/crm/customers/"+customer.ID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "el cliente sigue existiendo")
}

func TestAPI_LoginIncorrecto_NoEmiteToken(t *testing.T) {
	app := newAPI(t)
	registerCompany(t, app)

	for _, in := range []dto.LoginRequest{
		{Login: "admin@x.com", Password: "incorrecta"},
		{Login: "nadie@x.com", Password: "supersecret"},
	} {
		resp, raw := call(t, app, http.MethodPost, "/api/auth/login", "", in)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.NotContains(t, string(raw), `"token"`)
	}
}

func TestAPI_LogoutRevocaElToken(t *testing.T) {
	app := newAPI(t)
	registerCompany(t, app)
	token := login(t, app, "admin@x.com", "supersecret")

	resp, raw := call(t, app, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "admin@x.com", decode[dto.UserResponse](t, raw).Email)

	resp, _ = call(t, app, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_TriageSinIA_Retorna503(t *testing.T) {
	app := newAPI(t)
	registerCompany(t, app)
	token := login(t, app, "admin@x.com", "supersecret")

	resp, raw := call(t, app, http.MethodPost, "/api/crm/tickets/triage", token, dto.TicketTriageRequest{
		Subject: "No factura", Description: "El botón de facturar no hace nada",
	})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "AI_UNAVAILABLE", decode[dto.ErrorResponse](t, raw).Code)
}

func TestAPI_DashboardYBusqueda(t *testing.T) {
	app := newAPI(t)
	registerCompany(t, app)
	token := login(t, app, "admin@x.com", "supersecret")

	resp, _ := call(t, app, http.MethodPost, "/api/hr/employees", token, dto.CreateEmployeeRequest{
		FirstName: "Jane", Email: "jane@x.com", Department: "Eng",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, raw := call(t, app, http.MethodGet, "/api/dashboard/stats", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	stats := decode[dto.DashboardResponse](t, raw)
	assert.Equal(t, 1, stats.Totals.ActiveEmployees)

	resp, _ = call(t, app, http.MethodGet, "/api/search?q=j", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, raw = call(t, app, http.MethodGet, "/api/search?q=jane", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	found := decode[dto.SearchResponse](t, raw)
	require.Len(t, found.Results, 1)
	assert.Equal(t, "employee", found.Results[0].Kind)
}

func TestAPI_HealthYMetrics(t *testing.T) {
	app := newAPI(t)

	resp, raw := call(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "ok")

	resp, _ = call(t, app, http.MethodGet, "/api/hr/employees", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, raw = call(t, app, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "people360_test_http_requests_total")
	assert.Contains(t, string(raw), `status_code="401"`)
}

// registerUser da de alta username@x.com con el rol indicado y devuelve su id y su token.
func registerUser(t *testing.T, app *fiber.App, companyID, username, role string) (string, string) {
	t.Helper()
	email := username + "@x.com"
	resp, raw := call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		CompanyID: companyID, Username: username, Email: email, Password: "password123", Role: role,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	return decode[dto.UserResponse](t, raw).ID, login(t, app, email, "password123")
}

func TestAPI_TokenSigueElEstadoVigenteDelUsuario(t *testing.T) {
	app := newAPI(t)
	companyID := registerCompany(t, app)
	admin := login(t, app, "admin@x.com", "supersecret")
	customer := dto.CreateCustomerRequest{CompanyName: "Globex", Email: "ops@globex.com"}

	salesID, sales := registerUser(t, app, companyID, "sales", "sales_manager")
	resp, raw := call(t, app, http.MethodPost, "/api/crm/customers", sales, customer)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	// degradado a customer: el token viejo dice sales_manager pero manda el rol vigente
	resp, raw = call(t, app, http.MethodPut, "/api/users/"+salesID, admin, map[string]any{"role": "customer"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	customer.Email = "otro@globex.com"
	resp, _ = call(t, app, http.MethodPost, "/api/crm/customers", sales, customer)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// desactivado
	resp, raw = call(t, app, http.MethodPut, "/api/users/"+salesID, admin, map[string]any{"is_active": false})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	resp, raw = call(t, app, http.MethodGet, "/api/auth/me", sales, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", decode[dto.ErrorResponse](t, raw).Code)

	// borrado
	supportID, support := registerUser(t, app, companyID, "support", "support_agent")
	resp, _ = call(t, app, http.MethodGet, "/api/crm/tickets", support, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = call(t, app, http.MethodDelete, "/api/users/"+supportID, admin, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = call(t, app, http.MethodGet, "/api/crm/tickets", support, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_IDQueNoEsUUID_Retorna404(t *testing.T) {
	app := newAPI(t)
	registerCompany(t, app)
	token := login(t, app, "admin@x.com", "supersecret")

	for _, path := range []string{
		"/api/crm/customers/abc",
		"/api/hr/employees/1",
		"/api/crm/leads/00000000-0000-0000-0000",
		"/api/hr/payroll/abc/payslip",
	} {
		resp, raw := call(t, app, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, raw).Code, path)
	}

	resp, raw := call(t, app, http.MethodDelete, "/api/crm/tickets/no-es-uuid", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, raw).Code)
}

func TestAPI_OperacionesMasivasExportYReportes(t *testing.T) {
	app := newAPI(t)
	registerCompany(t, app)
	token := login(t, app, "admin@x.com", "supersecret")

	var ids []string
	for _, email := range []string{"jane@x.com", "bob@x.com"} {
		resp, raw := call(t, app, http.MethodPost, "/api/hr/employees", token, dto.CreateEmployeeRequest{
			FirstName: "Emp", Email: email, Department: "Eng",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
		ids = append(ids, decode[dto.EmployeeResponse](t, raw).ID)
	}

	resp, raw := call(t, app, http.MethodPost, "/api/hr/employees/bulk", token, dto.BulkEmployeeRequest{
		Action: "update_department", EmployeeIDs: ids, Department: "Ops",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, 2, decode[dto.BulkResponse](t, raw).Affected)

	resp, raw = call(t, app, http.MethodGet, "/api/hr/employees/export", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "employees.csv")
	assert.Contains(t, string(raw), "jane@x.com,,Ops,")

	resp, raw = call(t, app, http.MethodGet, "/api/reports/employee-summary", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	summary := decode[dto.EmployeeSummaryResponse](t, raw)
	assert.Equal(t, 2, summary.TotalEmployees)
	require.Len(t, summary.DepartmentBreakdown, 1)
	assert.Equal(t, "Ops", summary.DepartmentBreakdown[0].Key)

	resp, raw = call(t, app, http.MethodPost, "/api/crm/customers/bulk", token, dto.BulkCustomerRequest{
		Action: "delete", CustomerIDs: []string{"d0000000-0000-4000-8000-000000000001"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "id inexistente")
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, raw).Code)

	resp, _ = call(t, app, http.MethodGet, "/api/reports/customer-summary", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

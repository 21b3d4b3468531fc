package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/people360/internal/application/analytics"
	"github.com/jhoicas/people360/internal/application/auth"
	"github.com/jhoicas/people360/internal/application/crm"
	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/application/hr"
	"github.com/jhoicas/people360/internal/application/payroll"
	"github.com/jhoicas/people360/internal/application/ports"
	"github.com/jhoicas/people360/internal/application/usecase"
	"github.com/jhoicas/people360/internal/domain/rbac"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	EmployeeUC   *hr.EmployeeUseCase
	JobUC        *hr.JobUseCase
	LeaveUC      *hr.LeaveUseCase
	AttendanceUC *hr.AttendanceUseCase
	PayrollUC    *payroll.UseCase
	CustomerUC   *crm.CustomerUseCase
	LeadUC       *crm.LeadUseCase
	TicketUC     *crm.TicketUseCase
	AIUC         *usecase.AIUseCase
	DashboardUC  *appanalytics.DashboardUseCase

	Permissions PermissionChecker
	Tokens      ports.TokenStore // nil = sin lista de revocación
	Users       UserLookup       // nil = se confía en el rol del token
	Metrics     *Metrics         // nil = sin /metrics
	HealthCheck func(ctx context.Context) error
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", deps.Metrics.Handler())
	}
	app.Get("/health", healthHandler(deps.HealthCheck))

	api := app.Group("/api")
	authed := AuthMiddleware(deps.JWTSecret, WithTokenStore(deps.Tokens), WithUserLookup(deps.Users))
	can := func(resource, action string) fiber.Handler {
		return RequirePermission(deps.Permissions, resource, action)
	}

	// Auth: registro y login públicos, sesión con token
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/register-company", authHandler.RegisterCompany)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authed, authHandler.Logout)
	authGroup.Get("/me", authed, authHandler.Me)
	authGroup.Put("/password", authed, authHandler.ChangePassword)

	userHandler := NewUserHandler(deps.UserUC)
	users := api.Group("/users", authed)
	users.Get("/", can(rbac.ResourceUsers, rbac.ActionRead), userHandler.List)
	users.Get("/:id<guid>", can(rbac.ResourceUsers, rbac.ActionRead), userHandler.Get)
	users.Put("/:id<guid>", can(rbac.ResourceUsers, rbac.ActionWrite), userHandler.Update)
	users.Delete("/:id<guid>", can(rbac.ResourceUsers, rbac.ActionWrite), userHandler.Delete)

	// HR
	hrGroup := api.Group("/hr", authed)

	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees := hrGroup.Group("/employees")
	employees.Get("/", can(rbac.ResourceEmployees, rbac.ActionRead), employeeHandler.List)
	employees.Post("/", can(rbac.ResourceEmployees, rbac.ActionWrite), employeeHandler.Create)
	employees.Post("/bulk", can(rbac.ResourceEmployees, rbac.ActionWrite), employeeHandler.Bulk)
	employees.Get("/export", can(rbac.ResourceEmployees, rbac.ActionRead), employeeHandler.Export)
	employees.Get("/:id<guid>", can(rbac.ResourceEmployees, rbac.ActionRead), employeeHandler.Get)
	employees.Put("/:id<guid>", can(rbac.ResourceEmployees, rbac.ActionWrite), employeeHandler.Update)
	employees.Delete("/:id<guid>", can(rbac.ResourceEmployees, rbac.ActionWrite), employeeHandler.Delete)
	employees.Get("/:id<guid>/reports", can(rbac.ResourceEmployees, rbac.ActionRead), employeeHandler.Reports)

	jobHandler := NewJobHandler(deps.JobUC)
	jobs := hrGroup.Group("/jobs")
	jobs.Get("/", can(rbac.ResourceJobs, rbac.ActionRead), jobHandler.List)
	jobs.Post("/", can(rbac.ResourceJobs, rbac.ActionWrite), jobHandler.Create)
	jobs.Get("/:id<guid>", can(rbac.ResourceJobs, rbac.ActionRead), jobHandler.Get)
	jobs.Put("/:id<guid>", can(rbac.ResourceJobs, rbac.ActionWrite), jobHandler.Update)
	jobs.Delete("/:id<guid>", can(rbac.ResourceJobs, rbac.ActionWrite), jobHandler.Delete)
	jobs.Post("/:id<guid>/status", can(rbac.ResourceJobs, rbac.ActionWrite), jobHandler.ChangeStatus)
	jobs.Get("/:id<guid>/history", can(rbac.ResourceJobs, rbac.ActionRead), jobHandler.History)
	jobs.Get("/:id<guid>/applications", can(rbac.ResourceApplications, rbac.ActionRead), jobHandler.Applications)
	// postularse solo exige poder ver la vacante
	jobs.Post("/:id<guid>/applications", can(rbac.ResourceJobs, rbac.ActionRead), jobHandler.Apply)

	applications := hrGroup.Group("/applications")
	applications.Get("/:id<guid>", can(rbac.ResourceApplications, rbac.ActionRead), jobHandler.GetApplication)
	applications.Post("/:id<guid>/status", can(rbac.ResourceApplications, rbac.ActionWrite), jobHandler.ChangeApplicationStatus)

	leaveHandler := NewLeaveHandler(deps.LeaveUC)
	leaves := hrGroup.Group("/leaves")
	leaves.Get("/", can(rbac.ResourceLeaves, rbac.ActionRead), leaveHandler.List)
	leaves.Post("/", can(rbac.ResourceLeaves, rbac.ActionWrite), leaveHandler.Create)
	leaves.Get("/balance/:employeeId<guid>", can(rbac.ResourceLeaves, rbac.ActionRead), leaveHandler.Balance)
	leaves.Post("/:id<guid>/approve", can(rbac.ResourceLeaves, rbac.ActionApprove), leaveHandler.Approve)
	leaves.Post("/:id<guid>/reject", can(rbac.ResourceLeaves, rbac.ActionApprove), leaveHandler.Reject)
	leaves.Post("/:id<guid>/cancel", can(rbac.ResourceLeaves, rbac.ActionWrite), leaveHandler.Cancel)

	attendanceHandler := NewAttendanceHandler(deps.AttendanceUC)
	attendance := hrGroup.Group("/attendance")
	attendance.Post("/check-in", can(rbac.ResourceAttendance, rbac.ActionWrite), attendanceHandler.CheckIn)
	attendance.Post("/check-out", can(rbac.ResourceAttendance, rbac.ActionWrite), attendanceHandler.CheckOut)
	attendance.Get("/report/:employeeId<guid>", can(rbac.ResourceAttendance, rbac.ActionRead), attendanceHandler.Report)

	payrollHandler := NewPayrollHandler(deps.PayrollUC)
	payrollGroup := hrGroup.Group("/payroll")
	payrollGroup.Post("/run", can(rbac.ResourcePayroll, rbac.ActionWrite), payrollHandler.Run)
	payrollGroup.Get("/", can(rbac.ResourcePayroll, rbac.ActionRead), payrollHandler.List)
	payrollGroup.Get("/:id<guid>", can(rbac.ResourcePayroll, rbac.ActionRead), payrollHandler.Get)
	payrollGroup.Post("/:id<guid>/status", can(rbac.ResourcePayroll, rbac.ActionApprove), payrollHandler.ChangeStatus)
	payrollGroup.Get("/:id<guid>/history", can(rbac.ResourcePayroll, rbac.ActionRead), payrollHandler.History)
	payrollGroup.Get("/:id<guid>/payslip", can(rbac.ResourcePayroll, rbac.ActionRead), payrollHandler.Payslip)

	// CRM
	crmGroup := api.Group("/crm", authed)

	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers := crmGroup.Group("/customers")
	customers.Get("/", can(rbac.ResourceCustomers, rbac.ActionRead), customerHandler.List)
	customers.Post("/", can(rbac.ResourceCustomers, rbac.ActionWrite), customerHandler.Create)
	customers.Post("/bulk", can(rbac.ResourceCustomers, rbac.ActionWrite), customerHandler.Bulk)
	customers.Get("/export", can(rbac.ResourceCustomers, rbac.ActionRead), customerHandler.Export)
	customers.Get("/:id<guid>", can(rbac.ResourceCustomers, rbac.ActionRead), customerHandler.Get)
	customers.Put("/:id<guid>", can(rbac.ResourceCustomers, rbac.ActionWrite), customerHandler.Update)
	customers.Delete("/:id<guid>", can(rbac.ResourceCustomers, rbac.ActionWrite), customerHandler.Delete)

	leadHandler := NewLeadHandler(deps.LeadUC)
	leads := crmGroup.Group("/leads")
	leads.Get("/", can(rbac.ResourceLeads, rbac.ActionRead), leadHandler.List)
	leads.Post("/", can(rbac.ResourceLeads, rbac.ActionWrite), leadHandler.Create)
	leads.Get("/:id<guid>", can(rbac.ResourceLeads, rbac.ActionRead), leadHandler.Get)
	leads.Put("/:id<guid>", can(rbac.ResourceLeads, rbac.ActionWrite), leadHandler.Update)
	leads.Delete("/:id<guid>", can(rbac.ResourceLeads, rbac.ActionWrite), leadHandler.Delete)
	leads.Post("/:id<guid>/stage", can(rbac.ResourceLeads, rbac.ActionWrite), leadHandler.ChangeStage)
	leads.Get("/:id<guid>/history", can(rbac.ResourceLeads, rbac.ActionRead), leadHandler.History)
	leads.Get("/:id<guid>/activities", can(rbac.ResourceLeads, rbac.ActionRead), leadHandler.Activities)
	leads.Post("/:id<guid>/activities", can(rbac.ResourceLeads, rbac.ActionWrite), leadHandler.AddActivity)

	aiHandler := NewAIHandler(deps.AIUC)
	ticketHandler := NewTicketHandler(deps.TicketUC)
	tickets := crmGroup.Group("/tickets")
	tickets.Post("/triage", can(rbac.ResourceTickets, rbac.ActionWrite), aiHandler.SuggestTriage)
	tickets.Get("/", can(rbac.ResourceTickets, rbac.ActionRead), ticketHandler.List)
	tickets.Post("/", can(rbac.ResourceTickets, rbac.ActionWrite), ticketHandler.Create)
	tickets.Get("/:id<guid>", can(rbac.ResourceTickets, rbac.ActionRead), ticketHandler.Get)
	tickets.Put("/:id<guid>", can(rbac.ResourceTickets, rbac.ActionWrite), ticketHandler.Update)
	tickets.Delete("/:id<guid>", can(rbac.ResourceTickets, rbac.ActionWrite), ticketHandler.Delete)
	tickets.Post("/:id<guid>/status", can(rbac.ResourceTickets, rbac.ActionWrite), ticketHandler.ChangeStatus)
	tickets.Get("/:id<guid>/history", can(rbac.ResourceTickets, rbac.ActionRead), ticketHandler.History)
	tickets.Get("/:id<guid>/responses", can(rbac.ResourceTickets, rbac.ActionRead), ticketHandler.Responses)
	tickets.Post("/:id<guid>/responses", can(rbac.ResourceTickets, rbac.ActionWrite), ticketHandler.AddResponse)

	// Dashboard y búsqueda: el caso de uso recorta por rol
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/stats", authed, can(rbac.ResourceDashboard, rbac.ActionRead), dashboardHandler.GetStats)
	api.Get("/search", authed, can(rbac.ResourceDashboard, rbac.ActionRead), dashboardHandler.Search)
	api.Get("/reports/employee-summary", authed, can(rbac.ResourceEmployees, rbac.ActionRead), dashboardHandler.EmployeeSummary)
	api.Get("/reports/customer-summary", authed, can(rbac.ResourceCustomers, rbac.ActionRead), dashboardHandler.CustomerSummary)

	// Rutas inexistentes o con ids que no son UUID
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	})
}

func healthHandler(check func(ctx context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "UNHEALTHY", Message: "base de datos no disponible"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/jhoicas/people360/docs"
	appanalytics "github.com/jhoicas/people360/internal/application/analytics"
	"github.com/jhoicas/people360/internal/application/audit"
	"github.com/jhoicas/people360/internal/application/auth"
	"github.com/jhoicas/people360/internal/application/crm"
	"github.com/jhoicas/people360/internal/application/hr"
	"github.com/jhoicas/people360/internal/application/payroll"
	"github.com/jhoicas/people360/internal/application/ports"
	"github.com/jhoicas/people360/internal/application/usecase"
	infraai "github.com/jhoicas/people360/internal/infrastructure/ai"
	"github.com/jhoicas/people360/internal/infrastructure/cache"
	"github.com/jhoicas/people360/internal/infrastructure/email"
	infrapdf "github.com/jhoicas/people360/internal/infrastructure/pdf"
	"github.com/jhoicas/people360/internal/infrastructure/permission"
	"github.com/jhoicas/people360/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/people360/internal/interfaces/http"
	"github.com/jhoicas/people360/pkg/config"
	"github.com/jhoicas/people360/pkg/logger"
)

// @title        People360 API
// @version      1.0
// @description  API multiempresa de Recursos Humanos y CRM.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	repos := postgres.NewRepos(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Redis es opcional: sin él no hay caché del dashboard ni revocación de tokens
	var (
		dashboardCache ports.DashboardCache
		tokenStore     ports.TokenStore
	)
	if cfg.Redis.Enabled() {
		client, err := cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		dashboardCache = cache.NewDashboardCache(client, time.Duration(cfg.Redis.CacheTTL)*time.Second)
		tokenStore = cache.NewTokenStore(client)
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: dashboard sin caché y logout sin revocación")
	}

	enforcer, err := permission.NewEnforcer()
	if err != nil {
		log.Fatal().Err(err).Msg("cargar políticas RBAC")
	}

	var llm ports.LLMService
	if cfg.AI.AnthropicAPIKey != "" {
		llm = infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.Model)
	} else {
		log.Warn().Msg("ANTHROPIC_API_KEY vacío: triage IA deshabilitado")
	}

	notifier := email.New(cfg.Mail)
	recorder := audit.NewRecorder(dashboardCache)

	authUC := auth.NewAuthUseCase(repos.Users, repos.Companies, txRunner, tokenStore, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.HTTP.CORSOrigins}))
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "People360 API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       usecase.NewUserUseCase(repos.Users),
		EmployeeUC:   hr.NewEmployeeUseCase(repos.Employees, repos.Users, txRunner, recorder),
		JobUC:        hr.NewJobUseCase(repos, txRunner, recorder, notifier),
		LeaveUC:      hr.NewLeaveUseCase(repos, txRunner, recorder, notifier),
		AttendanceUC: hr.NewAttendanceUseCase(repos),
		PayrollUC:    payroll.NewUseCase(repos, txRunner, recorder, infrapdf.NewMarotoPayslipGenerator(), notifier),
		CustomerUC:   crm.NewCustomerUseCase(repos.Customers, repos.Users, txRunner, recorder),
		LeadUC:       crm.NewLeadUseCase(repos, txRunner, recorder),
		TicketUC:     crm.NewTicketUseCase(repos, txRunner, recorder, notifier),
		AIUC:         usecase.NewAIUseCase(llm),
		DashboardUC:  appanalytics.NewDashboardUseCase(postgres.NewAnalyticsRepository(pool), repos.Transitions, dashboardCache),
		Permissions:  enforcer,
		Tokens:       tokenStore,
		Users:        repos.Users,
		Metrics:      httpRouter.NewMetrics("people360"),
		HealthCheck:  pool.Ping,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// Package analytics contiene el dashboard agregado y la búsqueda global.
package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/people360/internal/application/audit"
	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/application/ports"
	"github.com/jhoicas/people360/internal/domain"
	"github.com/jhoicas/people360/internal/domain/entity"
	"github.com/jhoicas/people360/internal/domain/rbac"
	"github.com/jhoicas/people360/internal/domain/repository"
	"github.com/jhoicas/people360/pkg/labels"
)

const (
	recentActivityLimit = 10
	recentHiresDays     = 30
	searchMinLength     = 2
	searchPerKind       = 5
)

// Tipos de resultado de la búsqueda global.
const (
	KindEmployee = "employee"
	KindCustomer = "customer"
	KindLead     = "lead"
	KindTicket   = "ticket"
	KindJob      = "job"
)

// searchResources recurso RBAC que habilita cada tipo de resultado, en el orden de la respuesta.
var searchResources = []struct{ kind, resource string }{
	{KindEmployee, rbac.ResourceEmployees},
	{KindCustomer, rbac.ResourceCustomers},
	{KindLead, rbac.ResourceLeads},
	{KindTicket, rbac.ResourceTickets},
	{KindJob, rbac.ResourceJobs},
}

// entityResource recurso RBAC que permite ver la auditoría de cada entidad.
var entityResource = map[string]string{
	entity.EntityJob:         rbac.ResourceJobs,
	entity.EntityApplication: rbac.ResourceApplications,
	entity.EntityLeave:       rbac.ResourceLeaves,
	entity.EntityPayroll:     rbac.ResourcePayroll,
	entity.EntityLead:        rbac.ResourceLeads,
	entity.EntityTicket:      rbac.ResourceTickets,
}

// DashboardUseCase genera el resumen de la empresa según el rol.
//
// Fuente de datos: AnalyticsRepository (consultas read-only) y la auditoría.
// El resultado se cachea por (empresa, rol); los casos de uso de escritura lo invalidan.
type DashboardUseCase struct {
	analytics   repository.AnalyticsRepository
	transitions repository.TransitionRepository
	cache       ports.DashboardCache
	now         func() time.Time
}

// NewDashboardUseCase cache puede ser nil.
func NewDashboardUseCase(analytics repository.AnalyticsRepository, transitions repository.TransitionRepository, cache ports.DashboardCache) *DashboardUseCase {
	return &DashboardUseCase{analytics: analytics, transitions: transitions, cache: cache, now: time.Now}
}

type result[T any] struct {
	v   T
	err error
}

// fetch lanza la consulta en su propia goroutine; el canal tiene buffer para
// que la goroutine no quede bloqueada si el llamador sale antes.
func fetch[T any](run bool, fn func() (T, error)) <-chan result[T] {
	ch := make(chan result[T], 1)
	if !run {
		var zero T
		ch <- result[T]{v: zero}
		return ch
	}
	go func() {
		v, err := fn()
		ch <- result[T]{v: v, err: err}
	}()
	return ch
}

// GetStats arma el dashboard. Los bloques HR y CRM solo se calculan si el rol
// tiene acceso al módulo.
func (uc *DashboardUseCase) GetStats(ctx context.Context, companyID, role string) (*dto.DashboardResponse, error) {
	if uc.cache != nil {
		var cached dto.DashboardResponse
		hit, err := uc.cache.Get(ctx, companyID, role, &cached)
		if err != nil {
			log.Warn().Err(err).Str("company_id", companyID).Msg("caché del dashboard no disponible")
		}
		if hit {
			return &cached, nil
		}
	}

	now := uc.now()
	hr, crm := rbac.CanAccessHR(role), rbac.CanAccessCRM(role)

	totalsCh := fetch(true, func() (repository.Totals, error) { return uc.analytics.GetTotals(ctx, companyID) })
	hrCh := fetch(hr, func() (repository.HRStats, error) {
		return uc.analytics.GetHRStats(ctx, companyID, now.AddDate(0, 0, -recentHiresDays))
	})
	deptCh := fetch(hr, func() ([]repository.CountByKey, error) { return uc.analytics.EmployeesByDepartment(ctx, companyID) })
	crmCh := fetch(crm, func() (repository.CRMStats, error) { return uc.analytics.GetCRMStats(ctx, companyID, now) })
	stageCh := fetch(crm, func() ([]repository.ValueByKey, error) { return uc.analytics.LeadsByStage(ctx, companyID) })
	statusCh := fetch(crm, func() ([]repository.CountByKey, error) { return uc.analytics.TicketsByStatus(ctx, companyID) })
	prioCh := fetch(crm, func() ([]repository.CountByKey, error) { return uc.analytics.TicketsByPriority(ctx, companyID) })
	recentCh := fetch(true, func() ([]*entity.StatusTransition, error) {
		// se piden de más porque después se filtran por módulo visible
		return uc.transitions.ListRecent(ctx, companyID, recentActivityLimit*3)
	})

	totals, hrStats, dept := <-totalsCh, <-hrCh, <-deptCh
	crmStats, stages, statuses, prios := <-crmCh, <-stageCh, <-statusCh, <-prioCh
	recent := <-recentCh

	for name, err := range map[string]error{
		"totales": totals.err, "hr": hrStats.err, "departamentos": dept.err, "crm": crmStats.err,
		"pipeline": stages.err, "tickets por estado": statuses.err, "tickets por prioridad": prios.err,
		"actividad reciente": recent.err,
	} {
		if err != nil {
			return nil, fmt.Errorf("dashboard: %s: %w", name, err)
		}
	}

	out := &dto.DashboardResponse{
		Totals: dto.TotalsDTO{
			ActiveEmployees: totals.v.ActiveEmployees,
			ActiveCustomers: totals.v.ActiveCustomers,
		},
		Charts: dto.ChartsDTO{
			EmployeesByDepartment: countPoints(dept.v, func(k string) string { return k }),
			LeadsByStage:          valuePoints(stages.v),
			TicketsByStatus:       countPoints(statuses.v, labels.Humanize),
			TicketsByPriority:     countPoints(prios.v, labels.Humanize),
		},
		RecentActivity: audit.ToResponses(visible(recent.v, role)),
		GeneratedAt:    now.UTC(),
	}
	if hr {
		out.HR = &dto.HRStatsDTO{
			TotalEmployees: hrStats.v.TotalEmployees,
			OpenPositions:  hrStats.v.OpenPositions,
			RecentHires:    hrStats.v.RecentHires,
			PendingLeaves:  hrStats.v.PendingLeaves,
		}
	}
	if crm {
		out.CRM = &dto.CRMStatsDTO{
			ActiveLeads:    crmStats.v.ActiveLeads,
			OpenTickets:    crmStats.v.OpenTickets,
			OverdueTickets: crmStats.v.OverdueTickets,
			PipelineValue:  crmStats.v.PipelineValue.Round(2),
			WonValue:       crmStats.v.WonValue.Round(2),
		}
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, companyID, role, out); err != nil {
			log.Warn().Err(err).Str("company_id", companyID).Msg("no se pudo cachear el dashboard")
		}
	}
	return out, nil
}

func visible(list []*entity.StatusTransition, role string) []*entity.StatusTransition {
	out := make([]*entity.StatusTransition, 0, recentActivityLimit)
	for _, t := range list {
		if len(out) == recentActivityLimit {
			break
		}
		if rbac.Allowed(role, entityResource[t.EntityType], rbac.ActionRead) {
			out = append(out, t)
		}
	}
	return out
}

func countPoints(list []repository.CountByKey, label func(string) string) []dto.ChartPoint {
	out := make([]dto.ChartPoint, 0, len(list))
	for _, c := range list {
		out = append(out, dto.ChartPoint{Key: c.Key, Label: label(c.Key), Count: c.Count})
	}
	return out
}

func valuePoints(list []repository.ValueByKey) []dto.ChartPoint {
	out := make([]dto.ChartPoint, 0, len(list))
	for _, v := range list {
		value := v.Value.Round(2)
		out = append(out, dto.ChartPoint{Key: v.Key, Label: entity.LeadStageLabel(v.Key), Count: v.Count, Value: &value})
	}
	return out
}

// Search busca en empleados, clientes, leads, tickets y vacantes según lo que el rol puede leer.
// q necesita al menos dos caracteres.
func (uc *DashboardUseCase) Search(ctx context.Context, companyID, role, q string) (*dto.SearchResponse, error) {
	q = strings.TrimSpace(q)
	if len([]rune(q)) < searchMinLength {
		return nil, fmt.Errorf("%w: q requiere al menos %d caracteres", domain.ErrInvalidInput, searchMinLength)
	}
	var kinds []string
	for _, sr := range searchResources {
		if rbac.Allowed(role, sr.resource, rbac.ActionRead) {
			kinds = append(kinds, sr.kind)
		}
	}
	out := &dto.SearchResponse{Query: q, Results: []dto.SearchResult{}}
	if len(kinds) == 0 {
		return out, nil
	}
	hits, err := uc.analytics.Search(ctx, companyID, q, kinds, searchPerKind)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	for _, h := range hits {
		out.Results = append(out.Results, dto.SearchResult{Kind: h.Kind, ID: h.ID, Code: h.Code, Title: h.Title, Extra: h.Extra})
	}
	return out, nil
}

// EmployeeSummary reporte de plantilla: totales, desgloses e ingresos de los últimos 30 días.
func (uc *DashboardUseCase) EmployeeSummary(ctx context.Context, companyID string) (*dto.EmployeeSummaryResponse, error) {
	now := uc.now()
	s, err := uc.analytics.EmployeeSummary(ctx, companyID, now.AddDate(0, 0, -recentHiresDays))
	if err != nil {
		return nil, fmt.Errorf("employee summary: %w", err)
	}
	return &dto.EmployeeSummaryResponse{
		TotalEmployees:          s.Total,
		DepartmentBreakdown:     countPoints(s.ByDepartment, func(k string) string { return k }),
		EmploymentTypeBreakdown: countPoints(s.ByEmploymentType, labels.Humanize),
		StatusBreakdown:         countPoints(s.ByStatus, labels.Humanize),
		RecentHires:             s.RecentHires,
		GeneratedAt:             now.UTC(),
	}, nil
}

// CustomerSummary reporte de cartera: totales, desgloses y altas de los últimos 30 días.
func (uc *DashboardUseCase) CustomerSummary(ctx context.Context, companyID string) (*dto.CustomerSummaryResponse, error) {
	now := uc.now()
	s, err := uc.analytics.CustomerSummary(ctx, companyID, now.AddDate(0, 0, -recentHiresDays))
	if err != nil {
		return nil, fmt.Errorf("customer summary: %w", err)
	}
	return &dto.CustomerSummaryResponse{
		TotalCustomers:    s.Total,
		TypeBreakdown:     countPoints(s.ByType, labels.Humanize),
		IndustryBreakdown: countPoints(s.ByIndustry, func(k string) string { return k }),
		PriorityBreakdown: countPoints(s.ByPriority, labels.Humanize),
		StatusBreakdown:   countPoints(s.ByStatus, labels.Humanize),
		RecentCustomers:   s.RecentCustomers,
		GeneratedAt:       now.UTC(),
	}, nil
}

package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Totals conteos globales de la empresa.
type Totals struct {
	ActiveEmployees int
	ActiveCustomers int
}

// HRStats métricas del módulo HR.
type HRStats struct {
	OpenPositions  int // vacantes en estado open
	RecentHires    int // ingresos desde `since`
	PendingLeaves  int
	TotalEmployees int
}

// CRMStats métricas del módulo CRM.
type CRMStats struct {
	ActiveLeads    int             // new, qualified, proposal, negotiation
	OpenTickets    int             // open, in_progress, waiting
	PipelineValue  decimal.Decimal // qualified, proposal, negotiation
	OverdueTickets int             // SLA vencido según prioridad
	WonValue       decimal.Decimal
}

// CountByKey conteo agrupado (departamento, estado, prioridad…).
type CountByKey struct {
	Key   string
	Count int
}

// ValueByKey conteo y suma de valor agrupados.
type ValueByKey struct {
	Key   string
	Count int
	Value decimal.Decimal
}

// EmployeeSummary plantilla agrupada para el reporte de RRHH.
type EmployeeSummary struct {
	Total            int
	ByDepartment     []CountByKey // departamento vacío = Unassigned
	ByEmploymentType []CountByKey
	ByStatus         []CountByKey
	RecentHires      int // fichas creadas desde `since`
}

// CustomerSummary cartera agrupada para el reporte comercial.
type CustomerSummary struct {
	Total           int
	ByType          []CountByKey
	ByIndustry      []CountByKey // industria vacía = Unknown
	ByPriority      []CountByKey
	ByStatus        []CountByKey
	RecentCustomers int // clientes creados desde `since`
}

// SearchHit resultado de la búsqueda global.
type SearchHit struct {
	Kind  string // employee, customer, lead, ticket, job
	ID    string
	Code  string
	Title string
	Extra string
}

// AnalyticsRepository consultas de solo lectura para el dashboard y la búsqueda global.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	GetTotals(ctx context.Context, companyID string) (Totals, error)

	// GetHRStats `since` delimita los ingresos recientes.
	GetHRStats(ctx context.Context, companyID string, since time.Time) (HRStats, error)

	// GetCRMStats `now` es la referencia para calcular tickets vencidos.
	GetCRMStats(ctx context.Context, companyID string, now time.Time) (CRMStats, error)

	EmployeesByDepartment(ctx context.Context, companyID string) ([]CountByKey, error)
	LeadsByStage(ctx context.Context, companyID string) ([]ValueByKey, error)
	TicketsByStatus(ctx context.Context, companyID string) ([]CountByKey, error)
	TicketsByPriority(ctx context.Context, companyID string) ([]CountByKey, error)

	// EmployeeSummary y CustomerSummary cuentan todas las fichas, no solo las activas.
	EmployeeSummary(ctx context.Context, companyID string, since time.Time) (EmployeeSummary, error)
	CustomerSummary(ctx context.Context, companyID string, since time.Time) (CustomerSummary, error)

	// Search busca en empleados, clientes, leads, tickets y vacantes; `kinds` restringe los tipos consultados.
	Search(ctx context.Context, companyID, q string, kinds []string, limitPerKind int) ([]SearchHit, error)
}

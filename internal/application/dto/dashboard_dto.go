package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TotalsDTO conteos globales.
type TotalsDTO struct {
	ActiveEmployees int `json:"active_employees"`
	ActiveCustomers int `json:"active_customers"`
}

// HRStatsDTO bloque HR (solo roles con acceso a HR).
type HRStatsDTO struct {
	TotalEmployees int `json:"total_employees"`
	OpenPositions  int `json:"open_positions"`
	RecentHires    int `json:"recent_hires"`
	PendingLeaves  int `json:"pending_leaves"`
}

// CRMStatsDTO bloque CRM (solo roles con acceso a CRM).
type CRMStatsDTO struct {
	ActiveLeads    int             `json:"active_leads"`
	OpenTickets    int             `json:"open_tickets"`
	OverdueTickets int             `json:"overdue_tickets"`
	PipelineValue  decimal.Decimal `json:"pipeline_value"`
	WonValue       decimal.Decimal `json:"won_value"`
}

// ChartPoint punto de gráfico.
type ChartPoint struct {
	Key   string           `json:"key"`
	Label string           `json:"label"`
	Count int              `json:"count"`
	Value *decimal.Decimal `json:"value,omitempty"`
}

// ChartsDTO series agregadas; los bloques sin acceso van vacíos.
type ChartsDTO struct {
	EmployeesByDepartment []ChartPoint `json:"employees_by_department"`
	LeadsByStage          []ChartPoint `json:"leads_by_stage"`
	TicketsByStatus       []ChartPoint `json:"tickets_by_status"`
	TicketsByPriority     []ChartPoint `json:"tickets_by_priority"`
}

// DashboardResponse respuesta de GET /api/dashboard/stats.
type DashboardResponse struct {
	Totals         TotalsDTO            `json:"totals"`
	HR             *HRStatsDTO          `json:"hr,omitempty"`
	CRM            *CRMStatsDTO         `json:"crm,omitempty"`
	Charts         ChartsDTO            `json:"charts"`
	RecentActivity []TransitionResponse `json:"recent_activity"`
	GeneratedAt    time.Time            `json:"generated_at"`
}

// SearchResult resultado de GET /api/search.
type SearchResult struct {
	Kind  string `json:"kind"`
	ID    string `json:"id"`
	Code  string `json:"code"`
	Title string `json:"title"`
	Extra string `json:"extra,omitempty"`
}

// SearchResponse resultados agrupados.
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}

// EmployeeSummaryResponse respuesta de GET /api/reports/employee-summary.
type EmployeeSummaryResponse struct {
	TotalEmployees          int          `json:"total_employees"`
	DepartmentBreakdown     []ChartPoint `json:"department_breakdown"`
	EmploymentTypeBreakdown []ChartPoint `json:"employment_type_breakdown"`
	StatusBreakdown         []ChartPoint `json:"status_breakdown"`
	RecentHires             int          `json:"recent_hires_30_days"`
	GeneratedAt             time.Time    `json:"generated_at"`
}

// CustomerSummaryResponse respuesta de GET /api/reports/customer-summary.
type CustomerSummaryResponse struct {
	TotalCustomers    int          `json:"total_customers"`
	TypeBreakdown     []ChartPoint `json:"type_breakdown"`
	IndustryBreakdown []ChartPoint `json:"industry_breakdown"`
	PriorityBreakdown []ChartPoint `json:"priority_breakdown"`
	StatusBreakdown   []ChartPoint `json:"status_breakdown"`
	RecentCustomers   int          `json:"recent_customers_30_days"`
	GeneratedAt       time.Time    `json:"generated_at"`
}

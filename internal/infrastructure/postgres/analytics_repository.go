package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/people360/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard y la búsqueda global.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetTotals cuenta empleados y clientes activos.
func (r *AnalyticsRepo) GetTotals(ctx context.Context, companyID string) (repository.Totals, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM employees WHERE company_id = $1 AND status = 'active'),
	    (SELECT COUNT(*) FROM customers WHERE company_id = $1 AND status = 'active')`
	var t repository.Totals
	if err := r.pool.QueryRow(ctx, query, companyID).Scan(&t.ActiveEmployees, &t.ActiveCustomers); err != nil {
		return t, dbError("analytics.GetTotals", err)
	}
	return t, nil
}

// GetHRStats vacantes abiertas, ingresos desde `since`, ausencias pendientes y plantilla total.
func (r *AnalyticsRepo) GetHRStats(ctx context.Context, companyID string, since time.Time) (repository.HRStats, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM jobs           WHERE company_id = $1 AND status = 'open'),
	    (SELECT COUNT(*) FROM employees      WHERE company_id = $1 AND hire_date >= $2),
	    (SELECT COUNT(*) FROM leave_requests WHERE company_id = $1 AND status = 'pending'),
	    (SELECT COUNT(*) FROM employees      WHERE company_id = $1)`
	var s repository.HRStats
	if err := r.pool.QueryRow(ctx, query, companyID, since).Scan(
		&s.OpenPositions, &s.RecentHires, &s.PendingLeaves, &s.TotalEmployees,
	); err != nil {
		return s, dbError("analytics.GetHRStats", err)
	}
	return s, nil
}

// GetCRMStats leads activos, tickets abiertos, valor del pipeline y tickets con SLA vencido.
// El SLA en horas por prioridad: urgent 4, high 24, medium 48, low 72.
func (r *AnalyticsRepo) GetCRMStats(ctx context.Context, companyID string, now time.Time) (repository.CRMStats, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM leads
	      WHERE company_id = $1 AND stage IN ('new', 'qualified', 'proposal', 'negotiation')),
	    (SELECT COUNT(*) FROM tickets
	      WHERE company_id = $1 AND status IN ('open', 'in_progress', 'waiting')),
	    (SELECT COALESCE(SUM(estimated_value), 0) FROM leads
	      WHERE company_id = $1 AND stage IN ('qualified', 'proposal', 'negotiation')),
	    (SELECT COUNT(*) FROM tickets
	      WHERE company_id = $1 AND status IN ('open', 'in_progress', 'waiting')
	        AND created_at + make_interval(hours => CASE priority
	                WHEN 'urgent' THEN 4 WHEN 'high' THEN 24 WHEN 'low' THEN 72 ELSE 48 END) < $2),
	    (SELECT COALESCE(SUM(estimated_value), 0) FROM leads
	      WHERE company_id = $1 AND stage = 'won')`
	var s repository.CRMStats
	if err := r.pool.QueryRow(ctx, query, companyID, now).Scan(
		&s.ActiveLeads, &s.OpenTickets, &s.PipelineValue, &s.OverdueTickets, &s.WonValue,
	); err != nil {
		return s, dbError("analytics.GetCRMStats", err)
	}
	return s, nil
}

// EmployeesByDepartment plantilla activa agrupada por departamento.
func (r *AnalyticsRepo) EmployeesByDepartment(ctx context.Context, companyID string) ([]repository.CountByKey, error) {
	return r.countBy(ctx, "analytics.EmployeesByDepartment", `
	SELECT department, COUNT(*) FROM employees
	WHERE company_id = $1 AND status = 'active'
	GROUP BY department ORDER BY COUNT(*) DESC, department`, companyID)
}

// TicketsByStatus conteo de tickets por estado.
func (r *AnalyticsRepo) TicketsByStatus(ctx context.Context, companyID string) ([]repository.CountByKey, error) {
	return r.countBy(ctx, "analytics.TicketsByStatus", `
	SELECT status, COUNT(*) FROM tickets WHERE company_id = $1 GROUP BY status ORDER BY status`, companyID)
}

// TicketsByPriority conteo de tickets abiertos por prioridad.
func (r *AnalyticsRepo) TicketsByPriority(ctx context.Context, companyID string) ([]repository.CountByKey, error) {
	return r.countBy(ctx, "analytics.TicketsByPriority", `
	SELECT priority, COUNT(*) FROM tickets
	WHERE company_id = $1 AND status IN ('open', 'in_progress', 'waiting')
	GROUP BY priority ORDER BY priority`, companyID)
}

func (r *AnalyticsRepo) countBy(ctx context.Context, op, query string, args ...any) ([]repository.CountByKey, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dbError(op, err)
	}
	defer rows.Close()
	var out []repository.CountByKey
	for rows.Next() {
		var row repository.CountByKey
		if err := rows.Scan(&row.Key, &row.Count); err != nil {
			return nil, dbError(op+" scan", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// EmployeeSummary totales de la plantilla por departamento, tipo de contrato y estado.
func (r *AnalyticsRepo) EmployeeSummary(ctx context.Context, companyID string, since time.Time) (repository.EmployeeSummary, error) {
	var s repository.EmployeeSummary
	const totals = `
	SELECT COUNT(*), COUNT(*) FILTER (WHERE created_at >= $2)
	FROM employees WHERE company_id = $1`
	if err := r.pool.QueryRow(ctx, totals, companyID, since).Scan(&s.Total, &s.RecentHires); err != nil {
		return s, dbError("analytics.EmployeeSummary", err)
	}
	var err error
	if s.ByDepartment, err = r.countBy(ctx, "analytics.EmployeeSummary department", `
	SELECT COALESCE(NULLIF(department, ''), 'Unassigned') AS k, COUNT(*) FROM employees
	WHERE company_id = $1 GROUP BY k ORDER BY COUNT(*) DESC, k`, companyID); err != nil {
		return s, err
	}
	if s.ByEmploymentType, err = r.countBy(ctx, "analytics.EmployeeSummary type", `
	SELECT employment_type, COUNT(*) FROM employees
	WHERE company_id = $1 GROUP BY employment_type ORDER BY employment_type`, companyID); err != nil {
		return s, err
	}
	if s.ByStatus, err = r.countBy(ctx, "analytics.EmployeeSummary status", `
	SELECT status, COUNT(*) FROM employees
	WHERE company_id = $1 GROUP BY status ORDER BY status`, companyID); err != nil {
		return s, err
	}
	return s, nil
}

// CustomerSummary totales de la cartera por tipo, industria, prioridad y estado.
func (r *AnalyticsRepo) CustomerSummary(ctx context.Context, companyID string, since time.Time) (repository.CustomerSummary, error) {
	var s repository.CustomerSummary
	const totals = `
	SELECT COUNT(*), COUNT(*) FILTER (WHERE created_at >= $2)
	FROM customers WHERE company_id = $1`
	if err := r.pool.QueryRow(ctx, totals, companyID, since).Scan(&s.Total, &s.RecentCustomers); err != nil {
		return s, dbError("analytics.CustomerSummary", err)
	}
	var err error
	if s.ByType, err = r.countBy(ctx, "analytics.CustomerSummary type", `
	SELECT customer_type, COUNT(*) FROM customers
	WHERE company_id = $1 GROUP BY customer_type ORDER BY customer_type`, companyID); err != nil {
		return s, err
	}
	if s.ByIndustry, err = r.countBy(ctx, "analytics.CustomerSummary industry", `
	SELECT COALESCE(NULLIF(industry, ''), 'Unknown') AS k, COUNT(*) FROM customers
	WHERE company_id = $1 GROUP BY k ORDER BY COUNT(*) DESC, k`, companyID); err != nil {
		return s, err
	}
	if s.ByPriority, err = r.countBy(ctx, "analytics.CustomerSummary priority", `
	SELECT priority, COUNT(*) FROM customers
	WHERE company_id = $1 GROUP BY priority ORDER BY priority`, companyID); err != nil {
		return s, err
	}
	if s.ByStatus, err = r.countBy(ctx, "analytics.CustomerSummary status", `
	SELECT status, COUNT(*) FROM customers
	WHERE company_id = $1 GROUP BY status ORDER BY status`, companyID); err != nil {
		return s, err
	}
	return s, nil
}

// LeadsByStage conteo y valor estimado por etapa del pipeline.
func (r *AnalyticsRepo) LeadsByStage(ctx context.Context, companyID string) ([]repository.ValueByKey, error) {
	const query = `
	SELECT stage, COUNT(*), COALESCE(SUM(estimated_value), 0)
	FROM leads WHERE company_id = $1
	GROUP BY stage ORDER BY stage`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, dbError("analytics.LeadsByStage", err)
	}
	defer rows.Close()
	var out []repository.ValueByKey
	for rows.Next() {
		var row repository.ValueByKey
		if err := rows.Scan(&row.Key, &row.Count, &row.Value); err != nil {
			return nil, dbError("analytics.LeadsByStage scan", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

var searchQueries = map[string]string{
	"employee": `
	SELECT 'employee', id::TEXT, code, first_name || ' ' || last_name, department
	FROM employees
	WHERE company_id = $1 AND (first_name ILIKE $2 OR last_name ILIKE $2 OR email ILIKE $2 OR code ILIKE $2)
	ORDER BY last_name, first_name LIMIT $3`,
	"customer": `
	SELECT 'customer', id::TEXT, code,
	       COALESCE(NULLIF(company_name, ''), first_name || ' ' || last_name), email
	FROM customers
	WHERE company_id = $1 AND (company_name ILIKE $2 OR first_name ILIKE $2 OR last_name ILIKE $2
	                           OR email ILIKE $2 OR code ILIKE $2)
	ORDER BY created_at DESC LIMIT $3`,
	"lead": `
	SELECT 'lead', id::TEXT, code, title, stage
	FROM leads
	WHERE company_id = $1 AND (title ILIKE $2 OR contact_name ILIKE $2 OR code ILIKE $2)
	ORDER BY created_at DESC LIMIT $3`,
	"ticket": `
	SELECT 'ticket', id::TEXT, code, subject, status
	FROM tickets
	WHERE company_id = $1 AND (subject ILIKE $2 OR code ILIKE $2)
	ORDER BY created_at DESC LIMIT $3`,
	"job": `
	SELECT 'job', id::TEXT, code, title, department
	FROM jobs
	WHERE company_id = $1 AND (title ILIKE $2 OR department ILIKE $2 OR code ILIKE $2)
	ORDER BY created_at DESC LIMIT $3`,
}

// Search busca por nombre, título, email o código en cada tipo pedido.
func (r *AnalyticsRepo) Search(ctx context.Context, companyID, q string, kinds []string, limitPerKind int) ([]repository.SearchHit, error) {
	pattern := likePattern(q)
	var hits []repository.SearchHit
	for _, kind := range kinds {
		query, ok := searchQueries[kind]
		if !ok {
			continue
		}
		rows, err := r.pool.Query(ctx, query, companyID, pattern, limitPerKind)
		if err != nil {
			return nil, dbError("analytics.Search "+kind, err)
		}
		for rows.Next() {
			var h repository.SearchHit
			if err := rows.Scan(&h.Kind, &h.ID, &h.Code, &h.Title, &h.Extra); err != nil {
				rows.Close()
				return nil, dbError("analytics.Search scan", err)
			}
			hits = append(hits, h)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, dbError("analytics.Search "+kind, err)
		}
	}
	return hits, nil
}

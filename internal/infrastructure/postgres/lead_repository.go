package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/people360/internal/domain"
	"github.com/jhoicas/people360/internal/domain/entity"
	"github.com/jhoicas/people360/internal/domain/repository"
)

var (
	_ repository.LeadRepository         = (*LeadRepo)(nil)
	_ repository.LeadActivityRepository = (*LeadActivityRepo)(nil)
)

const leadColumns = `id, company_id, code, title, customer_id, owner_id, contact_name, contact_email, source,
	priority, estimated_value, probability, stage, expected_close_date, actual_close_date, description,
	created_at, updated_at`

// LeadRepo implementación de LeadRepository.
type LeadRepo struct {
	q Querier
}

// NewLeadRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLeadRepository(q Querier) *LeadRepo {
	return &LeadRepo{q: q}
}

func scanLead(row pgx.Row) (*entity.Lead, error) {
	var l entity.Lead
	err := row.Scan(&l.ID, &l.CompanyID, &l.Code, &l.Title, &l.CustomerID, &l.OwnerID, &l.ContactName,
		&l.ContactEmail, &l.Source, &l.Priority, &l.EstimatedValue, &l.Probability, &l.Stage,
		&l.ExpectedCloseDate, &l.ActualCloseDate, &l.Description, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create persiste un lead.
func (r *LeadRepo) Create(ctx context.Context, l *entity.Lead) error {
	query := `INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.CompanyID, l.Code, l.Title, l.CustomerID, l.OwnerID, l.ContactName, l.ContactEmail, l.Source,
		l.Priority, l.EstimatedValue, l.Probability, l.Stage, l.ExpectedCloseDate, l.ActualCloseDate,
		l.Description, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return dbError("insert lead", err)
	}
	return nil
}

// GetByID obtiene un lead por ID.
func (r *LeadRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Lead, error) {
	l, err := scanLead(r.q.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError("get lead", err)
	}
	return l, nil
}

// Update actualiza un lead (incluida la etapa).
func (r *LeadRepo) Update(ctx context.Context, l *entity.Lead) error {
	query := `
		UPDATE leads SET title = $3, owner_id = $4, contact_name = $5, contact_email = $6, source = $7,
			priority = $8, estimated_value = $9, probability = $10, stage = $11, expected_close_date = $12,
			actual_close_date = $13, description = $14, updated_at = $15
		WHERE company_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query,
		l.CompanyID, l.ID, l.Title, l.OwnerID, l.ContactName, l.ContactEmail, l.Source,
		l.Priority, l.EstimatedValue, l.Probability, l.Stage, l.ExpectedCloseDate,
		l.ActualCloseDate, l.Description, l.UpdatedAt,
	)
	if err != nil {
		return dbError("update lead", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra la oportunidad; las actividades caen en cascada.
func (r *LeadRepo) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM leads WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return dbError("delete lead", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista leads con filtros y paginación.
func (r *LeadRepo) List(ctx context.Context, companyID string, f repository.LeadFilter) ([]*entity.Lead, int, error) {
	w := newWhere(companyID)
	if f.Stage != "" {
		w.add("stage = ?", f.Stage)
	}
	if f.Priority != "" {
		w.add("priority = ?", f.Priority)
	}
	if f.CustomerID != "" {
		w.add("customer_id = ?", f.CustomerID)
	}
	if f.OwnerID != "" {
		w.add("owner_id = ?", f.OwnerID)
	}
	if f.Query != "" {
		p := likePattern(f.Query)
		w.add("(title ILIKE ? OR contact_name ILIKE ? OR code ILIKE ?)", p, p, p)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM leads`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, dbError("count leads", err)
	}
	limit, args := w.page(f.Page)
	rows, err := r.q.Query(ctx, `SELECT `+leadColumns+` FROM leads`+w.sql()+` ORDER BY created_at DESC, id`+limit, args...)
	if err != nil {
		return nil, 0, dbError("list leads", err)
	}
	defer rows.Close()
	var list []*entity.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, 0, dbError("scan lead", err)
		}
		list = append(list, l)
	}
	return list, total, rows.Err()
}

// LeadActivityRepo implementación de LeadActivityRepository.
type LeadActivityRepo struct {
	q Querier
}

// NewLeadActivityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLeadActivityRepository(q Querier) *LeadActivityRepo {
	return &LeadActivityRepo{q: q}
}

// Create persiste una actividad del lead.
func (r *LeadActivityRepo) Create(ctx context.Context, a *entity.LeadActivity) error {
	query := `
		INSERT INTO lead_activities (id, company_id, lead_id, type, subject, description, outcome, follow_up_date, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.CompanyID, a.LeadID, a.Type, a.Subject, a.Description, a.Outcome, a.FollowUpDate, a.CreatedBy, a.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return dbError("insert lead activity", err)
	}
	return nil
}

// ListByLead lista las actividades del lead, más recientes primero.
func (r *LeadActivityRepo) ListByLead(ctx context.Context, companyID, leadID string) ([]*entity.LeadActivity, error) {
	query := `
		SELECT id, company_id, lead_id, type, subject, description, outcome, follow_up_date, created_by, created_at
		FROM lead_activities WHERE company_id = $1 AND lead_id = $2 ORDER BY created_at DESC, id`
	rows, err := r.q.Query(ctx, query, companyID, leadID)
	if err != nil {
		return nil, dbError("list lead activities", err)
	}
	defer rows.Close()
	var list []*entity.LeadActivity
	for rows.Next() {
		var a entity.LeadActivity
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.LeadID, &a.Type, &a.Subject, &a.Description, &a.Outcome,
			&a.FollowUpDate, &a.CreatedBy, &a.CreatedAt); err != nil {
			return nil, dbError("scan lead activity", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

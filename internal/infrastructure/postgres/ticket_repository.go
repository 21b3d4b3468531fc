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
	_ repository.TicketRepository         = (*TicketRepo)(nil)
	_ repository.TicketResponseRepository = (*TicketResponseRepo)(nil)
)

const ticketColumns = `id, company_id, code, customer_id, subject, description, category, priority, severity,
	status, channel, assigned_to, resolution_date, satisfaction_rating, created_at, updated_at`

// TicketRepo implementación de TicketRepository.
type TicketRepo struct {
	q Querier
}

// NewTicketRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTicketRepository(q Querier) *TicketRepo {
	return &TicketRepo{q: q}
}

func scanTicket(row pgx.Row) (*entity.Ticket, error) {
	var t entity.Ticket
	err := row.Scan(&t.ID, &t.CompanyID, &t.Code, &t.CustomerID, &t.Subject, &t.Description, &t.Category,
		&t.Priority, &t.Severity, &t.Status, &t.Channel, &t.AssignedTo, &t.ResolutionDate,
		&t.SatisfactionRating, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste un ticket.
func (r *TicketRepo) Create(ctx context.Context, t *entity.Ticket) error {
	query := `INSERT INTO tickets (` + ticketColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.CompanyID, t.Code, t.CustomerID, t.Subject, t.Description, t.Category, t.Priority, t.Severity,
		t.Status, t.Channel, t.AssignedTo, t.ResolutionDate, t.SatisfactionRating, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return dbError("insert ticket", err)
	}
	return nil
}

// GetByID obtiene un ticket por ID.
func (r *TicketRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Ticket, error) {
	t, err := scanTicket(r.q.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError("get ticket", err)
	}
	return t, nil
}

// Update actualiza un ticket.
func (r *TicketRepo) Update(ctx context.Context, t *entity.Ticket) error {
	query := `
		UPDATE tickets SET subject = $3, description = $4, category = $5, priority = $6, severity = $7,
			status = $8, channel = $9, assigned_to = $10, resolution_date = $11, satisfaction_rating = $12,
			updated_at = $13
		WHERE company_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query,
		t.CompanyID, t.ID, t.Subject, t.Description, t.Category, t.Priority, t.Severity,
		t.Status, t.Channel, t.AssignedTo, t.ResolutionDate, t.SatisfactionRating, t.UpdatedAt,
	)
	if err != nil {
		return dbError("update ticket", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra el ticket; las respuestas caen en cascada.
func (r *TicketRepo) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM tickets WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return dbError("delete ticket", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista tickets con filtros y paginación.
func (r *TicketRepo) List(ctx context.Context, companyID string, f repository.TicketFilter) ([]*entity.Ticket, int, error) {
	w := newWhere(companyID)
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.Priority != "" {
		w.add("priority = ?", f.Priority)
	}
	if f.CustomerID != "" {
		w.add("customer_id = ?", f.CustomerID)
	}
	if f.AssignedTo != "" {
		w.add("assigned_to = ?", f.AssignedTo)
	}
	if f.Query != "" {
		p := likePattern(f.Query)
		w.add("(subject ILIKE ? OR code ILIKE ?)", p, p)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM tickets`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, dbError("count tickets", err)
	}
	limit, args := w.page(f.Page)
	rows, err := r.q.Query(ctx, `SELECT `+ticketColumns+` FROM tickets`+w.sql()+` ORDER BY created_at DESC, id`+limit, args...)
	if err != nil {
		return nil, 0, dbError("list tickets", err)
	}
	defer rows.Close()
	var list []*entity.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, 0, dbError("scan ticket", err)
		}
		list = append(list, t)
	}
	return list, total, rows.Err()
}

// TicketResponseRepo implementación de TicketResponseRepository.
type TicketResponseRepo struct {
	q Querier
}

// NewTicketResponseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTicketResponseRepository(q Querier) *TicketResponseRepo {
	return &TicketResponseRepo{q: q}
}

// Create persiste una respuesta del ticket.
func (r *TicketResponseRepo) Create(ctx context.Context, tr *entity.TicketResponse) error {
	query := `
		INSERT INTO ticket_responses (id, company_id, ticket_id, author_id, type, message, is_internal, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		tr.ID, tr.CompanyID, tr.TicketID, tr.AuthorID, tr.Type, tr.Message, tr.IsInternal, tr.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return dbError("insert ticket response", err)
	}
	return nil
}

// ListByTicket lista el hilo en orden cronológico; sin includeInternal se omiten las notas internas.
func (r *TicketResponseRepo) ListByTicket(ctx context.Context, companyID, ticketID string, includeInternal bool) ([]*entity.TicketResponse, error) {
	query := `
		SELECT id, company_id, ticket_id, author_id, type, message, is_internal, created_at
		FROM ticket_responses
		WHERE company_id = $1 AND ticket_id = $2 AND ($3 OR NOT is_internal)
		ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, companyID, ticketID, includeInternal)
	if err != nil {
		return nil, dbError("list ticket responses", err)
	}
	defer rows.Close()
	var list []*entity.TicketResponse
	for rows.Next() {
		var tr entity.TicketResponse
		if err := rows.Scan(&tr.ID, &tr.CompanyID, &tr.TicketID, &tr.AuthorID, &tr.Type, &tr.Message,
			&tr.IsInternal, &tr.CreatedAt); err != nil {
			return nil, dbError("scan ticket response", err)
		}
		list = append(list, &tr)
	}
	return list, rows.Err()
}

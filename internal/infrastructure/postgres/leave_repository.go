package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/people360/internal/domain"
	"github.com/jhoicas/people360/internal/domain/entity"
	"github.com/jhoicas/people360/internal/domain/repository"
)

var _ repository.LeaveRepository = (*LeaveRepo)(nil)

const leaveColumns = `id, company_id, employee_id, type, start_date, end_date, days, reason, status,
	reviewed_by, reviewed_at, created_at, updated_at`

// LeaveRepo implementación de LeaveRepository.
type LeaveRepo struct {
	q Querier
}

// NewLeaveRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLeaveRepository(q Querier) *LeaveRepo {
	return &LeaveRepo{q: q}
}

func scanLeave(row pgx.Row) (*entity.LeaveRequest, error) {
	var l entity.LeaveRequest
	err := row.Scan(&l.ID, &l.CompanyID, &l.EmployeeID, &l.Type, &l.StartDate, &l.EndDate, &l.Days, &l.Reason,
		&l.Status, &l.ReviewedBy, &l.ReviewedAt, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create persiste una solicitud de ausencia.
func (r *LeaveRepo) Create(ctx context.Context, l *entity.LeaveRequest) error {
	query := `INSERT INTO leave_requests (` + leaveColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.CompanyID, l.EmployeeID, l.Type, l.StartDate, l.EndDate, l.Days, l.Reason, l.Status,
		l.ReviewedBy, l.ReviewedAt, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return dbError("insert leave", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID.
func (r *LeaveRepo) GetByID(ctx context.Context, companyID, id string) (*entity.LeaveRequest, error) {
	l, err := scanLeave(r.q.QueryRow(ctx, `SELECT `+leaveColumns+` FROM leave_requests WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError("get leave", err)
	}
	return l, nil
}

// Update actualiza estado y revisión.
func (r *LeaveRepo) Update(ctx context.Context, l *entity.LeaveRequest) error {
	query := `
		UPDATE leave_requests SET status = $3, reviewed_by = $4, reviewed_at = $5, updated_at = $6
		WHERE company_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, l.CompanyID, l.ID, l.Status, l.ReviewedBy, l.ReviewedAt, l.UpdatedAt)
	if err != nil {
		return dbError("update leave", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista solicitudes con filtros y paginación.
func (r *LeaveRepo) List(ctx context.Context, companyID string, f repository.LeaveFilter) ([]*entity.LeaveRequest, int, error) {
	w := newWhere(companyID)
	if f.EmployeeID != "" {
		w.add("employee_id = ?", f.EmployeeID)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.Type != "" {
		w.add("type = ?", f.Type)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM leave_requests`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, dbError("count leaves", err)
	}
	limit, args := w.page(f.Page)
	rows, err := r.q.Query(ctx, `SELECT `+leaveColumns+` FROM leave_requests`+w.sql()+
		` ORDER BY start_date DESC, id`+limit, args...)
	if err != nil {
		return nil, 0, dbError("list leaves", err)
	}
	defer rows.Close()
	var list []*entity.LeaveRequest
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, 0, dbError("scan leave", err)
		}
		list = append(list, l)
	}
	return list, total, rows.Err()
}

// HasOverlap indica si el empleado ya tiene una ausencia pendiente o aprobada que se cruza con [start, end].
func (r *LeaveRepo) HasOverlap(ctx context.Context, companyID, employeeID string, start, end time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE company_id = $1 AND employee_id = $2
			  AND status IN ('pending', 'approved')
			  AND start_date <= $4 AND end_date >= $3
		)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, companyID, employeeID, start, end).Scan(&exists); err != nil {
		return false, dbError("leave overlap", err)
	}
	return exists, nil
}

// ApprovedDaysByType suma los días aprobados por tipo en el año indicado.
func (r *LeaveRepo) ApprovedDaysByType(ctx context.Context, companyID, employeeID string, year int) (map[string]int, error) {
	query := `
		SELECT type, COALESCE(SUM(days), 0)
		FROM leave_requests
		WHERE company_id = $1 AND employee_id = $2 AND status = 'approved'
		  AND EXTRACT(YEAR FROM start_date) = $3
		GROUP BY type`
	rows, err := r.q.Query(ctx, query, companyID, employeeID, year)
	if err != nil {
		return nil, dbError("approved leave days", err)
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var t string
		var days int
		if err := rows.Scan(&t, &days); err != nil {
			return nil, dbError("scan leave days", err)
		}
		out[t] = days
	}
	return out, rows.Err()
}

// LockEmployee toma la fila del empleado con FOR UPDATE. Solo tiene efecto dentro de una tx.
func (r *LeaveRepo) LockEmployee(ctx context.Context, companyID, employeeID string) error {
	query := `SELECT id FROM employees WHERE company_id = $1 AND id = $2 FOR UPDATE`
	var id string
	err := r.q.QueryRow(ctx, query, companyID, employeeID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return dbError("lock employee", err)
	}
	return nil
}

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

var _ repository.AttendanceRepository = (*AttendanceRepo)(nil)

const attendanceColumns = `id, company_id, employee_id, date, check_in, check_out, hours_worked, status, created_at, updated_at`

// AttendanceRepo implementación de AttendanceRepository.
type AttendanceRepo struct {
	q Querier
}

// NewAttendanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAttendanceRepository(q Querier) *AttendanceRepo {
	return &AttendanceRepo{q: q}
}

func scanAttendance(row pgx.Row) (*entity.Attendance, error) {
	var a entity.Attendance
	err := row.Scan(&a.ID, &a.CompanyID, &a.EmployeeID, &a.Date, &a.CheckIn, &a.CheckOut, &a.HoursWorked,
		&a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persiste el registro del día; (empleado, fecha) es único.
func (r *AttendanceRepo) Create(ctx context.Context, a *entity.Attendance) error {
	query := `INSERT INTO attendance (` + attendanceColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.CompanyID, a.EmployeeID, a.Date, a.CheckIn, a.CheckOut, a.HoursWorked, a.Status, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return dbError("insert attendance", err)
	}
	return nil
}

// Update actualiza salida, horas y estado.
func (r *AttendanceRepo) Update(ctx context.Context, a *entity.Attendance) error {
	query := `
		UPDATE attendance SET check_in = $3, check_out = $4, hours_worked = $5, status = $6, updated_at = $7
		WHERE company_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, a.CompanyID, a.ID, a.CheckIn, a.CheckOut, a.HoursWorked, a.Status, a.UpdatedAt)
	if err != nil {
		return dbError("update attendance", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByEmployeeAndDate obtiene el registro de un empleado en una fecha.
func (r *AttendanceRepo) GetByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*entity.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE company_id = $1 AND employee_id = $2 AND date = $3`
	a, err := scanAttendance(r.q.QueryRow(ctx, query, companyID, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError("get attendance", err)
	}
	return a, nil
}

// ListByEmployee lista la asistencia del empleado entre start y end (incluidos).
func (r *AttendanceRepo) ListByEmployee(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]*entity.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance
		WHERE company_id = $1 AND employee_id = $2 AND date BETWEEN $3 AND $4 ORDER BY date`
	rows, err := r.q.Query(ctx, query, companyID, employeeID, start, end)
	if err != nil {
		return nil, dbError("list attendance", err)
	}
	defer rows.Close()
	var list []*entity.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, dbError("scan attendance", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

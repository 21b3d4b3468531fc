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

var _ repository.PayrollRepository = (*PayrollRepo)(nil)

const payrollColumns = `id, company_id, employee_id, period_start, period_end, working_days, present_days,
	basic_salary, allowances, overtime_hours, overtime_pay, absence_deduction, gross_pay, tax,
	other_deductions, net_pay, status, processed_at, created_at, updated_at`

// PayrollRepo implementación de PayrollRepository.
type PayrollRepo struct {
	q Querier
}

// NewPayrollRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPayrollRepository(q Querier) *PayrollRepo {
	return &PayrollRepo{q: q}
}

func scanPayroll(row pgx.Row) (*entity.PayrollRecord, error) {
	var p entity.PayrollRecord
	err := row.Scan(&p.ID, &p.CompanyID, &p.EmployeeID, &p.PeriodStart, &p.PeriodEnd, &p.WorkingDays, &p.PresentDays,
		&p.BasicSalary, &p.Allowances, &p.OvertimeHours, &p.OvertimePay, &p.AbsenceDeduction, &p.GrossPay, &p.Tax,
		&p.OtherDeductions, &p.NetPay, &p.Status, &p.ProcessedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un registro de nómina; (empleado, período) es único.
func (r *PayrollRepo) Create(ctx context.Context, p *entity.PayrollRecord) error {
	query := `INSERT INTO payroll_records (` + payrollColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.EmployeeID, p.PeriodStart, p.PeriodEnd, p.WorkingDays, p.PresentDays,
		p.BasicSalary, p.Allowances, p.OvertimeHours, p.OvertimePay, p.AbsenceDeduction, p.GrossPay, p.Tax,
		p.OtherDeductions, p.NetPay, p.Status, p.ProcessedAt, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return dbError("insert payroll", err)
	}
	return nil
}

// GetByID obtiene un registro de nómina por ID.
func (r *PayrollRepo) GetByID(ctx context.Context, companyID, id string) (*entity.PayrollRecord, error) {
	return r.findOne(ctx, `SELECT `+payrollColumns+` FROM payroll_records WHERE company_id = $1 AND id = $2`, companyID, id)
}

// GetByEmployeeAndPeriod obtiene la nómina de un empleado para un período exacto.
func (r *PayrollRepo) GetByEmployeeAndPeriod(ctx context.Context, companyID, employeeID string, start, end time.Time) (*entity.PayrollRecord, error) {
	return r.findOne(ctx, `SELECT `+payrollColumns+` FROM payroll_records
		WHERE company_id = $1 AND employee_id = $2 AND period_start = $3 AND period_end = $4`, companyID, employeeID, start, end)
}

func (r *PayrollRepo) findOne(ctx context.Context, query string, args ...any) (*entity.PayrollRecord, error) {
	p, err := scanPayroll(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError("get payroll", err)
	}
	return p, nil
}

// Update reescribe montos y estado (recalcular un borrador o procesarlo).
func (r *PayrollRepo) Update(ctx context.Context, p *entity.PayrollRecord) error {
	query := `
		UPDATE payroll_records SET working_days = $3, present_days = $4, basic_salary = $5, allowances = $6,
			overtime_hours = $7, overtime_pay = $8, absence_deduction = $9, gross_pay = $10, tax = $11,
			other_deductions = $12, net_pay = $13, status = $14, processed_at = $15, updated_at = $16
		WHERE company_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query,
		p.CompanyID, p.ID, p.WorkingDays, p.PresentDays, p.BasicSalary, p.Allowances,
		p.OvertimeHours, p.OvertimePay, p.AbsenceDeduction, p.GrossPay, p.Tax,
		p.OtherDeductions, p.NetPay, p.Status, p.ProcessedAt, p.UpdatedAt,
	)
	if err != nil {
		return dbError("update payroll", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista registros de nómina con filtros y paginación.
func (r *PayrollRepo) List(ctx context.Context, companyID string, f repository.PayrollFilter) ([]*entity.PayrollRecord, int, error) {
	w := newWhere(companyID)
	if f.EmployeeID != "" {
		w.add("employee_id = ?", f.EmployeeID)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.PeriodStart != nil {
		w.add("period_start = ?", *f.PeriodStart)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM payroll_records`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, dbError("count payroll", err)
	}
	limit, args := w.page(f.Page)
	rows, err := r.q.Query(ctx, `SELECT `+payrollColumns+` FROM payroll_records`+w.sql()+
		` ORDER BY period_start DESC, employee_id`+limit, args...)
	if err != nil {
		return nil, 0, dbError("list payroll", err)
	}
	defer rows.Close()
	var list []*entity.PayrollRecord
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, 0, dbError("scan payroll", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

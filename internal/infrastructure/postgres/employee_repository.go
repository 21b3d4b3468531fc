package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/people360/internal/domain"
	"github.com/jhoicas/people360/internal/domain/entity"
	"github.com/jhoicas/people360/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

const employeeColumns = `id, company_id, code, user_id, first_name, last_name, email, phone, date_of_birth,
	department, position, hire_date, employment_type, status, salary, salary_type, manager_id,
	created_by, created_at, updated_at`

// EmployeeRepo implementación de EmployeeRepository (usable con pool o tx).
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

func scanEmployee(row pgx.Row) (*entity.Employee, error) {
	var e entity.Employee
	err := row.Scan(&e.ID, &e.CompanyID, &e.Code, &e.UserID, &e.FirstName, &e.LastName, &e.Email, &e.Phone,
		&e.DateOfBirth, &e.Department, &e.Position, &e.HireDate, &e.EmploymentType, &e.Status, &e.Salary,
		&e.SalaryType, &e.ManagerID, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepo) scanAll(rows pgx.Rows) ([]*entity.Employee, error) {
	defer rows.Close()
	var list []*entity.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, dbError("scan employee", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Create persiste un nuevo empleado.
func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	query := `INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.CompanyID, e.Code, e.UserID, e.FirstName, e.LastName, e.Email, e.Phone, e.DateOfBirth,
		e.Department, e.Position, e.HireDate, e.EmploymentType, e.Status, e.Salary, e.SalaryType, e.ManagerID,
		e.CreatedBy, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return dbError("insert employee", err)
	}
	return nil
}

// GetByID obtiene un empleado de la empresa por ID.
func (r *EmployeeRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE company_id = $1 AND id = $2`
	e, err := scanEmployee(r.q.QueryRow(ctx, query, companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError("get employee", err)
	}
	return e, nil
}

// GetByEmail obtiene un empleado por email dentro de la empresa.
func (r *EmployeeRepo) GetByEmail(ctx context.Context, companyID, email string) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE company_id = $1 AND lower(email) = lower($2)`
	e, err := scanEmployee(r.q.QueryRow(ctx, query, companyID, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError("get employee by email", err)
	}
	return e, nil
}

// GetByUserID obtiene el empleado vinculado a un usuario.
func (r *EmployeeRepo) GetByUserID(ctx context.Context, companyID, userID string) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE company_id = $1 AND user_id = $2`
	e, err := scanEmployee(r.q.QueryRow(ctx, query, companyID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError("get employee by user", err)
	}
	return e, nil
}

// Update actualiza un empleado.
func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	query := `
		UPDATE employees SET user_id = $3, first_name = $4, last_name = $5, email = $6, phone = $7,
			date_of_birth = $8, department = $9, position = $10, hire_date = $11, employment_type = $12,
			status = $13, salary = $14, salary_type = $15, manager_id = $16, updated_at = $17
		WHERE company_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query,
		e.CompanyID, e.ID, e.UserID, e.FirstName, e.LastName, e.Email, e.Phone,
		e.DateOfBirth, e.Department, e.Position, e.HireDate, e.EmploymentType,
		e.Status, e.Salary, e.SalaryType, e.ManagerID, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return dbError("update employee", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un empleado; falla con ErrConflict si tiene nómina registrada.
func (r *EmployeeRepo) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM employees WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return dbError("delete employee", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista empleados con filtros y paginación; devuelve el total sin paginar.
func (r *EmployeeRepo) List(ctx context.Context, companyID string, f repository.EmployeeFilter) ([]*entity.Employee, int, error) {
	w := newWhere(companyID)
	if f.Department != "" {
		w.add("department = ?", f.Department)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.Query != "" {
		p := likePattern(f.Query)
		w.add("(first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR code ILIKE ?)", p, p, p, p)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM employees`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, dbError("count employees", err)
	}
	limit, args := w.page(f.Page)
	rows, err := r.q.Query(ctx, `SELECT `+employeeColumns+` FROM employees`+w.sql()+
		` ORDER BY last_name, first_name, id`+limit, args...)
	if err != nil {
		return nil, 0, dbError("list employees", err)
	}
	list, err := r.scanAll(rows)
	return list, total, err
}

// ListReports lista los subordinados directos de un manager.
func (r *EmployeeRepo) ListReports(ctx context.Context, companyID, managerID string) ([]*entity.Employee, error) {
	rows, err := r.q.Query(ctx, `SELECT `+employeeColumns+` FROM employees
		WHERE company_id = $1 AND manager_id = $2 ORDER BY last_name, first_name`, companyID, managerID)
	if err != nil {
		return nil, dbError("list reports", err)
	}
	return r.scanAll(rows)
}

// ListActive lista los empleados activos (entrada del cálculo de nómina).
func (r *EmployeeRepo) ListActive(ctx context.Context, companyID string) ([]*entity.Employee, error) {
	rows, err := r.q.Query(ctx, `SELECT `+employeeColumns+` FROM employees
		WHERE company_id = $1 AND status = $2 ORDER BY code`, companyID, entity.EmployeeStatusActive)
	if err != nil {
		return nil, dbError("list active employees", err)
	}
	return r.scanAll(rows)
}

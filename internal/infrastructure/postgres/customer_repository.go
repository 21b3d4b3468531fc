package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/people360/internal/domain"
	"github.com/jhoicas/people360/internal/domain/entity"
	"github.com/jhoicas/people360/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, company_id, code, company_name, first_name, last_name, email, phone, address,
	city, country, industry, status, customer_type, priority, tags, owner_id, created_by, created_at, updated_at`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(&c.ID, &c.CompanyID, &c.Code, &c.CompanyName, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
		&c.Address, &c.City, &c.Country, &c.Industry, &c.Status, &c.CustomerType, &c.Priority, &c.Tags,
		&c.OwnerID, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	if c.Tags == nil {
		c.Tags = []string{}
	}
	query := `INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.CompanyID, c.Code, c.CompanyName, c.FirstName, c.LastName, c.Email, c.Phone, c.Address,
		c.City, c.Country, c.Industry, c.Status, c.CustomerType, c.Priority, c.Tags, c.OwnerID,
		c.CreatedBy, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return dbError("insert customer", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError("get customer", err)
	}
	return c, nil
}

// GetByEmail obtiene un cliente por email dentro de la empresa.
func (r *CustomerRepo) GetByEmail(ctx context.Context, companyID, email string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE company_id = $1 AND lower(email) = lower($2)`, companyID, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError("get customer by email", err)
	}
	return c, nil
}

// Update actualiza un cliente.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	if c.Tags == nil {
		c.Tags = []string{}
	}
	query := `
		UPDATE customers SET company_name = $3, first_name = $4, last_name = $5, email = $6, phone = $7,
			address = $8, city = $9, country = $10, industry = $11, status = $12, customer_type = $13,
			priority = $14, tags = $15, owner_id = $16, updated_at = $17
		WHERE company_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query,
		c.CompanyID, c.ID, c.CompanyName, c.FirstName, c.LastName, c.Email, c.Phone,
		c.Address, c.City, c.Country, c.Industry, c.Status, c.CustomerType,
		c.Priority, c.Tags, c.OwnerID, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return dbError("update customer", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un cliente por ID. Leads y tickets lo protegen con ON DELETE RESTRICT.
func (r *CustomerRepo) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM customers WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrCustomerHasDependents
		}
		return dbError("delete customer", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista clientes de la empresa con filtros y paginación.
func (r *CustomerRepo) List(ctx context.Context, companyID string, f repository.CustomerFilter) ([]*entity.Customer, int, error) {
	w := newWhere(companyID)
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.CustomerType != "" {
		w.add("customer_type = ?", f.CustomerType)
	}
	if f.Query != "" {
		p := likePattern(f.Query)
		w.add("(company_name ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR code ILIKE ?)", p, p, p, p, p)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM customers`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, dbError("count customers", err)
	}
	limit, args := w.page(f.Page)
	rows, err := r.q.Query(ctx, `SELECT `+customerColumns+` FROM customers`+w.sql()+
		` ORDER BY created_at DESC, id`+limit, args...)
	if err != nil {
		return nil, 0, dbError("list customers", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, dbError("scan customer", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

// CountDependents cuenta tickets y leads del cliente.
func (r *CustomerRepo) CountDependents(ctx context.Context, companyID, id string) (int, int, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM tickets WHERE company_id = $1 AND customer_id = $2),
			(SELECT COUNT(*) FROM leads   WHERE company_id = $1 AND customer_id = $2)`
	var tickets, leads int
	if err := r.q.QueryRow(ctx, query, companyID, id).Scan(&tickets, &leads); err != nil {
		return 0, 0, dbError("count customer dependents", err)
	}
	return tickets, leads, nil
}

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

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, company_id, username, email, password_hash, first_name, last_name, phone,
	role, is_active, last_login_at, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.CompanyID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Phone, &u.Role, &u.IsActive, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// userConflict traduce la violación de unicidad al error de dominio del campo.
func userConflict(err error) error {
	if constraintName(err) == "users_username_key" {
		return domain.ErrUsernameAlreadyExists
	}
	return domain.ErrEmailAlreadyExists
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.CompanyID, u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone,
		u.Role, u.IsActive, u.LastLoginAt, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return userConflict(err)
		}
		return dbError("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario de la empresa por ID.
func (r *UserRepo) GetByID(ctx context.Context, companyID, id string) (*entity.User, error) {
	return r.findOne(ctx, "get user by id",
		`SELECT `+userColumns+` FROM users WHERE company_id = $1 AND id = $2`, companyID, id)
}

// FindByID obtiene un usuario por ID sin filtrar por empresa (uso del middleware y /me).
func (r *UserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, "find user by id", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// FindByEmail obtiene un usuario por email (cualquier company).
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "find user by email",
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1) LIMIT 1`, email)
}

// FindByUsername obtiene un usuario por username.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, "find user by username",
		`SELECT `+userColumns+` FROM users WHERE lower(username) = lower($1) LIMIT 1`, username)
}

func (r *UserRepo) findOne(ctx context.Context, op, query string, args ...any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError(op, err)
	}
	return u, nil
}

// Update actualiza un usuario.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users SET username = $3, email = $4, password_hash = $5, first_name = $6, last_name = $7,
			phone = $8, role = $9, is_active = $10, updated_at = $11
		WHERE company_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query,
		u.CompanyID, u.ID, u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName,
		u.Phone, u.Role, u.IsActive, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return userConflict(err)
		}
		return dbError("update user", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdateLastLogin registra la fecha del último login.
func (r *UserRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE users SET last_login_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return dbError("update last login", err)
	}
	return nil
}

// List lista usuarios de la empresa con filtros y paginación; devuelve también el total.
func (r *UserRepo) List(ctx context.Context, companyID string, f repository.UserFilter) ([]*entity.User, int, error) {
	w := newWhere(companyID)
	if f.Role != "" {
		w.add("role = ?", f.Role)
	}
	if f.IsActive != nil {
		w.add("is_active = ?", *f.IsActive)
	}
	if f.Query != "" {
		p := likePattern(f.Query)
		w.add("(username ILIKE ? OR email ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?)", p, p, p, p)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM users`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, dbError("count users", err)
	}
	limit, args := w.page(f.Page)
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users`+w.sql()+` ORDER BY created_at DESC, id`+limit, args...)
	if err != nil {
		return nil, 0, dbError("list users", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, dbError("scan user", err)
		}
		list = append(list, u)
	}
	return list, total, rows.Err()
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return dbError("delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

package repository

import (
	"context"
	"time"

	"github.com/jhoicas/people360/internal/domain/entity"
)

// UserFilter filtros para listar usuarios.
type UserFilter struct {
	Page
	Role     string
	IsActive *bool
	Query    string
}

// UserRepository define el puerto de persistencia para User (DIP).
// Email y username son únicos en todo el sistema; el login no necesita company.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, companyID, id string) (*entity.User, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	List(ctx context.Context, companyID string, f UserFilter) ([]*entity.User, int, error)
	Delete(ctx context.Context, companyID, id string) error
}

package repository

import (
	"context"

	"github.com/jhoicas/people360/internal/domain/entity"
)

// CustomerFilter filtros para listar clientes.
type CustomerFilter struct {
	Page
	Status       string
	CustomerType string
	Query        string
}

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, c *entity.Customer) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Customer, error)
	GetByEmail(ctx context.Context, companyID, email string) (*entity.Customer, error)
	Update(ctx context.Context, c *entity.Customer) error
	Delete(ctx context.Context, companyID, id string) error
	List(ctx context.Context, companyID string, f CustomerFilter) ([]*entity.Customer, int, error)
	// CountDependents cuenta tickets y leads que referencian al cliente.
	CountDependents(ctx context.Context, companyID, id string) (tickets, leads int, err error)
}

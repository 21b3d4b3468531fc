package hr

import (
	"context"

	"github.com/jhoicas/people360/internal/domain"
	"github.com/jhoicas/people360/internal/domain/entity"
	"github.com/jhoicas/people360/internal/domain/repository"
)

// resolveEmployee devuelve el empleado indicado o, si employeeID es "", el
// vinculado al usuario autenticado: primero por user_id y, si no hay, por email.
func resolveEmployee(ctx context.Context, repos repository.Repos, companyID, actorID, employeeID string) (*entity.Employee, error) {
	if employeeID != "" {
		e, err := repos.Employees.GetByID(ctx, companyID, employeeID)
		if err != nil {
			return nil, err
		}
		if e == nil {
			return nil, domain.ErrNotFound
		}
		return e, nil
	}
	e, err := repos.Employees.GetByUserID(ctx, companyID, actorID)
	if err != nil {
		return nil, err
	}
	if e != nil {
		return e, nil
	}
	// fichas sin user_id: se emparejan por el email de la cuenta
	u, err := repos.Users.GetByID(ctx, companyID, actorID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	e, err = repos.Employees.GetByEmail(ctx, companyID, u.Email)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound // el usuario no tiene ficha de empleado
	}
	return e, nil
}

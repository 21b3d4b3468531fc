package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/people360/internal/application/auth"
	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/domain"
	"github.com/jhoicas/people360/internal/domain/repository"
	"github.com/jhoicas/people360/pkg/labels"
	"github.com/jhoicas/people360/pkg/validator"
)

// UserUseCase administración de usuarios de la empresa (solo admin).
type UserUseCase struct {
	repo repository.UserRepository
	now  func() time.Time
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo, now: time.Now}
}

// List lista usuarios con filtros de rol, estado y texto.
func (uc *UserUseCase) List(ctx context.Context, companyID string, q dto.UserListQuery) (dto.Paginated[dto.UserResponse], error) {
	f := repository.UserFilter{
		Page:  repository.Page{Limit: q.Limit(), Offset: q.Offset()},
		Role:  q.Role,
		Query: strings.TrimSpace(q.Q),
	}
	if q.IsActive != "" {
		active, err := strconv.ParseBool(q.IsActive)
		if err != nil {
			return dto.Paginated[dto.UserResponse]{}, domain.ErrInvalidInput
		}
		f.IsActive = &active
	}
	list, total, err := uc.repo.List(ctx, companyID, f)
	if err != nil {
		return dto.Paginated[dto.UserResponse]{}, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *auth.ToUserResponse(u))
	}
	return dto.NewPaginated(items, total, q.PageQuery), nil
}

// GetByID obtiene un usuario de la empresa.
func (uc *UserUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return auth.ToUserResponse(u), nil
}

// Update cambia datos, rol o estado. Un admin no puede quitarse el rol ni desactivarse a sí mismo.
func (uc *UserUseCase) Update(ctx context.Context, companyID, actorID, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	u, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if id == actorID {
		if (in.Role != nil && *in.Role != u.Role) || (in.IsActive != nil && !*in.IsActive) {
			return nil, domain.ErrForbidden
		}
	}
	if in.FirstName != nil {
		u.FirstName = labels.Name(*in.FirstName)
	}
	if in.LastName != nil {
		u.LastName = labels.Name(*in.LastName)
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Role != nil {
		u.Role = *in.Role
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	u.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	log.Info().Str("user_id", u.ID).Str("role", u.Role).Bool("active", u.IsActive).Msg("usuario actualizado")
	return auth.ToUserResponse(u), nil
}

// Delete elimina un usuario distinto del que hace la petición.
func (uc *UserUseCase) Delete(ctx context.Context, companyID, actorID, id string) error {
	if id == actorID {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(ctx, companyID, id)
}

// Package crm casos de uso del módulo comercial: clientes, oportunidades y tickets.
package crm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/people360/internal/application/audit"
	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/application/ports"
	"github.com/jhoicas/people360/internal/domain"
	"github.com/jhoicas/people360/internal/domain/entity"
	"github.com/jhoicas/people360/internal/domain/repository"
	"github.com/jhoicas/people360/pkg/csvexport"
	"github.com/jhoicas/people360/pkg/labels"
	"github.com/jhoicas/people360/pkg/sanitize"
	"github.com/jhoicas/people360/pkg/validator"
)

// CustomerUseCase casos de uso para clientes.
type CustomerUseCase struct {
	repo     repository.CustomerRepository
	users    repository.UserRepository
	tx       ports.TxRunner
	recorder *audit.Recorder
	now      func() time.Time
}

// exportPageSize tamaño de página al recorrer la tabla para exportar.
const exportPageSize = 500

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, users repository.UserRepository, tx ports.TxRunner, recorder *audit.Recorder) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, users: users, tx: tx, recorder: recorder, now: time.Now}
}

// Create crea un nuevo cliente. El email es único por empresa.
func (uc *CustomerUseCase) Create(ctx context.Context, companyID, actorID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	in.Normalize()
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.repo.GetByEmail(ctx, companyID, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := checkUser(ctx, uc.users, companyID, "owner_id", in.OwnerID); err != nil {
		return nil, err
	}
	now := uc.now()
	c := &entity.Customer{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Code:         entity.NewCode(entity.PrefixCustomer),
		CompanyName:  sanitize.Text(in.CompanyName),
		FirstName:    labels.Name(in.FirstName),
		LastName:     labels.Name(in.LastName),
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		Address:      sanitize.Text(in.Address),
		City:         strings.TrimSpace(in.City),
		Country:      strings.TrimSpace(in.Country),
		Industry:     strings.TrimSpace(in.Industry),
		Status:       orDefault(in.Status, entity.CustomerStatusActive),
		CustomerType: orDefault(in.CustomerType, entity.CustomerTypeProspect),
		Priority:     orDefault(in.Priority, entity.PriorityMedium),
		Tags:         normalizeTags(in.Tags),
		CreatedBy:    actorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.OwnerID != "" {
		c.OwnerID = &in.OwnerID
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	uc.recorder.Touch(ctx, companyID)
	log.Info().Str("customer_id", c.ID).Str("code", c.Code).Msg("cliente creado")
	return ToCustomerResponse(c), nil
}

// GetByID obtiene un cliente.
func (uc *CustomerUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.CustomerResponse, error) {
	c, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponse(c), nil
}

// List lista clientes de la empresa.
func (uc *CustomerUseCase) List(ctx context.Context, companyID string, q dto.CustomerListQuery) (dto.Paginated[dto.CustomerResponse], error) {
	list, total, err := uc.repo.List(ctx, companyID, repository.CustomerFilter{
		Page:         repository.Page{Limit: q.Limit(), Offset: q.Offset()},
		Status:       q.Status,
		CustomerType: q.CustomerType,
		Query:        strings.TrimSpace(q.Q),
	})
	if err != nil {
		return dto.Paginated[dto.CustomerResponse]{}, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *ToCustomerResponse(c))
	}
	return dto.NewPaginated(out, total, q.PageQuery), nil
}

// Update aplica los campos enviados.
func (uc *CustomerUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	in.Normalize()
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	c, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.CompanyName != nil {
		c.CompanyName = sanitize.Text(*in.CompanyName)
	}
	if in.FirstName != nil {
		c.FirstName = labels.Name(*in.FirstName)
	}
	if in.LastName != nil {
		c.LastName = labels.Name(*in.LastName)
	}
	if c.DisplayName() == "" {
		return nil, domain.ErrInvalidInput // sin razón social ni nombre
	}
	if in.Email != nil {
		c.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	setIf(&c.Phone, in.Phone)
	if in.Address != nil {
		c.Address = sanitize.Text(*in.Address)
	}
	setIf(&c.City, in.City)
	setIf(&c.Country, in.Country)
	setIf(&c.Industry, in.Industry)
	setIf(&c.Status, in.Status)
	setIf(&c.CustomerType, in.CustomerType)
	setIf(&c.Priority, in.Priority)
	if in.Tags != nil {
		c.Tags = normalizeTags(*in.Tags)
	}
	if in.OwnerID != nil {
		if err := checkUser(ctx, uc.users, companyID, "owner_id", *in.OwnerID); err != nil {
			return nil, err
		}
		c.OwnerID = in.OwnerID
	}
	c.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	uc.recorder.Touch(ctx, companyID)
	return ToCustomerResponse(c), nil
}

// Delete elimina un cliente sin tickets ni oportunidades. Con dependientes
// devuelve ErrCustomerHasDependents y no borra nada.
func (uc *CustomerUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.get(ctx, companyID, id); err != nil {
		return err
	}
	tickets, leads, err := uc.repo.CountDependents(ctx, companyID, id)
	if err != nil {
		return err
	}
	if tickets > 0 || leads > 0 {
		log.Info().Str("customer_id", id).Int("tickets", tickets).Int("leads", leads).Msg("borrado de cliente rechazado")
		return domain.ErrCustomerHasDependents
	}
	if err := uc.repo.Delete(ctx, companyID, id); err != nil {
		return err
	}
	uc.recorder.Touch(ctx, companyID)
	return nil
}

// Bulk aplica la acción a todos los clientes indicados o a ninguno. Un id ajeno devuelve
// ErrInvalidInput y un cliente con tickets u oportunidades impide el borrado de todo el lote.
func (uc *CustomerUseCase) Bulk(ctx context.Context, companyID string, in dto.BulkCustomerRequest) (*dto.BulkResponse, error) {
	in.Normalize()
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	switch {
	case in.Action == dto.BulkUpdateType && in.CustomerType == "":
		return nil, fmt.Errorf("%w: customer_type es obligatorio para update_type", domain.ErrInvalidInput)
	case in.Action == dto.BulkAssign && in.OwnerID == "":
		return nil, fmt.Errorf("%w: owner_id es obligatorio para assign", domain.ErrInvalidInput)
	}
	ids := dto.UniqueIDs(in.CustomerIDs)
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		if in.Action == dto.BulkAssign {
			if err := checkUser(ctx, repos.Users, companyID, "owner_id", in.OwnerID); err != nil {
				return err
			}
		}
		list := make([]*entity.Customer, 0, len(ids))
		for _, id := range ids {
			c, err := repos.Customers.GetByID(ctx, companyID, id)
			if err != nil {
				return err
			}
			if c == nil {
				return fmt.Errorf("%w: cliente %s no encontrado", domain.ErrInvalidInput, id)
			}
			list = append(list, c)
		}
		if in.Action == dto.BulkDelete {
			for _, c := range list {
				tickets, leads, err := repos.Customers.CountDependents(ctx, companyID, c.ID)
				if err != nil {
					return err
				}
				if tickets > 0 || leads > 0 {
					return fmt.Errorf("%w: %s", domain.ErrCustomerHasDependents, c.Code)
				}
			}
			for _, c := range list {
				if err := repos.Customers.Delete(ctx, companyID, c.ID); err != nil {
					return err
				}
			}
			return nil
		}
		now := uc.now()
		for _, c := range list {
			if in.Action == dto.BulkUpdateType {
				c.CustomerType = in.CustomerType
			} else {
				owner := in.OwnerID
				c.OwnerID = &owner
			}
			c.UpdatedAt = now
			if err := repos.Customers.Update(ctx, c); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.recorder.Touch(ctx, companyID)
	log.Info().Str("action", in.Action).Int("affected", len(ids)).Msg("operación masiva de clientes")
	return &dto.BulkResponse{Action: in.Action, Affected: len(ids)}, nil
}

// ExportCSV todos los clientes de la empresa en CSV, con el nombre de archivo sugerido.
func (uc *CustomerUseCase) ExportCSV(ctx context.Context, companyID string) ([]byte, string, error) {
	var rows [][]string
	for offset := 0; ; offset += exportPageSize {
		list, total, err := uc.repo.List(ctx, companyID, repository.CustomerFilter{
			Page: repository.Page{Limit: exportPageSize, Offset: offset},
		})
		if err != nil {
			return nil, "", err
		}
		for _, c := range list {
			rows = append(rows, []string{
				c.Code, c.CompanyName, c.FirstName, c.LastName, c.Email,
				c.Phone, c.Industry, c.CustomerType, c.Priority, c.Status,
				c.CreatedAt.UTC().Format(time.RFC3339),
			})
		}
		if len(list) == 0 || offset+len(list) >= total {
			break
		}
	}
	out, err := csvexport.Write([]string{
		"Customer ID", "Company Name", "First Name", "Last Name", "Email",
		"Phone", "Industry", "Customer Type", "Priority", "Status", "Created At",
	}, rows)
	if err != nil {
		return nil, "", err
	}
	return out, "customers.csv", nil
}

func (uc *CustomerUseCase) get(ctx context.Context, companyID, id string) (*entity.Customer, error) {
	c, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// ToCustomerResponse mapea la entidad a DTO.
func ToCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}
	return &dto.CustomerResponse{
		ID:           c.ID,
		Code:         c.Code,
		CompanyName:  c.CompanyName,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		DisplayName:  c.DisplayName(),
		Email:        c.Email,
		Phone:        c.Phone,
		Address:      c.Address,
		City:         c.City,
		Country:      c.Country,
		Industry:     c.Industry,
		Status:       c.Status,
		CustomerType: c.CustomerType,
		Priority:     c.Priority,
		Tags:         tags,
		OwnerID:      c.OwnerID,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// checkUser el usuario referenciado existe en la empresa. Un id vacío no se valida.
func checkUser(ctx context.Context, users repository.UserRepository, companyID, field, userID string) error {
	if userID == "" {
		return nil
	}
	u, err := users.GetByID(ctx, companyID, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("%w: %s no pertenece a la empresa", domain.ErrInvalidInput, field)
	}
	return nil
}

// normalizeTags minúsculas, sin vacíos ni repetidos, en el orden recibido.
func normalizeTags(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]bool{}
	for _, t := range in {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

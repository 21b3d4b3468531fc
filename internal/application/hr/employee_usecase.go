// Package hr casos de uso del módulo de recursos humanos: empleados, vacantes,
// postulaciones, ausencias y asistencia.
package hr

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
	"github.com/jhoicas/people360/pkg/validator"
)

// maxManagerDepth corta la búsqueda de ciclos en cadenas de mando corruptas.
const maxManagerDepth = 64

// exportPageSize tamaño de página al recorrer la tabla para exportar.
const exportPageSize = 500

// EmployeeUseCase alta, consulta y mantenimiento de empleados.
type EmployeeUseCase struct {
	repo     repository.EmployeeRepository
	users    repository.UserRepository
	tx       ports.TxRunner
	recorder *audit.Recorder
	now      func() time.Time
}

// NewEmployeeUseCase construye el caso de uso. tx se usa en las operaciones masivas.
func NewEmployeeUseCase(repo repository.EmployeeRepository, users repository.UserRepository, tx ports.TxRunner, recorder *audit.Recorder) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo, users: users, tx: tx, recorder: recorder, now: time.Now}
}

// Create registra un empleado. El manager, si se indica, debe existir en la misma empresa.
func (uc *EmployeeUseCase) Create(ctx context.Context, companyID, actorID string, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	in.Normalize()
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	now := uc.now()
	hire := now.UTC().Truncate(24 * time.Hour)
	if in.HireDate != "" {
		d, err := dto.ParseDate(in.HireDate)
		if err != nil {
			return nil, err
		}
		hire = d
	}
	dob, err := dto.ParseOptionalDate(in.DateOfBirth)
	if err != nil {
		return nil, err
	}
	if !dto.AmountInRange(in.Salary) {
		return nil, fmt.Errorf("%w: salary fuera de rango", domain.ErrInvalidInput)
	}

	e := &entity.Employee{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		Code:           entity.NewCode(entity.PrefixEmployee),
		FirstName:      labels.Name(in.FirstName),
		LastName:       labels.Name(in.LastName),
		Email:          strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:          strings.TrimSpace(in.Phone),
		DateOfBirth:    dob,
		Department:     strings.TrimSpace(in.Department),
		Position:       strings.TrimSpace(in.Position),
		HireDate:       hire,
		EmploymentType: orDefault(in.EmploymentType, entity.EmploymentFullTime),
		Status:         entity.EmployeeStatusActive,
		Salary:         in.Salary,
		SalaryType:     orDefault(in.SalaryType, entity.SalaryMonthly),
		CreatedBy:      actorID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if in.UserID != "" {
		if err := uc.checkUser(ctx, companyID, in.UserID); err != nil {
			return nil, err
		}
		e.UserID = &in.UserID
	}
	if in.ManagerID != "" {
		if err := uc.checkManager(ctx, companyID, e.ID, in.ManagerID); err != nil {
			return nil, err
		}
		e.ManagerID = &in.ManagerID
	}
	existing, err := uc.repo.GetByEmail(ctx, companyID, e.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	uc.recorder.Touch(ctx, companyID)
	log.Info().Str("employee_id", e.ID).Str("code", e.Code).Msg("empleado creado")
	return ToEmployeeResponse(e), nil
}

// GetByID obtiene un empleado de la empresa.
func (uc *EmployeeUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.EmployeeResponse, error) {
	e, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return ToEmployeeResponse(e), nil
}

// List lista empleados con filtros y paginación.
func (uc *EmployeeUseCase) List(ctx context.Context, companyID string, q dto.EmployeeListQuery) (dto.Paginated[dto.EmployeeResponse], error) {
	list, total, err := uc.repo.List(ctx, companyID, repository.EmployeeFilter{
		Page:       repository.Page{Limit: q.Limit(), Offset: q.Offset()},
		Department: strings.TrimSpace(q.Department),
		Status:     q.Status,
		Query:      strings.TrimSpace(q.Q),
	})
	if err != nil {
		return dto.Paginated[dto.EmployeeResponse]{}, err
	}
	return dto.NewPaginated(toEmployeeResponses(list), total, q.PageQuery), nil
}

// Update aplica los campos informados. manager_id "" desasigna el manager.
func (uc *EmployeeUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	in.Normalize()
	clearManager := in.ManagerID != nil && *in.ManagerID == ""
	if clearManager {
		in.ManagerID = nil
	}
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	e, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.FirstName != nil {
		e.FirstName = labels.Name(*in.FirstName)
	}
	if in.LastName != nil {
		e.LastName = labels.Name(*in.LastName)
	}
	if in.Email != nil {
		e.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Phone != nil {
		e.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Department != nil {
		e.Department = strings.TrimSpace(*in.Department)
	}
	if in.Position != nil {
		e.Position = strings.TrimSpace(*in.Position)
	}
	if in.EmploymentType != nil {
		e.EmploymentType = *in.EmploymentType
	}
	if in.Status != nil {
		e.Status = *in.Status
	}
	if in.Salary != nil {
		if !dto.AmountInRange(*in.Salary) {
			return nil, fmt.Errorf("%w: salary fuera de rango", domain.ErrInvalidInput)
		}
		e.Salary = *in.Salary
	}
	if in.SalaryType != nil {
		e.SalaryType = *in.SalaryType
	}
	switch {
	case clearManager:
		e.ManagerID = nil
	case in.ManagerID != nil:
		if err := uc.checkManager(ctx, companyID, e.ID, *in.ManagerID); err != nil {
			return nil, err
		}
		e.ManagerID = in.ManagerID
	}
	e.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	uc.recorder.Touch(ctx, companyID)
	return ToEmployeeResponse(e), nil
}

// Delete elimina el empleado. Con nómina registrada devuelve ErrConflict; sus reportes quedan sin manager.
func (uc *EmployeeUseCase) Delete(ctx context.Context, companyID, id string) error {
	if err := uc.repo.Delete(ctx, companyID, id); err != nil {
		return err
	}
	uc.recorder.Touch(ctx, companyID)
	log.Info().Str("employee_id", id).Msg("empleado eliminado")
	return nil
}

// Bulk aplica la acción a todos los empleados indicados o a ninguno. Un id que no
// pertenece a la empresa devuelve ErrInvalidInput; un empleado con nómina impide el borrado.
func (uc *EmployeeUseCase) Bulk(ctx context.Context, companyID string, in dto.BulkEmployeeRequest) (*dto.BulkResponse, error) {
	in.Normalize()
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	switch {
	case in.Action == dto.BulkUpdateStatus && in.Status == "":
		return nil, fmt.Errorf("%w: status es obligatorio para update_status", domain.ErrInvalidInput)
	case in.Action == dto.BulkUpdateDepartment && in.Department == "":
		return nil, fmt.Errorf("%w: department es obligatorio para update_department", domain.ErrInvalidInput)
	}
	ids := dto.UniqueIDs(in.EmployeeIDs)
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		list := make([]*entity.Employee, 0, len(ids))
		for _, id := range ids {
			e, err := repos.Employees.GetByID(ctx, companyID, id)
			if err != nil {
				return err
			}
			if e == nil {
				return fmt.Errorf("%w: empleado %s no encontrado", domain.ErrInvalidInput, id)
			}
			list = append(list, e)
		}
		if in.Action == dto.BulkDelete {
			for _, e := range list {
				_, n, err := repos.Payroll.List(ctx, companyID, repository.PayrollFilter{Page: repository.Page{Limit: 1}, EmployeeID: e.ID})
				if err != nil {
					return err
				}
				if n > 0 {
					return fmt.Errorf("%w: %s tiene nómina registrada", domain.ErrConflict, e.Code)
				}
			}
			for _, e := range list {
				if err := repos.Employees.Delete(ctx, companyID, e.ID); err != nil {
					return err
				}
			}
			return nil
		}
		now := uc.now()
		for _, e := range list {
			if in.Action == dto.BulkUpdateStatus {
				e.Status = in.Status
			} else {
				e.Department = in.Department
			}
			e.UpdatedAt = now
			if err := repos.Employees.Update(ctx, e); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.recorder.Touch(ctx, companyID)
	log.Info().Str("action", in.Action).Int("affected", len(ids)).Msg("operación masiva de empleados")
	return &dto.BulkResponse{Action: in.Action, Affected: len(ids)}, nil
}

// ExportCSV todos los empleados de la empresa en CSV, con el nombre de archivo sugerido.
func (uc *EmployeeUseCase) ExportCSV(ctx context.Context, companyID string) ([]byte, string, error) {
	var rows [][]string
	for offset := 0; ; offset += exportPageSize {
		list, total, err := uc.repo.List(ctx, companyID, repository.EmployeeFilter{
			Page: repository.Page{Limit: exportPageSize, Offset: offset},
		})
		if err != nil {
			return nil, "", err
		}
		for _, e := range list {
			rows = append(rows, []string{
				e.Code, e.FirstName, e.LastName, e.Email, e.Phone,
				e.Department, e.Position, dto.FormatDate(e.HireDate), e.EmploymentType,
				e.Salary.StringFixed(2), e.Status, e.CreatedAt.UTC().Format(time.RFC3339),
			})
		}
		if len(list) == 0 || offset+len(list) >= total {
			break
		}
	}
	out, err := csvexport.Write([]string{
		"Employee ID", "First Name", "Last Name", "Email", "Phone",
		"Department", "Position", "Hire Date", "Employment Type",
		"Salary", "Status", "Created At",
	}, rows)
	if err != nil {
		return nil, "", err
	}
	return out, "employees.csv", nil
}

// Reports reportes directos de un empleado.
func (uc *EmployeeUseCase) Reports(ctx context.Context, companyID, id string) ([]dto.EmployeeResponse, error) {
	if _, err := uc.get(ctx, companyID, id); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListReports(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toEmployeeResponses(list), nil
}

func (uc *EmployeeUseCase) get(ctx context.Context, companyID, id string) (*entity.Employee, error) {
	e, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (uc *EmployeeUseCase) checkUser(ctx context.Context, companyID, userID string) error {
	u, err := uc.users.GetByID(ctx, companyID, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("%w: user_id no pertenece a la empresa", domain.ErrInvalidInput)
	}
	return nil
}

// checkManager el manager existe en la empresa y no es el propio empleado ni uno de sus subordinados.
func (uc *EmployeeUseCase) checkManager(ctx context.Context, companyID, employeeID, managerID string) error {
	if managerID == employeeID {
		return fmt.Errorf("%w: un empleado no puede ser su propio manager", domain.ErrInvalidInput)
	}
	current := managerID
	for depth := 0; depth < maxManagerDepth; depth++ {
		m, err := uc.repo.GetByID(ctx, companyID, current)
		if err != nil {
			return err
		}
		if m == nil {
			if current == managerID {
				return fmt.Errorf("%w: manager_id no existe", domain.ErrInvalidInput)
			}
			return nil
		}
		if m.ManagerID == nil {
			return nil
		}
		if *m.ManagerID == employeeID {
			return fmt.Errorf("%w: la asignación crea un ciclo de mando", domain.ErrInvalidInput)
		}
		current = *m.ManagerID
	}
	return nil
}

// ToEmployeeResponse mapea la entidad a DTO.
func ToEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:             e.ID,
		Code:           e.Code,
		UserID:         e.UserID,
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		FullName:       e.FullName(),
		Email:          e.Email,
		Phone:          e.Phone,
		DateOfBirth:    dto.FormatDatePtr(e.DateOfBirth),
		Department:     e.Department,
		Position:       e.Position,
		HireDate:       dto.FormatDate(e.HireDate),
		EmploymentType: e.EmploymentType,
		Status:         e.Status,
		Salary:         e.Salary,
		SalaryType:     e.SalaryType,
		ManagerID:      e.ManagerID,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func toEmployeeResponses(list []*entity.Employee) []dto.EmployeeResponse {
	out := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *ToEmployeeResponse(e))
	}
	return out
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

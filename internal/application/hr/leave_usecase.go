package hr

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/people360/internal/application/audit"
	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/application/ports"
	"github.com/jhoicas/people360/internal/domain"
	"github.com/jhoicas/people360/internal/domain/entity"
	"github.com/jhoicas/people360/internal/domain/repository"
	"github.com/jhoicas/people360/internal/domain/workflow"
	"github.com/jhoicas/people360/pkg/sanitize"
	"github.com/jhoicas/people360/pkg/validator"
)

// LeaveAllowances días anuales por tipo. unpaid no tiene tope.
var LeaveAllowances = map[string]int{
	entity.LeaveVacation:    15,
	entity.LeaveSick:        10,
	entity.LeavePersonal:    5,
	entity.LeaveMaternity:   90,
	entity.LeavePaternity:   14,
	entity.LeaveBereavement: 5,
}

var leaveTypes = []string{
	entity.LeaveVacation, entity.LeaveSick, entity.LeavePersonal, entity.LeaveMaternity,
	entity.LeavePaternity, entity.LeaveBereavement, entity.LeaveUnpaid,
}

// LeaveUseCase solicitudes de ausencia y su aprobación.
type LeaveUseCase struct {
	repos    repository.Repos
	tx       ports.TxRunner
	recorder *audit.Recorder
	notifier ports.Notifier
	now      func() time.Time
}

// NewLeaveUseCase notifier puede ser nil.
func NewLeaveUseCase(repos repository.Repos, tx ports.TxRunner, recorder *audit.Recorder, notifier ports.Notifier) *LeaveUseCase {
	return &LeaveUseCase{repos: repos, tx: tx, recorder: recorder, notifier: notifier, now: time.Now}
}

// Create registra la solicitud en pending. Rechaza rangos invertidos, solapes con
// otra solicitud pendiente o aprobada y pedidos que superan el saldo del año.
func (uc *LeaveUseCase) Create(ctx context.Context, companyID, actorID string, in dto.CreateLeaveRequest) (*dto.LeaveResponse, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	start, err := dto.ParseDate(in.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := dto.ParseDate(in.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_date anterior a start_date", domain.ErrInvalidInput)
	}
	if start.Year() != end.Year() {
		return nil, fmt.Errorf("%w: la ausencia no puede cruzar de año", domain.ErrInvalidInput)
	}
	emp, err := resolveEmployee(ctx, uc.repos, companyID, actorID, in.EmployeeID)
	if err != nil {
		return nil, err
	}
	overlap, err := uc.repos.Leaves.HasOverlap(ctx, companyID, emp.ID, start, end)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, fmt.Errorf("%w: ya existe una ausencia en ese rango", domain.ErrConflict)
	}
	days := entity.LeaveDays(start, end)
	if err := checkAllowance(ctx, uc.repos.Leaves, companyID, emp.ID, in.Type, start.Year(), days); err != nil {
		return nil, err
	}

	now := uc.now()
	l := &entity.LeaveRequest{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		EmployeeID: emp.ID,
		Type:       in.Type,
		StartDate:  start,
		EndDate:    end,
		Days:       days,
		Reason:     sanitize.Text(in.Reason),
		Status:     workflow.LeaveStatus.Initial(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repos.Leaves.Create(ctx, l); err != nil {
		return nil, err
	}
	uc.recorder.Touch(ctx, companyID)
	return ToLeaveResponse(l), nil
}

// List lista solicitudes con filtros.
func (uc *LeaveUseCase) List(ctx context.Context, companyID string, q dto.LeaveListQuery) (dto.Paginated[dto.LeaveResponse], error) {
	list, total, err := uc.repos.Leaves.List(ctx, companyID, repository.LeaveFilter{
		Page:       repository.Page{Limit: q.Limit(), Offset: q.Offset()},
		EmployeeID: q.EmployeeID,
		Status:     q.Status,
		Type:       q.Type,
	})
	if err != nil {
		return dto.Paginated[dto.LeaveResponse]{}, err
	}
	items := make([]dto.LeaveResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *ToLeaveResponse(l))
	}
	return dto.NewPaginated(items, total, q.PageQuery), nil
}

// Balance saldo del año en curso por tipo de ausencia.
func (uc *LeaveUseCase) Balance(ctx context.Context, companyID, employeeID string) (*dto.LeaveBalanceResponse, error) {
	emp, err := uc.repos.Employees.GetByID(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, domain.ErrNotFound
	}
	year := uc.now().Year()
	used, err := uc.repos.Leaves.ApprovedDaysByType(ctx, companyID, emp.ID, year)
	if err != nil {
		return nil, err
	}
	out := &dto.LeaveBalanceResponse{EmployeeID: emp.ID, Year: year}
	for _, t := range leaveTypes {
		item := dto.LeaveBalanceItem{Type: t, Allowance: LeaveAllowances[t], Used: used[t]}
		if item.Allowance > item.Used {
			item.Remaining = item.Allowance - item.Used
		}
		out.Balances = append(out.Balances, item)
	}
	return out, nil
}

// Approve aprueba una solicitud pendiente y avisa al empleado.
func (uc *LeaveUseCase) Approve(ctx context.Context, companyID, actorID, id string, in dto.LeaveDecisionRequest) (*dto.LeaveResponse, error) {
	return uc.decide(ctx, companyID, actorID, id, entity.LeaveApproved, in)
}

// Reject rechaza una solicitud pendiente y avisa al empleado.
func (uc *LeaveUseCase) Reject(ctx context.Context, companyID, actorID, id string, in dto.LeaveDecisionRequest) (*dto.LeaveResponse, error) {
	return uc.decide(ctx, companyID, actorID, id, entity.LeaveRejected, in)
}

// Cancel retira una solicitud pendiente (sin aviso).
func (uc *LeaveUseCase) Cancel(ctx context.Context, companyID, actorID, id string, in dto.LeaveDecisionRequest) (*dto.LeaveResponse, error) {
	return uc.decide(ctx, companyID, actorID, id, entity.LeaveCancelled, in)
}

func (uc *LeaveUseCase) decide(ctx context.Context, companyID, actorID, id, to string, in dto.LeaveDecisionRequest) (*dto.LeaveResponse, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	var (
		out *entity.LeaveRequest
		emp *entity.Employee
	)
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		l, err := repos.Leaves.GetByID(ctx, companyID, id)
		if err != nil {
			return err
		}
		if l == nil {
			return domain.ErrNotFound
		}
		if err := workflow.LeaveStatus.Validate(l.Status, to); err != nil {
			return err
		}
		if to == entity.LeaveApproved {
			// otra solicitud pudo aprobarse después de crear esta
			if err := repos.Leaves.LockEmployee(ctx, companyID, l.EmployeeID); err != nil {
				return err
			}
			if err := checkAllowance(ctx, repos.Leaves, companyID, l.EmployeeID, l.Type, l.StartDate.Year(), l.Days); err != nil {
				return err
			}
		}
		now := uc.now()
		from := l.Status
		l.Status = to
		l.UpdatedAt = now
		if to != entity.LeaveCancelled {
			l.ReviewedBy = &actorID
			l.ReviewedAt = &now
		}
		if err := repos.Leaves.Update(ctx, l); err != nil {
			return err
		}
		if _, err := uc.recorder.Transition(ctx, repos.Transitions, audit.Change{
			CompanyID: companyID, EntityType: entity.EntityLeave, EntityID: l.ID,
			From: from, To: to, ChangedBy: actorID, Note: in.Note, At: now,
		}); err != nil {
			return err
		}
		if emp, err = repos.Employees.GetByID(ctx, companyID, l.EmployeeID); err != nil {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.recorder.Touch(ctx, companyID)
	if to != entity.LeaveCancelled {
		uc.notify(ctx, out, emp)
	}
	return ToLeaveResponse(out), nil
}

// checkAllowance los días aprobados del año más los pedidos no superan el tope del tipo.
func checkAllowance(ctx context.Context, leaves repository.LeaveRepository, companyID, employeeID, leaveType string, year, days int) error {
	allowance, limited := LeaveAllowances[leaveType]
	if !limited {
		return nil
	}
	used, err := leaves.ApprovedDaysByType(ctx, companyID, employeeID, year)
	if err != nil {
		return err
	}
	if used[leaveType]+days > allowance {
		return fmt.Errorf("%w: saldo insuficiente de %s (%d de %d días usados)", domain.ErrConflict, leaveType, used[leaveType], allowance)
	}
	return nil
}

func (uc *LeaveUseCase) notify(ctx context.Context, l *entity.LeaveRequest, emp *entity.Employee) {
	if uc.notifier == nil || emp == nil || emp.Email == "" {
		return
	}
	err := uc.notifier.LeaveDecided(ctx, ports.LeaveDecision{
		To:           emp.Email,
		EmployeeName: emp.FullName(),
		LeaveType:    l.Type,
		StartDate:    dto.FormatDate(l.StartDate),
		EndDate:      dto.FormatDate(l.EndDate),
		Status:       l.Status,
	})
	if err != nil {
		log.Warn().Err(err).Str("leave_id", l.ID).Msg("no se pudo notificar la decisión de ausencia")
	}
}

// ToLeaveResponse mapea la solicitud a DTO.
func ToLeaveResponse(l *entity.LeaveRequest) *dto.LeaveResponse {
	return &dto.LeaveResponse{
		ID:         l.ID,
		EmployeeID: l.EmployeeID,
		Type:       l.Type,
		StartDate:  dto.FormatDate(l.StartDate),
		EndDate:    dto.FormatDate(l.EndDate),
		Days:       l.Days,
		Reason:     l.Reason,
		Status:     l.Status,
		ReviewedBy: l.ReviewedBy,
		ReviewedAt: l.ReviewedAt,
		CreatedAt:  l.CreatedAt,
	}
}

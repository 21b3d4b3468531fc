// Package payroll orquesta la corrida de nómina, su flujo de estados y el
// desprendible en PDF. El cálculo vive en el dominio.
package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/people360/internal/application/audit"
	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/application/ports"
	"github.com/jhoicas/people360/internal/domain"
	"github.com/jhoicas/people360/internal/domain/entity"
	calc "github.com/jhoicas/people360/internal/domain/payroll"
	"github.com/jhoicas/people360/internal/domain/repository"
	"github.com/jhoicas/people360/internal/domain/workflow"
	"github.com/jhoicas/people360/pkg/validator"
)

// maxPeriodDays tope de un período de nómina.
const maxPeriodDays = 31

// UseCase nómina de la empresa.
type UseCase struct {
	repos     repository.Repos
	tx        ports.TxRunner
	recorder  *audit.Recorder
	generator ports.PayslipPDFGenerator
	notifier  ports.Notifier
	now       func() time.Time
}

// NewUseCase notifier puede ser nil.
func NewUseCase(repos repository.Repos, tx ports.TxRunner, recorder *audit.Recorder, generator ports.PayslipPDFGenerator, notifier ports.Notifier) *UseCase {
	return &UseCase{repos: repos, tx: tx, recorder: recorder, generator: generator, notifier: notifier, now: time.Now}
}

// Run genera los registros draft del período. Los empleados que ya tienen
// registro para el mismo período se omiten; la corrida es todo o nada.
func (uc *UseCase) Run(ctx context.Context, companyID string, in dto.RunPayrollRequest) (*dto.RunPayrollResponse, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	start, err := dto.ParseDate(in.PeriodStart)
	if err != nil {
		return nil, err
	}
	end, err := dto.ParseDate(in.PeriodEnd)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: period_end anterior a period_start", domain.ErrInvalidInput)
	}
	if end.Sub(start) >= maxPeriodDays*24*time.Hour {
		return nil, fmt.Errorf("%w: el período supera %d días", domain.ErrInvalidInput, maxPeriodDays)
	}

	out := &dto.RunPayrollResponse{TotalNet: decimal.Zero, Records: []dto.PayrollResponse{}}
	err = uc.tx.Run(ctx, func(repos repository.Repos) error {
		employees, err := uc.employees(ctx, repos, companyID, in.EmployeeIDs)
		if err != nil {
			return err
		}
		now := uc.now()
		for _, e := range employees {
			existing, err := repos.Payroll.GetByEmployeeAndPeriod(ctx, companyID, e.ID, start, end)
			if err != nil {
				return err
			}
			if existing != nil {
				out.Skipped++
				continue
			}
			days, err := repos.Attendance.ListByEmployee(ctx, companyID, e.ID, start, end)
			if err != nil {
				return err
			}
			work := make([]calc.DayWork, 0, len(days))
			for _, a := range days {
				work = append(work, calc.DayWork{Date: a.Date, Hours: a.HoursWorked})
			}
			r := calc.Calculate(calc.Input{
				Salary: e.Salary, SalaryType: e.SalaryType, PeriodStart: start, PeriodEnd: end, Attendance: work,
			})
			rec := &entity.PayrollRecord{
				ID:               uuid.New().String(),
				CompanyID:        companyID,
				EmployeeID:       e.ID,
				PeriodStart:      start,
				PeriodEnd:        end,
				WorkingDays:      r.WorkingDays,
				PresentDays:      r.PresentDays,
				BasicSalary:      r.BasicSalary,
				Allowances:       r.Allowances,
				OvertimeHours:    r.OvertimeHours,
				OvertimePay:      r.OvertimePay,
				AbsenceDeduction: r.AbsenceDeduction,
				GrossPay:         r.GrossPay,
				Tax:              r.Tax,
				OtherDeductions:  r.OtherDeductions,
				NetPay:           r.NetPay,
				Status:           workflow.PayrollStatus.Initial(),
				CreatedAt:        now,
				UpdatedAt:        now,
			}
			if err := repos.Payroll.Create(ctx, rec); err != nil {
				return err
			}
			out.Created++
			out.TotalNet = out.TotalNet.Add(rec.NetPay)
			out.Records = append(out.Records, *ToPayrollResponse(rec))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.recorder.Touch(ctx, companyID)
	log.Info().Str("company_id", companyID).Str("period_start", in.PeriodStart).Str("period_end", in.PeriodEnd).
		Int("created", out.Created).Int("skipped", out.Skipped).Str("total_net", out.TotalNet.String()).
		Msg("nómina generada")
	return out, nil
}

func (uc *UseCase) employees(ctx context.Context, repos repository.Repos, companyID string, ids []string) ([]*entity.Employee, error) {
	if len(ids) == 0 {
		return repos.Employees.ListActive(ctx, companyID)
	}
	out := make([]*entity.Employee, 0, len(ids))
	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		e, err := repos.Employees.GetByID(ctx, companyID, id)
		if err != nil {
			return nil, err
		}
		if e == nil {
			return nil, fmt.Errorf("%w: empleado %s no existe", domain.ErrInvalidInput, id)
		}
		if !e.IsActive() {
			return nil, fmt.Errorf("%w: empleado %s no está activo", domain.ErrConflict, e.Code)
		}
		out = append(out, e)
	}
	return out, nil
}

// GetByID obtiene un registro de nómina.
func (uc *UseCase) GetByID(ctx context.Context, companyID, id string) (*dto.PayrollResponse, error) {
	p, err := getRecord(ctx, uc.repos.Payroll, companyID, id)
	if err != nil {
		return nil, err
	}
	return ToPayrollResponse(p), nil
}

// List lista registros con filtros.
func (uc *UseCase) List(ctx context.Context, companyID string, q dto.PayrollListQuery) (dto.Paginated[dto.PayrollResponse], error) {
	period, err := dto.ParseOptionalDate(q.PeriodStart)
	if err != nil {
		return dto.Paginated[dto.PayrollResponse]{}, err
	}
	list, total, err := uc.repos.Payroll.List(ctx, companyID, repository.PayrollFilter{
		Page:        repository.Page{Limit: q.Limit(), Offset: q.Offset()},
		EmployeeID:  q.EmployeeID,
		Status:      q.Status,
		PeriodStart: period,
	})
	if err != nil {
		return dto.Paginated[dto.PayrollResponse]{}, err
	}
	out := make([]dto.PayrollResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *ToPayrollResponse(p))
	}
	return dto.NewPaginated(out, total, q.PageQuery), nil
}

// ChangeStatus draft → processed → paid, con auditoría. Al pasar a paid avisa al empleado.
func (uc *UseCase) ChangeStatus(ctx context.Context, companyID, actorID, id string, in dto.StatusChangeRequest) (*dto.PayrollResponse, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	var (
		out *entity.PayrollRecord
		emp *entity.Employee
	)
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		p, err := getRecord(ctx, repos.Payroll, companyID, id)
		if err != nil {
			return err
		}
		if err := workflow.PayrollStatus.Validate(p.Status, in.Status); err != nil {
			return err
		}
		now := uc.now()
		from := p.Status
		p.Status = in.Status
		p.UpdatedAt = now
		if p.ProcessedAt == nil {
			p.ProcessedAt = &now
		}
		if err := repos.Payroll.Update(ctx, p); err != nil {
			return err
		}
		if _, err := uc.recorder.Transition(ctx, repos.Transitions, audit.Change{
			CompanyID: companyID, EntityType: entity.EntityPayroll, EntityID: p.ID,
			From: from, To: p.Status, ChangedBy: actorID, Note: in.Note, At: now,
		}); err != nil {
			return err
		}
		if p.Status == entity.PayrollPaid {
			if emp, err = repos.Employees.GetByID(ctx, companyID, p.EmployeeID); err != nil {
				return err
			}
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.recorder.Touch(ctx, companyID)
	if out.Status == entity.PayrollPaid {
		uc.notifyPaid(ctx, out, emp)
	}
	return ToPayrollResponse(out), nil
}

func (uc *UseCase) notifyPaid(ctx context.Context, p *entity.PayrollRecord, emp *entity.Employee) {
	if uc.notifier == nil || emp == nil || emp.Email == "" {
		return
	}
	err := uc.notifier.PayslipReady(ctx, ports.PayslipNotice{
		To:           emp.Email,
		EmployeeName: emp.FullName(),
		Period:       dto.FormatDate(p.PeriodStart) + " a " + dto.FormatDate(p.PeriodEnd),
		NetPay:       p.NetPay.StringFixed(2),
	})
	if err != nil {
		log.Warn().Err(err).Str("payroll_id", p.ID).Msg("no se pudo notificar el pago de nómina")
	}
}

// History auditoría de estados del registro.
func (uc *UseCase) History(ctx context.Context, companyID, id string) ([]dto.TransitionResponse, error) {
	if _, err := getRecord(ctx, uc.repos.Payroll, companyID, id); err != nil {
		return nil, err
	}
	return audit.History(ctx, uc.repos.Transitions, companyID, entity.EntityPayroll, id)
}

// Payslip genera el desprendible en PDF. Un registro en borrador no tiene desprendible.
//
// Retorna:
//   - (pdf, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound    si el registro no existe en la empresa.
//   - domain.ErrConflict    si el registro sigue en draft.
func (uc *UseCase) Payslip(ctx context.Context, companyID, id string) ([]byte, string, error) {
	p, err := getRecord(ctx, uc.repos.Payroll, companyID, id)
	if err != nil {
		return nil, "", err
	}
	if p.Status == entity.PayrollDraft {
		return nil, "", fmt.Errorf("%w: la nómina en borrador no tiene desprendible", domain.ErrConflict)
	}
	company, err := uc.repos.Companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, "", fmt.Errorf("payslip: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}
	emp, err := uc.repos.Employees.GetByID(ctx, companyID, p.EmployeeID)
	if err != nil {
		return nil, "", fmt.Errorf("payslip: obtener empleado: %w", err)
	}
	if emp == nil {
		return nil, "", domain.ErrNotFound
	}
	pdf, err := uc.generator.GeneratePayslipPDF(ctx, company, emp, p)
	if err != nil {
		return nil, "", fmt.Errorf("payslip: generar pdf: %w", err)
	}
	filename := fmt.Sprintf("payslip-%s-%s.pdf", emp.Code, p.PeriodStart.Format("2006-01"))
	return pdf, filename, nil
}

func getRecord(ctx context.Context, repo repository.PayrollRepository, companyID, id string) (*entity.PayrollRecord, error) {
	p, err := repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// ToPayrollResponse mapea la entidad a su DTO.
func ToPayrollResponse(p *entity.PayrollRecord) *dto.PayrollResponse {
	return &dto.PayrollResponse{
		ID:               p.ID,
		EmployeeID:       p.EmployeeID,
		PeriodStart:      dto.FormatDate(p.PeriodStart),
		PeriodEnd:        dto.FormatDate(p.PeriodEnd),
		WorkingDays:      p.WorkingDays,
		PresentDays:      p.PresentDays,
		BasicSalary:      p.BasicSalary,
		Allowances:       p.Allowances,
		OvertimeHours:    p.OvertimeHours,
		OvertimePay:      p.OvertimePay,
		AbsenceDeduction: p.AbsenceDeduction,
		GrossPay:         p.GrossPay,
		Tax:              p.Tax,
		OtherDeductions:  p.OtherDeductions,
		NetPay:           p.NetPay,
		Status:           p.Status,
		ProcessedAt:      p.ProcessedAt,
		CreatedAt:        p.CreatedAt,
	}
}

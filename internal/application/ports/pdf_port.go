package ports

import (
	"context"

	"github.com/jhoicas/people360/internal/domain/entity"
)

// PayslipPDFGenerator genera el desprendible de pago de un registro de nómina.
type PayslipPDFGenerator interface {
	GeneratePayslipPDF(ctx context.Context, company *entity.Company, employee *entity.Employee, record *entity.PayrollRecord) ([]byte, error)
}

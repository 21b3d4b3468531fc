// Package pdf genera el desprendible de pago (payslip) de un registro de nómina.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa            │  DESPRENDIBLE + Período        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMPLEADO: Nombre + Código / Cargo / Departamento            │
//	│  ASISTENCIA: días hábiles / presentes / horas extra          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DEVENGADOS            │  DEDUCCIONES                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NETO A PAGAR                                                │
//	│  FOOTER: QR de verificación + leyenda                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/people360/internal/application/ports"
	"github.com/jhoicas/people360/internal/domain/entity"
	"github.com/jhoicas/people360/pkg/labels"
)

var _ ports.PayslipPDFGenerator = (*MarotoPayslipGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPayslipGenerator implementa ports.PayslipPDFGenerator usando Maroto v2.
type MarotoPayslipGenerator struct{}

// NewMarotoPayslipGenerator construye el generador.
func NewMarotoPayslipGenerator() *MarotoPayslipGenerator { return &MarotoPayslipGenerator{} }

// GeneratePayslipPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPayslipGenerator) GeneratePayslipPDF(
	_ context.Context,
	company *entity.Company,
	employee *entity.Employee,
	record *entity.PayrollRecord,
) ([]byte, error) {
	if company == nil || employee == nil || record == nil {
		return nil, fmt.Errorf("pdf: datos incompletos para el desprendible")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Payslip "+record.PeriodStart.Format("2006-01"), true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(company, record))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(employeeRow(employee))
	m.AddRows(attendanceRow(record))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionHeaderRow())
	for _, r := range amountRows(record) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(netRow(record))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(employee, record))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa (izq) y período + estado (der).
func headerRow(company *entity.Company, record *entity.PayrollRecord) core.Row {
	period := record.PeriodStart.Format("02/01/2006") + " - " + record.PeriodEnd.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(company.Email, "-"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PAYSLIP", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(period, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Status: "+labels.Humanize(record.Status), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// employeeRow: datos del empleado.
func employeeRow(e *entity.Employee) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("EMPLOYEE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(labels.Name(e.FullName())+"  ("+e.Code+")", props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Position: %s   |   Department: %s   |   Email: %s",
				nonEmpty(e.Position, "-"),
				nonEmpty(e.Department, "-"),
				nonEmpty(e.Email, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// attendanceRow: días y horas que soportan el cálculo.
func attendanceRow(r *entity.PayrollRecord) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Working days: %d   |   Present days: %d   |   Overtime hours: %s",
				r.WorkingDays, r.PresentDays, r.OvertimeHours.StringFixed(2),
			), props.Text{Size: 8, Top: 2, Color: colorGray}),
		),
	)
}

// sectionHeaderRow: cabecera de las dos columnas de conceptos.
func sectionHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Earnings", 4, align.Left),
		h("Amount", 2, align.Right),
		h("Deductions", 4, align.Left),
		h("Amount", 2, align.Right),
	)
}

type concept struct {
	label  string
	amount decimal.Decimal
}

// amountRows: devengados y deducciones lado a lado.
func amountRows(r *entity.PayrollRecord) []core.Row {
	earnings := []concept{
		{"Basic salary", r.BasicSalary},
		{"Allowances", r.Allowances},
		{"Overtime", r.OvertimePay},
		{"Gross pay", r.GrossPay},
	}
	deductions := []concept{
		{"Absences", r.AbsenceDeduction},
		{"Income tax", r.Tax},
		{"Other deductions", r.OtherDeductions},
		{"Total deductions", r.AbsenceDeduction.Add(r.Tax).Add(r.OtherDeductions)},
	}

	result := make([]core.Row, 0, len(earnings))
	for i := range earnings {
		style := fontstyle.Normal
		if i == len(earnings)-1 {
			style = fontstyle.Bold
		}
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(earnings[i].label, props.Text{Size: 8, Style: style, Top: 1, Left: 1})),
			col.New(2).Add(text.New("$"+formatMoney(earnings[i].amount),
				props.Text{Size: 8, Style: style, Align: align.Right, Top: 1, Right: 1})),
			col.New(4).Add(text.New(deductions[i].label, props.Text{Size: 8, Style: style, Top: 1, Left: 1})),
			col.New(2).Add(text.New("$"+formatMoney(deductions[i].amount),
				props.Text{Size: 8, Style: style, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// netRow: neto a pagar destacado.
func netRow(r *entity.PayrollRecord) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(text.New("NET PAY:", props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 3, Right: 2,
		})),
		col.New(3).Add(text.New("$"+formatMoney(r.NetPay), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 3, Right: 1,
		})),
	)
}

// footerRow: QR con la referencia del registro + leyenda.
func footerRow(e *entity.Employee, r *entity.PayrollRecord) core.Row {
	ref := fmt.Sprintf("payroll:%s|employee:%s|net:%s", r.ID, e.Code, r.NetPay.StringFixed(2))
	return row.New(35).Add(
		col.New(3).Add(code.NewQr(ref, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Reference: "+r.ID, props.Text{Size: 7, Top: 4, Left: 3, Color: colorGray}),
			text.New("This payslip was generated electronically and does not require a signature.", props.Text{
				Size: 7, Top: 12, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney puntos de miles y coma decimal con 2 cifras.
// Ej: 25000 → "25.000,00", 1234567.5 → "1.234.567,50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3+4)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := string(buf) + "," + frac
	if neg {
		out = "-" + out
	}
	return out
}

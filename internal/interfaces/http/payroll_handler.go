package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/application/payroll"
)

// PayrollHandler liquidación de nómina y desprendibles.
type PayrollHandler struct {
	uc *payroll.UseCase
}

func NewPayrollHandler(uc *payroll.UseCase) *PayrollHandler {
	return &PayrollHandler{uc: uc}
}

// Run godoc
// @Summary      Liquidar nómina de un período
// @Description  Calcula en borrador la nómina de los empleados activos (o de los indicados).
// @Description  Los empleados que ya tienen registro en el período se omiten.
// @Tags         payroll
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RunPayrollRequest  true  "período y empleados opcionales"
// @Success      201  {object}  dto.RunPayrollResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/hr/payroll/run [post]
func (h *PayrollHandler) Run(c *fiber.Ctx) error {
	var in dto.RunPayrollRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Run(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar registros de nómina
// @Tags         payroll
// @Security     Bearer
// @Produce      json
// @Param        page          query  int     false  "página"
// @Param        per_page      query  int     false  "tamaño de página"
// @Param        employee_id   query  string  false  "empleado"
// @Param        status        query  string  false  "draft, processed, paid"
// @Param        period_start  query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.Paginated[dto.PayrollResponse]
// @Router       /api/hr/payroll [get]
func (h *PayrollHandler) List(c *fiber.Ctx) error {
	var q dto.PayrollListQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener registro de nómina
// @Tags         payroll
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {object}  dto.PayrollResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/hr/payroll/{id} [get]
func (h *PayrollHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ChangeStatus godoc
// @Summary      Procesar o marcar como pagado
// @Tags         payroll
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del registro"
// @Param        body  body  dto.StatusChangeRequest  true  "processed o paid"
// @Success      200  {object}  dto.PayrollResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/hr/payroll/{id}/status [post]
func (h *PayrollHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.StatusChangeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ChangeStatus(c.UserContext(), GetCompanyID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de estados del registro de nómina
// @Tags         payroll
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {array}   dto.TransitionResponse
// @Router       /api/hr/payroll/{id}/history [get]
func (h *PayrollHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Payslip godoc
// @Summary      Descargar desprendible de pago en PDF
// @Tags         payroll
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/hr/payroll/{id}/payslip [get]
func (h *PayrollHandler) Payslip(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.Payslip(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Attachment(filename)
	return c.Send(pdf)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/application/hr"
)

// AttendanceHandler marcaciones y reporte de asistencia.
type AttendanceHandler struct {
	uc *hr.AttendanceUseCase
}

func NewAttendanceHandler(uc *hr.AttendanceUseCase) *AttendanceHandler {
	return &AttendanceHandler{uc: uc}
}

// CheckIn godoc
// @Summary      Registrar entrada del día
// @Tags         hr
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckRequest  true  "employee_id"
// @Success      201  {object}  dto.AttendanceResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/hr/attendance/check-in [post]
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	var in dto.CheckRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CheckIn(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CheckOut godoc
// @Summary      Registrar salida del día
// @Tags         hr
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckRequest  true  "employee_id"
// @Success      200  {object}  dto.AttendanceResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/hr/attendance/check-out [post]
func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	var in dto.CheckRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CheckOut(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte de asistencia por rango de fechas
// @Tags         hr
// @Security     Bearer
// @Produce      json
// @Param        employeeId  path   string  true  "ID del empleado"
// @Param        start       query  string  true  "YYYY-MM-DD"
// @Param        end         query  string  true  "YYYY-MM-DD"
// @Success      200  {object}  dto.AttendanceReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/hr/attendance/report/{employeeId} [get]
func (h *AttendanceHandler) Report(c *fiber.Ctx) error {
	out, err := h.uc.Report(c.UserContext(), GetCompanyID(c), c.Params("employeeId"), c.Query("start"), c.Query("end"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

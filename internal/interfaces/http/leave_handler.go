package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/application/hr"
)

// LeaveHandler solicitudes de ausencia.
type LeaveHandler struct {
	uc *hr.LeaveUseCase
}

func NewLeaveHandler(uc *hr.LeaveUseCase) *LeaveHandler {
	return &LeaveHandler{uc: uc}
}

// List godoc
// @Summary      Listar solicitudes de ausencia
// @Tags         hr
// @Security     Bearer
// @Produce      json
// @Param        page         query  int     false  "página"
// @Param        per_page     query  int     false  "tamaño de página"
// @Param        employee_id  query  string  false  "empleado"
// @Param        status       query  string  false  "pending, approved, rejected, cancelled"
// @Param        type         query  string  false  "vacation, sick, ..."
// @Success      200  {object}  dto.Paginated[dto.LeaveResponse]
// @Router       /api/hr/leaves [get]
func (h *LeaveHandler) List(c *fiber.Ctx) error {
	var q dto.LeaveListQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Solicitar ausencia
// @Tags         hr
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLeaveRequest  true  "empleado, tipo y fechas"
// @Success      201  {object}  dto.LeaveResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/hr/leaves [post]
func (h *LeaveHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLeaveRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Balance godoc
// @Summary      Saldo de días por tipo de ausencia del año en curso
// @Tags         hr
// @Security     Bearer
// @Produce      json
// @Param        employeeId  path  string  true  "ID del empleado"
// @Success      200  {object}  dto.LeaveBalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/hr/leaves/balance/{employeeId} [get]
func (h *LeaveHandler) Balance(c *fiber.Ctx) error {
	out, err := h.uc.Balance(c.UserContext(), GetCompanyID(c), c.Params("employeeId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

type leaveDecision func(ctx context.Context, companyID, actorID, id string, in dto.LeaveDecisionRequest) (*dto.LeaveResponse, error)

func (h *LeaveHandler) decide(c *fiber.Ctx, fn leaveDecision) error {
	var in dto.LeaveDecisionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := fn(c.UserContext(), GetCompanyID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar solicitud
// @Tags         hr
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true   "ID de la solicitud"
// @Param        body  body  dto.LeaveDecisionRequest  false  "comentario"
// @Success      200  {object}  dto.LeaveResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/hr/leaves/{id}/approve [post]
func (h *LeaveHandler) Approve(c *fiber.Ctx) error { return h.decide(c, h.uc.Approve) }

// Reject godoc
// @Summary      Rechazar solicitud
// @Tags         hr
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true   "ID de la solicitud"
// @Param        body  body  dto.LeaveDecisionRequest  false  "comentario"
// @Success      200  {object}  dto.LeaveResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/hr/leaves/{id}/reject [post]
func (h *LeaveHandler) Reject(c *fiber.Ctx) error { return h.decide(c, h.uc.Reject) }

// Cancel godoc
// @Summary      Cancelar solicitud pendiente
// @Tags         hr
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true   "ID de la solicitud"
// @Param        body  body  dto.LeaveDecisionRequest  false  "comentario"
// @Success      200  {object}  dto.LeaveResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/hr/leaves/{id}/cancel [post]
func (h *LeaveHandler) Cancel(c *fiber.Ctx) error { return h.decide(c, h.uc.Cancel) }

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/people360/internal/application/crm"
	"github.com/jhoicas/people360/internal/application/dto"
)

// TicketHandler tickets de soporte y sus respuestas.
type TicketHandler struct {
	uc *crm.TicketUseCase
}

func NewTicketHandler(uc *crm.TicketUseCase) *TicketHandler {
	return &TicketHandler{uc: uc}
}

// List godoc
// @Summary      Listar tickets
// @Tags         crm
// @Security     Bearer
// @Produce      json
// @Param        page         query  int     false  "página"
// @Param        per_page     query  int     false  "tamaño de página"
// @Param        status       query  string  false  "open, in_progress, waiting, resolved, closed"
// @Param        priority     query  string  false  "low, medium, high, urgent"
// @Param        customer_id  query  string  false  "cliente"
// @Param        assigned_to  query  string  false  "usuario asignado"
// @Param        q            query  string  false  "asunto"
// @Success      200  {object}  dto.Paginated[dto.TicketResponse]
// @Router       /api/crm/tickets [get]
func (h *TicketHandler) List(c *fiber.Ctx) error {
	var q dto.TicketListQuery
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
// @Summary      Abrir ticket
// @Tags         crm
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTicketRequest  true  "cliente, asunto y descripción"
// @Success      201  {object}  dto.TicketResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/crm/tickets [post]
func (h *TicketHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTicketRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener ticket
// @Tags         crm
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ticket"
// @Success      200  {object}  dto.TicketResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/crm/tickets/{id} [get]
func (h *TicketHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar ticket (no cambia el estado)
// @Tags         crm
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del ticket"
// @Param        body  body  dto.UpdateTicketRequest  true  "campos a cambiar"
// @Success      200  {object}  dto.TicketResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/crm/tickets/{id} [put]
func (h *TicketHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTicketRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar ticket
// @Description  Borra también sus respuestas.
// @Tags         crm
// @Security     Bearer
// @Param        id   path  string  true  "ID del ticket"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/crm/tickets/{id} [delete]
func (h *TicketHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ChangeStatus godoc
// @Summary      Cambiar estado del ticket
// @Description  Notifica al cliente por email; un fallo de envío no revierte el cambio.
// @Tags         crm
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del ticket"
// @Param        body  body  dto.StatusChangeRequest  true  "nuevo estado y nota"
// @Success      200  {object}  dto.TicketResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/crm/tickets/{id}/status [post]
func (h *TicketHandler) ChangeStatus(c *fiber.Ctx) error {
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
// @Summary      Historial de estados del ticket
// @Tags         crm
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ticket"
// @Success      200  {array}   dto.TransitionResponse
// @Router       /api/crm/tickets/{id}/history [get]
func (h *TicketHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Responses godoc
// @Summary      Respuestas del ticket
// @Tags         crm
// @Security     Bearer
// @Produce      json
// @Param        id                path   string  true   "ID del ticket"
// @Param        include_internal  query  bool    false  "incluir notas internas (por defecto true)"
// @Success      200  {array}   dto.TicketReplyResponse
// @Router       /api/crm/tickets/{id}/responses [get]
func (h *TicketHandler) Responses(c *fiber.Ctx) error {
	out, err := h.uc.Responses(c.UserContext(), GetCompanyID(c), c.Params("id"), c.QueryBool("include_internal", true))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddResponse godoc
// @Summary      Responder el ticket o dejar nota interna
// @Tags         crm
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                           true  "ID del ticket"
// @Param        body  body  dto.CreateTicketResponseRequest  true  "mensaje"
// @Success      201  {object}  dto.TicketReplyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/crm/tickets/{id}/responses [post]
func (h *TicketHandler) AddResponse(c *fiber.Ctx) error {
	var in dto.CreateTicketResponseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddResponse(c.UserContext(), GetCompanyID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

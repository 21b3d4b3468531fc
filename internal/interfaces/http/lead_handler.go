package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/people360/internal/application/crm"
	"github.com/jhoicas/people360/internal/application/dto"
)

// LeadHandler oportunidades de venta y su pipeline.
type LeadHandler struct {
	uc *crm.LeadUseCase
}

func NewLeadHandler(uc *crm.LeadUseCase) *LeadHandler {
	return &LeadHandler{uc: uc}
}

// List godoc
// @Summary      Listar oportunidades
// @Tags         crm
// @Security     Bearer
// @Produce      json
// @Param        page         query  int     false  "página"
// @Param        per_page     query  int     false  "tamaño de página"
// @Param        stage        query  string  false  "new, qualified, proposal, negotiation, won, lost"
// @Param        priority     query  string  false  "low, medium, high, urgent"
// @Param        customer_id  query  string  false  "cliente"
// @Param        q            query  string  false  "título"
// @Success      200  {object}  dto.Paginated[dto.LeadResponse]
// @Router       /api/crm/leads [get]
func (h *LeadHandler) List(c *fiber.Ctx) error {
	var q dto.LeadListQuery
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
// @Summary      Crear oportunidad
// @Tags         crm
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLeadRequest  true  "datos de la oportunidad"
// @Success      201  {object}  dto.LeadResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/crm/leads [post]
func (h *LeadHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLeadRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener oportunidad
// @Tags         crm
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la oportunidad"
// @Success      200  {object}  dto.LeadResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/crm/leads/{id} [get]
func (h *LeadHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar oportunidad (no cambia la etapa)
// @Tags         crm
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la oportunidad"
// @Param        body  body  dto.UpdateLeadRequest  true  "campos a cambiar"
// @Success      200  {object}  dto.LeadResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/crm/leads/{id} [put]
func (h *LeadHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLeadRequest
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
// @Summary      Eliminar oportunidad
// @Description  Borra también sus actividades.
// @Tags         crm
// @Security     Bearer
// @Param        id   path  string  true  "ID de la oportunidad"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/crm/leads/{id} [delete]
func (h *LeadHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ChangeStage godoc
// @Summary      Mover la oportunidad en el pipeline
// @Tags         crm
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID de la oportunidad"
// @Param        body  body  dto.LeadStageRequest  true  "nueva etapa y nota"
// @Success      200  {object}  dto.LeadResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/crm/leads/{id}/stage [post]
func (h *LeadHandler) ChangeStage(c *fiber.Ctx) error {
	var in dto.LeadStageRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ChangeStage(c.UserContext(), GetCompanyID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de etapas
// @Tags         crm
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la oportunidad"
// @Success      200  {array}   dto.TransitionResponse
// @Router       /api/crm/leads/{id}/history [get]
func (h *LeadHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Activities godoc
// @Summary      Actividades de la oportunidad
// @Tags         crm
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la oportunidad"
// @Success      200  {array}   dto.LeadActivityResponse
// @Router       /api/crm/leads/{id}/activities [get]
func (h *LeadHandler) Activities(c *fiber.Ctx) error {
	out, err := h.uc.Activities(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddActivity godoc
// @Summary      Registrar actividad (llamada, email, reunión, nota)
// @Tags         crm
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true  "ID de la oportunidad"
// @Param        body  body  dto.CreateLeadActivityRequest  true  "actividad"
// @Success      201  {object}  dto.LeadActivityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/crm/leads/{id}/activities [post]
func (h *LeadHandler) AddActivity(c *fiber.Ctx) error {
	var in dto.CreateLeadActivityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddActivity(c.UserContext(), GetCompanyID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

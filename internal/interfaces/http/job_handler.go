package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/application/hr"
)

// JobHandler vacantes y postulaciones.
type JobHandler struct {
	uc *hr.JobUseCase
}

func NewJobHandler(uc *hr.JobUseCase) *JobHandler {
	return &JobHandler{uc: uc}
}

// List godoc
// @Summary      Listar vacantes
// @Tags         hr
// @Security     Bearer
// @Produce      json
// @Param        page        query  int     false  "página"
// @Param        per_page    query  int     false  "tamaño de página (máx. 100)"
// @Param        department  query  string  false  "departamento"
// @Param        status      query  string  false  "draft, open, closed, filled"
// @Param        q           query  string  false  "título"
// @Success      200  {object}  dto.Paginated[dto.JobResponse]
// @Router       /api/hr/jobs [get]
func (h *JobHandler) List(c *fiber.Ctx) error {
	var q dto.JobListQuery
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
// @Summary      Crear vacante (queda en draft)
// @Tags         hr
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateJobRequest  true  "datos de la vacante"
// @Success      201  {object}  dto.JobResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/hr/jobs [post]
func (h *JobHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateJobRequest
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
// @Summary      Obtener vacante
// @Tags         hr
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la vacante"
// @Success      200  {object}  dto.JobResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/hr/jobs/{id} [get]
func (h *JobHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar vacante
// @Tags         hr
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID de la vacante"
// @Param        body  body  dto.UpdateJobRequest  true  "campos a cambiar"
// @Success      200  {object}  dto.JobResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/hr/jobs/{id} [put]
func (h *JobHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateJobRequest
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
// @Summary      Eliminar vacante
// @Description  Se rechaza con 409 si la vacante tiene postulaciones.
// @Tags         hr
// @Security     Bearer
// @Param        id   path  string  true  "ID de la vacante"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/hr/jobs/{id} [delete]
func (h *JobHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ChangeStatus godoc
// @Summary      Cambiar estado de la vacante
// @Tags         hr
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la vacante"
// @Param        body  body  dto.StatusChangeRequest  true  "nuevo estado y nota"
// @Success      200  {object}  dto.JobResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/hr/jobs/{id}/status [post]
func (h *JobHandler) ChangeStatus(c *fiber.Ctx) error {
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
// @Summary      Historial de estados de la vacante
// @Tags         hr
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la vacante"
// @Success      200  {array}   dto.TransitionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/hr/jobs/{id}/history [get]
func (h *JobHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Applications godoc
// @Summary      Postulaciones de una vacante
// @Tags         hr
// @Security     Bearer
// @Produce      json
// @Param        id        path   string  true   "ID de la vacante"
// @Param        page      query  int     false  "página"
// @Param        per_page  query  int     false  "tamaño de página"
// @Success      200  {object}  dto.Paginated[dto.ApplicationResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/hr/jobs/{id}/applications [get]
func (h *JobHandler) Applications(c *fiber.Ctx) error {
	var q dto.PageQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.Applications(c.UserContext(), GetCompanyID(c), c.Params("id"), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Apply godoc
// @Summary      Postularse a una vacante abierta
// @Tags         hr
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la vacante"
// @Param        body  body  dto.CreateApplicationRequest  true  "datos del candidato"
// @Success      201  {object}  dto.ApplicationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/hr/jobs/{id}/applications [post]
func (h *JobHandler) Apply(c *fiber.Ctx) error {
	var in dto.CreateApplicationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Apply(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetApplication godoc
// @Summary      Obtener postulación
// @Tags         hr
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la postulación"
// @Success      200  {object}  dto.ApplicationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/hr/applications/{id} [get]
func (h *JobHandler) GetApplication(c *fiber.Ctx) error {
	out, err := h.uc.GetApplication(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ChangeApplicationStatus godoc
// @Summary      Avanzar la postulación en el pipeline
// @Tags         hr
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la postulación"
// @Param        body  body  dto.ApplicationStatusRequest  true  "nuevo estado, puntaje y notas"
// @Success      200  {object}  dto.ApplicationResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/hr/applications/{id}/status [post]
func (h *JobHandler) ChangeApplicationStatus(c *fiber.Ctx) error {
	var in dto.ApplicationStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ChangeApplicationStatus(c.UserContext(), GetCompanyID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

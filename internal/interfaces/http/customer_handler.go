package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/people360/internal/application/crm"
	"github.com/jhoicas/people360/internal/application/dto"
)

// CustomerHandler CRUD de clientes.
type CustomerHandler struct {
	uc *crm.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *crm.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// List godoc
// @Summary      Listar clientes
// @Tags         crm
// @Security     Bearer
// @Produce      json
// @Param        page           query  int     false  "página"
// @Param        per_page       query  int     false  "tamaño de página"
// @Param        status         query  string  false  "active, inactive, prospect, lost"
// @Param        customer_type  query  string  false  "prospect, customer, partner"
// @Param        q              query  string  false  "nombre, empresa o email"
// @Success      200  {object}  dto.Paginated[dto.CustomerResponse]
// @Router       /api/crm/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var q dto.CustomerListQuery
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
// @Summary      Crear cliente
// @Tags         crm
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCustomerRequest  true  "datos del cliente"
// @Success      201  {object}  dto.CustomerResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/crm/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
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
// @Summary      Obtener cliente
// @Tags         crm
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/crm/customers/{id} [get]
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cliente
// @Tags         crm
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del cliente"
// @Param        body  body  dto.UpdateCustomerRequest  true  "campos a cambiar"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/crm/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCustomerRequest
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
// @Summary      Eliminar cliente
// @Description  Se rechaza con 409 CUSTOMER_HAS_DEPENDENTS si el cliente tiene tickets u oportunidades.
// @Tags         crm
// @Security     Bearer
// @Param        id   path  string  true  "ID del cliente"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/crm/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Bulk godoc
// @Summary      Operación masiva sobre clientes
// @Description  delete, update_type o assign sobre hasta 100 clientes; se aplica a todos o a ninguno.
// @Tags         crm
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkCustomerRequest  true  "acción e ids"
// @Success      200  {object}  dto.BulkResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/crm/customers/bulk [post]
func (h *CustomerHandler) Bulk(c *fiber.Ctx) error {
	var in dto.BulkCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Bulk(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar clientes en CSV
// @Tags         crm
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {file}    binary
// @Router       /api/crm/customers/export [get]
func (h *CustomerHandler) Export(c *fiber.Ctx) error {
	out, filename, err := h.uc.ExportCSV(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return sendCSV(c, out, filename)
}

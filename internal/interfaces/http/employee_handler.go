package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/application/hr"
)

// EmployeeHandler CRUD de empleados.
type EmployeeHandler struct {
	uc *hr.EmployeeUseCase
}

func NewEmployeeHandler(uc *hr.EmployeeUseCase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

// List godoc
// @Summary      Listar empleados
// @Tags         hr
// @Security     Bearer
// @Produce      json
// @Param        page        query  int     false  "página"
// @Param        per_page    query  int     false  "tamaño de página (máx. 100)"
// @Param        department  query  string  false  "departamento"
// @Param        status      query  string  false  "active, inactive, terminated, on_leave"
// @Param        q           query  string  false  "nombre, email o código"
// @Success      200  {object}  dto.Paginated[dto.EmployeeResponse]
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/hr/employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	var q dto.EmployeeListQuery
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
// @Summary      Crear empleado
// @Tags         hr
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEmployeeRequest  true  "datos del empleado"
// @Success      201  {object}  dto.EmployeeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/hr/employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
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
// @Summary      Obtener empleado
// @Tags         hr
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del empleado"
// @Success      200  {object}  dto.EmployeeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/hr/employees/{id} [get]
func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar empleado
// @Tags         hr
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del empleado"
// @Param        body  body  dto.UpdateEmployeeRequest  true  "campos a cambiar"
// @Success      200  {object}  dto.EmployeeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/hr/employees/{id} [put]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEmployeeRequest
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
// @Summary      Eliminar empleado
// @Tags         hr
// @Security     Bearer
// @Param        id   path  string  true  "ID del empleado"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/hr/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reports godoc
// @Summary      Reportes directos del empleado
// @Tags         hr
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del manager"
// @Success      200  {array}   dto.EmployeeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/hr/employees/{id}/reports [get]
func (h *EmployeeHandler) Reports(c *fiber.Ctx) error {
	out, err := h.uc.Reports(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Bulk godoc
// @Summary      Operación masiva sobre empleados
// @Description  delete, update_status o update_department sobre hasta 100 empleados; se aplica a todos o a ninguno.
// @Tags         hr
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkEmployeeRequest  true  "acción e ids"
// @Success      200  {object}  dto.BulkResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/hr/employees/bulk [post]
func (h *EmployeeHandler) Bulk(c *fiber.Ctx) error {
	var in dto.BulkEmployeeRequest
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
// @Summary      Exportar empleados en CSV
// @Tags         hr
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/hr/employees/export [get]
func (h *EmployeeHandler) Export(c *fiber.Ctx) error {
	out, filename, err := h.uc.ExportCSV(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return sendCSV(c, out, filename)
}

func sendCSV(c *fiber.Ctx, body []byte, filename string) error {
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(body)
}

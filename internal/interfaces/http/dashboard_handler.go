package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/people360/internal/application/analytics"
)

// DashboardHandler estadísticas del dashboard y búsqueda global.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats godoc
// @Summary      Estadísticas del dashboard
// @Description  Totales, bloques HR y CRM según el rol, gráficos y actividad reciente.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.UserContext(), GetCompanyID(c), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// Search godoc
// @Summary      Búsqueda global en empleados, clientes, oportunidades, tickets y vacantes
// @Description  Solo devuelve los tipos que el rol puede leer; máximo 5 resultados por tipo.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        q    query  string  true  "texto (mínimo 2 caracteres)"
// @Success      200  {object}  dto.SearchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/search [get]
func (h *DashboardHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.UserContext(), GetCompanyID(c), GetRole(c), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// EmployeeSummary godoc
// @Summary      Reporte resumen de la plantilla
// @Description  Total, desglose por departamento, tipo de contrato y estado, e ingresos de los últimos 30 días.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.EmployeeSummaryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/employee-summary [get]
func (h *DashboardHandler) EmployeeSummary(c *fiber.Ctx) error {
	out, err := h.uc.EmployeeSummary(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CustomerSummary godoc
// @Summary      Reporte resumen de la cartera de clientes
// @Description  Total, desglose por tipo, industria, prioridad y estado, y altas de los últimos 30 días.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CustomerSummaryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/customer-summary [get]
func (h *DashboardHandler) CustomerSummary(c *fiber.Ctx) error {
	out, err := h.uc.CustomerSummary(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

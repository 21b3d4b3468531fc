package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/application/usecase"
)

// AIHandler triage de tickets asistido por IA.
type AIHandler struct {
	uc *usecase.AIUseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *usecase.AIUseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// SuggestTriage godoc
// @Summary      Sugerir categoría, prioridad y severidad de un ticket con IA
// @Description  Analiza asunto y descripción y devuelve la clasificación más probable con el
// @Description  razonamiento del modelo. Timeout interno de 10 s; 503 si la IA no está configurada.
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TicketTriageRequest  true  "subject y description"
// @Success      200   {object}  dto.TicketTriageDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/crm/tickets/triage [post]
func (h *AIHandler) SuggestTriage(c *fiber.Ctx) error {
	var req dto.TicketTriageRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	result, err := h.uc.SuggestTriage(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

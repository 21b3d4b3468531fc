package ports

import (
	"context"

	"github.com/jhoicas/people360/internal/application/dto"
)

// LLMService define el puerto de salida para los servicios de inteligencia artificial.
// Cualquier adaptador (Anthropic, mock) debe implementar esta interfaz.
type LLMService interface {
	// SuggestTicketTriage analiza asunto y descripción de un ticket y sugiere
	// categoría, prioridad y severidad. El contexto debe llevar un timeout.
	SuggestTicketTriage(ctx context.Context, subject, description string) (*dto.TicketTriageDTO, error)
}

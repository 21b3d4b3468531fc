package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/application/ports"
	"github.com/jhoicas/people360/internal/domain"
	"github.com/jhoicas/people360/pkg/validator"
)

// llmTimeout límite de cada llamada al LLM.
const llmTimeout = 10 * time.Second

// AIUseCase orquesta el triage de tickets asistido por IA.
type AIUseCase struct {
	llm ports.LLMService
}

// NewAIUseCase llm puede ser nil: el caso de uso responde servicio no disponible.
func NewAIUseCase(llm ports.LLMService) *AIUseCase {
	return &AIUseCase{llm: llm}
}

// SuggestTriage valida la entrada y delega al servicio de LLM con timeout de 10 s.
func (uc *AIUseCase) SuggestTriage(ctx context.Context, in dto.TicketTriageRequest) (*dto.TicketTriageDTO, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	if uc.llm == nil {
		return nil, domain.ErrServiceUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	result, err := uc.llm.SuggestTicketTriage(ctx, in.Subject, in.Description)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: triage IA: %v", domain.ErrServiceUnavailable, err)
		}
		return nil, fmt.Errorf("triage IA: %w", err)
	}
	return result, nil
}

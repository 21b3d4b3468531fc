package workflow_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/people360/internal/domain"
	"github.com/jhoicas/people360/internal/domain/entity"
	"github.com/jhoicas/people360/internal/domain/workflow"
)

// ──────────────────────────────────────────────────────────────────────────────
// Pipeline de leads
// ──────────────────────────────────────────────────────────────────────────────

func TestLeadPipeline_AvanceEnOrden(t *testing.T) {
	f := workflow.LeadPipeline
	steps := []string{entity.LeadStageNew, entity.LeadStageQualified, entity.LeadStageProposal, entity.LeadStageNegotiation, entity.LeadStageWon}
	for i := 0; i < len(steps)-1; i++ {
		assert.True(t, f.CanTransition(steps[i], steps[i+1]), "%s → %s debe ser válido", steps[i], steps[i+1])
	}
}

func TestLeadPipeline_SaltoHaciaAdelantePermitido(t *testing.T) {
	assert.True(t, workflow.LeadPipeline.CanTransition(entity.LeadStageNew, entity.LeadStageProposal))
	assert.True(t, workflow.LeadPipeline.CanTransition(entity.LeadStageNew, entity.LeadStageLost),
		"un lead nuevo puede perderse")
}

func TestLeadPipeline_RetrocesoRechazado(t *testing.T) {
	err := workflow.LeadPipeline.Validate(entity.LeadStageProposal, entity.LeadStageQualified)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
}

func TestLeadPipeline_TerminalesCongelados(t *testing.T) {
	f := workflow.LeadPipeline
	for _, to := range f.States() {
		assert.False(t, f.CanTransition(entity.LeadStageWon, to), "won → %s no debe permitirse", to)
		assert.False(t, f.CanTransition(entity.LeadStageLost, to), "lost → %s no debe permitirse", to)
	}
}

func TestLeadPipeline_MismoEstadoRechazado(t *testing.T) {
	assert.False(t, workflow.LeadPipeline.CanTransition(entity.LeadStageQualified, entity.LeadStageQualified))
}

func TestLeadPipeline_EstadoDesconocido_EsValidacion(t *testing.T) {
	err := workflow.LeadPipeline.Validate(entity.LeadStageNew, "archived")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.False(t, errors.Is(err, domain.ErrInvalidTransition))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tickets
// ──────────────────────────────────────────────────────────────────────────────

func TestTicketStatus_MovimientoLateralInProgressWaiting(t *testing.T) {
	f := workflow.TicketStatus
	assert.True(t, f.CanTransition(entity.TicketStatusInProgress, entity.TicketStatusWaiting))
	assert.True(t, f.CanTransition(entity.TicketStatusWaiting, entity.TicketStatusInProgress))
}

func TestTicketStatus_Monotonia(t *testing.T) {
	f := workflow.TicketStatus
	assert.True(t, f.CanTransition(entity.TicketStatusResolved, entity.TicketStatusClosed))
	assert.False(t, f.CanTransition(entity.TicketStatusResolved, entity.TicketStatusOpen))
	assert.False(t, f.CanTransition(entity.TicketStatusClosed, entity.TicketStatusResolved))
	assert.False(t, f.CanTransition(entity.TicketStatusWaiting, entity.TicketStatusOpen))
}

// Propiedad: para cualquier par de estados, una transición válida nunca baja de rango.
func TestFlows_NuncaBajanDeRango(t *testing.T) {
	flows := []*workflow.Flow{
		workflow.LeadPipeline, workflow.TicketStatus, workflow.ApplicationStatus,
		workflow.JobStatus, workflow.LeaveStatus, workflow.PayrollStatus,
	}
	for _, f := range flows {
		for _, from := range f.States() {
			for _, to := range f.States() {
				if f.CanTransition(from, to) {
					assert.GreaterOrEqual(t, f.Rank(to), f.Rank(from), "%s: %s → %s", f.Name(), from, to)
					assert.False(t, f.IsTerminal(from), "%s: %s es terminal", f.Name(), from)
				}
			}
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Ausencias, vacantes y nómina
// ──────────────────────────────────────────────────────────────────────────────

func TestLeaveStatus_SoloDesdePending(t *testing.T) {
	f := workflow.LeaveStatus
	assert.True(t, f.CanTransition(entity.LeavePending, entity.LeaveApproved))
	assert.True(t, f.CanTransition(entity.LeavePending, entity.LeaveCancelled))
	assert.False(t, f.CanTransition(entity.LeaveApproved, entity.LeaveCancelled),
		"una ausencia aprobada no puede cancelarse")
	assert.False(t, f.CanTransition(entity.LeaveRejected, entity.LeaveApproved))
}

func TestJobStatus_Publicacion(t *testing.T) {
	f := workflow.JobStatus
	assert.Equal(t, entity.JobStatusDraft, f.Initial())
	assert.True(t, f.CanTransition(entity.JobStatusDraft, entity.JobStatusOpen))
	assert.True(t, f.CanTransition(entity.JobStatusOpen, entity.JobStatusFilled))
	assert.False(t, f.CanTransition(entity.JobStatusClosed, entity.JobStatusOpen))
}

func TestPayrollStatus_NoSeSaltaHaciaAtras(t *testing.T) {
	f := workflow.PayrollStatus
	assert.True(t, f.CanTransition(entity.PayrollDraft, entity.PayrollPaid))
	assert.False(t, f.CanTransition(entity.PayrollPaid, entity.PayrollProcessed))
}

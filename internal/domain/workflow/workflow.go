// Package workflow define los flujos de estado ordenados (pipeline de leads,
// tickets, vacantes, postulaciones, ausencias y nómina) y valida las transiciones.
//
// Regla general: una transición from → to es válida si from no es terminal y
// rank(to) > rank(from), o si ambos comparten rango y son distintos (movimiento
// lateral, p. ej. ticket in_progress ⇄ waiting). Repetir el mismo estado no es válido.
package workflow

import (
	"fmt"

	"github.com/jhoicas/people360/internal/domain"
	"github.com/jhoicas/people360/internal/domain/entity"
)

// Flow enumeración ordenada de estados.
type Flow struct {
	name     string
	initial  string
	order    []string
	rank     map[string]int
	terminal map[string]bool
}

func newFlow(name string, ranked [][]string, terminal ...string) *Flow {
	f := &Flow{name: name, rank: map[string]int{}, terminal: map[string]bool{}}
	for r, group := range ranked {
		for _, s := range group {
			f.rank[s] = r
			f.order = append(f.order, s)
		}
	}
	f.initial = ranked[0][0]
	for _, s := range terminal {
		f.terminal[s] = true
	}
	return f
}

// Flujos del dominio.
var (
	LeadPipeline = newFlow(entity.EntityLead, [][]string{
		{entity.LeadStageNew},
		{entity.LeadStageQualified},
		{entity.LeadStageProposal},
		{entity.LeadStageNegotiation},
		{entity.LeadStageWon, entity.LeadStageLost},
	}, entity.LeadStageWon, entity.LeadStageLost)

	TicketStatus = newFlow(entity.EntityTicket, [][]string{
		{entity.TicketStatusOpen},
		{entity.TicketStatusInProgress, entity.TicketStatusWaiting},
		{entity.TicketStatusResolved},
		{entity.TicketStatusClosed},
	}, entity.TicketStatusClosed)

	ApplicationStatus = newFlow(entity.EntityApplication, [][]string{
		{entity.ApplicationApplied},
		{entity.ApplicationScreening},
		{entity.ApplicationInterviewing},
		{entity.ApplicationOffered},
		{entity.ApplicationHired, entity.ApplicationRejected},
	}, entity.ApplicationHired, entity.ApplicationRejected)

	JobStatus = newFlow(entity.EntityJob, [][]string{
		{entity.JobStatusDraft},
		{entity.JobStatusOpen},
		{entity.JobStatusClosed, entity.JobStatusFilled},
	}, entity.JobStatusClosed, entity.JobStatusFilled)

	LeaveStatus = newFlow(entity.EntityLeave, [][]string{
		{entity.LeavePending},
		{entity.LeaveApproved, entity.LeaveRejected, entity.LeaveCancelled},
	}, entity.LeaveApproved, entity.LeaveRejected, entity.LeaveCancelled)

	PayrollStatus = newFlow(entity.EntityPayroll, [][]string{
		{entity.PayrollDraft},
		{entity.PayrollProcessed},
		{entity.PayrollPaid},
	}, entity.PayrollPaid)
)

// Name tipo de entidad al que aplica el flujo.
func (f *Flow) Name() string { return f.name }

// Initial estado inicial.
func (f *Flow) Initial() string { return f.initial }

// States estados en orden.
func (f *Flow) States() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// IsValid el estado pertenece al flujo.
func (f *Flow) IsValid(status string) bool {
	_, ok := f.rank[status]
	return ok
}

// IsTerminal el estado no admite más transiciones.
func (f *Flow) IsTerminal(status string) bool {
	return f.terminal[status]
}

// Rank posición del estado en el orden (-1 si no existe).
func (f *Flow) Rank(status string) int {
	r, ok := f.rank[status]
	if !ok {
		return -1
	}
	return r
}

// CanTransition indica si from → to es legal.
func (f *Flow) CanTransition(from, to string) bool {
	rf, okFrom := f.rank[from]
	rt, okTo := f.rank[to]
	if !okFrom || !okTo || from == to || f.terminal[from] {
		return false
	}
	return rt >= rf
}

// Validate devuelve ErrInvalidInput si to no pertenece al flujo y
// ErrInvalidTransition si el movimiento no es legal.
func (f *Flow) Validate(from, to string) error {
	if !f.IsValid(to) {
		return fmt.Errorf("%w: estado %q desconocido para %s", domain.ErrInvalidInput, to, f.name)
	}
	if !f.CanTransition(from, to) {
		return fmt.Errorf("%w: %s %s → %s", domain.ErrInvalidTransition, f.name, from, to)
	}
	return nil
}

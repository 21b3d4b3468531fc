package crm

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/domain"
	"github.com/jhoicas/people360/internal/domain/entity"
)

func newLead(t *testing.T, f *fixture) *dto.LeadResponse {
	t.Helper()
	c := f.customer(t, "Globex", "ventas@globex.com")
	l, err := f.leads.Create(context.Background(), companyID, actorID, dto.CreateLeadRequest{
		Title: "Licencias 2027", CustomerID: c.ID, EstimatedValue: decimal.NewFromInt(12000), Probability: 25,
	})
	require.NoError(t, err)
	return l
}

func TestLead_CreateEnEtapaInicial(t *testing.T) {
	f := newFixture(t)
	l := newLead(t, f)

	assert.Equal(t, entity.LeadStageNew, l.Stage)
	assert.Equal(t, "Initial Contact", l.StageLabel)
	assert.Equal(t, "3000", l.WeightedValue.String())
	require.NotNil(t, l.OwnerID)
	assert.Equal(t, actorID, *l.OwnerID, "el dueño por defecto es quien la crea")
}

func TestLead_CreateValidaClienteYValor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.leads.Create(ctx, companyID, actorID, dto.CreateLeadRequest{
		Title: "X", CustomerID: "d0000000-0000-4000-8000-000000000001",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	c := f.customer(t, "Globex", "ventas@globex.com")
	_, err = f.leads.Create(ctx, companyID, actorID, dto.CreateLeadRequest{
		Title: "X", CustomerID: c.ID, EstimatedValue: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLead_ChangeStage_AuditaYRegistraActividad(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	l := newLead(t, f)
	txBefore := f.store.TxCalls

	moved, err := f.leads.ChangeStage(ctx, companyID, actorID, l.ID, dto.LeadStageRequest{Stage: entity.LeadStageQualified, Note: "presupuesto ok"})
	require.NoError(t, err)
	assert.Equal(t, entity.LeadStageQualified, moved.Stage)
	assert.Equal(t, txBefore+1, f.store.TxCalls)

	history, err := f.leads.History(ctx, companyID, l.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, entity.LeadStageNew, history[0].FromStatus)
	assert.Equal(t, entity.LeadStageQualified, history[0].ToStatus)
	assert.Equal(t, actorID, history[0].ChangedBy)
	assert.Equal(t, "presupuesto ok", history[0].Note)

	acts, err := f.leads.Activities(ctx, companyID, l.ID)
	require.NoError(t, err)
	require.Len(t, acts, 1)
	assert.Equal(t, entity.ActivityStatusChange, acts[0].Type)
	assert.Equal(t, "Status changed from new to qualified", acts[0].Subject)
}

func TestLead_ChangeStage_RetrocesoYDesconocido(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	l := newLead(t, f)
	_, err := f.leads.ChangeStage(ctx, companyID, actorID, l.ID, dto.LeadStageRequest{Stage: entity.LeadStageProposal})
	require.NoError(t, err)

	_, err = f.leads.ChangeStage(ctx, companyID, actorID, l.ID, dto.LeadStageRequest{Stage: entity.LeadStageQualified})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.leads.ChangeStage(ctx, companyID, actorID, l.ID, dto.LeadStageRequest{Stage: "lunar"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := f.leads.GetByID(ctx, companyID, l.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.LeadStageProposal, got.Stage, "un rechazo no mueve la etapa")
	assert.Len(t, f.store.Transitions(), 1)
	assert.Len(t, f.store.Activities(), 1)
}

func TestLead_WonCierraConProbabilidadTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	l := newLead(t, f)

	won, err := f.leads.ChangeStage(ctx, companyID, actorID, l.ID, dto.LeadStageRequest{Stage: entity.LeadStageWon})
	require.NoError(t, err)
	assert.Equal(t, 100, won.Probability)
	assert.Equal(t, "2026-06-03", won.ActualCloseDate)
	assert.Equal(t, "Closed Won", won.StageLabel)

	_, err = f.leads.ChangeStage(ctx, companyID, actorID, l.ID, dto.LeadStageRequest{Stage: entity.LeadStageLost})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "won es terminal")
}

func TestLead_UpdateNoMueveLaEtapa(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	l := newLead(t, f)

	upd, err := f.leads.Update(ctx, companyID, l.ID, dto.UpdateLeadRequest{
		Title: ptr("Licencias 2027 ampliado"), Probability: ptr(60),
	})
	require.NoError(t, err)
	assert.Equal(t, "Licencias 2027 ampliado", upd.Title)
	assert.Equal(t, 60, upd.Probability)
	assert.Equal(t, entity.LeadStageNew, upd.Stage)
	assert.Empty(t, f.store.Transitions())
}

func TestLead_AddActivity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	l := newLead(t, f)

	a, err := f.leads.AddActivity(ctx, companyID, actorID, l.ID, dto.CreateLeadActivityRequest{
		Type: entity.ActivityCall, Subject: "Llamada de descubrimiento", FollowUpDate: "2026-06-10",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-06-10", a.FollowUpDate)
	assert.Equal(t, actorID, a.CreatedBy)

	_, err = f.leads.AddActivity(ctx, companyID, actorID, "d0000000-0000-4000-8000-000000000001", dto.CreateLeadActivityRequest{
		Type: entity.ActivityNote, Subject: "x",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLead_OwnerDeOtraEmpresaYValorFueraDeRango(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.customer(t, "Globex", "ventas@globex.com")
	foreign := f.foreignUser(t)

	_, err := f.leads.Create(ctx, companyID, actorID, dto.CreateLeadRequest{Title: "X", CustomerID: c.ID, OwnerID: foreign})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.leads.Create(ctx, companyID, actorID, dto.CreateLeadRequest{
		Title: "X", CustomerID: c.ID, EstimatedValue: decimal.New(1, 12),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	l, err := f.leads.Create(ctx, companyID, actorID, dto.CreateLeadRequest{Title: "X", CustomerID: c.ID})
	require.NoError(t, err)
	_, err = f.leads.Update(ctx, companyID, l.ID, dto.UpdateLeadRequest{OwnerID: ptr(foreign)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLead_DeleteBorraActividadesYConservaHistorial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	l := newLead(t, f)
	_, err := f.leads.ChangeStage(ctx, companyID, actorID, l.ID, dto.LeadStageRequest{Stage: entity.LeadStageQualified})
	require.NoError(t, err)

	require.NoError(t, f.leads.Delete(ctx, companyID, l.ID))
	_, err = f.leads.GetByID(ctx, companyID, l.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.leads.Activities(ctx, companyID, l.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, f.store.Transitions(), 1, "la auditoría no se borra")

	assert.ErrorIs(t, f.leads.Delete(ctx, "c0000000-0000-4000-8000-000000000099", l.ID), domain.ErrNotFound)
}

package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/application/usecase"
	"github.com/jhoicas/people360/internal/domain"
	"github.com/jhoicas/people360/internal/domain/entity"
	"github.com/jhoicas/people360/internal/testutil"
)

const companyID = "c0000000-0000-4000-8000-000000000001"

func seedUser(t *testing.T, store *testutil.Store, id, username, role string, created time.Time) {
	t.Helper()
	require.NoError(t, store.Repos().Users.Create(context.Background(), &entity.User{
		ID: id, CompanyID: companyID, Username: username, Email: username + "@acme.com",
		Role: role, IsActive: true, CreatedAt: created, UpdatedAt: created,
	}))
}

func ptr[T any](v T) *T { return &v }

// ─── Usuarios ─────────────────────────────────────────────────────────────────

func TestUserUseCase_ListFiltraYPagina(t *testing.T) {
	store := testutil.NewStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seedUser(t, store, "u1", "admin", entity.RoleAdmin, base)
	seedUser(t, store, "u2", "ana", entity.RoleHRManager, base.Add(time.Hour))
	seedUser(t, store, "u3", "luis", entity.RoleEmployee, base.Add(2*time.Hour))
	uc := usecase.NewUserUseCase(store.Repos().Users)

	page, err := uc.List(context.Background(), companyID, dto.UserListQuery{PageQuery: dto.PageQuery{Page: 1, PerPage: 2}})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.Pages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "luis", page.Items[0].Username, "más reciente primero")
	assert.True(t, page.HasNext)

	page, err = uc.List(context.Background(), companyID, dto.UserListQuery{Role: entity.RoleHRManager})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "ana", page.Items[0].Username)

	_, err = uc.List(context.Background(), companyID, dto.UserListQuery{IsActive: "quizá"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserUseCase_UpdateRolYEstado(t *testing.T) {
	store := testutil.NewStore()
	now := time.Now()
	seedUser(t, store, "u1", "admin", entity.RoleAdmin, now)
	seedUser(t, store, "u2", "ana", entity.RoleEmployee, now)
	uc := usecase.NewUserUseCase(store.Repos().Users)
	ctx := context.Background()

	res, err := uc.Update(ctx, companyID, "u1", "u2", dto.UpdateUserRequest{Role: ptr(entity.RoleHRManager), IsActive: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleHRManager, res.Role)
	assert.False(t, res.IsActive)

	got, err := uc.GetByID(ctx, companyID, "u2")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleHRManager, got.Role)
}

func TestUserUseCase_AdminNoSeDegradaNiSeBorra(t *testing.T) {
	store := testutil.NewStore()
	seedUser(t, store, "u1", "admin", entity.RoleAdmin, time.Now())
	uc := usecase.NewUserUseCase(store.Repos().Users)
	ctx := context.Background()

	_, err := uc.Update(ctx, companyID, "u1", "u1", dto.UpdateUserRequest{Role: ptr(entity.RoleEmployee)})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Update(ctx, companyID, "u1", "u1", dto.UpdateUserRequest{IsActive: ptr(false)})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, uc.Delete(ctx, companyID, "u1", "u1"), domain.ErrForbidden)

	_, err = uc.Update(ctx, companyID, "u1", "u1", dto.UpdateUserRequest{Phone: ptr("3001234567")})
	assert.NoError(t, err, "otros campos propios sí se pueden cambiar")
}

func TestUserUseCase_OtraEmpresaNoExiste(t *testing.T) {
	store := testutil.NewStore()
	seedUser(t, store, "u2", "ana", entity.RoleEmployee, time.Now())
	uc := usecase.NewUserUseCase(store.Repos().Users)

	_, err := uc.GetByID(context.Background(), "otra-empresa", "u2")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.ErrorIs(t, uc.Delete(context.Background(), "otra-empresa", "u1", "u2"), domain.ErrUserNotFound)
}

// ─── IA ───────────────────────────────────────────────────────────────────────

func TestAIUseCase_SuggestTriage(t *testing.T) {
	want := &dto.TicketTriageDTO{SuggestedCategory: "billing", SuggestedPriority: entity.PriorityHigh, Confidence: 0.8}
	uc := usecase.NewAIUseCase(&testutil.LLM{Result: want})

	got, err := uc.SuggestTriage(context.Background(), dto.TicketTriageRequest{Subject: "Cobro doble", Description: "Me cobraron dos veces"})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestAIUseCase_SinServicioOEntradaVacia(t *testing.T) {
	_, err := usecase.NewAIUseCase(nil).SuggestTriage(context.Background(), dto.TicketTriageRequest{Subject: "a", Description: "b"})
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)

	_, err = usecase.NewAIUseCase(&testutil.LLM{}).SuggestTriage(context.Background(), dto.TicketTriageRequest{Subject: " "})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrServiceUnavailable))
}

func TestAIUseCase_ContextoCanceladoEsNoDisponible(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	uc := usecase.NewAIUseCase(&testutil.LLM{Delay: time.Second})

	_, err := uc.SuggestTriage(ctx, dto.TicketTriageRequest{Subject: "a", Description: "b"})
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
}

package hr

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/people360/internal/application/audit"
	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/domain/entity"
	"github.com/jhoicas/people360/internal/testutil"
)

const (
	companyID = "c0000000-0000-4000-8000-000000000001"
	actorID   = "a0000000-0000-4000-8000-000000000001"
)

// 2026-06-03 es miércoles.
var clock = time.Date(2026, 6, 3, 8, 30, 0, 0, time.UTC)

type fixture struct {
	store      *testutil.Store
	cache      *testutil.Cache
	notifier   *testutil.Notifier
	employees  *EmployeeUseCase
	jobs       *JobUseCase
	leaves     *LeaveUseCase
	attendance *AttendanceUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := testutil.NewStore()
	cache := testutil.NewCache()
	notifier := &testutil.Notifier{}
	repos := store.Repos()
	tx := testutil.TxRunner{Store: store}
	recorder := audit.NewRecorder(cache)
	now := func() time.Time { return clock }

	f := &fixture{
		store:      store,
		cache:      cache,
		notifier:   notifier,
		employees:  NewEmployeeUseCase(repos.Employees, repos.Users, tx, recorder),
		jobs:       NewJobUseCase(repos, tx, recorder, notifier),
		leaves:     NewLeaveUseCase(repos, tx, recorder, notifier),
		attendance: NewAttendanceUseCase(repos),
	}
	f.employees.now = now
	f.jobs.now = now
	f.leaves.now = now
	f.attendance.now = now

	require.NoError(t, repos.Companies.Create(context.Background(), &entity.Company{ID: companyID, Name: "Acme"}))
	require.NoError(t, repos.Users.Create(context.Background(), &entity.User{
		ID: actorID, CompanyID: companyID, Username: "hr", Email: "hr@x.com", Role: entity.RoleHRManager, IsActive: true,
	}))
	return f
}

func (f *fixture) employee(t *testing.T, first, email, dept string) *dto.EmployeeResponse {
	t.Helper()
	e, err := f.employees.Create(context.Background(), companyID, actorID, dto.CreateEmployeeRequest{
		FirstName: first, LastName: "Doe", Email: email, Department: dept,
	})
	require.NoError(t, err)
	return e
}

func ptr[T any](v T) *T { return &v }

// Package testutil repositorios en memoria y TxRunner para tests de use cases y HTTP.
// Replican las restricciones del esquema (unicidad, FKs con RESTRICT) que el código de aplicación observa.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/people360/internal/domain"
	"github.com/jhoicas/people360/internal/domain/entity"
	"github.com/jhoicas/people360/internal/domain/repository"
)

// Store estado compartido de todos los repositorios en memoria.
type Store struct {
	mu           sync.Mutex
	companies    map[string]*entity.Company
	users        map[string]*entity.User
	employees    map[string]*entity.Employee
	jobs         map[string]*entity.Job
	applications map[string]*entity.JobApplication
	customers    map[string]*entity.Customer
	leads        map[string]*entity.Lead
	activities   []*entity.LeadActivity
	tickets      map[string]*entity.Ticket
	responses    []*entity.TicketResponse
	leaves       map[string]*entity.LeaveRequest
	attendance   map[string]*entity.Attendance
	payroll      map[string]*entity.PayrollRecord
	transitions  []*entity.StatusTransition

	// TxCalls número de veces que se ejecutó TxRunner.Run.
	TxCalls int
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		companies:    map[string]*entity.Company{},
		users:        map[string]*entity.User{},
		employees:    map[string]*entity.Employee{},
		jobs:         map[string]*entity.Job{},
		applications: map[string]*entity.JobApplication{},
		customers:    map[string]*entity.Customer{},
		leads:        map[string]*entity.Lead{},
		tickets:      map[string]*entity.Ticket{},
		leaves:       map[string]*entity.LeaveRequest{},
		attendance:   map[string]*entity.Attendance{},
		payroll:      map[string]*entity.PayrollRecord{},
	}
}

// Repos todos los repositorios sobre este store.
func (s *Store) Repos() repository.Repos {
	return repository.Repos{
		Companies:       &companyRepo{s},
		Users:           &userRepo{s},
		Employees:       &employeeRepo{s},
		Jobs:            &jobRepo{s},
		Applications:    &applicationRepo{s},
		Customers:       &customerRepo{s},
		Leads:           &leadRepo{s},
		LeadActivities:  &activityRepo{s},
		Tickets:         &ticketRepo{s},
		TicketResponses: &responseRepo{s},
		Leaves:          &leaveRepo{s},
		Attendance:      &attendanceRepo{s},
		Payroll:         &payrollRepo{s},
		Transitions:     &transitionRepo{s},
	}
}

// Analytics repositorio de analítica calculado sobre el store.
func (s *Store) Analytics() repository.AnalyticsRepository {
	return &analyticsRepo{s}
}

// TxRunner ejecuta fn con los repos del store. No hay rollback: los tests
// que lo necesitan verifican el estado tras el error.
type TxRunner struct {
	Store *Store
}

// Run implementa ports.TxRunner.
func (t TxRunner) Run(_ context.Context, fn func(repos repository.Repos) error) error {
	t.Store.mu.Lock()
	t.Store.TxCalls++
	t.Store.mu.Unlock()
	return fn(t.Store.Repos())
}

// ── helpers ───────────────────────────────────────────────────────────────────

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func paginate[T any](list []T, p repository.Page) []T {
	if p.Offset >= len(list) {
		return nil
	}
	list = list[p.Offset:]
	if p.Limit > 0 && p.Limit < len(list) {
		list = list[:p.Limit]
	}
	return list
}

func contains(haystack, q string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(q))
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

// newestFirst orden created_at DESC, id.
func newestFirst[T any](list []*T, created func(*T) time.Time, id func(*T) string) {
	sort.SliceStable(list, func(i, j int) bool {
		ci, cj := created(list[i]), created(list[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return id(list[i]) < id(list[j])
	})
}

// ── companies ─────────────────────────────────────────────────────────────────

type companyRepo struct{ s *Store }

func (r *companyRepo) Create(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.companies[c.ID] = clone(c)
	return nil
}

func (r *companyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return clone(r.s.companies[id]), nil
}

// ── users ─────────────────────────────────────────────────────────────────────

type userRepo struct{ s *Store }

func (r *userRepo) conflict(u *entity.User) error {
	for _, o := range r.s.users {
		if o.ID == u.ID {
			continue
		}
		if strings.EqualFold(o.Username, u.Username) {
			return domain.ErrUsernameAlreadyExists
		}
		if strings.EqualFold(o.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	return nil
}

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.conflict(u); err != nil {
		return err
	}
	r.s.users[u.ID] = clone(u)
	return nil
}

func (r *userRepo) GetByID(_ context.Context, companyID, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u := r.s.users[id]; u != nil && u.CompanyID == companyID {
		return clone(u), nil
	}
	return nil, nil
}

func (r *userRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return clone(r.s.users[id]), nil
}

func (r *userRepo) find(match func(*entity.User) bool) *entity.User {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if match(u) {
			return clone(u)
		}
	}
	return nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

func (r *userRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return strings.EqualFold(u.Username, username) }), nil
}

func (r *userRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old := r.s.users[u.ID]
	if old == nil || old.CompanyID != u.CompanyID {
		return domain.ErrUserNotFound
	}
	if err := r.conflict(u); err != nil {
		return err
	}
	cp := clone(u)
	cp.LastLoginAt = old.LastLoginAt
	cp.CreatedAt = old.CreatedAt
	r.s.users[u.ID] = cp
	return nil
}

func (r *userRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u := r.s.users[id]; u != nil {
		t := at
		u.LastLoginAt = &t
	}
	return nil
}

func (r *userRepo) List(_ context.Context, companyID string, f repository.UserFilter) ([]*entity.User, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.User
	for _, u := range r.s.users {
		if u.CompanyID != companyID || (f.Role != "" && u.Role != f.Role) ||
			(f.IsActive != nil && u.IsActive != *f.IsActive) {
			continue
		}
		if f.Query != "" && !contains(u.Username+" "+u.Email+" "+u.FirstName+" "+u.LastName, f.Query) {
			continue
		}
		list = append(list, clone(u))
	}
	newestFirst(list, func(u *entity.User) time.Time { return u.CreatedAt }, func(u *entity.User) string { return u.ID })
	return paginate(list, f.Page), len(list), nil
}

func (r *userRepo) Delete(_ context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u := r.s.users[id]; u == nil || u.CompanyID != companyID {
		return domain.ErrUserNotFound
	}
	delete(r.s.users, id)
	return nil
}

// ── employees ─────────────────────────────────────────────────────────────────

type employeeRepo struct{ s *Store }

func (r *employeeRepo) duplicate(e *entity.Employee) bool {
	for _, o := range r.s.employees {
		if o.ID != e.ID && o.CompanyID == e.CompanyID &&
			(strings.EqualFold(o.Email, e.Email) || o.Code == e.Code) {
			return true
		}
	}
	return false
}

func (r *employeeRepo) Create(_ context.Context, e *entity.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.duplicate(e) {
		return domain.ErrDuplicate
	}
	r.s.employees[e.ID] = clone(e)
	return nil
}

func (r *employeeRepo) GetByID(_ context.Context, companyID, id string) (*entity.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if e := r.s.employees[id]; e != nil && e.CompanyID == companyID {
		return clone(e), nil
	}
	return nil, nil
}

func (r *employeeRepo) GetByEmail(_ context.Context, companyID, email string) (*entity.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.employees {
		if e.CompanyID == companyID && strings.EqualFold(e.Email, email) {
			return clone(e), nil
		}
	}
	return nil, nil
}

func (r *employeeRepo) GetByUserID(_ context.Context, companyID, userID string) (*entity.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.employees {
		if e.CompanyID == companyID && e.UserID != nil && *e.UserID == userID {
			return clone(e), nil
		}
	}
	return nil, nil
}

func (r *employeeRepo) Update(_ context.Context, e *entity.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if old := r.s.employees[e.ID]; old == nil || old.CompanyID != e.CompanyID {
		return domain.ErrNotFound
	}
	if r.duplicate(e) {
		return domain.ErrDuplicate
	}
	r.s.employees[e.ID] = clone(e)
	return nil
}

func (r *employeeRepo) Delete(_ context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if e := r.s.employees[id]; e == nil || e.CompanyID != companyID {
		return domain.ErrNotFound
	}
	for _, p := range r.s.payroll {
		if p.EmployeeID == id {
			return domain.ErrConflict
		}
	}
	for _, e := range r.s.employees {
		if e.ManagerID != nil && *e.ManagerID == id {
			e.ManagerID = nil
		}
	}
	delete(r.s.employees, id)
	return nil
}

func (r *employeeRepo) filter(companyID string, keep func(*entity.Employee) bool) []*entity.Employee {
	var list []*entity.Employee
	for _, e := range r.s.employees {
		if e.CompanyID == companyID && keep(e) {
			list = append(list, clone(e))
		}
	}
	newestFirst(list, func(e *entity.Employee) time.Time { return e.CreatedAt }, func(e *entity.Employee) string { return e.ID })
	return list
}

func (r *employeeRepo) List(_ context.Context, companyID string, f repository.EmployeeFilter) ([]*entity.Employee, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := r.filter(companyID, func(e *entity.Employee) bool {
		if f.Department != "" && !strings.EqualFold(e.Department, f.Department) {
			return false
		}
		if f.Status != "" && e.Status != f.Status {
			return false
		}
		return f.Query == "" || contains(e.FirstName+" "+e.LastName+" "+e.Email+" "+e.Code, f.Query)
	})
	return paginate(list, f.Page), len(list), nil
}

func (r *employeeRepo) ListReports(_ context.Context, companyID, managerID string) ([]*entity.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.filter(companyID, func(e *entity.Employee) bool {
		return e.ManagerID != nil && *e.ManagerID == managerID
	}), nil
}

func (r *employeeRepo) ListActive(_ context.Context, companyID string) ([]*entity.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.filter(companyID, func(e *entity.Employee) bool { return e.IsActive() }), nil
}

// ── jobs / applications ───────────────────────────────────────────────────────

type jobRepo struct{ s *Store }

func (r *jobRepo) Create(_ context.Context, j *entity.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.jobs[j.ID] = clone(j)
	return nil
}

func (r *jobRepo) GetByID(_ context.Context, companyID, id string) (*entity.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if j := r.s.jobs[id]; j != nil && j.CompanyID == companyID {
		return clone(j), nil
	}
	return nil, nil
}

func (r *jobRepo) Update(_ context.Context, j *entity.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if old := r.s.jobs[j.ID]; old == nil || old.CompanyID != j.CompanyID {
		return domain.ErrNotFound
	}
	r.s.jobs[j.ID] = clone(j)
	return nil
}

func (r *jobRepo) Delete(_ context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if j := r.s.jobs[id]; j == nil || j.CompanyID != companyID {
		return domain.ErrNotFound
	}
	for _, a := range r.s.applications {
		if a.JobID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.jobs, id)
	return nil
}

func (r *jobRepo) List(_ context.Context, companyID string, f repository.JobFilter) ([]*entity.Job, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Job
	for _, j := range r.s.jobs {
		if j.CompanyID != companyID || (f.Status != "" && j.Status != f.Status) ||
			(f.Department != "" && !strings.EqualFold(j.Department, f.Department)) ||
			(f.Query != "" && !contains(j.Title+" "+j.Code, f.Query)) {
			continue
		}
		list = append(list, clone(j))
	}
	newestFirst(list, func(j *entity.Job) time.Time { return j.CreatedAt }, func(j *entity.Job) string { return j.ID })
	return paginate(list, f.Page), len(list), nil
}

type applicationRepo struct{ s *Store }

func (r *applicationRepo) Create(_ context.Context, a *entity.JobApplication) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if j := r.s.jobs[a.JobID]; j == nil || j.CompanyID != a.CompanyID {
		return domain.ErrNotFound
	}
	for _, o := range r.s.applications {
		if o.JobID == a.JobID && strings.EqualFold(o.Email, a.Email) {
			return domain.ErrDuplicate
		}
	}
	r.s.applications[a.ID] = clone(a)
	return nil
}

func (r *applicationRepo) GetByID(_ context.Context, companyID, id string) (*entity.JobApplication, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a := r.s.applications[id]; a != nil && a.CompanyID == companyID {
		return clone(a), nil
	}
	return nil, nil
}

func (r *applicationRepo) GetByJobAndEmail(_ context.Context, companyID, jobID, email string) (*entity.JobApplication, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.applications {
		if a.CompanyID == companyID && a.JobID == jobID && strings.EqualFold(a.Email, email) {
			return clone(a), nil
		}
	}
	return nil, nil
}

func (r *applicationRepo) Update(_ context.Context, a *entity.JobApplication) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if old := r.s.applications[a.ID]; old == nil || old.CompanyID != a.CompanyID {
		return domain.ErrNotFound
	}
	r.s.applications[a.ID] = clone(a)
	return nil
}

func (r *applicationRepo) ListByJob(_ context.Context, companyID, jobID string, p repository.Page) ([]*entity.JobApplication, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.JobApplication
	for _, a := range r.s.applications {
		if a.CompanyID == companyID && a.JobID == jobID {
			list = append(list, clone(a))
		}
	}
	newestFirst(list, func(a *entity.JobApplication) time.Time { return a.CreatedAt },
		func(a *entity.JobApplication) string { return a.ID })
	return paginate(list, p), len(list), nil
}

// ── customers ─────────────────────────────────────────────────────────────────

type customerRepo struct{ s *Store }

func (r *customerRepo) duplicate(c *entity.Customer) bool {
	for _, o := range r.s.customers {
		if o.ID != c.ID && o.CompanyID == c.CompanyID && (strings.EqualFold(o.Email, c.Email) || o.Code == c.Code) {
			return true
		}
	}
	return false
}

func (r *customerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.duplicate(c) {
		return domain.ErrDuplicate
	}
	r.s.customers[c.ID] = clone(c)
	return nil
}

func (r *customerRepo) GetByID(_ context.Context, companyID, id string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c := r.s.customers[id]; c != nil && c.CompanyID == companyID {
		return clone(c), nil
	}
	return nil, nil
}

func (r *customerRepo) GetByEmail(_ context.Context, companyID, email string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.customers {
		if c.CompanyID == companyID && strings.EqualFold(c.Email, email) {
			return clone(c), nil
		}
	}
	return nil, nil
}

func (r *customerRepo) Update(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if old := r.s.customers[c.ID]; old == nil || old.CompanyID != c.CompanyID {
		return domain.ErrNotFound
	}
	if r.duplicate(c) {
		return domain.ErrDuplicate
	}
	r.s.customers[c.ID] = clone(c)
	return nil
}

// Delete aplica la misma restricción que las FKs ON DELETE RESTRICT.
func (r *customerRepo) Delete(_ context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c := r.s.customers[id]; c == nil || c.CompanyID != companyID {
		return domain.ErrNotFound
	}
	if t, l := r.dependents(id); t+l > 0 {
		return domain.ErrCustomerHasDependents
	}
	delete(r.s.customers, id)
	return nil
}

func (r *customerRepo) dependents(id string) (tickets, leads int) {
	for _, t := range r.s.tickets {
		if t.CustomerID == id {
			tickets++
		}
	}
	for _, l := range r.s.leads {
		if l.CustomerID == id {
			leads++
		}
	}
	return tickets, leads
}

func (r *customerRepo) List(_ context.Context, companyID string, f repository.CustomerFilter) ([]*entity.Customer, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Customer
	for _, c := range r.s.customers {
		if c.CompanyID != companyID || (f.Status != "" && c.Status != f.Status) ||
			(f.CustomerType != "" && c.CustomerType != f.CustomerType) ||
			(f.Query != "" && !contains(c.CompanyName+" "+c.FirstName+" "+c.LastName+" "+c.Email+" "+c.Code, f.Query)) {
			continue
		}
		list = append(list, clone(c))
	}
	newestFirst(list, func(c *entity.Customer) time.Time { return c.CreatedAt }, func(c *entity.Customer) string { return c.ID })
	return paginate(list, f.Page), len(list), nil
}

func (r *customerRepo) CountDependents(_ context.Context, _, id string) (int, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, l := r.dependents(id)
	return t, l, nil
}

// ── leads ─────────────────────────────────────────────────────────────────────

type leadRepo struct{ s *Store }

func (r *leadRepo) Create(_ context.Context, l *entity.Lead) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c := r.s.customers[l.CustomerID]; c == nil || c.CompanyID != l.CompanyID {
		return domain.ErrNotFound
	}
	r.s.leads[l.ID] = clone(l)
	return nil
}

func (r *leadRepo) GetByID(_ context.Context, companyID, id string) (*entity.Lead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l := r.s.leads[id]; l != nil && l.CompanyID == companyID {
		return clone(l), nil
	}
	return nil, nil
}

func (r *leadRepo) Update(_ context.Context, l *entity.Lead) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if old := r.s.leads[l.ID]; old == nil || old.CompanyID != l.CompanyID {
		return domain.ErrNotFound
	}
	r.s.leads[l.ID] = clone(l)
	return nil
}

func (r *leadRepo) Delete(_ context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l := r.s.leads[id]; l == nil || l.CompanyID != companyID {
		return domain.ErrNotFound
	}
	kept := r.s.activities[:0]
	for _, a := range r.s.activities {
		if a.LeadID != id {
			kept = append(kept, a)
		}
	}
	r.s.activities = kept
	delete(r.s.leads, id)
	return nil
}

func (r *leadRepo) List(_ context.Context, companyID string, f repository.LeadFilter) ([]*entity.Lead, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Lead
	for _, l := range r.s.leads {
		if l.CompanyID != companyID || (f.Stage != "" && l.Stage != f.Stage) ||
			(f.Priority != "" && l.Priority != f.Priority) || (f.CustomerID != "" && l.CustomerID != f.CustomerID) ||
			(f.OwnerID != "" && (l.OwnerID == nil || *l.OwnerID != f.OwnerID)) ||
			(f.Query != "" && !contains(l.Title+" "+l.Code, f.Query)) {
			continue
		}
		list = append(list, clone(l))
	}
	newestFirst(list, func(l *entity.Lead) time.Time { return l.CreatedAt }, func(l *entity.Lead) string { return l.ID })
	return paginate(list, f.Page), len(list), nil
}

type activityRepo struct{ s *Store }

func (r *activityRepo) Create(_ context.Context, a *entity.LeadActivity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.activities = append(r.s.activities, clone(a))
	return nil
}

func (r *activityRepo) ListByLead(_ context.Context, companyID, leadID string) ([]*entity.LeadActivity, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.LeadActivity
	for _, a := range r.s.activities {
		if a.CompanyID == companyID && a.LeadID == leadID {
			list = append(list, clone(a))
		}
	}
	newestFirst(list, func(a *entity.LeadActivity) time.Time { return a.CreatedAt }, func(a *entity.LeadActivity) string { return a.ID })
	return list, nil
}

// ── tickets ───────────────────────────────────────────────────────────────────

type ticketRepo struct{ s *Store }

func (r *ticketRepo) Create(_ context.Context, t *entity.Ticket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c := r.s.customers[t.CustomerID]; c == nil || c.CompanyID != t.CompanyID {
		return domain.ErrNotFound
	}
	r.s.tickets[t.ID] = clone(t)
	return nil
}

func (r *ticketRepo) GetByID(_ context.Context, companyID, id string) (*entity.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t := r.s.tickets[id]; t != nil && t.CompanyID == companyID {
		return clone(t), nil
	}
	return nil, nil
}

func (r *ticketRepo) Update(_ context.Context, t *entity.Ticket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if old := r.s.tickets[t.ID]; old == nil || old.CompanyID != t.CompanyID {
		return domain.ErrNotFound
	}
	r.s.tickets[t.ID] = clone(t)
	return nil
}

func (r *ticketRepo) Delete(_ context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t := r.s.tickets[id]; t == nil || t.CompanyID != companyID {
		return domain.ErrNotFound
	}
	kept := r.s.responses[:0]
	for _, resp := range r.s.responses {
		if resp.TicketID != id {
			kept = append(kept, resp)
		}
	}
	r.s.responses = kept
	delete(r.s.tickets, id)
	return nil
}

func (r *ticketRepo) List(_ context.Context, companyID string, f repository.TicketFilter) ([]*entity.Ticket, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Ticket
	for _, t := range r.s.tickets {
		if t.CompanyID != companyID || (f.Status != "" && t.Status != f.Status) ||
			(f.Priority != "" && t.Priority != f.Priority) || (f.CustomerID != "" && t.CustomerID != f.CustomerID) ||
			(f.AssignedTo != "" && (t.AssignedTo == nil || *t.AssignedTo != f.AssignedTo)) ||
			(f.Query != "" && !contains(t.Subject+" "+t.Code, f.Query)) {
			continue
		}
		list = append(list, clone(t))
	}
	newestFirst(list, func(t *entity.Ticket) time.Time { return t.CreatedAt }, func(t *entity.Ticket) string { return t.ID })
	return paginate(list, f.Page), len(list), nil
}

type responseRepo struct{ s *Store }

func (r *responseRepo) Create(_ context.Context, tr *entity.TicketResponse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.responses = append(r.s.responses, clone(tr))
	return nil
}

func (r *responseRepo) ListByTicket(_ context.Context, companyID, ticketID string, includeInternal bool) ([]*entity.TicketResponse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.TicketResponse
	for _, tr := range r.s.responses {
		if tr.CompanyID == companyID && tr.TicketID == ticketID && (includeInternal || !tr.IsInternal) {
			list = append(list, clone(tr))
		}
	}
	return list, nil
}

// ── leaves / attendance ───────────────────────────────────────────────────────

type leaveRepo struct{ s *Store }

func (r *leaveRepo) Create(_ context.Context, l *entity.LeaveRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if e := r.s.employees[l.EmployeeID]; e == nil || e.CompanyID != l.CompanyID {
		return domain.ErrNotFound
	}
	r.s.leaves[l.ID] = clone(l)
	return nil
}

func (r *leaveRepo) GetByID(_ context.Context, companyID, id string) (*entity.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l := r.s.leaves[id]; l != nil && l.CompanyID == companyID {
		return clone(l), nil
	}
	return nil, nil
}

func (r *leaveRepo) Update(_ context.Context, l *entity.LeaveRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if old := r.s.leaves[l.ID]; old == nil || old.CompanyID != l.CompanyID {
		return domain.ErrNotFound
	}
	r.s.leaves[l.ID] = clone(l)
	return nil
}

func (r *leaveRepo) List(_ context.Context, companyID string, f repository.LeaveFilter) ([]*entity.LeaveRequest, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.LeaveRequest
	for _, l := range r.s.leaves {
		if l.CompanyID != companyID || (f.EmployeeID != "" && l.EmployeeID != f.EmployeeID) ||
			(f.Status != "" && l.Status != f.Status) || (f.Type != "" && l.Type != f.Type) {
			continue
		}
		list = append(list, clone(l))
	}
	newestFirst(list, func(l *entity.LeaveRequest) time.Time { return l.CreatedAt }, func(l *entity.LeaveRequest) string { return l.ID })
	return paginate(list, f.Page), len(list), nil
}

func (r *leaveRepo) HasOverlap(_ context.Context, companyID, employeeID string, start, end time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.leaves {
		if l.CompanyID != companyID || l.EmployeeID != employeeID ||
			(l.Status != entity.LeavePending && l.Status != entity.LeaveApproved) {
			continue
		}
		if !l.StartDate.After(end) && !l.EndDate.Before(start) {
			return true, nil
		}
	}
	return false, nil
}

func (r *leaveRepo) ApprovedDaysByType(_ context.Context, companyID, employeeID string, year int) (map[string]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[string]int{}
	for _, l := range r.s.leaves {
		if l.CompanyID == companyID && l.EmployeeID == employeeID && l.Status == entity.LeaveApproved &&
			l.StartDate.Year() == year {
			out[l.Type] += l.Days
		}
	}
	return out, nil
}

// LockEmployee no hace nada: el store ya serializa con su mutex.
func (r *leaveRepo) LockEmployee(context.Context, string, string) error { return nil }

type attendanceRepo struct{ s *Store }

func (r *attendanceRepo) Create(_ context.Context, a *entity.Attendance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.attendance {
		if o.EmployeeID == a.EmployeeID && sameDay(o.Date, a.Date) {
			return domain.ErrDuplicate
		}
	}
	r.s.attendance[a.ID] = clone(a)
	return nil
}

func (r *attendanceRepo) Update(_ context.Context, a *entity.Attendance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if old := r.s.attendance[a.ID]; old == nil || old.CompanyID != a.CompanyID {
		return domain.ErrNotFound
	}
	r.s.attendance[a.ID] = clone(a)
	return nil
}

func (r *attendanceRepo) GetByEmployeeAndDate(_ context.Context, companyID, employeeID string, date time.Time) (*entity.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.attendance {
		if a.CompanyID == companyID && a.EmployeeID == employeeID && sameDay(a.Date, date) {
			return clone(a), nil
		}
	}
	return nil, nil
}

func (r *attendanceRepo) ListByEmployee(_ context.Context, companyID, employeeID string, start, end time.Time) ([]*entity.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Attendance
	from, to := start.Format("2006-01-02"), end.Format("2006-01-02")
	for _, a := range r.s.attendance {
		d := a.Date.Format("2006-01-02")
		if a.CompanyID == companyID && a.EmployeeID == employeeID && d >= from && d <= to {
			list = append(list, clone(a))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	return list, nil
}

// ── payroll ───────────────────────────────────────────────────────────────────

type payrollRepo struct{ s *Store }

func (r *payrollRepo) Create(_ context.Context, p *entity.PayrollRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.payroll {
		if o.EmployeeID == p.EmployeeID && sameDay(o.PeriodStart, p.PeriodStart) && sameDay(o.PeriodEnd, p.PeriodEnd) {
			return domain.ErrDuplicate
		}
	}
	r.s.payroll[p.ID] = clone(p)
	return nil
}

func (r *payrollRepo) GetByID(_ context.Context, companyID, id string) (*entity.PayrollRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p := r.s.payroll[id]; p != nil && p.CompanyID == companyID {
		return clone(p), nil
	}
	return nil, nil
}

func (r *payrollRepo) GetByEmployeeAndPeriod(_ context.Context, companyID, employeeID string, start, end time.Time) (*entity.PayrollRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.payroll {
		if p.CompanyID == companyID && p.EmployeeID == employeeID && sameDay(p.PeriodStart, start) && sameDay(p.PeriodEnd, end) {
			return clone(p), nil
		}
	}
	return nil, nil
}

func (r *payrollRepo) Update(_ context.Context, p *entity.PayrollRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if old := r.s.payroll[p.ID]; old == nil || old.CompanyID != p.CompanyID {
		return domain.ErrNotFound
	}
	r.s.payroll[p.ID] = clone(p)
	return nil
}

func (r *payrollRepo) List(_ context.Context, companyID string, f repository.PayrollFilter) ([]*entity.PayrollRecord, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.PayrollRecord
	for _, p := range r.s.payroll {
		if p.CompanyID != companyID || (f.EmployeeID != "" && p.EmployeeID != f.EmployeeID) ||
			(f.Status != "" && p.Status != f.Status) || (f.PeriodStart != nil && !sameDay(p.PeriodStart, *f.PeriodStart)) {
			continue
		}
		list = append(list, clone(p))
	}
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].PeriodStart.Equal(list[j].PeriodStart) {
			return list[i].PeriodStart.After(list[j].PeriodStart)
		}
		return list[i].EmployeeID < list[j].EmployeeID
	})
	return paginate(list, f.Page), len(list), nil
}

// ── transitions ───────────────────────────────────────────────────────────────

type transitionRepo struct{ s *Store }

func (r *transitionRepo) Create(_ context.Context, t *entity.StatusTransition) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.transitions = append(r.s.transitions, clone(t))
	return nil
}

func (r *transitionRepo) ListByEntity(_ context.Context, companyID, entityType, entityID string) ([]*entity.StatusTransition, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.StatusTransition
	for _, t := range r.s.transitions {
		if t.CompanyID == companyID && t.EntityType == entityType && t.EntityID == entityID {
			list = append(list, clone(t))
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].ChangedAt.Before(list[j].ChangedAt) })
	return list, nil
}

func (r *transitionRepo) ListRecent(_ context.Context, companyID string, limit int) ([]*entity.StatusTransition, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.StatusTransition
	for i := len(r.s.transitions) - 1; i >= 0; i-- {
		if t := r.s.transitions[i]; t.CompanyID == companyID {
			list = append(list, clone(t))
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].ChangedAt.After(list[j].ChangedAt) })
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// Transitions copia de todas las filas de auditoría (para asserts).
func (s *Store) Transitions() []*entity.StatusTransition {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.StatusTransition, 0, len(s.transitions))
	for _, t := range s.transitions {
		out = append(out, clone(t))
	}
	return out
}

// Activities copia de todas las actividades de leads.
func (s *Store) Activities() []*entity.LeadActivity {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.LeadActivity, 0, len(s.activities))
	for _, a := range s.activities {
		out = append(out, clone(a))
	}
	return out
}

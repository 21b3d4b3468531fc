package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/people360/internal/application/ports"
	"github.com/jhoicas/people360/internal/domain/repository"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewRepos construye todos los repositorios sobre el mismo Querier (pool o tx).
func NewRepos(q Querier) repository.Repos {
	return repository.Repos{
		Companies:       NewCompanyRepository(q),
		Users:           NewUserRepository(q),
		Employees:       NewEmployeeRepository(q),
		Jobs:            NewJobRepository(q),
		Applications:    NewApplicationRepository(q),
		Customers:       NewCustomerRepository(q),
		Leads:           NewLeadRepository(q),
		LeadActivities:  NewLeadActivityRepository(q),
		Tickets:         NewTicketRepository(q),
		TicketResponses: NewTicketResponseRepository(q),
		Leaves:          NewLeaveRepository(q),
		Attendance:      NewAttendanceRepository(q),
		Payroll:         NewPayrollRepository(q),
		Transitions:     NewTransitionRepository(q),
	}
}

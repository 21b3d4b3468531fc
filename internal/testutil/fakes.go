package testutil

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/application/ports"
	"github.com/jhoicas/people360/internal/domain/entity"
)

// Cache DashboardCache en memoria; cuenta invalidaciones por empresa.
type Cache struct {
	mu            sync.Mutex
	data          map[string][]byte
	Invalidations map[string]int
	Gets          int
}

// NewCache crea la caché vacía.
func NewCache() *Cache {
	return &Cache{data: map[string][]byte{}, Invalidations: map[string]int{}}
}

func (c *Cache) Get(_ context.Context, companyID, role string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Gets++
	raw, ok := c.data[companyID+"|"+role]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *Cache) Set(_ context.Context, companyID, role string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[companyID+"|"+role] = raw
	return nil
}

func (c *Cache) Invalidate(_ context.Context, companyID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Invalidations[companyID]++
	for _, role := range entity.Roles() {
		delete(c.data, companyID+"|"+role)
	}
	return nil
}

// InvalidationsFor número de invalidaciones de la empresa.
func (c *Cache) InvalidationsFor(companyID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Invalidations[companyID]
}

// Tokens TokenStore en memoria.
type Tokens struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

// NewTokens crea el almacén vacío.
func NewTokens() *Tokens { return &Tokens{revoked: map[string]time.Duration{}} }

func (t *Tokens) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.revoked[jti] = ttl
	return nil
}

func (t *Tokens) IsRevoked(_ context.Context, jti string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.revoked[jti]
	return ok, nil
}

// Notifier registra las notificaciones enviadas.
type Notifier struct {
	mu      sync.Mutex
	Leaves       []ports.LeaveDecision
	Tickets      []ports.TicketUpdate
	Applications []ports.ApplicationUpdate
	Payslips     []ports.PayslipNotice
	Err          error
}

func (n *Notifier) LeaveDecided(_ context.Context, d ports.LeaveDecision) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Leaves = append(n.Leaves, d)
	return n.Err
}

func (n *Notifier) TicketStatusChanged(_ context.Context, u ports.TicketUpdate) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Tickets = append(n.Tickets, u)
	return n.Err
}

func (n *Notifier) ApplicationStatusChanged(_ context.Context, u ports.ApplicationUpdate) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Applications = append(n.Applications, u)
	return n.Err
}

func (n *Notifier) PayslipReady(_ context.Context, p ports.PayslipNotice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Payslips = append(n.Payslips, p)
	return n.Err
}

// LLM respuesta fija para la clasificación de tickets.
type LLM struct {
	Result *dto.TicketTriageDTO
	Err    error
	Delay  time.Duration
}

func (l *LLM) SuggestTicketTriage(ctx context.Context, _, _ string) (*dto.TicketTriageDTO, error) {
	if l.Delay > 0 {
		select {
		case <-time.After(l.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return l.Result, l.Err
}

// PDF generador que devuelve bytes fijos.
type PDF struct {
	Calls int
}

func (p *PDF) GeneratePayslipPDF(_ context.Context, _ *entity.Company, _ *entity.Employee, _ *entity.PayrollRecord) ([]byte, error) {
	p.Calls++
	return []byte("%PDF-1.3 fake"), nil
}

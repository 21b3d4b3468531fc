package entity_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/people360/internal/domain/entity"
)

func TestNewCode_Formato(t *testing.T) {
	re := regexp.MustCompile(`^EMP[A-Z0-9]{6}$`)
	for i := 0; i < 50; i++ {
		assert.Regexp(t, re, entity.NewCode(entity.PrefixEmployee))
	}
}

func TestTicket_IsOverdue_SegunSLA(t *testing.T) {
	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	tk := &entity.Ticket{Priority: entity.PriorityUrgent, Status: entity.TicketStatusOpen, CreatedAt: created}

	assert.False(t, tk.IsOverdue(created.Add(3*time.Hour)), "urgente dentro de 4h")
	assert.True(t, tk.IsOverdue(created.Add(5*time.Hour)), "urgente pasadas 4h")

	tk.Priority = entity.PriorityLow
	assert.False(t, tk.IsOverdue(created.Add(71*time.Hour)))
	assert.True(t, tk.IsOverdue(created.Add(73*time.Hour)))

	tk.Status = entity.TicketStatusResolved
	assert.False(t, tk.IsOverdue(created.Add(500*time.Hour)), "resuelto nunca está vencido")
}

func TestLead_WeightedValue(t *testing.T) {
	l := &entity.Lead{EstimatedValue: decimal.NewFromInt(12000), Probability: 25}
	assert.Equal(t, "3000", l.WeightedValue().String())
}

func TestLeadStageLabel(t *testing.T) {
	assert.Equal(t, "Initial Contact", entity.LeadStageLabel(entity.LeadStageNew))
	assert.Equal(t, "Closed Won", entity.LeadStageLabel(entity.LeadStageWon))
	assert.Equal(t, "otro", entity.LeadStageLabel("otro"))
}

func TestJob_IsAcceptingApplications(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	closing := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	j := &entity.Job{Status: entity.JobStatusOpen, ClosingDate: &closing}
	assert.True(t, j.IsAcceptingApplications(now), "el día de cierre todavía acepta")

	assert.False(t, j.IsAcceptingApplications(now.AddDate(0, 0, 1)))

	j.Status = entity.JobStatusDraft
	assert.False(t, j.IsAcceptingApplications(now))
}

func TestLeaveDays_IncluyeExtremos(t *testing.T) {
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, entity.LeaveDays(start, start))
	assert.Equal(t, 5, entity.LeaveDays(start, start.AddDate(0, 0, 4)))
}

func TestCustomer_DisplayName(t *testing.T) {
	c := &entity.Customer{FirstName: "Ana", LastName: "Ruiz"}
	assert.Equal(t, "Ana Ruiz", c.DisplayName())
	c.CompanyName = "Acme"
	assert.Equal(t, "Acme", c.DisplayName())
}

func TestAttendance_ComputeHours(t *testing.T) {
	in := time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)
	out := in.Add(9*time.Hour + 30*time.Minute)
	a := &entity.Attendance{CheckIn: &in, CheckOut: &out}
	assert.Equal(t, "9.5", a.ComputeHours().String())

	a.CheckOut = nil
	assert.True(t, a.ComputeHours().IsZero())
}

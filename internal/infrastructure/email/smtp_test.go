package email

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/people360/internal/application/ports"
	"github.com/jhoicas/people360/pkg/config"
)

type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func body(t *testing.T, m *gomail.Message) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func TestSMTPNotifier_LeaveDecided(t *testing.T) {
	fs := &fakeSender{}
	n := &SMTPNotifier{from: "rrhh@acme.com", sender: fs}

	err := n.LeaveDecided(context.Background(), ports.LeaveDecision{
		To: "jane@acme.com", EmployeeName: "Jane Doe", LeaveType: "vacation",
		StartDate: "2026-07-01", EndDate: "2026-07-05", Status: "approved",
	})
	require.NoError(t, err)
	require.Len(t, fs.sent, 1)

	m := fs.sent[0]
	assert.Equal(t, []string{"rrhh@acme.com"}, m.GetHeader("From"))
	assert.Equal(t, []string{"jane@acme.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Leave request Approved"}, m.GetHeader("Subject"))
	raw := body(t, m)
	assert.Contains(t, raw, "2026-07-01")
	assert.Contains(t, raw, "text/html")
}

func TestSMTPNotifier_TicketStatusChanged(t *testing.T) {
	fs := &fakeSender{}
	n := &SMTPNotifier{from: "soporte@acme.com", sender: fs}

	require.NoError(t, n.TicketStatusChanged(context.Background(), ports.TicketUpdate{
		To: "cliente@x.com", Customer: "Globex", TicketCode: "TKTAB12CD", Subject: "No factura",
		FromStatus: "open", ToStatus: "in_progress",
	}))
	require.Len(t, fs.sent, 1)
	assert.Equal(t, []string{"[TKTAB12CD] No factura"}, fs.sent[0].GetHeader("Subject"))
	assert.Contains(t, body(t, fs.sent[0]), "In Progress")
}

func TestSMTPNotifier_ApplicationStatusChanged(t *testing.T) {
	fs := &fakeSender{}
	n := &SMTPNotifier{from: "talento@acme.com", sender: fs}

	require.NoError(t, n.ApplicationStatusChanged(context.Background(), ports.ApplicationUpdate{
		To: "ana@mail.com", CandidateName: "Ana Ruiz", JobTitle: "Backend Go", ApplicationCode: "APPAB12CD",
		FromStatus: "applied", ToStatus: "interview_scheduled",
	}))
	require.Len(t, fs.sent, 1)
	assert.Equal(t, []string{"ana@mail.com"}, fs.sent[0].GetHeader("To"))
	assert.Equal(t, []string{"Your application for Backend Go"}, fs.sent[0].GetHeader("Subject"))
	assert.Contains(t, body(t, fs.sent[0]), "Interview Scheduled")
}

func TestSMTPNotifier_PayslipReady(t *testing.T) {
	fs := &fakeSender{}
	n := &SMTPNotifier{from: "nomina@acme.com", sender: fs}

	require.NoError(t, n.PayslipReady(context.Background(), ports.PayslipNotice{
		To: "jane@acme.com", EmployeeName: "Jane Doe", Period: "2026-06-01 a 2026-06-30", NetPay: "3500000.00",
	}))
	require.Len(t, fs.sent, 1)
	assert.Equal(t, []string{"Payslip 2026-06-01 a 2026-06-30"}, fs.sent[0].GetHeader("Subject"))
	assert.Contains(t, body(t, fs.sent[0]), "Net pay: 3500000.00")
}

func TestSMTPNotifier_PropagaErrorDeEnvio(t *testing.T) {
	n := &SMTPNotifier{from: "a@b.c", sender: &fakeSender{err: errors.New("smtp caído")}}
	err := n.LeaveDecided(context.Background(), ports.LeaveDecision{To: "x@y.z", Status: "rejected"})
	assert.ErrorContains(t, err, "smtp caído")
}

func TestNew_SinHostUsaLog(t *testing.T) {
	_, ok := New(config.MailConfig{}).(LogNotifier)
	assert.True(t, ok)

	_, ok = New(config.MailConfig{Host: "smtp.acme.com", Port: 587}).(*SMTPNotifier)
	assert.True(t, ok)
}

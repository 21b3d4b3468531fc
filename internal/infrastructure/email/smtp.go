// Package email implementa el puerto Notifier sobre SMTP (gomail) o sobre el log.
package email

import (
	"context"
	"fmt"
	"html"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/people360/internal/application/ports"
	"github.com/jhoicas/people360/pkg/config"
	"github.com/jhoicas/people360/pkg/labels"
)

var (
	_ ports.Notifier = (*SMTPNotifier)(nil)
	_ ports.Notifier = LogNotifier{}
)

// sender lo que se necesita de gomail.Dialer.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPNotifier envía las notificaciones como correo texto + HTML.
type SMTPNotifier struct {
	from   string
	sender sender
}

// NewSMTPNotifier construye el notificador con el dialer de gomail.
func NewSMTPNotifier(cfg config.MailConfig) *SMTPNotifier {
	return &SMTPNotifier{
		from:   cfg.From,
		sender: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

// New devuelve SMTP si hay host configurado; si no, un notificador que solo registra en el log.
func New(cfg config.MailConfig) ports.Notifier {
	if !cfg.Enabled() {
		log.Info().Msg("MAIL_HOST vacío: notificaciones solo al log")
		return LogNotifier{}
	}
	return NewSMTPNotifier(cfg)
}

// LeaveDecided avisa al empleado la resolución de su solicitud.
func (n *SMTPNotifier) LeaveDecided(_ context.Context, d ports.LeaveDecision) error {
	return n.send(leaveMessage(n.from, d))
}

// TicketStatusChanged avisa al cliente del nuevo estado de su ticket.
func (n *SMTPNotifier) TicketStatusChanged(_ context.Context, u ports.TicketUpdate) error {
	return n.send(ticketMessage(n.from, u))
}

// ApplicationStatusChanged avisa al candidato del nuevo estado de su postulación.
func (n *SMTPNotifier) ApplicationStatusChanged(_ context.Context, u ports.ApplicationUpdate) error {
	return n.send(applicationMessage(n.from, u))
}

// PayslipReady avisa al empleado que su nómina fue pagada.
func (n *SMTPNotifier) PayslipReady(_ context.Context, p ports.PayslipNotice) error {
	return n.send(payslipMessage(n.from, p))
}

func (n *SMTPNotifier) send(m *gomail.Message) error {
	if err := n.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

func newMessage(from, to, subject, plain, htmlBody string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plain)
	m.AddAlternative("text/html", htmlBody)
	return m
}

func leaveMessage(from string, d ports.LeaveDecision) *gomail.Message {
	status := labels.Humanize(d.Status)
	subject := fmt.Sprintf("Leave request %s", status)
	plain := fmt.Sprintf(`Hello %s,

Your %s leave request from %s to %s has been %s.
`, d.EmployeeName, d.LeaveType, d.StartDate, d.EndDate, d.Status)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<p>Hello %s,</p>
			<p>Your <strong>%s</strong> leave request from %s to %s has been <strong>%s</strong>.</p>
		</body>
		</html>
	`, html.EscapeString(d.EmployeeName), html.EscapeString(d.LeaveType), d.StartDate, d.EndDate, d.Status)
	return newMessage(from, d.To, subject, plain, htmlBody)
}

func ticketMessage(from string, u ports.TicketUpdate) *gomail.Message {
	subject := fmt.Sprintf("[%s] %s", u.TicketCode, u.Subject)
	plain := fmt.Sprintf(`Hello %s,

Your ticket %s changed status from %s to %s.
`, u.Customer, u.TicketCode, labels.Humanize(u.FromStatus), labels.Humanize(u.ToStatus))
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<p>Hello %s,</p>
			<p>Your ticket <strong>%s</strong> changed status from %s to <strong>%s</strong>.</p>
		</body>
		</html>
	`, html.EscapeString(u.Customer), u.TicketCode, labels.Humanize(u.FromStatus), labels.Humanize(u.ToStatus))
	return newMessage(from, u.To, subject, plain, htmlBody)
}

func applicationMessage(from string, u ports.ApplicationUpdate) *gomail.Message {
	subject := fmt.Sprintf("Your application for %s", u.JobTitle)
	plain := fmt.Sprintf(`Hello %s,

Your application %s for %s is now %s.
`, u.CandidateName, u.ApplicationCode, u.JobTitle, labels.Humanize(u.ToStatus))
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<p>Hello %s,</p>
			<p>Your application %s for <strong>%s</strong> is now <strong>%s</strong>.</p>
		</body>
		</html>
	`, html.EscapeString(u.CandidateName), u.ApplicationCode, html.EscapeString(u.JobTitle), labels.Humanize(u.ToStatus))
	return newMessage(from, u.To, subject, plain, htmlBody)
}

func payslipMessage(from string, p ports.PayslipNotice) *gomail.Message {
	subject := fmt.Sprintf("Payslip %s", p.Period)
	plain := fmt.Sprintf(`Hello %s,

Your payroll for %s has been paid. Net pay: %s.
`, p.EmployeeName, p.Period, p.NetPay)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<p>Hello %s,</p>
			<p>Your payroll for %s has been paid. Net pay: <strong>%s</strong>.</p>
		</body>
		</html>
	`, html.EscapeString(p.EmployeeName), p.Period, p.NetPay)
	return newMessage(from, p.To, subject, plain, htmlBody)
}

// LogNotifier registra la notificación sin enviarla.
type LogNotifier struct{}

func (LogNotifier) LeaveDecided(_ context.Context, d ports.LeaveDecision) error {
	log.Info().Str("to", d.To).Str("status", d.Status).Str("type", d.LeaveType).Msg("notificación de ausencia")
	return nil
}

func (LogNotifier) TicketStatusChanged(_ context.Context, u ports.TicketUpdate) error {
	log.Info().Str("to", u.To).Str("ticket", u.TicketCode).Str("from", u.FromStatus).Str("status", u.ToStatus).
		Msg("notificación de ticket")
	return nil
}

func (LogNotifier) ApplicationStatusChanged(_ context.Context, u ports.ApplicationUpdate) error {
	log.Info().Str("to", u.To).Str("application", u.ApplicationCode).Str("status", u.ToStatus).
		Msg("notificación de postulación")
	return nil
}

func (LogNotifier) PayslipReady(_ context.Context, p ports.PayslipNotice) error {
	log.Info().Str("to", p.To).Str("period", p.Period).Msg("notificación de nómina pagada")
	return nil
}

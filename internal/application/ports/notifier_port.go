package ports

import "context"

// LeaveDecision datos para avisar al empleado que su ausencia fue resuelta.
type LeaveDecision struct {
	To           string
	EmployeeName string
	LeaveType    string
	StartDate    string
	EndDate      string
	Status       string // approved, rejected
}

// TicketUpdate datos para avisar al cliente del cambio de estado de su ticket.
type TicketUpdate struct {
	To         string
	Customer   string
	TicketCode string
	Subject    string
	FromStatus string
	ToStatus   string
}

// ApplicationUpdate datos para avisar al candidato del avance de su postulación.
type ApplicationUpdate struct {
	To              string
	CandidateName   string
	JobTitle        string
	ApplicationCode string
	FromStatus      string
	ToStatus        string
}

// PayslipNotice datos para avisar al empleado que su nómina fue pagada.
type PayslipNotice struct {
	To           string
	EmployeeName string
	Period       string // 2026-06-01 a 2026-06-30
	NetPay       string
}

// Notifier puerto de salida para notificaciones (e-mail o log).
// Los fallos no deben revertir la operación que los origina.
type Notifier interface {
	LeaveDecided(ctx context.Context, n LeaveDecision) error
	TicketStatusChanged(ctx context.Context, n TicketUpdate) error
	ApplicationStatusChanged(ctx context.Context, n ApplicationUpdate) error
	PayslipReady(ctx context.Context, n PayslipNotice) error
}

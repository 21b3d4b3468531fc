package entity

import "time"

// Tipos de entidad con flujo de estados auditado.
const (
	EntityLead        = "lead"
	EntityTicket      = "ticket"
	EntityJob         = "job"
	EntityApplication = "application"
	EntityLeave       = "leave"
	EntityPayroll     = "payroll"
)

// StatusTransition fila de auditoría: quién movió qué entidad, de qué estado a cuál y cuándo.
type StatusTransition struct {
	ID         string
	CompanyID  string
	EntityType string
	EntityID   string
	FromStatus string
	ToStatus   string
	ChangedBy  string
	ChangedAt  time.Time
	Note       string
}

package entity

import "time"

// Tipos de ausencia.
const (
	LeaveVacation    = "vacation"
	LeaveSick        = "sick"
	LeavePersonal    = "personal"
	LeaveMaternity   = "maternity"
	LeavePaternity   = "paternity"
	LeaveBereavement = "bereavement"
	LeaveUnpaid      = "unpaid"
)

// Estados de LeaveRequest.
const (
	LeavePending   = "pending"
	LeaveApproved  = "approved"
	LeaveRejected  = "rejected"
	LeaveCancelled = "cancelled"
)

// LeaveRequest solicitud de ausencia de un empleado.
type LeaveRequest struct {
	ID         string
	CompanyID  string
	EmployeeID string
	Type       string
	StartDate  time.Time
	EndDate    time.Time
	Days       int
	Reason     string
	Status     string
	ReviewedBy *string
	ReviewedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// LeaveDays días calendario incluidos ambos extremos.
func LeaveDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}

package entity

import (
	"strings"
	"time"
)

// Estados de Customer.
const (
	CustomerStatusActive   = "active"
	CustomerStatusInactive = "inactive"
	CustomerStatusProspect = "prospect"
	CustomerStatusLost     = "lost"
)

// Tipos de Customer.
const (
	CustomerTypeProspect = "prospect"
	CustomerTypeCustomer = "customer"
	CustomerTypePartner  = "partner"
)

// Prioridades compartidas por Customer, Lead y Ticket.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Customer cliente del CRM. Es dueño (1:N) de Leads y Tickets.
type Customer struct {
	ID           string
	CompanyID    string
	Code         string // CUS + 6
	CompanyName  string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Address      string
	City         string
	Country      string
	Industry     string
	Status       string
	CustomerType string
	Priority     string
	Tags         []string
	OwnerID      *string // usuario responsable de la cuenta
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName razón social o, si no existe, el nombre del contacto.
func (c *Customer) DisplayName() string {
	if strings.TrimSpace(c.CompanyName) != "" {
		return c.CompanyName
	}
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

package entity

import (
	"strings"
	"time"
)

// Roles válidos para User.
const (
	RoleAdmin        = "admin"
	RoleHRManager    = "hr_manager"
	RoleSalesManager = "sales_manager"
	RoleSupportAgent = "support_agent"
	RoleEmployee     = "employee"
	RoleCustomer     = "customer"
)

// Roles devuelve el conjunto cerrado de roles en orden estable.
func Roles() []string {
	return []string{RoleAdmin, RoleHRManager, RoleSalesManager, RoleSupportAgent, RoleEmployee, RoleCustomer}
}

// IsValidRole indica si role pertenece al conjunto de roles.
func IsValidRole(role string) bool {
	for _, r := range Roles() {
		if r == role {
			return true
		}
	}
	return false
}

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	Username     string
	Email        string
	PasswordHash string // bcrypt, nunca plano después de persistir
	FirstName    string
	LastName     string
	Phone        string
	Role         string
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName nombre completo; cae al username si no hay nombre.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

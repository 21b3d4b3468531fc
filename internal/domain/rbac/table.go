// Package rbac contiene la tabla estática de permisos: rol → recurso → acciones.
// Es la fuente de verdad que se carga en el enforcer de Casbin.
package rbac

import (
	"sort"

	"github.com/jhoicas/people360/internal/domain/entity"
)

// Recursos (conjuntos de entidades).
const (
	ResourceUsers        = "users"
	ResourceEmployees    = "employees"
	ResourceJobs         = "jobs"
	ResourceApplications = "applications"
	ResourceLeaves       = "leaves"
	ResourceAttendance   = "attendance"
	ResourcePayroll      = "payroll"
	ResourceCustomers    = "customers"
	ResourceLeads        = "leads"
	ResourceTickets      = "tickets"
	ResourceDashboard    = "dashboard"
)

// Acciones.
const (
	ActionRead    = "read"
	ActionWrite   = "write"
	ActionApprove = "approve"
)

// Resources todos los recursos protegidos.
func Resources() []string {
	return []string{
		ResourceUsers, ResourceEmployees, ResourceJobs, ResourceApplications, ResourceLeaves,
		ResourceAttendance, ResourcePayroll, ResourceCustomers, ResourceLeads, ResourceTickets,
		ResourceDashboard,
	}
}

// Actions todas las acciones.
func Actions() []string {
	return []string{ActionRead, ActionWrite, ActionApprove}
}

// Policy una regla (sujeto=rol, objeto=recurso, acción).
type Policy struct {
	Role     string
	Resource string
	Action   string
}

var (
	rw  = []string{ActionRead, ActionWrite}
	rwa = []string{ActionRead, ActionWrite, ActionApprove}
	ro  = []string{ActionRead}
)

// table permisos por rol. admin se expande a todos los recursos en Policies.
var table = map[string]map[string][]string{
	entity.RoleHRManager: {
		ResourceEmployees:    rw,
		ResourceJobs:         rw,
		ResourceApplications: rw,
		ResourceAttendance:   rw,
		ResourceLeaves:       rwa,
		ResourcePayroll:      rwa,
		ResourceDashboard:    ro,
	},
	entity.RoleSalesManager: {
		ResourceCustomers: rw,
		ResourceLeads:     rw,
		ResourceTickets:   ro,
		ResourceDashboard: ro,
	},
	entity.RoleSupportAgent: {
		ResourceTickets:   rw,
		ResourceCustomers: ro,
		ResourceDashboard: ro,
	},
	entity.RoleEmployee: {
		ResourceJobs:       ro,
		ResourceLeaves:     rw,
		ResourceAttendance: rw,
		ResourceDashboard:  ro,
	},
	entity.RoleCustomer: {
		ResourceDashboard: ro,
	},
}

// Allowed consulta directa a la tabla.
func Allowed(role, resource, action string) bool {
	if role == entity.RoleAdmin {
		return isResource(resource) && isAction(action)
	}
	for _, a := range table[role][resource] {
		if a == action {
			return true
		}
	}
	return false
}

// Policies aplana la tabla en reglas ordenadas (admin incluido).
func Policies() []Policy {
	var out []Policy
	for _, res := range Resources() {
		for _, act := range Actions() {
			out = append(out, Policy{Role: entity.RoleAdmin, Resource: res, Action: act})
		}
	}
	roles := make([]string, 0, len(table))
	for role := range table {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	for _, role := range roles {
		resources := make([]string, 0, len(table[role]))
		for res := range table[role] {
			resources = append(resources, res)
		}
		sort.Strings(resources)
		for _, res := range resources {
			for _, act := range table[role][res] {
				out = append(out, Policy{Role: role, Resource: res, Action: act})
			}
		}
	}
	return out
}

// CanAccessHR el rol puede ver el módulo HR.
func CanAccessHR(role string) bool { return Allowed(role, ResourceEmployees, ActionRead) }

// CanAccessCRM el rol puede ver el módulo CRM.
func CanAccessCRM(role string) bool { return Allowed(role, ResourceCustomers, ActionRead) }

// CanManageUsers el rol administra usuarios.
func CanManageUsers(role string) bool { return Allowed(role, ResourceUsers, ActionWrite) }

func isResource(resource string) bool {
	for _, r := range Resources() {
		if r == resource {
			return true
		}
	}
	return false
}

func isAction(action string) bool {
	for _, a := range Actions() {
		if a == action {
			return true
		}
	}
	return false
}

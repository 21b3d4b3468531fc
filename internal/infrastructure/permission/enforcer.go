// Package permission carga la tabla RBAC en un enforcer de Casbin en memoria.
package permission

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/people360/internal/domain/rbac"
)

// modelConf sujeto = rol, objeto = recurso, acción.
const modelConf = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// Enforcer envoltorio concurrente de casbin.Enforcer.
type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
}

// NewEnforcer construye el enforcer con las políticas de rbac.Policies.
func NewEnforcer() (*Enforcer, error) {
	m, err := model.NewModelFromString(modelConf)
	if err != nil {
		return nil, fmt.Errorf("casbin model: %w", err)
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("casbin enforcer: %w", err)
	}
	policies := rbac.Policies()
	rules := make([][]string, 0, len(policies))
	for _, p := range policies {
		rules = append(rules, []string{p.Role, p.Resource, p.Action})
	}
	if _, err := e.AddPolicies(rules); err != nil {
		return nil, fmt.Errorf("casbin policies: %w", err)
	}
	log.Debug().Int("policies", len(rules)).Msg("políticas RBAC cargadas")
	return &Enforcer{enforcer: e}, nil
}

// Enforce indica si el rol puede ejecutar la acción sobre el recurso.
func (e *Enforcer) Enforce(role, resource, action string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	ok, err := e.enforcer.Enforce(role, resource, action)
	if err != nil {
		log.Error().Err(err).Str("role", role).Str("resource", resource).Str("action", action).
			Msg("error evaluando permiso")
		return false, fmt.Errorf("permission check: %w", err)
	}
	return ok, nil
}

// PermissionsForRole reglas (recurso, acción) del rol.
func (e *Enforcer) PermissionsForRole(role string) ([][]string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	perms, err := e.enforcer.GetPermissionsForUser(role)
	if err != nil {
		return nil, fmt.Errorf("permissions for role: %w", err)
	}
	return perms, nil
}

package dto

// Acciones masivas.
const (
	BulkDelete           = "delete"
	BulkUpdateStatus     = "update_status"
	BulkUpdateDepartment = "update_department"
	BulkUpdateType       = "update_type"
	BulkAssign           = "assign"
)

// BulkEmployeeRequest cuerpo de POST /api/hr/employees/bulk. Hasta 100 ids.
type BulkEmployeeRequest struct {
	Action      string   `json:"action" validate:"required,oneof=delete update_status update_department"`
	EmployeeIDs []string `json:"employee_ids" validate:"required,min=1,max=100,dive,uuid"`
	Status      string   `json:"status" validate:"omitempty,oneof=active inactive terminated on_leave"`
	Department  string   `json:"department" validate:"omitempty,max=100"`
}

// BulkCustomerRequest cuerpo de POST /api/crm/customers/bulk.
type BulkCustomerRequest struct {
	Action       string   `json:"action" validate:"required,oneof=delete update_type assign"`
	CustomerIDs  []string `json:"customer_ids" validate:"required,min=1,max=100,dive,uuid"`
	CustomerType string   `json:"customer_type" validate:"omitempty,oneof=prospect customer partner"`
	OwnerID      string   `json:"owner_id" validate:"omitempty,uuid"`
}

// BulkResponse resultado de una operación masiva.
type BulkResponse struct {
	Action   string `json:"action"`
	Affected int    `json:"affected"`
}

// UniqueIDs quita repetidos conservando el orden.
func UniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

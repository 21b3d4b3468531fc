package dto

import "strings"

// Normalize en los requests de alta y edición: recorta espacios y pasa emails a
// minúsculas. Se aplica antes de validar para que " Ana@X.com " sea válido.

func trim(s *string) { *s = strings.TrimSpace(*s) }

func lower(s *string) { *s = strings.ToLower(strings.TrimSpace(*s)) }

func trimPtr(s *string) {
	if s != nil {
		trim(s)
	}
}

func lowerPtr(s *string) {
	if s != nil {
		lower(s)
	}
}

func (r *RegisterRequest) Normalize() {
	trim(&r.CompanyID)
	trim(&r.Username)
	lower(&r.Email)
	trim(&r.FirstName)
	trim(&r.LastName)
	trim(&r.Phone)
	lower(&r.Role)
}

func (r *RegisterCompanyRequest) Normalize() {
	trim(&r.CompanyName)
	lower(&r.CompanyEmail)
	trim(&r.Username)
	lower(&r.Email)
	trim(&r.FirstName)
	trim(&r.LastName)
}

func (r *LoginRequest) Normalize() { trim(&r.Login) }

func (r *CreateCustomerRequest) Normalize() {
	trim(&r.CompanyName)
	trim(&r.FirstName)
	trim(&r.LastName)
	lower(&r.Email)
	trim(&r.Phone)
	trim(&r.Address)
	trim(&r.City)
	trim(&r.Country)
	trim(&r.Industry)
	lower(&r.Status)
	lower(&r.CustomerType)
	lower(&r.Priority)
	trim(&r.OwnerID)
}

func (r *UpdateCustomerRequest) Normalize() {
	trimPtr(r.CompanyName)
	trimPtr(r.FirstName)
	trimPtr(r.LastName)
	lowerPtr(r.Email)
	trimPtr(r.Phone)
	trimPtr(r.Address)
	trimPtr(r.City)
	trimPtr(r.Country)
	trimPtr(r.Industry)
	lowerPtr(r.Status)
	lowerPtr(r.CustomerType)
	lowerPtr(r.Priority)
	trimPtr(r.OwnerID)
}

func (r *CreateEmployeeRequest) Normalize() {
	trim(&r.UserID)
	trim(&r.FirstName)
	trim(&r.LastName)
	lower(&r.Email)
	trim(&r.Phone)
	trim(&r.Department)
	trim(&r.Position)
	lower(&r.EmploymentType)
	lower(&r.SalaryType)
	trim(&r.ManagerID)
}

func (r *UpdateEmployeeRequest) Normalize() {
	trimPtr(r.FirstName)
	trimPtr(r.LastName)
	lowerPtr(r.Email)
	trimPtr(r.Phone)
	trimPtr(r.Department)
	trimPtr(r.Position)
	lowerPtr(r.EmploymentType)
	lowerPtr(r.Status)
	lowerPtr(r.SalaryType)
	trimPtr(r.ManagerID)
}

func (r *CreateApplicationRequest) Normalize() {
	trim(&r.EmployeeID)
	trim(&r.FirstName)
	trim(&r.LastName)
	lower(&r.Email)
	trim(&r.Phone)
	trim(&r.Source)
}

func (r *CreateLeadRequest) Normalize() {
	trim(&r.Title)
	trim(&r.CustomerID)
	trim(&r.OwnerID)
	trim(&r.ContactName)
	lower(&r.ContactEmail)
	trim(&r.Source)
	lower(&r.Priority)
}

func (r *UpdateLeadRequest) Normalize() {
	trimPtr(r.Title)
	trimPtr(r.OwnerID)
	trimPtr(r.ContactName)
	lowerPtr(r.ContactEmail)
	trimPtr(r.Source)
	lowerPtr(r.Priority)
}

func (r *CreateTicketRequest) Normalize() {
	trim(&r.CustomerID)
	trim(&r.Subject)
	lower(&r.Category)
	lower(&r.Priority)
	lower(&r.Severity)
	lower(&r.Channel)
	trim(&r.AssignedTo)
}

func (r *BulkEmployeeRequest) Normalize() {
	lower(&r.Action)
	lower(&r.Status)
	trim(&r.Department)
	for i := range r.EmployeeIDs {
		lower(&r.EmployeeIDs[i])
	}
}

func (r *BulkCustomerRequest) Normalize() {
	lower(&r.Action)
	lower(&r.CustomerType)
	trim(&r.OwnerID)
	for i := range r.CustomerIDs {
		lower(&r.CustomerIDs[i])
	}
}

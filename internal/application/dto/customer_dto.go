package dto

import "time"

// CreateCustomerRequest alta de cliente. Se exige company_name o first_name.
type CreateCustomerRequest struct {
	CompanyName  string   `json:"company_name" validate:"required_without=FirstName,omitempty,max=200"`
	FirstName    string   `json:"first_name" validate:"required_without=CompanyName,omitempty,max=100"`
	LastName     string   `json:"last_name" validate:"omitempty,max=100"`
	Email        string   `json:"email" validate:"required,email,max=255"`
	Phone        string   `json:"phone" validate:"omitempty,max=40"`
	Address      string   `json:"address" validate:"omitempty,max=255"`
	City         string   `json:"city" validate:"omitempty,max=100"`
	Country      string   `json:"country" validate:"omitempty,max=100"`
	Industry     string   `json:"industry" validate:"omitempty,max=100"`
	Status       string   `json:"status" validate:"omitempty,oneof=active inactive prospect lost"`
	CustomerType string   `json:"customer_type" validate:"omitempty,oneof=prospect customer partner"`
	Priority     string   `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Tags         []string `json:"tags" validate:"omitempty,dive,max=50"`
	OwnerID      string   `json:"owner_id" validate:"omitempty,uuid"`
}

// UpdateCustomerRequest campos opcionales.
type UpdateCustomerRequest struct {
	CompanyName  *string   `json:"company_name" validate:"omitempty,max=200"`
	FirstName    *string   `json:"first_name" validate:"omitempty,max=100"`
	LastName     *string   `json:"last_name" validate:"omitempty,max=100"`
	Email        *string   `json:"email" validate:"omitempty,email,max=255"`
	Phone        *string   `json:"phone" validate:"omitempty,max=40"`
	Address      *string   `json:"address" validate:"omitempty,max=255"`
	City         *string   `json:"city" validate:"omitempty,max=100"`
	Country      *string   `json:"country" validate:"omitempty,max=100"`
	Industry     *string   `json:"industry" validate:"omitempty,max=100"`
	Status       *string   `json:"status" validate:"omitempty,oneof=active inactive prospect lost"`
	CustomerType *string   `json:"customer_type" validate:"omitempty,oneof=prospect customer partner"`
	Priority     *string   `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Tags         *[]string `json:"tags" validate:"omitempty,dive,max=50"`
	OwnerID      *string   `json:"owner_id" validate:"omitempty,uuid"`
}

// CustomerListQuery filtros de GET /api/crm/customers.
type CustomerListQuery struct {
	PageQuery
	Status       string `query:"status"`
	CustomerType string `query:"customer_type"`
	Q            string `query:"q"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	CompanyName  string    `json:"company_name"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	DisplayName  string    `json:"display_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	Country      string    `json:"country"`
	Industry     string    `json:"industry"`
	Status       string    `json:"status"`
	CustomerType string    `json:"customer_type"`
	Priority     string    `json:"priority"`
	Tags         []string  `json:"tags"`
	OwnerID      *string   `json:"owner_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

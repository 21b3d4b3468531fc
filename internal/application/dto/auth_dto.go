package dto

import "time"

// RegisterRequest alta de usuario en una empresa existente. El rol admin no es elegible.
type RegisterRequest struct {
	CompanyID string `json:"company_id" validate:"required,uuid"`
	Username  string `json:"username" validate:"required,min=3,max=80,alphanum"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"omitempty,max=100"`
	LastName  string `json:"last_name" validate:"omitempty,max=100"`
	Phone     string `json:"phone" validate:"omitempty,max=40"`
	Role      string `json:"role" validate:"omitempty,oneof=hr_manager sales_manager support_agent employee customer"`
}

// RegisterCompanyRequest crea la empresa (tenant) y su primer usuario admin.
type RegisterCompanyRequest struct {
	CompanyName  string `json:"company_name" validate:"required,notblank,max=200"`
	CompanyEmail string `json:"company_email" validate:"omitempty,email,max=255"`
	Username     string `json:"username" validate:"required,min=3,max=80,alphanum"`
	Email        string `json:"email" validate:"required,email,max=255"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
	FirstName    string `json:"first_name" validate:"omitempty,max=100"`
	LastName     string `json:"last_name" validate:"omitempty,max=100"`
}

// LoginRequest login por email o username.
type LoginRequest struct {
	Login    string `json:"login" validate:"required"` // email o username
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT y datos del usuario.
type LoginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// ChangePasswordRequest cambio de contraseña del usuario autenticado.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

// RegisterCompanyResponse empresa creada y token del admin.
type RegisterCompanyResponse struct {
	Company CompanyResponse `json:"company"`
	User    UserResponse    `json:"user"`
}

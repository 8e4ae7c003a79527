package dto

// LoginRequest credenciales de ingreso al kiosco.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginResponse token emitido más la identidad resuelta.
type LoginResponse struct {
	Token             string `json:"token"`
	UserID            string `json:"userId"`
	TenantID          string `json:"tenantId"`
	Role              string `json:"role"`
	CanCreateProducts bool   `json:"canCreateProducts"`
}

// IdentityResponse identidad resuelta del portador del token.
type IdentityResponse struct {
	UserID            string `json:"userId"`
	TenantID          string `json:"tenantId"`
	Email             string `json:"email"`
	Role              string `json:"role"`
	CanCreateProducts bool   `json:"canCreateProducts"`
}

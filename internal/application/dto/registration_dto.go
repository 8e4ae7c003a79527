package dto

// RegisterEmployerRequest alta de dueño con su negocio.
type RegisterEmployerRequest struct {
	Name     string `json:"nombre" validate:"required,persona"`
	Phone    string `json:"telefono" validate:"required,telefono"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Business string `json:"negocio" validate:"required,min=2,max=120"`
	Country  string `json:"pais" validate:"max=80"`
	Province string `json:"provincia" validate:"max=80"`
	District string `json:"partido" validate:"max=80"`
	Locality string `json:"localidad" validate:"max=80"`
	Address  string `json:"direccion" validate:"max=160"`
	Plan     string `json:"plan"`
}

// RegisterEmployerResponse resultado del alta.
type RegisterEmployerResponse struct {
	UserID   string `json:"userId"`
	TenantID string `json:"tenantId"`
	Plan     string `json:"plan"`
	Role     string `json:"role"`
}

// MarkEmailVerifiedRequest confirmación de email, por token verificado o almacenado.
type MarkEmailVerifiedRequest struct {
	UserID string `json:"userId" validate:"required"`
	Token  string `json:"token"`
}

// UpdatePermissionRequest cambio del permiso de alta de productos de un empleado.
type UpdatePermissionRequest struct {
	CanCreateProducts bool `json:"canCreateProducts"`
}

// StatusResponse respuesta mínima de operaciones sin cuerpo propio.
type StatusResponse struct {
	Status string `json:"status"`
}

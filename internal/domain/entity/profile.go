package entity

import "time"

// Profile representa la identidad resuelta de un usuario dentro de su kiosco.
// Se crea en el registro (dueño) o en el alta de empleados; nunca se borra,
// se desactiva vía Status.
type Profile struct {
	ID                string // id de la identidad en el proveedor de auth
	TenantID          string
	Email             string
	PasswordHash      string // bcrypt; nunca plano en dominio después de persistir
	Name              string
	Phone             string
	Role              Role
	Status            string // active, inactive
	Plan              string
	CanCreateProducts bool
	EmailVerified     bool
	// Token de verificación de correo de un solo uso, con expiración.
	// Nil en ambos campos cuando no hay verificación pendiente.
	VerificationToken          string
	VerificationTokenExpiresAt *time.Time
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}

// Employee es el registro secundario de un empleado dentro del kiosco.
// Convive con el Profile primario (doble escritura reconciliada): los permisos
// y la verificación de correo se actualizan en ambos.
type Employee struct {
	ID                string // mismo id de identidad que el Profile
	TenantID          string
	Email             string
	Name              string
	CanCreateProducts bool
	EmailVerified     bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

package repository

import "github.com/stockfacil/kiosco-pos/internal/domain/entity"

// ProfileRepository define el puerto de persistencia para Profile.
// Create debe traducir violaciones de unicidad (id o email) a domain.ErrDuplicate;
// esa es la defensa estructural contra registros concurrentes de la misma identidad.
type ProfileRepository interface {
	Create(profile *entity.Profile) error
	GetByID(id string) (*entity.Profile, error)
	GetByEmail(email string) (*entity.Profile, error)
	// MarkEmailVerified marca el correo verificado y limpia el token de
	// verificación y su expiración. Idempotente.
	MarkEmailVerified(id string) error
	UpdatePermission(id string, canCreateProducts bool) error
}

// EmployeeRepository define el puerto para el registro secundario de empleados.
type EmployeeRepository interface {
	GetByID(id string) (*entity.Employee, error)
	MarkEmailVerified(id string) error
	UpdatePermission(id string, canCreateProducts bool) error
}

package domain

import "github.com/stockfacil/kiosco-pos/internal/domain/entity"

// Context es el contexto resuelto de una identidad autenticada: tenant, rol y
// permisos. Se construye una sola vez en el borde (Identity Resolver) y se pasa
// explícito a cada operación; la lógica de negocio nunca consulta sesión global
// ni acepta un tenant provisto por el cliente.
type Context struct {
	UserID            string
	TenantID          string
	Email             string
	Role              entity.Role
	CanCreateProducts bool
}

// IsOwner indica si el contexto pertenece al dueño del kiosco.
func (c Context) IsOwner() bool {
	return c.Role == entity.RoleOwner
}

// CanCreate indica si el contexto puede crear productos (dueño o permiso explícito).
func (c Context) CanCreate() bool {
	return c.IsOwner() || c.CanCreateProducts
}

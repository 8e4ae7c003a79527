package entity

import "strings"

// Role es el rol cerrado de un perfil dentro de su kiosco.
type Role string

const (
	RoleOwner    Role = "owner"
	RoleEmployee Role = "employee"
)

// Estados válidos para Profile y Tenant.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// NormalizeRole mapea las grafías legacy del rol ("dueno", "empleador",
// "empleado") al enum cerrado. Se aplica una sola vez, en el borde del sistema;
// el resto del código solo ve RoleOwner o RoleEmployee.
func NormalizeRole(raw string) Role {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "owner", "dueno", "dueño", "empleador":
		return RoleOwner
	default:
		return RoleEmployee
	}
}

// Valid indica si el rol pertenece al enum cerrado.
func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleEmployee
}

package entity

import "time"

// LoginEvent registra el primer inicio de sesión de una identidad en la vida
// del proceso. Se emite fire-and-forget desde el Identity Resolver.
type LoginEvent struct {
	ID        string
	TenantID  string
	UserID    string
	Email     string
	Role      Role
	LoggedAt  time.Time
	CreatedAt time.Time
}

package repository

import "github.com/stockfacil/kiosco-pos/internal/domain/entity"

// TenantRepository define el puerto de persistencia para Tenant.
type TenantRepository interface {
	Create(tenant *entity.Tenant) error
	GetByID(id string) (*entity.Tenant, error)
}

// LoginEventRepository define el puerto para eventos de login.
type LoginEventRepository interface {
	Create(event *entity.LoginEvent) error
}

// PlanRepository lee el allow-list de planes del documento de configuración.
// Un resultado vacío o con error no es fatal: el registro usa el fallback.
type PlanRepository interface {
	ActivePlanIDs() ([]string, error)
}

package repository

import "github.com/stockfacil/kiosco-pos/internal/domain/entity"

// ClosureRepository define el puerto de persistencia para CashClosure.
// Create debe traducir la violación del constraint único de closure_key a
// domain.ErrAlreadyClosed: dos cierres del mismo día no pueden coexistir.
type ClosureRepository interface {
	Create(closure *entity.CashClosure) error
	GetByID(id string) (*entity.CashClosure, error)
	GetByClosureKey(key string) (*entity.CashClosure, error)
	ListRecentByTenant(tenantID string, limit int) ([]*entity.CashClosure, error)
}

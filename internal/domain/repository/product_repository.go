package repository

import "github.com/stockfacil/kiosco-pos/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// Todas las lecturas están acotadas al tenant del caller; GetForUpdate bloquea
// la fila (SELECT FOR UPDATE) para serializar el check-then-write de stock.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByTenantAndBarcode(tenantID, barcode string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	UpdateStock(id string, stock int64, updatedBy string) error
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Product, error)
}

package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stockfacil/kiosco-pos/internal/domain/entity"
)

// SalesSummary es el agregado de ventas de un rango: lo que el cierre de caja
// persiste y lo que el snapshot muestra antes de cerrar.
type SalesSummary struct {
	TotalAmount  decimal.Decimal
	TotalCost    decimal.Decimal
	ProfitAmount decimal.Decimal
	SalesCount   int64
	ItemsCount   int64
}

// SaleRepository define el puerto de persistencia para Sale y SaleItem.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	ListByTenantAndRange(tenantID string, from, to time.Time) ([]*entity.Sale, error)
	ListItemsBySale(saleID string) ([]*entity.SaleItem, error)
	SummarizeRange(tenantID string, from, to time.Time) (SalesSummary, error)
}

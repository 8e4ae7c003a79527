package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta cobrada, inmutable una vez creada.
// Invariante: Profit = Total - TotalCost e ItemsCount = Σ cantidad de items.
type Sale struct {
	ID         string
	TenantID   string
	UserID     string
	Total      decimal.Decimal
	TotalCost  decimal.Decimal
	Profit     decimal.Decimal
	ItemsCount int64
	CreatedAt  time.Time
}

// SaleItem es una línea de una venta, creada atómicamente junto a su Sale.
// UnitProviderCost es el costo de proveedor al momento del cobro.
type SaleItem struct {
	ID               string
	SaleID           string
	TenantID         string
	ProductID        string
	Barcode          string
	Name             string
	Quantity         int64
	UnitPrice        decimal.Decimal
	Subtotal         decimal.Decimal
	UnitProviderCost decimal.Decimal
	SubtotalCost     decimal.Decimal
	CreatedAt        time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del kiosco, direccionado por código de barras
// único dentro de su tenant. Stock es entero y nunca negativo; los precios y el
// costo de proveedor usan decimal para no perder centavos en los totales.
type Product struct {
	ID           string
	TenantID     string
	Barcode      string
	Name         string
	Category     string
	Price        decimal.Decimal
	ProviderCost decimal.Decimal
	Stock        int64
	CreatedBy    string
	UpdatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

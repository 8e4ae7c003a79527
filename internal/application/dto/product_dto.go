package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockfacil/kiosco-pos/internal/domain/entity"
)

// CreateProductRequest entrada para alta de producto.
type CreateProductRequest struct {
	Barcode      string          `json:"barcode" validate:"required,min=1,max=64"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Category     string          `json:"category" validate:"max=100"`
	Price        decimal.Decimal `json:"price"`
	ProviderCost decimal.Decimal `json:"providerCost"`
	Stock        int64           `json:"stock" validate:"min=0"`
}

// AdjustStockRequest delta relativo de stock (positivo repone, negativo descuenta).
type AdjustStockRequest struct {
	Delta int64 `json:"delta" validate:"required"`
}

// SetStockRequest stock absoluto, solo dueño.
type SetStockRequest struct {
	Stock int64 `json:"stock" validate:"min=0"`
}

// ProductResponse vista de producto para el kiosco.
type ProductResponse struct {
	ID           string          `json:"id"`
	Barcode      string          `json:"barcode"`
	Name         string          `json:"name"`
	Category     string          `json:"category,omitempty"`
	Price        decimal.Decimal `json:"price"`
	ProviderCost decimal.Decimal `json:"providerCost"`
	Stock        int64           `json:"stock"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ToProductResponse mapea la entidad a su vista HTTP.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Barcode:      p.Barcode,
		Name:         p.Name,
		Category:     p.Category,
		Price:        p.Price,
		ProviderCost: p.ProviderCost,
		Stock:        p.Stock,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockfacil/kiosco-pos/internal/domain/entity"
)

// CommitSaleRequest carrito a confirmar: líneas por producto con cantidad.
type CommitSaleRequest struct {
	Items []SaleLineRequest `json:"items" validate:"required,min=1,dive"`
}

// SaleLineRequest una línea del carrito.
type SaleLineRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,min=1"`
}

// SaleResponse venta confirmada con sus líneas.
type SaleResponse struct {
	ID         string             `json:"id"`
	Total      decimal.Decimal    `json:"total"`
	TotalCost  decimal.Decimal    `json:"totalCost"`
	Profit     decimal.Decimal    `json:"profit"`
	ItemsCount int64              `json:"itemsCount"`
	CreatedAt  time.Time          `json:"createdAt"`
	Items      []SaleItemResponse `json:"items"`
}

// SaleItemResponse línea persistida de una venta.
type SaleItemResponse struct {
	ProductID string          `json:"productId"`
	Barcode   string          `json:"barcode"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// ToSaleResponse arma la vista de la venta con sus líneas.
func ToSaleResponse(s *entity.Sale, items []*entity.SaleItem) SaleResponse {
	resp := SaleResponse{
		ID:         s.ID,
		Total:      s.Total,
		TotalCost:  s.TotalCost,
		Profit:     s.Profit,
		ItemsCount: s.ItemsCount,
		CreatedAt:  s.CreatedAt,
		Items:      make([]SaleItemResponse, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, SaleItemResponse{
			ProductID: it.ProductID,
			Barcode:   it.Barcode,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return resp
}

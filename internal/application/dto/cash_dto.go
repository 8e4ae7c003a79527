package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockfacil/kiosco-pos/internal/domain/entity"
	"github.com/stockfacil/kiosco-pos/internal/domain/repository"
)

// CashSummaryResponse agregados del día en curso.
type CashSummaryResponse struct {
	DateKey      string          `json:"dateKey"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	TotalCost    decimal.Decimal `json:"totalCost"`
	ProfitAmount decimal.Decimal `json:"profitAmount"`
	SalesCount   int64           `json:"salesCount"`
	ItemsCount   int64           `json:"itemsCount"`
}

// ClosureResponse cierre de caja persistido.
type ClosureResponse struct {
	ID           string          `json:"id"`
	DateKey      string          `json:"dateKey"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	TotalCost    decimal.Decimal `json:"totalCost"`
	ProfitAmount decimal.Decimal `json:"profitAmount"`
	SalesCount   int64           `json:"salesCount"`
	ItemsCount   int64           `json:"itemsCount"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// CashSnapshotResponse estado de caja de hoy: agregados, ventas, cierre si existe.
type CashSnapshotResponse struct {
	Summary        CashSummaryResponse `json:"summary"`
	Sales          []SaleResponse      `json:"sales"`
	TodayClosure   *ClosureResponse    `json:"todayClosure,omitempty"`
	RecentClosures []ClosureResponse   `json:"recentClosures"`
}

// ToCashSummaryResponse mapea el agregado SQL a la vista HTTP.
func ToCashSummaryResponse(dateKey string, s repository.SalesSummary) CashSummaryResponse {
	return CashSummaryResponse{
		DateKey:      dateKey,
		TotalAmount:  s.TotalAmount,
		TotalCost:    s.TotalCost,
		ProfitAmount: s.ProfitAmount,
		SalesCount:   s.SalesCount,
		ItemsCount:   s.ItemsCount,
	}
}

// ToClosureResponse mapea la entidad cierre a su vista HTTP.
func ToClosureResponse(c *entity.CashClosure) ClosureResponse {
	return ClosureResponse{
		ID:           c.ID,
		DateKey:      c.DateKey,
		TotalAmount:  c.TotalAmount,
		TotalCost:    c.TotalCost,
		ProfitAmount: c.ProfitAmount,
		SalesCount:   c.SalesCount,
		ItemsCount:   c.ItemsCount,
		CreatedAt:    c.CreatedAt,
	}
}

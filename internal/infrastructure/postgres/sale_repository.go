package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stockfacil/kiosco-pos/internal/domain/entity"
	"github.com/stockfacil/kiosco-pos/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de una venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, tenant_id, user_id, total, total_cost, profit, items_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.TenantID, sale.UserID, sale.Total, sale.TotalCost,
		sale.Profit, sale.ItemsCount, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de venta.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, tenant_id, product_id, barcode, name, quantity, unit_price, subtotal, unit_provider_cost, subtotal_cost, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.TenantID, item.ProductID, item.Barcode, item.Name,
		item.Quantity, item.UnitPrice, item.Subtotal, item.UnitProviderCost,
		item.SubtotalCost, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// ListByTenantAndRange lista las ventas del kiosco con created_at en [from, to).
func (r *SaleRepo) ListByTenantAndRange(tenantID string, from, to time.Time) ([]*entity.Sale, error) {
	query := `
		SELECT id, tenant_id, user_id, total, total_cost, profit, items_count, created_at
		FROM sales
		WHERE tenant_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.TenantID, &s.UserID, &s.Total, &s.TotalCost,
			&s.Profit, &s.ItemsCount, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ListItemsBySale lista las líneas de una venta.
func (r *SaleRepo) ListItemsBySale(saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, tenant_id, product_id, barcode, name, quantity, unit_price, subtotal, unit_provider_cost, subtotal_cost, created_at
		FROM sale_items WHERE sale_id = $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.TenantID, &it.ProductID, &it.Barcode,
			&it.Name, &it.Quantity, &it.UnitPrice, &it.Subtotal,
			&it.UnitProviderCost, &it.SubtotalCost, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// SummarizeRange agrega total, costo, ganancia, cantidad de ventas e items
// sobre las ventas del kiosco con created_at en [from, to). Es la fuente del
// cierre de caja, calculada en SQL para no paginar ventas en memoria.
func (r *SaleRepo) SummarizeRange(tenantID string, from, to time.Time) (repository.SalesSummary, error) {
	query := `
		SELECT COALESCE(SUM(total), 0), COALESCE(SUM(total_cost), 0),
		       COALESCE(SUM(profit), 0), COUNT(*), COALESCE(SUM(items_count), 0)
		FROM sales
		WHERE tenant_id = $1 AND created_at >= $2 AND created_at < $3`
	var s repository.SalesSummary
	var total, cost, profit decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, tenantID, from, to).Scan(
		&total, &cost, &profit, &s.SalesCount, &s.ItemsCount,
	)
	if err != nil {
		return repository.SalesSummary{}, fmt.Errorf("summarize sales: %w", err)
	}
	s.TotalAmount, s.TotalCost, s.ProfitAmount = total, cost, profit
	return s, nil
}

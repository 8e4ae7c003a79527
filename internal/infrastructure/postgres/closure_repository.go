package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/stockfacil/kiosco-pos/internal/domain"
	"github.com/stockfacil/kiosco-pos/internal/domain/entity"
	"github.com/stockfacil/kiosco-pos/internal/domain/repository"
)

var _ repository.ClosureRepository = (*ClosureRepo)(nil)

const closureColumns = `id, tenant_id, user_id, date_key, closure_key, total_amount, total_cost, profit_amount, sales_count, items_count, created_at`

// ClosureRepo implementación de ClosureRepository sobre PostgreSQL (usable con pool o tx).
type ClosureRepo struct {
	q Querier
}

// NewClosureRepository construye el adaptador de cierres. Pasar pool o tx (Querier).
func NewClosureRepository(q Querier) *ClosureRepo {
	return &ClosureRepo{q: q}
}

// Create persiste un cierre de caja. El UNIQUE sobre closure_key garantiza a lo
// sumo un cierre por kiosco y día: la violación se traduce a ErrAlreadyClosed.
func (r *ClosureRepo) Create(closure *entity.CashClosure) error {
	query := `
		INSERT INTO cash_closures (` + closureColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		closure.ID, closure.TenantID, closure.UserID, closure.DateKey, closure.ClosureKey,
		closure.TotalAmount, closure.TotalCost, closure.ProfitAmount,
		closure.SalesCount, closure.ItemsCount, closure.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyClosed
		}
		return fmt.Errorf("insert cash closure: %w", err)
	}
	return nil
}

// GetByID obtiene un cierre por ID.
func (r *ClosureRepo) GetByID(id string) (*entity.CashClosure, error) {
	return r.scanOne(`SELECT `+closureColumns+` FROM cash_closures WHERE id = $1`, id)
}

// GetByClosureKey obtiene el cierre por su clave natural tenantId:dateKey.
func (r *ClosureRepo) GetByClosureKey(key string) (*entity.CashClosure, error) {
	return r.scanOne(`SELECT `+closureColumns+` FROM cash_closures WHERE closure_key = $1`, key)
}

// ListRecentByTenant lista los últimos cierres del kiosco, más nuevos primero.
func (r *ClosureRepo) ListRecentByTenant(tenantID string, limit int) ([]*entity.CashClosure, error) {
	query := `
		SELECT ` + closureColumns + `
		FROM cash_closures WHERE tenant_id = $1 ORDER BY date_key DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("list cash closures: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashClosure
	for rows.Next() {
		var c entity.CashClosure
		if err := rows.Scan(&c.ID, &c.TenantID, &c.UserID, &c.DateKey, &c.ClosureKey,
			&c.TotalAmount, &c.TotalCost, &c.ProfitAmount,
			&c.SalesCount, &c.ItemsCount, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cash closure: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func (r *ClosureRepo) scanOne(query string, args ...any) (*entity.CashClosure, error) {
	var c entity.CashClosure
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&c.ID, &c.TenantID, &c.UserID, &c.DateKey, &c.ClosureKey,
		&c.TotalAmount, &c.TotalCost, &c.ProfitAmount,
		&c.SalesCount, &c.ItemsCount, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash closure: %w", err)
	}
	return &c, nil
}

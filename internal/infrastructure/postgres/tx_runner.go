package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stockfacil/kiosco-pos/internal/application/cash"
	"github.com/stockfacil/kiosco-pos/internal/application/catalog"
	"github.com/stockfacil/kiosco-pos/internal/application/registration"
	"github.com/stockfacil/kiosco-pos/internal/application/sales"
	"github.com/stockfacil/kiosco-pos/internal/domain/repository"
)

// Ensure TxRunner implementa los puertos transaccionales de cada caso de uso.
var _ sales.TxRunner = (*TxRunner)(nil)
var _ cash.ClosureTxRunner = (*TxRunner)(nil)
var _ registration.RegistrationTxRunner = (*TxRunner)(nil)
var _ catalog.StockTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunSale inicia una transacción con repos de ventas y productos atados a la tx
// (descuento de stock + alta de venta e items como unidad atómica).
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewSaleRepository(tx), NewProductRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunStock inicia una transacción con el repo de productos atado a la tx
// (ajustes de stock con la fila bloqueada).
func (r *TxRunner) RunStock(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewProductRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunClosure inicia una transacción con repos de ventas y cierres (CloseToday).
func (r *TxRunner) RunClosure(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	closureRepo repository.ClosureRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewSaleRepository(tx), NewClosureRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunRegistration inicia una transacción con repos de perfiles, tenants y
// empleados: alta atómica de kiosco+dueño y las dobles escrituras de
// verificación de correo y permisos.
func (r *TxRunner) RunRegistration(ctx context.Context, fn func(
	profileRepo repository.ProfileRepository,
	tenantRepo repository.TenantRepository,
	employeeRepo repository.EmployeeRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewProfileRepository(tx), NewTenantRepository(tx), NewEmployeeRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

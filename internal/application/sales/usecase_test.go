package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockfacil/kiosco-pos/internal/application/sales"
	"github.com/stockfacil/kiosco-pos/internal/domain"
	"github.com/stockfacil/kiosco-pos/internal/domain/entity"
	"github.com/stockfacil/kiosco-pos/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(ps ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range ps {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByTenantAndBarcode(tenantID, barcode string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.TenantID == tenantID && p.Barcode == barcode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) UpdateStock(id string, stock int64, updatedBy string) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	if stock < 0 {
		return domain.ErrInsufficientStock
	}
	p.Stock = stock
	p.UpdatedBy = updatedBy
	return nil
}

func (r *fakeProductRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.TenantID == tenantID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) snapshot() map[string]*entity.Product {
	snap := make(map[string]*entity.Product, len(r.products))
	for id, p := range r.products {
		cp := *p
		snap[id] = &cp
	}
	return snap
}

type fakeSaleRepo struct {
	sales []*entity.Sale
	items []*entity.SaleItem
}

func (r *fakeSaleRepo) Create(s *entity.Sale) error {
	r.sales = append(r.sales, s)
	return nil
}

func (r *fakeSaleRepo) CreateItem(it *entity.SaleItem) error {
	r.items = append(r.items, it)
	return nil
}

func (r *fakeSaleRepo) ListByTenantAndRange(string, time.Time, time.Time) ([]*entity.Sale, error) {
	return r.sales, nil
}

func (r *fakeSaleRepo) ListItemsBySale(saleID string) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	for _, it := range r.items {
		if it.SaleID == saleID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) SummarizeRange(string, time.Time, time.Time) (repository.SalesSummary, error) {
	return repository.SalesSummary{}, nil
}

// fakeTxRunner imita la atomicidad real: si el callback falla, restaura el
// estado previo de productos y ventas.
type fakeTxRunner struct {
	products *fakeProductRepo
	sales    *fakeSaleRepo
}

func (tx *fakeTxRunner) RunSale(_ context.Context, fn func(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
) error) error {
	snap := tx.products.snapshot()
	salesLen, itemsLen := len(tx.sales.sales), len(tx.sales.items)

	if err := fn(tx.sales, tx.products); err != nil {
		tx.products.products = snap
		tx.sales.sales = tx.sales.sales[:salesLen]
		tx.sales.items = tx.sales.items[:itemsLen]
		return err
	}
	return nil
}

type fakeMirror struct {
	sales int
}

func (m *fakeMirror) MirrorSale(*entity.Sale, []*entity.SaleItem) { m.sales++ }

// ──────────────────────────────────────────────────────────────────────────────
// Tests Commit
// ──────────────────────────────────────────────────────────────────────────────

func dctxKiosco(tenantID string) domain.Context {
	return domain.Context{
		UserID:   "user-1",
		TenantID: tenantID,
		Role:     entity.RoleEmployee,
	}
}

func productoDeKiosco(id, tenantID, precio, costo string, stock int64) *entity.Product {
	return &entity.Product{
		ID:           id,
		TenantID:     tenantID,
		Barcode:      "779" + id,
		Name:         "Producto " + id,
		Price:        decimal.RequireFromString(precio),
		ProviderCost: decimal.RequireFromString(costo),
		Stock:        stock,
	}
}

// La venta confirmada descuenta stock, registra todas las líneas y cumple
// profit = total - totalCost.
func TestCommit_VentaCompleta(t *testing.T) {
	products := newFakeProductRepo(
		productoDeKiosco("a", "kiosco-1", "100.00", "60.00", 10),
		productoDeKiosco("b", "kiosco-1", "250.50", "180.00", 3),
	)
	salesRepo := &fakeSaleRepo{}
	mirror := &fakeMirror{}
	uc := sales.NewCommitSaleUseCase(&fakeTxRunner{products: products, sales: salesRepo}, mirror)

	sale, items, err := uc.Commit(context.Background(), dctxKiosco("kiosco-1"), []sales.LineInput{
		{ProductID: "a", Quantity: 3},
		{ProductID: "b", Quantity: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, "801.00", sale.Total.StringFixed(2))
	assert.Equal(t, "540.00", sale.TotalCost.StringFixed(2))
	assert.Equal(t, "261.00", sale.Profit.StringFixed(2))
	assert.Equal(t, sale.Total.Sub(sale.TotalCost).String(), sale.Profit.String())
	assert.Equal(t, int64(5), sale.ItemsCount)
	require.Len(t, items, 2)

	// Stock descontado
	a, _ := products.GetByID("a")
	b, _ := products.GetByID("b")
	assert.Equal(t, int64(7), a.Stock)
	assert.Equal(t, int64(1), b.Stock)

	// Venta persistida y espejada
	require.Len(t, salesRepo.sales, 1)
	require.Len(t, salesRepo.items, 2)
	assert.Equal(t, 1, mirror.sales)
}

// Si una línea no alcanza el stock releído, no se persiste nada: ni venta, ni
// items, ni descuentos parciales.
func TestCommit_TodoONada(t *testing.T) {
	products := newFakeProductRepo(
		productoDeKiosco("a", "kiosco-1", "100.00", "60.00", 10),
		productoDeKiosco("b", "kiosco-1", "50.00", "30.00", 1),
	)
	salesRepo := &fakeSaleRepo{}
	uc := sales.NewCommitSaleUseCase(&fakeTxRunner{products: products, sales: salesRepo}, nil)

	_, _, err := uc.Commit(context.Background(), dctxKiosco("kiosco-1"), []sales.LineInput{
		{ProductID: "a", Quantity: 2},
		{ProductID: "b", Quantity: 5}, // stock 1: falla
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	a, _ := products.GetByID("a")
	assert.Equal(t, int64(10), a.Stock, "la línea previa no debe quedar descontada")
	assert.Empty(t, salesRepo.sales)
	assert.Empty(t, salesRepo.items)
}

// Un producto de otro kiosco en el carrito aborta la venta completa.
func TestCommit_ProductoDeOtroKiosco(t *testing.T) {
	products := newFakeProductRepo(
		productoDeKiosco("a", "kiosco-1", "100.00", "60.00", 10),
		productoDeKiosco("x", "kiosco-2", "100.00", "60.00", 10),
	)
	salesRepo := &fakeSaleRepo{}
	uc := sales.NewCommitSaleUseCase(&fakeTxRunner{products: products, sales: salesRepo}, nil)

	_, _, err := uc.Commit(context.Background(), dctxKiosco("kiosco-1"), []sales.LineInput{
		{ProductID: "a", Quantity: 1},
		{ProductID: "x", Quantity: 1},
	})
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, salesRepo.sales)
}

func TestCommit_CarritoVacio(t *testing.T) {
	uc := sales.NewCommitSaleUseCase(&fakeTxRunner{products: newFakeProductRepo(), sales: &fakeSaleRepo{}}, nil)
	_, _, err := uc.Commit(context.Background(), dctxKiosco("kiosco-1"), nil)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestCommit_CantidadInvalida(t *testing.T) {
	uc := sales.NewCommitSaleUseCase(&fakeTxRunner{products: newFakeProductRepo(), sales: &fakeSaleRepo{}}, nil)
	_, _, err := uc.Commit(context.Background(), dctxKiosco("kiosco-1"), []sales.LineInput{
		{ProductID: "a", Quantity: 0},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

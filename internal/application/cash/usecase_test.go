package cash_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockfacil/kiosco-pos/internal/application/cash"
	"github.com/stockfacil/kiosco-pos/internal/domain"
	"github.com/stockfacil/kiosco-pos/internal/domain/entity"
	"github.com/stockfacil/kiosco-pos/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeSaleRepo struct {
	sales []*entity.Sale
}

func (r *fakeSaleRepo) Create(s *entity.Sale) error             { r.sales = append(r.sales, s); return nil }
func (r *fakeSaleRepo) CreateItem(it *entity.SaleItem) error    { return nil }
func (r *fakeSaleRepo) ListItemsBySale(string) ([]*entity.SaleItem, error) { return nil, nil }

func (r *fakeSaleRepo) ListByTenantAndRange(tenantID string, from, to time.Time) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.sales {
		if s.TenantID == tenantID && !s.CreatedAt.Before(from) && s.CreatedAt.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) SummarizeRange(tenantID string, from, to time.Time) (repository.SalesSummary, error) {
	sum := repository.SalesSummary{
		TotalAmount:  decimal.Zero,
		TotalCost:    decimal.Zero,
		ProfitAmount: decimal.Zero,
	}
	list, _ := r.ListByTenantAndRange(tenantID, from, to)
	for _, s := range list {
		sum.TotalAmount = sum.TotalAmount.Add(s.Total)
		sum.TotalCost = sum.TotalCost.Add(s.TotalCost)
		sum.ProfitAmount = sum.ProfitAmount.Add(s.Profit)
		sum.SalesCount++
		sum.ItemsCount += s.ItemsCount
	}
	return sum, nil
}

type fakeClosureRepo struct {
	closures []*entity.CashClosure
}

func (r *fakeClosureRepo) Create(c *entity.CashClosure) error {
	for _, existing := range r.closures {
		if existing.ClosureKey == c.ClosureKey {
			return domain.ErrAlreadyClosed
		}
	}
	r.closures = append(r.closures, c)
	return nil
}

func (r *fakeClosureRepo) GetByID(id string) (*entity.CashClosure, error) {
	for _, c := range r.closures {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeClosureRepo) GetByClosureKey(key string) (*entity.CashClosure, error) {
	for _, c := range r.closures {
		if c.ClosureKey == key {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeClosureRepo) ListRecentByTenant(tenantID string, limit int) ([]*entity.CashClosure, error) {
	var out []*entity.CashClosure
	for _, c := range r.closures {
		if c.TenantID == tenantID {
			out = append(out, c)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeClosureTx struct {
	sales    *fakeSaleRepo
	closures *fakeClosureRepo
}

func (tx *fakeClosureTx) RunClosure(_ context.Context, fn func(
	saleRepo repository.SaleRepository,
	closureRepo repository.ClosureRepository,
) error) error {
	return fn(tx.sales, tx.closures)
}

type fakeMirror struct{ closures []*entity.CashClosure }

func (m *fakeMirror) MirrorClosure(c *entity.CashClosure) { m.closures = append(m.closures, c) }

type fakeDeduper struct {
	acquired map[string]bool
	fail     bool
}

func (d *fakeDeduper) Acquire(_ context.Context, key string) (bool, error) {
	if d.fail {
		return false, errors.New("redis caído")
	}
	if d.acquired == nil {
		d.acquired = make(map[string]bool)
	}
	if d.acquired[key] {
		return false, nil
	}
	d.acquired[key] = true
	return true, nil
}

type fakeReport struct{}

func (fakeReport) ClosureReport(*entity.CashClosure, []*entity.Sale) ([]byte, error) {
	return []byte("%PDF-1.4"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func venta(tenantID, total, costo string, items int64, at time.Time) *entity.Sale {
	t := decimal.RequireFromString(total)
	c := decimal.RequireFromString(costo)
	return &entity.Sale{
		ID:         "sale-" + total,
		TenantID:   tenantID,
		Total:      t,
		TotalCost:  c,
		Profit:     t.Sub(c),
		ItemsCount: items,
		CreatedAt:  at,
	}
}

func buildUC(t *testing.T, salesRepo *fakeSaleRepo, closures *fakeClosureRepo, mirror *fakeMirror, dedup cash.Deduper) *cash.CashUseCase {
	t.Helper()
	loc, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	require.NoError(t, err)
	var m cash.Mirror
	if mirror != nil {
		m = mirror
	}
	return cash.NewCashUseCase(
		salesRepo, closures, &fakeClosureTx{sales: salesRepo, closures: closures},
		m, dedup, fakeReport{}, loc, zerolog.Nop(),
	)
}

// El cierre persiste exactamente los agregados de las ventas del día y respeta
// ganancia = total - costo.
func TestCloseToday_AgregadosCorrectos(t *testing.T) {
	now := time.Now()
	salesRepo := &fakeSaleRepo{sales: []*entity.Sale{
		venta("kiosco-1", "300.00", "180.00", 3, now),
		venta("kiosco-1", "150.50", "90.00", 2, now),
		venta("kiosco-2", "999.00", "500.00", 9, now), // otro kiosco: fuera
	}}
	closures := &fakeClosureRepo{}
	mirror := &fakeMirror{}
	uc := buildUC(t, salesRepo, closures, mirror, nil)

	dctx := domain.Context{UserID: "user-1", TenantID: "kiosco-1", Role: entity.RoleOwner}
	closure, err := uc.CloseToday(context.Background(), dctx)
	require.NoError(t, err)

	assert.Equal(t, "450.50", closure.TotalAmount.StringFixed(2))
	assert.Equal(t, "270.00", closure.TotalCost.StringFixed(2))
	assert.Equal(t, "180.50", closure.ProfitAmount.StringFixed(2))
	assert.Equal(t, int64(2), closure.SalesCount)
	assert.Equal(t, int64(5), closure.ItemsCount)
	assert.Equal(t, entity.ClosureKey("kiosco-1", closure.DateKey), closure.ClosureKey)

	// Replicado una vez
	require.Len(t, mirror.closures, 1)
}

// Segundo cierre del mismo día: ErrAlreadyClosed, sin cierre duplicado.
func TestCloseToday_Idempotente(t *testing.T) {
	salesRepo := &fakeSaleRepo{}
	closures := &fakeClosureRepo{}
	uc := buildUC(t, salesRepo, closures, nil, nil)
	dctx := domain.Context{UserID: "user-1", TenantID: "kiosco-1", Role: entity.RoleOwner}

	_, err := uc.CloseToday(context.Background(), dctx)
	require.NoError(t, err)

	_, err = uc.CloseToday(context.Background(), dctx)
	assert.ErrorIs(t, err, domain.ErrAlreadyClosed)
	assert.Len(t, closures.closures, 1)
}

// Cierres de kioscos distintos el mismo día no se pisan entre sí.
func TestCloseToday_KioscosIndependientes(t *testing.T) {
	closures := &fakeClosureRepo{}
	uc := buildUC(t, &fakeSaleRepo{}, closures, nil, nil)

	_, err := uc.CloseToday(context.Background(), domain.Context{UserID: "u1", TenantID: "kiosco-1", Role: entity.RoleOwner})
	require.NoError(t, err)
	_, err = uc.CloseToday(context.Background(), domain.Context{UserID: "u2", TenantID: "kiosco-2", Role: entity.RoleOwner})
	require.NoError(t, err)
	assert.Len(t, closures.closures, 2)
}

// El dedup evita replicar dos veces la misma clave; si el dedup falla, se
// replica igual.
func TestCloseToday_DedupDeReplicas(t *testing.T) {
	mirror := &fakeMirror{}
	dedup := &fakeDeduper{acquired: map[string]bool{}}
	uc := buildUC(t, &fakeSaleRepo{}, &fakeClosureRepo{}, mirror, dedup)

	_, err := uc.CloseToday(context.Background(), domain.Context{UserID: "u1", TenantID: "kiosco-1", Role: entity.RoleOwner})
	require.NoError(t, err)
	require.Len(t, mirror.closures, 1)

	// Con el dedup caído la réplica no se pierde.
	mirror2 := &fakeMirror{}
	uc2 := buildUC(t, &fakeSaleRepo{}, &fakeClosureRepo{}, mirror2, &fakeDeduper{fail: true})
	_, err = uc2.CloseToday(context.Background(), domain.Context{UserID: "u1", TenantID: "kiosco-9", Role: entity.RoleOwner})
	require.NoError(t, err)
	assert.Len(t, mirror2.closures, 1)
}

// El snapshot muestra agregados y ventas del día sin cerrar nada.
func TestSnapshotForToday(t *testing.T) {
	now := time.Now()
	salesRepo := &fakeSaleRepo{sales: []*entity.Sale{
		venta("kiosco-1", "100.00", "60.00", 1, now),
	}}
	closures := &fakeClosureRepo{}
	uc := buildUC(t, salesRepo, closures, nil, nil)
	dctx := domain.Context{UserID: "user-1", TenantID: "kiosco-1", Role: entity.RoleEmployee}

	snap, err := uc.SnapshotForToday(context.Background(), dctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), snap.Summary.SalesCount)
	assert.Nil(t, snap.TodayClosure)
	assert.Len(t, snap.Sales, 1)
	assert.Empty(t, closures.closures, "el snapshot no debe cerrar la caja")

	// Después de cerrar, el snapshot lo refleja.
	_, err = uc.CloseToday(context.Background(), dctx)
	require.NoError(t, err)
	snap, err = uc.SnapshotForToday(context.Background(), dctx)
	require.NoError(t, err)
	require.NotNil(t, snap.TodayClosure)
}

// El comprobante solo sale para cierres del propio kiosco.
func TestClosureReportPDF_AisladoPorKiosco(t *testing.T) {
	closures := &fakeClosureRepo{}
	uc := buildUC(t, &fakeSaleRepo{}, closures, nil, nil)

	closure, err := uc.CloseToday(context.Background(), domain.Context{UserID: "u1", TenantID: "kiosco-1", Role: entity.RoleOwner})
	require.NoError(t, err)

	pdf, err := uc.ClosureReportPDF(context.Background(), domain.Context{UserID: "u1", TenantID: "kiosco-1"}, closure.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	_, err = uc.ClosureReportPDF(context.Background(), domain.Context{UserID: "x", TenantID: "kiosco-2"}, closure.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

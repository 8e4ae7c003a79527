package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockfacil/kiosco-pos/internal/domain"
	"github.com/stockfacil/kiosco-pos/internal/domain/entity"
	"github.com/stockfacil/kiosco-pos/internal/domain/repository"
)

// CatalogUseCase administra el catálogo de productos del kiosco. Todas las
// operaciones quedan acotadas al tenant del contexto resuelto.
type CatalogUseCase struct {
	productRepo repository.ProductRepository
	txRunner    StockTxRunner
	mirror      Mirror
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(productRepo repository.ProductRepository, txRunner StockTxRunner, mirror Mirror) *CatalogUseCase {
	return &CatalogUseCase{productRepo: productRepo, txRunner: txRunner, mirror: mirror}
}

// CreateInput datos para el alta de un producto.
type CreateInput struct {
	Barcode      string
	Name         string
	Category     string
	Price        decimal.Decimal
	ProviderCost decimal.Decimal
	Stock        int64
}

// Create da de alta un producto. Requiere permiso de creación (dueño o empleado
// habilitado). El código de barras es único por kiosco.
func (uc *CatalogUseCase) Create(ctx context.Context, dctx domain.Context, input CreateInput) (*entity.Product, error) {
	if !dctx.CanCreate() {
		return nil, domain.ErrForbidden
	}

	barcode := strings.TrimSpace(input.Barcode)
	name := strings.TrimSpace(input.Name)
	if barcode == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.Price.LessThan(decimal.Zero) || input.ProviderCost.LessThan(decimal.Zero) || input.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		TenantID:     dctx.TenantID,
		Barcode:      barcode,
		Name:         name,
		Category:     strings.TrimSpace(input.Category),
		Price:        input.Price,
		ProviderCost: input.ProviderCost,
		Stock:        input.Stock,
		CreatedBy:    dctx.UserID,
		UpdatedBy:    dctx.UserID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}

	if uc.mirror != nil {
		uc.mirror.MirrorProduct(product)
	}
	return product, nil
}

// FindByBarcode busca un producto del kiosco por código de barras.
// Devuelve ErrNotFound si no existe en este tenant.
func (uc *CatalogUseCase) FindByBarcode(ctx context.Context, dctx domain.Context, barcode string) (*entity.Product, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByTenantAndBarcode(dctx.TenantID, barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// List lista los productos del kiosco en orden de alta.
func (uc *CatalogUseCase) List(ctx context.Context, dctx domain.Context, limit, offset int) ([]*entity.Product, error) {
	return uc.productRepo.ListByTenant(dctx.TenantID, limit, offset)
}

// AdjustStock aplica un delta relativo de stock con la fila bloqueada.
// Un delta negativo que deja el stock por debajo de cero falla con
// ErrInsufficientStock y no modifica nada.
func (uc *CatalogUseCase) AdjustStock(ctx context.Context, dctx domain.Context, productID string, delta int64) (*entity.Product, error) {
	if productID == "" || delta == 0 {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.Product
	err := uc.txRunner.RunStock(ctx, func(productRepo repository.ProductRepository) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.TenantID != dctx.TenantID {
			return domain.ErrForbidden
		}
		newStock := product.Stock + delta
		if newStock < 0 {
			return domain.ErrInsufficientStock
		}
		if err := productRepo.UpdateStock(product.ID, newStock, dctx.UserID); err != nil {
			return err
		}
		product.Stock = newStock
		product.UpdatedBy = dctx.UserID
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.mirror != nil {
		uc.mirror.MirrorProduct(updated)
	}
	return updated, nil
}

// SetStock fija el stock absoluto de un producto. Solo el dueño puede hacerlo.
func (uc *CatalogUseCase) SetStock(ctx context.Context, dctx domain.Context, productID string, stock int64) (*entity.Product, error) {
	if !dctx.IsOwner() {
		return nil, domain.ErrForbidden
	}
	if productID == "" || stock < 0 {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.Product
	err := uc.txRunner.RunStock(ctx, func(productRepo repository.ProductRepository) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.TenantID != dctx.TenantID {
			return domain.ErrForbidden
		}
		if err := productRepo.UpdateStock(product.ID, stock, dctx.UserID); err != nil {
			return err
		}
		product.Stock = stock
		product.UpdatedBy = dctx.UserID
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.mirror != nil {
		uc.mirror.MirrorProduct(updated)
	}
	return updated, nil
}

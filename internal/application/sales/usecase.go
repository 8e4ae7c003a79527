package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockfacil/kiosco-pos/internal/domain"
	"github.com/stockfacil/kiosco-pos/internal/domain/entity"
	"github.com/stockfacil/kiosco-pos/internal/domain/repository"
)

// CommitSaleUseCase confirma un carrito contra la base: relee stock con bloqueo
// de fila (SELECT FOR UPDATE), descuenta todas las líneas y registra la venta
// en una sola transacción.
type CommitSaleUseCase struct {
	txRunner TxRunner
	mirror   Mirror
}

// NewCommitSaleUseCase construye el caso de uso.
func NewCommitSaleUseCase(txRunner TxRunner, mirror Mirror) *CommitSaleUseCase {
	return &CommitSaleUseCase{txRunner: txRunner, mirror: mirror}
}

// LineInput una línea a comprometer: producto y cantidad.
type LineInput struct {
	ProductID string
	Quantity  int64
}

// Commit ejecuta el compromiso de venta. Si cualquier línea no alcanza el
// stock releído, toda la transacción se revierte y no se persiste nada.
func (uc *CommitSaleUseCase) Commit(ctx context.Context, dctx domain.Context, lines []LineInput) (*entity.Sale, []*entity.SaleItem, error) {
	if len(lines) == 0 {
		return nil, nil, domain.ErrEmptyCart
	}
	for _, l := range lines {
		if l.ProductID == "" || l.Quantity < 1 {
			return nil, nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:        uuid.New().String(),
		TenantID:  dctx.TenantID,
		UserID:    dctx.UserID,
		CreatedAt: now,
	}
	var items []*entity.SaleItem

	err := uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
	) error {
		total := decimal.Zero
		totalCost := decimal.Zero
		var itemsCount int64
		items = items[:0]

		for _, line := range lines {
			// Relee con la fila bloqueada: el stock visto al escanear pudo cambiar.
			product, err := productRepo.GetForUpdate(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if product.TenantID != dctx.TenantID {
				return domain.ErrForbidden
			}
			if line.Quantity > product.Stock {
				return domain.ErrInsufficientStock
			}

			qty := decimal.NewFromInt(line.Quantity)
			subtotal := product.Price.Mul(qty)
			subtotalCost := product.ProviderCost.Mul(qty)
			total = total.Add(subtotal)
			totalCost = totalCost.Add(subtotalCost)
			itemsCount += line.Quantity

			if err := productRepo.UpdateStock(product.ID, product.Stock-line.Quantity, dctx.UserID); err != nil {
				return err
			}

			items = append(items, &entity.SaleItem{
				ID:               uuid.New().String(),
				SaleID:           sale.ID,
				TenantID:         dctx.TenantID,
				ProductID:        product.ID,
				Barcode:          product.Barcode,
				Name:             product.Name,
				Quantity:         line.Quantity,
				UnitPrice:        product.Price,
				Subtotal:         subtotal,
				UnitProviderCost: product.ProviderCost,
				SubtotalCost:     subtotalCost,
				CreatedAt:        now,
			})
		}

		sale.Total = total
		sale.TotalCost = totalCost
		sale.Profit = total.Sub(totalCost)
		sale.ItemsCount = itemsCount

		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, it := range items {
			if err := saleRepo.CreateItem(it); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if uc.mirror != nil {
		uc.mirror.MirrorSale(sale, items)
	}
	return sale, items, nil
}

package sales

import (
	"context"

	"github.com/stockfacil/kiosco-pos/internal/domain/entity"
	"github.com/stockfacil/kiosco-pos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad del compromiso de venta: o se descuenta todo el stock y se
// inserta la venta completa, o no cambia nada.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// Mirror replica la venta confirmada hacia el espejo compartido, sin bloquear
// y sin propagar fallas al caller.
type Mirror interface {
	MirrorSale(sale *entity.Sale, items []*entity.SaleItem)
}

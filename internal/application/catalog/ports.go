package catalog

import (
	"context"

	"github.com/stockfacil/kiosco-pos/internal/domain/entity"
	"github.com/stockfacil/kiosco-pos/internal/domain/repository"
)

// StockTxRunner ejecuta un ajuste de stock con la fila del producto bloqueada.
type StockTxRunner interface {
	RunStock(ctx context.Context, fn func(productRepo repository.ProductRepository) error) error
}

// Mirror replica altas y cambios de producto hacia el espejo compartido.
type Mirror interface {
	MirrorProduct(p *entity.Product)
}

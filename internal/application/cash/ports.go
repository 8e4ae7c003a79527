package cash

import (
	"context"

	"github.com/stockfacil/kiosco-pos/internal/domain/entity"
	"github.com/stockfacil/kiosco-pos/internal/domain/repository"
)

// ClosureTxRunner ejecuta el cierre de caja dentro de una transacción de BD:
// los agregados y el insert del cierre ven el mismo snapshot.
type ClosureTxRunner interface {
	RunClosure(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		closureRepo repository.ClosureRepository,
	) error) error
}

// Mirror replica el cierre confirmado hacia el espejo compartido.
type Mirror interface {
	MirrorClosure(c *entity.CashClosure)
}

// Deduper marca una clave de cierre como ya replicada. Devuelve false si otra
// réplica ya la tomó; un error se trata como "replicar igual".
type Deduper interface {
	Acquire(ctx context.Context, key string) (bool, error)
}

// ReportGenerator arma el comprobante PDF de un cierre con sus ventas.
type ReportGenerator interface {
	ClosureReport(c *entity.CashClosure, sales []*entity.Sale) ([]byte, error)
}

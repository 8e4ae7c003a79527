// Package sync replica escrituras confirmadas hacia el espejo compartido.
// La replicación es best-effort: nunca bloquea ni hace fallar la operación
// local que la originó.
package sync

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/stockfacil/kiosco-pos/internal/application/auth"
	"github.com/stockfacil/kiosco-pos/internal/application/cash"
	"github.com/stockfacil/kiosco-pos/internal/application/catalog"
	"github.com/stockfacil/kiosco-pos/internal/application/registration"
	"github.com/stockfacil/kiosco-pos/internal/application/sales"
	"github.com/stockfacil/kiosco-pos/internal/domain/entity"
	"github.com/stockfacil/kiosco-pos/internal/interfaces/metrics"
)

// Ensure Bridge satisface los puertos de espejo de cada caso de uso.
var _ auth.Mirror = (*Bridge)(nil)
var _ catalog.Mirror = (*Bridge)(nil)
var _ sales.Mirror = (*Bridge)(nil)
var _ cash.Mirror = (*Bridge)(nil)
var _ registration.Mirror = (*Bridge)(nil)

const (
	defaultWorkers = 2
	channelBuffer  = 256
	syncTimeout    = 5 * time.Second
)

// Store escribe documentos en el espejo compartido.
type Store interface {
	SaveUser(ctx context.Context, p *entity.Profile, t *entity.Tenant) error
	SaveLoginEvent(ctx context.Context, ev *entity.LoginEvent) error
	SaveProduct(ctx context.Context, p *entity.Product) error
	SaveSale(ctx context.Context, s *entity.Sale, items []*entity.SaleItem) error
	SaveClosure(ctx context.Context, c *entity.CashClosure) error
}

type task struct {
	collection string
	fn         func(ctx context.Context) error
}

// Bridge desacopla las escrituras locales de su réplica: encola tareas en un
// canal con buffer y un grupo fijo de workers las ejecuta. Si la cola está
// llena la tarea se descarta con un warn, nunca se bloquea al caller.
type Bridge struct {
	store Store
	tasks chan task
	log   zerolog.Logger
}

// NewBridge construye el puente hacia el espejo. store puede ser nil cuando el
// espejo está deshabilitado; en ese caso Enqueue es un no-op.
func NewBridge(store Store, log zerolog.Logger) *Bridge {
	return &Bridge{
		store: store,
		tasks: make(chan task, channelBuffer),
		log:   log,
	}
}

// Start lanza los workers. Se detienen cuando ctx se cancela.
func (b *Bridge) Start(ctx context.Context) {
	if b.store == nil {
		return
	}
	for i := 0; i < defaultWorkers; i++ {
		go b.runWorker(ctx)
	}
}

func (b *Bridge) runWorker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case t, ok := <-b.tasks:
			if !ok {
				return
			}
			b.safeSync(t)
		}
	}
}

// safeSync ejecuta la réplica con timeout propio y traga cualquier falla:
// queda el warn y la métrica, el dato local ya está confirmado.
func (b *Bridge) safeSync(t task) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Warn().Interface("panic", r).Str("collection", t.collection).
				Msg("réplica al espejo abortada")
			metrics.SyncTotal.WithLabelValues(t.collection, "error").Inc()
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	if err := t.fn(ctx); err != nil {
		b.log.Warn().Err(err).Str("collection", t.collection).
			Msg("falló la réplica al espejo")
		metrics.SyncTotal.WithLabelValues(t.collection, "error").Inc()
		return
	}
	metrics.SyncTotal.WithLabelValues(t.collection, "ok").Inc()
}

// enqueue encola sin bloquear; con la cola llena descarta y avisa.
func (b *Bridge) enqueue(collection string, fn func(ctx context.Context) error) {
	if b.store == nil {
		return
	}
	select {
	case b.tasks <- task{collection: collection, fn: fn}:
	default:
		b.log.Warn().Str("collection", collection).Msg("cola del espejo llena, réplica descartada")
		metrics.SyncTotal.WithLabelValues(collection, "dropped").Inc()
	}
}

// MirrorUser replica perfil y tenant recién creados.
func (b *Bridge) MirrorUser(p *entity.Profile, t *entity.Tenant) {
	b.enqueue("usuarios", func(ctx context.Context) error {
		return b.store.SaveUser(ctx, p, t)
	})
}

// MirrorLoginEvent replica un evento de ingreso.
func (b *Bridge) MirrorLoginEvent(ev *entity.LoginEvent) {
	b.enqueue("sesiones", func(ctx context.Context) error {
		return b.store.SaveLoginEvent(ctx, ev)
	})
}

// MirrorProduct replica un alta o cambio de producto.
func (b *Bridge) MirrorProduct(p *entity.Product) {
	b.enqueue("productos", func(ctx context.Context) error {
		return b.store.SaveProduct(ctx, p)
	})
}

// MirrorSale replica una venta confirmada con sus líneas.
func (b *Bridge) MirrorSale(s *entity.Sale, items []*entity.SaleItem) {
	b.enqueue("ventas", func(ctx context.Context) error {
		return b.store.SaveSale(ctx, s, items)
	})
}

// MirrorClosure replica un cierre de caja.
func (b *Bridge) MirrorClosure(c *entity.CashClosure) {
	b.enqueue("cierres", func(ctx context.Context) error {
		return b.store.SaveClosure(ctx, c)
	})
}

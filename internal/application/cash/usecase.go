package cash

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stockfacil/kiosco-pos/internal/domain"
	"github.com/stockfacil/kiosco-pos/internal/domain/entity"
	"github.com/stockfacil/kiosco-pos/internal/domain/repository"
)

// Snapshot estado de caja del día: agregados, ventas del día, cierre si ya
// existe y los últimos cierres del kiosco.
type Snapshot struct {
	DateKey        string
	Summary        repository.SalesSummary
	Sales          []*entity.Sale
	TodayClosure   *entity.CashClosure
	RecentClosures []*entity.CashClosure
}

// CashUseCase calcula la caja del día y ejecuta el cierre diario, a lo sumo
// uno por kiosco y por fecha local.
type CashUseCase struct {
	saleRepo    repository.SaleRepository
	closureRepo repository.ClosureRepository
	txRunner    ClosureTxRunner
	mirror      Mirror
	deduper     Deduper
	report      ReportGenerator
	loc         *time.Location
	log         zerolog.Logger
}

// NewCashUseCase construye el caso de uso. loc define el huso del kiosco;
// el dateKey del cierre se calcula siempre en ese huso.
func NewCashUseCase(
	saleRepo repository.SaleRepository,
	closureRepo repository.ClosureRepository,
	txRunner ClosureTxRunner,
	mirror Mirror,
	deduper Deduper,
	report ReportGenerator,
	loc *time.Location,
	log zerolog.Logger,
) *CashUseCase {
	return &CashUseCase{
		saleRepo:    saleRepo,
		closureRepo: closureRepo,
		txRunner:    txRunner,
		mirror:      mirror,
		deduper:     deduper,
		report:      report,
		loc:         loc,
		log:         log,
	}
}

// SnapshotForToday arma la vista de caja del día en curso sin modificar nada.
func (uc *CashUseCase) SnapshotForToday(ctx context.Context, dctx domain.Context) (*Snapshot, error) {
	now := time.Now().In(uc.loc)
	dateKey := entity.DateKey(now, uc.loc)
	from, to := entity.DayBounds(now, uc.loc)

	summary, err := uc.saleRepo.SummarizeRange(dctx.TenantID, from, to)
	if err != nil {
		return nil, err
	}
	salesList, err := uc.saleRepo.ListByTenantAndRange(dctx.TenantID, from, to)
	if err != nil {
		return nil, err
	}
	today, err := uc.closureRepo.GetByClosureKey(entity.ClosureKey(dctx.TenantID, dateKey))
	if err != nil {
		return nil, err
	}
	recent, err := uc.closureRepo.ListRecentByTenant(dctx.TenantID, 7)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		DateKey:        dateKey,
		Summary:        summary,
		Sales:          salesList,
		TodayClosure:   today,
		RecentClosures: recent,
	}, nil
}

// CloseToday cierra la caja del día en curso. Los agregados se recalculan en
// SQL dentro de la transacción; la restricción única sobre closure_key hace
// que el segundo cierre concurrente del mismo día falle con ErrAlreadyClosed.
func (uc *CashUseCase) CloseToday(ctx context.Context, dctx domain.Context) (*entity.CashClosure, error) {
	now := time.Now().In(uc.loc)
	dateKey := entity.DateKey(now, uc.loc)
	closureKey := entity.ClosureKey(dctx.TenantID, dateKey)

	// Chequeo consultivo para responder rápido; el candado real es el índice único.
	existing, err := uc.closureRepo.GetByClosureKey(closureKey)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyClosed
	}

	from, to := entity.DayBounds(now, uc.loc)
	closure := &entity.CashClosure{
		ID:         uuid.New().String(),
		TenantID:   dctx.TenantID,
		UserID:     dctx.UserID,
		DateKey:    dateKey,
		ClosureKey: closureKey,
		CreatedAt:  now,
	}

	err = uc.txRunner.RunClosure(ctx, func(
		saleRepo repository.SaleRepository,
		closureRepo repository.ClosureRepository,
	) error {
		summary, err := saleRepo.SummarizeRange(dctx.TenantID, from, to)
		if err != nil {
			return err
		}
		closure.TotalAmount = summary.TotalAmount
		closure.TotalCost = summary.TotalCost
		closure.ProfitAmount = summary.ProfitAmount
		closure.SalesCount = summary.SalesCount
		closure.ItemsCount = summary.ItemsCount
		return closureRepo.Create(closure)
	})
	if err != nil {
		return nil, err
	}

	uc.replicate(ctx, closure)
	return closure, nil
}

// replicate envía el cierre al espejo, deduplicando por closureKey para no
// replicar dos veces la misma fecha.
func (uc *CashUseCase) replicate(ctx context.Context, closure *entity.CashClosure) {
	if uc.mirror == nil {
		return
	}
	if uc.deduper != nil {
		ok, err := uc.deduper.Acquire(ctx, closure.ClosureKey)
		if err != nil {
			uc.log.Warn().Err(err).Str("closure_key", closure.ClosureKey).
				Msg("dedup de cierre no disponible, se replica igual")
		} else if !ok {
			return
		}
	}
	uc.mirror.MirrorClosure(closure)
}

// ClosureReportPDF genera el comprobante PDF de un cierre propio del kiosco.
func (uc *CashUseCase) ClosureReportPDF(ctx context.Context, dctx domain.Context, closureID string) ([]byte, error) {
	closure, err := uc.closureRepo.GetByID(closureID)
	if err != nil {
		return nil, err
	}
	if closure == nil {
		return nil, domain.ErrNotFound
	}
	if closure.TenantID != dctx.TenantID {
		return nil, domain.ErrForbidden
	}

	dayStart, err := time.ParseInLocation(entity.DateKeyLayout, closure.DateKey, uc.loc)
	if err != nil {
		return nil, err
	}
	from, to := entity.DayBounds(dayStart, uc.loc)
	salesList, err := uc.saleRepo.ListByTenantAndRange(dctx.TenantID, from, to)
	if err != nil {
		return nil, err
	}
	return uc.report.ClosureReport(closure, salesList)
}

// Package mirror implementa el espejo compartido sobre MongoDB, con los
// nombres de colección y de campo que consume el panel de administración.
package mirror

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	syncbridge "github.com/stockfacil/kiosco-pos/internal/application/sync"
	"github.com/stockfacil/kiosco-pos/internal/domain/entity"
)

const defaultTimeout = 10 * time.Second

const (
	collectionUsers     = "usuarios"
	collectionTenants   = "negocios"
	collectionSessions  = "sesiones"
	collectionProducts  = "productos"
	collectionSales     = "ventas"
	collectionSaleItems = "ventaItems"
	collectionClosures  = "cierres"
)

var _ syncbridge.Store = (*MongoStore)(nil)

// Config conexión al espejo.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect abre el cliente de MongoDB y verifica conectividad con un ping.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, client.Database(cfg.Database), nil
}

// MongoStore escribe los documentos espejo. Todas las escrituras son upserts
// por _id: reintentar una réplica es inocuo.
type MongoStore struct {
	db *mongo.Database
}

// NewMongoStore construye el store sobre la base dada.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (s *MongoStore) upsert(ctx context.Context, collection, id string, doc bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := s.db.Collection(collection).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": doc},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", collection, err)
	}
	return nil
}

// SaveUser replica el perfil y su negocio.
func (s *MongoStore) SaveUser(ctx context.Context, p *entity.Profile, t *entity.Tenant) error {
	if err := s.upsert(ctx, collectionUsers, p.ID, bson.M{
		"kioscoId":        p.TenantID,
		"email":           p.Email,
		"nombre":          p.Name,
		"telefono":        p.Phone,
		"rol":             string(p.Role),
		"estado":          p.Status,
		"plan":            p.Plan,
		"puedeCrear":      p.CanCreateProducts,
		"emailVerificado": p.EmailVerified,
		"creadoEl":        p.CreatedAt,
	}); err != nil {
		return err
	}
	if t == nil {
		return nil
	}
	return s.upsert(ctx, collectionTenants, t.ID, bson.M{
		"duenoId":    t.OwnerID,
		"duenoEmail": t.OwnerEmail,
		"nombre":     t.Name,
		"pais":       t.Country,
		"provincia":  t.Province,
		"partido":    t.District,
		"localidad":  t.Locality,
		"direccion":  t.Address,
		"plan":       t.Plan,
		"estado":     t.Status,
		"creadoEl":   t.CreatedAt,
	})
}

// SaveLoginEvent replica un evento de ingreso.
func (s *MongoStore) SaveLoginEvent(ctx context.Context, ev *entity.LoginEvent) error {
	return s.upsert(ctx, collectionSessions, ev.ID, bson.M{
		"kioscoId":  ev.TenantID,
		"usuarioId": ev.UserID,
		"email":     ev.Email,
		"rol":       string(ev.Role),
		"ingresoEl": ev.LoggedAt,
	})
}

// SaveProduct replica un producto.
func (s *MongoStore) SaveProduct(ctx context.Context, p *entity.Product) error {
	return s.upsert(ctx, collectionProducts, p.ID, bson.M{
		"kioscoId":       p.TenantID,
		"codigoBarras":   p.Barcode,
		"nombre":         p.Name,
		"categoria":      p.Category,
		"precio":         p.Price.String(),
		"costoProveedor": p.ProviderCost.String(),
		"stock":          p.Stock,
		"actualizadoEl":  p.UpdatedAt,
	})
}

// SaveSale replica la venta y cada una de sus líneas.
func (s *MongoStore) SaveSale(ctx context.Context, sale *entity.Sale, items []*entity.SaleItem) error {
	if err := s.upsert(ctx, collectionSales, sale.ID, bson.M{
		"kioscoId":   sale.TenantID,
		"usuarioId":  sale.UserID,
		"total":      sale.Total.String(),
		"costoTotal": sale.TotalCost.String(),
		"ganancia":   sale.Profit.String(),
		"unidades":   sale.ItemsCount,
		"creadoEl":   sale.CreatedAt,
	}); err != nil {
		return err
	}
	for _, it := range items {
		if err := s.upsert(ctx, collectionSaleItems, it.ID, bson.M{
			"ventaId":        it.SaleID,
			"kioscoId":       it.TenantID,
			"productoId":     it.ProductID,
			"codigoBarras":   it.Barcode,
			"nombre":         it.Name,
			"cantidad":       it.Quantity,
			"precioUnitario": it.UnitPrice.String(),
			"subtotal":       it.Subtotal.String(),
			"costoProveedor": it.UnitProviderCost.String(),
			"subtotalCosto":  it.SubtotalCost.String(),
		}); err != nil {
			return err
		}
	}
	return nil
}

// SaveClosure replica un cierre de caja.
func (s *MongoStore) SaveClosure(ctx context.Context, c *entity.CashClosure) error {
	return s.upsert(ctx, collectionClosures, c.ID, bson.M{
		"kioscoId":   c.TenantID,
		"usuarioId":  c.UserID,
		"fecha":      c.DateKey,
		"claveUnica": c.ClosureKey,
		"total":      c.TotalAmount.String(),
		"costoTotal": c.TotalCost.String(),
		"ganancia":   c.ProfitAmount.String(),
		"ventas":     c.SalesCount,
		"unidades":   c.ItemsCount,
		"cerradoEl":  c.CreatedAt,
	})
}

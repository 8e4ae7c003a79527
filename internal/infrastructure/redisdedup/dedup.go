// Package redisdedup marca claves de cierre ya replicadas usando Redis.
package redisdedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stockfacil/kiosco-pos/internal/application/cash"
)

const dedupTTL = 48 * time.Hour

var _ cash.Deduper = (*Deduper)(nil)

// Deduper chequeo de idempotencia respaldado en Redis.
// Formato de clave: cierre:<kioscoId>:<fecha>.
type Deduper struct {
	client *redis.Client
}

// NewDeduper construye el deduper sobre el cliente dado.
func NewDeduper(client *redis.Client) *Deduper {
	return &Deduper{client: client}
}

// Acquire intenta tomar la clave. Devuelve true si esta réplica es la primera;
// false si otra ya la tomó. La marca expira sola pasado dedupTTL.
func (d *Deduper) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := d.client.SetNX(ctx, "cierre:"+key, "1", dedupTTL).Result()
	if err != nil {
		return false, fmt.Errorf("dedup acquire: %w", err)
	}
	return ok, nil
}

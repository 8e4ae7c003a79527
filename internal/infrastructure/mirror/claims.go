package mirror

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stockfacil/kiosco-pos/internal/application/registration"
)

const collectionClaims = "claims"

var _ registration.ClaimsIssuer = (*StoredClaimsIssuer)(nil)

// StoredClaimsIssuer publica los claims custom como documento por usuario.
// El proveedor de identidad los incorpora al próximo token que emite.
type StoredClaimsIssuer struct {
	col *mongo.Collection
}

// NewStoredClaimsIssuer construye el emisor sobre la base espejo.
func NewStoredClaimsIssuer(db *mongo.Database) *StoredClaimsIssuer {
	return &StoredClaimsIssuer{col: db.Collection(collectionClaims)}
}

// IssueClaims reemplaza los claims del usuario. La escritura es idempotente.
func (i *StoredClaimsIssuer) IssueClaims(ctx context.Context, uid string, claims map[string]any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{"actualizadoEl": time.Now()}
	for k, v := range claims {
		doc[k] = v
	}
	_, err := i.col.UpdateOne(ctx,
		bson.M{"_id": uid},
		bson.M{"$set": doc},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("issue claims: %w", err)
	}
	return nil
}

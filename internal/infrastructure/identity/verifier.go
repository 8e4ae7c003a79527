// Package identity valida los bearer tokens del proveedor de identidad.
package identity

import (
	"context"
	"strings"

	"github.com/stockfacil/kiosco-pos/internal/application/registration"
	"github.com/stockfacil/kiosco-pos/internal/domain"
	"github.com/stockfacil/kiosco-pos/pkg/jwt"
)

var _ registration.IdentityVerifier = (*JWTVerifier)(nil)

// JWTVerifier verifica tokens HS256 firmados con el secreto compartido con el
// proveedor de identidad.
type JWTVerifier struct {
	secret string
}

// NewJWTVerifier construye el verificador.
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: secret}
}

// Verify valida firma y vigencia del token y devuelve la identidad aseverada.
// Acepta el valor crudo o con prefijo "Bearer ".
func (v *JWTVerifier) Verify(_ context.Context, bearerToken string) (*registration.Identity, error) {
	raw := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(bearerToken), "Bearer "))
	if raw == "" {
		return nil, domain.ErrUnauthorized
	}
	claims, err := jwt.Parse(v.secret, raw)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	uid := claims.UserID
	if uid == "" {
		uid = claims.Subject
	}
	if uid == "" || claims.Email == "" {
		return nil, domain.ErrUnauthorized
	}
	return &registration.Identity{
		UID:           uid,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
	}, nil
}

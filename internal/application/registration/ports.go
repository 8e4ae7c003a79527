package registration

import (
	"context"

	"github.com/stockfacil/kiosco-pos/internal/domain/entity"
	"github.com/stockfacil/kiosco-pos/internal/domain/repository"
)

// RegistrationTxRunner ejecuta el alta de kiosco+dueño y las dobles escrituras
// de verificación y permisos como una sola transacción.
type RegistrationTxRunner interface {
	RunRegistration(ctx context.Context, fn func(
		profileRepo repository.ProfileRepository,
		tenantRepo repository.TenantRepository,
		employeeRepo repository.EmployeeRepository,
	) error) error
}

// Identity identidad verificada por el proveedor externo.
type Identity struct {
	UID           string
	Email         string
	EmailVerified bool
}

// IdentityVerifier valida el bearer token del proveedor de identidad y
// devuelve la identidad que asevera.
type IdentityVerifier interface {
	Verify(ctx context.Context, bearerToken string) (*Identity, error)
}

// ClaimsIssuer publica los claims custom (tenant, rol, permisos) para que el
// próximo token emitido los lleve. La emisión ocurre fuera de la transacción:
// su falla deja una inconsistencia recuperable, no revierte el alta.
type ClaimsIssuer interface {
	IssueClaims(ctx context.Context, uid string, claims map[string]any) error
}

// Mirror replica el perfil y el tenant recién creados hacia el espejo compartido.
type Mirror interface {
	MirrorUser(p *entity.Profile, t *entity.Tenant)
}

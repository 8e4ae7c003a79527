package registration

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/stockfacil/kiosco-pos/internal/application/dto"
	"github.com/stockfacil/kiosco-pos/internal/domain"
	"github.com/stockfacil/kiosco-pos/internal/domain/entity"
	"github.com/stockfacil/kiosco-pos/internal/domain/repository"
)

// RegistrationUseCase alta de dueños con su kiosco, verificación de email y
// administración de permisos de empleados.
type RegistrationUseCase struct {
	profileRepo  repository.ProfileRepository
	employeeRepo repository.EmployeeRepository
	planRepo     repository.PlanRepository
	txRunner     RegistrationTxRunner
	verifier     IdentityVerifier
	claims       ClaimsIssuer
	mirror       Mirror
	validate     *validator.Validate
	log          zerolog.Logger
}

// NewRegistrationUseCase construye el caso de uso.
func NewRegistrationUseCase(
	profileRepo repository.ProfileRepository,
	employeeRepo repository.EmployeeRepository,
	planRepo repository.PlanRepository,
	txRunner RegistrationTxRunner,
	verifier IdentityVerifier,
	claims ClaimsIssuer,
	mirror Mirror,
	log zerolog.Logger,
) *RegistrationUseCase {
	return &RegistrationUseCase{
		profileRepo:  profileRepo,
		employeeRepo: employeeRepo,
		planRepo:     planRepo,
		txRunner:     txRunner,
		verifier:     verifier,
		claims:       claims,
		mirror:       mirror,
		validate:     newValidator(),
		log:          log,
	}
}

// allowedPlans lee el allow-list de planes configurado. Si la configuración no
// está disponible o viene vacía aplica el conjunto por defecto.
func (uc *RegistrationUseCase) allowedPlans() map[string]bool {
	ids, err := uc.planRepo.ActivePlanIDs()
	if err != nil {
		uc.log.Warn().Err(err).Msg("configuración de planes no disponible, se usa el conjunto por defecto")
		ids = nil
	}
	if len(ids) == 0 {
		ids = entity.DefaultPlans()
	}
	allowed := make(map[string]bool, len(ids))
	for _, id := range ids {
		allowed[id] = true
	}
	return allowed
}

// RegisterEmployer da de alta un dueño con su kiosco. El bearer token del
// proveedor de identidad define el uid y el email; el alta de perfil y tenant
// es atómica y la publicación de claims ocurre después, fuera de la transacción.
func (uc *RegistrationUseCase) RegisterEmployer(ctx context.Context, bearerToken string, in dto.RegisterEmployerRequest) (*dto.RegisterEmployerResponse, error) {
	identity, err := uc.verifier.Verify(ctx, bearerToken)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	if verr := validateRegister(uc.validate, in); verr != nil {
		return nil, verr
	}

	plan := strings.ToLower(strings.TrimSpace(in.Plan))
	if plan == "" {
		plan = entity.PlanPrueba
	}
	if !uc.allowedPlans()[plan] {
		return nil, &ValidationError{Fields: map[string]string{"plan": "el plan elegido no está disponible"}}
	}

	// Duplicados: primero por uid, después por email.
	if existing, err := uc.profileRepo.GetByID(identity.UID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrConflict
	}
	if existing, err := uc.profileRepo.GetByEmail(identity.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	tenant := &entity.Tenant{
		ID:         uuid.New().String(),
		OwnerID:    identity.UID,
		OwnerEmail: identity.Email,
		Name:       strings.TrimSpace(in.Business),
		Country:    strings.TrimSpace(in.Country),
		Province:   strings.TrimSpace(in.Province),
		District:   strings.TrimSpace(in.District),
		Locality:   strings.TrimSpace(in.Locality),
		Address:    strings.TrimSpace(in.Address),
		Plan:       plan,
		Status:     entity.StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	verificationToken := uuid.New().String()
	tokenExpiry := now.Add(48 * time.Hour)
	profile := &entity.Profile{
		ID:                         identity.UID,
		TenantID:                   tenant.ID,
		Email:                      identity.Email,
		PasswordHash:               string(hash),
		Name:                       strings.TrimSpace(in.Name),
		Phone:                      strings.TrimSpace(in.Phone),
		Role:                       entity.RoleOwner,
		Status:                     entity.StatusActive,
		Plan:                       plan,
		CanCreateProducts:          true,
		EmailVerified:              identity.EmailVerified,
		VerificationToken:          verificationToken,
		VerificationTokenExpiresAt: &tokenExpiry,
		CreatedAt:                  now,
		UpdatedAt:                  now,
	}
	if identity.EmailVerified {
		profile.VerificationToken = ""
		profile.VerificationTokenExpiresAt = nil
	}

	err = uc.txRunner.RunRegistration(ctx, func(
		profileRepo repository.ProfileRepository,
		tenantRepo repository.TenantRepository,
		_ repository.EmployeeRepository,
	) error {
		if err := tenantRepo.Create(tenant); err != nil {
			return err
		}
		return profileRepo.Create(profile)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrConflict
		}
		return nil, err
	}

	uc.publishClaims(ctx, profile)
	if uc.mirror != nil {
		uc.mirror.MirrorUser(profile, tenant)
	}

	return &dto.RegisterEmployerResponse{
		UserID:   profile.ID,
		TenantID: tenant.ID,
		Plan:     plan,
		Role:     string(entity.RoleOwner),
	}, nil
}

// publishClaims publica los claims custom del usuario. Una falla acá no
// revierte nada: queda registrada y se reconcilia en el próximo login, porque
// cada request protegido resuelve la identidad contra la base de todos modos.
func (uc *RegistrationUseCase) publishClaims(ctx context.Context, profile *entity.Profile) {
	if uc.claims == nil {
		return
	}
	err := uc.claims.IssueClaims(ctx, profile.ID, map[string]any{
		"tenantId":          profile.TenantID,
		"role":              string(profile.Role),
		"canCreateProducts": profile.CanCreateProducts,
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("user_id", profile.ID).
			Msg("no se pudieron publicar los claims, se reintenta en el próximo login")
	}
}

// MarkEmailVerified confirma el email de un usuario. Si el bearer token ya
// viene con el email verificado por el proveedor alcanza con eso; si no, se
// exige el token de verificación almacenado, de un solo uso y con vencimiento.
func (uc *RegistrationUseCase) MarkEmailVerified(ctx context.Context, bearerToken string, in dto.MarkEmailVerifiedRequest) error {
	identity, err := uc.verifier.Verify(ctx, bearerToken)
	if err != nil {
		return domain.ErrUnauthorized
	}

	profile, err := uc.profileRepo.GetByID(in.UserID)
	if err != nil {
		return err
	}
	if profile == nil {
		return domain.ErrNotFound
	}

	trusted := identity.EmailVerified && identity.UID == profile.ID
	if !trusted {
		if profile.VerificationToken == "" || in.Token == "" || in.Token != profile.VerificationToken {
			return domain.ErrTokenMismatch
		}
		if profile.VerificationTokenExpiresAt == nil || !time.Now().Before(*profile.VerificationTokenExpiresAt) {
			return domain.ErrTokenExpired
		}
	}

	// Doble escritura: perfil y ficha de empleado quedan consistentes o nada cambia.
	return uc.txRunner.RunRegistration(ctx, func(
		profileRepo repository.ProfileRepository,
		_ repository.TenantRepository,
		employeeRepo repository.EmployeeRepository,
	) error {
		if err := profileRepo.MarkEmailVerified(profile.ID); err != nil {
			return err
		}
		return employeeRepo.MarkEmailVerified(profile.ID)
	})
}

// UpdateEmployeePermission cambia el permiso de alta de productos de un
// empleado. Solo el dueño del mismo kiosco puede hacerlo.
func (uc *RegistrationUseCase) UpdateEmployeePermission(ctx context.Context, dctx domain.Context, employeeID string, canCreate bool) error {
	if !dctx.IsOwner() {
		return domain.ErrForbidden
	}

	employee, err := uc.employeeRepo.GetByID(employeeID)
	if err != nil {
		return err
	}
	if employee == nil {
		return domain.ErrNotFound
	}
	if employee.TenantID != dctx.TenantID {
		return domain.ErrForbidden
	}

	err = uc.txRunner.RunRegistration(ctx, func(
		profileRepo repository.ProfileRepository,
		_ repository.TenantRepository,
		employeeRepo repository.EmployeeRepository,
	) error {
		// El registro legacy en profiles se actualiza solo si existe; hay
		// empleados dados de alta solo en employees.
		legacy, err := profileRepo.GetByID(employeeID)
		if err != nil {
			return err
		}
		if legacy != nil {
			if err := profileRepo.UpdatePermission(employeeID, canCreate); err != nil {
				return err
			}
		}
		return employeeRepo.UpdatePermission(employeeID, canCreate)
	})
	if err != nil {
		return err
	}

	if uc.claims != nil {
		if cerr := uc.claims.IssueClaims(ctx, employeeID, map[string]any{
			"tenantId":          employee.TenantID,
			"role":              string(entity.RoleEmployee),
			"canCreateProducts": canCreate,
		}); cerr != nil {
			uc.log.Warn().Err(cerr).Str("user_id", employeeID).
				Msg("no se pudieron publicar los claims del empleado")
		}
	}
	return nil
}

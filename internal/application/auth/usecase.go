package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/stockfacil/kiosco-pos/internal/application/dto"
	"github.com/stockfacil/kiosco-pos/internal/domain"
	"github.com/stockfacil/kiosco-pos/internal/domain/entity"
	"github.com/stockfacil/kiosco-pos/internal/domain/repository"
	"github.com/stockfacil/kiosco-pos/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login y resolución de identidad. El tenant y el rol del token
// son solo pistas: cada request protegido se resuelve de nuevo contra la base.
type AuthUseCase struct {
	profileRepo    repository.ProfileRepository
	tenantRepo     repository.TenantRepository
	loginEventRepo repository.LoginEventRepository
	jwtCfg         JWTConfig
	mirror         Mirror
	log            zerolog.Logger

	mu        sync.Mutex
	announced map[string]bool
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	profileRepo repository.ProfileRepository,
	tenantRepo repository.TenantRepository,
	loginEventRepo repository.LoginEventRepository,
	jwtCfg JWTConfig,
	mirror Mirror,
	log zerolog.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		profileRepo:    profileRepo,
		tenantRepo:     tenantRepo,
		loginEventRepo: loginEventRepo,
		jwtCfg:         jwtCfg,
		mirror:         mirror,
		log:            log,
		announced:      make(map[string]bool),
	}
}

// Login verifica email/password, resuelve la identidad y genera el JWT.
// El evento de ingreso se registra una sola vez por usuario por proceso.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	profile, err := uc.profileRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if profile.Status != entity.StatusActive {
		return nil, domain.ErrForbidden
	}

	dctx, err := uc.contextFromProfile(profile)
	if err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Claims{
		UserID:        profile.ID,
		TenantID:      dctx.TenantID,
		Role:          string(dctx.Role),
		Email:         profile.Email,
		EmailVerified: profile.EmailVerified,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}

	uc.announceLogin(profile, dctx)

	return &dto.LoginResponse{
		Token:             token,
		UserID:            profile.ID,
		TenantID:          dctx.TenantID,
		Role:              string(dctx.Role),
		CanCreateProducts: dctx.CanCreateProducts,
	}, nil
}

// Resolve resuelve la identidad del portador contra la base: perfil, tenant,
// rol normalizado y permisos efectivos.
func (uc *AuthUseCase) Resolve(ctx context.Context, userID string) (domain.Context, error) {
	profile, err := uc.profileRepo.GetByID(userID)
	if err != nil {
		return domain.Context{}, err
	}
	if profile == nil {
		return domain.Context{}, domain.ErrNoProfile
	}
	dctx, err := uc.contextFromProfile(profile)
	if err != nil {
		return domain.Context{}, err
	}
	uc.announceLogin(profile, dctx)
	return dctx, nil
}

func (uc *AuthUseCase) contextFromProfile(profile *entity.Profile) (domain.Context, error) {
	if profile.TenantID == "" {
		return domain.Context{}, domain.ErrInvalidTenant
	}
	tenant, err := uc.tenantRepo.GetByID(profile.TenantID)
	if err != nil {
		return domain.Context{}, err
	}
	if tenant == nil {
		return domain.Context{}, domain.ErrInvalidTenant
	}

	role := entity.NormalizeRole(string(profile.Role))
	return domain.Context{
		UserID:            profile.ID,
		TenantID:          profile.TenantID,
		Email:             profile.Email,
		Role:              role,
		CanCreateProducts: role == entity.RoleOwner || profile.CanCreateProducts,
	}, nil
}

// announceLogin registra el evento de ingreso la primera vez que ese usuario
// entra en este proceso. Fallas se registran y se descartan: el login nunca
// se cae por el evento.
func (uc *AuthUseCase) announceLogin(profile *entity.Profile, dctx domain.Context) {
	uc.mu.Lock()
	if uc.announced[profile.ID] {
		uc.mu.Unlock()
		return
	}
	uc.announced[profile.ID] = true
	uc.mu.Unlock()

	ev := &entity.LoginEvent{
		ID:        uuid.New().String(),
		TenantID:  dctx.TenantID,
		UserID:    profile.ID,
		Email:     profile.Email,
		Role:      dctx.Role,
		LoggedAt:  time.Now(),
		CreatedAt: time.Now(),
	}
	if err := uc.loginEventRepo.Create(ev); err != nil {
		uc.log.Warn().Err(err).Str("user_id", profile.ID).Msg("no se pudo registrar el evento de ingreso")
	}
	if uc.mirror != nil {
		uc.mirror.MirrorLoginEvent(ev)
	}
}

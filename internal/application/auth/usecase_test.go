package auth_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/stockfacil/kiosco-pos/internal/application/auth"
	"github.com/stockfacil/kiosco-pos/internal/application/dto"
	"github.com/stockfacil/kiosco-pos/internal/domain"
	"github.com/stockfacil/kiosco-pos/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProfileRepo struct {
	profiles map[string]*entity.Profile
}

func (r *fakeProfileRepo) Create(p *entity.Profile) error { r.profiles[p.ID] = p; return nil }

func (r *fakeProfileRepo) GetByID(id string) (*entity.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) GetByEmail(email string) (*entity.Profile, error) {
	for _, p := range r.profiles {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProfileRepo) MarkEmailVerified(string) error          { return nil }
func (r *fakeProfileRepo) UpdatePermission(string, bool) error     { return nil }

type fakeTenantRepo struct {
	tenants map[string]*entity.Tenant
}

func (r *fakeTenantRepo) Create(t *entity.Tenant) error { r.tenants[t.ID] = t; return nil }

func (r *fakeTenantRepo) GetByID(id string) (*entity.Tenant, error) {
	t, ok := r.tenants[id]
	if !ok {
		return nil, nil
	}
	return t, nil
}

type fakeLoginEventRepo struct {
	events []*entity.LoginEvent
}

func (r *fakeLoginEventRepo) Create(ev *entity.LoginEvent) error {
	r.events = append(r.events, ev)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func buildAuth(t *testing.T, profiles map[string]*entity.Profile, tenants map[string]*entity.Tenant) (*auth.AuthUseCase, *fakeLoginEventRepo) {
	t.Helper()
	events := &fakeLoginEventRepo{}
	uc := auth.NewAuthUseCase(
		&fakeProfileRepo{profiles: profiles},
		&fakeTenantRepo{tenants: tenants},
		events,
		auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "test"},
		nil,
		zerolog.Nop(),
	)
	return uc, events
}

func perfilActivo(id, tenantID, email, passwordHash, role string) *entity.Profile {
	return &entity.Profile{
		ID:           id,
		TenantID:     tenantID,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         entity.Role(role),
		Status:       entity.StatusActive,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_EmiteTokenYResuelveIdentidad(t *testing.T) {
	hash := hashed(t, "secreto123")
	uc, events := buildAuth(t,
		map[string]*entity.Profile{"u1": perfilActivo("u1", "kiosco-1", "maria@example.com", hash, "dueño")},
		map[string]*entity.Tenant{"kiosco-1": {ID: "kiosco-1", Status: entity.StatusActive}},
	)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "maria@example.com", Password: "secreto123"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "kiosco-1", out.TenantID)
	// El rol legacy "dueño" sale normalizado
	assert.Equal(t, "owner", out.Role)
	assert.True(t, out.CanCreateProducts, "el dueño siempre puede crear productos")

	// Evento de ingreso registrado, con el rol ya normalizado
	require.Len(t, events.events, 1)
	assert.Equal(t, "u1", events.events[0].UserID)
	assert.Equal(t, entity.RoleOwner, events.events[0].Role)
}

// El evento de ingreso se anuncia una sola vez por usuario por proceso.
func TestLogin_EventoUnaVezPorProceso(t *testing.T) {
	hash := hashed(t, "secreto123")
	uc, events := buildAuth(t,
		map[string]*entity.Profile{"u1": perfilActivo("u1", "kiosco-1", "maria@example.com", hash, "owner")},
		map[string]*entity.Tenant{"kiosco-1": {ID: "kiosco-1"}},
	)

	in := dto.LoginRequest{Email: "maria@example.com", Password: "secreto123"}
	for i := 0; i < 3; i++ {
		_, err := uc.Login(context.Background(), in)
		require.NoError(t, err)
	}
	assert.Len(t, events.events, 1)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	hash := hashed(t, "secreto123")
	uc, _ := buildAuth(t,
		map[string]*entity.Profile{"u1": perfilActivo("u1", "kiosco-1", "maria@example.com", hash, "owner")},
		map[string]*entity.Tenant{"kiosco-1": {ID: "kiosco-1"}},
	)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "maria@example.com", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _ := buildAuth(t, map[string]*entity.Profile{}, map[string]*entity.Tenant{})
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestResolve_SinPerfil(t *testing.T) {
	uc, _ := buildAuth(t, map[string]*entity.Profile{}, map[string]*entity.Tenant{})
	_, err := uc.Resolve(context.Background(), "u9")
	assert.ErrorIs(t, err, domain.ErrNoProfile)
}

// Perfil con tenant vacío o inexistente: identidad inválida, no hay contexto.
func TestResolve_TenantInvalido(t *testing.T) {
	uc, _ := buildAuth(t,
		map[string]*entity.Profile{
			"u1": perfilActivo("u1", "", "a@example.com", "", "owner"),
			"u2": perfilActivo("u2", "kiosco-fantasma", "b@example.com", "", "owner"),
		},
		map[string]*entity.Tenant{},
	)

	_, err := uc.Resolve(context.Background(), "u1")
	assert.ErrorIs(t, err, domain.ErrInvalidTenant)
	_, err = uc.Resolve(context.Background(), "u2")
	assert.ErrorIs(t, err, domain.ErrInvalidTenant)
}

func TestResolve_PermisosDeEmpleado(t *testing.T) {
	p := perfilActivo("u1", "kiosco-1", "emp@example.com", "", "empleado")
	p.CanCreateProducts = true
	uc, _ := buildAuth(t,
		map[string]*entity.Profile{"u1": p},
		map[string]*entity.Tenant{"kiosco-1": {ID: "kiosco-1"}},
	)

	dctx, err := uc.Resolve(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleEmployee, dctx.Role)
	assert.False(t, dctx.IsOwner())
	assert.True(t, dctx.CanCreate())
}

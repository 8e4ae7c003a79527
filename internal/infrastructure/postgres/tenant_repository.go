package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stockfacil/kiosco-pos/internal/domain/entity"
	"github.com/stockfacil/kiosco-pos/internal/domain/repository"
)

var _ repository.TenantRepository = (*TenantRepo)(nil)
var _ repository.LoginEventRepository = (*LoginEventRepo)(nil)

// TenantRepo implementación de TenantRepository sobre PostgreSQL (usable con pool o tx).
type TenantRepo struct {
	q Querier
}

// NewTenantRepository construye el adaptador de tenants. Pasar pool o tx (Querier).
func NewTenantRepository(q Querier) *TenantRepo {
	return &TenantRepo{q: q}
}

// Create persiste un kiosco nuevo (exactamente uno por registro de dueño).
func (r *TenantRepo) Create(t *entity.Tenant) error {
	query := `
		INSERT INTO tenants (id, owner_id, owner_email, name, country, province, district, locality, address, plan, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.OwnerID, t.OwnerEmail, t.Name, t.Country, t.Province,
		t.District, t.Locality, t.Address, t.Plan, t.Status, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

// GetByID obtiene un kiosco por ID.
func (r *TenantRepo) GetByID(id string) (*entity.Tenant, error) {
	query := `
		SELECT id, owner_id, owner_email, name, country, province, district, locality, address, plan, status, created_at, updated_at
		FROM tenants WHERE id = $1`
	var t entity.Tenant
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.OwnerID, &t.OwnerEmail, &t.Name, &t.Country, &t.Province,
		&t.District, &t.Locality, &t.Address, &t.Plan, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return &t, nil
}

// LoginEventRepo implementación de LoginEventRepository sobre PostgreSQL.
type LoginEventRepo struct {
	q Querier
}

// NewLoginEventRepository construye el adaptador de eventos de login.
func NewLoginEventRepository(q Querier) *LoginEventRepo {
	return &LoginEventRepo{q: q}
}

// Create persiste un evento de login.
func (r *LoginEventRepo) Create(ev *entity.LoginEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	query := `
		INSERT INTO login_events (id, tenant_id, user_id, email, role, logged_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		ev.ID, ev.TenantID, ev.UserID, ev.Email, string(ev.Role), ev.LoggedAt, ev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert login event: %w", err)
	}
	return nil
}

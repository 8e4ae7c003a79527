package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/stockfacil/kiosco-pos/internal/domain"
	"github.com/stockfacil/kiosco-pos/internal/domain/entity"
	"github.com/stockfacil/kiosco-pos/internal/domain/repository"
)

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

const profileColumns = `id, tenant_id, email, password_hash, name, phone, role, status, plan, can_create_products, email_verified, verification_token, verification_token_expires_at, created_at, updated_at`

// ProfileRepo implementación de ProfileRepository sobre PostgreSQL (usable con pool o tx).
type ProfileRepo struct {
	q Querier
}

// NewProfileRepository construye el adaptador de perfiles. Pasar pool o tx (Querier).
func NewProfileRepository(q Querier) *ProfileRepo {
	return &ProfileRepo{q: q}
}

// Create persiste un perfil. Los UNIQUE sobre id y email hacen estructuralmente
// imposible la carrera de dos registros para la misma identidad o el mismo email.
func (r *ProfileRepo) Create(p *entity.Profile) error {
	query := `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.TenantID, p.Email, p.PasswordHash, p.Name, p.Phone,
		string(p.Role), p.Status, p.Plan, p.CanCreateProducts, p.EmailVerified,
		nullIfEmpty(p.VerificationToken), p.VerificationTokenExpiresAt,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// GetByID obtiene un perfil por id de identidad.
func (r *ProfileRepo) GetByID(id string) (*entity.Profile, error) {
	return r.scanOne(`SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
}

// GetByEmail obtiene un perfil por email (chequeo de duplicados pre-registro).
func (r *ProfileRepo) GetByEmail(email string) (*entity.Profile, error) {
	return r.scanOne(`SELECT `+profileColumns+` FROM profiles WHERE email = $1`, email)
}

// MarkEmailVerified marca el correo verificado y limpia el token con su
// expiración. Idempotente: re-ejecutar no cambia nada.
func (r *ProfileRepo) MarkEmailVerified(id string) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE profiles
		SET email_verified = true, verification_token = NULL,
		    verification_token_expires_at = NULL, updated_at = now()
		WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark profile verified: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdatePermission actualiza el permiso de creación de productos del perfil.
func (r *ProfileRepo) UpdatePermission(id string, canCreateProducts bool) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE profiles SET can_create_products = $2, updated_at = now() WHERE id = $1`,
		id, canCreateProducts,
	)
	if err != nil {
		return fmt.Errorf("update profile permission: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProfileRepo) scanOne(query string, args ...any) (*entity.Profile, error) {
	var p entity.Profile
	var role string
	var token *string
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&p.ID, &p.TenantID, &p.Email, &p.PasswordHash, &p.Name, &p.Phone,
		&role, &p.Status, &p.Plan, &p.CanCreateProducts, &p.EmailVerified,
		&token, &p.VerificationTokenExpiresAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	p.Role = entity.NormalizeRole(role)
	if token != nil {
		p.VerificationToken = *token
	}
	return &p, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

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

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo implementación de EmployeeRepository sobre PostgreSQL (usable con pool o tx).
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador de empleados. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// GetByID obtiene el registro secundario de un empleado.
func (r *EmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	query := `
		SELECT id, tenant_id, email, name, can_create_products, email_verified, created_at, updated_at
		FROM employees WHERE id = $1`
	var e entity.Employee
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.TenantID, &e.Email, &e.Name,
		&e.CanCreateProducts, &e.EmailVerified, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &e, nil
}

// MarkEmailVerified marca el correo verificado en el registro de empleado. Idempotente.
func (r *EmployeeRepo) MarkEmailVerified(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE employees SET email_verified = true, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark employee verified: %w", err)
	}
	return nil
}

// UpdatePermission actualiza el permiso de creación de productos del empleado.
func (r *EmployeeRepo) UpdatePermission(id string, canCreateProducts bool) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE employees SET can_create_products = $2, updated_at = now() WHERE id = $1`,
		id, canCreateProducts,
	)
	if err != nil {
		return fmt.Errorf("update employee permission: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

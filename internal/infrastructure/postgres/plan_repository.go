package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/stockfacil/kiosco-pos/internal/domain/repository"
)

var _ repository.PlanRepository = (*PlanRepo)(nil)

// PlanRepo lee el allow-list de planes del documento singleton plan_config.
type PlanRepo struct {
	q Querier
}

// NewPlanRepository construye el adaptador de configuración de planes.
func NewPlanRepository(q Querier) *PlanRepo {
	return &PlanRepo{q: q}
}

// planEntry es la forma de cada plan dentro del JSON de plan_config.
type planEntry struct {
	ID     string `json:"id"`
	Active *bool  `json:"activo"`
}

// ActivePlanIDs devuelve los ids de plan activos del documento de configuración.
// Documento ausente o vacío devuelve lista vacía sin error: el caller decide el
// fallback (política de disponibilidad, no ruta de error).
func (r *PlanRepo) ActivePlanIDs() ([]string, error) {
	var raw []byte
	err := r.q.QueryRow(context.Background(),
		`SELECT plans FROM plan_config WHERE singleton = true`).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan config: %w", err)
	}

	var entries []planEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse plan config: %w", err)
	}

	var ids []string
	for _, e := range entries {
		id := strings.ToLower(strings.TrimSpace(e.ID))
		if id == "" || (e.Active != nil && !*e.Active) {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

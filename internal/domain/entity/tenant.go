package entity

import "time"

// Planes por defecto cuando el documento de configuración no existe o está
// vacío. Es política de disponibilidad deliberada, no una ruta de error.
const (
	PlanPrueba   = "prueba"
	PlanStandard = "standard"
	PlanPremium  = "premium"
)

// DefaultPlans devuelve el allow-list de planes de respaldo.
func DefaultPlans() []string {
	return []string{PlanPrueba, PlanStandard, PlanPremium}
}

// Tenant representa un kiosco registrado: la unidad de aislamiento de datos.
// El ID es inmutable una vez emitido; se crea exactamente una vez por registro
// de dueño.
type Tenant struct {
	ID         string
	OwnerID    string
	OwnerEmail string
	Name       string // nombre del kiosco
	Country    string
	Province   string
	District   string
	Locality   string
	Address    string
	Plan       string
	Status     string // active, inactive
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

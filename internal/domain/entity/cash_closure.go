package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateKeyLayout es el formato del día calendario usado en claves de cierre.
const DateKeyLayout = "2006-01-02"

// DateKey devuelve el día calendario de t en la zona horaria operativa del kiosco.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateKeyLayout)
}

// DayBounds devuelve [inicio, fin) del día calendario de t en loc.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// ClosureKey arma la clave natural de idempotencia de un cierre:
// tenantId + ":" + dateKey. Única por kiosco y día.
func ClosureKey(tenantID, dateKey string) string {
	return tenantID + ":" + dateKey
}

// CashClosure es el cierre de caja de un kiosco para un día calendario.
// Invariante: a lo sumo un cierre por (TenantID, DateKey); la unicidad la
// garantiza ClosureKey como constraint almacenado, no solo el pre-chequeo.
type CashClosure struct {
	ID           string
	TenantID     string
	UserID       string
	DateKey      string
	ClosureKey   string
	TotalAmount  decimal.Decimal
	TotalCost    decimal.Decimal
	ProfitAmount decimal.Decimal
	SalesCount   int64
	ItemsCount   int64
	CreatedAt    time.Time
}

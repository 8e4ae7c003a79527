// Package metrics define y registra las métricas Prometheus del backend de
// kioscos. Es la única fuente de verdad de nombres, labels y textos de ayuda.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "kiosco"

// ── Ventas ────────────────────────────────────────────────────────────────────

// SalesCommittedTotal cuenta ventas confirmadas.
var SalesCommittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sales_committed_total",
		Help:      "Total de ventas confirmadas.",
	},
)

// SalesRejectedTotal cuenta compromisos de venta rechazados.
// Label:
//   - reason: motivo corto del rechazo (p.ej. "insufficient_stock", "empty_cart")
var SalesRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sales_rejected_total",
		Help:      "Total de ventas rechazadas, por motivo.",
	},
	[]string{"reason"},
)

// ── Cierres de caja ───────────────────────────────────────────────────────────

// ClosuresTotal cuenta cierres de caja, por resultado ("ok" o "already_closed").
var ClosuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cash_closures_total",
		Help:      "Total de cierres de caja, por resultado.",
	},
	[]string{"result"},
)

// ── Espejo compartido ─────────────────────────────────────────────────────────

// SyncTotal cuenta replicaciones al espejo, por colección y resultado.
// Labels:
//   - collection: colección destino (usuarios, productos, ventas, cierres, sesiones)
//   - result: "ok", "error" o "dropped" (cola llena)
var SyncTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_total",
		Help:      "Total de replicaciones al espejo compartido, por colección y resultado.",
	},
	[]string{"collection", "result"},
)

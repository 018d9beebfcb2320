package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for PersistTotal.
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

// Metrics holds the application's prometheus collectors. Persistence is
// best-effort, so failed store writes are only visible here and in the
// logs.
type Metrics struct {
	PersistTotal  *prometheus.CounterVec
	ContactTotal  prometheus.Counter
	CatalogEvents prometheus.Gauge
}

// New registers the collectors with reg and returns them. Tests pass a
// fresh prometheus.NewRegistry to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PersistTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "citybeat_store_persist_total",
			Help: "User store persistence attempts by outcome.",
		}, []string{"outcome"}),
		ContactTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "citybeat_contact_submissions_total",
			Help: "Contact submissions accepted.",
		}),
		CatalogEvents: factory.NewGauge(prometheus.GaugeOpts{
			Name: "citybeat_catalog_events",
			Help: "Number of events loaded into the catalog.",
		}),
	}
}

// Handler exposes the default prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Package metrics defines the Prometheus collectors of the club service.
package metrics

import (
	"math"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

const namespace = "clubhouse"

// Result label values.
const (
	ResultSuccess  = "success"
	ResultExisting = "existing"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// Metrics holds the service collectors. A nil *Metrics records nothing.
type Metrics struct {
	ClubsProvisioned     *prometheus.CounterVec
	Checkouts            *prometheus.CounterVec
	DispensedLines       *prometheus.CounterVec
	DispensedAmount      prometheus.Counter
	MembershipsActivated *prometheus.CounterVec
	POSSessions          prometheus.GaugeFunc
}

// New registers the collectors with reg. sessions reports the number of
// live POS sessions; it may be nil.
func New(reg prometheus.Registerer, sessions func() int) *Metrics {
	f := promauto.With(reg)

	m := &Metrics{
		ClubsProvisioned: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clubs_provisioned_total",
			Help:      "Club provisioning attempts by result.",
		}, []string{"result"}), // result: success, existing, rejected, error
		Checkouts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pos",
			Name:      "checkouts_total",
			Help:      "Checkouts by result.",
		}, []string{"result"}),
		DispensedLines: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pos",
			Name:      "dispensed_lines_total",
			Help:      "Dispensed cart lines by item kind.",
		}, []string{"kind"}),
		DispensedAmount: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pos",
			Name:      "dispensed_amount_total",
			Help:      "Sum of checkout totals.",
		}),
		MembershipsActivated: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "memberships",
			Name:      "activated_total",
			Help:      "Membership events handled by the worker, by result.",
		}, []string{"result"}),
	}

	if sessions != nil {
		m.POSSessions = f.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pos",
			Name:      "sessions",
			Help:      "Live point of sale sessions.",
		}, func() float64 { return float64(sessions()) })
	}
	return m
}

func (m *Metrics) ClubProvisioned(result string) {
	if m == nil {
		return
	}
	m.ClubsProvisioned.WithLabelValues(result).Inc()
}

func (m *Metrics) CheckoutDone(result string, total decimal.Decimal, kinds []string) {
	if m == nil {
		return
	}
	m.Checkouts.WithLabelValues(result).Inc()
	if result != ResultSuccess {
		return
	}
	m.DispensedAmount.Add(total.InexactFloat64())
	for _, k := range kinds {
		m.DispensedLines.WithLabelValues(k).Inc()
	}
}

func (m *Metrics) MembershipActivated(result string) {
	if m == nil {
		return
	}
	m.MembershipsActivated.WithLabelValues(result).Inc()
}

// RegisterEventBacklog exposes the number of delivered but unacknowledged
// membership events. A failed lookup reports NaN.
func RegisterEventBacklog(reg prometheus.Registerer, pending func() (int64, error)) prometheus.GaugeFunc {
	return promauto.With(reg).NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "memberships",
		Name:      "events_pending",
		Help:      "Membership events read by a consumer but not yet acknowledged.",
	}, func() float64 {
		n, err := pending()
		if err != nil {
			return math.NaN()
		}
		return float64(n)
	})
}

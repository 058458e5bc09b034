// Package metrics exports counters for registration and report verification.
//
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "spirit"

// Metrics groups the collectors of one protocol runtime.
type Metrics struct {
	Registrations *prometheus.CounterVec
	Reports       *prometheus.CounterVec
	RegistrySize  prometheus.Gauge
	Confirmed     prometheus.Gauge
	PhaseDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg, if it is not nil.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registration",
			Name:      "total",
			Help:      "Number of registrations, by outcome.",
		}, []string{"outcome"}),
		Reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "verification",
			Name:      "reports_total",
			Help:      "Number of verified reports, by outcome.",
		}, []string{"outcome"}),
		RegistrySize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "tokens",
			Help:      "Number of tokens in the registry.",
		}),
		Confirmed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "verification",
			Name:      "confirmed_pseudonyms",
			Help:      "Number of pseudonyms confirmed as exposed.",
		}),
		PhaseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "phase_duration_seconds",
			Help:      "Time spent in each protocol phase.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"phase"}),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{m.Registrations, m.Reports, m.RegistrySize, m.Confirmed, m.PhaseDuration} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func outcome(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}

// Registration records the outcome of one registration.
func (m *Metrics) Registration(ok bool) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(outcome(ok, "issued", "failed")).Inc()
}

// Report records the outcome of one report verification.
func (m *Metrics) Report(accepted bool) {
	if m == nil {
		return
	}
	m.Reports.WithLabelValues(outcome(accepted, "accepted", "rejected")).Inc()
}

// SetRegistrySize sets the registry gauge.
func (m *Metrics) SetRegistrySize(n int) {
	if m == nil {
		return
	}
	m.RegistrySize.Set(float64(n))
}

// SetConfirmed sets the confirmed pseudonyms gauge.
func (m *Metrics) SetConfirmed(n int) {
	if m == nil {
		return
	}
	m.Confirmed.Set(float64(n))
}

// ObservePhase records the time elapsed since start for phase.
func (m *Metrics) ObservePhase(phase string, start time.Time) {
	if m == nil {
		return
	}
	m.PhaseDuration.WithLabelValues(phase).Observe(time.Since(start).Seconds())
}

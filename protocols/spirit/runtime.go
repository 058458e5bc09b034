// Package spirit composes a threshold anonymous credential, a pseudonym PRF and a
// disclosure proof into a Sybil resistant contact tracing protocol.
//
// The protocol runs in six phases:
//
//   - Setup creates the public parameters, the issuers and an empty token registry.
//     Restore recreates them from the Deployment record of an earlier Setup.
//   - Register obtains a credential from t issuers and publishes its token.
//   - Broadcast derives the pseudonym of an epoch and records it locally.
//   - Diagnose proves that a set of pseudonyms belongs to a registered credential.
//   - VerifyReport checks such a proof, and confirms the pseudonyms as exposed.
//   - Trace counts how many confirmed pseudonyms a user holds.
//
// Shared state (Registry, ConfirmedSet) is passed explicitly and is safe for concurrent use.
package spirit

import (
	"crypto/rand"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/taurusgroup/spirit/internal/metrics"
	"github.com/taurusgroup/spirit/pkg/pool"
)

// Runtime holds the capabilities every phase needs: a source of randomness, an optional
// worker pool, a logger and optional metrics.
type Runtime struct {
	rand    io.Reader
	pool    *pool.Pool
	log     zerolog.Logger
	metrics *metrics.Metrics
}

// New returns a Runtime reading randomness from r, or crypto/rand if r is nil.
//
// Reads are serialised, so r need not be safe for concurrent use.
func New(r io.Reader) *Runtime {
	if r == nil {
		r = rand.Reader
	}
	return &Runtime{
		rand: pool.NewLockedReader(r),
		log:  zerolog.Nop(),
	}
}

// WithPool parallelises pseudonym computations on pl.
func (rt *Runtime) WithPool(pl *pool.Pool) *Runtime {
	rt.pool = pl
	return rt
}

// WithLogger sets the logger. Secrets, identities and pseudonyms are never logged.
func (rt *Runtime) WithLogger(log zerolog.Logger) *Runtime {
	rt.log = log
	return rt
}

// WithMetrics records outcomes in m.
func (rt *Runtime) WithMetrics(m *metrics.Metrics) *Runtime {
	rt.metrics = m
	return rt
}

func (rt *Runtime) phase(name string) (zerolog.Logger, func()) {
	start := time.Now()
	log := rt.log.With().Str("phase", name).Logger()
	return log, func() { rt.metrics.ObservePhase(name, start) }
}

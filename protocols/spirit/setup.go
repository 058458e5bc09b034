package spirit

import (
	"fmt"

	"github.com/taurusgroup/spirit/pkg/math/curve"
	"github.com/taurusgroup/spirit/pkg/math/sample"
	"github.com/taurusgroup/spirit/pkg/party"
	"github.com/taurusgroup/spirit/pkg/tact"
)

// System is the output of Setup.
type System struct {
	Params  *tact.PublicParameters
	Issuers []*tact.Issuer

	// Generator and Scalar are auxiliary public constants, sampled independently
	// of the credential parameters.
	Generator *curve.G1
	Scalar    *curve.Scalar

	Registry *Registry
}

// Services returns the issuers of the system, in order, as issuance endpoints.
func (s *System) Services() []IssuerService {
	services := make([]IssuerService, len(s.Issuers))
	for i, issuer := range s.Issuers {
		services[i] = issuer
	}
	return services
}

// Setup creates a deployment where any t of numIssuers issuers, out of at most n,
// can issue credentials.
//
// An inconsistent configuration returns an error wrapping ErrConfiguration.
func (rt *Runtime) Setup(t, n, numIssuers int) (*System, error) {
	log, done := rt.phase("setup")
	defer done()

	pp, issuers, err := tact.Setup(rt.rand, tact.Config{
		Issuers:          numIssuers,
		N:                n,
		Threshold:        t,
		Degree:           t - 1,
		TokensPerRequest: 1,
	})
	if err != nil {
		log.Error().Err(err).Int("t", t).Int("n", n).Int("issuers", numIssuers).Msg("setup failed")
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	system := &System{
		Params:    pp,
		Issuers:   issuers,
		Generator: sample.G1(rt.rand),
		Scalar:    sample.Scalar(rt.rand),
		Registry:  NewRegistry(),
	}
	rt.metrics.SetRegistrySize(0)
	log.Info().Int("t", t).Int("n", n).Int("issuers", numIssuers).Msg("system ready")
	return system, nil
}

// Deployment is the record a dealer keeps to restore a System: its threshold
// parameters, the auxiliary constants, and the secret share of every issuer.
type Deployment struct {
	Threshold int
	N         int
	IDs       []party.ID
	Shares    []*curve.Scalar
	Generator *curve.G1
	Scalar    *curve.Scalar
}

// Deployment returns the record of s.
func (s *System) Deployment() *Deployment {
	d := &Deployment{
		Threshold: s.Params.Threshold,
		N:         s.Params.N,
		IDs:       make([]party.ID, 0, len(s.Issuers)),
		Shares:    make([]*curve.Scalar, 0, len(s.Issuers)),
		Generator: s.Generator,
		Scalar:    s.Scalar,
	}
	for _, issuer := range s.Issuers {
		d.IDs = append(d.IDs, issuer.ID())
		d.Shares = append(d.Shares, issuer.Share())
	}
	return d
}

// Restore recreates the System recorded in d, with an empty registry.
//
// A record whose shares do not describe a valid deployment returns an error wrapping
// ErrConfiguration.
func (rt *Runtime) Restore(d *Deployment) (*System, error) {
	log, done := rt.phase("setup")
	defer done()

	if d == nil || len(d.IDs) != len(d.Shares) || d.Generator == nil || d.Scalar == nil {
		return nil, fmt.Errorf("%w: incomplete deployment", ErrConfiguration)
	}
	issuers := make([]*tact.Issuer, len(d.IDs))
	for i, id := range d.IDs {
		if d.Shares[i] == nil {
			return nil, fmt.Errorf("%w: missing share for issuer %s", ErrConfiguration, id)
		}
		issuers[i] = tact.NewIssuer(id, d.Shares[i])
	}
	pp, err := tact.Restore(tact.Config{
		Issuers:          len(issuers),
		N:                d.N,
		Threshold:        d.Threshold,
		Degree:           d.Threshold - 1,
		TokensPerRequest: 1,
	}, issuers)
	if err != nil {
		log.Error().Err(err).Msg("restore failed")
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	system := &System{
		Params:    pp,
		Issuers:   issuers,
		Generator: d.Generator,
		Scalar:    d.Scalar,
		Registry:  NewRegistry(),
	}
	rt.metrics.SetRegistrySize(0)
	log.Info().Int("t", d.Threshold).Int("n", d.N).Int("issuers", len(issuers)).Msg("system restored")
	return system, nil
}

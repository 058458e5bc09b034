package spirit

import (
	"errors"
	"fmt"

	"github.com/taurusgroup/spirit/pkg/math/curve"
	"github.com/taurusgroup/spirit/pkg/party"
	"github.com/taurusgroup/spirit/pkg/tact"
	"golang.org/x/sync/errgroup"
)

// IssuerService is an issuer as seen by a registering user.
//
// *tact.Issuer implements it, remote issuers can be plugged in by hosts.
type IssuerService interface {
	ID() party.ID
	Issue(req *tact.BlindRequest, pp *tact.PublicParameters) (*tact.PartialToken, error)
}

// Credential is what a registered user keeps to later prove possession of its token.
type Credential struct {
	Token    *tact.Token
	Identity *curve.Scalar
	// Opening is the randomness of the token commitment.
	Opening *curve.Scalar
}

// Registration is the output of a successful Register.
type Registration struct {
	Token      *tact.Token
	Credential *Credential
	// Secret is the PRF key of the user, bound into the token commitment.
	Secret   *curve.Scalar
	Snapshot *RegistrySnapshot
}

// Register obtains a credential for idU from the first t issuers, checks it, and
// publishes its token in registry.
//
// Every failure returns an error wrapping ErrIssuance, and leaves registry untouched.
// The caller may retry the whole registration, possibly with other issuers.
func (rt *Runtime) Register(idU *curve.Scalar, issuers []IssuerService, pp *tact.PublicParameters, registry *Registry) (*Registration, error) {
	log, done := rt.phase("registration")
	defer done()

	reg, err := rt.issue(idU, issuers, pp)
	if err != nil {
		rt.metrics.Registration(false)
		log.Warn().Err(err).Msg("no credential issued")
		return nil, fmt.Errorf("%w: %w", ErrIssuance, err)
	}

	if !registry.Insert(reg.Token) {
		rt.metrics.Registration(false)
		log.Warn().Msg("token already registered")
		return nil, fmt.Errorf("%w: token already registered", ErrIssuance)
	}
	reg.Snapshot = registry.Snapshot()

	rt.metrics.Registration(true)
	rt.metrics.SetRegistrySize(reg.Snapshot.Len())
	log.Info().Uint64("version", reg.Snapshot.Version).Msg("token registered")
	return reg, nil
}

// issue runs the blind issuance without touching any shared state.
func (rt *Runtime) issue(idU *curve.Scalar, issuers []IssuerService, pp *tact.PublicParameters) (*Registration, error) {
	if len(issuers) < pp.Threshold {
		return nil, fmt.Errorf("%d issuers available, need %d", len(issuers), pp.Threshold)
	}

	state, cm, err := tact.Register(rt.rand, idU, pp)
	if err != nil {
		return nil, err
	}
	req, rnd, err := tact.TokenRequest(rt.rand, state, cm, pp)
	if err != nil {
		return nil, err
	}

	// exactly t partial tokens, from the first t issuers
	selected := issuers[:pp.Threshold]
	partials := make([]*tact.PartialToken, len(selected))
	var eg errgroup.Group
	for i := range selected {
		i := i
		eg.Go(func() error {
			partial, err := selected[i].Issue(req, pp)
			if err != nil {
				return fmt.Errorf("issuer %s: %w", selected[i].ID(), err)
			}
			partials[i] = partial
			return nil
		})
	}
	if err = eg.Wait(); err != nil {
		return nil, err
	}
	rt.log.Debug().Str("phase", "registration").Int("issuers", len(partials)).Msg("partial tokens collected")

	token, err := tact.AggregateUnblind(partials, rnd, pp)
	if err != nil {
		return nil, err
	}

	proof, err := tact.Prove(rt.rand, token, rnd, pp)
	if err != nil {
		return nil, err
	}
	if err = tact.Verify(token, proof, req, pp); err != nil {
		return nil, fmt.Errorf("self check: %w", err)
	}

	public := &tact.Token{Commitment: cm, Signature: token.Signature}
	if !public.Commitment.Equal(token.Commitment) {
		return nil, errors.New("aggregated token does not carry the commitment")
	}
	return &Registration{
		Token: public,
		Credential: &Credential{
			Token:    public,
			Identity: state.ID(),
			Opening:  state.Opening(),
		},
		Secret: state.Prv(),
	}, nil
}

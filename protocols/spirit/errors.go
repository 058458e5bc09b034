package spirit

import "errors"

var (
	// ErrConfiguration is returned by Setup for inconsistent threshold parameters.
	// Hosts should treat it as fatal.
	ErrConfiguration = errors.New("spirit: invalid configuration")
	// ErrIssuance means no credential was issued, and the registry was left untouched.
	// The whole registration may be retried, possibly with other issuers.
	ErrIssuance = errors.New("spirit: credential issuance failed")
	// ErrProofConstruction means no report could be produced from the local state.
	ErrProofConstruction = errors.New("spirit: failed to construct disclosure proof")
)

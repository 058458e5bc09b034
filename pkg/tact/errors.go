package tact

import "fmt"

type Error string

const (
	ErrInvalidConfig     Error = "invalid configuration"
	ErrInvalidState      Error = "registration state does not open the commitment"
	ErrInvalidRequest    Error = "invalid blind request"
	ErrInvalidPartial    Error = "invalid partial token"
	ErrNotEnoughPartials Error = "not enough partial tokens"
	ErrDuplicateIssuer   Error = "duplicate issuer"
	ErrUnknownIssuer     Error = "unknown issuer"
	ErrInvalidTokenProof Error = "invalid token proof"
	ErrInvalidSignature  Error = "invalid token signature"
	ErrProofConstruction Error = "failed to construct token proof"
)

func (e Error) Error() string {
	return fmt.Sprintf("tact: %s", string(e))
}

package params

const (
	SecParam  = 256
	SecBytes  = SecParam / 8
	StatParam = 128

	// BytesScalar is the size of a canonical BLS12-381 scalar encoding.
	BytesScalar = 32
	// BytesSampleScalar is how many bytes are read when sampling a scalar.
	//
	// Reading StatParam bits more than the order keeps the bias of the wide reduction negligible.
	BytesSampleScalar = BytesScalar + StatParam/8 // = 48

	// BytesG1 and BytesG2 are the sizes of compressed BLS12-381 points.
	BytesG1 = 48
	BytesG2 = 96
)

// Domain separation tags for hash-to-group.
//
// These follow the RFC 9380 DST convention, except for PRFDomain which is shared with
// existing deployments of the pseudonym function and must not change.
const (
	PRFDomain      = "PRF-domain"
	PedersenDomain = "SPIRIT-V01-CS01-with-BLS12381G1_XMD:SHA-256_SSWU_RO_PEDERSEN_"
	TokenDomain    = "SPIRIT-V01-CS01-with-BLS12381G1_XMD:SHA-256_SSWU_RO_TOKEN_"
)

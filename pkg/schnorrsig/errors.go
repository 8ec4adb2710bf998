package schnorrsig

import "errors"

var (
	// ErrInvalidSecretKey is returned when a secret scalar is zero, not less
	// than the curve order, or has the wrong length.
	ErrInvalidSecretKey = errors.New("invalid secret key")

	// ErrInvalidPublicKey is returned when bytes do not encode a point on the
	// curve.
	ErrInvalidPublicKey = errors.New("invalid public key")

	// ErrInvalidScalar is returned when a 32-byte big-endian value is not a
	// canonical scalar (it is not less than the curve order) or is zero where
	// a non-zero scalar is required.
	ErrInvalidScalar = errors.New("invalid scalar")

	// ErrScalarTweak is returned when a modular multiply or add fails during
	// signing. The whole Sign call may be retried; it draws a fresh nonce.
	ErrScalarTweak = errors.New("scalar tweak failed")

	// ErrEntropySource is returned when the random source could not supply a
	// nonce or key.
	ErrEntropySource = errors.New("entropy source failure")

	// ErrInvalidSignature is returned when a signature is malformed or does
	// not satisfy s·G = R + e·X.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrChallengeMismatch is returned when the challenge carried by a
	// signature differs from the one recomputed from the message.
	ErrChallengeMismatch = errors.New("challenge mismatch")
)

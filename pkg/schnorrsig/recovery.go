package schnorrsig

import (
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// RecoverKeyFromNonceReuse recovers the secret key from two signatures that
// share the same nonce commitment.
//
// With s1 = k + x·e1 and s2 = k + x·e2:
//
//	x = (s1 - s2) / (e1 - e2) mod n
//
// Returns:
//   - Secret key if recovery succeeded, error otherwise
func RecoverKeyFromNonceReuse(sig1, sig2 *Signature) (*SecretKey, error) {
	if sig1.R != sig2.R {
		return nil, errors.New("signatures use different commitments: nonce was not reused")
	}

	s1, err := scalarFromBytes(&sig1.S)
	if err != nil {
		return nil, fmt.Errorf("first signature: %w", err)
	}
	s2, err := scalarFromBytes(&sig2.S)
	if err != nil {
		return nil, fmt.Errorf("second signature: %w", err)
	}
	e1, err := scalarFromBytes(&sig1.E)
	if err != nil {
		return nil, fmt.Errorf("first signature: %w", err)
	}
	e2, err := scalarFromBytes(&sig2.E)
	if err != nil {
		return nil, fmt.Errorf("second signature: %w", err)
	}

	// numerator: s1 - s2
	numerator := new(secp256k1.ModNScalar).Set(s2).Negate().Add(s1)

	// denominator: e1 - e2
	denominator := new(secp256k1.ModNScalar).Set(e2).Negate().Add(e1)

	// Identical challenges mean identical signatures; nothing leaks.
	if denominator.IsZero() {
		return nil, errors.New("denominator is zero: cannot recover secret key")
	}

	x := denominator.InverseNonConst().Mul(numerator)
	defer x.Zero()
	defer numerator.Zero()

	if x.IsZero() {
		return nil, errors.New("recovered scalar is zero")
	}

	return secp256k1.NewPrivateKey(x), nil
}

// VerifyRecoveredKey reports whether key is the secret key behind pub.
func VerifyRecoveredKey(key *SecretKey, pub *PublicKey) bool {
	return key.PubKey().IsEqual(pub)
}

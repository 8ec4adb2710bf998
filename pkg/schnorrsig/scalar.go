package schnorrsig

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// scalarFromBytes decodes a canonical big-endian scalar. Values not less
// than the curve order are rejected rather than reduced.
func scalarFromBytes(b *[32]byte) (*secp256k1.ModNScalar, error) {
	var s secp256k1.ModNScalar
	if overflow := s.SetBytes(b); overflow != 0 {
		return nil, fmt.Errorf("%w: value is not less than the curve order", ErrInvalidScalar)
	}
	return &s, nil
}

// mulTweak computes x·t mod n.
//
// The tweak must be a canonical non-zero scalar. A zero product is reported
// as a tweak failure.
func mulTweak(x *secp256k1.ModNScalar, tweak [32]byte) (*secp256k1.ModNScalar, error) {
	t, err := scalarFromBytes(&tweak)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScalarTweak, err)
	}
	defer t.Zero()

	if t.IsZero() {
		return nil, fmt.Errorf("%w: %w: zero multiplier", ErrScalarTweak, ErrInvalidScalar)
	}

	product := new(secp256k1.ModNScalar).Mul2(x, t)
	if product.IsZero() {
		return nil, fmt.Errorf("%w: product is zero", ErrScalarTweak)
	}

	return product, nil
}

// addTweak computes k + t mod n.
//
// The tweak must be a canonical scalar. A zero sum is reported as a tweak
// failure.
func addTweak(k *secp256k1.ModNScalar, tweak [32]byte) (*secp256k1.ModNScalar, error) {
	t, err := scalarFromBytes(&tweak)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScalarTweak, err)
	}
	defer t.Zero()

	sum := new(secp256k1.ModNScalar).Add2(k, t)
	if sum.IsZero() {
		return nil, fmt.Errorf("%w: sum is zero", ErrScalarTweak)
	}

	return sum, nil
}

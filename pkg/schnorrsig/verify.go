package schnorrsig

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Verify checks that sig was produced over message by the holder of the
// secret key behind pub. It recomputes the challenge from R, pub and message
// and then checks s·G = R + e·X.
func Verify(pub *PublicKey, message []byte, sig *Signature) error {
	r, err := sig.Commitment()
	if err != nil {
		return err
	}

	xonly, parity := XOnlyPublicKey(pub)
	if e := Challenge(r, xonly, parity, message); e != sig.E {
		return ErrChallengeMismatch
	}

	return verifyRelation(pub, r, sig)
}

// VerifyRelation checks only the algebraic relation s·G = R + e·X, treating
// e as given. It does not bind the signature to a message.
func VerifyRelation(pub *PublicKey, sig *Signature) error {
	r, err := sig.Commitment()
	if err != nil {
		return err
	}

	return verifyRelation(pub, r, sig)
}

func verifyRelation(pub, r *PublicKey, sig *Signature) error {
	s, err := scalarFromBytes(&sig.S)
	if err != nil {
		return fmt.Errorf("%w: s: %w", ErrInvalidSignature, err)
	}
	e, err := scalarFromBytes(&sig.E)
	if err != nil {
		return fmt.Errorf("%w: e: %w", ErrInvalidSignature, err)
	}
	if s.IsZero() || e.IsZero() {
		return fmt.Errorf("%w: zero scalar", ErrInvalidSignature)
	}

	var sG, x, eX, rPoint, rhs secp256k1.JacobianPoint

	// s·G
	secp256k1.ScalarBaseMultNonConst(s, &sG)

	// R + e·X
	pub.AsJacobian(&x)
	secp256k1.ScalarMultNonConst(e, &x, &eX)
	r.AsJacobian(&rPoint)
	secp256k1.AddNonConst(&rPoint, &eX, &rhs)

	// s is non-zero, so s·G is never the point at infinity.
	if rhs.Z.IsZero() {
		return fmt.Errorf("%w: R + e·X is the point at infinity", ErrInvalidSignature)
	}

	sG.ToAffine()
	rhs.ToAffine()

	if !sG.X.Equals(&rhs.X) || !sG.Y.Equals(&rhs.Y) {
		return fmt.Errorf("%w: s·G does not equal R + e·X", ErrInvalidSignature)
	}

	return nil
}

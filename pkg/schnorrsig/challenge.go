package schnorrsig

import (
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// ChallengeSize is the length of the challenge digest.
const ChallengeSize = 32

// Challenge computes
//
//	e = keccak256(addr(R) ‖ parity ‖ xonly(X) ‖ message)
//
// where R is the nonce commitment and (xonly, parity) identify the signer.
// The digest is returned as-is; it is not reduced modulo the curve order.
func Challenge(r *PublicKey, xonly [XOnlySize]byte, parity byte, message []byte) [ChallengeSize]byte {
	rAddr := AddressOf(r)

	// NOTE: the address is already 20 bytes, so this slice keeps all of it.
	// The layout was most likely meant as the last 20 bytes of
	// keccak256(R.x ‖ R.y), i.e. digest[12:32], inlined without going
	// through Address. Both give the same bytes.
	segment := rAddr[0:AddressLength]

	var e [ChallengeSize]byte
	copy(e[:], ethcrypto.Keccak256(segment, []byte{parity}, xonly[:], message))
	return e
}

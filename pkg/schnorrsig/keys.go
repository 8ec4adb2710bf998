package schnorrsig

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	// SecretKeySize is the length of a serialized secret scalar.
	SecretKeySize = secp256k1.PrivKeyBytesLen

	// XOnlySize is the length of an x-only public key.
	XOnlySize = 32
)

// SecretKey is a secp256k1 scalar x in [1, n-1].
type SecretKey = secp256k1.PrivateKey

// PublicKey is the curve point X = x·G.
type PublicKey = secp256k1.PublicKey

// GenerateKey draws a fresh keypair from rand. The same routine produces the
// per-signature nonce and its commitment.
func GenerateKey(rand io.Reader) (*SecretKey, *PublicKey, error) {
	key, err := secp256k1.GeneratePrivateKeyFromRand(rand)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrEntropySource, err)
	}

	return key, key.PubKey(), nil
}

// ParseSecretKey decodes a 32-byte big-endian scalar. It rejects zero and any
// value not less than the curve order instead of reducing it.
func ParseSecretKey(b []byte) (*SecretKey, error) {
	if len(b) != SecretKeySize {
		return nil, fmt.Errorf(
			"%w: expected %d bytes, got %d",
			ErrInvalidSecretKey,
			SecretKeySize,
			len(b),
		)
	}

	var x secp256k1.ModNScalar
	defer x.Zero()

	if overflow := x.SetByteSlice(b); overflow {
		return nil, fmt.Errorf("%w: scalar is not less than the curve order", ErrInvalidSecretKey)
	}
	if x.IsZero() {
		return nil, fmt.Errorf("%w: scalar is zero", ErrInvalidSecretKey)
	}

	return secp256k1.NewPrivateKey(&x), nil
}

// ParseSecretKeyHex decodes a hex secret key with an optional 0x prefix.
func ParseSecretKeyHex(s string) (*SecretKey, error) {
	b, err := hexDecode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSecretKey, err)
	}
	defer zeroBytes(b)

	return ParseSecretKey(b)
}

// ParsePublicKey decodes a compressed (33 bytes) or uncompressed (65 bytes)
// public key.
func ParsePublicKey(b []byte) (*PublicKey, error) {
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}

	return pub, nil
}

// ParsePublicKeyHex decodes a hex public key with an optional 0x prefix.
func ParsePublicKeyHex(s string) (*PublicKey, error) {
	b, err := hexDecode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}

	return ParsePublicKey(b)
}

// XOnlyPublicKey splits pub into its x-coordinate and the parity of its
// y-coordinate (0 for even, 1 for odd).
func XOnlyPublicKey(pub *PublicKey) (xonly [XOnlySize]byte, parity byte) {
	compressed := pub.SerializeCompressed()
	copy(xonly[:], compressed[1:])

	return xonly, compressed[0] - secp256k1.PubKeyFormatCompressedEven
}

// hexDecode decodes a hex string, handling 0x prefix
func hexDecode(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	return hex.DecodeString(s)
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

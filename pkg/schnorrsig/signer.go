package schnorrsig

import (
	"crypto/rand"
	"fmt"
	"io"

	logging "github.com/ipfs/go-log/v2"
)

var logger = logging.Logger("schnorrsig")

// Signer computes signatures with a secp256k1 secret key.
//
// The Signer takes ownership of the key passed to NewSigner: Zero clears it in
// place. State is read-only after construction, so one Signer may be shared
// by concurrent goroutines.
type Signer struct {
	secretKey *SecretKey
	publicKey *PublicKey

	xonly   [XOnlySize]byte
	parity  byte
	address Address
}

// NewSigner creates a Signer for the given secret key and derives its public
// key, x-only key and address once.
func NewSigner(secretKey *SecretKey) (*Signer, error) {
	if secretKey == nil || secretKey.Key.IsZero() {
		return nil, fmt.Errorf("%w: key is empty", ErrInvalidSecretKey)
	}

	publicKey := secretKey.PubKey()
	xonly, parity := XOnlyPublicKey(publicKey)

	return &Signer{
		secretKey: secretKey,
		publicKey: publicKey,
		xonly:     xonly,
		parity:    parity,
		address:   AddressOf(publicKey),
	}, nil
}

// PublicKey returns the signer's public key X = x·G.
func (s *Signer) PublicKey() *PublicKey {
	return s.publicKey
}

// XOnlyPublicKey returns the x-coordinate of the signer's public key and the
// parity of its y-coordinate.
func (s *Signer) XOnlyPublicKey() ([XOnlySize]byte, byte) {
	return s.xonly, s.parity
}

// Address returns the address of the signer's public key.
func (s *Signer) Address() Address {
	return s.address
}

// Sign signs message with a nonce drawn from crypto/rand.
func (s *Signer) Sign(message []byte) (*Signature, error) {
	return s.SignWithRand(rand.Reader, message)
}

// SignWithRand signs message with a nonce drawn from rand:
//
//	k, R = k·G          fresh nonce and commitment
//	e    = Challenge(R, xonly(X), parity(X), message)
//	s    = k + x·e mod n
//
// It returns (R, s, e). Any failure is returned as-is with no retry and no
// partial signature; retrying the whole call draws a different nonce.
func (s *Signer) SignWithRand(rand io.Reader, message []byte) (*Signature, error) {
	if s.secretKey.Key.IsZero() {
		return nil, fmt.Errorf("%w: signer has been zeroed", ErrInvalidSecretKey)
	}

	k, r, err := GenerateKey(rand)
	if err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	defer k.Zero()

	e := Challenge(r, s.xonly, s.parity, message)

	xe, err := mulTweak(&s.secretKey.Key, e)
	if err != nil {
		return nil, fmt.Errorf("failed to compute x·e: %w", err)
	}
	defer xe.Zero()

	sum, err := addTweak(&k.Key, xe.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to compute k + x·e: %w", err)
	}

	signature := &Signature{E: e}
	copy(signature.R[:], r.SerializeCompressed())
	sum.PutBytes(&signature.S)
	sum.Zero()

	logger.Debugw(
		"calculated signature",
		"address", s.address,
		"messageLength", len(message),
	)

	return signature, nil
}

// Zero clears the secret key held by the signer. The signer refuses to sign
// afterwards.
func (s *Signer) Zero() {
	s.secretKey.Zero()
}

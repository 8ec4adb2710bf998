package schnorrsig

import (
	"encoding/binary"
	"errors"
	"testing"
)

const fixturesDir = "../../fixtures/"

// fixedReader yields the same 32 bytes over and over, so every key or nonce
// drawn from it is identical.
type fixedReader struct {
	pattern [32]byte
}

func newFixedReader(v uint64) *fixedReader {
	return &fixedReader{pattern: scalarBytes(v)}
}

func (r *fixedReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = r.pattern[i%len(r.pattern)]
	}
	return len(p), nil
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy pool exhausted")
}

// scalarBytes encodes a small integer as a 32-byte big-endian scalar.
func scalarBytes(v uint64) [32]byte {
	var b [32]byte
	binary.BigEndian.PutUint64(b[24:], v)
	return b
}

func newTestSigner(t *testing.T, x uint64) *Signer {
	t.Helper()

	b := scalarBytes(x)
	secretKey, err := ParseSecretKey(b[:])
	if err != nil {
		t.Fatalf("failed to parse secret key: %v", err)
	}

	signer, err := NewSigner(secretKey)
	if err != nil {
		t.Fatalf("failed to create signer: %v", err)
	}

	return signer
}

func mustDecodeHex(t *testing.T, s string) []byte {
	t.Helper()

	b, err := hexDecode(s)
	if err != nil {
		t.Fatalf("failed to decode hex [%s]: %v", s, err)
	}
	return b
}

// pointOf returns v·G.
func pointOf(t *testing.T, v uint64) *PublicKey {
	t.Helper()

	b := scalarBytes(v)
	key, err := ParseSecretKey(b[:])
	if err != nil {
		t.Fatalf("failed to parse scalar: %v", err)
	}
	return key.PubKey()
}

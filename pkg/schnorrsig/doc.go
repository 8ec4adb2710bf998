// Package schnorrsig computes Schnorr-style signatures over secp256k1 that
// bind the signer's Ethereum-style address scheme into the challenge.
//
// A signature over message m with secret key x (public key X = x·G) is the
// triple (R, s, e):
//
//	k      random nonce, R = k·G
//	e      = keccak256(addr(R) ‖ parity(X) ‖ xonly(X) ‖ m)
//	s      = k + x·e mod n
//
// where addr(P) is the last 20 bytes of keccak256 over the uncompressed
// x‖y payload of P, xonly(X) is the 32-byte x-coordinate and parity(X) is 1
// when the y-coordinate is odd. R is serialized compressed (33 bytes); s and
// e are 32-byte big-endian values.
//
// The challenge digest is not reduced modulo the curve order. A digest that
// is not a canonical scalar makes Sign fail with ErrScalarTweak (wrapping
// ErrInvalidScalar) instead of being reduced; the probability is about
// 2^-128 and the caller may simply sign again with a fresh nonce.
//
// # Quick Start
//
//	import "github.com/mahdiidarabi/secp256k1-schnorr/pkg/schnorrsig"
//
//	secretKey, _, err := schnorrsig.GenerateKey(rand.Reader)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	signer, err := schnorrsig.NewSigner(secretKey)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer signer.Zero()
//
//	signature, err := signer.Sign([]byte("hello world"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("address: %s\n%s\n", signer.Address(), signature)
//
// # Verification
//
// Verify recomputes the challenge and checks s·G = R + e·X:
//
//	err := schnorrsig.Verify(signer.PublicKey(), []byte("hello world"), signature)
//
// # Batches and audits
//
// Signer.SignBatch signs many messages in parallel, and AuditNonceReuse
// scans a set of signatures for a repeated commitment R, which would leak
// the secret key:
//
//	result, err := schnorrsig.AuditNonceReuse(ctx, signatures, pub, schnorrsig.DefaultAuditConfig())
//	if result != nil {
//	    fmt.Printf("key leaked by pair %v\n", result.SignaturePair)
//	}
package schnorrsig

package schnorrsig

import (
	"encoding/json"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

const (
	// CommitmentSize is the length of the compressed commitment R.
	CommitmentSize = secp256k1.PubKeyBytesLenCompressed

	// ScalarSize is the length of a serialized scalar.
	ScalarSize = 32

	// SignatureSize is the length of a serialized signature R ‖ s ‖ e.
	SignatureSize = CommitmentSize + ScalarSize + ChallengeSize
)

// Signature is the triple produced by a single Sign call. It is never
// modified after it is returned.
type Signature struct {
	R [CommitmentSize]byte // nonce commitment k·G, compressed
	S [ScalarSize]byte     // k + x·e mod n, big-endian
	E [ChallengeSize]byte  // challenge digest, big-endian
}

// ParseSignature decodes a 97-byte R ‖ s ‖ e signature. R must be a
// compressed point on the curve.
func ParseSignature(b []byte) (*Signature, error) {
	if len(b) != SignatureSize {
		return nil, fmt.Errorf(
			"%w: expected %d bytes, got %d",
			ErrInvalidSignature,
			SignatureSize,
			len(b),
		)
	}

	signature := &Signature{}
	copy(signature.R[:], b[:CommitmentSize])
	copy(signature.S[:], b[CommitmentSize:CommitmentSize+ScalarSize])
	copy(signature.E[:], b[CommitmentSize+ScalarSize:])

	if _, err := signature.Commitment(); err != nil {
		return nil, err
	}

	return signature, nil
}

// Commitment decodes R as a curve point.
func (sig *Signature) Commitment() (*PublicKey, error) {
	format := sig.R[0]
	if format != secp256k1.PubKeyFormatCompressedEven &&
		format != secp256k1.PubKeyFormatCompressedOdd {
		return nil, fmt.Errorf("%w: unexpected commitment format [0x%02x]", ErrInvalidSignature, format)
	}

	r, err := secp256k1.ParsePubKey(sig.R[:])
	if err != nil {
		return nil, fmt.Errorf("%w: commitment is not on the curve: %v", ErrInvalidSignature, err)
	}

	return r, nil
}

// Bytes serializes the signature as R ‖ s ‖ e.
func (sig *Signature) Bytes() []byte {
	b := make([]byte, 0, SignatureSize)
	b = append(b, sig.R[:]...)
	b = append(b, sig.S[:]...)
	b = append(b, sig.E[:]...)
	return b
}

func (sig *Signature) String() string {
	return fmt.Sprintf(
		"R: %s, S: %s, E: %s",
		hexutil.Encode(sig.R[:]),
		hexutil.Encode(sig.S[:]),
		hexutil.Encode(sig.E[:]),
	)
}

type signatureJSON struct {
	R hexutil.Bytes `json:"r"`
	S hexutil.Bytes `json:"s"`
	E hexutil.Bytes `json:"e"`
}

// MarshalJSON encodes the signature as an object of 0x-prefixed hex fields.
func (sig *Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(signatureJSON{
		R: sig.R[:],
		S: sig.S[:],
		E: sig.E[:],
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (sig *Signature) UnmarshalJSON(data []byte) error {
	var raw signatureJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if len(raw.R) != CommitmentSize || len(raw.S) != ScalarSize || len(raw.E) != ChallengeSize {
		return fmt.Errorf(
			"%w: field lengths r=%d s=%d e=%d",
			ErrInvalidSignature,
			len(raw.R),
			len(raw.S),
			len(raw.E),
		)
	}

	b := make([]byte, 0, SignatureSize)
	b = append(b, raw.R...)
	b = append(b, raw.S...)
	b = append(b, raw.E...)

	parsed, err := ParseSignature(b)
	if err != nil {
		return err
	}
	*sig = *parsed
	return nil
}

// AuditResult describes a pair of signatures that reused a nonce and the
// secret key recovered from them.
type AuditResult struct {
	SecretKey     *SecretKey // Recovered secret key
	Address       Address    // Address of the recovered key
	SignaturePair [2]int     // Indices of the signature pair used
	Verified      bool       // Whether the key was checked against a public key
}

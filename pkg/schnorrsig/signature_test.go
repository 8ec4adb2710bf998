package schnorrsig

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goldenSignature(t *testing.T) *Signature {
	t.Helper()

	signer := newTestSigner(t, 1)
	signature, err := signer.SignWithRand(newFixedReader(2), []byte("hello world"))
	require.NoError(t, err)
	return signature
}

func TestSignature_BytesRoundTrip(t *testing.T) {
	signature := goldenSignature(t)

	parsed, err := ParseSignature(signature.Bytes())
	require.NoError(t, err)
	assert.Equal(t, signature, parsed)
}

func TestParseSignature_Invalid(t *testing.T) {
	signature := goldenSignature(t)

	t.Run("wrong length", func(t *testing.T) {
		_, err := ParseSignature(signature.Bytes()[:96])
		require.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("uncompressed format byte", func(t *testing.T) {
		b := signature.Bytes()
		b[0] = 0x04
		_, err := ParseSignature(b)
		require.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("commitment not on curve", func(t *testing.T) {
		b := signature.Bytes()
		// x = 5 has no square root of x³ + 7 on secp256k1.
		for i := 1; i < CommitmentSize; i++ {
			b[i] = 0
		}
		b[CommitmentSize-1] = 5
		_, err := ParseSignature(b)
		require.ErrorIs(t, err, ErrInvalidSignature)
	})
}

func TestSignature_String(t *testing.T) {
	signature := goldenSignature(t)

	expected := "R: 0x02c6047f9441ed7d6d3045406e95c07cd85c778e4b8cef3ca7abac09b95c709ee5, " +
		"S: 0xd63172c4252201221d78f1eb193f9729a37d537dd711229641ca3404bc577fcd, " +
		"E: 0xd63172c4252201221d78f1eb193f9729a37d537dd711229641ca3404bc577fcb"
	assert.Equal(t, expected, signature.String())
}

func TestSignature_JSON(t *testing.T) {
	signature := goldenSignature(t)

	data, err := json.Marshal(signature)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"r": "0x02c6047f9441ed7d6d3045406e95c07cd85c778e4b8cef3ca7abac09b95c709ee5",
		"s": "0xd63172c4252201221d78f1eb193f9729a37d537dd711229641ca3404bc577fcd",
		"e": "0xd63172c4252201221d78f1eb193f9729a37d537dd711229641ca3404bc577fcb"
	}`, string(data))

	var decoded Signature
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *signature, decoded)
}

func TestSignature_JSONErrors(t *testing.T) {
	tests := []struct {
		name     string
		jsonData string
	}{
		{"Invalid JSON", `{invalid}`},
		{"Invalid hex", `{"r": "0xzz", "s": "0x00", "e": "0x00"}`},
		{"Short fields", `{"r": "0x02", "s": "0x01", "e": "0x01"}`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var signature Signature
			assert.Error(t, json.Unmarshal([]byte(test.jsonData), &signature))
		})
	}
}

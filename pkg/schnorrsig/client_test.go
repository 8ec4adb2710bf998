package schnorrsig

import (
	"context"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRecords(t *testing.T, records []*SignatureRecord) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "signatures.json")
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	require.NoError(t, WriteSignatureRecords(file, records))
	return path
}

func TestClient_SignVerifyRoundTrip(t *testing.T) {
	signer := newTestSigner(t, 0x5eed)
	client := NewClient().WithBatchConfig(BatchConfig{NumWorkers: 2})

	records, err := client.SignFile(context.Background(), signer, fixturesDir+"messages.json")
	require.NoError(t, err)
	require.Len(t, records, 6)

	// Identical messages must still get distinct nonces.
	assert.Equal(t, records[0].Message, records[1].Message)
	assert.NotEqual(t, records[0].Signature.R, records[1].Signature.R)
	assert.NotEqual(t, records[0].Signature.S, records[1].Signature.S)

	path := writeRecords(t, records)

	read, err := ReadSignatureRecords(path)
	require.NoError(t, err)
	require.NoError(t, client.VerifyRecords(signer.PublicKey(), read))

	result, err := client.AuditFile(
		context.Background(),
		path,
		hex.EncodeToString(signer.PublicKey().SerializeCompressed()),
	)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestClient_CSVParser(t *testing.T) {
	signer := newTestSigner(t, 0x5eed)
	client := NewClient().WithParser(&CSVParser{})

	records, err := client.SignFile(context.Background(), signer, fixturesDir+"messages.csv")
	require.NoError(t, err)
	require.Len(t, records, 5)
	require.NoError(t, client.VerifyRecords(signer.PublicKey(), records))
}

func TestClient_VerifyRecords_WrongKey(t *testing.T) {
	signer := newTestSigner(t, 0x5eed)
	other := newTestSigner(t, 0x5eee)
	client := NewClient()

	records, err := client.SignMessages(context.Background(), signer, [][]byte{[]byte("hello world")})
	require.NoError(t, err)

	assert.Error(t, client.VerifyRecords(other.PublicKey(), records))

	// Matching address but tampered message.
	records[0].Message = []byte("hello world!")
	assert.ErrorIs(t, client.VerifyRecords(signer.PublicKey(), records), ErrChallengeMismatch)
}

func TestClient_AuditFile_NonceReuse(t *testing.T) {
	signer := newTestSigner(t, 0x5eed)

	// A broken nonce source hands every message the same nonce.
	client := NewClient().
		WithRand(newFixedReader(424242)).
		WithAuditConfig(AuditConfig{NumWorkers: 1})

	records, err := client.SignMessages(
		context.Background(),
		signer,
		[][]byte{[]byte("first"), []byte("second"), []byte("third")},
	)
	require.NoError(t, err)

	path := writeRecords(t, records)

	result, err := client.AuditFile(
		context.Background(),
		path,
		"0x"+hex.EncodeToString(signer.PublicKey().SerializeCompressed()),
	)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Verified)
	assert.Equal(t, [2]int{0, 1}, result.SignaturePair)
	assert.Equal(t, signer.Address(), result.Address)
	assert.Equal(t, scalarBytes(0x5eed), result.SecretKey.Key.Bytes())
}

func TestClient_AuditFile_InvalidPublicKey(t *testing.T) {
	signer := newTestSigner(t, 0x5eed)
	client := NewClient()

	records, err := client.SignMessages(context.Background(), signer, [][]byte{[]byte("a"), []byte("b")})
	require.NoError(t, err)

	_, err = client.AuditFile(context.Background(), writeRecords(t, records), "0x02")
	assert.Error(t, err)
}

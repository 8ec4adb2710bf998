package schnorrsig

import (
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMulTweak(t *testing.T) {
	var x secp256k1.ModNScalar
	x.SetInt(7)

	product, err := mulTweak(&x, scalarBytes(6))
	require.NoError(t, err)
	assert.Equal(t, scalarBytes(42), product.Bytes())
}

func TestMulTweak_RejectsNonCanonical(t *testing.T) {
	var x secp256k1.ModNScalar
	x.SetInt(7)

	var order [32]byte
	copy(order[:], mustDecodeHex(t, curveOrderHex))

	_, err := mulTweak(&x, order)
	require.ErrorIs(t, err, ErrScalarTweak)
	require.ErrorIs(t, err, ErrInvalidScalar)
}

func TestMulTweak_RejectsZero(t *testing.T) {
	var x secp256k1.ModNScalar
	x.SetInt(7)

	_, err := mulTweak(&x, [32]byte{})
	require.ErrorIs(t, err, ErrScalarTweak)
	require.ErrorIs(t, err, ErrInvalidScalar)
}

func TestAddTweak(t *testing.T) {
	var k secp256k1.ModNScalar
	k.SetInt(5)

	sum, err := addTweak(&k, scalarBytes(37))
	require.NoError(t, err)
	assert.Equal(t, scalarBytes(42), sum.Bytes())
}

func TestAddTweak_WrapsModuloOrder(t *testing.T) {
	// (n - 1) + 2 = 1 mod n
	var k secp256k1.ModNScalar
	var orderMinusOne [32]byte
	copy(orderMinusOne[:], mustDecodeHex(t, "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364140"))
	require.Zero(t, k.SetBytes(&orderMinusOne))

	sum, err := addTweak(&k, scalarBytes(2))
	require.NoError(t, err)
	assert.Equal(t, scalarBytes(1), sum.Bytes())
}

func TestAddTweak_RejectsZeroSum(t *testing.T) {
	// 1 + (n - 1) = 0 mod n
	var k secp256k1.ModNScalar
	k.SetInt(1)

	var orderMinusOne [32]byte
	copy(orderMinusOne[:], mustDecodeHex(t, "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364140"))

	_, err := addTweak(&k, orderMinusOne)
	require.ErrorIs(t, err, ErrScalarTweak)
}

package schnorrsig

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// AddressLength is the length of an Address in bytes.
const AddressLength = 20

// Address is the Ethereum-style identifier of a public key: the last 20
// bytes of keccak256 over the 64-byte x‖y payload of the uncompressed point.
type Address [AddressLength]byte

// AddressOf derives the address of pub. It is a pure function of the point.
func AddressOf(pub *PublicKey) Address {
	// Drop the 0x04 format byte.
	digest := ethcrypto.Keccak256(pub.SerializeUncompressed()[1:])

	var addr Address
	copy(addr[:], digest[len(digest)-AddressLength:])
	return addr
}

// ParseAddress decodes a 20-byte hex address with an optional 0x prefix.
func ParseAddress(s string) (Address, error) {
	var addr Address

	b, err := hexDecode(s)
	if err != nil {
		return addr, fmt.Errorf("invalid address: %w", err)
	}
	if len(b) != AddressLength {
		return addr, fmt.Errorf("invalid address: expected %d bytes, got %d", AddressLength, len(b))
	}

	copy(addr[:], b)
	return addr, nil
}

// Bytes returns a copy of the address bytes.
func (a Address) Bytes() []byte {
	return append([]byte(nil), a[:]...)
}

// Hex returns the address as 0x-prefixed lowercase hex.
func (a Address) Hex() string { return hexutil.Encode(a[:]) }

func (a Address) String() string { return a.Hex() }

// Common converts the address to go-ethereum's representation.
func (a Address) Common() common.Address { return common.Address(a) }

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	addr, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

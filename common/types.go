package common

import (
	"encoding/hex"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

const (
	// AddressLength is the expected length of the address
	AddressLength = ethcommon.AddressLength
	// HashLength is the expected length of the hash
	HashLength = ethcommon.HashLength
)

// Address is the 20 byte identifier of an account.
type Address = ethcommon.Address

// Hash is a 32 byte keccak256 digest.
type Hash = ethcommon.Hash

// Bytes is a raw byte slice with hex string output.
type Bytes []byte

func (b Bytes) String() string {
	return hex.EncodeToString(b)
}

// HexToAddress converts a hex string to an Address. Invalid input yields the
// zero address.
func HexToAddress(s string) Address {
	return ethcommon.HexToAddress(s)
}

// IsHexAddress verifies whether a string can represent a valid hex-encoded
// address or not.
func IsHexAddress(s string) bool {
	return ethcommon.IsHexAddress(s)
}

// BytesToHash sets b to hash. If b is larger than len(h), b will be cropped from the left.
func BytesToHash(b []byte) Hash {
	return ethcommon.BytesToHash(b)
}

// CopyBytes returns an exact copy of the provided bytes.
func CopyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	copiedBytes := make([]byte, len(b))
	copy(copiedBytes, b)
	return copiedBytes
}

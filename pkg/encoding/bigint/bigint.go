/*
Package bigint converts between unsigned little-endian fixed-width byte
strings and 256-bit integers.
*/
package bigint

import (
	"github.com/holiman/uint256"
)

// MaxBytesLen is the maximum length of a serialized integer.
const MaxBytesLen = 32

// FromBytesUnsigned converts data in little-endian format to an unsigned
// integer. data must not be longer than MaxBytesLen.
func FromBytesUnsigned(data []byte) *uint256.Int {
	if len(data) > MaxBytesLen {
		panic("integer is too big")
	}
	var be [MaxBytesLen]byte
	for i, b := range data {
		be[MaxBytesLen-1-i] = b
	}
	return new(uint256.Int).SetBytes(be[:])
}

// PutBytesUnsigned writes n into dst in little-endian format, padding it with
// zeroes up to len(dst). It returns false and leaves dst untouched if n
// doesn't fit into len(dst) bytes.
func PutBytesUnsigned(dst []byte, n *uint256.Int) bool {
	if len(dst) > MaxBytesLen || n.BitLen() > len(dst)*8 {
		return false
	}
	be := n.Bytes32()
	for i := range dst {
		dst[i] = be[MaxBytesLen-1-i]
	}
	return true
}

// ToBytesUnsigned returns n in little-endian format padded to size bytes.
// It panics if n doesn't fit.
func ToBytesUnsigned(n *uint256.Int, size int) []byte {
	data := make([]byte, size)
	if !PutBytesUnsigned(data, n) {
		panic("integer doesn't fit")
	}
	return data
}

package testserdes

import (
	"reflect"
	"testing"

	"github.com/nspcc-dev/fvm/pkg/io"
	"github.com/stretchr/testify/require"
)

type encodable interface {
	EncodeBinary(*io.BinWriter)
}

type decodable interface {
	DecodeBinary(*io.BinReader)
}

// EncodeDecodeBinary checks if expected stays the same after
// serializing/deserializing via io.Serializable methods. It also checks that
// decoding consumes exactly the encoded bytes.
func EncodeDecodeBinary(t *testing.T, expected encodable, actual decodable) {
	data, err := EncodeBinary(expected)
	require.NoError(t, err)
	r := io.NewBinReaderFromBuf(append(data, 0x5a))
	actual.DecodeBinary(r)
	require.NoError(t, r.Err)
	require.Equal(t, byte(0x5a), r.ReadB(), "decoder consumed more or less than encoded")
	require.NoError(t, r.Err)
	require.Equal(t, expected, deref(expected, actual))
}

// EncodeBinary serializes a to a byte slice.
func EncodeBinary(a encodable) ([]byte, error) {
	w := io.NewBufBinWriter()
	a.EncodeBinary(w.BinWriter)
	if w.Err != nil {
		return nil, w.Err
	}
	return w.Bytes(), nil
}

// DecodeBinary deserializes a from a byte slice.
func DecodeBinary(data []byte, a decodable) error {
	r := io.NewBinReaderFromBuf(data)
	a.DecodeBinary(r)
	return r.Err
}

// deref makes actual comparable with expected when expected is a value and
// actual is a pointer to the decoded one.
func deref(expected any, actual any) any {
	if reflect.ValueOf(expected).Kind() == reflect.Ptr {
		return actual
	}
	if v := reflect.ValueOf(actual); v.Kind() == reflect.Ptr {
		return v.Elem().Interface()
	}
	return actual
}

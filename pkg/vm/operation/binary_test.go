package operation

import (
	"io"
	"strings"
	"testing"

	"github.com/nspcc-dev/fvm/internal/testserdes"
	"github.com/nspcc-dev/fvm/pkg/field"
	fio "github.com/nspcc-dev/fvm/pkg/io"
	"github.com/nspcc-dev/fvm/pkg/vm/operand"
	"github.com/nspcc-dev/fvm/pkg/vm/register"
	"github.com/stretchr/testify/require"
)

var (
	_ Operation[field.BN254] = UnaryOperation[field.BN254]{}
	_ Operation[field.BN254] = BinaryOperation[field.BN254]{}
	_ Operation[field.BN254] = TernaryOperation[field.BN254]{}
)

func lit[E field.Environment](t *testing.T, v uint64) operand.Operand[E] {
	e, err := field.ElementFromUint64[E](v)
	require.NoError(t, err)
	return operand.Literal(e)
}

func ref[E field.Environment](r register.Register) operand.Operand[E] {
	return operand.Ref[E](r)
}

func TestParseBinaryOperation(t *testing.T) {
	op, rest, err := ParseBinaryOperation[field.BN254]("r2 r0 42")
	require.NoError(t, err)
	require.Equal(t, "", rest)
	require.Equal(t, register.Register(2), op.Destination())
	require.Equal(t, ref[field.BN254](0), op.First())
	require.Equal(t, lit[field.BN254](t, 42), op.Second())
	require.Equal(t, NewBinaryOperation(2, ref[field.BN254](0), lit[field.BN254](t, 42)), op)
}

func TestParseBinaryOperationTrailing(t *testing.T) {
	alone, rest, err := ParseBinaryOperation[field.BN254]("r2 r0 42")
	require.NoError(t, err)
	require.Equal(t, "", rest)

	op, rest, err := ParseBinaryOperation[field.BN254]("r2 r0 42 extra")
	require.NoError(t, err)
	require.Equal(t, " extra", rest)
	require.Equal(t, alone, op)

	_, rest, err = ParseBinaryOperation[field.BN254]("r2 r0 42;\nadd r1 r1 r1;")
	require.NoError(t, err)
	require.Equal(t, ";\nadd r1 r1 r1;", rest)
}

func TestParseBinaryOperationSeparator(t *testing.T) {
	for _, in := range []string{
		"r0  r1 r2",
		"r0 r1  r2",
		"r0\tr1 r2",
		"r0 r1\tr2",
		"r0",
		"r0 r1",
		"r0,r1,r2",
		"r0x r1 r2",
	} {
		op, rest, err := ParseBinaryOperation[field.BN254](in)
		require.ErrorIs(t, err, ErrMissingSeparator, in)
		require.Equal(t, in, rest)
		require.Equal(t, BinaryOperation[field.BN254]{}, op)
	}
}

func TestParseBinaryOperationFieldErrors(t *testing.T) {
	_, _, err := ParseBinaryOperation[field.BN254]("x0 r1 r2")
	require.ErrorIs(t, err, register.ErrInvalidRegister)
	require.NotErrorIs(t, err, ErrMissingSeparator)

	// Destination is always a register.
	_, _, err = ParseBinaryOperation[field.BN254]("42 r1 r2")
	require.ErrorIs(t, err, register.ErrInvalidRegister)

	_, _, err = ParseBinaryOperation[field.BN254]("r0 r01 r2")
	require.ErrorIs(t, err, register.ErrInvalidRegister)

	_, _, err = ParseBinaryOperation[field.BN254]("r0 r1 x")
	require.ErrorIs(t, err, operand.ErrInvalidOperand)

	_, _, err = ParseBinaryOperation[field.Word64]("r0 r1 18446744073709551616")
	require.ErrorIs(t, err, field.ErrOutOfRange)

	// Register parser error is returned unchanged.
	_, _, regErr := register.Parse("r")
	_, _, err = ParseBinaryOperation[field.BN254]("r r1 r2")
	require.Equal(t, regErr, err)
}

func TestBinaryOperationString(t *testing.T) {
	op := NewBinaryOperation(7, lit[field.BN254](t, 1), ref[field.BN254](3))
	require.Equal(t, "r7 1 r3", op.String())
}

func testBinaryOps(t *testing.T) []BinaryOperation[field.BLS12381] {
	max, _, err := field.ParseElement[field.BLS12381]("52435875175126190479447740508185965837690552500527637822603658699938581184512")
	require.NoError(t, err)
	return []BinaryOperation[field.BLS12381]{
		NewBinaryOperation(0, ref[field.BLS12381](0), ref[field.BLS12381](0)),
		NewBinaryOperation(2, ref[field.BLS12381](0), lit[field.BLS12381](t, 42)),
		NewBinaryOperation(300, lit[field.BLS12381](t, 0), ref[field.BLS12381](70000)),
		NewBinaryOperation(1<<40, operand.Literal(max), lit[field.BLS12381](t, 1)),
	}
}

func TestBinaryOperationTextRoundTrip(t *testing.T) {
	for _, op := range testBinaryOps(t) {
		s := op.String()
		actual, rest, err := ParseBinaryOperation[field.BLS12381](s)
		require.NoError(t, err, s)
		require.Equal(t, "", rest)
		require.Equal(t, op, actual)
		require.Equal(t, s, actual.String())
		require.False(t, strings.HasPrefix(s, " ") || strings.HasSuffix(s, " "))
	}
}

func TestBinaryOperationBinaryRoundTrip(t *testing.T) {
	for _, op := range testBinaryOps(t) {
		var actual BinaryOperation[field.BLS12381]
		testserdes.EncodeDecodeBinary(t, op, &actual)
	}
}

func TestBinaryOperationLayout(t *testing.T) {
	op := NewBinaryOperation(2, ref[field.Word64](0), lit[field.Word64](t, 42))
	data, err := testserdes.EncodeBinary(op)
	require.NoError(t, err)
	require.Equal(t, []byte{
		0x02,       // destination
		0x01, 0x00, // first: register r0
		0x00, 42, 0, 0, 0, 0, 0, 0, 0, // second: literal 42
	}, data)
	require.Equal(t, len(data), fio.GetSize(op))
}

func TestBinaryOperationFieldIndependence(t *testing.T) {
	for _, op := range testBinaryOps(t) {
		dst, err := testserdes.EncodeBinary(op.Destination())
		require.NoError(t, err)
		first, err := testserdes.EncodeBinary(op.First())
		require.NoError(t, err)
		second, err := testserdes.EncodeBinary(op.Second())
		require.NoError(t, err)

		data, err := testserdes.EncodeBinary(op)
		require.NoError(t, err)
		require.Equal(t, append(append(append([]byte{}, dst...), first...), second...), data)

		var decoded BinaryOperation[field.BLS12381]
		require.NoError(t, testserdes.DecodeBinary(data, &decoded))

		var (
			r    register.Register
			a, b operand.Operand[field.BLS12381]
		)
		require.NoError(t, testserdes.DecodeBinary(data[:len(dst)], &r))
		require.NoError(t, testserdes.DecodeBinary(data[len(dst):len(dst)+len(first)], &a))
		require.NoError(t, testserdes.DecodeBinary(data[len(dst)+len(first):], &b))
		require.Equal(t, r, decoded.Destination())
		require.Equal(t, a, decoded.First())
		require.Equal(t, b, decoded.Second())
	}
}

func TestBinaryOperationTruncated(t *testing.T) {
	op := NewBinaryOperation(2, ref[field.BN254](0), lit[field.BN254](t, 42))
	data, err := testserdes.EncodeBinary(op)
	require.NoError(t, err)

	// Destination and first operand are there, second one is missing.
	prefix := data[:3]
	orig := NewBinaryOperation(9, ref[field.BN254](9), ref[field.BN254](9))
	actual := orig
	err = testserdes.DecodeBinary(prefix, &actual)
	require.ErrorIs(t, err, io.EOF)
	require.Equal(t, orig, actual)

	for i := 0; i < len(data); i++ {
		actual := orig
		err := testserdes.DecodeBinary(data[:i], &actual)
		require.Error(t, err, "length %d", i)
		require.True(t, err == io.EOF || err == io.ErrUnexpectedEOF, "length %d: %v", i, err)
		require.Equal(t, orig, actual)
	}
}

func TestBinaryOperationDecodeFormatErrors(t *testing.T) {
	// Invalid tag of the second operand is returned unwrapped.
	r := fio.NewBinReaderFromBuf([]byte{0x02, 0x01, 0x00, 0x07})
	var op BinaryOperation[field.BN254]
	op.DecodeBinary(r)
	require.ErrorIs(t, r.Err, operand.ErrInvalidTag)
	require.Equal(t, BinaryOperation[field.BN254]{}, op)

	// Non-canonical destination index.
	r = fio.NewBinReaderFromBuf([]byte{0xfd, 0x02, 0x00, 0x01, 0x00, 0x01, 0x00})
	op.DecodeBinary(r)
	require.Equal(t, fio.ErrNonCanonical, r.Err)

	// Literal out of the Word64 range can't come from 8 bytes, but a BN254
	// literal equal to the modulus is rejected.
	data := []byte{0x00, 0x01, 0x00, 0x00}
	data = append(data, make([]byte, 32)...)
	for i := 4; i < len(data); i++ {
		data[i] = 0xff
	}
	r = fio.NewBinReaderFromBuf(data)
	op.DecodeBinary(r)
	require.ErrorIs(t, r.Err, field.ErrOutOfRange)
}

func TestBinaryOperationDecodeStream(t *testing.T) {
	ops := testBinaryOps(t)
	w := fio.NewBufBinWriter()
	for _, op := range ops {
		op.EncodeBinary(w.BinWriter)
	}
	require.NoError(t, w.Err)

	r := fio.NewBinReaderFromBuf(w.Bytes())
	for _, op := range ops {
		var actual BinaryOperation[field.BLS12381]
		actual.DecodeBinary(r)
		require.NoError(t, r.Err)
		require.Equal(t, op, actual)
	}
	r.ReadB()
	require.ErrorIs(t, r.Err, io.EOF)
}

package operation

import (
	"github.com/nspcc-dev/fvm/pkg/field"
	"github.com/nspcc-dev/fvm/pkg/io"
	"github.com/nspcc-dev/fvm/pkg/vm/operand"
	"github.com/nspcc-dev/fvm/pkg/vm/register"
)

// BinaryOperation is a destination register with two operands. It's an
// immutable value, two operations with equal fields are equal.
type BinaryOperation[E field.Environment] struct {
	destination register.Register
	first       operand.Operand[E]
	second      operand.Operand[E]
}

// NewBinaryOperation creates a BinaryOperation from its fields.
func NewBinaryOperation[E field.Environment](dst register.Register, first, second operand.Operand[E]) BinaryOperation[E] {
	return BinaryOperation[E]{destination: dst, first: first, second: second}
}

// ParseBinaryOperation parses "<register> <operand> <operand>" from the
// beginning of s and returns the remainder of s. Anything after the second
// operand is left to the caller.
func ParseBinaryOperation[E field.Environment](s string) (BinaryOperation[E], string, error) {
	var op BinaryOperation[E]
	rest, err := parseFields(s,
		registerField(&op.destination),
		operandField(&op.first),
		operandField(&op.second))
	if err != nil {
		return BinaryOperation[E]{}, s, err
	}
	return op, rest, nil
}

// Destination returns the destination register.
func (o BinaryOperation[E]) Destination() register.Register {
	return o.destination
}

// First returns the first operand.
func (o BinaryOperation[E]) First() operand.Operand[E] {
	return o.first
}

// Second returns the second operand.
func (o BinaryOperation[E]) Second() operand.Operand[E] {
	return o.second
}

// Operands implements Operation.
func (o BinaryOperation[E]) Operands() []operand.Operand[E] {
	return []operand.Operand[E]{o.first, o.second}
}

// String implements fmt.Stringer.
func (o BinaryOperation[E]) String() string {
	return formatFields(o.destination, o.first, o.second)
}

// EncodeBinary implements io.Serializable.
func (o BinaryOperation[E]) EncodeBinary(w *io.BinWriter) {
	encodeFields(w, o.destination, o.first, o.second)
}

// DecodeBinary implements io.Serializable. o is only changed if all fields
// are decoded, the error of the failed field is left in r as is.
func (o *BinaryOperation[E]) DecodeBinary(r *io.BinReader) {
	var res BinaryOperation[E]
	decodeFields(r, &res.destination, &res.first, &res.second)
	if r.Err == nil {
		*o = res
	}
}

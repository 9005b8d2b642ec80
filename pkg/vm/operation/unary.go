package operation

import (
	"github.com/nspcc-dev/fvm/pkg/field"
	"github.com/nspcc-dev/fvm/pkg/io"
	"github.com/nspcc-dev/fvm/pkg/vm/operand"
	"github.com/nspcc-dev/fvm/pkg/vm/register"
)

// UnaryOperation is a destination register with one operand.
type UnaryOperation[E field.Environment] struct {
	destination register.Register
	first       operand.Operand[E]
}

// NewUnaryOperation creates a UnaryOperation from its fields.
func NewUnaryOperation[E field.Environment](dst register.Register, first operand.Operand[E]) UnaryOperation[E] {
	return UnaryOperation[E]{destination: dst, first: first}
}

// ParseUnaryOperation parses "<register> <operand>" from the beginning of s.
func ParseUnaryOperation[E field.Environment](s string) (UnaryOperation[E], string, error) {
	var op UnaryOperation[E]
	rest, err := parseFields(s,
		registerField(&op.destination),
		operandField(&op.first))
	if err != nil {
		return UnaryOperation[E]{}, s, err
	}
	return op, rest, nil
}

// Destination returns the destination register.
func (o UnaryOperation[E]) Destination() register.Register {
	return o.destination
}

// First returns the operand.
func (o UnaryOperation[E]) First() operand.Operand[E] {
	return o.first
}

// Operands implements Operation.
func (o UnaryOperation[E]) Operands() []operand.Operand[E] {
	return []operand.Operand[E]{o.first}
}

// String implements fmt.Stringer.
func (o UnaryOperation[E]) String() string {
	return formatFields(o.destination, o.first)
}

// EncodeBinary implements io.Serializable.
func (o UnaryOperation[E]) EncodeBinary(w *io.BinWriter) {
	encodeFields(w, o.destination, o.first)
}

// DecodeBinary implements io.Serializable.
func (o *UnaryOperation[E]) DecodeBinary(r *io.BinReader) {
	var res UnaryOperation[E]
	decodeFields(r, &res.destination, &res.first)
	if r.Err == nil {
		*o = res
	}
}

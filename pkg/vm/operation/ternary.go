package operation

import (
	"github.com/nspcc-dev/fvm/pkg/field"
	"github.com/nspcc-dev/fvm/pkg/io"
	"github.com/nspcc-dev/fvm/pkg/vm/operand"
	"github.com/nspcc-dev/fvm/pkg/vm/register"
)

// TernaryOperation is a destination register with three operands.
type TernaryOperation[E field.Environment] struct {
	destination register.Register
	first       operand.Operand[E]
	second      operand.Operand[E]
	third       operand.Operand[E]
}

// NewTernaryOperation creates a TernaryOperation from its fields.
func NewTernaryOperation[E field.Environment](dst register.Register, first, second, third operand.Operand[E]) TernaryOperation[E] {
	return TernaryOperation[E]{destination: dst, first: first, second: second, third: third}
}

// ParseTernaryOperation parses "<register> <operand> <operand> <operand>"
// from the beginning of s.
func ParseTernaryOperation[E field.Environment](s string) (TernaryOperation[E], string, error) {
	var op TernaryOperation[E]
	rest, err := parseFields(s,
		registerField(&op.destination),
		operandField(&op.first),
		operandField(&op.second),
		operandField(&op.third))
	if err != nil {
		return TernaryOperation[E]{}, s, err
	}
	return op, rest, nil
}

// Destination returns the destination register.
func (o TernaryOperation[E]) Destination() register.Register {
	return o.destination
}

// First returns the first operand.
func (o TernaryOperation[E]) First() operand.Operand[E] {
	return o.first
}

// Second returns the second operand.
func (o TernaryOperation[E]) Second() operand.Operand[E] {
	return o.second
}

// Third returns the third operand.
func (o TernaryOperation[E]) Third() operand.Operand[E] {
	return o.third
}

// Operands implements Operation.
func (o TernaryOperation[E]) Operands() []operand.Operand[E] {
	return []operand.Operand[E]{o.first, o.second, o.third}
}

// String implements fmt.Stringer.
func (o TernaryOperation[E]) String() string {
	return formatFields(o.destination, o.first, o.second, o.third)
}

// EncodeBinary implements io.Serializable.
func (o TernaryOperation[E]) EncodeBinary(w *io.BinWriter) {
	encodeFields(w, o.destination, o.first, o.second, o.third)
}

// DecodeBinary implements io.Serializable.
func (o *TernaryOperation[E]) DecodeBinary(r *io.BinReader) {
	var res TernaryOperation[E]
	decodeFields(r, &res.destination, &res.first, &res.second, &res.third)
	if r.Err == nil {
		*o = res
	}
}

/*
Package operand implements instruction operands: either a register reference
or an immediate literal of the arithmetic environment.
*/
package operand

import (
	"errors"
	"fmt"

	"github.com/nspcc-dev/fvm/pkg/field"
	"github.com/nspcc-dev/fvm/pkg/io"
	"github.com/nspcc-dev/fvm/pkg/vm/register"
)

// Kind is an operand variant, it's also the binary tag of the operand.
type Kind byte

// Operand kinds.
const (
	LiteralKind  Kind = 0x00
	RegisterKind Kind = 0x01
)

// Errors returned by operand codecs.
var (
	ErrInvalidOperand = errors.New("invalid operand")
	ErrInvalidTag     = errors.New("invalid operand tag")
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case LiteralKind:
		return "literal"
	case RegisterKind:
		return "register"
	default:
		return fmt.Sprintf("Kind(%d)", byte(k))
	}
}

// Operand is a value consumed by an operation. The zero value is the literal
// zero. Operands are comparable.
type Operand[E field.Environment] struct {
	kind  Kind
	reg   register.Register
	value field.Element[E]
}

// Literal returns a literal operand.
func Literal[E field.Environment](v field.Element[E]) Operand[E] {
	return Operand[E]{kind: LiteralKind, value: v}
}

// Ref returns a register reference operand.
func Ref[E field.Environment](r register.Register) Operand[E] {
	return Operand[E]{kind: RegisterKind, reg: r}
}

// Parse reads an operand from the beginning of s and returns the remainder.
// Registers start with 'r', literals with a decimal digit.
func Parse[E field.Environment](s string) (Operand[E], string, error) {
	switch {
	case len(s) > 0 && s[0] == register.Prefix:
		r, rest, err := register.Parse(s)
		if err != nil {
			return Operand[E]{}, s, err
		}
		return Ref[E](r), rest, nil
	case len(s) > 0 && s[0] >= '0' && s[0] <= '9':
		v, rest, err := field.ParseElement[E](s)
		if err != nil {
			return Operand[E]{}, s, err
		}
		return Literal(v), rest, nil
	default:
		return Operand[E]{}, s, fmt.Errorf("%w: register or literal expected", ErrInvalidOperand)
	}
}

// Kind returns the operand variant.
func (o Operand[E]) Kind() Kind {
	return o.kind
}

// IsLiteral checks whether o is a literal.
func (o Operand[E]) IsLiteral() bool {
	return o.kind == LiteralKind
}

// IsRegister checks whether o is a register reference.
func (o Operand[E]) IsRegister() bool {
	return o.kind == RegisterKind
}

// Literal returns the literal value if o is a literal.
func (o Operand[E]) Literal() (field.Element[E], bool) {
	return o.value, o.kind == LiteralKind
}

// Register returns the referenced register if o is a register reference.
func (o Operand[E]) Register() (register.Register, bool) {
	return o.reg, o.kind == RegisterKind
}

// String implements fmt.Stringer.
func (o Operand[E]) String() string {
	switch o.kind {
	case LiteralKind:
		return o.value.String()
	case RegisterKind:
		return o.reg.String()
	default:
		panic(fmt.Sprintf("unknown operand kind %d", o.kind))
	}
}

// EncodeBinary implements io.Serializable.
func (o Operand[E]) EncodeBinary(w *io.BinWriter) {
	switch o.kind {
	case LiteralKind:
		w.WriteB(byte(LiteralKind))
		o.value.EncodeBinary(w)
	case RegisterKind:
		w.WriteB(byte(RegisterKind))
		o.reg.EncodeBinary(w)
	default:
		panic(fmt.Sprintf("unknown operand kind %d", o.kind))
	}
}

// DecodeBinary implements io.Serializable. o is only changed if the whole
// operand is decoded successfully.
func (o *Operand[E]) DecodeBinary(r *io.BinReader) {
	tag := Kind(r.ReadB())
	if r.Err != nil {
		return
	}
	switch tag {
	case LiteralKind:
		var v field.Element[E]
		v.DecodeBinary(r)
		if r.Err == nil {
			*o = Literal(v)
		}
	case RegisterKind:
		var reg register.Register
		reg.DecodeBinary(r)
		if r.Err == nil {
			*o = Ref[E](reg)
		}
	default:
		r.Err = fmt.Errorf("%w: %d", ErrInvalidTag, tag)
	}
}

/*
Package instruction dispatches between operation shapes by opcode and
assembles instructions into programs.
*/
package instruction

import (
	"errors"
	"fmt"

	"github.com/nspcc-dev/fvm/pkg/field"
	"github.com/nspcc-dev/fvm/pkg/io"
	"github.com/nspcc-dev/fvm/pkg/vm/opcode"
	"github.com/nspcc-dev/fvm/pkg/vm/operation"
)

// Terminator ends every instruction in the text form.
const Terminator = ';'

// Various instruction errors.
var (
	ErrArityMismatch     = errors.New("operation arity doesn't match opcode")
	ErrMissingTerminator = errors.New("missing instruction terminator")
	ErrEmptyInstruction  = errors.New("instruction has no operation")
)

// emptyText is the text form of an instruction without an operation.
const emptyText = "<empty>;"

// Instruction is an opcode with the operation of the matching arity.
type Instruction[E field.Environment] struct {
	op   opcode.Opcode
	args operation.Operation[E]
}

// New creates an instruction checking that args fit op.
func New[E field.Environment](op opcode.Opcode, args operation.Operation[E]) (Instruction[E], error) {
	if !opcode.IsValid(op) {
		return Instruction[E]{}, fmt.Errorf("%w: %s", opcode.ErrInvalidOpcode, op)
	}
	if args == nil {
		return Instruction[E]{}, ErrEmptyInstruction
	}
	if n := len(args.Operands()); n != op.Arity() {
		return Instruction[E]{}, fmt.Errorf("%w: %s takes %d operands, got %d", ErrArityMismatch, op, op.Arity(), n)
	}
	return Instruction[E]{op: op, args: args}, nil
}

// Parse reads "<mnemonic> <operation>;" from the beginning of s and returns
// the remainder after the terminator.
func Parse[E field.Environment](s string) (Instruction[E], string, error) {
	var n int
	for n < len(s) && (s[n] >= 'a' && s[n] <= 'z' || s[n] >= 'A' && s[n] <= 'Z') {
		n++
	}
	op, err := opcode.FromString(s[:n])
	if err != nil {
		return Instruction[E]{}, s, fmt.Errorf("%w: %q", err, s[:n])
	}
	rest := s[n:]
	if len(rest) == 0 || rest[0] != operation.Separator ||
		len(rest) > 1 && rest[1] == operation.Separator {
		return Instruction[E]{}, s, fmt.Errorf("%w after %s", operation.ErrMissingSeparator, op.Mnemonic())
	}
	rest = rest[1:]

	var args operation.Operation[E]
	switch op.Arity() {
	case 1:
		args, rest, err = parseOperation[E](rest, operation.ParseUnaryOperation[E])
	case 2:
		args, rest, err = parseOperation[E](rest, operation.ParseBinaryOperation[E])
	case 3:
		args, rest, err = parseOperation[E](rest, operation.ParseTernaryOperation[E])
	default:
		panic(fmt.Sprintf("unexpected arity %d of %s", op.Arity(), op))
	}
	if err != nil {
		return Instruction[E]{}, s, err
	}
	if len(rest) == 0 || rest[0] != Terminator {
		return Instruction[E]{}, s, fmt.Errorf("%w after %s", ErrMissingTerminator, args)
	}
	return Instruction[E]{op: op, args: args}, rest[1:], nil
}

func parseOperation[E field.Environment, O operation.Operation[E]](s string, parse func(string) (O, string, error)) (operation.Operation[E], string, error) {
	op, rest, err := parse(s)
	if err != nil {
		return nil, s, err
	}
	return op, rest, nil
}

// Opcode returns the instruction opcode.
func (i Instruction[E]) Opcode() opcode.Opcode {
	return i.op
}

// Operation returns the instruction operation.
func (i Instruction[E]) Operation() operation.Operation[E] {
	return i.args
}

// String implements fmt.Stringer.
func (i Instruction[E]) String() string {
	if i.args == nil {
		return emptyText
	}
	return i.op.Mnemonic() + string(operation.Separator) + i.args.String() + string(Terminator)
}

// EncodeBinary implements io.Serializable.
func (i Instruction[E]) EncodeBinary(w *io.BinWriter) {
	if i.args == nil {
		if w.Err == nil {
			w.Err = ErrEmptyInstruction
		}
		return
	}
	w.WriteB(byte(i.op))
	i.args.EncodeBinary(w)
}

// DecodeBinary implements io.Serializable.
func (i *Instruction[E]) DecodeBinary(r *io.BinReader) {
	op := opcode.Opcode(r.ReadB())
	if r.Err != nil {
		return
	}
	var args operation.Operation[E]
	switch op.Arity() {
	case 1:
		var u operation.UnaryOperation[E]
		u.DecodeBinary(r)
		args = u
	case 2:
		var b operation.BinaryOperation[E]
		b.DecodeBinary(r)
		args = b
	case 3:
		var t operation.TernaryOperation[E]
		t.DecodeBinary(r)
		args = t
	default:
		r.Err = fmt.Errorf("%w: 0x%02x", opcode.ErrInvalidOpcode, byte(op))
		return
	}
	if r.Err == nil {
		*i = Instruction[E]{op: op, args: args}
	}
}

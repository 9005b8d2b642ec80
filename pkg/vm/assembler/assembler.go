/*
Package assembler provides environment-agnostic access to the field VM
codecs. It picks the instantiation of generic codecs by the environment name
so that callers (like CLI) don't need to be generic themselves.
*/
package assembler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/nspcc-dev/fvm/pkg/field"
	"github.com/nspcc-dev/fvm/pkg/io"
	"github.com/nspcc-dev/fvm/pkg/vm/instruction"
)

// ErrTrailingInput is returned when a single instruction is followed by
// anything.
var ErrTrailingInput = errors.New("trailing input after instruction")

// Field is a single encoded instruction field.
type Field struct {
	Name  string
	Text  string
	Bytes []byte
}

// Assembler converts programs and instructions between text and binary forms.
type Assembler interface {
	// Environment returns the environment of literals.
	Environment() field.Environment
	// Assemble converts program text into binary program returning the
	// number of instructions in it.
	Assemble(src string) ([]byte, int, error)
	// Disassemble converts binary program into text returning the number of
	// instructions in it.
	Disassemble(data []byte) (string, int, error)
	// EncodeInstruction converts a single instruction into its binary form.
	EncodeInstruction(s string) ([]byte, error)
	// DecodeInstruction converts a single binary instruction into text.
	DecodeInstruction(data []byte) (string, error)
	// Inspect parses a single instruction and encodes every field of it
	// separately.
	Inspect(s string) ([]Field, error)
}

type assembler[E field.Environment] struct {
	maxInstructions int
}

// New returns an Assembler for the environment with the given name. Decoded
// programs are limited to maxInstructions instructions.
func New(env string, maxInstructions int) (Assembler, error) {
	e, err := field.ByName(env)
	if err != nil {
		return nil, err
	}
	switch e.(type) {
	case field.BN254:
		return &assembler[field.BN254]{maxInstructions: maxInstructions}, nil
	case field.BLS12381:
		return &assembler[field.BLS12381]{maxInstructions: maxInstructions}, nil
	case field.Word256:
		return &assembler[field.Word256]{maxInstructions: maxInstructions}, nil
	case field.Word64:
		return &assembler[field.Word64]{maxInstructions: maxInstructions}, nil
	default:
		return nil, fmt.Errorf("%w: %s", field.ErrUnknownEnvironment, env)
	}
}

func (a *assembler[E]) Environment() field.Environment {
	var env E
	return env
}

func (a *assembler[E]) Assemble(src string) ([]byte, int, error) {
	p, err := instruction.ParseProgram[E](src)
	if err != nil {
		return nil, 0, err
	}
	data, err := p.Bytes()
	if err != nil {
		return nil, 0, err
	}
	return data, len(p.Instructions), nil
}

func (a *assembler[E]) Disassemble(data []byte) (string, int, error) {
	p, err := instruction.NewProgramFromBytes[E](data, a.maxInstructions)
	if err != nil {
		return "", 0, err
	}
	return p.String(), len(p.Instructions), nil
}

func (a *assembler[E]) parseInstruction(s string) (instruction.Instruction[E], error) {
	inst, rest, err := instruction.Parse[E](s)
	if err != nil {
		return inst, err
	}
	if len(rest) != 0 {
		return inst, fmt.Errorf("%w: %q", ErrTrailingInput, rest)
	}
	return inst, nil
}

func (a *assembler[E]) EncodeInstruction(s string) ([]byte, error) {
	inst, err := a.parseInstruction(s)
	if err != nil {
		return nil, err
	}
	return encode(inst)
}

func (a *assembler[E]) DecodeInstruction(data []byte) (string, error) {
	r := io.NewBinReaderFromBuf(data)
	var inst instruction.Instruction[E]
	inst.DecodeBinary(r)
	if r.Err != nil {
		return "", r.Err
	}
	if size := io.GetSize(inst); size != len(data) {
		return "", fmt.Errorf("%w: %d bytes", instruction.ErrTrailingData, len(data)-size)
	}
	return inst.String(), nil
}

func (a *assembler[E]) Inspect(s string) ([]Field, error) {
	inst, err := a.parseInstruction(s)
	if err != nil {
		return nil, err
	}
	op := inst.Operation()
	fields := []Field{
		{Name: "opcode", Text: inst.Opcode().Mnemonic(), Bytes: []byte{byte(inst.Opcode())}},
	}
	dst, err := encode(op.Destination())
	if err != nil {
		return nil, err
	}
	fields = append(fields, Field{Name: "destination", Text: op.Destination().String(), Bytes: dst})
	for i, o := range op.Operands() {
		b, err := encode(o)
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field{Name: "operand " + strconv.Itoa(i+1), Text: o.String(), Bytes: b})
	}
	return fields, nil
}

type encodable interface {
	EncodeBinary(*io.BinWriter)
}

func encode(e encodable) ([]byte, error) {
	w := io.NewBufBinWriter()
	e.EncodeBinary(w.BinWriter)
	if w.Err != nil {
		return nil, w.Err
	}
	return w.Bytes(), nil
}

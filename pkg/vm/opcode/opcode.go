package opcode

import (
	"errors"
	"strings"
)

//go:generate stringer -type=Opcode

// Opcode represents a single operation code of the field VM.
type Opcode byte

// Supported instructions.
const (
	// Unary.
	NEG    Opcode = 0x01
	INV    Opcode = 0x02
	SQUARE Opcode = 0x03
	DOUBLE Opcode = 0x04

	// Binary.
	ADD Opcode = 0x10
	SUB Opcode = 0x11
	MUL Opcode = 0x12
	DIV Opcode = 0x13
	POW Opcode = 0x14
	EQ  Opcode = 0x15
	NEQ Opcode = 0x16

	// Ternary.
	TERNARY Opcode = 0x20
)

// ErrInvalidOpcode is returned for unknown opcodes and mnemonics.
var ErrInvalidOpcode = errors.New("invalid opcode")

var stringToOpcode = make(map[string]Opcode)

func init() {
	for i := 0; i < 256; i++ {
		op := Opcode(i)
		if IsValid(op) {
			stringToOpcode[op.String()] = op
		}
	}
}

// IsValid returns true if the opcode passed is valid (defined in the VM).
func IsValid(op Opcode) bool {
	return op.Arity() != 0
}

// Arity returns the number of operands op takes, 0 for invalid opcodes.
func (op Opcode) Arity() int {
	switch op {
	case NEG, INV, SQUARE, DOUBLE:
		return 1
	case ADD, SUB, MUL, DIV, POW, EQ, NEQ:
		return 2
	case TERNARY:
		return 3
	default:
		return 0
	}
}

// Mnemonic returns the name of op used in assembly text.
func (op Opcode) Mnemonic() string {
	return strings.ToLower(op.String())
}

// FromString converts a case-insensitive mnemonic into Opcode.
func FromString(s string) (Opcode, error) {
	if op, ok := stringToOpcode[strings.ToUpper(s)]; ok {
		return op, nil
	}
	return 0, ErrInvalidOpcode
}

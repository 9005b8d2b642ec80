package instruction

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/nspcc-dev/fvm/pkg/field"
	"github.com/nspcc-dev/fvm/pkg/io"
)

// DefaultMaxInstructions is the default limit on the number of instructions
// in a decoded program.
const DefaultMaxInstructions = 65536

// commentPrefix starts a comment running to the end of the line.
const commentPrefix = "//"

// Magic starts every binary program.
var Magic = [4]byte{'F', 'V', 'M', 0}

// Program errors.
var (
	ErrInvalidMagic        = errors.New("invalid program magic")
	ErrEnvironmentMismatch = errors.New("environment mismatch")
	ErrTooManyInstructions = errors.New("too many instructions")
	ErrTrailingData        = errors.New("trailing data")
	ErrUnexpectedInput     = errors.New("unexpected input after instruction")
)

// Program is an ordered list of instructions over the environment E.
type Program[E field.Environment] struct {
	Instructions []Instruction[E]
}

// ParseProgram parses program text: one instruction per line, blank lines
// and "//" comments are ignored.
func ParseProgram[E field.Environment](src string) (*Program[E], error) {
	p := new(Program[E])
	for n, line := range strings.Split(src, "\n") {
		line = strings.TrimLeft(strings.TrimRight(line, "\r"), " \t")
		if len(line) == 0 || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		inst, rest, err := Parse[E](line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n+1, err)
		}
		rest = strings.TrimLeft(rest, " \t")
		if len(rest) != 0 && !strings.HasPrefix(rest, commentPrefix) {
			return nil, fmt.Errorf("line %d: %w: %q", n+1, ErrUnexpectedInput, rest)
		}
		p.Instructions = append(p.Instructions, inst)
	}
	return p, nil
}

// String returns program text, one instruction per line.
func (p *Program[E]) String() string {
	var b strings.Builder
	for _, inst := range p.Instructions {
		b.WriteString(inst.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// EncodeBinary implements io.Serializable.
func (p *Program[E]) EncodeBinary(w *io.BinWriter) {
	var env E
	w.WriteBytes(Magic[:])
	w.WriteB(env.ID())
	w.WriteVarUint(uint64(len(p.Instructions)))
	for _, inst := range p.Instructions {
		inst.EncodeBinary(w)
	}
}

// DecodeBinary implements io.Serializable using DefaultMaxInstructions limit.
func (p *Program[E]) DecodeBinary(r *io.BinReader) {
	p.decodeBinary(r, DefaultMaxInstructions)
}

func (p *Program[E]) decodeBinary(r *io.BinReader, maxInstructions int) {
	var (
		env   E
		magic [len(Magic)]byte
	)
	r.ReadBytes(magic[:])
	if r.Err != nil {
		return
	}
	if magic != Magic {
		r.Err = fmt.Errorf("%w: %x", ErrInvalidMagic, magic)
		return
	}
	id := r.ReadB()
	if r.Err != nil {
		return
	}
	if id != env.ID() {
		r.Err = fmt.Errorf("%w: program uses 0x%02x, expected 0x%02x (%s)", ErrEnvironmentMismatch, id, env.ID(), env.Name())
		return
	}
	n := r.ReadVarUint()
	if r.Err != nil {
		return
	}
	if n > uint64(maxInstructions) {
		r.Err = fmt.Errorf("%w: %d > %d", ErrTooManyInstructions, n, maxInstructions)
		return
	}
	insts := make([]Instruction[E], n)
	for i := range insts {
		insts[i].DecodeBinary(r)
		if r.Err != nil {
			r.Err = fmt.Errorf("instruction %d: %w", i, r.Err)
			return
		}
	}
	p.Instructions = insts
}

// Bytes returns the binary program.
func (p *Program[E]) Bytes() ([]byte, error) {
	w := io.NewBufBinWriter()
	p.EncodeBinary(w.BinWriter)
	if w.Err != nil {
		return nil, w.Err
	}
	return w.Bytes(), nil
}

// NewProgramFromBytes decodes a binary program with at most maxInstructions
// instructions. The whole data must be used.
func NewProgramFromBytes[E field.Environment](data []byte, maxInstructions int) (*Program[E], error) {
	buf := bytes.NewReader(data)
	r := io.NewBinReaderFromIO(buf)
	p := new(Program[E])
	p.decodeBinary(r, maxInstructions)
	if r.Err != nil {
		return nil, r.Err
	}
	if buf.Len() != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTrailingData, buf.Len())
	}
	return p, nil
}

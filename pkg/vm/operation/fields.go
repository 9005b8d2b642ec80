/*
Package operation implements fixed-arity operations: a destination register
followed by a fixed number of operands. All arities share the same text
grammar (fields separated by exactly one space) and the same binary layout
(concatenation of field encodings with no framing).
*/
package operation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nspcc-dev/fvm/pkg/field"
	"github.com/nspcc-dev/fvm/pkg/io"
	"github.com/nspcc-dev/fvm/pkg/vm/operand"
	"github.com/nspcc-dev/fvm/pkg/vm/register"
)

// Separator delimits operation fields in the text form.
const Separator = ' '

// ErrMissingSeparator is returned when a field is not followed by exactly one
// Separator.
var ErrMissingSeparator = errors.New("missing separator")

// Operation is implemented by all fixed-arity operations.
type Operation[E field.Environment] interface {
	fmt.Stringer
	// Destination returns the register the result is written to.
	Destination() register.Register
	// Operands returns a copy of operation inputs in their text/binary order.
	Operands() []operand.Operand[E]
	// EncodeBinary writes the operation to w.
	EncodeBinary(w *io.BinWriter)
}

// fieldParser parses a single field from the beginning of s, stores it and
// returns the remainder of s.
type fieldParser func(s string) (string, error)

func registerField(dst *register.Register) fieldParser {
	return func(s string) (string, error) {
		r, rest, err := register.Parse(s)
		if err != nil {
			return s, err
		}
		*dst = r
		return rest, nil
	}
}

func operandField[E field.Environment](dst *operand.Operand[E]) fieldParser {
	return func(s string) (string, error) {
		op, rest, err := operand.Parse[E](s)
		if err != nil {
			return s, err
		}
		*dst = op
		return rest, nil
	}
}

// parseFields applies fields to s one by one, requiring exactly one
// Separator between them. Field errors are returned as is.
func parseFields(s string, fields ...fieldParser) (string, error) {
	for i, f := range fields {
		if i > 0 {
			if len(s) == 0 {
				return s, fmt.Errorf("%w after field %d: end of input", ErrMissingSeparator, i)
			}
			if s[0] != Separator {
				return s, fmt.Errorf("%w after field %d: unexpected %q", ErrMissingSeparator, i, s[0])
			}
			s = s[1:]
			if len(s) > 0 && s[0] == Separator {
				return s, fmt.Errorf("%w after field %d: doubled separator", ErrMissingSeparator, i)
			}
		}
		var err error
		s, err = f(s)
		if err != nil {
			return s, err
		}
	}
	return s, nil
}

// formatFields joins fields text forms with Separator.
func formatFields(fields ...fmt.Stringer) string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(Separator)
		}
		b.WriteString(f.String())
	}
	return b.String()
}

type encodable interface {
	EncodeBinary(*io.BinWriter)
}

type decodable interface {
	DecodeBinary(*io.BinReader)
}

func encodeFields(w *io.BinWriter, fields ...encodable) {
	for _, f := range fields {
		f.EncodeBinary(w)
	}
}

// decodeFields decodes fields in order, it stops at the first error.
func decodeFields(r *io.BinReader, fields ...decodable) {
	for _, f := range fields {
		if r.Err != nil {
			return
		}
		f.DecodeBinary(r)
	}
}

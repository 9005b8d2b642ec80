package field

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/nspcc-dev/fvm/pkg/encoding/bigint"
	"github.com/nspcc-dev/fvm/pkg/io"
)

// maxDigits is the number of decimal digits in 2^256-1.
const maxDigits = 78

// Literal errors.
var (
	ErrInvalidLiteral = errors.New("invalid literal")
	ErrOutOfRange     = errors.New("literal is out of range")
)

// Element is a canonical value of the environment E. Elements are
// comparable, two elements are equal iff they represent the same value.
type Element[E Environment] struct {
	v uint256.Int
}

// NewElement checks that v belongs to E and returns it as an Element.
func NewElement[E Environment](v *uint256.Int) (Element[E], error) {
	var env E
	if !env.Contains(v) {
		return Element[E]{}, fmt.Errorf("%w: %s is not a %s element", ErrOutOfRange, v.ToBig(), env.Name())
	}
	return Element[E]{v: *v}, nil
}

// ElementFromUint64 is a shorthand for NewElement with a small value.
func ElementFromUint64[E Environment](v uint64) (Element[E], error) {
	return NewElement[E](uint256.NewInt(v))
}

// ParseElement parses an unsigned decimal literal from the beginning of s.
// It consumes the longest run of digits and returns the rest of s. Leading
// zeroes are not allowed, so every element has exactly one text form.
func ParseElement[E Environment](s string) (Element[E], string, error) {
	var n int
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	switch {
	case n == 0:
		return Element[E]{}, s, fmt.Errorf("%w: decimal digit expected", ErrInvalidLiteral)
	case n > 1 && s[0] == '0':
		return Element[E]{}, s, fmt.Errorf("%w: leading zero in %q", ErrInvalidLiteral, s[:n])
	case n > maxDigits:
		return Element[E]{}, s, fmt.Errorf("%w: %d digits", ErrOutOfRange, n)
	}
	b, ok := new(big.Int).SetString(s[:n], 10)
	if !ok {
		return Element[E]{}, s, fmt.Errorf("%w: %q", ErrInvalidLiteral, s[:n])
	}
	u, overflow := uint256.FromBig(b)
	if overflow {
		return Element[E]{}, s, fmt.Errorf("%w: %s", ErrOutOfRange, s[:n])
	}
	e, err := NewElement[E](u)
	if err != nil {
		return Element[E]{}, s, err
	}
	return e, s[n:], nil
}

// String returns the decimal representation of e.
func (e Element[E]) String() string {
	return e.v.ToBig().String()
}

// Uint256 returns a copy of the element value.
func (e Element[E]) Uint256() *uint256.Int {
	return new(uint256.Int).Set(&e.v)
}

// BigInt returns the element value as big.Int.
func (e Element[E]) BigInt() *big.Int {
	return e.v.ToBig()
}

// IsZero checks whether e is zero.
func (e Element[E]) IsZero() bool {
	return e.v.IsZero()
}

// EncodeBinary implements io.Serializable. The element is written as exactly
// E.Size() little-endian bytes.
func (e Element[E]) EncodeBinary(w *io.BinWriter) {
	var (
		env E
		buf [bigint.MaxBytesLen]byte
	)
	b := buf[:env.Size()]
	if !bigint.PutBytesUnsigned(b, &e.v) {
		w.Err = fmt.Errorf("%w: %s doesn't fit into %d bytes", ErrOutOfRange, e, len(b))
		return
	}
	w.WriteBytes(b)
}

// DecodeBinary implements io.Serializable. Non-canonical values are rejected
// with ErrOutOfRange.
func (e *Element[E]) DecodeBinary(r *io.BinReader) {
	var (
		env E
		buf [bigint.MaxBytesLen]byte
	)
	b := buf[:env.Size()]
	r.ReadBytes(b)
	if r.Err != nil {
		return
	}
	v, err := NewElement[E](bigint.FromBytesUnsigned(b))
	if err != nil {
		r.Err = err
		return
	}
	*e = v
}

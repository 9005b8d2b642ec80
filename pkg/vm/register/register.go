/*
Package register implements VM register references.
*/
package register

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/nspcc-dev/fvm/pkg/io"
)

// Prefix starts every register in the text form.
const Prefix = 'r'

// ErrInvalidRegister is returned for malformed register references.
var ErrInvalidRegister = errors.New("invalid register")

// Register is an index of a VM storage slot.
type Register uint64

// Parse reads a register from the beginning of s. The text form is 'r'
// followed by a decimal index without leading zeroes. It returns the
// remainder of s after the register.
func Parse(s string) (Register, string, error) {
	if len(s) == 0 || s[0] != Prefix {
		return 0, s, fmt.Errorf("%w: %q expected", ErrInvalidRegister, Prefix)
	}
	n := 1
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	digits := s[1:n]
	if len(digits) == 0 {
		return 0, s, fmt.Errorf("%w: missing index", ErrInvalidRegister)
	}
	if len(digits) > 1 && digits[0] == '0' {
		return 0, s, fmt.Errorf("%w: leading zero in %q", ErrInvalidRegister, s[:n])
	}
	idx, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, s, fmt.Errorf("%w: %q: index is too big", ErrInvalidRegister, s[:n])
	}
	return Register(idx), s[n:], nil
}

// String implements fmt.Stringer.
func (r Register) String() string {
	return string(Prefix) + strconv.FormatUint(uint64(r), 10)
}

// Index returns register index.
func (r Register) Index() uint64 {
	return uint64(r)
}

// EncodeBinary implements io.Serializable.
func (r Register) EncodeBinary(w *io.BinWriter) {
	w.WriteVarUint(uint64(r))
}

// DecodeBinary implements io.Serializable.
func (r *Register) DecodeBinary(br *io.BinReader) {
	idx := br.ReadVarUint()
	if br.Err == nil {
		*r = Register(idx)
	}
}

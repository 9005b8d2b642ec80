/*
Package field defines arithmetic environments and the literal values drawn
from them. An environment is used as a type parameter, so the literal width
and range checks are fixed at compile time.
*/
package field

import (
	"errors"
	"fmt"
	"math/big"
	"sort"

	blsfr "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	bnfr "github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/holiman/uint256"
)

// Environment fixes the domain of literal values. Implementations are
// stateless and their zero value is ready to use.
type Environment interface {
	// ID is the environment tag stored in binary programs.
	ID() byte
	// Name is the environment name used in configuration.
	Name() string
	// Size is the width of a canonically encoded element in bytes.
	Size() int
	// Contains checks whether v is a canonical element of the domain.
	Contains(v *uint256.Int) bool
}

// Environment IDs.
const (
	BN254ID    byte = 0x01
	BLS12381ID byte = 0x02
	Word256ID  byte = 0x03
	Word64ID   byte = 0x04
)

// ErrUnknownEnvironment is returned for names not matching any environment.
var ErrUnknownEnvironment = errors.New("unknown environment")

var (
	bn254Modulus    = mustModulus(bnfr.Modulus())
	bls12381Modulus = mustModulus(blsfr.Modulus())
)

func mustModulus(m *big.Int) *uint256.Int {
	u, overflow := uint256.FromBig(m)
	if overflow {
		panic("modulus doesn't fit into 256 bits")
	}
	return u
}

// BN254 is the scalar field of the BN254 curve.
type BN254 struct{}

// ID implements Environment.
func (BN254) ID() byte { return BN254ID }

// Name implements Environment.
func (BN254) Name() string { return "bn254" }

// Size implements Environment.
func (BN254) Size() int { return bnfr.Bytes }

// Contains implements Environment.
func (BN254) Contains(v *uint256.Int) bool { return v.Lt(bn254Modulus) }

// BLS12381 is the scalar field of the BLS12-381 curve.
type BLS12381 struct{}

// ID implements Environment.
func (BLS12381) ID() byte { return BLS12381ID }

// Name implements Environment.
func (BLS12381) Name() string { return "bls12381" }

// Size implements Environment.
func (BLS12381) Size() int { return blsfr.Bytes }

// Contains implements Environment.
func (BLS12381) Contains(v *uint256.Int) bool { return v.Lt(bls12381Modulus) }

// Word256 is the ring of unsigned 256-bit words.
type Word256 struct{}

// ID implements Environment.
func (Word256) ID() byte { return Word256ID }

// Name implements Environment.
func (Word256) Name() string { return "word256" }

// Size implements Environment.
func (Word256) Size() int { return 32 }

// Contains implements Environment.
func (Word256) Contains(*uint256.Int) bool { return true }

// Word64 is the ring of unsigned 64-bit words.
type Word64 struct{}

// ID implements Environment.
func (Word64) ID() byte { return Word64ID }

// Name implements Environment.
func (Word64) Name() string { return "word64" }

// Size implements Environment.
func (Word64) Size() int { return 8 }

// Contains implements Environment.
func (Word64) Contains(v *uint256.Int) bool { return v.IsUint64() }

var environments = map[string]Environment{
	BN254{}.Name():    BN254{},
	BLS12381{}.Name(): BLS12381{},
	Word256{}.Name():  Word256{},
	Word64{}.Name():   Word64{},
}

// ByName returns the environment with the given name.
func ByName(name string) (Environment, error) {
	e, ok := environments[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEnvironment, name)
	}
	return e, nil
}

// Names returns sorted names of all known environments.
func Names() []string {
	names := make([]string, 0, len(environments))
	for n := range environments {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

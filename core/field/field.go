// Package field implements modular arithmetic over a fixed prime field
// ℤ/Pℤ. It follows the teacher's split between a Field (the modulus,
// performing arithmetic on bare big.Ints) and an Element (a value that
// remembers which Field it belongs to), adapted from
// core/vss/algebra.Fp/FpElement for the additive-sharing scheme used by
// this engine instead of Shamir's polynomial scheme.
package field

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// DefaultPrime is the reference prime named throughout the specification.
var DefaultPrime = big.NewInt(1753388297)

// A Field is the integers modulo a prime p. All arithmetic performed by a
// Field reduces its result into [0, p).
type Field struct {
	prime *big.Int
}

// New returns the field ℤ/pℤ. It panics if p is not (probably) prime, same
// as the teacher's algebra.NewField — field construction is expected to
// happen once, at startup, with a well-known constant.
func New(p *big.Int) Field {
	if p.Sign() <= 0 || !p.ProbablyPrime(32) {
		panic("field: prime must be a positive prime")
	}
	return Field{prime: new(big.Int).Set(p)}
}

// Default returns the field ℤ/Pℤ using the reference prime.
func Default() Field {
	return New(DefaultPrime)
}

// Prime returns the modulus defining the field.
func (f Field) Prime() *big.Int {
	return new(big.Int).Set(f.prime)
}

// InField reports whether x lies in [0, p).
func (f Field) InField(x *big.Int) bool {
	return x.Sign() >= 0 && x.Cmp(f.prime) < 0
}

// Random draws a cryptographically secure uniform element of the field.
func (f Field) Random() Element {
	v, err := rand.Int(rand.Reader, f.prime)
	if err != nil {
		// crypto/rand.Int can only fail if the field's prime is non-positive,
		// which New already rejects.
		panic(fmt.Sprintf("field: failed to draw randomness: %v", err))
	}
	return Element{field: f, value: v}
}

// FromInt builds an Element from an int64, reducing it modulo p first so
// negative or out-of-range literals (as used in tests) still round-trip.
func (f Field) FromInt(v int64) Element {
	bi := big.NewInt(v)
	bi.Mod(bi, f.prime)
	if bi.Sign() < 0 {
		bi.Add(bi, f.prime)
	}
	return Element{field: f, value: bi}
}

// FromBigInt builds an Element from value modulo p.
func (f Field) FromBigInt(value *big.Int) Element {
	v := new(big.Int).Mod(value, f.prime)
	if v.Sign() < 0 {
		v.Add(v, f.prime)
	}
	return Element{field: f, value: v}
}

// Zero returns the additive identity of the field.
func (f Field) Zero() Element {
	return Element{field: f, value: big.NewInt(0)}
}

// Eq reports whether two fields share the same modulus.
func (f Field) Eq(other Field) bool {
	return f.prime.Cmp(other.prime) == 0
}

// Package sharing implements n-of-n additive secret sharing over a
// field.Field, specialised from the teacher's k-of-n Shamir scheme
// (core/vss/shamir.Split/Join) down to the spec's simpler additive case:
// every share is needed to reconstruct, and reconstruction is a sum
// instead of a Lagrange interpolation.
package sharing

import (
	"fmt"

	"github.com/fieldops/smc-go/core/field"
)

// Share splits secret into n additive shares in the secret's field: the
// first n-1 shares are drawn uniformly at random and the last is set so
// that the sum of all n equals secret. n must be at least 1.
func Share(secret field.Element, n int) ([]field.Element, error) {
	if n < 1 {
		return nil, fmt.Errorf("sharing: n must be at least 1, got %d", n)
	}
	f := secret.Field()
	shares := make([]field.Element, n)

	sum := f.Zero()
	for i := 0; i < n-1; i++ {
		shares[i] = f.Random()
		sum = sum.Add(shares[i])
	}
	shares[n-1] = secret.Sub(sum)
	return shares, nil
}

// Reconstruct sums the given shares modulo the field's prime. The caller
// is responsible for supplying all n shares of a value; Reconstruct itself
// accepts any number of shares and simply sums whatever it is given.
func Reconstruct(shares []field.Element) (field.Element, error) {
	if len(shares) == 0 {
		return field.Element{}, fmt.Errorf("sharing: cannot reconstruct from zero shares")
	}
	f := shares[0].Field()
	sum := f.Zero()
	for _, s := range shares {
		sum = sum.Add(s)
	}
	return sum, nil
}

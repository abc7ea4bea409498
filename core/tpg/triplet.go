package tpg

import "github.com/fieldops/smc-go/core/field"

// A Triplet is a Beaver triplet (a, b, c) with a, b uniformly random in the
// field and c = a*b mod P.
type Triplet struct {
	A, B, C field.Element
}

// PartyShares is one party's share of each of a Triplet's three
// components, keyed by op_id at the Generator.
type PartyShares struct {
	A, B, C field.Element
}

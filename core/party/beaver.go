package party

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/fieldops/smc-go/core/field"
	"github.com/fieldops/smc-go/core/relay"
	"github.com/fieldops/smc-go/core/sharing"
)

// tripletSource is the subset of *tpg-client behavior the Beaver protocol
// needs: a blocking fetch of this party's share of the triplet for opID.
// Engine satisfies it via its relay client's FetchTripletShares.
type tripletSource interface {
	FetchTripletShares(ctx context.Context, f field.Field, opID string) (a, b, c field.Element, err error)
}

// opID computes this run's stable per-multiplication identifier from the
// protocol-spec commitment and the Mul node's index among the
// secret*secret Mul nodes, counted in the post-order in which evaluation
// completes them.
//
// The reference implementation this engine is based on instead labelled
// every Beaver round by the string form of the *whole protocol
// expression*, so every multiplication in a run collided on one triplet —
// reusing a triplet across multiplications breaks both privacy and
// correctness whenever an expression contains more than one secret*secret
// multiplication. This engine does not replicate that: each Mul node gets
// its own op_id, derived from its position, so triplets never collide.
func opID(commitment [32]byte, preOrderIndex int) string {
	return fmt.Sprintf("%s/%d", hex.EncodeToString(commitment[:]), preOrderIndex)
}

// beaverMultiply runs the Beaver-triplet protocol for one Mul node where
// both operands depend on a secret. L and R are this party's local shares
// of the two operands; the result is this party's local share of their
// product.
func beaverMultiply(
	ctx context.Context,
	client *relay.Client,
	ts tripletSource,
	f field.Field,
	spec ProtocolSpec,
	self string,
	id string,
	L, R field.Element,
) (field.Element, error) {
	a, b, c, err := ts.FetchTripletShares(ctx, f, id)
	if err != nil {
		return field.Element{}, fmt.Errorf("party: fetch triplet shares for %s: %w", id, err)
	}

	xMinusA := L.Sub(a)
	yMinusB := R.Sub(b)

	labelX := fmt.Sprintf("%s-%s-(x-a)", self, id)
	labelY := fmt.Sprintf("%s-%s-(y-b)", self, id)

	xText, _ := xMinusA.MarshalText()
	if err := client.Publish(ctx, labelX, xText); err != nil {
		return field.Element{}, fmt.Errorf("party: publish (x-a) for %s: %w", id, err)
	}
	yText, _ := yMinusB.MarshalText()
	if err := client.Publish(ctx, labelY, yText); err != nil {
		return field.Element{}, fmt.Errorf("party: publish (y-b) for %s: %w", id, err)
	}

	xShares := make([]field.Element, 0, spec.N())
	yShares := make([]field.Element, 0, spec.N())
	xShares = append(xShares, xMinusA)
	yShares = append(yShares, yMinusB)

	for _, peer := range spec.ParticipantIDs {
		if peer == self {
			continue
		}
		peerX, err := client.RecvPublic(ctx, peer, labelXFor(peer, id))
		if err != nil {
			return field.Element{}, fmt.Errorf("party: recv (x-a) from %s for %s: %w", peer, id, err)
		}
		var x field.Element
		if err := x.UnmarshalText(peerX); err != nil {
			return field.Element{}, fmt.Errorf("party: decode (x-a) from %s for %s: %w", peer, id, err)
		}
		xShares = append(xShares, x)

		peerY, err := client.RecvPublic(ctx, peer, labelYFor(peer, id))
		if err != nil {
			return field.Element{}, fmt.Errorf("party: recv (y-b) from %s for %s: %w", peer, id, err)
		}
		var y field.Element
		if err := y.UnmarshalText(peerY); err != nil {
			return field.Element{}, fmt.Errorf("party: decode (y-b) from %s for %s: %w", peer, id, err)
		}
		yShares = append(yShares, y)
	}

	X, err := sharing.Reconstruct(xShares)
	if err != nil {
		return field.Element{}, err
	}
	Y, err := sharing.Reconstruct(yShares)
	if err != nil {
		return field.Element{}, err
	}

	z := c.Add(L.Mul(Y)).Add(R.Mul(X))
	if self == spec.Leader() {
		z = z.Sub(X.Mul(Y))
	}
	return z, nil
}

func labelXFor(party, id string) string {
	return fmt.Sprintf("%s-%s-(x-a)", party, id)
}

func labelYFor(party, id string) string {
	return fmt.Sprintf("%s-%s-(y-b)", party, id)
}

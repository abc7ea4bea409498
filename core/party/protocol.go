package party

import (
	"crypto/sha256"
	"strings"

	"github.com/fieldops/smc-go/core/expr"
)

// A ProtocolSpec is the pair (expr, participant_ids) that must be
// identical, in the same order, at every party. The first element of
// ParticipantIDs is the leader: the sole party that contributes public
// constants into the shared sum.
type ProtocolSpec struct {
	Expr           expr.Expr
	ParticipantIDs []string
}

// Leader returns the distinguished first participant.
func (p ProtocolSpec) Leader() string {
	return p.ParticipantIDs[0]
}

// N returns the number of participants.
func (p ProtocolSpec) N() int {
	return len(p.ParticipantIDs)
}

// IndexOf returns the position of id within ParticipantIDs, and whether it
// was found at all.
func (p ProtocolSpec) IndexOf(id string) (int, bool) {
	for i, candidate := range p.ParticipantIDs {
		if candidate == id {
			return i, true
		}
	}
	return 0, false
}

// Commitment is a SHA-256 digest of the expression's canonical string form
// and the ordered participant list. Parties broadcast and compare this
// before Phase 1 so that a disagreement on participant ordering or on the
// expression itself — which the wire protocol otherwise cannot detect —
// surfaces as ErrProtocolMismatch instead of silently producing a wrong
// answer. This resolves the "not detectable without extra machinery" note
// in the specification's error-handling design.
func (p ProtocolSpec) Commitment() [32]byte {
	h := sha256.New()
	h.Write([]byte(p.Expr.String()))
	h.Write([]byte("|"))
	h.Write([]byte(strings.Join(p.ParticipantIDs, ",")))
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

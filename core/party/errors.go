package party

import "fmt"

// Errors surfacing from Engine.Run fall into the five fatal categories
// named by the specification's error-handling design. There is no
// in-protocol retry: every one of these terminates the run.

// ErrConfiguration covers an empty participant list, duplicate ids, self
// missing from the list, or an input map naming a secret that does not
// appear in the protocol expression. A secret declared in the input maps
// of two different parties is not detected.
type ErrConfiguration struct {
	Reason string
}

func (e *ErrConfiguration) Error() string {
	return fmt.Sprintf("party: configuration error: %s", e.Reason)
}

// ErrProtocolMismatch indicates the protocol-spec commitment broadcast by
// a peer did not match this party's own, i.e. parties disagree on
// participant ordering or on the expression.
type ErrProtocolMismatch struct {
	Peer string
}

func (e *ErrProtocolMismatch) Error() string {
	return fmt.Sprintf("party: protocol-spec commitment mismatch with peer %q", e.Peer)
}

// ErrArithmetic indicates an input value fell outside [0, P).
type ErrArithmetic struct {
	SecretID string
}

func (e *ErrArithmetic) Error() string {
	return fmt.Sprintf("party: input for secret %s is outside the field", e.SecretID)
}

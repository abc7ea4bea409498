package expr

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// A SecretID is a globally unique opaque tag for one private input. It is
// generated once by the owning party and is the only basis on which shares
// of that secret are routed between parties — identifier equality, not
// structural equality of the surrounding expression, decides that.
//
// The fixed-size-array-plus-String()-via-base64 shape mirrors the
// teacher's task.MessageID [40]byte.
type SecretID [16]byte

// NewSecretID draws a fresh, cryptographically random identifier. It
// panics if the system's randomness source fails, which in practice never
// happens on a functioning host.
func NewSecretID() SecretID {
	var id SecretID
	n, err := rand.Read(id[:])
	if err != nil || n != len(id) {
		panic(fmt.Sprintf("expr: failed to generate secret id: %v", err))
	}
	return id
}

// String renders the identifier as a compact, URL-safe token suitable for
// use in relay labels.
func (id SecretID) String() string {
	return base64.RawURLEncoding.EncodeToString(id[:])
}

// SecretIDFromString parses the String() form back into a SecretID.
func SecretIDFromString(s string) (SecretID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return SecretID{}, fmt.Errorf("expr: invalid secret id %q: %w", s, err)
	}
	var id SecretID
	if len(raw) != len(id) {
		return SecretID{}, fmt.Errorf("expr: invalid secret id %q: wrong length", s)
	}
	copy(id[:], raw)
	return id, nil
}

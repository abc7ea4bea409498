package relay

import "strings"

// Sanitize makes a label safe to embed as a single path segment in a relay
// URL, per the specification's path-identifier sanitisation rule: raw "/"
// and percent-encoded "%2F"/"%2f" collapse to "_", and "+" becomes "-" (so
// a standard-base64 string comes out in its base64url spelling). Labels
// that differ only in "/" versus "_" or "+" versus "-" map to the same
// sanitised label.
//
// Sanitize is idempotent: sanitising an already-sanitised label is a no-op,
// since none of its output characters are inputs it rewrites.
func Sanitize(label string) string {
	label = strings.ReplaceAll(label, "%2F", "_")
	label = strings.ReplaceAll(label, "%2f", "_")
	label = strings.ReplaceAll(label, "/", "_")
	label = strings.ReplaceAll(label, "+", "-")
	return label
}

package expr

// ContainsSecret is a pure recursive predicate: it reports true iff any
// leaf reachable from e is a Secret node. Its negation identifies a
// "public" subexpression — one whose value is identical at every party and
// therefore needs no secret sharing to evaluate.
func ContainsSecret(e Expr) bool {
	switch e.Kind() {
	case KindSecret:
		return true
	case KindScalar:
		return false
	default:
		left, right := Operands(e)
		return ContainsSecret(left) || ContainsSecret(right)
	}
}

// IsPublic is the negation of ContainsSecret, named for readability at call
// sites that branch on "does this subtree need secret sharing".
func IsPublic(e Expr) bool {
	return !ContainsSecret(e)
}

// Secrets returns every distinct SecretID referenced anywhere in e, in
// pre-order. Used by the party engine's configuration validation (every
// Secret in the expression must be declared by exactly one party).
func Secrets(e Expr) []SecretID {
	var out []SecretID
	var walk func(Expr)
	seen := map[SecretID]bool{}
	walk = func(n Expr) {
		switch n.Kind() {
		case KindSecret:
			id := SecretOf(n)
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		case KindScalar:
		default:
			l, r := Operands(n)
			walk(l)
			walk(r)
		}
	}
	walk(e)
	return out
}

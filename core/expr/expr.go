// Package expr implements the expression AST: an immutable tagged tree of
// five node kinds (Secret, Scalar, Add, Sub, Mul) over which the party
// engine evaluates a protocol. Nodes are built with free functions rather
// than mutated in place, so that every operator node exclusively owns its
// children and the tree invariant in the specification's data model holds
// by construction — following the teacher's general avoidance of in-place
// mutation on message/value types (e.g. task.Message, vss/algebra.FpElement
// are both constructed once and never mutated afterwards).
package expr

import (
	"fmt"
	"math/big"
)

// Kind identifies which of the five tagged variants a node is.
type Kind uint8

const (
	KindSecret Kind = iota
	KindScalar
	KindAdd
	KindSub
	KindMul
)

func (k Kind) String() string {
	switch k {
	case KindSecret:
		return "Secret"
	case KindScalar:
		return "Scalar"
	case KindAdd:
		return "Add"
	case KindSub:
		return "Sub"
	case KindMul:
		return "Mul"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// An Expr is a node of the expression tree. The interface's marker method
// prevents accidentally passing an unrelated type where an Expr is
// expected, matching the teacher's task.Message.IsMessage() idiom.
type Expr interface {
	isExpr()

	// Kind reports which tagged variant the node is.
	Kind() Kind

	// String renders a stable, canonical textual form of the subtree. It is
	// used both for diagnostics and as an input to the protocol-spec
	// commitment, which together with a Mul node's index forms that
	// multiplication's Beaver op_id (see core/party/beaver.go).
	String() string
}

type secretNode struct {
	id SecretID
}

// Secret returns a leaf node referencing the private input identified by id.
func Secret(id SecretID) Expr {
	return secretNode{id: id}
}

func (secretNode) isExpr()     {}
func (secretNode) Kind() Kind  { return KindSecret }
func (n secretNode) ID() SecretID {
	return n.id
}
func (n secretNode) String() string {
	return fmt.Sprintf("Secret(%s)", n.id)
}

type scalarNode struct {
	value *big.Int
}

// Scalar returns a leaf node holding a public constant.
func Scalar(value *big.Int) Expr {
	return scalarNode{value: new(big.Int).Set(value)}
}

func (scalarNode) isExpr()    {}
func (scalarNode) Kind() Kind { return KindScalar }
func (n scalarNode) Value() *big.Int {
	return new(big.Int).Set(n.value)
}
func (n scalarNode) String() string {
	return fmt.Sprintf("Scalar(%s)", n.value.String())
}

type binaryNode struct {
	kind        Kind
	left, right Expr
}

func (binaryNode) isExpr()          {}
func (n binaryNode) Kind() Kind     { return n.kind }
func (n binaryNode) Left() Expr     { return n.left }
func (n binaryNode) Right() Expr    { return n.right }
func (n binaryNode) String() string {
	var op string
	switch n.kind {
	case KindAdd:
		op = "+"
	case KindSub:
		op = "-"
	case KindMul:
		op = "*"
	}
	return fmt.Sprintf("(%s %s %s)", n.left.String(), op, n.right.String())
}

// Add returns a node computing l + r.
func Add(l, r Expr) Expr {
	return binaryNode{kind: KindAdd, left: l, right: r}
}

// Sub returns a node computing l - r.
func Sub(l, r Expr) Expr {
	return binaryNode{kind: KindSub, left: l, right: r}
}

// Mul returns a node computing l * r.
func Mul(l, r Expr) Expr {
	return binaryNode{kind: KindMul, left: l, right: r}
}

// SecretOf extracts the SecretID from a Secret node. It panics if e is not
// a Secret node; callers should gate on Kind() == KindSecret first.
func SecretOf(e Expr) SecretID {
	return e.(secretNode).id
}

// ScalarOf extracts the constant value from a Scalar node. It panics if e
// is not a Scalar node.
func ScalarOf(e Expr) *big.Int {
	return new(big.Int).Set(e.(scalarNode).value)
}

// Operands extracts the two children of a binary (Add/Sub/Mul) node. It
// panics if e is a leaf node.
func Operands(e Expr) (left, right Expr) {
	b := e.(binaryNode)
	return b.left, b.right
}

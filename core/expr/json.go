package expr

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// wireNode is the JSON wire form of an Expr node, shared by every kind so a
// single recursive struct can decode any of them.
type wireNode struct {
	Kind  string    `json:"kind"`
	ID    string    `json:"id,omitempty"`
	Value string    `json:"value,omitempty"`
	Left  *wireNode `json:"left,omitempty"`
	Right *wireNode `json:"right,omitempty"`
}

// Encode renders e as its JSON wire form, the form cmd/party reads a
// protocol's expression from (via Decode).
func Encode(e Expr) ([]byte, error) {
	w, err := toWire(e)
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

func toWire(e Expr) (*wireNode, error) {
	switch e.Kind() {
	case KindSecret:
		return &wireNode{Kind: "secret", ID: SecretOf(e).String()}, nil
	case KindScalar:
		return &wireNode{Kind: "scalar", Value: ScalarOf(e).String()}, nil
	case KindAdd, KindSub, KindMul:
		l, r := Operands(e)
		lw, err := toWire(l)
		if err != nil {
			return nil, err
		}
		rw, err := toWire(r)
		if err != nil {
			return nil, err
		}
		var kindStr string
		switch e.Kind() {
		case KindAdd:
			kindStr = "add"
		case KindSub:
			kindStr = "sub"
		case KindMul:
			kindStr = "mul"
		}
		return &wireNode{Kind: kindStr, Left: lw, Right: rw}, nil
	default:
		return nil, fmt.Errorf("expr: unknown kind %v", e.Kind())
	}
}

// Decode parses the JSON wire form produced by Encode back into an Expr.
func Decode(data []byte) (Expr, error) {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("expr: decode: %w", err)
	}
	return fromWire(&w)
}

func fromWire(w *wireNode) (Expr, error) {
	switch w.Kind {
	case "secret":
		id, err := SecretIDFromString(w.ID)
		if err != nil {
			return nil, err
		}
		return Secret(id), nil

	case "scalar":
		v, ok := new(big.Int).SetString(w.Value, 10)
		if !ok {
			return nil, fmt.Errorf("expr: invalid scalar value %q", w.Value)
		}
		return Scalar(v), nil

	case "add", "sub", "mul":
		if w.Left == nil || w.Right == nil {
			return nil, fmt.Errorf("expr: %q node missing operand", w.Kind)
		}
		left, err := fromWire(w.Left)
		if err != nil {
			return nil, err
		}
		right, err := fromWire(w.Right)
		if err != nil {
			return nil, err
		}
		switch w.Kind {
		case "add":
			return Add(left, right), nil
		case "sub":
			return Sub(left, right), nil
		default:
			return Mul(left, right), nil
		}

	default:
		return nil, fmt.Errorf("expr: unknown wire kind %q", w.Kind)
	}
}

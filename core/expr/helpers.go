package expr

import "fmt"

// Sum builds a left-leaning Add chain over xs, adding the elements left to
// right (((x0 + x1) + x2) + ...). It is not balanced. It panics if xs is
// empty. This recovers the inner-product driver from the original
// application (a weighted sum of seven secret scores against seven secret
// weights) without hand-nesting Add calls at the call site.
func Sum(xs []Expr) Expr {
	if len(xs) == 0 {
		panic("expr: Sum of zero expressions")
	}
	acc := xs[0]
	for _, x := range xs[1:] {
		acc = Add(acc, x)
	}
	return acc
}

// Dot builds Sum(x_0*y_0, x_1*y_1, ..., x_n*y_n). It panics if xs and ys
// differ in length or either is empty.
func Dot(xs, ys []Expr) Expr {
	if len(xs) != len(ys) {
		panic(fmt.Sprintf("expr: Dot requires equal-length slices, got %d and %d", len(xs), len(ys)))
	}
	if len(xs) == 0 {
		panic("expr: Dot of zero-length slices")
	}
	products := make([]Expr, len(xs))
	for i := range xs {
		products[i] = Mul(xs[i], ys[i])
	}
	return Sum(products)
}

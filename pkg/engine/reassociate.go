package engine

import "github.com/Chahine-tech/gosql-engine/pkg/ast"

// rank orders operators from tightest-binding (lowest) to loosest (highest),
// per spec §4.4's table.
func rank(op ast.BinaryOp) int {
	switch op {
	case ast.OpMul, ast.OpDiv, ast.OpMod:
		return 2
	case ast.OpAdd, ast.OpSub:
		return 3
	case ast.OpShl, ast.OpShr, ast.OpBitAnd, ast.OpBitOr:
		return 4
	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		return 5
	case ast.OpEq, ast.OpNe:
		return 6
	case ast.OpAnd:
		return 7
	case ast.OpOr:
		return 8
	default:
		return 9
	}
}

// Reassociate rewrites a parser-built expression tree so that adjacent
// binary operators obey SQL precedence, per spec §4.4.
//
// The parser builds expressions right-leaning and flat (parseExpression
// recurses into its own right-hand side rather than climbing precedence),
// so a chain like `a + b * c` parses as Binary{Add, a, Binary{Mul, b, c}}
// with every "left" operand a leaf and the whole chain strung along the
// right spine. Reassociate walks that spine once, rotating a node whenever
// its own operator should bind tighter than the one nested to its right:
//
//	(b1, L, (b2, L2, R2))
//	  rank(b1) < rank(b2), or ranks tie and b1 > b2 by enum order:
//	    -> (b2, (b1, L, L2), reassociate(R2))      -- b1 binds tighter: pull
//	                                                   L and L2 together first
//	  otherwise (b2 is present):
//	    -> (b1, L, reassociate((b2, L2, R2)))       -- b1 stays on top; the
//	                                                   right child is rewritten
//	                                                   the same way, so b2 is
//	                                                   compared with the next
//	                                                   operator down the spine
//	  right child isn't a Binary at all:
//	    -> node, unchanged
//
// Only the right spine is ever visited because every left operand the
// parser produces is already atomic; this makes the rewrite a single
// linear pass and, applied to an already-rewritten tree, a no-op (spec §8
// invariant 5).
//
// An explicit `(...)` is parsed into an ast.Grouped node, which is never a
// *ast.Binary, so the spine walk below stops at one the same way it stops
// at any other atomic right operand: rotation never reaches across a
// parenthesis boundary. The Grouped's own Inner expression is re-associated
// independently, since it was itself parsed flat and right-leaning.
func Reassociate(expr ast.Expression) ast.Expression {
	if g, ok := expr.(*ast.Grouped); ok {
		return &ast.Grouped{Inner: Reassociate(g.Inner)}
	}

	bin, ok := expr.(*ast.Binary)
	if !ok {
		return expr
	}

	rbin, ok := bin.Right.(*ast.Binary)
	if !ok {
		return &ast.Binary{Op: bin.Op, Left: bin.Left, Right: Reassociate(bin.Right)}
	}

	b1, l, b2, l2, r2 := bin.Op, bin.Left, rbin.Op, rbin.Left, rbin.Right

	if rank(b1) < rank(b2) || (rank(b1) == rank(b2) && b1 > b2) {
		newRight := Reassociate(r2)
		child := &ast.Binary{Op: b1, Left: l, Right: l2}
		return &ast.Binary{Op: b2, Left: child, Right: newRight}
	}

	return &ast.Binary{Op: b1, Left: l, Right: Reassociate(rbin)}
}

// Negate produces the syntactic negation of expr: negating an Integer
// literal directly, flipping +/- through an Add/Sub subtree so the sign
// propagates without evaluating early, and falling back to wrapping
// anything else in a unary minus (spec §9: "the reference design handles
// this by syntactically negating the right operand subtree when lowering
// subtraction"). The wrap-in-unary-minus fallback is this engine's own
// choice for operators the reference's minimal AST never had to negate
// (multiplication, comparisons, bitwise): distributing a sign through them
// the way Add/Sub does would be arithmetically wrong, so they are negated
// by evaluating the subtree and flipping its sign instead.
func Negate(expr ast.Expression) ast.Expression {
	switch ex := expr.(type) {
	case *ast.Literal:
		return &ast.Literal{Value: ex.Value.Neg()}
	case *ast.Binary:
		switch ex.Op {
		case ast.OpAdd:
			return &ast.Binary{Op: ast.OpSub, Left: Negate(ex.Left), Right: Negate(ex.Right)}
		case ast.OpSub:
			return &ast.Binary{Op: ast.OpAdd, Left: Negate(ex.Left), Right: Negate(ex.Right)}
		default:
			return &ast.Unary{Op: ast.OpNeg, Operand: ex}
		}
	case *ast.Unary:
		switch ex.Op {
		case ast.OpNeg:
			return &ast.Unary{Op: ast.OpPos, Operand: ex.Operand}
		case ast.OpPos:
			return &ast.Unary{Op: ast.OpNeg, Operand: ex.Operand}
		default:
			return &ast.Unary{Op: ast.OpNeg, Operand: ex}
		}
	default:
		return &ast.Unary{Op: ast.OpNeg, Operand: expr}
	}
}

package engine

import (
	"github.com/Chahine-tech/gosql-engine/pkg/ast"
	"github.com/Chahine-tech/gosql-engine/pkg/value"
)

// TableInput pairs a table's name with the header it contributes to a
// product row, used to resolve `table.column` references and to compute
// each input's cumulative column offset (spec §4.4).
type TableInput struct {
	Name   string
	Header Header
}

// Evaluator walks Expression trees against a row+header context. It is the
// Go-idiomatic reworking of the teacher's lack of an evaluator (the
// teacher's pkg/schema has no expression evaluation at all); this package
// is grounded on original_source/src/expressions.rs's ExpressionEvaluator,
// generalized to the broader operator set spec.md requires.
//
// A fresh Evaluator's Eval/EvalBool/EvalColumnDef/EvalAlias methods each
// reassociate the expression tree before evaluating it, so a single
// Evaluator instance is safe to reuse across many expressions and rows:
// unlike the reference's Cell-flagged one-shot pass (shared mutable state
// across an evaluator instance), reassociation here is a pure function
// applied fresh per call.
type Evaluator struct {
	Row    Row
	Header Header
	Tables []TableInput // non-nil when resolving across a product of inputs
}

// Eval evaluates expr in plain mode, returning the resulting Value.
func (e *Evaluator) Eval(expr ast.Expression) value.Value {
	return e.eval(Reassociate(expr))
}

// EvalBool reports whether expr evaluates to Boolean(true); every other
// outcome, including Null or a type mismatch, is false (spec §4.4).
func (e *Evaluator) EvalBool(expr ast.Expression) bool {
	v := e.Eval(expr)
	return v.Kind() == value.KindBoolean && v.Bool()
}

// EvalColumnDef evaluates expr in column-def mode: column references
// resolve to their ColumnDef instead of their value, used to build a
// result header during projection (spec §4.4, §4.6 phase 3).
func (e *Evaluator) EvalColumnDef(expr ast.Expression) (ast.ColumnDef, bool) {
	switch ex := unwrapGrouped(Reassociate(expr)).(type) {
	case *ast.ColumnName:
		return e.columnDefByName(ex.Name)
	case *ast.TableColumn:
		if inner, ok := ex.Inner.(*ast.ColumnName); ok {
			for _, in := range e.Tables {
				if in.Name == ex.Table {
					return in.Header.ColumnDefByName(inner.Name)
				}
			}
		}
		return ast.ColumnDef{}, false
	default:
		return ast.ColumnDef{}, false
	}
}

func (e *Evaluator) columnDefByName(name string) (ast.ColumnDef, bool) {
	if def, ok := e.Header.ColumnDefByName(name); ok {
		return def, true
	}
	for _, in := range e.Tables {
		if def, ok := in.Header.ColumnDefByName(name); ok {
			return def, true
		}
	}
	return ast.ColumnDef{}, false
}

// EvalAlias evaluates expr in alias mode: a column reference resolves to
// its positional index within the current header, used as an ORDER BY sort
// key (spec §4.4, glossary "Alias mode").
func (e *Evaluator) EvalAlias(expr ast.Expression) value.Value {
	expr = Reassociate(expr)
	switch ex := unwrapGrouped(expr).(type) {
	case *ast.ColumnName:
		if i := e.Header.ColumnIndex(ex.Name); i >= 0 {
			return value.Integer(int64(i))
		}
		return value.Null()
	default:
		return e.eval(expr)
	}
}

// unwrapGrouped strips any number of parenthesis layers, since a Grouped
// node carries no meaning of its own beyond marking where re-association
// must stop (spec §4.4's alias/column-def modes operate on what's inside).
func unwrapGrouped(expr ast.Expression) ast.Expression {
	for {
		g, ok := expr.(*ast.Grouped)
		if !ok {
			return expr
		}
		expr = g.Inner
	}
}

func (e *Evaluator) eval(expr ast.Expression) value.Value {
	switch ex := expr.(type) {
	case *ast.Literal:
		return ex.Value
	case *ast.ColumnName:
		return e.evalColumnName(ex.Name, nil)
	case *ast.TableColumn:
		return e.evalTableColumn(ex)
	case *ast.Star:
		return value.Null()
	case *ast.Unary:
		return e.evalUnary(ex)
	case *ast.Binary:
		return e.evalBinary(ex)
	case *ast.Grouped:
		return e.eval(ex.Inner)
	default:
		return value.Null()
	}
}

func (e *Evaluator) evalColumnName(name string, offset *int) value.Value {
	idx := e.Header.ColumnIndex(name)
	if idx < 0 {
		return value.Null()
	}
	if idx >= len(e.Row) {
		return value.Null()
	}
	return e.Row[idx]
}

func (e *Evaluator) evalTableColumn(tc *ast.TableColumn) value.Value {
	col, ok := tc.Inner.(*ast.ColumnName)
	if !ok {
		return value.Null()
	}
	offset := 0
	for _, in := range e.Tables {
		if in.Name == tc.Table {
			localIdx := in.Header.ColumnIndex(col.Name)
			if localIdx < 0 {
				return value.Null()
			}
			globalIdx := offset + localIdx
			if globalIdx >= len(e.Row) {
				return value.Null()
			}
			return e.Row[globalIdx]
		}
		offset += len(in.Header)
	}
	return value.Null()
}

func (e *Evaluator) evalUnary(u *ast.Unary) value.Value {
	operand := e.eval(u.Operand)
	switch u.Op {
	case ast.OpPos:
		return operand.Pos()
	case ast.OpNeg:
		return operand.Neg()
	case ast.OpNot:
		return operand.Not()
	case ast.OpBitNot:
		return operand.BitNot()
	default:
		return value.Null()
	}
}

func (e *Evaluator) evalBinary(b *ast.Binary) value.Value {
	switch b.Op {
	case ast.OpLt:
		return e.eval(b.Left).Lt(e.eval(b.Right))
	case ast.OpLe:
		return e.eval(b.Left).Le(e.eval(b.Right))
	case ast.OpGt:
		return e.eval(b.Left).Gt(e.eval(b.Right))
	case ast.OpGe:
		return e.eval(b.Left).Ge(e.eval(b.Right))
	case ast.OpEq:
		return value.Boolean(e.eval(b.Left).Eq(e.eval(b.Right)))
	case ast.OpNe:
		return value.Boolean(e.eval(b.Left).Ne(e.eval(b.Right)))
	case ast.OpShl:
		return e.eval(b.Left).Shl(e.eval(b.Right))
	case ast.OpShr:
		return e.eval(b.Left).Shr(e.eval(b.Right))
	case ast.OpBitAnd:
		return e.eval(b.Left).BitAnd(e.eval(b.Right))
	case ast.OpBitOr:
		return e.eval(b.Left).BitOr(e.eval(b.Right))
	case ast.OpAnd:
		return e.eval(b.Left).And(e.eval(b.Right))
	case ast.OpOr:
		return e.eval(b.Left).Or(e.eval(b.Right))
	case ast.OpMul:
		return e.eval(b.Left).Mul(e.eval(b.Right))
	case ast.OpDiv:
		return e.eval(b.Left).Div(e.eval(b.Right))
	case ast.OpMod:
		return e.eval(b.Left).Mod(e.eval(b.Right))
	case ast.OpAdd:
		return e.eval(b.Left).Add(e.eval(b.Right))
	case ast.OpSub:
		// Subtraction is lowered to addition of a syntactically negated
		// right operand (spec §9: "propagating a neg through the
		// subtree"), rather than evaluating left and right and then
		// subtracting the results. This keeps the sign bookkeeping
		// consistent with how re-association rotates +/- chains.
		return e.eval(b.Left).Add(e.eval(Negate(b.Right)))
	default:
		return value.Null()
	}
}

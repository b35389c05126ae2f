// Package ast defines the statement and expression trees produced by
// pkg/parser and consumed by pkg/engine. It is adapted from the teacher
// repository's pkg/parser/ast.go, trimmed to the statement and expression
// shapes the engine needs and reworked so that binary expressions carry a
// BinaryOp enum (used by the evaluator's re-association pass) instead of a
// free-form operator string.
package ast

import (
	"fmt"

	"github.com/Chahine-tech/gosql-engine/pkg/value"
)

// Node is the common interface implemented by every AST node.
type Node interface {
	String() string
}

// Statement is a top-level SQL statement.
type Statement interface {
	Node
	statementNode()
}

// Expression is any node that evaluates to a value.Value (or, in
// column-def mode, to a ColumnDef).
type Expression interface {
	Node
	expressionNode()
}

// ColumnType tags a declared column's storage type. Untyped columns are
// legal (spec §4.2's col_def grammar makes the type tag optional).
type ColumnType int

const (
	ColumnTypeUnspecified ColumnType = iota
	ColumnTypeInteger
	ColumnTypeText
)

func (t ColumnType) String() string {
	switch t {
	case ColumnTypeInteger:
		return "INTEGER"
	case ColumnTypeText:
		return "TEXT"
	default:
		return ""
	}
}

// ColumnDef describes one column of a table header.
type ColumnDef struct {
	Name       string
	Type       ColumnType
	PrimaryKey bool
}

func (c ColumnDef) String() string {
	s := c.Name
	if t := c.Type.String(); t != "" {
		s += " " + t
	}
	if c.PrimaryKey {
		s += " PRIMARY KEY"
	}
	return s
}

// BinaryOp enumerates the binary operators recognized by the parser. The
// numeric order of the Plus/Minus/... pairs used by re-association is not
// this order — rank is looked up separately in pkg/engine — but the enum
// order here is used as the tie-breaker in the rotation rule (spec §4.4:
// "ranks equal and b1 > b2 by enum order").
type BinaryOp int

const (
	OpMul BinaryOp = iota
	OpDiv
	OpMod
	OpAdd
	OpSub
	OpShl
	OpShr
	OpBitAnd
	OpBitOr
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
	OpAnd
	OpOr
)

var binaryOpNames = map[BinaryOp]string{
	OpMul: "*", OpDiv: "/", OpMod: "%",
	OpAdd: "+", OpSub: "-",
	OpShl: "<<", OpShr: ">>", OpBitAnd: "&", OpBitOr: "|",
	OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=",
	OpEq: "=", OpNe: "!=",
	OpAnd: "AND", OpOr: "OR",
}

func (op BinaryOp) String() string { return binaryOpNames[op] }

// UnaryOp enumerates the unary operators.
type UnaryOp int

const (
	OpPos UnaryOp = iota
	OpNeg
	OpNot
	OpBitNot
)

var unaryOpNames = map[UnaryOp]string{
	OpPos: "+", OpNeg: "-", OpNot: "NOT", OpBitNot: "~",
}

func (op UnaryOp) String() string { return unaryOpNames[op] }

// ---- Expressions ----

// Literal wraps a parsed constant.
type Literal struct {
	Value value.Value
}

func (l *Literal) expressionNode() {}
func (l *Literal) String() string  { return l.Value.String() }

// ColumnName is a bare column reference, e.g. `id`.
type ColumnName struct {
	Name string
}

func (c *ColumnName) expressionNode() {}
func (c *ColumnName) String() string  { return c.Name }

// TableColumn is a table-qualified column reference, e.g. `a.id`.
type TableColumn struct {
	Table string
	Inner Expression
}

func (t *TableColumn) expressionNode() {}
func (t *TableColumn) String() string  { return fmt.Sprintf("%s.%s", t.Table, t.Inner.String()) }

// Star is `*` or `table.*` in a SELECT list.
type Star struct {
	Table string // empty for bare `*`
}

func (s *Star) expressionNode() {}
func (s *Star) String() string {
	if s.Table != "" {
		return s.Table + ".*"
	}
	return "*"
}

// Binary is a binary operator expression. The parser always builds these
// right-leaning and flat; the evaluator re-associates before first use.
type Binary struct {
	Op    BinaryOp
	Left  Expression
	Right Expression
}

func (b *Binary) expressionNode() {}
func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Op.String(), b.Right.String())
}

// Grouped wraps a parenthesized sub-expression. It carries no operator of
// its own; it exists so a rewrite pass walking a binary chain (re-association)
// knows where an explicit `(...)` boundary was and does not rotate an
// operator across it.
type Grouped struct {
	Inner Expression
}

func (g *Grouped) expressionNode() {}
func (g *Grouped) String() string  { return "(" + g.Inner.String() + ")" }

// Unary is a prefix operator expression.
type Unary struct {
	Op      UnaryOp
	Operand Expression
}

func (u *Unary) expressionNode() {}
func (u *Unary) String() string  { return fmt.Sprintf("%s%s", u.Op.String(), u.Operand.String()) }

// ---- Statements ----

// CreateTable is `CREATE TABLE [IF NOT EXISTS] name (col_def, ...)`.
type CreateTable struct {
	Name        string
	IfNotExists bool
	Columns     []ColumnDef
}

func (s *CreateTable) statementNode() {}
func (s *CreateTable) String() string { return fmt.Sprintf("CREATE TABLE %s", s.Name) }

// DropTable is `DROP TABLE name`.
type DropTable struct {
	Name string
}

func (s *DropTable) statementNode() {}
func (s *DropTable) String() string { return fmt.Sprintf("DROP TABLE %s", s.Name) }

// AlterRenameTable is `ALTER TABLE name RENAME TO new_name`.
type AlterRenameTable struct {
	Name    string
	NewName string
}

func (s *AlterRenameTable) statementNode() {}
func (s *AlterRenameTable) String() string {
	return fmt.Sprintf("ALTER TABLE %s RENAME TO %s", s.Name, s.NewName)
}

// AlterAddColumn is `ALTER TABLE name ADD [COLUMN] col_def`.
type AlterAddColumn struct {
	Name   string
	Column ColumnDef
}

func (s *AlterAddColumn) statementNode() {}
func (s *AlterAddColumn) String() string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", s.Name, s.Column.String())
}

// InsertValues is `INSERT INTO name [(col, ...)] VALUES (expr, ...), ...`.
type InsertValues struct {
	Table   string
	Columns []string // nil if no explicit column list
	Rows    [][]Expression
}

func (s *InsertValues) statementNode() {}
func (s *InsertValues) String() string {
	return fmt.Sprintf("INSERT INTO %s VALUES (%d rows)", s.Table, len(s.Rows))
}

// InsertSelect is `INSERT INTO name SELECT ...`.
type InsertSelect struct {
	Table  string
	Select *Select
}

func (s *InsertSelect) statementNode() {}
func (s *InsertSelect) String() string { return fmt.Sprintf("INSERT INTO %s SELECT", s.Table) }

// Delete is `DELETE FROM name [WHERE expr]`.
type Delete struct {
	Table string
	Where Expression // nil if absent
}

func (s *Delete) statementNode() {}
func (s *Delete) String() string { return fmt.Sprintf("DELETE FROM %s", s.Table) }

// Assignment is one `col = expr` pair in an UPDATE SET clause.
type Assignment struct {
	Column string
	Value  Expression
}

// Update is `UPDATE name SET col=expr, ... [WHERE expr]`.
type Update struct {
	Table string
	Set   []Assignment
	Where Expression // nil if absent
}

func (s *Update) statementNode() {}
func (s *Update) String() string { return fmt.Sprintf("UPDATE %s SET %d columns", s.Table, len(s.Set)) }

// JoinType distinguishes an explicit join operator from NATURAL.
type JoinType int

const (
	JoinInner JoinType = iota
	JoinLeft
	JoinRight
	JoinFull
	JoinNatural
)

// Join is one `join_op table [ON expr]` clause following the first FROM
// table.
type Join struct {
	Type  JoinType
	Table string
	On    Expression // nil for NATURAL (synthesized by the executor)
}

// OrderByTerm is one `expr [ASC|DESC]` entry in an ORDER BY clause.
type OrderByTerm struct {
	Expr  Expression
	Desc  bool
}

// Select is `SELECT (* | expr [, ...]) [FROM ...] [WHERE expr] [ORDER BY ...]`.
type Select struct {
	Columns []Expression // a single *Star element means `SELECT *`
	From    []string     // comma-list form; empty if Joins is used or FROM is absent
	Joins   []Join       // join-chain form; From[0]-equivalent is Joins[0].Table's left input
	Left    string       // left table of a join chain (set only when Joins is non-empty)
	Where   Expression   // nil if absent
	OrderBy []OrderByTerm
}

func (s *Select) statementNode() {}
func (s *Select) String() string { return fmt.Sprintf("SELECT (%d columns)", len(s.Columns)) }

package parser

import (
	"testing"

	"github.com/Chahine-tech/gosql-engine/pkg/ast"
)

func mustParseOne(t *testing.T, sql string) ast.Statement {
	t.Helper()
	stmts, err := Parse(sql)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", sql, err)
	}
	if len(stmts) != 1 {
		t.Fatalf("Parse(%q): expected 1 statement, got %d", sql, len(stmts))
	}
	return stmts[0]
}

func TestParseCreateTable(t *testing.T) {
	stmt := mustParseOne(t, `CREATE TABLE IF NOT EXISTS Foo (id INTEGER PRIMARY KEY, name TEXT)`)
	ct, ok := stmt.(*ast.CreateTable)
	if !ok {
		t.Fatalf("expected *ast.CreateTable, got %T", stmt)
	}
	if ct.Name != "Foo" || !ct.IfNotExists {
		t.Fatalf("unexpected CreateTable: %+v", ct)
	}
	if len(ct.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(ct.Columns))
	}
	if ct.Columns[0].Name != "id" || ct.Columns[0].Type != ast.ColumnTypeInteger || !ct.Columns[0].PrimaryKey {
		t.Fatalf("unexpected first column: %+v", ct.Columns[0])
	}
	if ct.Columns[1].Name != "name" || ct.Columns[1].Type != ast.ColumnTypeText {
		t.Fatalf("unexpected second column: %+v", ct.Columns[1])
	}
}

func TestParseDropAndAlterTable(t *testing.T) {
	stmt := mustParseOne(t, `DROP TABLE Foo`)
	if dt, ok := stmt.(*ast.DropTable); !ok || dt.Name != "Foo" {
		t.Fatalf("unexpected DropTable: %#v", stmt)
	}

	stmt = mustParseOne(t, `ALTER TABLE Foo RENAME TO Bar`)
	rn, ok := stmt.(*ast.AlterRenameTable)
	if !ok || rn.Name != "Foo" || rn.NewName != "Bar" {
		t.Fatalf("unexpected AlterRenameTable: %#v", stmt)
	}

	stmt = mustParseOne(t, `ALTER TABLE Foo ADD COLUMN age INTEGER`)
	add, ok := stmt.(*ast.AlterAddColumn)
	if !ok || add.Name != "Foo" || add.Column.Name != "age" || add.Column.Type != ast.ColumnTypeInteger {
		t.Fatalf("unexpected AlterAddColumn: %#v", stmt)
	}
}

func TestParseInsertValuesMultiRow(t *testing.T) {
	stmt := mustParseOne(t, `INSERT INTO Foo (id, name) VALUES (1, "a"), (2, "b")`)
	ins, ok := stmt.(*ast.InsertValues)
	if !ok {
		t.Fatalf("expected *ast.InsertValues, got %T", stmt)
	}
	if ins.Table != "Foo" || len(ins.Columns) != 2 || len(ins.Rows) != 2 {
		t.Fatalf("unexpected InsertValues: %#v", ins)
	}
}

func TestParseInsertSelect(t *testing.T) {
	stmt := mustParseOne(t, `INSERT INTO Foo SELECT * FROM Bar`)
	ins, ok := stmt.(*ast.InsertSelect)
	if !ok || ins.Table != "Foo" || ins.Select == nil {
		t.Fatalf("unexpected InsertSelect: %#v", stmt)
	}
}

func TestParseDeleteAndUpdate(t *testing.T) {
	stmt := mustParseOne(t, `DELETE FROM Foo WHERE id = 1`)
	del, ok := stmt.(*ast.Delete)
	if !ok || del.Table != "Foo" || del.Where == nil {
		t.Fatalf("unexpected Delete: %#v", stmt)
	}

	stmt = mustParseOne(t, `UPDATE Foo SET name = "x", age = age + 1 WHERE id = 1`)
	upd, ok := stmt.(*ast.Update)
	if !ok || upd.Table != "Foo" || len(upd.Set) != 2 || upd.Where == nil {
		t.Fatalf("unexpected Update: %#v", stmt)
	}
}

func TestParseSelectStar(t *testing.T) {
	stmt := mustParseOne(t, `SELECT * FROM Foo`)
	sel, ok := stmt.(*ast.Select)
	if !ok {
		t.Fatalf("expected *ast.Select, got %T", stmt)
	}
	if len(sel.Columns) != 1 {
		t.Fatalf("expected 1 column, got %d", len(sel.Columns))
	}
	if _, ok := sel.Columns[0].(*ast.Star); !ok {
		t.Fatalf("expected *ast.Star, got %T", sel.Columns[0])
	}
	if len(sel.From) != 1 || sel.From[0] != "Foo" {
		t.Fatalf("unexpected From: %#v", sel.From)
	}
}

func TestParseSelectFromCommaList(t *testing.T) {
	stmt := mustParseOne(t, `SELECT a.id, b.name FROM a, b WHERE a.id = b.id`)
	sel := stmt.(*ast.Select)
	if len(sel.From) != 2 || sel.From[0] != "a" || sel.From[1] != "b" {
		t.Fatalf("unexpected From: %#v", sel.From)
	}
	if len(sel.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(sel.Columns))
	}
	if _, ok := sel.Columns[0].(*ast.TableColumn); !ok {
		t.Fatalf("expected *ast.TableColumn, got %T", sel.Columns[0])
	}
}

func TestParseSelectJoinChain(t *testing.T) {
	stmt := mustParseOne(t, `SELECT * FROM a LEFT JOIN b ON a.id = b.id NATURAL JOIN c`)
	sel := stmt.(*ast.Select)
	if sel.Left != "a" {
		t.Fatalf("expected Left 'a', got %q", sel.Left)
	}
	if len(sel.Joins) != 2 {
		t.Fatalf("expected 2 joins, got %d", len(sel.Joins))
	}
	if sel.Joins[0].Type != ast.JoinLeft || sel.Joins[0].Table != "b" || sel.Joins[0].On == nil {
		t.Fatalf("unexpected first join: %#v", sel.Joins[0])
	}
	if sel.Joins[1].Type != ast.JoinNatural || sel.Joins[1].Table != "c" || sel.Joins[1].On != nil {
		t.Fatalf("unexpected second join: %#v", sel.Joins[1])
	}
}

func TestParseSelectOrderBy(t *testing.T) {
	stmt := mustParseOne(t, `SELECT id FROM Foo ORDER BY id DESC, name`)
	sel := stmt.(*ast.Select)
	if len(sel.OrderBy) != 2 {
		t.Fatalf("expected 2 order-by terms, got %d", len(sel.OrderBy))
	}
	if !sel.OrderBy[0].Desc {
		t.Fatalf("expected first term DESC")
	}
	if sel.OrderBy[1].Desc {
		t.Fatalf("expected second term ASC (default)")
	}
}

// TestParseExpressionRightLeaning verifies the parser deliberately does NOT
// apply operator precedence: `5 + 6 - 10 + 3 - 1` must parse as a single
// right-leaning, flat chain, i.e. (5 + (6 - (10 + (3 - 1)))). Re-association
// is the evaluator's job, not the parser's.
func TestParseExpressionRightLeaning(t *testing.T) {
	stmt := mustParseOne(t, `SELECT 5 + 6 - 10 + 3 - 1`)
	sel := stmt.(*ast.Select)
	expr := sel.Columns[0]

	top, ok := expr.(*ast.Binary)
	if !ok {
		t.Fatalf("expected top-level *ast.Binary, got %T", expr)
	}
	if top.Op != ast.OpAdd {
		t.Fatalf("expected top-level op Add, got %s", top.Op)
	}
	if _, ok := top.Left.(*ast.Literal); !ok {
		t.Fatalf("expected left-hand side to be the leading literal, got %T", top.Left)
	}

	depth := 0
	cur := expr
	for {
		b, ok := cur.(*ast.Binary)
		if !ok {
			break
		}
		depth++
		cur = b.Right
	}
	if depth != 4 {
		t.Fatalf("expected a chain of 4 binary nodes down the right spine, got %d", depth)
	}
}

func TestParseGroupedExpressionWrapsInGrouped(t *testing.T) {
	stmt := mustParseOne(t, `SELECT 5 + (2 * 3 + 1)`)
	sel := stmt.(*ast.Select)
	top, ok := sel.Columns[0].(*ast.Binary)
	if !ok {
		t.Fatalf("expected top-level *ast.Binary, got %T", sel.Columns[0])
	}
	if _, ok := top.Right.(*ast.Grouped); !ok {
		t.Fatalf("expected parenthesized right-hand side to parse as *ast.Grouped, got %T", top.Right)
	}
}

func TestParseMultipleStatements(t *testing.T) {
	stmts, err := Parse(`SELECT 1; SELECT 2;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}
}

func TestParseErrorOnMalformedStatement(t *testing.T) {
	_, err := Parse(`SELECT FROM`)
	if err == nil {
		t.Fatalf("expected an error for malformed SELECT, got nil")
	}
}

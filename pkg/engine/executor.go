package engine

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Chahine-tech/gosql-engine/pkg/ast"
	"github.com/Chahine-tech/gosql-engine/pkg/value"
)

// log is the package-level diagnostic logger, grounded on
// dolthub-go-mysql-server's use of logrus (auth/audit.go).
var log = logrus.WithField("component", "engine")

// RowSink receives one produced row at a time, alongside the header that
// describes it (spec §6: "row_sink is invoked once per produced row with
// (row, result header)").
type RowSink func(row Row, header Header)

// Exec dispatches stmts against db in order, delivering SELECT rows to
// sink. It returns the result table of the last statement when that
// statement is a SELECT, and nil otherwise. A division-by-zero panic raised
// deep inside expression evaluation is recovered here and reported as an
// error; as with any other statement error, execution stops at the
// statement that raised it and later statements do not run (spec §7).
func Exec(db *Database, stmts []ast.Statement, sink RowSink) (result *Table, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(value.DivByZeroError); ok {
				err = errors.Wrap(ErrDivisionByZero, "exec")
				return
			}
			panic(r)
		}
	}()

	for _, stmt := range stmts {
		t, execErr := execStatement(db, stmt, sink)
		if execErr != nil {
			return result, errors.Wrap(execErr, "exec")
		}
		result = t
	}
	return result, nil
}

func execStatement(db *Database, stmt ast.Statement, sink RowSink) (*Table, error) {
	switch s := stmt.(type) {
	case *ast.CreateTable:
		return nil, execCreateTable(db, s)
	case *ast.DropTable:
		db.DropTable(s.Name)
		return nil, nil
	case *ast.AlterRenameTable:
		return nil, db.RenameTable(s.Name, s.NewName)
	case *ast.AlterAddColumn:
		t, err := db.Table(s.Name)
		if err != nil {
			return nil, err
		}
		t.AddColumn(s.Column)
		return nil, nil
	case *ast.InsertValues:
		return nil, execInsertValues(db, s)
	case *ast.InsertSelect:
		return nil, execInsertSelect(db, s, sink)
	case *ast.Delete:
		return nil, execDelete(db, s)
	case *ast.Update:
		return nil, execUpdate(db, s)
	case *ast.Select:
		return execSelect(db, s, sink)
	default:
		return nil, errors.Errorf("unsupported statement type %T", stmt)
	}
}

func execCreateTable(db *Database, s *ast.CreateTable) error {
	header := make(Header, len(s.Columns))
	copy(header, s.Columns)
	t := NewTable(s.Name, header)
	db.CreateTable(t, s.IfNotExists)
	log.WithField("table", s.Name).Debug("created table")
	return nil
}

func execInsertValues(db *Database, s *ast.InsertValues) error {
	t, err := db.Table(s.Table)
	if err != nil {
		return err
	}
	if s.Columns != nil {
		for _, row := range s.Rows {
			if len(row) != len(s.Columns) {
				return errors.Wrapf(ErrArityMismatch, "table %q: %d columns, %d values", s.Table, len(s.Columns), len(row))
			}
		}
	}

	rows := make([]Row, len(s.Rows))
	for i, exprRow := range s.Rows {
		ev := &Evaluator{Row: Row{}, Header: Header{}}
		row := make(Row, len(exprRow))
		for j, expr := range exprRow {
			row[j] = ev.Eval(expr)
		}
		rows[i] = row
	}
	return t.Insert(s.Columns, rows)
}

func execInsertSelect(db *Database, s *ast.InsertSelect, sink RowSink) error {
	t, err := db.Table(s.Table)
	if err != nil {
		return err
	}
	// The inner SELECT feeds rows into t, it does not stream them to the
	// caller's sink; only a top-level SELECT does that.
	result, err := execSelect(db, s.Select, func(Row, Header) {})
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	return t.Insert(nil, result.Rows())
}

func execDelete(db *Database, s *ast.Delete) error {
	t, err := db.Table(s.Table)
	if err != nil {
		return err
	}
	if s.Where == nil {
		t.Clear()
		return nil
	}
	t.DeleteWhere(func(row Row) bool {
		return (&Evaluator{Row: row, Header: t.Header}).EvalBool(s.Where)
	})
	return nil
}

func execUpdate(db *Database, s *ast.Update) error {
	t, err := db.Table(s.Table)
	if err != nil {
		return err
	}

	assignIdx := make([]int, len(s.Set))
	for i, a := range s.Set {
		idx := t.Header.ColumnIndex(a.Column)
		if idx < 0 {
			return errors.Wrapf(ErrColumnNotFound, "table %q column %q", s.Table, a.Column)
		}
		assignIdx[i] = idx
	}

	pred := func(row Row) bool {
		if s.Where == nil {
			return true
		}
		return (&Evaluator{Row: row, Header: t.Header}).EvalBool(s.Where)
	}
	t.UpdateWhere(pred, func(row Row) Row {
		ev := &Evaluator{Row: row, Header: t.Header}
		for i, a := range s.Set {
			row[assignIdx[i]] = ev.Eval(a.Value)
		}
		return row
	})
	return nil
}

// execSelect runs the four-phase SELECT pipeline (spec §4.6), delivers the
// projected, sorted rows to sink, and returns the materialized result
// table.
func execSelect(db *Database, sel *ast.Select, sink RowSink) (*Table, error) {
	inputs, err := gatherInputs(db, sel)
	if err != nil {
		return nil, err
	}

	if sel.Where != nil {
		inputs.rows = filterRows(inputs.rows, func(row Row) bool {
			return (&Evaluator{Row: row, Header: inputs.header, Tables: inputs.tableInputs()}).EvalBool(sel.Where)
		})
	}

	resultHeader, rows, err := project(inputs, sel.Columns)
	if err != nil {
		return nil, err
	}

	orderRows(resultHeader, rows, sel.OrderBy)

	result := NewTable("", resultHeader)
	if err := result.Insert(nil, rows); err != nil {
		return nil, err
	}
	for _, r := range result.Rows() {
		sink(r, resultHeader)
	}
	return result, nil
}

// inputSet is the running Cartesian product built up by phase 1.
type inputSet struct {
	tables []TableInput
	header Header
	rows   []Row
}

func (s inputSet) tableInputs() []TableInput { return s.tables }

func gatherInputs(db *Database, sel *ast.Select) (inputSet, error) {
	switch {
	case len(sel.Joins) > 0:
		return gatherJoinChain(db, sel)
	case len(sel.From) > 0:
		return gatherCommaList(db, sel.From)
	default:
		// No FROM: synthesize a single empty row (spec §4.6 phase 1).
		return inputSet{rows: []Row{{}}}, nil
	}
}

func gatherCommaList(db *Database, names []string) (inputSet, error) {
	var set inputSet
	for _, name := range names {
		t, err := db.Table(name)
		if err != nil {
			return inputSet{}, err
		}
		set = appendTable(set, TableInput{Name: name, Header: t.Header}, t.Rows())
	}
	return set, nil
}

func gatherJoinChain(db *Database, sel *ast.Select) (inputSet, error) {
	left, err := db.Table(sel.Left)
	if err != nil {
		return inputSet{}, err
	}
	set := appendTable(inputSet{}, TableInput{Name: sel.Left, Header: left.Header}, left.Rows())

	for _, join := range sel.Joins {
		rt, err := db.Table(join.Table)
		if err != nil {
			return inputSet{}, err
		}
		joined := appendTable(set, TableInput{Name: join.Table, Header: rt.Header}, rt.Rows())

		var pred func(Row) bool
		switch {
		case join.Type == ast.JoinNatural:
			pred = naturalJoinPredicate(set.tables, TableInput{Name: join.Table, Header: rt.Header})
		case join.On != nil:
			on := join.On
			pred = func(row Row) bool {
				return (&Evaluator{Row: row, Header: joined.header, Tables: joined.tableInputs()}).EvalBool(on)
			}
		default:
			pred = func(Row) bool { return true }
		}

		joined.rows = filterRows(joined.rows, pred)
		set = joined
	}
	return set, nil
}

// naturalJoinPredicate synthesizes equality constraints for every pair of
// columns sharing a name across the tables already joined and the newly
// joined table (spec §4.6 phase 1).
func naturalJoinPredicate(existing []TableInput, next TableInput) func(Row) bool {
	type pair struct{ i, j int }
	var pairs []pair
	offset := 0
	for _, in := range existing {
		offset += len(in.Header)
	}
	base := 0
	for _, in := range existing {
		for li, c := range in.Header {
			for ri, nc := range next.Header {
				if c.Name == nc.Name {
					pairs = append(pairs, pair{base + li, offset + ri})
				}
			}
		}
		base += len(in.Header)
	}
	return func(row Row) bool {
		for _, p := range pairs {
			if row[p.i].Ne(row[p.j]) {
				return false
			}
		}
		return true
	}
}

func appendTable(set inputSet, next TableInput, nextRows []Row) inputSet {
	if len(set.tables) == 0 {
		rows := make([]Row, len(nextRows))
		copy(rows, nextRows)
		return inputSet{
			tables: []TableInput{next},
			header: append(Header{}, next.Header...),
			rows:   rows,
		}
	}

	var rows []Row
	for _, r := range set.rows {
		for _, nr := range nextRows {
			combined := make(Row, 0, len(r)+len(nr))
			combined = append(combined, r...)
			combined = append(combined, nr...)
			rows = append(rows, combined)
		}
	}
	return inputSet{
		tables: append(append([]TableInput{}, set.tables...), next),
		header: append(append(Header{}, set.header...), next.Header...),
		rows:   rows,
	}
}

func filterRows(rows []Row, pred func(Row) bool) []Row {
	kept := rows[:0:0]
	for _, r := range rows {
		if pred(r) {
			kept = append(kept, r)
		}
	}
	return kept
}

// project implements phase 3: `*` passes the product through unchanged;
// an explicit expression list builds a synthetic header (column-def mode)
// once and then evaluates every expression against every row.
func project(in inputSet, columns []ast.Expression) (Header, []Row, error) {
	if len(columns) == 1 {
		if star, ok := columns[0].(*ast.Star); ok && star.Table == "" {
			return in.header, in.rows, nil
		}
	}
	columns = flattenStars(columns, in)

	header := make(Header, len(columns))
	ev := &Evaluator{Header: in.header, Tables: in.tableInputs()}
	for i, expr := range columns {
		if def, ok := ev.EvalColumnDef(expr); ok {
			header[i] = def
		} else {
			header[i] = ast.ColumnDef{Name: expr.String()}
		}
	}

	rows := make([]Row, len(in.rows))
	for ri, r := range in.rows {
		rowEv := &Evaluator{Row: r, Header: in.header, Tables: in.tableInputs()}
		out := make(Row, len(columns))
		for i, expr := range columns {
			out[i] = rowEv.Eval(expr)
		}
		rows[ri] = out
	}
	return header, rows, nil
}

// flattenStars expands any `*` or `table.*` column into the concrete
// column references it stands for, so the rest of projection only ever
// deals with ordinary expressions.
func flattenStars(columns []ast.Expression, in inputSet) []ast.Expression {
	out := make([]ast.Expression, 0, len(columns))
	for _, col := range columns {
		star, ok := col.(*ast.Star)
		if !ok {
			out = append(out, col)
			continue
		}
		if star.Table == "" {
			for _, c := range in.header {
				out = append(out, &ast.ColumnName{Name: c.Name})
			}
			continue
		}
		for _, ti := range in.tables {
			if ti.Name != star.Table {
				continue
			}
			for _, c := range ti.Header {
				out = append(out, &ast.TableColumn{Table: star.Table, Inner: &ast.ColumnName{Name: c.Name}})
			}
		}
	}
	return out
}

// orderRows implements phase 4: each term is applied as a stable sort, in
// reverse declaration order, so the first declared term ends up the
// primary sort key (spec §4.6 phase 4, §8 invariant 8).
func orderRows(header Header, rows []Row, terms []ast.OrderByTerm) {
	for i := len(terms) - 1; i >= 0; i-- {
		term := terms[i]
		sort.SliceStable(rows, func(a, b int) bool {
			ka := sortKey(header, rows[a], term.Expr)
			kb := sortKey(header, rows[b], term.Expr)
			if term.Desc {
				return kb.Lt(ka).Bool()
			}
			return ka.Lt(kb).Bool()
		})
	}
}

// sortKey resolves an ORDER BY term against a projected row. A bare column
// reference resolves through alias mode (its positional index in the
// result header) and then indexes the row; any other expression is
// evaluated directly against the row (spec glossary: "Alias mode").
func sortKey(header Header, row Row, expr ast.Expression) value.Value {
	switch ex := unwrapGrouped(Reassociate(expr)).(type) {
	case *ast.ColumnName:
		ev := &Evaluator{Row: row, Header: header}
		idx := ev.EvalAlias(ex)
		if idx.Kind() != value.KindInteger {
			return value.Null()
		}
		i := int(idx.Int())
		if i < 0 || i >= len(row) {
			return value.Null()
		}
		return row[i]
	default:
		return (&Evaluator{Row: row, Header: header}).Eval(expr)
	}
}

// Package engine implements the in-memory table and database model, the
// expression evaluator, and the statement executor. It is the Go-idiomatic
// generalization of the teacher repository's pkg/schema package: the same
// "table has a header and rows, database owns tables" shape, reworked to be
// case-sensitive, to index rows by primary key or insertion order instead
// of a name-keyed map, and to carry the row data itself rather than just
// column metadata.
package engine

import (
	"github.com/google/btree"
	"github.com/pkg/errors"

	"github.com/Chahine-tech/gosql-engine/pkg/ast"
	"github.com/Chahine-tech/gosql-engine/pkg/value"
)

// Row is an ordered sequence of Values in one-to-one correspondence with a
// Header. Its length must equal the owning table's header length at every
// observation point (spec invariant 1).
type Row []value.Value

// Header is the ordered sequence of ColumnDefs describing a table's shape.
type Header []ast.ColumnDef

// ColumnIndex returns the position of the column named name, or -1.
func (h Header) ColumnIndex(name string) int {
	for i, c := range h {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// ColumnDefByName returns the column definition named name and whether it
// was found.
func (h Header) ColumnDefByName(name string) (ast.ColumnDef, bool) {
	i := h.ColumnIndex(name)
	if i < 0 {
		return ast.ColumnDef{}, false
	}
	return h[i], true
}

// entry is the btree item backing a Table's row storage, ordered by Key.
type entry struct {
	Key uint64
	Row Row
}

func (e entry) Less(other btree.Item) bool {
	return e.Key < other.(entry).Key
}

// Table is an ordered mapping from primary-key slot to Row, plus header
// metadata. Rows are stored in a google/btree ordered map so iteration is
// always ascending-key (spec §3: "Iteration order of data is ascending key
// order (stable, reproducible)").
type Table struct {
	Name   string
	Header Header

	data    *btree.BTree
	pk      int // index into Header, or -1 if no PRIMARY KEY column
	nextSeq uint64
	nextPK  int64 // last auto-increment value handed out when the pk cell is Null
}

// NewTable creates an empty table with the given name and header, and runs
// ProcessConstraints to locate any PRIMARY KEY column.
func NewTable(name string, header Header) *Table {
	t := &Table{
		Name:   name,
		Header: header,
		data:   btree.New(32),
		pk:     -1,
	}
	t.ProcessConstraints()
	return t
}

// ProcessConstraints scans the header once; the first column marked
// PRIMARY KEY sets pk. Called at table creation (spec §4.3).
func (t *Table) ProcessConstraints() {
	t.pk = -1
	for i, c := range t.Header {
		if c.PrimaryKey {
			t.pk = i
			break
		}
	}
}

// HasPrimaryKey reports whether a PRIMARY KEY column was found.
func (t *Table) HasPrimaryKey() bool { return t.pk >= 0 }

// AddColumn appends def to the header and backfills every existing row with
// Null, preserving the row-length invariant (spec §4.3).
func (t *Table) AddColumn(def ast.ColumnDef) {
	t.Header = append(t.Header, def)
	var updated []entry
	t.data.Ascend(func(i btree.Item) bool {
		e := i.(entry)
		e.Row = append(append(Row{}, e.Row...), value.Null())
		updated = append(updated, e)
		return true
	})
	for _, e := range updated {
		t.data.ReplaceOrInsert(e)
	}
}

// keyFor computes the storage key for row: the pk column's integer value if
// a primary key is set and the row supplies one, otherwise the next
// auto-increment value (spec §4.3: "pk auto-increment from the insertion
// counter when pk is omitted"). When a primary key is set but the row's pk
// cell is Null, the assigned value is written back into row[pk] so the
// caller sees the generated Id, and nextPK advances past it. Tables with no
// PRIMARY KEY column instead key by a dense 0-based insertion counter.
func (t *Table) keyFor(row Row) uint64 {
	if t.pk >= 0 {
		if row[t.pk].IsNull() {
			t.nextPK++
			row[t.pk] = value.Integer(t.nextPK)
		}
		return uint64(row[t.pk].ToInt())
	}
	key := t.nextSeq
	t.nextSeq++
	return key
}

// PushRow stores row under its computed key, overwriting any existing row
// with the same key (spec §9: "push_row overwrites on duplicate pk").
func (t *Table) PushRow(row Row) error {
	if len(row) != len(t.Header) {
		return errors.Errorf("row length %d does not match header length %d", len(row), len(t.Header))
	}
	key := t.keyFor(row)
	t.data.ReplaceOrInsert(entry{Key: key, Row: row})
	return nil
}

// Insert builds len(rows) new rows. If columns is non-nil, each row starts
// Null-filled to header length and the supplied values are placed at the
// index of their named column; otherwise values are assigned positionally
// and must span the full header width (spec §4.3).
func (t *Table) Insert(columns []string, rows []Row) error {
	for _, r := range rows {
		row, err := t.buildRow(columns, r)
		if err != nil {
			return err
		}
		if err := t.PushRow(row); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) buildRow(columns []string, values Row) (Row, error) {
	if columns == nil {
		if len(values) != len(t.Header) {
			return nil, errors.Errorf("expected %d values, got %d", len(t.Header), len(values))
		}
		return append(Row{}, values...), nil
	}

	if len(columns) != len(values) {
		return nil, errors.Errorf("column list has %d names but %d values were given", len(columns), len(values))
	}

	row := make(Row, len(t.Header))
	for i := range row {
		row[i] = value.Null()
	}
	for i, col := range columns {
		idx := t.Header.ColumnIndex(col)
		if idx < 0 {
			return nil, errors.Errorf("no such column %q", col)
		}
		row[idx] = values[i]
	}
	return row, nil
}

// RowPredicate decides whether a row should be considered a match.
type RowPredicate func(Row) bool

// DeleteWhere removes every row satisfying pred. It first collects the
// matching keys, then deletes them, so deletion never mutates the tree
// while it is being iterated (spec §4.3).
func (t *Table) DeleteWhere(pred RowPredicate) int {
	var keys []uint64
	t.data.Ascend(func(i btree.Item) bool {
		e := i.(entry)
		if pred(e.Row) {
			keys = append(keys, e.Key)
		}
		return true
	})
	for _, k := range keys {
		t.data.Delete(entry{Key: k})
	}
	return len(keys)
}

// UpdateWhere rewrites, in place, every row satisfying pred using mutate.
// Rows whose key changes (because the pk column was itself updated) are
// re-keyed.
func (t *Table) UpdateWhere(pred RowPredicate, mutate func(Row) Row) int {
	var matched []entry
	t.data.Ascend(func(i btree.Item) bool {
		e := i.(entry)
		if pred(e.Row) {
			matched = append(matched, e)
		}
		return true
	})
	for _, e := range matched {
		newRow := mutate(append(Row{}, e.Row...))
		key := e.Key
		if t.pk >= 0 {
			key = t.keyFor(newRow)
		}
		t.data.Delete(entry{Key: e.Key})
		t.data.ReplaceOrInsert(entry{Key: key, Row: newRow})
	}
	return len(matched)
}

// Clear empties the table's data.
func (t *Table) Clear() {
	t.data.Clear(false)
	t.nextSeq = 0
	t.nextPK = 0
}

// Len returns the row count.
func (t *Table) Len() int { return t.data.Len() }

// Rows returns every row in ascending key order.
func (t *Table) Rows() []Row {
	rows := make([]Row, 0, t.data.Len())
	t.data.Ascend(func(i btree.Item) bool {
		rows = append(rows, i.(entry).Row)
		return true
	})
	return rows
}

// AssertSize is a test hook verifying the row-length invariant holds for
// every stored row (spec §4.3).
func (t *Table) AssertSize() error {
	var bad error
	t.data.Ascend(func(i btree.Item) bool {
		e := i.(entry)
		if len(e.Row) != len(t.Header) {
			bad = errors.Errorf("row with key %d has length %d, header has length %d", e.Key, len(e.Row), len(t.Header))
			return false
		}
		return true
	})
	return bad
}

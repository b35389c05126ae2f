package engine

import (
	"sort"

	"github.com/pkg/errors"
)

// ErrTableNotFound is returned by operations that require an existing
// table and don't find one.
var ErrTableNotFound = errors.New("table not found")

// Database owns every Table, keyed by name, with case-sensitive lookup
// (spec §3) and sorted-name iteration for deterministic enumeration.
type Database struct {
	tables map[string]*Table
}

// NewDatabase creates an empty database.
func NewDatabase() *Database {
	return &Database{tables: make(map[string]*Table)}
}

// CreateTable installs table under its own Name, overwriting any existing
// table of the same name unless ifNotExists is set and one already exists.
func (d *Database) CreateTable(table *Table, ifNotExists bool) {
	if ifNotExists {
		if _, ok := d.tables[table.Name]; ok {
			return
		}
	}
	d.tables[table.Name] = table
}

// DropTable removes a table by name; missing tables are ignored (spec
// §4.5).
func (d *Database) DropTable(name string) {
	delete(d.tables, name)
}

// RenameTable removes the table stored under name and reinserts it under
// newName, updating the table's own Name field. Errors if name is absent
// (spec §4.5).
func (d *Database) RenameTable(name, newName string) error {
	t, ok := d.tables[name]
	if !ok {
		return errors.Wrapf(ErrTableNotFound, "table %q", name)
	}
	delete(d.tables, name)
	t.Name = newName
	d.tables[newName] = t
	return nil
}

// Table looks up a table by its exact (case-sensitive) name.
func (d *Database) Table(name string) (*Table, error) {
	t, ok := d.tables[name]
	if !ok {
		return nil, errors.Wrapf(ErrTableNotFound, "table %q", name)
	}
	return t, nil
}

// TableNames returns every table name in sorted order.
func (d *Database) TableNames() []string {
	names := make([]string, 0, len(d.tables))
	for n := range d.tables {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

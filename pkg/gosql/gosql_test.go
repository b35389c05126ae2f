package gosql

import (
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/Chahine-tech/gosql-engine/pkg/engine"
	"github.com/Chahine-tech/gosql-engine/pkg/value"
)

func TestExecReturnsLastSelectResult(t *testing.T) {
	db := NewDatabase()

	var delivered []engine.Row
	result, err := Exec(db, `
		CREATE TABLE Foo(Id INTEGER PRIMARY KEY, Name TEXT);
		INSERT INTO Foo(Name) VALUES("a"), ("b");
		SELECT * FROM Foo;
	`, func(r engine.Row, h engine.Header) {
		delivered = append(delivered, r)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil {
		t.Fatalf("expected a non-nil result table for a script ending in SELECT")
	}
	if len(delivered) != 2 {
		t.Fatalf("expected 2 delivered rows, got %d", len(delivered))
	}
	if !delivered[0][0].Eq(value.Integer(1)) {
		t.Fatalf("expected first row Id 1, got %v", delivered[0][0])
	}
}

func TestExecReturnsNilResultWhenLastStatementIsNotSelect(t *testing.T) {
	db := NewDatabase()
	result, err := Exec(db, `CREATE TABLE Foo(Id INTEGER);`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Fatalf("expected nil result, got %v", result)
	}
}

func TestExecParseErrorExecutesNothing(t *testing.T) {
	db := NewDatabase()
	_, err := Exec(db, `CREATE TALBE Foo(Id INTEGER);`, nil)
	if err == nil {
		t.Fatalf("expected a parse error")
	}
	if _, tblErr := db.Table("Foo"); tblErr == nil {
		t.Fatalf("expected no table to have been created on parse failure")
	}
}

func TestSetLoggerReplacesComponentLogger(t *testing.T) {
	original := log
	defer func() { log = original }()

	custom := logrus.New()
	SetLogger(custom)
	if log.Logger != custom {
		t.Fatalf("expected SetLogger to point gosql's logger at the given *logrus.Logger")
	}
}

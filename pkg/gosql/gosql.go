// Package gosql is the single public entry point tying the parser to the
// executor: parse a SQL string, run every statement it contains against a
// Database, and stream result rows to a caller-supplied sink (spec §6).
package gosql

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Chahine-tech/gosql-engine/pkg/engine"
	"github.com/Chahine-tech/gosql-engine/pkg/parser"
)

var log = logrus.WithField("component", "gosql")

// SetLogger replaces the logger used to report parse and execution
// failures. Embedders that already run a logrus.Logger of their own can
// point this package at it instead of the default standalone logger.
func SetLogger(l *logrus.Logger) {
	log = l.WithField("component", "gosql")
}

// NewDatabase creates an empty, ready-to-use Database handle.
func NewDatabase() *engine.Database { return engine.NewDatabase() }

// Exec parses sql and drives the executor against db, delivering every
// produced row to sink. sink may be nil if the caller only wants the
// returned result table. It returns the result table of the script's last
// statement when that statement is a SELECT, and nil otherwise.
//
// On a parse failure, no statement in sql executes at all (spec §4.2); the
// error is returned and also logged, mirroring the teacher's pattern of
// logging at the boundary where a request fails before returning it to the
// caller.
func Exec(db *engine.Database, sql string, sink engine.RowSink) (*engine.Table, error) {
	if sink == nil {
		sink = func(engine.Row, engine.Header) {}
	}

	stmts, err := parser.Parse(sql)
	if err != nil {
		log.WithError(err).Warn("parse failed")
		return nil, errors.Wrap(err, "gosql")
	}

	result, err := engine.Exec(db, stmts, sink)
	if err != nil {
		log.WithError(err).Warn("exec failed")
		return nil, err
	}
	return result, nil
}

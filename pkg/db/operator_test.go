package db_test

import (
	"testing"

	"github.com/gnames/wikialias/internal/iodb"
	"github.com/gnames/wikialias/pkg/db"
)

// TestPgxOperatorImplementsInterface verifies that the pgx operator
// implements the db.Operator interface.
func TestPgxOperatorImplementsInterface(t *testing.T) {
	// This will fail to compile if the operator doesn't implement db.Operator
	var _ db.Operator = iodb.NewPgxOperator()
}

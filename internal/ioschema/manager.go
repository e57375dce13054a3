// Package ioschema implements SchemaManager interface for
// database schema management. This is an impure I/O package
// that wraps GORM AutoMigrate functionality.
package ioschema

import (
	"context"

	"github.com/gnames/wikialias/pkg/db"
	"github.com/gnames/wikialias/pkg/lifecycle"
	"github.com/gnames/wikialias/pkg/schema"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// manager implements the lifecycle.SchemaManager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Migrate creates or updates the dictionary tables and sets "C"
// collation on their text columns. Running it again on an up-to-date
// database changes nothing.
func (m *manager) Migrate(ctx context.Context) error {
	if m.operator == nil || m.operator.Pool() == nil {
		return NotConnectedError()
	}

	db := stdlib.OpenDBFromPool(m.operator.Pool())
	defer db.Close()

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: db}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return GORMConnectionError(err)
	}

	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return MigrateSchemaError(err)
	}

	return m.setCollation(ctx)
}

// setCollation makes PostgreSQL compare titles and aliases byte by byte,
// the same way they are sorted everywhere else.
func (m *manager) setCollation(ctx context.Context) error {
	pool := m.operator.Pool()

	columns := []struct{ table, column string }{
		{"aliases", "title"},
		{"aliases", "alias"},
		{"redirects", "title"},
		{"aimai", "member"},
	}

	qStr := `ALTER TABLE %s ALTER COLUMN %s TYPE TEXT COLLATE "C"`

	for _, col := range columns {
		q := formatCollationSQL(qStr, col.table, col.column)
		if _, err := pool.Exec(ctx, q); err != nil {
			return CollationError(col.table, col.column, err)
		}
	}
	return nil
}

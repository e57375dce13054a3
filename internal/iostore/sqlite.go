package iostore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/gnames/wikialias/pkg/aliasdict"
	"github.com/gnames/wikialias/pkg/schema"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps a dictionary in an SQLite file with aliases,
// redirects, aimai and metadata tables.
type SQLiteStore struct {
	path string
}

// NewSQLiteStore creates an SQLiteStore for the file at path.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Save creates a new database file, replacing an existing one.
func (s *SQLiteStore) Save(ctx context.Context, d *aliasdict.Dictionary) error {
	tmp := s.path + ".tmp"
	if err := os.Remove(tmp); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return SaveError(s.path, err)
	}

	if err := s.save(ctx, tmp, d); err != nil {
		os.Remove(tmp)
		return SaveError(s.path, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return SaveError(s.path, err)
	}
	return nil
}

func (s *SQLiteStore) save(
	ctx context.Context,
	path string,
	d *aliasdict.Dictionary,
) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, g := range schema.Generators() {
		stmts := append([]string{g.TableDDL()}, g.IndexDDL()...)
		for _, q := range stmts {
			if _, err = db.ExecContext(ctx, q); err != nil {
				return fmt.Errorf("create %s: %w", g.TableName(), err)
			}
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	aliases := aliasRows(d)
	rows := make([][]any, len(aliases))
	for i, v := range aliases {
		rows[i] = []any{v.TitleID, v.Title, v.Alias}
	}
	err = insertRows(ctx, tx, "aliases", []string{"title_id", "title", "alias"}, rows)
	if err != nil {
		return err
	}

	redirects := redirectRows(d)
	rows = make([][]any, len(redirects))
	for i, v := range redirects {
		rows[i] = []any{v.PageID, v.Title}
	}
	err = insertRows(ctx, tx, "redirects", []string{"page_id", "title"}, rows)
	if err != nil {
		return err
	}

	aimai := aimaiRows(d)
	rows = make([][]any, len(aimai))
	for i, v := range aimai {
		rows[i] = []any{v.PageID, v.Member}
	}
	err = insertRows(ctx, tx, "aimai", []string{"page_id", "member"}, rows)
	if err != nil {
		return err
	}

	meta := metadataRows(d)
	rows = make([][]any, len(meta))
	for i, v := range meta {
		rows[i] = []any{v.Key, v.Value}
	}
	err = insertRows(ctx, tx, "metadata", []string{"key", "value"}, rows)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func insertRows(
	ctx context.Context,
	tx *sql.Tx,
	table string,
	columns []string,
	rows [][]any,
) error {
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", "),
	)
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return fmt.Errorf("prepare %s: %w", table, err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err = stmt.ExecContext(ctx, row...); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}
	return nil
}

// Load reads the dictionary from the database file.
func (s *SQLiteStore) Load(ctx context.Context) (*aliasdict.Dictionary, error) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, LoadError(s.path, err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, LoadError(s.path, err)
	}
	defer db.Close()

	res, err := loadSQL(ctx, db)
	if err != nil {
		return nil, LoadError(s.path, err)
	}
	return res, nil
}

func loadSQL(ctx context.Context, db *sql.DB) (*aliasdict.Dictionary, error) {
	res := aliasdict.New()

	err := scanPairs(ctx, db, "SELECT title, alias FROM aliases",
		func(rows *sql.Rows) error {
			var title, alias string
			if err := rows.Scan(&title, &alias); err != nil {
				return err
			}
			res.AddAlias(title, alias)
			return nil
		})
	if err != nil {
		return nil, err
	}

	err = scanPairs(ctx, db, "SELECT page_id, title FROM redirects",
		func(rows *sql.Rows) error {
			var id int
			var title string
			if err := rows.Scan(&id, &title); err != nil {
				return err
			}
			res.AddRedirect(id, title)
			return nil
		})
	if err != nil {
		return nil, err
	}

	err = scanPairs(ctx, db, "SELECT page_id, member FROM aimai",
		func(rows *sql.Rows) error {
			var id int
			var member string
			if err := rows.Scan(&id, &member); err != nil {
				return err
			}
			res.AddAimai(id, member)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func scanPairs(
	ctx context.Context,
	db *sql.DB,
	q string,
	fn func(*sql.Rows) error,
) error {
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err = fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

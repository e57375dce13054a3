package iostore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gnames/wikialias/internal/iodb"
	"github.com/gnames/wikialias/internal/ioschema"
	"github.com/gnames/wikialias/pkg/aliasdict"
	"github.com/gnames/wikialias/pkg/config"
	"github.com/gnames/wikialias/pkg/db"
	"github.com/gnames/wikialias/pkg/schema"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore keeps a dictionary in PostgreSQL tables.
type PgStore struct {
	cfg *config.Config
	op  db.Operator
}

// NewPgStore creates a PgStore using database settings of cfg.
func NewPgStore(cfg *config.Config) *PgStore {
	return &PgStore{cfg: cfg, op: iodb.NewPgxOperator()}
}

func (s *PgStore) location() string {
	return fmt.Sprintf("postgres://%s:%d/%s",
		s.cfg.Database.Host, s.cfg.Database.Port, s.cfg.Database.Database)
}

// Save migrates the schema, empties the tables and copies the
// dictionary into them.
func (s *PgStore) Save(ctx context.Context, d *aliasdict.Dictionary) error {
	if err := s.op.Connect(ctx, &s.cfg.Database); err != nil {
		return err
	}
	defer s.op.Close()

	if err := ioschema.NewManager(s.op).Migrate(ctx); err != nil {
		return err
	}
	if err := s.op.Truncate(ctx, schema.TableNames()...); err != nil {
		return err
	}

	pool := s.op.Pool()
	batchSize := s.cfg.Database.BatchSize
	if batchSize == 0 {
		batchSize = 50_000
	}

	aliases := aliasRows(d)
	err := copyRows(ctx, pool, "aliases",
		[]string{"title_id", "title", "alias"}, len(aliases), batchSize,
		func(i int) ([]any, error) {
			id, err := uuid.Parse(aliases[i].TitleID)
			if err != nil {
				return nil, err
			}
			return []any{id, aliases[i].Title, aliases[i].Alias}, nil
		})
	if err != nil {
		return SaveError(s.location(), err)
	}

	redirects := redirectRows(d)
	err = copyRows(ctx, pool, "redirects",
		[]string{"page_id", "title"}, len(redirects), batchSize,
		func(i int) ([]any, error) {
			return []any{redirects[i].PageID, redirects[i].Title}, nil
		})
	if err != nil {
		return SaveError(s.location(), err)
	}

	aimai := aimaiRows(d)
	err = copyRows(ctx, pool, "aimai",
		[]string{"page_id", "member"}, len(aimai), batchSize,
		func(i int) ([]any, error) {
			return []any{aimai[i].PageID, aimai[i].Member}, nil
		})
	if err != nil {
		return SaveError(s.location(), err)
	}

	meta := metadataRows(d)
	err = copyRows(ctx, pool, "metadata",
		[]string{"key", "value"}, len(meta), batchSize,
		func(i int) ([]any, error) {
			return []any{meta[i].Key, meta[i].Value}, nil
		})
	if err != nil {
		return SaveError(s.location(), err)
	}

	if err = vacuumAnalyze(ctx, pool); err != nil {
		return SaveError(s.location(), err)
	}

	slog.Info("Dictionary is saved to PostgreSQL",
		"database", s.cfg.Database.Database,
		"aliases", len(aliases),
		"redirects", len(redirects),
		"aimai", len(aimai),
	)
	return nil
}

// copyRows sends rows to table with CopyFrom in batches of batchSize.
func copyRows(
	ctx context.Context,
	pool *pgxpool.Pool,
	table string,
	columns []string,
	total, batchSize int,
	row func(int) ([]any, error),
) error {
	if total == 0 {
		return nil
	}

	bar := newProgressBar(total, fmt.Sprintf("Saving %s: ", table))
	defer bar.Finish()

	for i := 0; i < total; i += batchSize {
		end := min(i+batchSize, total)
		src := pgx.CopyFromSlice(end-i, func(j int) ([]any, error) {
			return row(i + j)
		})
		n, err := pool.CopyFrom(ctx, pgx.Identifier{table}, columns, src)
		if err != nil {
			return fmt.Errorf("copy to %s: %w", table, err)
		}
		if int(n) != end-i {
			return fmt.Errorf("expected to insert %d rows to %s, inserted %d",
				end-i, table, n)
		}
		bar.Add(end - i)
	}
	return nil
}

// vacuumAnalyze refreshes planner statistics of the freshly copied tables.
// VACUUM cannot run inside a transaction block.
func vacuumAnalyze(ctx context.Context, pool *pgxpool.Pool) error {
	start := time.Now()
	for _, v := range schema.TableNames() {
		q := "VACUUM ANALYZE " + pgx.Identifier{v}.Sanitize()
		if _, err := pool.Exec(ctx, q); err != nil {
			return fmt.Errorf("vacuum %s: %w", v, err)
		}
	}
	slog.Info("VACUUM ANALYZE completed",
		"duration", time.Since(start).String())
	return nil
}

// Load reads all dictionary tables.
func (s *PgStore) Load(ctx context.Context) (*aliasdict.Dictionary, error) {
	if err := s.op.Connect(ctx, &s.cfg.Database); err != nil {
		return nil, err
	}
	defer s.op.Close()

	exists, err := s.op.TableExists(ctx, schema.Alias{}.TableName())
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, LoadError(s.location(),
			fmt.Errorf("table %s does not exist", schema.Alias{}.TableName()))
	}

	pool := s.op.Pool()
	res := aliasdict.New()

	err = queryPairs(ctx, pool, "SELECT title, alias FROM aliases",
		func(rows pgx.Rows) error {
			var title, alias string
			if err := rows.Scan(&title, &alias); err != nil {
				return err
			}
			res.AddAlias(title, alias)
			return nil
		})
	if err != nil {
		return nil, LoadError(s.location(), err)
	}

	err = queryPairs(ctx, pool, "SELECT page_id, title FROM redirects",
		func(rows pgx.Rows) error {
			var id int
			var title string
			if err := rows.Scan(&id, &title); err != nil {
				return err
			}
			res.AddRedirect(id, title)
			return nil
		})
	if err != nil {
		return nil, LoadError(s.location(), err)
	}

	err = queryPairs(ctx, pool, "SELECT page_id, member FROM aimai",
		func(rows pgx.Rows) error {
			var id int
			var member string
			if err := rows.Scan(&id, &member); err != nil {
				return err
			}
			res.AddAimai(id, member)
			return nil
		})
	if err != nil {
		return nil, LoadError(s.location(), err)
	}
	return res, nil
}

func queryPairs(
	ctx context.Context,
	pool *pgxpool.Pool,
	q string,
	fn func(pgx.Rows) error,
) error {
	rows, err := pool.Query(ctx, q)
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

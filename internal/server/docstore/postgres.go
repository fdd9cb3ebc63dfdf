package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/dbx"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresStore keeps every document as a JSONB row of the documents table.
// Times are stored as RFC 3339 strings inside the JSON; Document.Time and
// AsTime accept both forms.
type PostgresStore struct {
	db   *sql.DB
	opts options
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(db *sql.DB, opts ...Option) *PostgresStore {
	return &PostgresStore{db: db, opts: buildOptions(opts)}
}

// OpenPostgres opens a pgx-backed *sql.DB and verifies it with a ping.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return db, nil
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded schema migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, path string) (*Document, error) {
	ref, err := ParseDocumentPath(path)
	if err != nil {
		return nil, err
	}

	var raw []byte
	err = s.db.QueryRowContext(ctx, `SELECT data FROM documents WHERE path = $1`, path).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &Document{Path: path, ID: ref.ID, Fields: fields}, nil
}

func (s *PostgresStore) Set(ctx context.Context, path string, fields map[string]any, mode WriteMode) error {
	ref, err := ParseDocumentPath(path)
	if err != nil {
		return err
	}
	now := s.opts.commitTime()
	data, err := encodeFields(fields, now)
	if err != nil {
		return err
	}

	query := `INSERT INTO documents (path, parent, collection, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4::jsonb, $5, $5)
		ON CONFLICT (path) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`
	if mode == Merge {
		query = `INSERT INTO documents (path, parent, collection, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4::jsonb, $5, $5)
		ON CONFLICT (path) DO UPDATE SET data = documents.data || EXCLUDED.data, updated_at = EXCLUDED.updated_at`
	}

	if _, err := s.db.ExecContext(ctx, query, ref.Path, ref.Parent, ref.Collection, data, now); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *PostgresStore) Create(ctx context.Context, path string, fields map[string]any) error {
	ref, err := ParseDocumentPath(path)
	if err != nil {
		return err
	}
	return s.insert(ctx, ref, fields)
}

func (s *PostgresStore) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	ref, err := ParseCollectionPath(collection, s.opts.newID())
	if err != nil {
		return "", err
	}
	if err := s.insert(ctx, ref, fields); err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (s *PostgresStore) insert(ctx context.Context, ref Ref, fields map[string]any) error {
	now := s.opts.commitTime()
	data, err := encodeFields(fields, now)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO documents (path, parent, collection, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4::jsonb, $5, $5)
		ON CONFLICT (path) DO NOTHING`, ref.Path, ref.Parent, ref.Collection, data, now)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	n, err := dbx.RowsAffected(res)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorAlreadyExists
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, path string, fields map[string]any) error {
	if err := requireFields(fields); err != nil {
		return err
	}
	now := s.opts.commitTime()
	data, err := encodeFields(fields, now)
	if err != nil {
		return err
	}
	return s.exec(ctx, s.db, path,
		`UPDATE documents SET data = data || $2::jsonb, updated_at = $3 WHERE path = $1`,
		path, data, now)
}

func (s *PostgresStore) ArrayAppend(ctx context.Context, path, field string, entry any) error {
	if err := requireField(field); err != nil {
		return err
	}
	now := s.opts.commitTime()
	c, err := canonical(entry, now)
	if err != nil {
		return err
	}
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorInvalidArgument, err)
	}
	return s.exec(ctx, s.db, path,
		`UPDATE documents
		SET data = jsonb_set(data, ARRAY[$2::text], COALESCE(data -> $2::text, '[]'::jsonb) || jsonb_build_array($3::jsonb)),
		    updated_at = $4
		WHERE path = $1`,
		path, field, string(data), now)
}

func (s *PostgresStore) ArrayReplace(ctx context.Context, path, field string, values []any) error {
	if err := requireField(field); err != nil {
		return err
	}
	now := s.opts.commitTime()
	c, err := canonicalArray(values, now)
	if err != nil {
		return err
	}
	return s.replaceArray(ctx, s.db, path, field, c)
}

// ArrayRemoveWhere locks the row, filters the array and writes it back
// inside one transaction.
func (s *PostgresStore) ArrayRemoveWhere(ctx context.Context, path, field string, match map[string]any) error {
	if err := requireField(field); err != nil {
		return err
	}
	if err := requireMatch(match); err != nil {
		return err
	}
	if _, err := ParseDocumentPath(path); err != nil {
		return err
	}
	m, err := jsonCanonical(match, s.opts.commitTime())
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var raw []byte
		err := tx.QueryRowContext(ctx, `SELECT data FROM documents WHERE path = $1 FOR UPDATE`, path).Scan(&raw)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return common.ErrorNotFound
			}
			return fmt.Errorf("db error: %w", err)
		}

		doc := map[string]any{}
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
		arr, err := arrayField(doc, field)
		if err != nil {
			return err
		}
		return s.replaceArray(ctx, tx, path, field, filterOut(arr, m))
	})
}

func (s *PostgresStore) Close(ctx context.Context) error {
	return s.db.Close()
}

func (s *PostgresStore) replaceArray(ctx context.Context, db dbx.DBTX, path, field string, values []any) error {
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorInvalidArgument, err)
	}
	return s.exec(ctx, db, path,
		`UPDATE documents SET data = jsonb_set(data, ARRAY[$2::text], $3::jsonb), updated_at = $4 WHERE path = $1`,
		path, field, string(data), s.opts.commitTime())
}

// exec runs a single-row UPDATE and maps zero affected rows to NotFound.
func (s *PostgresStore) exec(ctx context.Context, db dbx.DBTX, path, query string, args ...any) error {
	if _, err := ParseDocumentPath(path); err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := dbx.RowsAffected(res)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func encodeFields(fields map[string]any, now time.Time) (string, error) {
	c, err := canonicalFields(fields, now)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorInvalidArgument, err)
	}
	return string(b), nil
}

// jsonCanonical canonicalizes fields into the form json.Unmarshal produces,
// so they compare equal to values read back from the table.
func jsonCanonical(fields map[string]any, now time.Time) (map[string]any, error) {
	data, err := encodeFields(fields, now)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return nil, err
	}
	return out, nil
}

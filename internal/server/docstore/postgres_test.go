package docstore

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgresWithMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	s := NewPostgresStore(db,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { return "gen-1" }),
	)
	return s, mock
}

func q(s string) string { return regexp.QuoteMeta(s) }

func TestPostgresStore_Get(t *testing.T) {
	s, mock := newPostgresWithMock(t)

	mock.ExpectQuery(q(`SELECT data FROM documents WHERE path = $1`)).
		WithArgs("users/u1/pantry/p1").
		WillReturnRows(sqlmock.NewRows([]string{"data"}).
			AddRow([]byte(`{"name":"Oats","calories":150,"createdAt":"2024-05-04T10:30:00Z"}`)))

	doc, err := s.Get(context.Background(), "users/u1/pantry/p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", doc.ID)
	assert.Equal(t, "Oats", doc.String("name"))
	assert.Equal(t, 150.0, doc.Float("calories"))
	assert.True(t, doc.Time("createdAt").Equal(fixedNow))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetNotFound(t *testing.T) {
	s, mock := newPostgresWithMock(t)

	mock.ExpectQuery(q(`SELECT data FROM documents WHERE path = $1`)).
		WithArgs("users/u1").
		WillReturnRows(sqlmock.NewRows([]string{"data"}))

	_, err := s.Get(context.Background(), "users/u1")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgresStore_GetDBError(t *testing.T) {
	s, mock := newPostgresWithMock(t)

	mock.ExpectQuery(q(`SELECT data FROM documents`)).
		WillReturnError(errors.New("db down"))

	_, err := s.Get(context.Background(), "users/u1")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestPostgresStore_Create(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "inserted", affected: 1},
		{name: "exists", affected: 0, wantErr: common.ErrorAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newPostgresWithMock(t)

			mock.ExpectExec(q(`ON CONFLICT (path) DO NOTHING`)).
				WithArgs("users/u1", "", "users", `{"email":"a@x","onboarded":false}`, fixedNow).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := s.Create(context.Background(), "users/u1", map[string]any{"email": "a@x", "onboarded": false})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresStore_Add(t *testing.T) {
	s, mock := newPostgresWithMock(t)

	mock.ExpectExec(q(`INSERT INTO documents`)).
		WithArgs("users/u1/shoppingLists/gen-1", "users/u1", "shoppingLists",
			`{"createdAt":"2024-05-04T10:30:00Z","items":[],"title":"Weekly"}`, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := s.Add(context.Background(), "users/u1/shoppingLists", map[string]any{
		"title": "Weekly", "items": []any{}, "createdAt": ServerTimestamp,
	})
	require.NoError(t, err)
	assert.Equal(t, "gen-1", id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Set(t *testing.T) {
	s, mock := newPostgresWithMock(t)

	mock.ExpectExec(q(`DO UPDATE SET data = EXCLUDED.data`)).
		WithArgs("users/u1", "", "users", `{"email":"a@x"}`, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q(`DO UPDATE SET data = documents.data || EXCLUDED.data`)).
		WithArgs("users/u1", "", "users", `{"onboarded":true}`, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "users/u1", map[string]any{"email": "a@x"}, Overwrite))
	require.NoError(t, s.Set(ctx, "users/u1", map[string]any{"onboarded": true}, Merge))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateNotFound(t *testing.T) {
	s, mock := newPostgresWithMock(t)

	mock.ExpectExec(q(`UPDATE documents SET data = data || $2::jsonb, updated_at = $3 WHERE path = $1`)).
		WithArgs("users/u1/pantry/p1", `{"calories":10}`, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Update(context.Background(), "users/u1/pantry/p1", map[string]any{"calories": 10})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgresStore_ArrayAppend(t *testing.T) {
	s, mock := newPostgresWithMock(t)

	mock.ExpectExec(q(`jsonb_build_array($3::jsonb)`)).
		WithArgs("users/u1/shoppingLists/l1", "items",
			`{"addedAt":"2024-05-04T10:30:00Z","itemName":"milk","quantity":2}`, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.ArrayAppend(context.Background(), "users/u1/shoppingLists/l1", "items",
		map[string]any{"itemName": "milk", "quantity": 2, "addedAt": ServerTimestamp})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ArrayRemoveWhere(t *testing.T) {
	s, mock := newPostgresWithMock(t)
	path := "users/u1/shoppingLists/l1"

	mock.ExpectBegin()
	mock.ExpectQuery(q(`SELECT data FROM documents WHERE path = $1 FOR UPDATE`)).
		WithArgs(path).
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow([]byte(
			`{"title":"Weekly","items":[{"itemName":"milk","quantity":2},{"itemName":"eggs","quantity":12},{"itemName":"milk","quantity":1}]}`)))
	mock.ExpectExec(q(`jsonb_set(data, ARRAY[$2::text], $3::jsonb)`)).
		WithArgs(path, "items", `[{"itemName":"eggs","quantity":12}]`, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.ArrayRemoveWhere(context.Background(), path, "items", map[string]any{"itemName": "milk"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ArrayRemoveWhereNotFound(t *testing.T) {
	s, mock := newPostgresWithMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q(`FOR UPDATE`)).WillReturnRows(sqlmock.NewRows([]string{"data"}))
	mock.ExpectRollback()

	err := s.ArrayRemoveWhere(context.Background(), "users/u1/shoppingLists/nope", "items", map[string]any{"itemName": "milk"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations(t *testing.T) {
	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	var gotDir string
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}
	require.NoError(t, RunMigrations(context.Background(), nil))
	assert.Equal(t, ".", gotDir)

	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	err := RunMigrations(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

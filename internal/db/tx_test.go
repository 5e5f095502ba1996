package db

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE levels (id INTEGER PRIMARY KEY, level INTEGER NOT NULL)`)
	require.NoError(t, err)
	return db
}

func countRows(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM levels`).Scan(&n))
	return n
}

func TestWithTx(t *testing.T) {
	failure := errors.New("write refused")
	tests := []struct {
		name    string
		fn      func(tx *sql.Tx) error
		wantErr error
		want    int
	}{
		{
			name: "commits",
			fn: func(tx *sql.Tx) error {
				_, err := tx.Exec(`INSERT INTO levels (level) VALUES (80), (40)`)
				return err
			},
			want: 2,
		},
		{
			name: "rolls back on error",
			fn: func(tx *sql.Tx) error {
				if _, err := tx.Exec(`INSERT INTO levels (level) VALUES (80)`); err != nil {
					return err
				}
				return failure
			},
			wantErr: failure,
			want:    0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)

			err := WithTx(db, tt.fn)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, countRows(t, db))
		})
	}
}

func TestExec_AllOrNothing(t *testing.T) {
	db := setupTestDB(t)

	err := Exec(db,
		`INSERT INTO levels (level) VALUES (10)`,
		`INSERT INTO missing_table (level) VALUES (20)`,
	)

	require.Error(t, err)
	assert.Zero(t, countRows(t, db))

	require.NoError(t, Exec(db,
		`INSERT INTO levels (level) VALUES (10)`,
		`INSERT INTO levels (level) VALUES (20)`,
	))
	assert.Equal(t, 2, countRows(t, db))
}

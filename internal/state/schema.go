package state

import (
	"database/sql"
	"fmt"

	"github.com/llehouerou/handoff/internal/db"
)

const currentSchemaVersion = 1

func initSchema(conn *sql.DB) error {
	return db.Exec(conn,
		`CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)`,
		`CREATE TABLE IF NOT EXISTS mixer_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			volume INTEGER NOT NULL,
			muted INTEGER NOT NULL DEFAULT 0,
			updated_at INTEGER NOT NULL
		)`,
		fmt.Sprintf(`INSERT OR IGNORE INTO schema_version (version) VALUES (%d)`, currentSchemaVersion),
	)
}

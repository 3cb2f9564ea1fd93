// Package sqliteext registers a sqlite driver whose lower() folds the
// full Unicode range. sqlite's built-in lower() only folds ASCII, which
// breaks case-insensitive search over the Cyrillic legacy data; the
// connect hook replaces it with Go's strings.ToLower so LOWER LIKE
// behaves the same as on postgres.
package sqliteext

import (
	"database/sql"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// DriverName is the database/sql driver name to open connections with.
const DriverName = "sqlite3_unicode"

func init() {
	sql.Register(DriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", strings.ToLower, true)
		},
	})
}

package database

import (
	"database/sql"
	"strings"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SQLiteDriverName is a go-sqlite3 driver whose connections replace the
// built-in lower() and upper(), which only fold ASCII, with Unicode case
// mapping. Recipe search relies on LOWER behaving as it does on PostgreSQL.
const SQLiteDriverName = "sqlite3_unicode"

func init() {
	sql.Register(SQLiteDriverName, &sqlite3.SQLiteDriver{ConnectHook: registerCaseFolding})
}

func registerCaseFolding(conn *sqlite3.SQLiteConn) error {
	if err := conn.RegisterFunc("lower", foldWith(strings.ToLower), true); err != nil {
		return err
	}
	return conn.RegisterFunc("upper", foldWith(strings.ToUpper), true)
}

// foldWith adapts fold to SQLite values. NULL stays NULL and non-text
// values pass through.
func foldWith(fold func(string) string) func(any) any {
	return func(v any) any {
		switch s := v.(type) {
		case string:
			return fold(s)
		case []byte:
			if s == nil {
				return nil
			}
			return fold(string(s))
		default:
			return v
		}
	}
}

// OpenSQLite returns a GORM dialector for dsn on the Unicode-aware driver.
func OpenSQLite(dsn string) gorm.Dialector {
	return &sqlite.Dialector{DriverName: SQLiteDriverName, DSN: dsn}
}

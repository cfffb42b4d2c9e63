package shared

import (
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed sql/schema.sql
var schemaSQL string

// EnsureSchema applies the embedded library schema to the database.
//
// Every statement in the schema is idempotent, so this is safe to call on
// both fresh and existing databases. Versioned migrations are deliberately
// not used; the index can always be rebuilt from a library scan.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

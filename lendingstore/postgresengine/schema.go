package postgresengine

import (
	"context"
	"fmt"
)

// EnsureSchema creates the members, books and borrowed_books tables when
// they do not exist yet. This is a startup bootstrap, not a migration
// mechanism; schema evolution is out of scope.
func (s Store) EnsureSchema(ctx context.Context) error {
	for _, ddl := range s.schemaStatements() {
		if _, err := s.db.Exec(ctx, ddl); err != nil {
			s.logError(logMsgDBExecFailed, err, logAttrQuery, ddl)
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	s.logOperation("schema ensured")

	return nil
}

func (s Store) schemaStatements() []string {
	if s.dialect == DialectSQLite {
		return []string{
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				code TEXT NOT NULL DEFAULT '',
				name TEXT NOT NULL DEFAULT '',
				borrowed_books INTEGER NOT NULL DEFAULT 0,
				is_penalized BOOLEAN NOT NULL DEFAULT FALSE,
				penalty_end_date TIMESTAMP NULL
			)`, s.tables.Members),
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				code TEXT NOT NULL DEFAULT '',
				title TEXT NOT NULL,
				author TEXT NOT NULL DEFAULT '',
				stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0)
			)`, s.tables.Books),
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				member_id INTEGER NOT NULL REFERENCES %s (id),
				book_id INTEGER NOT NULL REFERENCES %s (id),
				start_date TIMESTAMP NOT NULL,
				end_date TIMESTAMP NOT NULL,
				is_returned BOOLEAN NOT NULL DEFAULT FALSE,
				return_date TIMESTAMP NULL
			)`, s.tables.BorrowedBooks, s.tables.Members, s.tables.Books),
		}
	}

	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id BIGSERIAL PRIMARY KEY,
			code TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL DEFAULT '',
			borrowed_books INTEGER NOT NULL DEFAULT 0,
			is_penalized BOOLEAN NOT NULL DEFAULT FALSE,
			penalty_end_date DATE NULL
		)`, s.tables.Members),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id BIGSERIAL PRIMARY KEY,
			code TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL,
			author TEXT NOT NULL DEFAULT '',
			stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0)
		)`, s.tables.Books),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id UUID PRIMARY KEY,
			member_id BIGINT NOT NULL REFERENCES %s (id),
			book_id BIGINT NOT NULL REFERENCES %s (id),
			start_date DATE NOT NULL,
			end_date DATE NOT NULL,
			is_returned BOOLEAN NOT NULL DEFAULT FALSE,
			return_date DATE NULL
		)`, s.tables.BorrowedBooks, s.tables.Members, s.tables.Books),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_member_active ON %s (member_id) WHERE is_returned = FALSE`,
			s.tables.BorrowedBooks, s.tables.BorrowedBooks),
	}
}

// Package migrations owns the database schema lifecycle. The SQL migration
// files are embedded so both the server and the migrate CLI carry them, and
// the explicit schema registry is used to verify the migration set covers
// every registered table before anything is applied.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/dukalink/duka_api/internal/models"
)

//go:embed sql/*.sql
var files embed.FS

// migrationFile is one embedded up migration, ordered by version.
type migrationFile struct {
	Version int
	Name    string
	SQL     string
}

// upFiles returns the embedded up migrations sorted by version.
func upFiles() ([]migrationFile, error) {
	entries, err := files.ReadDir("sql")
	if err != nil {
		return nil, err
	}

	var out []migrationFile
	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		verStr, _, ok := strings.Cut(name, "_")
		if !ok {
			return nil, fmt.Errorf("malformed migration filename %q", name)
		}
		version, err := strconv.Atoi(verStr)
		if err != nil {
			return nil, fmt.Errorf("malformed migration version in %q: %w", name, err)
		}
		body, err := files.ReadFile("sql/" + name)
		if err != nil {
			return nil, err
		}
		out = append(out, migrationFile{Version: version, Name: name, SQL: string(body)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// verifyCoverage checks that every table in the registry is created by the
// migration set. The registry is the single source of truth for entities;
// a table registered there but absent from the migrations is a bug.
func verifyCoverage(reg *models.SchemaRegistry) error {
	ups, err := upFiles()
	if err != nil {
		return err
	}

	var all strings.Builder
	for _, f := range ups {
		all.WriteString(f.SQL)
	}
	ddl := all.String()

	for _, table := range reg.Tables() {
		if !strings.Contains(ddl, "CREATE TABLE "+table.Name+" (") {
			return fmt.Errorf("registered table %q is not created by any migration", table.Name)
		}
	}
	return nil
}

// Apply runs all pending migrations against the given database over its
// single connection pool. Each migration runs in its own transaction; a
// failing migration is rolled back and the underlying error surfaced, so no
// partial schema change persists.
func Apply(db *sql.DB, reg *models.SchemaRegistry) error {
	if err := verifyCoverage(reg); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	src, err := iofs.New(files, "sql")
	if err != nil {
		return fmt.Errorf("migration failed: could not read embedded migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("migration failed: could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("migration failed: could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// Script renders the full migration set as one transactional SQL script for
// offline review or manual application, without connecting to a database.
// The script records versions in schema_migrations the same way the online
// path does, so a later online run sees the schema as up to date.
func Script(reg *models.SchemaRegistry) (string, error) {
	if err := verifyCoverage(reg); err != nil {
		return "", fmt.Errorf("migration failed: %w", err)
	}

	ups, err := upFiles()
	if err != nil {
		return "", fmt.Errorf("migration failed: could not read embedded migrations: %w", err)
	}
	if len(ups) == 0 {
		return "", fmt.Errorf("migration failed: no migrations found")
	}

	var b strings.Builder
	b.WriteString("BEGIN;\n\n")
	b.WriteString("CREATE TABLE IF NOT EXISTS schema_migrations (\n")
	b.WriteString("    version BIGINT NOT NULL PRIMARY KEY,\n")
	b.WriteString("    dirty BOOLEAN NOT NULL\n")
	b.WriteString(");\n\n")

	for _, f := range ups {
		fmt.Fprintf(&b, "-- %s\n", f.Name)
		b.WriteString(strings.TrimRight(f.SQL, "\n"))
		b.WriteString("\n\n")
	}

	last := ups[len(ups)-1].Version
	b.WriteString("DELETE FROM schema_migrations;\n")
	fmt.Fprintf(&b, "INSERT INTO schema_migrations (version, dirty) VALUES (%d, false);\n\n", last)
	b.WriteString("COMMIT;\n")
	return b.String(), nil
}

package db

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type sqlMigration struct {
	Version string
	Name    string
	SQL     string
}

// migrationRunner applies forward-only NNNN_name.sql files in version order
// and records each one in schema_migrations.
type migrationRunner struct {
	database *gorm.DB
	files    fs.FS
	logger   logrus.FieldLogger
}

func (runner *migrationRunner) apply() error {
	const createTableSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`
	if err := runner.database.Exec(createTableSQL).Error; err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	migrations, err := loadSQLMigrations(runner.files)
	if err != nil {
		return err
	}

	var versions []string
	if err := runner.database.Table("schema_migrations").Pluck("version", &versions).Error; err != nil {
		return fmt.Errorf("load applied migration versions: %w", err)
	}
	applied := make(map[string]bool, len(versions))
	for _, version := range versions {
		applied[version] = true
	}

	for _, migration := range migrations {
		if applied[migration.Version] {
			continue
		}
		if err := runner.applyOne(migration); err != nil {
			return err
		}
		runner.logger.WithField("migration", migration.Name).Info("applied migration")
	}
	return nil
}

// applyOne runs every statement of a migration and its bookkeeping row in a
// single transaction, so a failing statement leaves nothing behind.
func (runner *migrationRunner) applyOne(migration sqlMigration) error {
	statements := splitSQLStatements(migration.SQL)
	if len(statements) == 0 {
		return fmt.Errorf("migration %s has no SQL statements", migration.Name)
	}

	return runner.database.Transaction(func(tx *gorm.DB) error {
		for _, statement := range statements {
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("execute migration %s statement %q: %w", migration.Name, statement, err)
			}
		}
		if err := tx.Exec(
			`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`,
			migration.Version,
			migration.Name,
		).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", migration.Name, err)
		}
		return nil
	})
}

// loadSQLMigrations reads *.sql files whose name starts with a zero-padded
// numeric version, sorted by file name.
func loadSQLMigrations(files fs.FS) ([]sqlMigration, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	migrations := make([]sqlMigration, 0, len(names))
	seen := make(map[string]string, len(names))
	for _, name := range names {
		version, _, ok := strings.Cut(name, "_")
		if !ok || !isMigrationVersion(version) {
			continue
		}
		if existing, exists := seen[version]; exists {
			return nil, fmt.Errorf("duplicate migration version %s in %s and %s", version, existing, name)
		}
		seen[version] = name

		raw, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		migrations = append(migrations, sqlMigration{Version: version, Name: name, SQL: string(raw)})
	}
	return migrations, nil
}

func isMigrationVersion(version string) bool {
	if version == "" {
		return false
	}
	for _, char := range version {
		if char < '0' || char > '9' {
			return false
		}
	}
	return true
}

// splitSQLStatements splits on semicolons; migrations must not carry
// semicolons inside string literals.
func splitSQLStatements(sqlText string) []string {
	var statements []string
	for _, part := range strings.Split(sqlText, ";") {
		var kept []string
		for _, line := range strings.Split(part, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "--") {
				continue
			}
			kept = append(kept, line)
		}
		if statement := strings.TrimSpace(strings.Join(kept, "\n")); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

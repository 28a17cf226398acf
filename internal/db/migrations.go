package db

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	embeddedmigrations "github.com/terraincognita07/teachflow/migrations"
	"gorm.io/gorm"
)

var (
	migrationNamePattern = regexp.MustCompile(`^(\d+)_[^/]*\.sql$`)
	addColumnPattern     = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+(\S+)\s+ADD\s+COLUMN\s+(\S+)`)
)

type embeddedMigration struct {
	Version string
	Order   int
	Name    string
	SQL     string
}

type schemaMigration struct {
	Version   string    `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}

func (schemaMigration) TableName() string {
	return "schema_migrations"
}

// applyEmbeddedMigrations runs the pending migrations in version order, each in
// its own transaction, and returns the names of the ones applied.
func applyEmbeddedMigrations(database *gorm.DB) ([]string, error) {
	if err := database.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`).Error; err != nil {
		return nil, fmt.Errorf("create schema_migrations table: %w", err)
	}

	pending, err := loadEmbeddedMigrations(embeddedmigrations.Files)
	if err != nil {
		return nil, err
	}

	var done []string
	if err := database.Model(&schemaMigration{}).Pluck("version", &done).Error; err != nil {
		return nil, fmt.Errorf("load applied migration versions: %w", err)
	}

	var applied []string
	for _, migration := range pending {
		if slices.Contains(done, migration.Version) {
			continue
		}
		if err := database.Transaction(func(tx *gorm.DB) error {
			return runMigration(tx, migration)
		}); err != nil {
			return applied, err
		}
		applied = append(applied, migration.Name)
	}
	return applied, nil
}

func loadEmbeddedMigrations(files fs.FS) ([]embeddedMigration, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("read embedded migrations: %w", err)
	}

	byVersion := make(map[string]string, len(names))
	var migrations []embeddedMigration
	for _, name := range names {
		match := migrationNamePattern.FindStringSubmatch(path.Base(name))
		if match == nil {
			continue
		}
		version := match[1]
		if previous, ok := byVersion[version]; ok {
			return nil, fmt.Errorf("duplicate migration version %s in %s and %s", version, previous, name)
		}
		byVersion[version] = name

		order, err := strconv.Atoi(version)
		if err != nil {
			return nil, fmt.Errorf("parse migration version from %s: %w", name, err)
		}
		body, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		migrations = append(migrations, embeddedMigration{Version: version, Order: order, Name: name, SQL: string(body)})
	}

	slices.SortFunc(migrations, func(a, b embeddedMigration) int {
		if a.Order != b.Order {
			return a.Order - b.Order
		}
		return strings.Compare(a.Name, b.Name)
	})
	return migrations, nil
}

func runMigration(tx *gorm.DB, migration embeddedMigration) error {
	statements := splitSQLStatements(migration.SQL)
	if len(statements) == 0 {
		return errors.New("migration has no SQL statements")
	}

	for _, statement := range statements {
		skip, err := columnAlreadyAdded(tx, statement)
		if err != nil {
			return fmt.Errorf("inspect migration %s: %w", migration.Name, err)
		}
		if skip {
			continue
		}
		if err := tx.Exec(statement).Error; err != nil {
			return fmt.Errorf("execute migration %s statement %q: %w", migration.Name, statement, err)
		}
	}

	record := schemaMigration{Version: migration.Version, Name: migration.Name, AppliedAt: time.Now().UTC()}
	if err := tx.Create(&record).Error; err != nil {
		return fmt.Errorf("record migration %s: %w", migration.Name, err)
	}
	return nil
}

// splitSQLStatements splits on ';'. Migration files must not contain semicolons inside literals.
func splitSQLStatements(sqlText string) []string {
	var statements []string
	for part := range strings.SplitSeq(sqlText, ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

// columnAlreadyAdded lets ADD COLUMN statements replay against databases that
// already have the column.
func columnAlreadyAdded(database *gorm.DB, statement string) (bool, error) {
	match := addColumnPattern.FindStringSubmatch(strings.TrimSpace(statement))
	if match == nil {
		return false, nil
	}
	return tableColumnExists(database, unquoteIdentifier(match[1]), unquoteIdentifier(match[2]))
}

func tableColumnExists(database *gorm.DB, table string, column string) (bool, error) {
	var columns []string
	if err := database.Raw(`SELECT name FROM pragma_table_info(?)`, table).Scan(&columns).Error; err != nil {
		return false, fmt.Errorf("load columns of %s: %w", table, err)
	}
	return slices.ContainsFunc(columns, func(name string) bool {
		return strings.EqualFold(name, column)
	}), nil
}

func unquoteIdentifier(identifier string) string {
	return strings.Trim(strings.TrimSpace(identifier), "\"`[]")
}

package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func OpenSQLite(dbPath string, log zerolog.Logger) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", dbPath)
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		Logger: gormlogger.New(
			gormLogWriter{log: log.With().Str("component", "gorm").Logger()},
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	applied, err := applyEmbeddedMigrations(database)
	if err != nil {
		return nil, fmt.Errorf("apply embedded migrations: %w", err)
	}
	for _, name := range applied {
		log.Info().Str("migration", name).Msg("applied migration")
	}

	return database, nil
}

type gormLogWriter struct {
	log zerolog.Logger
}

func (writer gormLogWriter) Printf(format string, args ...any) {
	writer.log.Warn().Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

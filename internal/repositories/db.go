// Package repositories is the relational side of the ledger: it opens the
// database, migrates the schema, hydrates the in-memory store and mirrors
// settled balances back into tables.
package repositories

import (
	"fmt"
	"strings"
	"time"

	"welfare/internal/models"

	"github.com/glebarez/sqlite"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// DBConfig holds database connection pool configuration
type DBConfig struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

var dbConfig = DBConfig{
	MaxIdleConns:    10,
	MaxOpenConns:    100,
	ConnMaxLifetime: time.Hour,
	ConnMaxIdleTime: time.Minute * 30,
}

func newGormLogger() logger.Interface {
	return logger.New(
		log.StandardLogger(),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// Open connects to the database named by dsn. Postgres DSNs go through the
// pgx driver, everything else is treated as a sqlite path.
func Open(dsn string) (*gorm.DB, error) {
	trimmed := strings.TrimSpace(dsn)
	if trimmed == "" {
		return nil, fmt.Errorf("db: empty dsn")
	}

	var dialector gorm.Dialector
	dialect := DetectDialect(trimmed)
	switch dialect {
	case DialectPostgres:
		dialector = postgres.Open(trimmed)
	default:
		dialector = sqlite.Open(trimmed)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: newGormLogger()})
	if err != nil {
		return nil, fmt.Errorf("db: open %s: %w", dialect, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db: sql handle: %w", err)
	}
	if dialect == DialectSQLite {
		// sqlite serialises writers; a single connection avoids SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(dbConfig.MaxIdleConns)
		sqlDB.SetMaxOpenConns(dbConfig.MaxOpenConns)
		sqlDB.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)
		sqlDB.SetConnMaxIdleTime(dbConfig.ConnMaxIdleTime)
	}

	log.WithField("dialect", dialect).Info("database connected")
	return db, nil
}

// DetectDialect infers the dialect from a DSN string.
func DetectDialect(dsn string) string {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	switch {
	case strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://"):
		return DialectPostgres
	case strings.Contains(lower, "host=") || strings.Contains(lower, "user=") ||
		strings.Contains(lower, "dbname=") || strings.Contains(lower, "sslmode="):
		return DialectPostgres
	default:
		return DialectSQLite
	}
}

// Migrate creates or updates the ledger tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Company{},
		&models.Employee{},
		&models.Partner{},
		&models.Service{},
		&models.Transaction{},
	)
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// File: internal/database/database.go
package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/iyunix/go-workshopchat/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Options struct {
	Driver string
	DSN    string
	// MaxOpenConns of 0 leaves the driver default.
	MaxOpenConns int
	// Verbose enables gorm's SQL logging.
	Verbose bool
}

// Open connects with error translation on, so unique index violations
// surface as gorm.ErrDuplicatedKey, and with UTC timestamps.
func Open(opts Options) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(opts.Driver) {
	case "", DriverSQLite:
		dialector = sqlite.Open(sqliteDSN(opts.DSN))
	case DriverPostgres:
		dialector = postgres.Open(opts.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}

	logLevel := gormlogger.Silent
	if opts.Verbose {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		Logger:         gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", opts.Driver, err)
	}

	if opts.MaxOpenConns > 0 {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	return db, nil
}

// Migrate creates the chat tables. The directory tables (providers, parents,
// workshops) belong to other services and are only created when withDirectory
// is set, for local development and tests.
func Migrate(db *gorm.DB, withDirectory bool) error {
	models := []interface{}{&domain.ChatRoom{}, &domain.ChatMessage{}}
	if withDirectory {
		models = append(models, &domain.Provider{}, &domain.Parent{}, &domain.Workshop{})
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func sqliteDSN(dsn string) string {
	if dsn == "" {
		dsn = "workshop_chat.db"
	}
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
}

package db

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rent-server/entities"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Options selects and configures the backing database.
type Options struct {
	Driver string
	// DSN is a postgres URL or key/value string, or a sqlite file path.
	DSN   string
	Debug bool
}

// Models lists every table the server migrates.
var Models = []interface{}{
	&entities.User{},
	&entities.UserProfile{},
	&entities.Property{},
	&entities.Room{},
	&entities.Tenant{},
	&entities.UtilityAccount{},
	&entities.Expense{},
	&entities.Activity{},
}

// PostgresDSN builds a DSN from either a full URL or individual parameters.
func PostgresDSN(url, host, port, user, password, name string) (string, error) {
	if url != "" {
		dsn := url
		// hosted databases require TLS unless the URL says otherwise
		if !strings.Contains(dsn, "sslmode=") {
			if strings.Contains(dsn, "?") {
				dsn += "&sslmode=require"
			} else {
				dsn += "?sslmode=require"
			}
		}
		return dsn, nil
	}

	if host == "" || port == "" || user == "" || password == "" || name == "" {
		return "", fmt.Errorf("missing required database configuration: DB_URL or (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	sslMode := "require"
	if host == "localhost" || host == "127.0.0.1" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		host, user, password, name, port, sslMode), nil
}

func Connect(opts Options) (Database, error) {
	var dialector gorm.Dialector
	switch opts.Driver {
	case DriverSQLite:
		dialector = sqlite.Open(opts.DSN)
		logrus.WithField("path", opts.DSN).Info("connecting to sqlite database")
	case DriverPostgres, "":
		dialector = postgres.Open(opts.DSN)
		logrus.Info("connecting to postgres database")
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}

	level := logger.Warn
	if opts.Debug {
		level = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:      logger.Default.LogMode(level),
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if opts.Driver == DriverSQLite {
		// sqlite serializes writers; one connection keeps :memory: databases shared
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(0)
	}

	logrus.Info("database connection established, running migrations")
	if err := db.AutoMigrate(Models...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	logrus.Info("database migrations completed")

	return &GormDatabase{DB: db}, nil
}

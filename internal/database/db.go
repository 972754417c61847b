package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/config"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// DB pairs the pool with the driver name so repositories can write their
// queries once with "?" placeholders.
type DB struct {
	*sql.DB
	Driver string
}

// Open connects to the configured store and verifies the connection.
func Open(cfg config.Config) (*DB, error) {
	driver := strings.ToLower(cfg.DBDriver)
	dsn := cfg.DBURL
	if dsn == "" {
		var err error
		if dsn, err = buildDSN(driver, cfg); err != nil {
			return nil, err
		}
	} else if driver == DriverMySQL {
		var err error
		if dsn, err = withFoundRows(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{DB: db, Driver: driver}, nil
}

func buildDSN(driver string, cfg config.Config) (string, error) {
	switch driver {
	case DriverMySQL:
		auth := cfg.DBUser
		if cfg.DBPass != "" {
			auth = fmt.Sprintf("%s:%s", cfg.DBUser, cfg.DBPass)
		}
		port := cfg.DBPort
		if port == "" {
			port = "3306"
		}
		// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
		// clientFoundRows=true -> RowsAffected counts matched rows, not changed ones
		return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true",
			auth, cfg.DBHost, port, cfg.DBName), nil
	case DriverPostgres:
		port := cfg.DBPort
		if port == "" {
			port = "5432"
		}
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=require",
			cfg.DBHost, port, cfg.DBUser, cfg.DBPass, cfg.DBName), nil
	}
	return "", fmt.Errorf("unsupported DB_DRIVER %q", driver)
}

// withFoundRows turns on clientFoundRows for a caller-supplied MySQL DSN so
// status updates that change nothing still report the matched row.
func withFoundRows(dsn string) (string, error) {
	c, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	c.ClientFoundRows = true
	return c.FormatDSN(), nil
}

// Rebind rewrites "?" placeholders to "$1", "$2", ... for Postgres.  Question
// marks inside single-quoted literals are left alone.
func (d *DB) Rebind(query string) string {
	if d == nil || d.Driver != DriverPostgres {
		return query
	}
	return rebindDollar(query)
}

func rebindDollar(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case ch == '\'':
			inQuote = !inQuote
			b.WriteByte(ch)
		case ch == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

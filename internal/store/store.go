// Package store persists computed almanac days in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	almanac "github.com/litescript/ls-almanac"
	"github.com/litescript/ls-almanac/internal/calendar"
	"github.com/litescript/ls-almanac/internal/report"
)

// DB wraps sql.DB with almanac-specific queries.
type DB struct {
	*sql.DB
	logger *slog.Logger
}

// Key identifies whose days a row holds. Profiles that share a name but
// differ in position, offset or DST rule get separate rows.
type Key struct {
	Site     string
	Observer string
}

// KeyFor returns the key for days computed by a under the name site.
func KeyFor(site string, a *almanac.Almanac) Key {
	r := a.Rule()
	return Key{
		Site: site,
		Observer: fmt.Sprintf("%.6f,%.6f,%+d,%d/%d-%d/%d+%d",
			a.Latitude(), a.Longitude(), a.UTCOffset(),
			r.StartMonth, r.StartWeek, r.EndMonth, r.EndWeek, r.Advance),
	}
}

func (k Key) String() string {
	return k.Site + "@" + k.Observer
}

// Config holds database configuration options.
type Config struct {
	Path            string        // Path to SQLite database file, or ":memory:"
	MaxOpenConns    int           // SQLite allows a single writer
	ConnMaxLifetime time.Duration
}

// DefaultConfig returns defaults for a file-backed database at path.
func DefaultConfig(path string) Config {
	return Config{
		Path:            path,
		MaxOpenConns:    1,
		ConnMaxLifetime: time.Hour,
	}
}

// Open connects to the database and verifies the connection. The caller
// must Close it.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxOpenConns <= 0 {
		cfg.MaxOpenConns = 1
	}

	if dir := filepath.Dir(cfg.Path); cfg.Path != ":memory:" && dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	// WAL lets readers proceed while a write is in flight; busy_timeout
	// waits out a locked database instead of failing.
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000", cfg.Path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxOpenConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Debug("database connected", slog.String("path", cfg.Path))
	return &DB{DB: db, logger: logger}, nil
}

// WithTx runs fn in a transaction, committing if it returns nil.
func (db *DB) WithTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback after %v: %w", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Migrate applies pending migrations in version order and returns how many
// ran.
func (db *DB) Migrate(ctx context.Context) (int, error) {
	count := 0
	err := db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS schema_migrations (
				version INTEGER PRIMARY KEY,
				applied_at TEXT NOT NULL DEFAULT (datetime('now'))
			)`); err != nil {
			return fmt.Errorf("create schema_migrations table: %w", err)
		}

		applied := make(map[int]bool)
		rows, err := tx.QueryContext(ctx, "SELECT version FROM schema_migrations")
		if err != nil {
			return fmt.Errorf("query applied migrations: %w", err)
		}
		for rows.Next() {
			var v int
			if err := rows.Scan(&v); err != nil {
				rows.Close()
				return fmt.Errorf("scan migration version: %w", err)
			}
			applied[v] = true
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate migration versions: %w", err)
		}

		for version := 1; version <= len(migrations); version++ {
			if applied[version] {
				continue
			}
			db.logger.Debug("applying migration", slog.Int("version", version))
			if _, err := tx.ExecContext(ctx, migrations[version]); err != nil {
				return fmt.Errorf("execute migration %d: %w", version, err)
			}
			if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
				return fmt.Errorf("record migration %d: %w", version, err)
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// SaveDays upserts days under key, one row per date.
func (db *DB) SaveDays(ctx context.Context, key Key, days []report.Daily) error {
	return db.WithTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, upsertDay)
		if err != nil {
			return fmt.Errorf("prepare upsert: %w", err)
		}
		defer stmt.Close()

		for _, d := range days {
			_, err := stmt.ExecContext(ctx,
				key.Site, key.Observer, d.Date, d.Weekday, d.DayOfYear, d.DST,
				nullString(d.Sunrise), nullString(d.Sunset), d.SolarNoon, d.DaylightMins,
				d.MoonPhase, d.MoonName, d.Illumination, d.Season,
			)
			if err != nil {
				return fmt.Errorf("save %s %s: %w", key, d.Date, err)
			}
		}
		return nil
	})
}

// Days returns the days stored under key from from through to inclusive,
// ordered by date.
func (db *DB) Days(ctx context.Context, key Key, from, to calendar.Time) ([]report.Daily, error) {
	rows, err := db.QueryContext(ctx, selectDays, key.Site, key.Observer, from.DateString(), to.DateString())
	if err != nil {
		return nil, fmt.Errorf("query days: %w", err)
	}
	defer rows.Close()

	var days []report.Daily
	for rows.Next() {
		var (
			d             report.Daily
			sunrise, sset sql.NullString
		)
		if err := rows.Scan(
			&d.Site, &d.Date, &d.Weekday, &d.DayOfYear, &d.DST,
			&sunrise, &sset, &d.SolarNoon, &d.DaylightMins,
			&d.MoonPhase, &d.MoonName, &d.Illumination, &d.Season,
		); err != nil {
			return nil, fmt.Errorf("scan day: %w", err)
		}
		d.Sunrise = sunrise.String
		d.Sunset = sset.String
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate days: %w", err)
	}
	return days, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/mattn/go-sqlite3"
)

// sqliteStore keeps each slot as a row of the slots table. RunMigrations
// must have created the table before the store is used.
type sqliteStore struct {
	db *sql.DB
}

// openSQLite opens the slot database. A single connection is enough: slot
// writes are tiny and sqlite locks the whole file anyway.
func openSQLite(path string) (*sqliteStore, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	return &sqliteStore{db: db}, nil
}

// RunMigrations applies the slots schema at migrationsPath to the database
// at dbPath. Safe to run on every start.
func RunMigrations(dbPath, migrationsPath string) error {
	store, err := openSQLite(dbPath)
	if err != nil {
		return err
	}
	driver, err := migratesqlite.WithInstance(store.db, &migratesqlite.Config{})
	if err != nil {
		_ = store.db.Close()
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite3",
		driver,
	)
	if err != nil {
		_ = store.db.Close()
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func (s *sqliteStore) Slot(name string) Slot {
	return &sqliteSlot{db: s.db, name: name}
}

func (s *sqliteStore) Close() error { return s.db.Close() }

type sqliteSlot struct {
	db   *sql.DB
	name string
}

func (s *sqliteSlot) Load(ctx context.Context) ([]byte, bool, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE name = ?`, s.name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *sqliteSlot) Save(ctx context.Context, data []byte) error {
	return withTx(s.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO slots (name, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			s.name, data, now())
		return err
	})
}

func (s *sqliteSlot) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM slots WHERE name = ?`, s.name)
	return err
}

// withTx runs fn in a transaction.
func withTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// now returns UTC time truncated to seconds, matching sqlite's timestamp
// grain in updated_at.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

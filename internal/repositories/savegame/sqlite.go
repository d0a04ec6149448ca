package savegame

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.

	"github.com/KirkDiggler/verb-battle/internal/errors"
	"github.com/KirkDiggler/verb-battle/internal/pkg/clock"
)

// SQLiteConfig contains configuration for the SQLite save repository
type SQLiteConfig struct {
	Path  string
	Clock clock.Clock
}

// Validate validates the SQLiteConfig
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Path == "" {
		return errors.InvalidArgument("path cannot be empty")
	}
	return nil
}

// SQLiteRepository stores saves in a local SQLite database
type SQLiteRepository struct {
	db    *sql.DB
	clock clock.Clock
}

// NewSQLite opens or creates the database at cfg.Path and applies migrations
func NewSQLite(cfg *SQLiteConfig) (*SQLiteRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create save directory")
	}
	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open save database")
	}
	// a single connection keeps writes serialized
	db.SetMaxOpenConns(1)

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	repo := &SQLiteRepository{db: db, clock: c}
	if err := repo.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			_ = cerr
		}
		return nil, err
	}
	return repo, nil
}

// Close closes the underlying database
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS saves (
			slot TEXT PRIMARY KEY,
			version INTEGER NOT NULL,
			data TEXT NOT NULL,
			saved_at TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.Exec(stmt); err != nil {
			return errors.Wrapf(err, "failed to migrate save database")
		}
	}
	return nil
}

// Save implements Repository
func (r *SQLiteRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	now := r.clock.Now().UTC()
	data, err := encodeForSave(input, now)
	if err != nil {
		return nil, err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO saves (slot, version, data, saved_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET version = excluded.version, data = excluded.data, saved_at = excluded.saved_at`,
		input.Slot, CurrentVersion, string(data), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save slot %s", input.Slot)
	}

	slog.DebugContext(ctx, "game saved", "slot", input.Slot, "storage", "sqlite")
	return &SaveOutput{SavedAt: now}, nil
}

// Load implements Repository
func (r *SQLiteRepository) Load(ctx context.Context, input LoadInput) (*LoadOutput, error) {
	if input.Slot == "" {
		return nil, errors.InvalidArgument(errSlotEmpty)
	}

	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM saves WHERE slot = ?`, input.Slot).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundf("no save in slot %s", input.Slot)
		}
		return nil, errors.Wrapf(err, "failed to load slot %s", input.Slot)
	}

	state, migrated, err := Decode([]byte(data))
	if err != nil {
		return nil, err
	}
	return &LoadOutput{State: state, Migrated: migrated}, nil
}

// Delete implements Repository
func (r *SQLiteRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.Slot == "" {
		return nil, errors.InvalidArgument(errSlotEmpty)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM saves WHERE slot = ?`, input.Slot)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete slot %s", input.Slot)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete slot %s", input.Slot)
	}
	if n == 0 {
		return nil, errors.NotFoundf("no save in slot %s", input.Slot)
	}
	return &DeleteOutput{}, nil
}

// List implements Repository
func (r *SQLiteRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT slot FROM saves ORDER BY slot`)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list slots")
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			_ = cerr
		}
	}()

	slots := []string{}
	for rows.Next() {
		var slot string
		if err := rows.Scan(&slot); err != nil {
			return nil, errors.Wrapf(err, "failed to scan slot")
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to list slots")
	}
	return &ListOutput{Slots: slots}, nil
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Burh0n/LogiTrack-Pro/internal/errors"
	"github.com/Burh0n/LogiTrack-Pro/internal/logging"
	"github.com/Burh0n/LogiTrack-Pro/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

const entityKey = "key"

// Tx is the view of the store handed to a Batch callback. Every call runs in
// the same SQL transaction.
type Tx interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Remove(key string) error
	Move(from, to string) error
	Keys(prefix string) ([]string, error)
}

// Repository defines the key-value operations the ledger persists through.
type Repository interface {
	// Read operations
	Get(ctx context.Context, key string) ([]byte, bool, error)
	GetEntry(ctx context.Context, key string) (*Entry, error)
	Keys(ctx context.Context, prefix string) ([]string, error)
	List(ctx context.Context, prefix string) ([]*Entry, error)

	// Write operations
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Move(ctx context.Context, from, to string) error
	Batch(ctx context.Context, fn func(tx Tx) error) error

	// Utility
	Close() error
}

// Options tunes the SQLite repository.
type Options struct {
	QueryTimeout time.Duration
	WriteTimeout time.Duration
	BusyTimeout  time.Duration
}

// DefaultOptions returns the timeouts used when none are configured.
func DefaultOptions() Options {
	return Options{
		QueryTimeout: 10 * time.Second,
		WriteTimeout: 15 * time.Second,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db   *sql.DB
	opts Options
	now  func() time.Time
}

// New creates a new SQLite repository instance with default options
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(context.Background(), dbPath, DefaultOptions())
}

// NewWithOptions opens the database at dbPath and applies pending migrations.
func NewWithOptions(ctx context.Context, dbPath string, opts Options) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	// SQLite allows one writer; a single connection also keeps ":memory:"
	// databases from splitting across connections.
	db.SetMaxOpenConns(1)

	if opts.BusyTimeout > 0 {
		pragma := fmt.Sprintf("PRAGMA busy_timeout = %d", opts.BusyTimeout.Milliseconds())
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			logging.Debugf("could not set busy_timeout: %v\n", err)
		}
	}

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	logging.Debugf("opened store at %s\n", dbPath)
	return &SQLiteRepository{db: db, opts: opts, now: time.Now}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.QueryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.opts.QueryTimeout)
}

func (r *SQLiteRepository) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.WriteTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.opts.WriteTimeout)
}

// Get returns the raw value stored under key. found is false when the key is
// absent.
func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()
	return getValue(ctx, r.db, key)
}

// GetEntry returns the full row for key or a NotFound error.
func (r *SQLiteRepository) GetEntry(ctx context.Context, key string) (*Entry, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()
	query := `SELECT key, value, updated_at FROM kv WHERE key = ?`
	return QuerySingle(ctx, r.db, query, ScanEntry, entityKey, key, key)
}

// Keys lists every key starting with prefix in lexical order.
func (r *SQLiteRepository) Keys(ctx context.Context, prefix string) ([]string, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()
	return listKeys(ctx, r.db, prefix)
}

// List returns every row whose key starts with prefix.
func (r *SQLiteRepository) List(ctx context.Context, prefix string) ([]*Entry, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()
	query := `SELECT key, value, updated_at FROM kv WHERE instr(key, ?) = 1 ORDER BY key ASC`
	return QueryMultiple(ctx, r.db, query, ScanEntries, "entries", prefix)
}

// Set writes value under key, replacing any previous value.
func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()
	return setValue(ctx, r.db, key, value, r.now())
}

// Remove deletes key. Removing an absent key is not an error.
func (r *SQLiteRepository) Remove(ctx context.Context, key string) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()
	return removeKey(ctx, r.db, key)
}

// Move renames from to to in one transaction, overwriting to. A missing
// source leaves the store unchanged.
func (r *SQLiteRepository) Move(ctx context.Context, from, to string) error {
	return r.Batch(ctx, func(tx Tx) error {
		return tx.Move(from, to)
	})
}

// Batch runs fn inside a single SQL transaction. The transaction commits only
// if fn returns nil.
func (r *SQLiteRepository) Batch(ctx context.Context, fn func(tx Tx) error) (err error) {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	sqlTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin transaction", err)
	}

	defer func() {
		if p := recover(); p != nil {
			sqlTx.Rollback()
			panic(p)
		}
		if err != nil {
			sqlTx.Rollback()
		}
	}()

	if err = fn(&kvTx{ctx: ctx, tx: sqlTx, now: r.now()}); err != nil {
		return err
	}

	if err = sqlTx.Commit(); err != nil {
		return HandleDatabaseError("commit transaction", err)
	}
	return nil
}

type kvTx struct {
	ctx context.Context
	tx  *sql.Tx
	now time.Time
}

func (t *kvTx) Get(key string) ([]byte, bool, error) {
	return getValue(t.ctx, t.tx, key)
}

func (t *kvTx) Set(key string, value []byte) error {
	return setValue(t.ctx, t.tx, key, value, t.now)
}

func (t *kvTx) Remove(key string) error {
	return removeKey(t.ctx, t.tx, key)
}

func (t *kvTx) Keys(prefix string) ([]string, error) {
	return listKeys(t.ctx, t.tx, prefix)
}

func (t *kvTx) Move(from, to string) error {
	if from == to {
		return nil
	}
	value, found, err := getValue(t.ctx, t.tx, from)
	if err != nil || !found {
		return err
	}
	if err := setValue(t.ctx, t.tx, to, value, t.now); err != nil {
		return err
	}
	return removeKey(t.ctx, t.tx, from)
}

func getValue(ctx context.Context, q querier, key string) ([]byte, bool, error) {
	var value string
	err := q.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, HandleDatabaseError("get "+key, err)
	}
	return []byte(value), true, nil
}

func setValue(ctx context.Context, q querier, key string, value []byte, now time.Time) error {
	query := `
	INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	_, err := Execute(ctx, q, "set "+key, query, key, string(value), FormatTimeForDB(now))
	return err
}

func removeKey(ctx context.Context, q querier, key string) error {
	_, err := Execute(ctx, q, "remove "+key, `DELETE FROM kv WHERE key = ?`, key)
	return err
}

func listKeys(ctx context.Context, q querier, prefix string) ([]string, error) {
	rows, err := q.QueryContext(ctx, `SELECT key FROM kv WHERE instr(key, ?) = 1 ORDER BY key ASC`, prefix)
	if err != nil {
		return nil, HandleDatabaseError("list keys", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, HandleDatabaseError("scan keys", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, HandleDatabaseError("list keys", err)
	}
	return keys, nil
}

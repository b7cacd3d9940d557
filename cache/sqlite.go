package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jonwraymond/promptcache/observe"
)

// StoreFilename is the fixed name of the durable store file inside the
// configured directory.
const StoreFilename = "promptcache.db"

// DefaultCacheDir returns the default directory for durable store files:
// the user cache dir plus "promptcache", falling back to the working
// directory if the user cache dir cannot be determined.
func DefaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return "promptcache"
	}
	return filepath.Join(base, "promptcache")
}

// SQLiteConfig controls construction of a SQLiteCache.
type SQLiteConfig struct {
	// Dir is the directory holding the store file. Created if missing.
	// Defaults to DefaultCacheDir().
	Dir string

	// Capacity is the maximum number of entries. Required, must be positive.
	Capacity int

	// Logger receives debug logging for hits and evictions. Optional.
	Logger observe.Logger
}

// SQLiteCache is a durable cache backed by a single SQLite store file.
// The store is the source of truth; the struct holds only the capacity
// bound and the open connection. The store file survives process
// restarts, and several processes may open the same path: the size
// bound stays correct under contention because the count-and-delete
// step runs inside the insert's write transaction.
//
// On-disk contract: one table,
//
//	cache(key TEXT PRIMARY KEY, value BLOB, last_accessed INTEGER)
//
// where last_accessed is a Unix timestamp with seconds resolution,
// refreshed on insert and on every hit.
type SQLiteCache struct {
	capacity int
	db       *sql.DB
	path     string
	logger   observe.Logger
	closed   atomic.Bool
}

// NewSQLiteCache opens (creating if necessary) the store file under
// cfg.Dir and ensures the cache table exists. Opening an existing store
// is idempotent, so concurrent processes can construct caches against
// the same path. The returned cache owns the connection; the owner must
// call Close.
func NewSQLiteCache(cfg SQLiteConfig) (*SQLiteCache, error) {
	if cfg.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	dir := cfg.Dir
	if dir == "" {
		dir = DefaultCacheDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: failed to create cache dir %s: %w", dir, err)
	}
	path := filepath.Join(dir, StoreFilename)

	// WAL lets readers proceed while a writer holds the store;
	// busy_timeout makes concurrent writers queue instead of failing
	// immediately with SQLITE_BUSY.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cache: failed to open store %s: %w", path, err)
	}
	// SQLite permits one writer at a time; a single connection avoids
	// in-process lock contention.
	db.SetMaxOpenConns(1)

	logger := cfg.Logger
	if logger == nil {
		logger = observe.NopLogger()
	}

	c := &SQLiteCache{
		capacity: cfg.Capacity,
		db:       db,
		path:     path,
		logger:   logger.WithStore(observe.StoreMeta{Backend: "sqlite", Path: path}),
	}
	if err := c.createTable(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *SQLiteCache) createTable() error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS cache (
			key TEXT PRIMARY KEY,
			value BLOB,
			last_accessed INTEGER
		)`)
	if err != nil {
		return fmt.Errorf("cache: failed to create cache table: %w", err)
	}
	return nil
}

// Path returns the store file path.
func (c *SQLiteCache) Path() string {
	return c.path
}

// Capacity returns the current capacity bound.
func (c *SQLiteCache) Capacity() int {
	return c.capacity
}

func unixNow() int64 {
	return time.Now().Unix()
}

// Get returns the stored bytes for key. The lookup and the recency
// refresh run in one transaction, so a successful read never leaves a
// stale last_accessed behind.
func (c *SQLiteCache) Get(ctx context.Context, key string) (any, bool, error) {
	if c.closed.Load() {
		return nil, false, ErrClosed
	}
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("cache: failed to begin lookup: %w", err)
	}
	defer tx.Rollback()

	var value []byte
	err = tx.QueryRowContext(ctx, "SELECT value FROM cache WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: lookup failed: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE cache SET last_accessed = ? WHERE key = ?", unixNow(), key); err != nil {
		return nil, false, fmt.Errorf("cache: failed to refresh recency: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("cache: failed to commit lookup: %w", err)
	}

	c.logger.Debug(ctx, "cache hit", observe.Field{Key: "key", Value: key})
	return value, true, nil
}

// Insert encodes value, upserts the row for key with the current
// timestamp, and enforces the size bound. The upsert, count and delete
// share one write transaction so concurrent inserts cannot both observe
// an under-capacity count and skip eviction.
func (c *SQLiteCache) Insert(ctx context.Context, key string, value any) error {
	if c.closed.Load() {
		return ErrClosed
	}
	if err := ValidateKey(key); err != nil {
		return err
	}
	encoded, err := encodeValue(value)
	if err != nil {
		return err
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("cache: failed to begin insert: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO cache (key, value, last_accessed) VALUES (?, ?, ?)",
		key, encoded, unixNow()); err != nil {
		return fmt.Errorf("cache: insert failed: %w", err)
	}
	if err := c.enforceCapacity(ctx, tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("cache: failed to commit insert: %w", err)
	}
	return nil
}

// enforceCapacity deletes the oldest rows by last_accessed until at most
// capacity remain. Unlike the in-memory backend this is a bulk delete:
// concurrent writers or a capacity shrink through Reset may have pushed
// the store more than one row over the bound. Rows sharing a timestamp
// are broken by write order (rowid).
func (c *SQLiteCache) enforceCapacity(ctx context.Context, tx *sql.Tx) error {
	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM cache").Scan(&count); err != nil {
		return fmt.Errorf("cache: count failed: %w", err)
	}
	if count <= c.capacity {
		return nil
	}

	overflow := count - c.capacity
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM cache WHERE key IN (
			SELECT key FROM cache
			ORDER BY last_accessed ASC, rowid ASC
			LIMIT ?
		)`, overflow); err != nil {
		return fmt.Errorf("cache: eviction failed: %w", err)
	}

	c.logger.Debug(ctx, "evicted entries", observe.Field{Key: "count", Value: overflow})
	return nil
}

// Reset deletes all rows. A positive capacity becomes the new bound.
func (c *SQLiteCache) Reset(ctx context.Context, capacity int) error {
	if c.closed.Load() {
		return ErrClosed
	}
	if capacity < 0 {
		return ErrInvalidCapacity
	}
	if _, err := c.db.ExecContext(ctx, "DELETE FROM cache"); err != nil {
		return fmt.Errorf("cache: reset failed: %w", err)
	}
	if capacity > 0 {
		c.capacity = capacity
	}
	return nil
}

// Len returns the number of rows currently stored.
func (c *SQLiteCache) Len(ctx context.Context) (int, error) {
	if c.closed.Load() {
		return 0, ErrClosed
	}
	var count int
	if err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cache").Scan(&count); err != nil {
		return 0, fmt.Errorf("cache: count failed: %w", err)
	}
	return count, nil
}

// Close releases the store connection. The owner of the cache must call
// it; relying on process exit can leak file locks under WAL. Close is
// idempotent; operations after Close return ErrClosed.
func (c *SQLiteCache) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	return c.db.Close()
}

// Ensure SQLiteCache implements Cache at compile time.
var _ Cache = (*SQLiteCache)(nil)

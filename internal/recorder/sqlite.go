package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"PriceSentinel/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteCache persists fetched daily bars to a SQLite database.
type SQLiteCache struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteCache opens (or creates) the SQLite database and runs migrations.
func NewSQLiteCache(dbPath string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	c := &SQLiteCache{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite bar cache opened: %s", dbPath)
	return c, nil
}

func (c *SQLiteCache) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS daily_bars (
			symbol    TEXT    NOT NULL,
			timestamp INTEGER NOT NULL,
			seq       INTEGER NOT NULL,
			open      REAL,
			high      REAL,
			low       REAL,
			close     REAL NOT NULL,
			volume    REAL,
			PRIMARY KEY (symbol, seq)
		)`,
		`CREATE TABLE IF NOT EXISTS bar_fetches (
			symbol    TEXT PRIMARY KEY,
			stored_at INTEGER NOT NULL,
			bar_count INTEGER NOT NULL
		)`,
	}

	for _, s := range stmts {
		if _, err := c.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (c *SQLiteCache) LoadBars(symbol string) ([]model.OHLCV, time.Time, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	symbol = strings.ToUpper(symbol)
	var storedAt int64
	err := c.db.QueryRow(`SELECT stored_at FROM bar_fetches WHERE symbol = ?`, symbol).Scan(&storedAt)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("load fetch time: %w", err)
	}

	rows, err := c.db.Query(`SELECT timestamp, open, high, low, close, volume
		FROM daily_bars WHERE symbol = ? ORDER BY seq ASC`, symbol)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("load bars: %w", err)
	}
	defer rows.Close()

	var bars []model.OHLCV
	for rows.Next() {
		var ts int64
		var b model.OHLCV
		if err := rows.Scan(&ts, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, time.Time{}, fmt.Errorf("scan bar: %w", err)
		}
		b.Time = time.Unix(ts, 0)
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, err
	}
	return bars, time.Unix(storedAt, 0), nil
}

func (c *SQLiteCache) StoreBars(symbol string, bars []model.OHLCV) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	symbol = strings.ToUpper(symbol)
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM daily_bars WHERE symbol = ?`, symbol); err != nil {
		return fmt.Errorf("clear bars: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO daily_bars
		(symbol, timestamp, seq, open, high, low, close, volume)
		VALUES (?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, b := range bars {
		if _, err := stmt.Exec(symbol, b.Time.Unix(), i, b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			return fmt.Errorf("insert bar %d: %w", i, err)
		}
	}
	if _, err := tx.Exec(`INSERT INTO bar_fetches (symbol, stored_at, bar_count) VALUES (?,?,?)
		ON CONFLICT(symbol) DO UPDATE SET stored_at = excluded.stored_at, bar_count = excluded.bar_count`,
		symbol, time.Now().Unix(), len(bars)); err != nil {
		return fmt.Errorf("record fetch: %w", err)
	}
	return tx.Commit()
}

func (c *SQLiteCache) Close() error {
	log.Println("[INFO] closing sqlite bar cache")
	return c.db.Close()
}

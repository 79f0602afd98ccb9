package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"stagehand/internal/domain"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// Compile-time interface checks.
var _ StrategyStore = (*SQLiteStore)(nil)
var _ ResultStore = (*SQLiteStore)(nil)
var _ LeaderboardStore = (*SQLiteStore)(nil)

// SQLiteStore implements StrategyStore, ResultStore, and LeaderboardStore
// backed by a SQLite database. Strategy blocks and trade logs are stored as
// JSON columns; everything queried on gets its own column.
type SQLiteStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS strategies (
	name       TEXT PRIMARY KEY,
	blocks     TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS backtest_runs (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	strategy_name TEXT NOT NULL,
	symbol        TEXT NOT NULL,
	balance       REAL NOT NULL,
	total_pnl     REAL NOT NULL,
	trade_count   INTEGER NOT NULL,
	win_rate      REAL NOT NULL,
	max_drawdown  REAL NOT NULL,
	sharpe        REAL NOT NULL,
	trades        TEXT NOT NULL,
	created_at    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_strategy ON backtest_runs(strategy_name, created_at DESC);

CREATE TABLE IF NOT EXISTS leaderboard (
	name       TEXT PRIMARY KEY,
	pnl        REAL NOT NULL,
	win_rate   REAL NOT NULL,
	trades     INTEGER NOT NULL,
	sharpe     REAL NOT NULL,
	created_at INTEGER NOT NULL
);
`

// NewSQLiteStore opens (or creates) a SQLite database at dbPath, runs the
// schema, and returns a ready-to-use SQLiteStore.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ---------------------------------------------------------------------------
// StrategyStore implementation
// ---------------------------------------------------------------------------

// SaveStrategy inserts or updates a strategy, keyed by name. CreatedAt is
// preserved on update; UpdatedAt always advances.
func (s *SQLiteStore) SaveStrategy(ctx context.Context, strat domain.Strategy) error {
	blocks, err := json.Marshal(strat.Blocks)
	if err != nil {
		return fmt.Errorf("encoding blocks: %w", err)
	}
	now := time.Now().UTC()
	created := strat.CreatedAt
	if created.IsZero() {
		created = now
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO strategies (name, blocks, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			blocks = excluded.blocks,
			updated_at = excluded.updated_at`,
		strat.Name, string(blocks), created.UnixMilli(), now.UnixMilli())
	return err
}

// GetStrategy retrieves a strategy by name. Returns sql.ErrNoRows when the
// strategy does not exist.
func (s *SQLiteStore) GetStrategy(ctx context.Context, name string) (*domain.Strategy, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT name, blocks, created_at, updated_at
		FROM strategies WHERE name = ?`, name)
	return scanStrategy(row)
}

// ListStrategies returns all saved strategies, most recently updated first.
func (s *SQLiteStore) ListStrategies(ctx context.Context) ([]domain.Strategy, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, blocks, created_at, updated_at
		FROM strategies ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var strategies []domain.Strategy
	for rows.Next() {
		strat, err := scanStrategy(rows)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, *strat)
	}
	return strategies, rows.Err()
}

// DeleteStrategy removes a strategy by name.
func (s *SQLiteStore) DeleteStrategy(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM strategies WHERE name = ?`, name)
	return err
}

// scanner abstracts *sql.Row and *sql.Rows for the scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

func scanStrategy(row scanner) (*domain.Strategy, error) {
	var (
		strat              domain.Strategy
		blocks             string
		createdMS, updated int64
	)
	if err := row.Scan(&strat.Name, &blocks, &createdMS, &updated); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(blocks), &strat.Blocks); err != nil {
		return nil, fmt.Errorf("decoding blocks for %q: %w", strat.Name, err)
	}
	strat.CreatedAt = time.UnixMilli(createdMS).UTC()
	strat.UpdatedAt = time.UnixMilli(updated).UTC()
	return &strat, nil
}

// ---------------------------------------------------------------------------
// ResultStore implementation
// ---------------------------------------------------------------------------

// SaveResult records a completed backtest run and returns the run ID.
func (s *SQLiteStore) SaveResult(ctx context.Context, strategyName, symbol string, res domain.BacktestResult) (int64, error) {
	trades, err := json.Marshal(res.Trades)
	if err != nil {
		return 0, fmt.Errorf("encoding trades: %w", err)
	}
	r, err := s.db.ExecContext(ctx, `
		INSERT INTO backtest_runs
			(strategy_name, symbol, balance, total_pnl, trade_count,
			 win_rate, max_drawdown, sharpe, trades, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		strategyName, symbol, res.Balance, res.TotalPnL, res.TradeCount,
		res.WinRate, res.MaxDrawdown, res.Sharpe, string(trades),
		time.Now().UTC().UnixMilli())
	if err != nil {
		return 0, err
	}
	return r.LastInsertId()
}

// GetResult retrieves a run by ID, including its full trade log.
func (s *SQLiteStore) GetResult(ctx context.Context, id int64) (*domain.BacktestResult, error) {
	var (
		res    domain.BacktestResult
		trades string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT balance, total_pnl, trade_count, win_rate, max_drawdown, sharpe, trades
		FROM backtest_runs WHERE id = ?`, id).
		Scan(&res.Balance, &res.TotalPnL, &res.TradeCount,
			&res.WinRate, &res.MaxDrawdown, &res.Sharpe, &trades)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(trades), &res.Trades); err != nil {
		return nil, fmt.Errorf("decoding trades for run %d: %w", id, err)
	}
	return &res, nil
}

// ListResults returns recent run summaries, newest first, up to limit.
// An empty strategyName matches all strategies.
func (s *SQLiteStore) ListResults(ctx context.Context, strategyName string, limit int) ([]RunSummary, error) {
	query := `
		SELECT id, strategy_name, symbol, balance, total_pnl, trade_count,
		       win_rate, max_drawdown, sharpe, created_at
		FROM backtest_runs`
	args := []any{}
	if strategyName != "" {
		query += ` WHERE strategy_name = ?`
		args = append(args, strategyName)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var (
			sum       RunSummary
			createdMS int64
		)
		if err := rows.Scan(&sum.ID, &sum.StrategyName, &sum.Symbol,
			&sum.Balance, &sum.TotalPnL, &sum.TradeCount,
			&sum.WinRate, &sum.MaxDrawdown, &sum.Sharpe, &createdMS); err != nil {
			return nil, err
		}
		sum.CreatedAt = time.UnixMilli(createdMS).UTC()
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// ---------------------------------------------------------------------------
// LeaderboardStore implementation
// ---------------------------------------------------------------------------

// SubmitScore records a score for a performer name. A performer keeps their
// best PnL: resubmitting with a lower PnL leaves the stored entry untouched.
func (s *SQLiteStore) SubmitScore(ctx context.Context, e domain.LeaderboardEntry) error {
	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leaderboard (name, pnl, win_rate, trades, sharpe, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			pnl = excluded.pnl,
			win_rate = excluded.win_rate,
			trades = excluded.trades,
			sharpe = excluded.sharpe,
			created_at = excluded.created_at
		WHERE excluded.pnl > leaderboard.pnl`,
		e.Name, e.PnL, e.WinRate, e.Trades, e.Sharpe, created.UnixMilli())
	return err
}

// TopScores returns the best entries ranked by PnL descending, with Rank
// populated starting from 1.
func (s *SQLiteStore) TopScores(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, pnl, win_rate, trades, sharpe, created_at
		FROM leaderboard ORDER BY pnl DESC, created_at ASC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var (
			e         domain.LeaderboardEntry
			createdMS int64
		)
		if err := rows.Scan(&e.Name, &e.PnL, &e.WinRate, &e.Trades, &e.Sharpe, &createdMS); err != nil {
			return nil, err
		}
		e.CreatedAt = time.UnixMilli(createdMS).UTC()
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

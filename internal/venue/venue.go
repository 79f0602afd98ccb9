// Package venue is the integration edge with an external trading venue. The
// strategy engine only produces decisions; turning a decision into an order
// and whatever can go wrong doing so lives here.
package venue

import (
	"context"
	"errors"
	"sync"
	"time"

	"stagehand/internal/domain"
)

// Error kinds surfaced by connectors. Callers decide retry and backoff
// policy; the engine itself never retries.
var (
	ErrAuthorizationFailed = errors.New("venue: authorization failed")
	ErrRequestTimeout      = errors.New("venue: request timed out")
	ErrVenueRejected       = errors.New("venue: order rejected")
)

// Fill is the venue's confirmation of an executed order.
type Fill struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Size      float64   `json:"size"`
	PnL       float64   `json:"pnl,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Account is a snapshot of cash and open positions at the venue.
type Account struct {
	Cash      float64                    `json:"cash"`
	Positions map[string]domain.Position `json:"positions"`
}

// Connector executes decisions against a trading venue.
type Connector interface {
	// Name returns the connector identifier.
	Name() string

	// OpenPosition commits size notional at the given price.
	OpenPosition(ctx context.Context, symbol string, price, size float64) (*Fill, error)

	// ClosePosition exits the open position at the given price, realizing
	// its profit or loss.
	ClosePosition(ctx context.Context, symbol string, price float64) (*Fill, error)

	// GetAccount returns the current cash and positions.
	GetAccount(ctx context.Context) (*Account, error)
}

// Compile-time interface check.
var _ Connector = (*PaperConnector)(nil)

// PaperConnector is an in-memory venue for rehearsals. It fills every order
// instantly at the requested price and tracks cash and positions without
// external calls.
type PaperConnector struct {
	mu        sync.Mutex
	cash      float64
	positions map[string]domain.Position
	now       func() time.Time
}

// NewPaperConnector creates a PaperConnector funded with startingCash.
func NewPaperConnector(startingCash float64) *PaperConnector {
	return &PaperConnector{
		cash:      startingCash,
		positions: make(map[string]domain.Position),
		now:       time.Now,
	}
}

// Name returns "paper".
func (c *PaperConnector) Name() string { return "paper" }

// OpenPosition commits size notional at the given price. It rejects a second
// open on the same symbol and any order exceeding available cash.
func (c *PaperConnector) OpenPosition(_ context.Context, symbol string, price, size float64) (*Fill, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, open := c.positions[symbol]; open {
		return nil, ErrVenueRejected
	}
	if size <= 0 || size > c.cash {
		return nil, ErrVenueRejected
	}

	c.cash -= size
	c.positions[symbol] = domain.Position{EntryPrice: price, Size: size}

	return &Fill{Symbol: symbol, Price: price, Size: size, Timestamp: c.now().UTC()}, nil
}

// ClosePosition exits the open position at the given price. The fill carries
// the realized profit or loss.
func (c *PaperConnector) ClosePosition(_ context.Context, symbol string, price float64) (*Fill, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pos, open := c.positions[symbol]
	if !open {
		return nil, ErrVenueRejected
	}
	delete(c.positions, symbol)

	pnl := pos.Size * (price - pos.EntryPrice) / pos.EntryPrice
	c.cash += pos.Size + pnl

	return &Fill{
		Symbol:    symbol,
		Price:     price,
		Size:      pos.Size,
		PnL:       pnl,
		Timestamp: c.now().UTC(),
	}, nil
}

// GetAccount returns a copy of the current cash and positions.
func (c *PaperConnector) GetAccount(_ context.Context) (*Account, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	positions := make(map[string]domain.Position, len(c.positions))
	for sym, pos := range c.positions {
		positions[sym] = pos
	}
	return &Account{Cash: c.cash, Positions: positions}, nil
}

package live

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"sync"
	"time"

	"stagehand/internal/domain"
	"stagehand/internal/feed"
)

// History candles used to warm the window before the first live step.
const warmupCandles = 30

// Manager owns the running deployments, one per strategy name.
type Manager struct {
	source  feed.CandleSource
	symbol  string
	balance float64
	log     *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*deployment
}

type deployment struct {
	session *Session
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewManager creates a Manager deploying strategies against the given
// candle source and symbol, each funded with startingBalance.
func NewManager(source feed.CandleSource, symbol string, startingBalance float64) *Manager {
	return &Manager{
		source:   source,
		symbol:   symbol,
		balance:  startingBalance,
		log:      slog.Default().With("component", "live"),
		sessions: make(map[string]*deployment),
	}
}

// Deploy starts a session for the strategy. It fails when a deployment with
// the same name is already running.
func (m *Manager) Deploy(ctx context.Context, strategy domain.Strategy) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, running := m.sessions[strategy.Name]; running {
		return nil, fmt.Errorf("strategy %q is already deployed", strategy.Name)
	}

	history, err := m.source.History(ctx, m.symbol, warmupCandles)
	if err != nil {
		return nil, fmt.Errorf("warming up %q: %w", strategy.Name, err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	candles, err := m.source.Subscribe(runCtx, m.symbol)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("subscribing %q: %w", strategy.Name, err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	session := NewSession(strategy.Name, strategy.Blocks, m.balance, rng)
	session.Prime(history)

	d := &deployment{session: session, cancel: cancel, done: make(chan struct{})}
	m.sessions[strategy.Name] = d

	go func() {
		defer close(d.done)
		session.Run(runCtx, candles)
	}()

	m.log.Info("deployed", "strategy", strategy.Name, "symbol", m.symbol, "source", m.source.Name())
	return session, nil
}

// Stop cancels a deployment and waits for its evaluation loop to finish.
// It reports whether a deployment with that name was running.
func (m *Manager) Stop(name string) bool {
	m.mu.Lock()
	d, ok := m.sessions[name]
	if ok {
		delete(m.sessions, name)
	}
	m.mu.Unlock()

	if !ok {
		return false
	}
	d.cancel()
	<-d.done
	m.log.Info("stopped", "strategy", name)
	return true
}

// StopAll cancels every running deployment.
func (m *Manager) StopAll() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[string]*deployment)
	m.mu.Unlock()

	for name, d := range all {
		d.cancel()
		<-d.done
		m.log.Info("stopped", "strategy", name)
	}
}

// Get returns the running session for a strategy name.
func (m *Manager) Get(name string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.sessions[name]
	if !ok {
		return nil, false
	}
	return d.session, true
}

// Statuses returns a snapshot of every running deployment, sorted by
// strategy name.
func (m *Manager) Statuses() []Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	statuses := make([]Status, 0, len(m.sessions))
	for _, d := range m.sessions {
		statuses = append(statuses, d.session.Status())
	}
	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Strategy < statuses[j].Strategy
	})
	return statuses
}

// Package live runs deployed strategies against a candle feed and fans the
// resulting show events out to gRPC subscribers.
package live

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"

	"stagehand/internal/domain"
	"stagehand/internal/engine"
	"stagehand/internal/judges"
	"stagehand/internal/vibe"
)

// Candles beyond this age fall out of the evaluation window.
const windowSize = 50

// Event is one tick of a deployment: the decision taken on the latest
// candle plus the running performance state.
type Event struct {
	Timestamp int64            `json:"timestamp"`
	Price     float64          `json:"price"`
	Decision  domain.Decision  `json:"decision"`
	Balance   float64          `json:"balance"`
	VibeScore float64          `json:"vibe_score"`
	VibeLevel string           `json:"vibe_level"`
	Comments  []judges.Comment `json:"comments,omitempty"`
}

// Status is a point-in-time snapshot of a running deployment.
type Status struct {
	Strategy   string      `json:"strategy"`
	Balance    float64     `json:"balance"`
	MaxBalance float64     `json:"max_balance"`
	Damage     float64     `json:"damage"`
	PnL        float64     `json:"pnl"`
	TradeCount int         `json:"trade_count"`
	InPosition bool        `json:"in_position"`
	VibeScore  float64     `json:"vibe_score"`
	VibeLevel  string      `json:"vibe_level"`
	Feedback   []vibe.Note `json:"feedback"`
}

// Session evaluates one deployed strategy, one candle at a time. All
// evaluation happens on the Run goroutine; a step finishes before the next
// candle is processed, and stopping the deployment just stops delivering
// candles.
type Session struct {
	strategy        string
	stepper         *engine.Stepper
	startingBalance float64
	rng             *rand.Rand
	log             *slog.Logger

	mu         sync.RWMutex
	window     []domain.Candle
	balance    float64
	maxBalance float64

	subsMu    sync.Mutex
	nextSubID int
	subs      map[int]chan Event
}

// NewSession creates a Session for the given strategy. The rng seeds judge
// selection so tests can be deterministic.
func NewSession(strategy string, strategyBlocks []domain.StrategyBlock, startingBalance float64, rng *rand.Rand) *Session {
	return &Session{
		strategy:        strategy,
		stepper:         engine.NewStepper(strategyBlocks),
		startingBalance: startingBalance,
		balance:         startingBalance,
		maxBalance:      startingBalance,
		rng:             rng,
		log:             slog.Default().With("strategy", strategy),
		subs:            make(map[int]chan Event),
	}
}

// Prime seeds the evaluation window with history so the first live candle
// already has indicator context.
func (s *Session) Prime(candles []domain.Candle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.window = append(s.window, candles...)
	if len(s.window) > windowSize {
		s.window = s.window[len(s.window)-windowSize:]
	}
}

// Run consumes candles until the channel closes or ctx is cancelled,
// evaluating the strategy once per candle.
func (s *Session) Run(ctx context.Context, candles <-chan domain.Candle) {
	for {
		select {
		case <-ctx.Done():
			return
		case c, ok := <-candles:
			if !ok {
				return
			}
			evt := s.step(c)
			s.publish(evt)
		}
	}
}

// step appends the candle, runs one engine evaluation, and folds the
// decision into the running balance and crowd state.
func (s *Session) step(c domain.Candle) Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.window = append(s.window, c)
	if len(s.window) > windowSize {
		s.window = s.window[len(s.window)-windowSize:]
	}

	d := s.stepper.Step(s.window, s.balance)
	if d.Action == domain.DecisionExit {
		s.balance += d.PnL
		if s.balance > s.maxBalance {
			s.maxBalance = s.balance
		}
	}

	score := vibe.Score(s.balance, s.startingBalance)
	evt := Event{
		Timestamp: c.Timestamp,
		Price:     c.Close,
		Decision:  d,
		Balance:   s.balance,
		VibeScore: score,
		VibeLevel: vibe.Level(score),
	}
	if d.Action != domain.DecisionHold {
		evt.Comments = judges.React(s.rng, d)
		s.log.Info("trade event",
			"action", d.Action,
			"price", d.Price,
			"pnl", d.PnL,
			"balance", s.balance,
		)
	}
	return evt
}

// Status returns a snapshot of the running deployment.
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	damage := 0.0
	if s.maxBalance > 0 && s.balance < s.maxBalance {
		damage = (s.maxBalance - s.balance) / s.maxBalance * 100
	}
	score := vibe.Score(s.balance, s.startingBalance)
	return Status{
		Strategy:   s.strategy,
		Balance:    s.balance,
		MaxBalance: s.maxBalance,
		Damage:     damage,
		PnL:        s.stepper.PnL(),
		TradeCount: s.stepper.TradeCount(),
		InPosition: s.stepper.Position() != nil,
		VibeScore:  score,
		VibeLevel:  vibe.Level(score),
		Feedback:   vibe.Feedback(score),
	}
}

// publish notifies subscribers with a non-blocking send; a slow subscriber
// drops events rather than stalling the evaluation loop.
func (s *Session) publish(evt Event) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- evt:
		default:
			// Slow subscriber, drop event.
		}
	}
}

// Subscribe creates a new subscription channel for show events.
func (s *Session) Subscribe(bufSize int) (id int, ch <-chan Event) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	id = s.nextSubID
	s.nextSubID++
	c := make(chan Event, bufSize)
	s.subs[id] = c
	return id, c
}

// Unsubscribe removes a subscription and closes its channel.
func (s *Session) Unsubscribe(id int) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	if ch, ok := s.subs[id]; ok {
		close(ch)
		delete(s.subs, id)
	}
}

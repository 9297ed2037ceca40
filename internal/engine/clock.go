// Package engine drives a match: the turn clock, per-instance ticking,
// territories, player interaction and building.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/talgya/hexecon/internal/observe"
)

// Clock event kinds. Every turn fires tick, then tock.
const (
	KindTick observe.Kind = "tick"
	KindTock observe.Kind = "tock"
)

// TickEvent announces a turn.
type TickEvent struct {
	Kind observe.Kind
	Turn int
}

func (e TickEvent) EventKind() observe.Kind { return e.Kind }

// Ticker advances some piece of state by one turn.
type Ticker interface {
	Tick() error
}

// TickerFunc adapts a function to Ticker.
type TickerFunc func() error

func (f TickerFunc) Tick() error { return f() }

// Clock is the global turn counter.
type Clock struct {
	turn   int
	events observe.Registry[TickEvent]
	errs   []error
}

// NewClock creates a clock at turn 0.
func NewClock() *Clock {
	return &Clock{}
}

// Turn returns the number of completed turns.
func (c *Clock) Turn() int { return c.turn }

// Listen subscribes fn to tick and tock events.
func (c *Clock) Listen(fn observe.Listener[TickEvent], kinds ...observe.Kind) observe.Remove {
	return c.events.Listen(fn, kinds...)
}

// ListenTick runs t on every tick. Errors from t are returned by the Tick
// call that ran it.
func (c *Clock) ListenTick(t Ticker) observe.Remove {
	return c.events.Listen(func(TickEvent) {
		if err := t.Tick(); err != nil {
			c.errs = append(c.errs, err)
		}
	}, KindTick)
}

// Tick advances one turn. All tickers run even if some of them fail.
func (c *Clock) Tick() error {
	c.turn++
	c.errs = nil
	c.events.Fire(TickEvent{Kind: KindTick, Turn: c.turn})
	c.events.Fire(TickEvent{Kind: KindTock, Turn: c.turn})
	err := errors.Join(c.errs...)
	c.errs = nil
	return err
}

// Run advances turns turns, one every interval, until done or ctx is
// cancelled. A zero interval runs the turns back to back.
func (c *Clock) Run(ctx context.Context, turns int, interval time.Duration) error {
	slog.Info("clock started", "turn", c.turn, "turns", turns, "interval", interval)
	var ticker *time.Ticker
	if interval > 0 {
		ticker = time.NewTicker(interval)
		defer ticker.Stop()
	}

	for i := 0; i < turns; i++ {
		if ticker != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		if err := c.Tick(); err != nil {
			slog.Warn("turn finished with errors", "turn", c.turn, "error", err)
		}
	}

	slog.Info("clock stopped", "turn", c.turn)
	return nil
}

// Close drops every listener.
func (c *Clock) Close() {
	c.events.Close()
}

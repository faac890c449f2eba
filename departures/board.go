package departures

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/theoremus-urban-solutions/sl-departures/sl"
)

const (
	// DefaultInterval is the polling interval when none is configured.
	DefaultInterval = 60 * time.Second
	// DefaultSlots is the number of board positions when none is configured.
	DefaultSlots = 3
)

// Source supplies raw departures for a site. *sl.Client satisfies it.
type Source interface {
	Departures(ctx context.Context, siteID int) ([]sl.Departure, error)
}

// BoardConfig describes one polling target: a site plus a filter. It is
// fixed once the board is created; reconfiguration means replacing the
// board.
type BoardConfig struct {
	Name          string
	SiteID        int
	SiteName      string
	Filter        FilterSpec
	DirectionName string
	Interval      time.Duration
	Slots         int
	Policy        Policy
	Location      *time.Location
}

// Title is the composite display name for the target, mirroring the
// device naming of the configuration flow: "SL {site} {lines} → {direction}".
func (c BoardConfig) Title() string {
	title := Agency
	if c.SiteName != "" {
		title += " " + c.SiteName
	}
	if len(c.Filter.Lines) > 0 {
		title += " " + strings.Join(c.Filter.Lines, "/")
	}
	if c.DirectionName != "" {
		title += " → " + c.DirectionName
	}
	return title
}

// Snapshot is the filtered departure list of one successful fetch cycle.
// It is immutable: a refresh publishes a new snapshot instead of mutating
// the old one, so concurrent readers always see a consistent list.
type Snapshot struct {
	Departures []sl.Departure
	FetchedAt  time.Time
}

// Update is delivered to subscribers after every refresh attempt. On
// failure Err is set and Snapshot is the retained previous snapshot,
// which may be nil only before the first successful fetch.
type Update struct {
	Board    string
	Snapshot *Snapshot
	Err      error
}

// Board owns the refresh loop for one configured target. At most one
// fetch is in flight at any time; a tick arriving mid-fetch is coalesced,
// not queued.
type Board struct {
	cfg    BoardConfig
	source Source
	view   View

	snapshot atomic.Pointer[Snapshot]
	lastErr  atomic.Pointer[refreshFailure]
	inFlight atomic.Bool

	mu   sync.Mutex
	subs []func(Update)

	cancel context.CancelFunc
	done   chan struct{}
}

// refreshFailure wraps an error for atomic publication; a nil pointer
// means the last refresh succeeded.
type refreshFailure struct {
	err error
	at  time.Time
}

// NewBoard creates a board for one target, applying interval and slot
// defaults. The board does not poll until Start is called.
func NewBoard(cfg BoardConfig, source Source) *Board {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Slots <= 0 {
		cfg.Slots = DefaultSlots
	}
	if !ValidPolicy(cfg.Policy) {
		cfg.Policy = PolicySlots
	}
	if cfg.Name == "" {
		cfg.Name = fmt.Sprintf("site-%d", cfg.SiteID)
	}
	return &Board{
		cfg:    cfg,
		source: source,
		view:   View{Slots: cfg.Slots, Location: cfg.Location},
		done:   make(chan struct{}),
	}
}

// Config returns the board's fixed configuration.
func (b *Board) Config() BoardConfig { return b.cfg }

// View returns the presentation view configured for this board.
func (b *Board) View() View { return b.view }

// Start performs the first refresh synchronously and then launches the
// polling loop. A first-refresh failure is fatal: no snapshot exists yet,
// so there is nothing to serve, and the loop is not started.
func (b *Board) Start(ctx context.Context) error {
	b.inFlight.Store(true)
	err := b.refresh(ctx)
	b.inFlight.Store(false)
	if err != nil {
		return fmt.Errorf("first refresh for board %s: %w", b.cfg.Name, err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	go b.run(runCtx)

	log.Info().
		Str("board", b.cfg.Name).
		Int("site", b.cfg.SiteID).
		Dur("interval", b.cfg.Interval).
		Msg("Departure board started")
	return nil
}

// run ticks on the configured interval. The fetch itself happens on its
// own goroutine so a slow exchange never blocks tick evaluation; the
// in-flight flag is what suppresses overlapping fetches.
func (b *Board) run(ctx context.Context) {
	defer close(b.done)
	ticker := time.NewTicker(b.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !b.inFlight.CompareAndSwap(false, true) {
				log.Debug().Str("board", b.cfg.Name).Msg("Refresh still in flight, tick coalesced")
				continue
			}
			go func() {
				defer b.inFlight.Store(false)
				_ = b.refresh(ctx)
			}()
		case <-ctx.Done():
			return
		}
	}
}

// refresh runs one fetch+filter cycle. On success the snapshot is
// replaced atomically and the recorded error cleared; on failure the
// previous snapshot is retained and the failure recorded. A cycle whose
// context was cancelled publishes nothing.
func (b *Board) refresh(ctx context.Context) error {
	raw, err := b.source.Departures(ctx, b.cfg.SiteID)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		b.lastErr.Store(&refreshFailure{err: err, at: time.Now()})
		log.Warn().
			Err(err).
			Str("board", b.cfg.Name).
			Msg("Refresh failed, keeping previous departures")
		b.notify(Update{Board: b.cfg.Name, Snapshot: b.snapshot.Load(), Err: err})
		return err
	}

	filtered := Filter(raw, b.cfg.Filter)
	snap := &Snapshot{Departures: filtered, FetchedAt: time.Now()}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	b.snapshot.Store(snap)
	b.lastErr.Store(nil)
	log.Debug().
		Str("board", b.cfg.Name).
		Int("raw", len(raw)).
		Int("filtered", len(filtered)).
		Msg("Refreshed departures")
	b.notify(Update{Board: b.cfg.Name, Snapshot: snap})
	return nil
}

// Snapshot returns the latest successfully fetched snapshot, or nil
// before the first successful fetch. The returned snapshot stays valid
// after being superseded; callers never observe a partial replacement.
func (b *Board) Snapshot() *Snapshot {
	return b.snapshot.Load()
}

// LastError returns the failure recorded by the most recent refresh
// attempt, or nil if it succeeded.
func (b *Board) LastError() error {
	if f := b.lastErr.Load(); f != nil {
		return f.err
	}
	return nil
}

// Available reports whether the board holds any snapshot to serve. A
// stale snapshot retained across refresh failures still counts.
func (b *Board) Available() bool {
	return b.snapshot.Load() != nil
}

// Subscribe registers a callback invoked after every refresh attempt.
// Callbacks run on the refresh goroutine and should return quickly.
func (b *Board) Subscribe(fn func(Update)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, fn)
}

func (b *Board) notify(u Update) {
	b.mu.Lock()
	subs := make([]func(Update), len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()
	for _, fn := range subs {
		fn(u)
	}
}

// Close stops the polling loop and waits for it to exit. An in-flight
// fetch is abandoned; its result is never published. Closing a board
// that never started is a no-op.
func (b *Board) Close() {
	if b.cancel == nil {
		return
	}
	b.cancel()
	<-b.done
	log.Info().Str("board", b.cfg.Name).Msg("Departure board stopped")
}

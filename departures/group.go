package departures

import (
	"context"
	"fmt"
	"sync"

	"github.com/sourcegraph/conc/pool"
)

// Group runs multiple boards side by side. Boards are fully independent:
// no state is shared between their polling loops, so the group is only a
// lifecycle and lookup convenience.
type Group struct {
	mu     sync.Mutex
	boards map[string]*Board
	order  []string
}

// NewGroup creates an empty board group.
func NewGroup() *Group {
	return &Group{boards: map[string]*Board{}}
}

// Add registers a board under its configured name. Names must be unique
// within the group.
func (g *Group) Add(b *Board) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	name := b.Config().Name
	if _, exists := g.boards[name]; exists {
		return fmt.Errorf("duplicate board name %q", name)
	}
	g.boards[name] = b
	g.order = append(g.order, name)
	return nil
}

// Board looks up a board by name, or nil.
func (g *Group) Board(name string) *Board {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.boards[name]
}

// Boards returns all boards in registration order.
func (g *Group) Boards() []*Board {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]*Board, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.boards[name])
	}
	return out
}

// Start starts every board concurrently and waits for all first
// refreshes to resolve. Any first-refresh failure makes the whole start
// fail; boards that did start keep polling until Close.
func (g *Group) Start(ctx context.Context) error {
	p := pool.New().WithErrors()
	for _, b := range g.Boards() {
		p.Go(func() error {
			return b.Start(ctx)
		})
	}
	return p.Wait()
}

// Close stops every board and waits for their loops to exit.
func (g *Group) Close() {
	for _, b := range g.Boards() {
		b.Close()
	}
}

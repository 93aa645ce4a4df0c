// Package feed defines the per-sport handler contract the poll engine runs
// against, and the shared HTTP client its implementations fetch with.
//
// Each sport implements the same capability — fetch the live feed, parse the
// current game state, evaluate plays — and is selected by the game's sport
// tag. The seven-step poll skeleton lives in the engine; handlers only
// supply sport-specific behavior.
package feed

import (
	"context"
	"fmt"

	"github.com/ahump20/blaze-live/internal/model"
)

// Play is one entry of a feed's play/action list. Implementations carry the
// sport-specific raw fields; the engine only needs a stable identifier for
// deduplication.
type Play interface {
	// PlayID returns an identifier that is stable across feed re-deliveries
	// within one game.
	PlayID() string
}

// Snapshot is the parsed result of one feed fetch.
type Snapshot struct {
	State model.GameState
	Plays []Play
}

// Terminal reports whether the feed says the game is over (or will not
// resume), ending monitoring.
func (s *Snapshot) Terminal() bool {
	return s.State.Status.Terminal()
}

// Handler is the per-sport strategy the engine dispatches to.
type Handler interface {
	// Sport returns the tag this handler owns.
	Sport() model.Sport

	// Fetch retrieves and parses the live feed for one game. Network
	// failures are recovered by the engine, not the handler.
	Fetch(ctx context.Context, externalGameID string) (*Snapshot, error)

	// Evaluate scores one play against the game's current state. It returns
	// the event to persist and true when the play qualifies. Scoring is a
	// pure function of the play and state; identical input always yields an
	// identical decision.
	Evaluate(game *model.MonitoredGame, state model.GameState, play Play) (*model.LiveEvent, bool)
}

// Registry maps sport tags to their handlers.
type Registry struct {
	handlers map[model.Sport]Handler
}

// NewRegistry builds a registry from the given handlers.
func NewRegistry(handlers ...Handler) *Registry {
	r := &Registry{handlers: make(map[model.Sport]Handler, len(handlers))}
	for _, h := range handlers {
		r.handlers[h.Sport()] = h
	}
	return r
}

// Lookup returns the handler for a sport tag.
func (r *Registry) Lookup(sport model.Sport) (Handler, error) {
	h, ok := r.handlers[sport]
	if !ok {
		return nil, fmt.Errorf("no feed handler registered for sport %q", sport)
	}
	return h, nil
}

// Sports returns the registered sport tags.
func (r *Registry) Sports() []model.Sport {
	sports := make([]model.Sport, 0, len(r.handlers))
	for s := range r.handlers {
		sports = append(sports, s)
	}
	return sports
}

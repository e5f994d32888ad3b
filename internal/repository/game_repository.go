// Package repository holds running games in memory, keyed by a minted
// game ID. The engine is single-process with no database layer, so a
// mutex-guarded map is the whole storage tier.
package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"tcg-pocket-engine/internal/engine/rng"
	"tcg-pocket-engine/internal/engine/state"
	tcgerrors "tcg-pocket-engine/internal/errors"
)

// Session bundles one game's mutable state with the RNG source that
// produced it, so a later action application draws from the same
// stream rather than a freshly-seeded one.
type Session struct {
	ID    string
	State *state.GameState
	RNG   *rng.Source
}

// GameRepository stores and retrieves in-progress Sessions.
type GameRepository interface {
	Create(ctx context.Context, s *state.GameState, src *rng.Source) *Session
	Get(ctx context.Context, gameID string) (*Session, error)
	List(ctx context.Context) []*Session
	Delete(ctx context.Context, gameID string) error
}

type inMemoryGameRepository struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewGameRepository constructs an empty in-memory GameRepository.
func NewGameRepository() GameRepository {
	return &inMemoryGameRepository{sessions: make(map[string]*Session)}
}

func (r *inMemoryGameRepository) Create(_ context.Context, s *state.GameState, src *rng.Source) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess := &Session{ID: uuid.NewString(), State: s, RNG: src}
	r.sessions[sess.ID] = sess
	return sess
}

func (r *inMemoryGameRepository) Get(_ context.Context, gameID string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, ok := r.sessions[gameID]
	if !ok {
		return nil, &tcgerrors.NotFoundError{Resource: "game", ID: gameID}
	}
	return sess, nil
}

func (r *inMemoryGameRepository) List(_ context.Context) []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Session, 0, len(r.sessions))
	for _, sess := range r.sessions {
		out = append(out, sess)
	}
	return out
}

func (r *inMemoryGameRepository) Delete(_ context.Context, gameID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[gameID]; !ok {
		return &tcgerrors.NotFoundError{Resource: "game", ID: gameID}
	}
	delete(r.sessions, gameID)
	return nil
}

// Package service wires the repository (session storage) to the engine
// (internal/engine/turn) and the external adapters (internal/adapter),
// keeping the HTTP/websocket delivery layers free of engine internals.
package service

import (
	"context"

	"tcg-pocket-engine/internal/adapter"
	"tcg-pocket-engine/internal/engine/action"
	"tcg-pocket-engine/internal/engine/card"
	"tcg-pocket-engine/internal/engine/effect"
	"tcg-pocket-engine/internal/engine/turn"
	"tcg-pocket-engine/internal/logger"
	"tcg-pocket-engine/internal/repository"

	"go.uber.org/zap"
)

// GameService is the use-case layer delivery handlers call into: create a
// game, list/answer its legal actions, apply one, and read an
// observation snapshot.
type GameService struct {
	repo   repository.GameRepository
	engine *turn.Engine
}

// NewGameService constructs a GameService around repo, backed by an
// Engine wired with the card registry the server process loaded.
func NewGameService(repo repository.GameRepository, registry *effect.Registry) *GameService {
	return &GameService{
		repo:   repo,
		engine: turn.New(registry, logger.Get()),
	}
}

// CreateGame starts a new session for deck1/deck2 at seed and stores it.
func (s *GameService) CreateGame(ctx context.Context, deck1, deck2 card.Deck, seed int64) (*repository.Session, error) {
	gameState, src := turn.NewGame(deck1, deck2, seed)
	sess := s.repo.Create(ctx, gameState, src)
	logger.Get().Info("game created", zap.String("game_id", sess.ID), zap.Int64("seed", seed))
	return sess, nil
}

// Get fetches a session by ID.
func (s *GameService) Get(ctx context.Context, gameID string) (*repository.Session, error) {
	return s.repo.Get(ctx, gameID)
}

// LegalActions reports the currently legal actions for gameID's session.
func (s *GameService) LegalActions(ctx context.Context, gameID string) ([]action.Action, error) {
	sess, err := s.repo.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return action.LegalActions(sess.State, s.engine.Registry), nil
}

// ActionMask reports the 512-slot legality mask for gameID's session.
func (s *GameService) ActionMask(ctx context.Context, gameID string) ([adapter.ActionSpaceSize]bool, error) {
	sess, err := s.repo.Get(ctx, gameID)
	if err != nil {
		return [adapter.ActionSpaceSize]bool{}, err
	}
	return adapter.ActionMask(sess.State, s.engine.Registry), nil
}

// Apply validates and applies a against gameID's session, returning the
// resulting StepOutcome.
func (s *GameService) Apply(ctx context.Context, gameID string, a action.Action) (turn.StepOutcome, error) {
	sess, err := s.repo.Get(ctx, gameID)
	if err != nil {
		return turn.StepOutcome{}, err
	}
	outcome := s.engine.Apply(sess.State, sess.RNG, a)
	return outcome, nil
}

// ApplyByIndex decodes idx through internal/adapter and applies it.
func (s *GameService) ApplyByIndex(ctx context.Context, gameID string, idx int) (turn.StepOutcome, error) {
	a, err := adapter.IndexToAction(idx)
	if err != nil {
		return turn.StepOutcome{}, err
	}
	return s.Apply(ctx, gameID, a)
}

// Observation builds a snapshot of gameID's session from playerIdx's
// perspective.
func (s *GameService) Observation(ctx context.Context, gameID string, playerIdx int) (adapter.Observation, error) {
	sess, err := s.repo.Get(ctx, gameID)
	if err != nil {
		return adapter.Observation{}, err
	}
	return adapter.Snapshot(sess.State, playerIdx, s.engine.DamageRegistry()), nil
}

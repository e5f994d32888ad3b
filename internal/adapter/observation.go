package adapter

import (
	"tcg-pocket-engine/internal/engine/executor"
	"tcg-pocket-engine/internal/engine/state"
)

// PokemonView is the observable slice of a PlayedCard: enough for a driver
// to render or featurize a board slot without reaching into
// internal/engine/state directly.
type PokemonView struct {
	Occupied       bool
	Name           string
	MaxHP          int
	RemainingHP    int
	AttachedEnergy int
	IsEX           bool
	Statuses       []state.StatusCondition
}

// BoardView is one player's active + bench slots, active first.
type BoardView struct {
	Active [1]PokemonView
	Bench  [state.MaxBench]PokemonView
}

// Observation is a snapshot of s from playerIdx's point of view: the
// thin, struct-typed contract surface component H scopes to (§1, §6) —
// not the numeric feature-vector encoding that spec.md explicitly treats
// as an external concern.
type Observation struct {
	TurnNumber    int
	Phase         state.TurnPhase
	IsMyTurn      bool
	Points        int
	OpponentPoints int
	HandSize      int
	DeckSize      int
	OpponentHandSize int
	OpponentDeckSize int
	PrizesRemaining  int
	Own      BoardView
	Opponent BoardView
}

// Snapshot builds an Observation of s from playerIdx's perspective. reg
// is the engine's damage registry (Engine.DamageRegistry), consulted so
// MaxHP/RemainingHP reflect PassiveHPBoost the same way combat does; it
// may be nil, in which case a card's bare printed HP is reported.
func Snapshot(s *state.GameState, playerIdx int, reg *executor.Registry) Observation {
	p := s.Players[playerIdx]
	opp := s.Players[1-playerIdx]

	return Observation{
		TurnNumber:       s.TurnNumber,
		Phase:            s.Phase,
		IsMyTurn:         s.CurrentPlayer == playerIdx,
		Points:           p.Points,
		OpponentPoints:   opp.Points,
		HandSize:         len(p.Hand),
		DeckSize:         len(p.Deck),
		OpponentHandSize: len(opp.Hand),
		OpponentDeckSize: len(opp.Deck),
		PrizesRemaining:  len(p.Prizes),
		Own:              viewBoard(p, reg),
		Opponent:         viewBoard(opp, reg),
	}
}

func viewBoard(p *state.PlayerState, reg *executor.Registry) BoardView {
	var b BoardView
	b.Active[0] = viewPokemon(p.Active, reg)
	for i, pc := range p.Bench {
		b.Bench[i] = viewPokemon(pc, reg)
	}
	return b
}

func viewPokemon(pc *state.PlayedCard, reg *executor.Registry) PokemonView {
	if pc == nil {
		return PokemonView{}
	}
	var statuses []state.StatusCondition
	for _, s := range []state.StatusCondition{state.Poisoned, state.Burned, state.Asleep, state.Paralyzed, state.Confused} {
		if pc.HasStatus(s) {
			statuses = append(statuses, s)
		}
	}
	maxHP := executor.EffectiveMaxHP(reg, pc)
	remaining := maxHP - 10*pc.DamageCounters
	return PokemonView{
		Occupied:       true,
		Name:           pc.Card.Name,
		MaxHP:          maxHP,
		RemainingHP:    max(remaining, 0),
		AttachedEnergy: len(pc.AttachedEnergy),
		IsEX:           pc.Card.IsEX,
		Statuses:       statuses,
	}
}

package turn

import (
	"tcg-pocket-engine/internal/engine/action"
	"tcg-pocket-engine/internal/engine/rng"
	"tcg-pocket-engine/internal/engine/state"
)

// applyEffectChoice resolves a Choose*/Promote* action against
// s.PendingChoice, then restores current_player and runs whichever tail
// of the end-of-turn pipeline DeferredEnd names — never both, so
// between-turns effects never run twice for one turn switch.
func (e *Engine) applyEffectChoice(s *state.GameState, src *rng.Source, a action.Action) {
	pc := s.PendingChoice
	if pc == nil {
		return
	}

	koPlayer := s.CurrentPlayer

	switch a.Kind {
	case action.PromotePokemon:
		p := s.Players[koPlayer]
		p.Active = p.Bench[a.BenchIndex]
		p.Bench[a.BenchIndex] = nil
	case action.ChooseTarget, action.ChooseOption:
		// The engine parks only PromoteFromBench choices, so these
		// actions leave the board unchanged and just clear the choice.
	}

	s.PendingChoice = nil

	deferred := s.DeferredEnd
	s.DeferredEnd = state.DeferredTurnEnd{}

	switch deferred.Kind {
	case state.NeedFullEndTurn:
		s.CurrentPlayer = deferred.Player
		s.Phase = state.PhaseMain
		e.endTurn(s, src)
	case state.NeedTurnSwitch:
		s.CurrentPlayer = deferred.Player
		s.Phase = state.PhaseMain
		if e.checkWinConditions(s) {
			return
		}
		e.switchTurn(s)
	default:
		s.Phase = state.PhaseMain
	}
}

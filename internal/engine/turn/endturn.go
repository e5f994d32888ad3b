package turn

import (
	"tcg-pocket-engine/internal/engine/effect"
	"tcg-pocket-engine/internal/engine/executor"
	"tcg-pocket-engine/internal/engine/rng"
	"tcg-pocket-engine/internal/engine/state"

	"go.uber.org/zap"
)

// endTurn runs the full end-of-turn pipeline: between-turns effects, a KO
// check (which may defer again), then the turn-switch tail.
func (e *Engine) endTurn(s *state.GameState, src *rng.Source) {
	acting := s.CurrentPlayer
	e.resolveBetweenTurns(s, src, acting)

	if s.Players[acting].Active != nil && executor.IsKnockedOut(e.damageReg, s.Players[acting].Active) {
		if e.handleKnockout(s, src, acting) {
			s.DeferredEnd = state.DeferredTurnEnd{Kind: state.NeedTurnSwitch, Player: acting}
			return
		}
	}

	if e.checkWinConditions(s) {
		return
	}

	e.switchTurn(s)
}

func (e *Engine) resolveBetweenTurns(s *state.GameState, src *rng.Source, player int) {
	p := s.Players[player]
	active := p.Active
	if active == nil {
		return
	}

	if active.HasStatus(state.Poisoned) {
		active.DamageCounters++
	}
	if active.HasStatus(state.Burned) {
		if !src.CoinFlip() {
			active.DamageCounters += 2
		}
	}
	if active.HasStatus(state.Asleep) {
		if src.CoinFlip() {
			active.ClearStatus(state.Asleep)
		}
	}
	if active.HasStatus(state.Paralyzed) {
		active.ClearStatus(state.Paralyzed)
	}

	if active.Tool != nil {
		for _, m := range e.Registry.ToolEffects(active.Tool.Name) {
			switch m.Kind {
			case effect.HealBetweenTurns:
				counters := m.Amount / 10
				if counters > active.DamageCounters {
					counters = active.DamageCounters
				}
				active.DamageCounters -= counters
			case effect.CureStatusBetweenTurns:
				active.StatusConditions = make(map[state.StatusCondition]bool)
			}
		}
	}
}

// switchTurn runs §4.G step 3: flip current_player, advance turn_number,
// clear first_turn, reset per-turn state and draw. A draw from an empty
// deck is an immediate loss for the drawing player (§4.G, §7).
func (e *Engine) switchTurn(s *state.GameState) {
	s.CurrentPlayer = 1 - s.CurrentPlayer
	s.TurnNumber++
	s.FirstTurn = false
	s.Current().StartTurn()
	s.Phase = state.PhaseMain
	e.drawOrDeckOut(s)
}

func (e *Engine) drawOrDeckOut(s *state.GameState) {
	p := s.Current()
	if len(p.Deck) == 0 {
		loser := s.CurrentPlayer
		winner := 1 - loser
		s.Winner = &winner
		s.Phase = state.PhaseGameOver
		if e.Log != nil {
			e.Log.Info("game over: deck out", zap.Int("loser", loser))
		}
		return
	}
	p.Hand = append(p.Hand, p.Deck[0])
	p.Deck = p.Deck[1:]
}

func (e *Engine) checkWinConditions(s *state.GameState) bool {
	for i, p := range s.Players {
		if p.Points >= 3 {
			w := i
			s.Winner = &w
			s.Phase = state.PhaseGameOver
			if e.Log != nil {
				e.Log.Info("game over: points", zap.Int("winner", i))
			}
			return true
		}
	}
	for i, p := range s.Players {
		if !p.HasPokemonInPlay() {
			w := 1 - i
			s.Winner = &w
			s.Phase = state.PhaseGameOver
			if e.Log != nil {
				e.Log.Info("game over: no pokemon in play", zap.Int("winner", w))
			}
			return true
		}
	}
	return false
}

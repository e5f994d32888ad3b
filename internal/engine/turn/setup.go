package turn

import (
	"tcg-pocket-engine/internal/engine/action"
	"tcg-pocket-engine/internal/engine/state"
)

func (e *Engine) applySetup(s *state.GameState, a action.Action) {
	p := s.Current()

	switch a.Kind {
	case action.PlaceActive:
		c := p.Hand[a.HandIndex]
		p.Hand = append(p.Hand[:a.HandIndex], p.Hand[a.HandIndex+1:]...)
		p.Active = state.NewPlayedCard(c, s.TurnNumber)
	case action.PlaceBench:
		c := p.Hand[a.HandIndex]
		p.Hand = append(p.Hand[:a.HandIndex], p.Hand[a.HandIndex+1:]...)
		p.SetPokemon(p.FindEmptyBench()+1, state.NewPlayedCard(c, s.TurnNumber))
	case action.ConfirmSetup:
		if s.CurrentPlayer == 0 {
			s.CurrentPlayer = 1
		} else {
			s.CurrentPlayer = 0
			s.Phase = state.PhaseMain
			drawOne(s.Current())
		}
	}
}

func drawOne(p *state.PlayerState) {
	if len(p.Deck) == 0 {
		return
	}
	p.Hand = append(p.Hand, p.Deck[0])
	p.Deck = p.Deck[1:]
}

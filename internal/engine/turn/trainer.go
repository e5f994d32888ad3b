package turn

import (
	"tcg-pocket-engine/internal/engine/card"
	"tcg-pocket-engine/internal/engine/executor"
	"tcg-pocket-engine/internal/engine/rng"
	"tcg-pocket-engine/internal/engine/state"
)

func executorFor(e *Engine, src *rng.Source) *executor.Executor {
	return executor.NewWithRegistry(src, e.damageReg)
}

// playTrainerOrTool resolves an Item/Tool/Fossil card. Tool cards attach
// to the current active Pokémon (the simplest faithful reading when no
// explicit attach-target sub-action exists in the fixed action space);
// Item/Fossil cards resolve their registry effect list immediately and
// go to the discard pile.
func (e *Engine) playTrainerOrTool(s *state.GameState, src *rng.Source, c card.Card) {
	p := s.Current()

	if c.Category == card.CategoryTool {
		if p.Active != nil {
			p.Active.Tool = &c
		}
		return
	}

	mechanics := e.Registry.TrainerEffects(c.Name)
	e.warnUnimplementedMechanics(s, mechanics)
	ex := executorFor(e, src)
	for _, m := range mechanics {
		ex.Execute(s, m)
	}
	p.Discard = append(p.Discard, c)
}

package turn

import (
	"tcg-pocket-engine/internal/engine/action"
	"tcg-pocket-engine/internal/engine/rng"
	"tcg-pocket-engine/internal/engine/state"
)

func (e *Engine) applyMain(s *state.GameState, src *rng.Source, a action.Action) {
	p := s.Current()

	switch a.Kind {
	case action.PlayPokemonToBench:
		c := p.Hand[a.HandIndex]
		p.Hand = append(p.Hand[:a.HandIndex], p.Hand[a.HandIndex+1:]...)
		p.SetPokemon(p.FindEmptyBench()+1, state.NewPlayedCard(c, s.TurnNumber))

	case action.EvolvePokemon:
		c := p.Hand[a.HandIndex]
		p.Hand = append(p.Hand[:a.HandIndex], p.Hand[a.HandIndex+1:]...)
		prev := p.GetPokemon(a.Position)
		evolved := state.NewPlayedCard(c, s.TurnNumber)
		evolved.AttachedEnergy = prev.AttachedEnergy
		evolved.DamageCounters = prev.DamageCounters
		evolved.Tool = prev.Tool
		evolved.EvolvedFrom = prev
		p.SetPokemon(a.Position, evolved)

	case action.SetEnergyZoneType:
		et := a.EnergyType
		p.EnergyZoneType = &et

	case action.AttachEnergy:
		target := p.GetPokemon(a.Position)
		target.AttachedEnergy = append(target.AttachedEnergy, *p.EnergyZoneType)
		p.EnergyGenerated = true

	case action.Retreat:
		bench := p.Bench[a.BenchIndex]
		cost := p.Active.Card.RetreatCost
		n := len(p.Active.AttachedEnergy)
		if cost > n {
			cost = n
		}
		p.Active.AttachedEnergy = p.Active.AttachedEnergy[:n-cost]
		p.Active.ClearStatus(state.Asleep)
		p.Active.ClearStatus(state.Paralyzed)
		p.Active.ClearStatus(state.Confused)
		p.Bench[a.BenchIndex], p.Active = p.Active, bench
		p.RetreatedThisTurn = true

	case action.UseAbility:
		target := p.GetPokemon(a.Position)
		target.TempFlags.UsedAbility = true
		mechanics := e.Registry.AbilityEffects(target.Card.ID)
		e.warnUnimplementedMechanics(s, mechanics)
		ex := executorFor(e, src)
		for _, m := range mechanics {
			ex.Execute(s, m)
		}

	case action.PlayTrainer:
		c := p.Hand[a.HandIndex]
		p.Hand = append(p.Hand[:a.HandIndex], p.Hand[a.HandIndex+1:]...)
		e.playTrainerOrTool(s, src, c)

	case action.PlaySupporter:
		c := p.Hand[a.HandIndex]
		p.Hand = append(p.Hand[:a.HandIndex], p.Hand[a.HandIndex+1:]...)
		p.SupporterPlayed = true
		mechanics := e.Registry.TrainerEffects(c.Name)
		e.warnUnimplementedMechanics(s, mechanics)
		ex := executorFor(e, src)
		for _, m := range mechanics {
			ex.Execute(s, m)
		}
		p.Discard = append(p.Discard, c)

	case action.UseAttack:
		e.resolveAttack(s, src, a.AttackIndex)

	case action.EndTurn:
		e.endTurn(s, src)
	}
}

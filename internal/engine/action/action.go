// Package action enumerates legal actions for a GameState: the discrete
// move set a driver (or RL policy) chooses from at each step.
package action

import (
	"tcg-pocket-engine/internal/engine/card"
	"tcg-pocket-engine/internal/engine/effect"
	"tcg-pocket-engine/internal/engine/state"
)

// Kind discriminates the Action union.
type Kind int

const (
	PlaceActive Kind = iota
	PlaceBench
	ConfirmSetup
	PlayPokemonToBench
	EvolvePokemon
	SetEnergyZoneType
	AttachEnergy
	Retreat
	UseAbility
	PlayTrainer
	PlaySupporter
	UseAttack
	EndTurn
	ChooseTarget
	ChooseOption
	PromotePokemon
)

// Action is one legal move. Only the fields relevant to Kind are
// meaningful.
type Action struct {
	Kind Kind

	HandIndex  int
	Position   int
	BenchIndex int
	AttackIndex int
	EnergyType card.EnergyType
	OptionIndex int
}

// LegalActions enumerates every action legal in s. reg is consulted for
// ability/tool mechanics that affect legality, such as UsePreEvoAttacks;
// it may be nil, in which case only a Pokémon's own attacks are offered.
func LegalActions(s *state.GameState, reg *effect.Registry) []Action {
	switch s.Phase {
	case state.PhaseSetup:
		return legalSetup(s)
	case state.PhaseMain:
		return legalMain(s, reg)
	case state.PhaseEffectChoice:
		return legalEffectChoice(s)
	default:
		return nil
	}
}

// AvailableAttack pairs an attack with the card it belongs to, so a
// pre-evolution's attack (offered via UsePreEvoAttacks) can still be
// resolved against its own effect list rather than the current card's.
type AvailableAttack struct {
	card.Attack
	CardID   string
	LocalIdx int
}

// AvailableAttacks returns every attack pc may use: its own attacks,
// plus — if reg grants pc's ability or tool a UsePreEvoAttacks mechanic —
// every attack in pc's pre-evolution chain.
func AvailableAttacks(reg *effect.Registry, pc *state.PlayedCard) []AvailableAttack {
	var out []AvailableAttack
	for i, atk := range pc.Card.Attacks {
		out = append(out, AvailableAttack{Attack: atk, CardID: pc.Card.ID, LocalIdx: i})
	}
	if !hasUsePreEvoAttacks(reg, pc) {
		return out
	}
	for prev := pc.EvolvedFrom; prev != nil; prev = prev.EvolvedFrom {
		for i, atk := range prev.Card.Attacks {
			out = append(out, AvailableAttack{Attack: atk, CardID: prev.Card.ID, LocalIdx: i})
		}
	}
	return out
}

func hasUsePreEvoAttacks(reg *effect.Registry, pc *state.PlayedCard) bool {
	if reg == nil {
		return false
	}
	if pc.Card.Ability != nil {
		for _, m := range reg.AbilityEffects(pc.Card.ID) {
			if m.Kind == effect.UsePreEvoAttacks {
				return true
			}
		}
	}
	if pc.Tool != nil {
		for _, m := range reg.ToolEffects(pc.Tool.Name) {
			if m.Kind == effect.UsePreEvoAttacks {
				return true
			}
		}
	}
	return false
}

func legalSetup(s *state.GameState) []Action {
	p := s.Current()
	var out []Action

	if p.Active == nil {
		for i, c := range p.Hand {
			if c.IsBasic() {
				out = append(out, Action{Kind: PlaceActive, HandIndex: i})
			}
		}
		return out
	}

	if p.FindEmptyBench() != -1 {
		for i, c := range p.Hand {
			if c.IsBasic() {
				out = append(out, Action{Kind: PlaceBench, HandIndex: i})
			}
		}
	}
	out = append(out, Action{Kind: ConfirmSetup})
	return out
}

func legalMain(s *state.GameState, reg *effect.Registry) []Action {
	p := s.Current()
	var out []Action

	for i, c := range p.Hand {
		if c.IsBasic() && p.FindEmptyBench() != -1 {
			out = append(out, Action{Kind: PlayPokemonToBench, HandIndex: i})
		}
	}

	for i, c := range p.Hand {
		if !c.IsEvolution() {
			continue
		}
		for pos := 0; pos <= state.MaxBench; pos++ {
			pc := p.GetPokemon(pos)
			if pc == nil {
				continue
			}
			if pc.Card.Name != c.EvolvesFrom {
				continue
			}
			if !stageProgresses(pc.Card.StagePok, c.StagePok) {
				continue
			}
			if !pc.CanEvolve(s.TurnNumber) {
				continue
			}
			out = append(out, Action{Kind: EvolvePokemon, HandIndex: i, Position: pos})
		}
	}

	if p.EnergyZoneType == nil {
		for _, et := range card.ConcreteEnergyTypes() {
			out = append(out, Action{Kind: SetEnergyZoneType, EnergyType: et})
		}
	}

	if !p.EnergyGenerated && p.EnergyZoneType != nil {
		for pos := 0; pos <= state.MaxBench; pos++ {
			if p.GetPokemon(pos) != nil {
				out = append(out, Action{Kind: AttachEnergy, Position: pos})
			}
		}
	}

	if !p.RetreatedThisTurn && p.Active != nil &&
		!p.Active.HasStatus(state.Asleep) && !p.Active.HasStatus(state.Paralyzed) {
		for i := 0; i < state.MaxBench; i++ {
			b := p.Bench[i]
			if b == nil {
				continue
			}
			if len(p.Active.AttachedEnergy) >= p.Active.Card.RetreatCost {
				out = append(out, Action{Kind: Retreat, BenchIndex: i})
			}
		}
	}

	for pos := 0; pos <= state.MaxBench; pos++ {
		pc := p.GetPokemon(pos)
		if pc != nil && pc.Card.Ability != nil && !pc.TempFlags.UsedAbility {
			out = append(out, Action{Kind: UseAbility, Position: pos})
		}
	}

	for i, c := range p.Hand {
		switch c.Category {
		case card.CategoryItem, card.CategoryTool, card.CategoryFossil:
			out = append(out, Action{Kind: PlayTrainer, HandIndex: i})
		case card.CategorySupporter:
			if !p.SupporterPlayed {
				out = append(out, Action{Kind: PlaySupporter, HandIndex: i})
			}
		}
	}

	if !s.FirstTurn && p.Active != nil && !p.Active.HasStatus(state.Paralyzed) {
		for i, atk := range AvailableAttacks(reg, p.Active) {
			if atk.Payable(p.Active.AttachedEnergy) {
				out = append(out, Action{Kind: UseAttack, AttackIndex: i})
			}
		}
	}

	out = append(out, Action{Kind: EndTurn})
	return out
}

func stageProgresses(from, to card.Stage) bool {
	switch from {
	case card.Basic:
		return to == card.Stage1
	case card.Stage1:
		return to == card.Stage2
	default:
		return false
	}
}

func legalEffectChoice(s *state.GameState) []Action {
	pc := s.PendingChoice
	if pc == nil {
		return nil
	}

	p := s.Current()
	var out []Action

	switch pc.Kind {
	case state.PromoteFromBench:
		for i := 0; i < state.MaxBench; i++ {
			if p.Bench[i] != nil {
				out = append(out, Action{Kind: PromotePokemon, BenchIndex: i})
			}
		}
	case state.ChooseTarget:
		for _, pos := range pc.ValidPositions {
			out = append(out, Action{Kind: ChooseTarget, Position: pos})
		}
	case state.DiscardFromHand:
		for i := range p.Hand {
			out = append(out, Action{Kind: ChooseOption, OptionIndex: i})
		}
	case state.DiscardEnergy:
		target := p.GetPokemon(pc.Position)
		if target != nil {
			for i := range target.AttachedEnergy {
				out = append(out, Action{Kind: ChooseOption, OptionIndex: i})
			}
		}
	}
	return out
}

// Package adapter is the external RL-facing surface: the fixed 512-index
// action bijection, the legality mask built from it, and a struct-typed
// observation snapshot (Observation) — the contract an adapter driver (cmd/server,
// cmd/cli, or an out-of-process policy) talks, without ever reaching into
// internal/engine/state directly.
package adapter

import (
	"fmt"

	"tcg-pocket-engine/internal/engine/action"
	"tcg-pocket-engine/internal/engine/card"
	"tcg-pocket-engine/internal/engine/effect"
	"tcg-pocket-engine/internal/engine/state"
)

// ActionSpaceSize is the total number of discrete action indices.
const ActionSpaceSize = 512

// ActionToIndex encodes a as its fixed index in [0, ActionSpaceSize). The
// mapping is a pure function of a.Kind and its payload fields; it does not
// consult game state.
func ActionToIndex(a action.Action) (int, error) {
	switch a.Kind {
	case action.PlaceActive:
		return a.HandIndex, nil
	case action.PlaceBench:
		return 10 + a.HandIndex, nil
	case action.ConfirmSetup:
		return 20, nil
	case action.PlayPokemonToBench:
		return 21 + a.HandIndex, nil
	case action.EvolvePokemon:
		return 31 + a.HandIndex*4 + a.Position, nil
	case action.SetEnergyZoneType:
		idx, ok := energyTypeToIdx(a.EnergyType)
		if !ok {
			return 0, fmt.Errorf("adapter: SetEnergyZoneType has no concrete index for %v", a.EnergyType)
		}
		return 71 + idx, nil
	case action.AttachEnergy:
		return 80 + a.Position, nil
	case action.Retreat:
		return 84 + a.BenchIndex, nil
	case action.UseAbility:
		return 87 + a.Position, nil
	case action.PlayTrainer:
		return 91 + a.HandIndex, nil
	case action.PlaySupporter:
		return 101 + a.HandIndex, nil
	case action.UseAttack:
		return 111 + a.AttackIndex, nil
	case action.EndTurn:
		return 114, nil
	case action.ChooseTarget:
		return 115 + a.Position, nil
	case action.ChooseOption:
		return 119 + a.OptionIndex, nil
	case action.PromotePokemon:
		return 129 + a.BenchIndex, nil
	default:
		return 0, fmt.Errorf("adapter: unknown action kind %v", a.Kind)
	}
}

// IndexToAction decodes idx back into an Action. It reports an error for
// any index the 512-slot table leaves unused (§6 "all unused indices are
// illegal"), including the 132-511 reserved tail.
func IndexToAction(idx int) (action.Action, error) {
	switch {
	case idx >= 0 && idx <= 9:
		return action.Action{Kind: action.PlaceActive, HandIndex: idx}, nil
	case idx >= 10 && idx <= 19:
		return action.Action{Kind: action.PlaceBench, HandIndex: idx - 10}, nil
	case idx == 20:
		return action.Action{Kind: action.ConfirmSetup}, nil
	case idx >= 21 && idx <= 30:
		return action.Action{Kind: action.PlayPokemonToBench, HandIndex: idx - 21}, nil
	case idx >= 31 && idx <= 70:
		offset := idx - 31
		return action.Action{Kind: action.EvolvePokemon, HandIndex: offset / 4, Position: offset % 4}, nil
	case idx >= 71 && idx <= 79:
		et, ok := idxToEnergyType(idx - 71)
		if !ok {
			return action.Action{}, fmt.Errorf("adapter: index %d has no concrete energy type", idx)
		}
		return action.Action{Kind: action.SetEnergyZoneType, EnergyType: et}, nil
	case idx >= 80 && idx <= 83:
		return action.Action{Kind: action.AttachEnergy, Position: idx - 80}, nil
	case idx >= 84 && idx <= 86:
		return action.Action{Kind: action.Retreat, BenchIndex: idx - 84}, nil
	case idx >= 87 && idx <= 90:
		return action.Action{Kind: action.UseAbility, Position: idx - 87}, nil
	case idx >= 91 && idx <= 100:
		return action.Action{Kind: action.PlayTrainer, HandIndex: idx - 91}, nil
	case idx >= 101 && idx <= 110:
		return action.Action{Kind: action.PlaySupporter, HandIndex: idx - 101}, nil
	case idx >= 111 && idx <= 113:
		return action.Action{Kind: action.UseAttack, AttackIndex: idx - 111}, nil
	case idx == 114:
		return action.Action{Kind: action.EndTurn}, nil
	case idx >= 115 && idx <= 118:
		return action.Action{Kind: action.ChooseTarget, Position: idx - 115}, nil
	case idx >= 119 && idx <= 128:
		return action.Action{Kind: action.ChooseOption, OptionIndex: idx - 119}, nil
	case idx >= 129 && idx <= 131:
		return action.Action{Kind: action.PromotePokemon, BenchIndex: idx - 129}, nil
	default:
		return action.Action{}, fmt.Errorf("adapter: index %d is unused", idx)
	}
}

// ActionMask reports, for every one of the 512 indices, whether it encodes
// an action currently legal in s. reg is forwarded to action.LegalActions
// for ability/tool-gated legality such as UsePreEvoAttacks.
func ActionMask(s *state.GameState, reg *effect.Registry) [ActionSpaceSize]bool {
	var mask [ActionSpaceSize]bool
	for _, a := range action.LegalActions(s, reg) {
		idx, err := ActionToIndex(a)
		if err != nil {
			continue
		}
		if idx >= 0 && idx < ActionSpaceSize {
			mask[idx] = true
		}
	}
	return mask
}

func energyTypeToIdx(et card.EnergyType) (int, bool) {
	for i, concrete := range card.ConcreteEnergyTypes() {
		if concrete == et {
			return i, true
		}
	}
	return 0, false
}

func idxToEnergyType(idx int) (card.EnergyType, bool) {
	concrete := card.ConcreteEnergyTypes()
	if idx < 0 || idx >= len(concrete) {
		return 0, false
	}
	return concrete[idx], true
}

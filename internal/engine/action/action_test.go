package action

import (
	"testing"

	"tcg-pocket-engine/internal/engine/card"
	"tcg-pocket-engine/internal/engine/effect"
	"tcg-pocket-engine/internal/engine/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basicCard(name string) card.Card {
	return card.Card{ID: name, Name: name, Category: card.CategoryPokemon, StagePok: card.Basic, HP: 60, RetreatCost: 1}
}

func TestSetupRequiresPlaceActiveFirst(t *testing.T) {
	s := &state.GameState{Phase: state.PhaseSetup}
	s.Players[0] = state.NewPlayerState()
	s.Players[0].Hand = []card.Card{basicCard("Bulbasaur")}

	actions := LegalActions(s, nil)
	assert.Len(t, actions, 1)
	assert.Equal(t, PlaceActive, actions[0].Kind)
}

func TestFirstTurnNeverOffersUseAttack(t *testing.T) {
	s := &state.GameState{Phase: state.PhaseMain, FirstTurn: true}
	s.Players[0] = state.NewPlayerState()
	active := state.NewPlayedCard(card.Card{
		HP: 60,
		Attacks: []card.Attack{{Name: "Tackle", EnergyCost: nil, Damage: 10}},
	}, 0)
	s.Players[0].Active = active

	for _, a := range LegalActions(s, nil) {
		assert.NotEqual(t, UseAttack, a.Kind)
	}
}

func TestUseAttackRequiresPayableCost(t *testing.T) {
	grass := card.Grass
	s := &state.GameState{Phase: state.PhaseMain, FirstTurn: false}
	s.Players[0] = state.NewPlayerState()
	active := state.NewPlayedCard(card.Card{
		HP: 60,
		Attacks: []card.Attack{{Name: "Vine Whip", EnergyCost: []card.EnergyType{card.Grass}, Damage: 20}},
	}, 0)
	s.Players[0].Active = active

	assert.Empty(t, filterKind(LegalActions(s, nil), UseAttack))

	active.AttachedEnergy = []card.EnergyType{grass}
	assert.Len(t, filterKind(LegalActions(s, nil), UseAttack), 1)
}

func TestRetreatGatedByStatusAndCount(t *testing.T) {
	s := &state.GameState{Phase: state.PhaseMain}
	s.Players[0] = state.NewPlayerState()
	active := state.NewPlayedCard(card.Card{HP: 60, RetreatCost: 1}, 0)
	s.Players[0].Active = active
	s.Players[0].Bench[0] = state.NewPlayedCard(basicCard("Bench Mon"), 0)

	assert.Empty(t, filterKind(LegalActions(s, nil), Retreat))

	active.AttachedEnergy = []card.EnergyType{card.Fire}
	assert.Len(t, filterKind(LegalActions(s, nil), Retreat), 1)

	active.ApplyStatus(state.Asleep)
	assert.Empty(t, filterKind(LegalActions(s, nil), Retreat))
}

func TestIsLegalMatchesLegalActions(t *testing.T) {
	s := &state.GameState{Phase: state.PhaseMain}
	s.Players[0] = state.NewPlayerState()

	assert.True(t, IsLegal(s, Action{Kind: EndTurn}, nil))
	assert.False(t, IsLegal(s, Action{Kind: UseAttack, AttackIndex: 0}, nil))
}

func TestUsePreEvoAttacksOffersPreEvolutionAttack(t *testing.T) {
	reg := effect.NewRegistry()
	reg.RegisterAbility("evolved", []effect.Mechanic{{Kind: effect.UsePreEvoAttacks}})

	pre := state.NewPlayedCard(card.Card{
		ID: "basic", HP: 60,
		Attacks: []card.Attack{{Name: "Tackle", Damage: 10}},
	}, 0)
	evolved := state.NewPlayedCard(card.Card{
		ID: "evolved", HP: 90,
		Ability: &card.Ability{Name: "Ancestral Memory"},
	}, 1)
	evolved.EvolvedFrom = pre

	s := &state.GameState{Phase: state.PhaseMain, FirstTurn: false}
	s.Players[0] = state.NewPlayerState()
	s.Players[0].Active = evolved

	available := AvailableAttacks(reg, evolved)
	require.Len(t, available, 1)
	assert.Equal(t, "Tackle", available[0].Name)
	assert.Equal(t, "basic", available[0].CardID)

	assert.Len(t, filterKind(LegalActions(s, reg), UseAttack), 1)
	assert.Empty(t, filterKind(LegalActions(s, nil), UseAttack))
}

func filterKind(actions []Action, k Kind) []Action {
	var out []Action
	for _, a := range actions {
		if a.Kind == k {
			out = append(out, a)
		}
	}
	return out
}

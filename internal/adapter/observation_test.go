package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tcg-pocket-engine/internal/engine/card"
	"tcg-pocket-engine/internal/engine/state"
)

func TestSnapshotReflectsBothSidesFromPlayerPerspective(t *testing.T) {
	s := &state.GameState{Phase: state.PhaseMain, TurnNumber: 4, CurrentPlayer: 1}
	s.Players[0] = state.NewPlayerState()
	s.Players[1] = state.NewPlayerState()
	s.Players[0].Points = 1
	s.Players[1].Points = 2
	s.Players[0].Hand = make([]card.Card, 3)
	s.Players[1].Deck = make([]card.Card, 9)

	mon := state.NewPlayedCard(card.Card{Name: "Mon", HP: 60}, 0)
	mon.DamageCounters = 2
	mon.ApplyStatus(state.Poisoned)
	s.Players[0].Active = mon

	obs := Snapshot(s, 0, nil)

	assert.Equal(t, 4, obs.TurnNumber)
	assert.False(t, obs.IsMyTurn)
	assert.Equal(t, 1, obs.Points)
	assert.Equal(t, 2, obs.OpponentPoints)
	assert.Equal(t, 3, obs.HandSize)
	assert.Equal(t, 9, obs.OpponentDeckSize)
	assert.True(t, obs.Own.Active[0].Occupied)
	assert.Equal(t, 40, obs.Own.Active[0].RemainingHP)
	assert.Contains(t, obs.Own.Active[0].Statuses, state.Poisoned)
	assert.False(t, obs.Opponent.Active[0].Occupied)
}

func TestSnapshotEmptyBenchSlotsAreUnoccupied(t *testing.T) {
	s := &state.GameState{Phase: state.PhaseMain}
	s.Players[0] = state.NewPlayerState()
	s.Players[1] = state.NewPlayerState()

	obs := Snapshot(s, 0, nil)
	for _, b := range obs.Own.Bench {
		assert.False(t, b.Occupied)
	}
}

package websocket

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tcg-pocket-engine/internal/engine/turn"
)

func TestDecodePayloadRoundTrips(t *testing.T) {
	raw := map[string]interface{}{"gameId": "abc", "player": float64(1)}
	out, ok := decodePayload[JoinGamePayload](raw)
	assert.True(t, ok)
	assert.Equal(t, JoinGamePayload{GameID: "abc", Player: 1}, out)
}

func TestDecodePayloadRejectsUnmarshalable(t *testing.T) {
	_, ok := decodePayload[JoinGamePayload](make(chan int))
	assert.False(t, ok)
}

func TestToOutcomePayloadGameOverIncludesWinner(t *testing.T) {
	p := toOutcomePayload(turn.StepOutcome{Kind: turn.GameOver, Winner: 1})
	assert.Equal(t, "game_over", p.Kind)
	require := assert.New(t)
	require.NotNil(p.Winner)
	require.Equal(1, *p.Winner)
}

func TestToOutcomePayloadInvalidActionIncludesError(t *testing.T) {
	p := toOutcomePayload(turn.StepOutcome{Kind: turn.InvalidAction, Err: assertErr{"bad"}})
	assert.Equal(t, "invalid_action", p.Kind)
	assert.Equal(t, "bad", p.Error)
}

type assertErr struct{ msg string }

func (e assertErr) Error() string { return e.msg }

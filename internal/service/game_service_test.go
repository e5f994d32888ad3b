package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tcg-pocket-engine/internal/adapter"
	"tcg-pocket-engine/internal/engine/action"
	"tcg-pocket-engine/internal/engine/card"
	"tcg-pocket-engine/internal/engine/effect"
	"tcg-pocket-engine/internal/repository"
)

func basicDeck() card.Deck {
	cards := make([]card.Card, 0, 20)
	for i := 0; i < 20; i++ {
		cards = append(cards, card.Card{
			ID: "mon", Name: "Basic Mon", Category: card.CategoryPokemon,
			StagePok: card.Basic, HP: 60, RetreatCost: 1,
		})
	}
	return card.NewUnchecked(cards)
}

func newTestService() *GameService {
	return NewGameService(repository.NewGameRepository(), effect.NewRegistry())
}

func TestCreateGameThenLegalActionsAndMask(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	sess, err := svc.CreateGame(ctx, basicDeck(), basicDeck(), 7)
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)

	legal, err := svc.LegalActions(ctx, sess.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, legal)
	for _, a := range legal {
		assert.Equal(t, action.PlaceActive, a.Kind)
	}

	mask, err := svc.ActionMask(ctx, sess.ID)
	require.NoError(t, err)

	onCount := 0
	for _, on := range mask {
		if on {
			onCount++
		}
	}
	assert.Equal(t, len(legal), onCount)
}

func TestApplyByIndexAdvancesSetup(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	sess, err := svc.CreateGame(ctx, basicDeck(), basicDeck(), 7)
	require.NoError(t, err)

	outcome, err := svc.ApplyByIndex(ctx, sess.ID, 0) // PlaceActive(hand_i=0)
	require.NoError(t, err)
	assert.NotEqual(t, "invalid_action", outcome.Kind.String())
}

func TestObservationUnknownGameErrors(t *testing.T) {
	svc := newTestService()
	_, err := svc.Observation(context.Background(), "missing", 0)
	assert.Error(t, err)
}

func TestApplyByIndexRejectsOutOfRangeIndex(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	sess, err := svc.CreateGame(ctx, basicDeck(), basicDeck(), 7)
	require.NoError(t, err)

	_, err = svc.ApplyByIndex(ctx, sess.ID, adapter.ActionSpaceSize)
	assert.Error(t, err)
}

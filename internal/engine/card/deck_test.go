package card

import (
	"testing"

	tcgerrors "tcg-pocket-engine/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basicCard(name string) Card {
	return Card{ID: name, Name: name, Category: CategoryPokemon, StagePok: Basic, HP: 60}
}

func fullValidDeck() []Card {
	cards := make([]Card, 0, DeckSize)
	for i := 0; i < DeckSize/MaxCopies; i++ {
		name := "Basic " + string(rune('A'+i))
		for n := 0; n < MaxCopies; n++ {
			cards = append(cards, basicCard(name))
		}
	}
	return cards
}

func TestValidateWrongSize(t *testing.T) {
	_, err := New(fullValidDeck()[:19])
	require.Error(t, err)

	var dve *tcgerrors.DeckValidationError
	require.ErrorAs(t, err, &dve)
	assert.Equal(t, tcgerrors.WrongSize, dve.Kind)
}

func TestValidateTooManyCopies(t *testing.T) {
	cards := make([]Card, 0, DeckSize)
	for i := 0; i < 20; i++ {
		cards = append(cards, basicCard("Same Name"))
	}
	_, err := New(cards)
	require.Error(t, err)

	var dve *tcgerrors.DeckValidationError
	require.ErrorAs(t, err, &dve)
	assert.Equal(t, tcgerrors.TooManyCopies, dve.Kind)
}

func TestValidateNoBasicPokemon(t *testing.T) {
	cards := make([]Card, 0, DeckSize)
	for i := 0; i < 10; i++ {
		cards = append(cards, Card{ID: "t1", Name: "Potion", Category: CategoryItem})
		cards = append(cards, Card{ID: "t2", Name: "Poke Ball", Category: CategoryItem})
	}
	_, err := New(cards)
	require.Error(t, err)

	var dve *tcgerrors.DeckValidationError
	require.ErrorAs(t, err, &dve)
	assert.Equal(t, tcgerrors.NoBasicPokemon, dve.Kind)
}

func TestValidateBrokenEvolutionLine(t *testing.T) {
	cards := fullValidDeck()
	cards[0] = Card{ID: "evo", Name: "Evolved", Category: CategoryPokemon, StagePok: Stage1, EvolvesFrom: "Nonexistent", HP: 90}

	_, err := New(cards)
	require.Error(t, err)

	var dve *tcgerrors.DeckValidationError
	require.ErrorAs(t, err, &dve)
	assert.Equal(t, tcgerrors.BrokenEvolutionLine, dve.Kind)
}

func TestValidDeckPasses(t *testing.T) {
	d, err := New(fullValidDeck())
	require.NoError(t, err)
	assert.Equal(t, DeckSize, len(d.Cards))
	assert.Equal(t, 20, d.BasicPokemonCount())
}

func TestEvolutionLines(t *testing.T) {
	cards := fullValidDeck()
	cards[0] = Card{ID: "s1", Name: "Stage One", Category: CategoryPokemon, StagePok: Stage1, EvolvesFrom: "Basic A", HP: 90}

	d := NewUnchecked(cards)
	lines := d.EvolutionLines()

	found := false
	for _, l := range lines {
		if l.Basic == "Basic A" {
			found = true
			assert.Equal(t, "Stage One", l.Stage1)
		}
	}
	assert.True(t, found)
}

package adapter

import (
	"github.com/google/uuid"

	"tcg-pocket-engine/internal/engine/card"
)

// DeckBuildRequest names a candidate 20-card deck submitted by a driver
// (human deckbuilder UI or RL training harness) for validation.
type DeckBuildRequest struct {
	ID    string
	Cards []card.Card
}

// NewDeckBuildRequest mints a DeckBuildRequest with a fresh uuid ID.
func NewDeckBuildRequest(cards []card.Card) DeckBuildRequest {
	return DeckBuildRequest{ID: uuid.NewString(), Cards: cards}
}

// DeckSummary is the read-only introspection a deckbuilding UI shows
// while a deck is being assembled, backed by card.Deck's own helpers.
type DeckSummary struct {
	Size              int
	BasicPokemonCount int
	TrainerCount      int
	EvolutionLines    []card.EvolutionLine
	Valid             bool
	ValidationError   error
}

// Summarize builds a DeckSummary for req, validating it against §4.B's
// deck-construction invariants.
func Summarize(req DeckBuildRequest) DeckSummary {
	d := card.NewUnchecked(req.Cards)
	err := d.Validate()
	return DeckSummary{
		Size:              len(d.Cards),
		BasicPokemonCount: d.BasicPokemonCount(),
		TrainerCount:      d.TrainerCount(),
		EvolutionLines:    d.EvolutionLines(),
		Valid:             err == nil,
		ValidationError:   err,
	}
}

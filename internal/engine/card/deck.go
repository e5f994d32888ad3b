package card

import (
	"fmt"

	tcgerrors "tcg-pocket-engine/internal/errors"
)

const (
	// DeckSize is the fixed number of cards a valid deck contains.
	DeckSize = 20
	// MaxCopies is the maximum number of copies of a distinct card name
	// permitted in one deck.
	MaxCopies = 2
)

// Deck is an ordered sequence of cards. Order matters: it is the draw
// order before the initial shuffle.
type Deck struct {
	Cards []Card
}

// New validates deck before returning it.
func New(cards []Card) (Deck, error) {
	d := Deck{Cards: cards}
	if err := d.Validate(); err != nil {
		return Deck{}, err
	}
	return d, nil
}

// NewUnchecked constructs a Deck without validation, for tests that need
// to exercise engine behavior on decks that would otherwise be rejected.
func NewUnchecked(cards []Card) Deck {
	return Deck{Cards: cards}
}

// Validate reports the deck's first validity violation, if any.
func (d Deck) Validate() error {
	if len(d.Cards) != DeckSize {
		return &tcgerrors.DeckValidationError{
			Kind:   tcgerrors.WrongSize,
			Detail: fmt.Sprintf("deck has %d cards, want %d", len(d.Cards), DeckSize),
		}
	}

	counts := make(map[string]int, len(d.Cards))
	for _, c := range d.Cards {
		counts[c.Name]++
		if counts[c.Name] > MaxCopies {
			return &tcgerrors.DeckValidationError{
				Kind:   tcgerrors.TooManyCopies,
				Detail: fmt.Sprintf("%q appears %d times, max %d", c.Name, counts[c.Name], MaxCopies),
			}
		}
	}

	if d.basicCount() == 0 {
		return &tcgerrors.DeckValidationError{
			Kind:   tcgerrors.NoBasicPokemon,
			Detail: "deck has no Basic Pokémon",
		}
	}

	names := make(map[string]bool, len(d.Cards))
	for _, c := range d.Cards {
		names[c.Name] = true
	}
	for _, c := range d.Cards {
		if c.IsEvolution() && !names[c.EvolvesFrom] {
			return &tcgerrors.DeckValidationError{
				Kind:   tcgerrors.BrokenEvolutionLine,
				Detail: fmt.Sprintf("%q evolves from %q, which is not in the deck", c.Name, c.EvolvesFrom),
			}
		}
	}

	return nil
}

func (d Deck) basicCount() int {
	n := 0
	for _, c := range d.Cards {
		if c.IsBasic() {
			n++
		}
	}
	return n
}

// BasicPokemonCount returns the number of Basic Pokémon in the deck.
func (d Deck) BasicPokemonCount() int { return d.basicCount() }

// TrainerCount returns the number of trainer-category cards in the deck.
func (d Deck) TrainerCount() int {
	n := 0
	for _, c := range d.Cards {
		if c.IsTrainer() {
			n++
		}
	}
	return n
}

// EvolutionLine is a Basic and the chain of evolutions built on top of it,
// ordered Basic -> Stage1 -> Stage2 (a line may stop short of Stage2).
type EvolutionLine struct {
	Basic  string
	Stage1 string
	Stage2 string
}

// EvolutionLines groups the deck's Pokémon into evolution chains rooted at
// each Basic. Useful for deck-build summaries; not consulted by the
// engine at runtime.
func (d Deck) EvolutionLines() []EvolutionLine {
	byEvolvesFrom := make(map[string]Card)
	for _, c := range d.Cards {
		if c.IsEvolution() {
			byEvolvesFrom[c.EvolvesFrom] = c
		}
	}

	var lines []EvolutionLine
	seen := make(map[string]bool)
	for _, c := range d.Cards {
		if !c.IsBasic() || seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		line := EvolutionLine{Basic: c.Name}
		if s1, ok := byEvolvesFrom[c.Name]; ok {
			line.Stage1 = s1.Name
			if s2, ok := byEvolvesFrom[s1.Name]; ok {
				line.Stage2 = s2.Name
			}
		}
		lines = append(lines, line)
	}
	return lines
}

// Package state defines the mutable game state model: PlayedCard,
// PlayerState and GameState, with the invariants from §3/§8 enforced by
// the methods that mutate them (status exclusivity, non-negative damage
// counters).
package state

import "tcg-pocket-engine/internal/engine/card"

const (
	// MaxBench is the number of bench slots a player has.
	MaxBench = 3
	// PrizeCount is the number of prize cards each player starts with.
	PrizeCount = 3
	// StartingHand is the number of cards dealt to each player at setup.
	StartingHand = 5
)

// TurnPhase is the current phase of the turn/phase state machine.
type TurnPhase int

const (
	PhaseSetup TurnPhase = iota
	PhaseMain
	PhaseEffectChoice
	PhaseGameOver
)

// StatusCondition is a status a Pokémon can be affected by.
type StatusCondition int

const (
	StatusNone StatusCondition = iota
	Poisoned
	Burned
	Asleep
	Paralyzed
	Confused
)

// TempFlags is the per-turn overlay cleared at the start of each of a
// player's turns.
type TempFlags struct {
	PreventDamageAmount int
	BonusDamage         int
	CantRetreat         bool
	UsedAbility         bool
}

// PlayedCard is a Pokémon on the board.
type PlayedCard struct {
	Card            card.Card
	AttachedEnergy  []card.EnergyType
	DamageCounters  int
	StatusConditions map[StatusCondition]bool
	EvolvedFrom     *PlayedCard
	TurnPlayed      int
	Tool            *card.Card
	TempFlags       TempFlags

	// SurviveKOUsed tracks a SurviveKO mechanic's once-per-game charge, so
	// it can't save the same Pokémon twice. Unlike TempFlags this persists
	// across turns.
	SurviveKOUsed bool
}

// NewPlayedCard places c onto the board as a freshly-played Pokémon.
func NewPlayedCard(c card.Card, turnPlayed int) *PlayedCard {
	return &PlayedCard{
		Card:             c,
		StatusConditions: make(map[StatusCondition]bool),
		TurnPlayed:       turnPlayed,
	}
}

// MaxHP returns the Pokémon's maximum hit points.
func (p *PlayedCard) MaxHP() int { return p.Card.HP }

// RemainingHP returns max HP minus 10 per damage counter. This may be
// negative transiently, between damage application and the knockout check
// that immediately follows it within the same step.
func (p *PlayedCard) RemainingHP() int {
	return p.MaxHP() - 10*p.DamageCounters
}

// IsKnockedOut reports whether remaining HP has reached zero or below.
func (p *PlayedCard) IsKnockedOut() bool {
	return p.RemainingHP() <= 0
}

// CanEvolve reports whether this Pokémon may evolve on currentTurn:
// evolving is "summoning sickness"-gated to the turn after it entered
// play.
func (p *PlayedCard) CanEvolve(currentTurn int) bool {
	return currentTurn > p.TurnPlayed
}

// HasStatus reports whether s is currently applied.
func (p *PlayedCard) HasStatus(s StatusCondition) bool {
	return p.StatusConditions[s]
}

// exclusiveStatuses mutually exclude one another: applying one clears the
// others.
var exclusiveStatuses = map[StatusCondition]bool{
	Asleep:    true,
	Paralyzed: true,
	Confused:  true,
}

// ApplyStatus applies s, clearing any other mutually-exclusive status
// first. Poisoned and Burned may coexist with anything.
func (p *PlayedCard) ApplyStatus(s StatusCondition) {
	if exclusiveStatuses[s] {
		for other := range exclusiveStatuses {
			delete(p.StatusConditions, other)
		}
	}
	p.StatusConditions[s] = true
}

// ClearStatus removes s.
func (p *PlayedCard) ClearStatus(s StatusCondition) {
	delete(p.StatusConditions, s)
}

// ClearTempFlags resets the per-turn overlay.
func (p *PlayedCard) ClearTempFlags() {
	p.TempFlags = TempFlags{}
}

// PlayerState is one player's board, hand, deck, discard and per-turn
// flags.
type PlayerState struct {
	Deck    []card.Card
	Hand    []card.Card
	Active  *PlayedCard
	Bench   [MaxBench]*PlayedCard
	Discard []card.Card
	Prizes  []card.Card

	EnergyZoneType *card.EnergyType
	EnergyGenerated bool
	SupporterPlayed bool
	RetreatedThisTurn bool

	Points int
}

// NewPlayerState constructs an empty player board.
func NewPlayerState() *PlayerState {
	return &PlayerState{}
}

// BenchCount returns the number of occupied bench slots.
func (p *PlayerState) BenchCount() int {
	n := 0
	for _, b := range p.Bench {
		if b != nil {
			n++
		}
	}
	return n
}

// FindEmptyBench returns the index of the first free bench slot, or -1.
func (p *PlayerState) FindEmptyBench() int {
	for i, b := range p.Bench {
		if b == nil {
			return i
		}
	}
	return -1
}

// GetPokemon returns the Pokémon at board position pos (0 = active,
// 1..3 = bench), or nil if the slot is empty.
func (p *PlayerState) GetPokemon(pos int) *PlayedCard {
	if pos == 0 {
		return p.Active
	}
	if pos >= 1 && pos <= MaxBench {
		return p.Bench[pos-1]
	}
	return nil
}

// SetPokemon places pc at board position pos.
func (p *PlayerState) SetPokemon(pos int, pc *PlayedCard) {
	if pos == 0 {
		p.Active = pc
		return
	}
	if pos >= 1 && pos <= MaxBench {
		p.Bench[pos-1] = pc
	}
}

// AllPokemon returns every occupied board position's Pokémon, active
// first then bench in slot order.
func (p *PlayerState) AllPokemon() []*PlayedCard {
	var out []*PlayedCard
	if p.Active != nil {
		out = append(out, p.Active)
	}
	for _, b := range p.Bench {
		if b != nil {
			out = append(out, b)
		}
	}
	return out
}

// HasPokemonInPlay reports whether the player has any Pokémon at all.
func (p *PlayerState) HasPokemonInPlay() bool {
	return len(p.AllPokemon()) > 0
}

// HasBasicInHand reports whether the hand contains a Basic Pokémon.
func (p *PlayerState) HasBasicInHand() bool {
	for _, c := range p.Hand {
		if c.IsBasic() {
			return true
		}
	}
	return false
}

// StartTurn resets the per-turn booleans and clears temp flags on every
// one of this player's Pokémon, at the start of their turn.
func (p *PlayerState) StartTurn() {
	p.EnergyGenerated = false
	p.SupporterPlayed = false
	p.RetreatedThisTurn = false
	for _, pc := range p.AllPokemon() {
		pc.ClearTempFlags()
	}
}

// PendingChoiceKind discriminates the PendingChoice union.
type PendingChoiceKind int

const (
	PromoteFromBench PendingChoiceKind = iota
	ChooseTarget
	DiscardFromHand
	DiscardEnergy
)

// PendingChoice parks the engine awaiting a matching Choose*/Promote*
// action from the driver.
type PendingChoice struct {
	Kind          PendingChoiceKind
	ValidPositions []int
	Description   string
	Count         int
	Position      int
}

// DeferredTurnEndKind discriminates DeferredTurnEnd.
type DeferredTurnEndKind int

const (
	DeferredNone DeferredTurnEndKind = iota
	NeedFullEndTurn
	NeedTurnSwitch
)

// DeferredTurnEnd records which end-of-turn work remains to run once a
// KO-triggered promotion choice is answered, so between-turns effects are
// never re-run twice for the same turn switch.
type DeferredTurnEnd struct {
	Kind   DeferredTurnEndKind
	Player int
}

// GameState is the full state of one game.
type GameState struct {
	Players       [2]*PlayerState
	CurrentPlayer int
	TurnNumber    int
	Phase         TurnPhase
	FirstTurn     bool
	Winner        *int
	PendingChoice *PendingChoice
	DeferredEnd   DeferredTurnEnd
}

// Current returns the acting player's state.
func (g *GameState) Current() *PlayerState { return g.Players[g.CurrentPlayer] }

// Opponent returns the non-acting player's state.
func (g *GameState) Opponent() *PlayerState { return g.Players[1-g.CurrentPlayer] }

// IsTerminal reports whether the game has ended.
func (g *GameState) IsTerminal() bool { return g.Phase == PhaseGameOver }

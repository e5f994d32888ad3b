// Package effect defines the Mechanic effect IR — a closed tagged union
// covering every card behavior the executor knows how to run — and the
// Registry that maps cards to their ordered Mechanic lists. There is no
// runtime text parsing here: the Registry is populated once from an
// authoritative per-card mapping supplied by an external authoring tool.
package effect

import "tcg-pocket-engine/internal/engine/card"

// Kind discriminates the Mechanic tagged union.
type Kind int

const (
	NoOp Kind = iota
	Custom

	// Damage shaping (executed in the executor's first pass), except
	// BenchDamage, which is a side effect run in the second pass.
	Damage
	DamageOnCoinFlip
	DamagePerCoinFlip
	ConditionalDamage
	DamageMultiplied
	DamagePerEnergy
	DamagePerBench
	DamagePerDamageCounter
	NoDamageOnTails
	BenchDamage

	// Healing / status.
	Heal
	FullHeal
	ApplyStatus
	ApplyStatusOnCoinFlip
	CureStatus

	// Energy manipulation.
	DiscardEnergy
	DiscardAllEnergy
	DiscardOpponentEnergy
	MoveEnergy
	MoveAllEnergy
	AttachEnergyFromDiscard
	AttachEnergyFromZone

	// Card manipulation.
	DrawCards
	OpponentDiscard
	SearchDeck
	SearchDeckRandom
	ShuffleHandDraw
	OpponentShuffleHandDraw
	BothShuffleHandDraw
	RecoverFromDiscard
	DiscardFromHand
	PeekDeck

	// Board manipulation.
	SwitchOpponentActive
	SwitchOwnActive
	BounceToHand
	ShuffleIntoDeck
	PutOnOpponentBench
	CantRetreat
	CantAttackNextTurn
	EvolveFromDeck
	EvolveSkipStage

	// Turn-scope modifiers.
	DamageBoost
	DamageReduction
	RetreatCostReduction
	SurviveKO
	GuaranteedHeads
	MoveDamage
	EndTurnEffect

	// Damage prevention.
	SelfDamage
	PreventDamage
	Invulnerable

	// Passive / event-triggered.
	PassiveHPBoost
	PassiveDamageReduction
	PassiveDamageBoost
	PassiveRetreatReduction
	PassiveAttackCostIncrease
	RetaliationDamage
	RetaliationStatus
	OnKODamage
	OnKOBounceToHand
	OnKOMoveEnergy
	OnKODrawCard
	HealBetweenTurns
	CureStatusBetweenTurns
	StatusImmunity
	UsePreEvoAttacks
	DamageBoostPerPoint
)

// Target identifies which Pokémon a Mechanic acts on.
type Target int

const (
	This Target = iota
	OwnActive
	OpponentActive
	OpponentBench
	OpponentChooseBench
	ChooseOpponentBench
	ChooseOwnBench
	ChooseOwn
	AllOwn
)

// Condition is referenced by scaling/conditional damage mechanics.
type Condition int

const (
	ConditionNone Condition = iota
	TargetHasDamage
	CoinFlipHeads
	PerOwnBench
	PerOpponentBench
	PerDamageOnSelf
	PerEnergyAttached
	PerAnyEnergyAttached
)

// Mechanic is one entry of a card's effect list. Only the fields relevant
// to Kind are meaningful; the rest are zero. This mirrors the flattened
// tagged-event-struct shape used elsewhere in this codebase for other
// closed unions of many lightly-parameterized variants.
type Mechanic struct {
	Kind Kind

	Target Target

	// Numeric parameters. Meaning depends on Kind:
	//   Amount    - damage/heal HP, discard count, draw count, etc.
	//   Per       - per-unit amount for scaling mechanics.
	//   Flips     - number of coin flips for DamagePerCoinFlip.
	Amount int
	Per    int
	Flips  int
	Bonus  int

	Condition  Condition
	EnergyType card.EnergyType
	Status     StatusCondition

	// Tag carries the Custom mechanic's opaque identifier.
	Tag string
}

// StatusCondition is one of the statuses a Pokémon can carry.
type StatusCondition int

const (
	StatusNone StatusCondition = iota
	Poisoned
	Burned
	Asleep
	Paralyzed
	Confused
)

// IsDamageShaping reports whether m participates in the executor's first
// (damage-shaping) pass rather than the side-effect pass.
func (m Mechanic) IsDamageShaping() bool {
	switch m.Kind {
	case Damage, DamageOnCoinFlip, DamagePerCoinFlip, ConditionalDamage,
		DamageMultiplied, DamagePerEnergy, DamagePerBench, DamagePerDamageCounter,
		NoDamageOnTails:
		return true
	default:
		return false
	}
}

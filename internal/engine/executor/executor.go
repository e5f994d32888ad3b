// Package executor applies Mechanic effects to a GameState. Attack
// effects run through a two-pass pipeline (damage shaping, then side
// effects) before the damage application pipeline runs; ability/trainer/
// tool effects run as a flat side-effect pass.
package executor

import (
	"tcg-pocket-engine/internal/engine/card"
	"tcg-pocket-engine/internal/engine/effect"
	"tcg-pocket-engine/internal/engine/rng"
	"tcg-pocket-engine/internal/engine/state"
)

// Executor runs Mechanic lists against a GameState using a Source for any
// randomness the mechanics require. Registry is optional: when set, it
// lets Execute consult a target's own attached tool/ability mechanics
// (StatusImmunity) before applying an effect.
type Executor struct {
	RNG      *rng.Source
	Registry *Registry
}

// New constructs an Executor bound to src, with no registry access.
func New(src *rng.Source) *Executor {
	return &Executor{RNG: src}
}

// NewWithRegistry constructs an Executor bound to src that can consult
// reg for passive mechanics gating its own effects, such as
// StatusImmunity.
func NewWithRegistry(src *rng.Source, reg *Registry) *Executor {
	return &Executor{RNG: src, Registry: reg}
}

// AttackResult is the outcome of resolving one attack's Mechanic list,
// ready for the turn engine's damage-application pipeline (§4.F steps
// 1-6).
type AttackResult struct {
	// DamageOverride is the shaped damage before weakness/bonus/reduction,
	// or nil if the shaping pass produced no override and base damage
	// should be used unmodified.
	DamageOverride *int
}

// ResolveAttackEffects runs the two-pass attack pipeline over mechanics
// and applies every side effect except the shape-modifying variants
// (those only influence DamageOverride). baseDamage is the attack's
// printed damage.
func (e *Executor) ResolveAttackEffects(s *state.GameState, mechanics []effect.Mechanic, baseDamage int) int {
	attacker := s.Current().Active
	defender := s.Opponent().Active

	override := e.shapeDamage(s, mechanics, attacker, defender)

	for _, m := range mechanics {
		if m.IsDamageShaping() {
			continue
		}
		e.Execute(s, m)
	}

	return combineDamage(baseDamage, override)
}

// combineDamage applies §4.F's combination rule between base damage and
// a shaping-pass override.
func combineDamage(base int, override *int) int {
	if override == nil {
		return base
	}
	if base > 0 && *override > 0 {
		return base + *override
	}
	if base == 0 {
		return *override
	}
	return *override
}

func (e *Executor) shapeDamage(s *state.GameState, mechanics []effect.Mechanic, attacker, defender *state.PlayedCard) *int {
	var override *int
	set := func(v int) {
		override = &v
	}
	add := func(v int) {
		if override == nil {
			set(v)
		} else {
			*override += v
		}
	}

	for _, m := range mechanics {
		switch m.Kind {
		case effect.NoDamageOnTails, effect.DamageOnCoinFlip:
			if !e.RNG.CoinFlip() {
				set(0)
			}
		case effect.DamagePerCoinFlip:
			heads := e.RNG.CoinFlips(m.Flips)
			set(heads * m.Per)
		case effect.ConditionalDamage:
			if e.checkCondition(s, m.Condition, m.EnergyType, attacker, defender) {
				add(m.Bonus)
			}
		case effect.DamageMultiplied:
			set(m.Per * e.countCondition(s, m.Condition, m.EnergyType, attacker, defender))
		case effect.DamagePerEnergy:
			set(m.Per * countEnergy(attacker, m.EnergyType))
		case effect.DamagePerBench:
			set(m.Per * e.countCondition(s, m.Condition, m.EnergyType, attacker, defender))
		case effect.DamagePerDamageCounter:
			target := defender
			if m.Target == effect.This {
				target = attacker
			}
			if target != nil {
				set(m.Per * target.DamageCounters)
			}
		}
	}

	return override
}

func countEnergy(pc *state.PlayedCard, et card.EnergyType) int {
	if pc == nil {
		return 0
	}
	n := 0
	for _, e := range pc.AttachedEnergy {
		if e == et {
			n++
		}
	}
	return n
}

func (e *Executor) checkCondition(s *state.GameState, c effect.Condition, et card.EnergyType, attacker, defender *state.PlayedCard) bool {
	switch c {
	case effect.TargetHasDamage:
		return defender != nil && defender.DamageCounters > 0
	case effect.CoinFlipHeads:
		return e.RNG.CoinFlip()
	case effect.PerOwnBench:
		return s.Current().BenchCount() > 0
	case effect.PerOpponentBench:
		return s.Opponent().BenchCount() > 0
	case effect.PerDamageOnSelf:
		return attacker != nil && attacker.DamageCounters > 0
	case effect.PerEnergyAttached:
		return countEnergy(attacker, et) > 0
	case effect.PerAnyEnergyAttached:
		return attacker != nil && len(attacker.AttachedEnergy) > 0
	default:
		return false
	}
}

func (e *Executor) countCondition(s *state.GameState, c effect.Condition, et card.EnergyType, attacker, defender *state.PlayedCard) int {
	switch c {
	case effect.PerOwnBench:
		return s.Current().BenchCount()
	case effect.PerOpponentBench:
		return s.Opponent().BenchCount()
	case effect.PerDamageOnSelf:
		if attacker != nil {
			return attacker.DamageCounters
		}
		return 0
	case effect.PerEnergyAttached:
		return countEnergy(attacker, et)
	case effect.PerAnyEnergyAttached:
		if attacker != nil {
			return len(attacker.AttachedEnergy)
		}
		return 0
	default:
		return 0
	}
}

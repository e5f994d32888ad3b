package executor

import (
	"tcg-pocket-engine/internal/engine/effect"
	"tcg-pocket-engine/internal/engine/state"
)

// DamagePipeline runs §4.F's post-shaping damage pipeline (weakness,
// attacker bonuses, defender reductions) and returns the final HP amount
// to apply. It does not mutate state; ApplyDamage does that and the
// caller is responsible for the subsequent retaliation/KO steps.
func DamagePipeline(registry *Registry, attacker, defender *state.PlayedCard, shaped int, attackerPoints int) int {
	damage := shaped

	if defender.Card.Weakness != nil && attacker.Card.EnergyType == *defender.Card.Weakness {
		damage += 20
	}

	damage += attacker.TempFlags.BonusDamage
	if registry != nil {
		for _, m := range registry.ToolMechanics(attacker) {
			if m.Kind == effect.PassiveDamageBoost {
				damage += m.Amount
			}
			if m.Kind == effect.DamageBoostPerPoint {
				damage += m.Per * attackerPoints
			}
		}
		for _, m := range registry.AbilityMechanics(attacker) {
			if m.Kind == effect.DamageBoostPerPoint {
				damage += m.Per * attackerPoints
			}
		}
	}

	damage -= defender.TempFlags.PreventDamageAmount
	if registry != nil {
		for _, m := range registry.ToolMechanics(defender) {
			if m.Kind == effect.PassiveDamageReduction {
				damage -= m.Amount
			}
		}
		for _, m := range registry.AbilityMechanics(defender) {
			if m.Kind == effect.PassiveDamageReduction {
				damage -= m.Amount
			}
		}
	}

	if damage < 0 {
		damage = 0
	}
	return damage
}

// ApplyDamage converts HP damage to counters and applies it to defender.
func ApplyDamage(defender *state.PlayedCard, hp int) {
	defender.DamageCounters += hp / 10
}

// EffectiveMaxHP returns pc's maximum HP including any PassiveHPBoost
// granted by its attached tool or ability, read from registry at the call
// site rather than cached on pc.
func EffectiveMaxHP(registry *Registry, pc *state.PlayedCard) int {
	maxHP := pc.MaxHP()
	if registry == nil {
		return maxHP
	}
	for _, m := range registry.ToolMechanics(pc) {
		if m.Kind == effect.PassiveHPBoost {
			maxHP += m.Amount
		}
	}
	for _, m := range registry.AbilityMechanics(pc) {
		if m.Kind == effect.PassiveHPBoost {
			maxHP += m.Amount
		}
	}
	return maxHP
}

// IsKnockedOut reports whether pc has been knocked out, using
// EffectiveMaxHP so a PassiveHPBoost card survives past its base HP.
func IsKnockedOut(registry *Registry, pc *state.PlayedCard) bool {
	return EffectiveMaxHP(registry, pc)-10*pc.DamageCounters <= 0
}

// HasStatusImmunity reports whether pc's attached tool or ability carries
// a StatusImmunity mechanic for status, blocking it from ever being
// applied.
func HasStatusImmunity(registry *Registry, pc *state.PlayedCard, status state.StatusCondition) bool {
	if registry == nil {
		return false
	}
	check := func(mechanics []effect.Mechanic) bool {
		for _, m := range mechanics {
			if m.Kind == effect.StatusImmunity && state.StatusCondition(m.Status) == status {
				return true
			}
		}
		return false
	}
	return check(registry.ToolMechanics(pc)) || check(registry.AbilityMechanics(pc))
}

// Registry is the minimal surface DamagePipeline needs from
// internal/engine/effect's Registry, expressed here to avoid a dependency
// cycle (effect does not know about state.PlayedCard). The turn engine's
// concrete adapter satisfies this by looking up a PlayedCard's attached
// tool/ability in the real effect.Registry.
type Registry struct {
	ToolMechanicsFn    func(pc *state.PlayedCard) []effect.Mechanic
	AbilityMechanicsFn func(pc *state.PlayedCard) []effect.Mechanic
}

func (r *Registry) ToolMechanics(pc *state.PlayedCard) []effect.Mechanic {
	if r == nil || r.ToolMechanicsFn == nil {
		return nil
	}
	return r.ToolMechanicsFn(pc)
}

func (r *Registry) AbilityMechanics(pc *state.PlayedCard) []effect.Mechanic {
	if r == nil || r.AbilityMechanicsFn == nil {
		return nil
	}
	return r.AbilityMechanicsFn(pc)
}

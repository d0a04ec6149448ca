package engine

import (
	"math"

	"github.com/KirkDiggler/verb-battle/internal/entities"
)

// Damage rule constants
const (
	DefaultPlayerBaseDamage = 20
	comboStep               = 0.1
)

// DamageCalculator turns combo state and class into damage and XP
type DamageCalculator struct {
	baseDamage int
}

// NewDamageCalculator creates a calculator with the player's base damage.
// Non-positive values fall back to DefaultPlayerBaseDamage.
func NewDamageCalculator(baseDamage int) *DamageCalculator {
	if baseDamage <= 0 {
		baseDamage = DefaultPlayerBaseDamage
	}
	return &DamageCalculator{baseDamage: baseDamage}
}

// BaseDamage returns the player's base damage
func (d *DamageCalculator) BaseDamage() int {
	return d.baseDamage
}

// PlayerDamage is the damage a correct answer deals given the combo count
// before the answer is counted:
//
//	round(base * (1 + combo*0.1) * classMultiplier(combo))
func (d *DamageCalculator) PlayerDamage(class entities.CharacterClass, comboCount int) int {
	if comboCount < 0 {
		comboCount = 0
	}
	raw := float64(d.baseDamage) * (1 + float64(comboCount)*comboStep) * class.DamageMultiplier(comboCount)
	return int(math.Round(raw))
}

// EnemyDamage is the damage a miss costs the player
func (d *DamageCalculator) EnemyDamage(baseDamage int, multiplier float64) int {
	if baseDamage <= 0 {
		return 0
	}
	if multiplier <= 0 {
		multiplier = 1
	}
	return int(math.Round(float64(baseDamage) * multiplier))
}

// VictoryXP is xpReward + floor(xpReward * maxCombo * 0.1)
func (d *DamageCalculator) VictoryXP(xpReward, maxCombo int) int {
	if xpReward <= 0 {
		return 0
	}
	// integer form avoids float truncation surprises like 20*3*0.1 = 5.999...
	return xpReward + (xpReward*maxCombo)/10
}

package engine

import (
	"math"

	"github.com/KirkDiggler/verb-battle/internal/entities"
)

// PhaseChange describes one boss phase transition
type PhaseChange struct {
	From      int
	To        int
	Threshold entities.PhaseThreshold
}

// BossPhaseController escalates a boss through its phase thresholds as its
// health ratio drops. The phase number never decreases.
type BossPhaseController struct {
	phases []entities.PhaseThreshold
	// reached is how many thresholds have been crossed
	reached int
}

// NewBossPhaseController creates a controller for enemy. Regular enemies get
// a controller that stays in phase 1.
func NewBossPhaseController(enemy *entities.Enemy) *BossPhaseController {
	b := &BossPhaseController{}
	if enemy != nil && enemy.IsBoss {
		b.phases = append([]entities.PhaseThreshold(nil), enemy.Phases...)
	}
	return b
}

// Active reports whether this controller has any phases to escalate through
func (b *BossPhaseController) Active() bool {
	return len(b.phases) > 0
}

// Phase returns the current phase number, starting at 1
func (b *BossPhaseController) Phase() int {
	return b.reached + 1
}

// Evaluate advances past every threshold at or above ratio and returns the
// transitions in order. Several can happen at once when one hit crosses more
// than one threshold.
func (b *BossPhaseController) Evaluate(ratio float64) []PhaseChange {
	var changes []PhaseChange
	for b.reached < len(b.phases) && ratio <= b.phases[b.reached].Ratio {
		changes = append(changes, PhaseChange{
			From:      b.reached + 1,
			To:        b.reached + 2,
			Threshold: b.phases[b.reached],
		})
		b.reached++
	}
	return changes
}

// DamageMultiplier scales the enemy's base damage in the current phase
func (b *BossPhaseController) DamageMultiplier() float64 {
	if b.reached == 0 {
		return 1
	}
	return b.phases[b.reached-1].DamageMultiplier
}

// TimeLimitFactor scales the base challenge time limit in the current phase
func (b *BossPhaseController) TimeLimitFactor() float64 {
	if b.reached == 0 {
		return 1
	}
	return b.phases[b.reached-1].TimeLimitFactor
}

// StrictMatch reports whether the current phase demands an exact answer
func (b *BossPhaseController) StrictMatch() bool {
	if b.reached == 0 {
		return false
	}
	return b.phases[b.reached-1].StrictMatch
}

// TimeLimit scales base seconds by the current factor, never below one second
func (b *BossPhaseController) TimeLimit(base int) int {
	limit := int(math.Round(float64(base) * b.TimeLimitFactor()))
	if limit < 1 {
		limit = 1
	}
	return limit
}

package entities

const entityTypeEnemy = "enemy"

// PhaseThreshold is a boss health-ratio breakpoint. When the boss health
// ratio drops to Ratio or below, the phase's modifiers replace the previous ones.
type PhaseThreshold struct {
	Ratio            float64
	DamageMultiplier float64
	// TimeLimitFactor scales the base challenge time limit. It is relative to
	// the base limit, not to the previous phase.
	TimeLimitFactor float64
	StrictMatch     bool
}

// DefaultBossPhases are used for bosses whose definition lists no phases.
// Phase 2 starts at 60% health, phase 3 at 30%.
func DefaultBossPhases() []PhaseThreshold {
	return []PhaseThreshold{
		{Ratio: 0.6, DamageMultiplier: 1.5, TimeLimitFactor: 0.8},
		{Ratio: 0.3, DamageMultiplier: 2.0, TimeLimitFactor: 0.7, StrictMatch: true},
	}
}

// EnemyTemplate is the static definition of an enemy, read from world data
type EnemyTemplate struct {
	ID                string
	Name              string
	MaxHealth         int
	Tenses            []TenseRef
	Pronouns          []string
	QuestionsRequired int
	XPReward          int
	BaseDamage        int
	IsBoss            bool
	// Phases are ordered by descending Ratio. Empty for regular enemies.
	Phases []PhaseThreshold
}

// Enemy is an enemy instance for a single battle. Health stays within [0, MaxHealth].
type Enemy struct {
	EnemyTemplate
	Health int
}

// Instantiate creates a fresh enemy at full health
func (t *EnemyTemplate) Instantiate() *Enemy {
	tmpl := *t
	tmpl.Tenses = append([]TenseRef(nil), t.Tenses...)
	tmpl.Pronouns = append([]string(nil), t.Pronouns...)
	tmpl.Phases = append([]PhaseThreshold(nil), t.Phases...)
	return &Enemy{
		EnemyTemplate: tmpl,
		Health:        t.MaxHealth,
	}
}

// GetID implements core.Entity
func (e *Enemy) GetID() string {
	return e.ID
}

// GetType implements core.Entity
func (e *Enemy) GetType() string {
	return entityTypeEnemy
}

// TakeDamage lowers health by amount, never below zero, and returns the
// damage actually applied
func (e *Enemy) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	if amount > e.Health {
		amount = e.Health
	}
	e.Health -= amount
	return amount
}

// HealthRatio returns Health / MaxHealth
func (e *Enemy) HealthRatio() float64 {
	if e.MaxHealth <= 0 {
		return 0
	}
	return float64(e.Health) / float64(e.MaxHealth)
}

// IsDefeated reports whether the enemy has no health left
func (e *Enemy) IsDefeated() bool {
	return e.Health <= 0
}

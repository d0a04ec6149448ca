package entities

// ClassID identifies a character class
type ClassID string

// Class constants
const (
	ClassWarrior ClassID = "warrior"
	ClassMage    ClassID = "mage"
	ClassCleric  ClassID = "cleric"
)

// CharacterClass describes the combat modifiers a class grants
type CharacterClass struct {
	ID   ClassID
	Name string

	// ComboThreshold is the combo count at which ComboMultiplier starts to
	// apply. Zero means the class has no combo bonus.
	ComboThreshold  int
	ComboMultiplier float64

	// TimeBonusSeconds is added to every challenge time limit
	TimeBonusSeconds int

	// HealthBonus is added to the starting maximum health
	HealthBonus int
}

var classes = []CharacterClass{
	{
		ID:              ClassWarrior,
		Name:            "Warrior",
		ComboThreshold:  3,
		ComboMultiplier: 1.5,
	},
	{
		ID:               ClassMage,
		Name:             "Mage",
		TimeBonusSeconds: 3,
	},
	{
		ID:          ClassCleric,
		Name:        "Cleric",
		HealthBonus: 20,
	},
}

// LookupClass returns the class definition for id
func LookupClass(id ClassID) (CharacterClass, bool) {
	for _, c := range classes {
		if c.ID == id {
			return c, true
		}
	}
	return CharacterClass{}, false
}

// Classes returns every playable class in display order
func Classes() []CharacterClass {
	out := make([]CharacterClass, len(classes))
	copy(out, classes)
	return out
}

// ClassIDStrings returns the class identifiers as strings, for flag help and validation
func ClassIDStrings() []string {
	ids := make([]string, len(classes))
	for i, c := range classes {
		ids[i] = string(c.ID)
	}
	return ids
}

// DamageMultiplier returns the class multiplier for the given combo count
func (c CharacterClass) DamageMultiplier(comboCount int) float64 {
	if c.ComboThreshold > 0 && comboCount >= c.ComboThreshold {
		return c.ComboMultiplier
	}
	return 1.0
}

package engine_test

import (
	"github.com/KirkDiggler/verb-battle/internal/content"
	"github.com/KirkDiggler/verb-battle/internal/entities"
	"github.com/KirkDiggler/verb-battle/internal/errors"
)

// scriptedRoller returns the queued rolls in order, then 1 forever
type scriptedRoller struct {
	rolls []int
	sizes []int
	err   error
}

func (r *scriptedRoller) Roll(size int) (int, error) {
	r.sizes = append(r.sizes, size)
	if r.err != nil {
		return 0, r.err
	}
	if len(r.rolls) == 0 {
		return 1, nil
	}
	v := r.rolls[0]
	r.rolls = r.rolls[1:]
	return v, nil
}

func (r *scriptedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func testVerbs() *content.VerbsDefinition {
	return &content.VerbsDefinition{
		Tenses: map[string]map[string]map[string]map[string]string{
			"present": {
				"regular": {
					"comer":  {"yo": "como", "tú": "comes"},
					"hablar": {"yo": "hablo", "tú": "hablas"},
				},
			},
			"preterite": {
				"regular": {
					"hablar": {"yo": "hablé", "tú": "hablaste"},
				},
			},
		},
	}
}

func testEnemy(tenses ...entities.TenseRef) *entities.Enemy {
	tmpl := &entities.EnemyTemplate{
		ID:                "slime",
		Name:              "Slime",
		MaxHealth:         100,
		Tenses:            tenses,
		Pronouns:          []string{"yo", "tú"},
		QuestionsRequired: 5,
		XPReward:          20,
		BaseDamage:        20,
	}
	return tmpl.Instantiate()
}

var errRoll = errors.Internal("dice jammed")

package engine

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/verb-battle/internal/entities"
	"github.com/KirkDiggler/verb-battle/internal/errors"
)

//go:generate mockgen -destination=mock/mock_lookup.go -package=enginemock github.com/KirkDiggler/verb-battle/internal/engine ConjugationLookup

// ConjugationLookup is the verb table access the generator needs
type ConjugationLookup interface {
	Verbs(tenseType, subType string) ([]string, error)
	Conjugate(tenseType, subType, verb, pronoun string) (string, error)
}

// ChallengeGeneratorConfig holds the generator dependencies
type ChallengeGeneratorConfig struct {
	Lookup ConjugationLookup
	Roller dice.Roller
}

// Validate ensures all required dependencies are provided
func (c *ChallengeGeneratorConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Lookup == nil {
		vb.RequiredField("Lookup")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

// ChallengeGenerator picks (tense, verb, pronoun) triples for an enemy
type ChallengeGenerator struct {
	lookup ConjugationLookup
	roller dice.Roller
}

// NewChallengeGenerator creates a generator
func NewChallengeGenerator(cfg *ChallengeGeneratorConfig) (*ChallengeGenerator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &ChallengeGenerator{
		lookup: cfg.Lookup,
		roller: cfg.Roller,
	}, nil
}

// Next picks a tense from the enemy, a verb registered under that tense and a
// pronoun from the enemy, then resolves the answer. Missing table data is
// returned as errors.DataNotFound.
func (g *ChallengeGenerator) Next(enemy *entities.Enemy) (*entities.Challenge, error) {
	if enemy == nil {
		return nil, errors.InvalidArgument("enemy is required")
	}
	if len(enemy.Tenses) == 0 {
		return nil, errors.DataNotFoundf("enemy %s has no tenses", enemy.ID).
			WithMeta("enemy_id", enemy.ID)
	}
	if len(enemy.Pronouns) == 0 {
		return nil, errors.DataNotFoundf("enemy %s has no pronouns", enemy.ID).
			WithMeta("enemy_id", enemy.ID)
	}

	i, err := g.pick(len(enemy.Tenses))
	if err != nil {
		return nil, err
	}
	tense := enemy.Tenses[i]

	verbs, err := g.lookup.Verbs(tense.Type, tense.SubType)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list verbs for %s", tense)
	}
	if len(verbs) == 0 {
		return nil, errors.DataNotFoundf("no verbs registered for %s", tense).
			WithMeta("tense", tense.Type).
			WithMeta("sub_type", tense.SubType)
	}

	i, err = g.pick(len(verbs))
	if err != nil {
		return nil, err
	}
	verb := verbs[i]

	i, err = g.pick(len(enemy.Pronouns))
	if err != nil {
		return nil, err
	}
	pronoun := enemy.Pronouns[i]

	answer, err := g.lookup.Conjugate(tense.Type, tense.SubType, verb, pronoun)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to conjugate %s", verb)
	}

	return &entities.Challenge{
		Tense:   tense,
		Verb:    verb,
		Pronoun: pronoun,
		Answer:  answer,
	}, nil
}

// pick returns a uniform index in [0, n)
func (g *ChallengeGenerator) pick(n int) (int, error) {
	if n == 1 {
		return 0, nil
	}
	roll, err := g.roller.Roll(n)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll")
	}
	if roll < 1 || roll > n {
		return 0, errors.Internalf("roll %d out of range for d%d", roll, n)
	}
	return roll - 1, nil
}

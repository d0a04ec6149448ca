// Package world builds the read-only region and enemy registry from decoded
// content. Every definition is validated and its defaults resolved once, at
// load time.
package world

import (
	"fmt"

	"github.com/KirkDiggler/verb-battle/internal/content"
	"github.com/KirkDiggler/verb-battle/internal/engine"
	"github.com/KirkDiggler/verb-battle/internal/entities"
	"github.com/KirkDiggler/verb-battle/internal/errors"
)

// VerbLookup is the part of the verb table the registry checks enemies against
type VerbLookup interface {
	Verbs(tenseType, subType string) ([]string, error)
	Conjugate(tenseType, subType, verb, pronoun string) (string, error)
}

// Config holds the dependencies for building a registry
type Config struct {
	Definition *content.WorldDefinition
	Verbs      VerbLookup
	// PlayerBaseDamage is used to derive missing max_health/questions_required
	PlayerBaseDamage int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Definition == nil {
		vb.RequiredField("Definition")
	}
	if c.Verbs == nil {
		vb.RequiredField("Verbs")
	}

	return vb.Build()
}

// Registry is the validated, read-only set of regions keyed by id
type Registry struct {
	regions     []*entities.Region
	byID        map[string]*entities.Region
	enemyRegion map[string]*entities.Region
}

// New validates the world definition and builds the registry
func New(cfg *Config) (*Registry, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	baseDamage := cfg.PlayerBaseDamage
	if baseDamage <= 0 {
		baseDamage = engine.DefaultPlayerBaseDamage
	}

	b := &builder{
		vb:         errors.NewValidationBuilder(),
		verbs:      cfg.Verbs,
		baseDamage: baseDamage,
		regionIDs:  make(map[string]bool),
		enemyIDs:   make(map[string]bool),
	}

	reg := &Registry{
		byID:        make(map[string]*entities.Region),
		enemyRegion: make(map[string]*entities.Region),
	}

	if len(cfg.Definition.Regions) == 0 {
		b.vb.Field("regions", "must define at least one region")
	}

	for i, def := range cfg.Definition.Regions {
		if def.ID != "" && b.regionIDs[def.ID] {
			b.vb.Fieldf(fmt.Sprintf("regions[%d].id", i), "duplicate region id %q", def.ID)
		}
		b.regionIDs[def.ID] = true
	}

	for i, def := range cfg.Definition.Regions {
		region := b.region(i, def)
		reg.regions = append(reg.regions, region)
		reg.byID[region.ID] = region
		for j := range region.Enemies {
			reg.enemyRegion[region.Enemies[j].ID] = region
		}
	}

	if err := b.vb.Build(); err != nil {
		return nil, errors.Wrap(err, "invalid world data")
	}
	return reg, nil
}

// Regions returns all regions in definition order
func (r *Registry) Regions() []*entities.Region {
	out := make([]*entities.Region, len(r.regions))
	copy(out, r.regions)
	return out
}

// FirstRegion returns the starting region
func (r *Registry) FirstRegion() *entities.Region {
	return r.regions[0]
}

// Region returns the region with the given id
func (r *Registry) Region(id string) (*entities.Region, error) {
	region, ok := r.byID[id]
	if !ok {
		return nil, errors.NotFoundf("region %s not found", id)
	}
	return region, nil
}

// Enemy returns an enemy template and the region it belongs to
func (r *Registry) Enemy(id string) (*entities.EnemyTemplate, *entities.Region, error) {
	region, ok := r.enemyRegion[id]
	if !ok {
		return nil, nil, errors.NotFoundf("enemy %s not found", id)
	}
	tmpl, _ := region.Enemy(id)
	return tmpl, region, nil
}

type builder struct {
	vb         *errors.ValidationBuilder
	verbs      VerbLookup
	baseDamage int
	regionIDs  map[string]bool
	enemyIDs   map[string]bool
}

func (b *builder) region(i int, def content.RegionDefinition) *entities.Region {
	path := fmt.Sprintf("regions[%d]", i)
	errors.ValidateRequired(path+".id", def.ID, b.vb)

	region := &entities.Region{
		ID:            def.ID,
		Name:          def.Name,
		RequiredLevel: entities.StartingLevel,
		Connections:   append([]string(nil), def.Connections...),
		Requires:      append([]string(nil), def.Requires...),
		Background:    def.Background,
	}
	if region.Name == "" {
		region.Name = def.ID
	}
	if def.RequiredLevel != nil {
		region.RequiredLevel = *def.RequiredLevel
		errors.ValidatePositive(path+".required_level", region.RequiredLevel, b.vb)
	}

	if i == 0 && len(def.Requires) > 0 {
		b.vb.Field(path+".requires", "must be empty for the first region")
	}
	for _, id := range def.Requires {
		if !b.regionIDs[id] {
			b.vb.Fieldf(path+".requires", "unknown region %q", id)
		}
		if id == def.ID {
			b.vb.Fieldf(path+".requires", "region cannot require itself")
		}
	}
	for _, id := range def.Connections {
		if !b.regionIDs[id] {
			b.vb.Fieldf(path+".connections", "unknown region %q", id)
		}
	}

	if len(def.Enemies) == 0 {
		b.vb.Field(path+".enemies", "must define at least one enemy")
	}
	for j, enemyDef := range def.Enemies {
		region.Enemies = append(region.Enemies, b.enemy(fmt.Sprintf("%s.enemies[%d]", path, j), enemyDef))
	}
	return region
}

func (b *builder) enemy(path string, def content.EnemyDefinition) entities.EnemyTemplate {
	errors.ValidateRequired(path+".id", def.ID, b.vb)
	if def.ID != "" {
		if b.enemyIDs[def.ID] {
			b.vb.Fieldf(path+".id", "duplicate enemy id %q", def.ID)
		}
		b.enemyIDs[def.ID] = true
	}

	tmpl := entities.EnemyTemplate{
		ID:         def.ID,
		Name:       def.Name,
		Pronouns:   append([]string(nil), def.Pronouns...),
		XPReward:   def.XPReward,
		BaseDamage: def.BaseDamage,
		IsBoss:     def.Boss,
	}
	if tmpl.Name == "" {
		tmpl.Name = def.ID
	}

	switch {
	case def.MaxHealth != nil && def.QuestionsRequired != nil:
		tmpl.MaxHealth = *def.MaxHealth
		tmpl.QuestionsRequired = *def.QuestionsRequired
	case def.MaxHealth != nil:
		tmpl.MaxHealth = *def.MaxHealth
		tmpl.QuestionsRequired = (tmpl.MaxHealth + b.baseDamage - 1) / b.baseDamage
	case def.QuestionsRequired != nil:
		tmpl.QuestionsRequired = *def.QuestionsRequired
		tmpl.MaxHealth = tmpl.QuestionsRequired * b.baseDamage
	default:
		b.vb.Field(path, "must set max_health or questions_required")
	}
	errors.ValidatePositive(path+".max_health", tmpl.MaxHealth, b.vb)
	errors.ValidatePositive(path+".questions_required", tmpl.QuestionsRequired, b.vb)
	errors.ValidatePositive(path+".xp_reward", tmpl.XPReward, b.vb)
	errors.ValidatePositive(path+".base_damage", tmpl.BaseDamage, b.vb)

	if len(def.Pronouns) == 0 {
		b.vb.Field(path+".pronouns", "must list at least one pronoun")
	}
	if len(def.Tenses) == 0 {
		b.vb.Field(path+".tenses", "must list at least one tense")
	}
	for _, raw := range def.Tenses {
		ref, err := entities.ParseTenseRef(raw)
		if err != nil {
			b.vb.InvalidField(path+".tenses", errors.GetMessage(err))
			continue
		}
		b.checkCoverage(path+".tenses", ref, def.Pronouns)
		tmpl.Tenses = append(tmpl.Tenses, ref)
	}

	tmpl.Phases = b.phases(path+".phases", def)
	return tmpl
}

// checkCoverage makes sure every verb in the tense has every pronoun the enemy asks for
func (b *builder) checkCoverage(path string, ref entities.TenseRef, pronouns []string) {
	verbs, err := b.verbs.Verbs(ref.Type, ref.SubType)
	if err != nil {
		b.vb.Fieldf(path, "tense %s is not in the verb table", ref)
		return
	}
	for _, verb := range verbs {
		for _, pronoun := range pronouns {
			if _, err := b.verbs.Conjugate(ref.Type, ref.SubType, verb, pronoun); err != nil {
				b.vb.Fieldf(path, "%s has no %s form for %q", ref, pronoun, verb)
			}
		}
	}
}

func (b *builder) phases(path string, def content.EnemyDefinition) []entities.PhaseThreshold {
	if !def.Boss {
		if len(def.Phases) > 0 {
			b.vb.Field(path, "only bosses may define phases")
		}
		return nil
	}
	if len(def.Phases) == 0 {
		return entities.DefaultBossPhases()
	}

	phases := make([]entities.PhaseThreshold, 0, len(def.Phases))
	prevRatio := 1.0
	for i, p := range def.Phases {
		pp := fmt.Sprintf("%s[%d]", path, i)
		errors.ValidateRatio(pp+".ratio", p.Ratio, b.vb)
		if p.Ratio >= prevRatio && i > 0 {
			b.vb.Field(pp+".ratio", "must be lower than the previous phase")
		}
		prevRatio = p.Ratio

		phase := entities.PhaseThreshold{
			Ratio:            p.Ratio,
			DamageMultiplier: p.DamageMultiplier,
			TimeLimitFactor:  p.TimeFactor,
			StrictMatch:      p.Strict,
		}
		if phase.DamageMultiplier == 0 {
			phase.DamageMultiplier = 1
		}
		if phase.TimeLimitFactor == 0 {
			phase.TimeLimitFactor = 1
		}
		if phase.DamageMultiplier < 1 {
			b.vb.Field(pp+".damage_multiplier", "must be at least 1")
		}
		errors.ValidateRatio(pp+".time_factor", phase.TimeLimitFactor, b.vb)
		phases = append(phases, phase)
	}
	return phases
}

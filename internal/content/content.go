// Package content decodes the static game data: the conjugation table and
// the region/enemy definitions. Built-in data is embedded; a directory with
// the same file names can replace it.
package content

import (
	"bytes"
	"embed"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/verb-battle/internal/errors"
)

// File names looked up in the embedded data and in override directories
const (
	VerbsFile = "verbs.yaml"
	WorldFile = "world.yaml"
)

//go:embed data/*.yaml
var builtin embed.FS

// VerbsDefinition is tense -> subtype -> verb -> pronoun -> conjugated form
type VerbsDefinition struct {
	Tenses map[string]map[string]map[string]map[string]string `yaml:"tenses"`
}

// WorldDefinition is the raw region list as written in world.yaml
type WorldDefinition struct {
	Regions []RegionDefinition `yaml:"regions"`
}

// RegionDefinition is a region before validation. Optional fields are pointers
// so the world package can tell "absent" from zero.
type RegionDefinition struct {
	ID            string            `yaml:"id"`
	Name          string            `yaml:"name"`
	RequiredLevel *int              `yaml:"required_level"`
	Connections   []string          `yaml:"connections"`
	Requires      []string          `yaml:"requires"`
	Background    string            `yaml:"background"`
	Enemies       []EnemyDefinition `yaml:"enemies"`
}

// EnemyDefinition is an enemy before validation
type EnemyDefinition struct {
	ID                string            `yaml:"id"`
	Name              string            `yaml:"name"`
	MaxHealth         *int              `yaml:"max_health"`
	Tenses            []string          `yaml:"tenses"`
	Pronouns          []string          `yaml:"pronouns"`
	QuestionsRequired *int              `yaml:"questions_required"`
	XPReward          int               `yaml:"xp_reward"`
	BaseDamage        int               `yaml:"base_damage"`
	Boss              bool              `yaml:"boss"`
	Phases            []PhaseDefinition `yaml:"phases"`
}

// PhaseDefinition is a boss phase threshold as written in world.yaml
type PhaseDefinition struct {
	Ratio            float64 `yaml:"ratio"`
	DamageMultiplier float64 `yaml:"damage_multiplier"`
	TimeFactor       float64 `yaml:"time_factor"`
	Strict           bool    `yaml:"strict"`
}

// Bundle is the decoded content set
type Bundle struct {
	Verbs *VerbsDefinition
	World *WorldDefinition
}

// Load reads content from dir, or the embedded data when dir is empty.
// Files missing from dir fall back to the embedded copy.
func Load(dir string) (*Bundle, error) {
	verbsRaw, err := readFile(dir, VerbsFile)
	if err != nil {
		return nil, err
	}
	worldRaw, err := readFile(dir, WorldFile)
	if err != nil {
		return nil, err
	}

	verbs, err := DecodeVerbs(verbsRaw)
	if err != nil {
		return nil, err
	}
	world, err := DecodeWorld(worldRaw)
	if err != nil {
		return nil, err
	}

	return &Bundle{Verbs: verbs, World: world}, nil
}

// DecodeVerbs decodes a verbs.yaml document
func DecodeVerbs(raw []byte) (*VerbsDefinition, error) {
	var def VerbsDefinition
	if err := decodeStrict(raw, &def); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode verb table")
	}
	return &def, nil
}

// DecodeWorld decodes a world.yaml document
func DecodeWorld(raw []byte) (*WorldDefinition, error) {
	var def WorldDefinition
	if err := decodeStrict(raw, &def); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode world data")
	}
	return &def, nil
}

// decodeStrict rejects unknown keys so typos in content fail at startup
func decodeStrict(raw []byte, target interface{}) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	return dec.Decode(target)
}

func readFile(dir, name string) ([]byte, error) {
	if dir != "" {
		path := filepath.Join(filepath.Clean(dir), name)
		b, err := os.ReadFile(path) //nolint:gosec // operator supplied content directory
		if err == nil {
			return b, nil
		}
		if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read %s", path)
		}
	}

	b, err := builtin.ReadFile("data/" + name)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read embedded %s", name)
	}
	return b, nil
}

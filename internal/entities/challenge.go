package entities

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/verb-battle/internal/errors"
)

// TenseRef identifies a verb table section, e.g. present/regular
type TenseRef struct {
	Type    string
	SubType string
}

// ParseTenseRef parses "type/subtype". A bare "type" has an empty subtype.
func ParseTenseRef(s string) (TenseRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TenseRef{}, errors.InvalidArgument("tense is empty")
	}
	parts := strings.SplitN(s, "/", 2)
	ref := TenseRef{Type: strings.TrimSpace(parts[0])}
	if len(parts) == 2 {
		ref.SubType = strings.TrimSpace(parts[1])
	}
	if ref.Type == "" {
		return TenseRef{}, errors.InvalidArgumentf("tense %q has no type", s)
	}
	return ref, nil
}

// String returns the "type/subtype" form used in saves and events
func (t TenseRef) String() string {
	if t.SubType == "" {
		return t.Type
	}
	return t.Type + "/" + t.SubType
}

// Challenge is a single prompt with its answer resolved at generation time
type Challenge struct {
	Tense   TenseRef
	Verb    string
	Pronoun string
	Answer  string
	// Strict is set while a boss phase requires the exact form
	Strict bool
}

// NormalizeAnswer trims surrounding whitespace and lowercases
func NormalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Check reports whether answer matches the resolved form, ignoring case and
// surrounding whitespace. A blank answer never matches.
func (c Challenge) Check(answer string) bool {
	given := NormalizeAnswer(answer)
	if given == "" {
		return false
	}
	return given == NormalizeAnswer(c.Answer)
}

// Prompt renders the challenge as shown to the player
func (c Challenge) Prompt() string {
	return fmt.Sprintf("%s (%s): %s", c.Verb, c.Tense, c.Pronoun)
}

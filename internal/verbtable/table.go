// Package verbtable provides the static conjugation lookup keyed by tense
// type, subtype, verb and pronoun.
package verbtable

import (
	"fmt"
	"sort"
	"strings"

	"github.com/KirkDiggler/verb-battle/internal/content"
	"github.com/KirkDiggler/verb-battle/internal/errors"
)

// Table is a read-only conjugation table
type Table struct {
	forms map[string]map[string]map[string]map[string]string
	verbs map[string]map[string][]string
}

// New builds a table from decoded content, rejecting empty sections and blank forms
func New(def *content.VerbsDefinition) (*Table, error) {
	if def == nil {
		return nil, errors.InvalidArgument("verb definition is required")
	}

	vb := errors.NewValidationBuilder()
	if len(def.Tenses) == 0 {
		vb.Field("tenses", "must define at least one tense")
	}

	t := &Table{
		forms: make(map[string]map[string]map[string]map[string]string, len(def.Tenses)),
		verbs: make(map[string]map[string][]string, len(def.Tenses)),
	}

	for tense, subTypes := range def.Tenses {
		if len(subTypes) == 0 {
			vb.Field(tense, "must define at least one subtype")
		}
		t.forms[tense] = make(map[string]map[string]map[string]string, len(subTypes))
		t.verbs[tense] = make(map[string][]string, len(subTypes))

		for subType, verbs := range subTypes {
			path := tense + "/" + subType
			if len(verbs) == 0 {
				vb.Field(path, "must define at least one verb")
			}
			t.forms[tense][subType] = make(map[string]map[string]string, len(verbs))

			names := make([]string, 0, len(verbs))
			for verb, pronouns := range verbs {
				if len(pronouns) == 0 {
					vb.Fieldf(path+"/"+verb, "must define at least one pronoun")
				}
				forms := make(map[string]string, len(pronouns))
				for pronoun, form := range pronouns {
					if strings.TrimSpace(form) == "" {
						vb.Fieldf(fmt.Sprintf("%s/%s/%s", path, verb, pronoun), "is blank")
					}
					forms[pronoun] = form
				}
				t.forms[tense][subType][verb] = forms
				names = append(names, verb)
			}
			sort.Strings(names)
			t.verbs[tense][subType] = names
		}
	}

	if err := vb.Build(); err != nil {
		return nil, errors.Wrap(err, "invalid verb table")
	}
	return t, nil
}

// Conjugate returns the form of verb for pronoun in the given tense section.
// Returns errors.DataNotFound if any key is absent.
func (t *Table) Conjugate(tenseType, subType, verb, pronoun string) (string, error) {
	verbs, err := t.section(tenseType, subType)
	if err != nil {
		return "", err
	}

	forms, ok := verbs[verb]
	if !ok {
		return "", errors.DataNotFoundf("verb %q not found in %s/%s", verb, tenseType, subType).
			WithMeta("tense", tenseType).
			WithMeta("sub_type", subType).
			WithMeta("verb", verb)
	}

	form, ok := forms[pronoun]
	if !ok {
		return "", errors.DataNotFoundf("no %s form for %q in %s/%s", pronoun, verb, tenseType, subType).
			WithMeta("tense", tenseType).
			WithMeta("sub_type", subType).
			WithMeta("verb", verb).
			WithMeta("pronoun", pronoun)
	}
	return form, nil
}

// Verbs returns the sorted verbs registered under a tense section.
// Returns errors.DataNotFound if the section is absent.
func (t *Table) Verbs(tenseType, subType string) ([]string, error) {
	if _, err := t.section(tenseType, subType); err != nil {
		return nil, err
	}
	names := t.verbs[tenseType][subType]
	out := make([]string, len(names))
	copy(out, names)
	return out, nil
}

// SubTypes returns the sorted subtypes registered under a tense type.
// Returns errors.DataNotFound if the tense type is absent.
func (t *Table) SubTypes(tenseType string) ([]string, error) {
	subTypes, ok := t.forms[tenseType]
	if !ok {
		return nil, errors.DataNotFoundf("tense %q not found", tenseType).
			WithMeta("tense", tenseType)
	}
	out := make([]string, 0, len(subTypes))
	for subType := range subTypes {
		out = append(out, subType)
	}
	sort.Strings(out)
	return out, nil
}

// Has reports whether a tense section exists
func (t *Table) Has(tenseType, subType string) bool {
	_, err := t.section(tenseType, subType)
	return err == nil
}

// Tenses returns the sorted "type/subtype" identifiers of every section
func (t *Table) Tenses() []string {
	var out []string
	for tense, subTypes := range t.forms {
		for subType := range subTypes {
			out = append(out, tense+"/"+subType)
		}
	}
	sort.Strings(out)
	return out
}

func (t *Table) section(tenseType, subType string) (map[string]map[string]string, error) {
	subTypes, ok := t.forms[tenseType]
	if !ok {
		return nil, errors.DataNotFoundf("tense %q not found", tenseType).
			WithMeta("tense", tenseType)
	}
	verbs, ok := subTypes[subType]
	if !ok {
		return nil, errors.DataNotFoundf("subtype %q not found for tense %q", subType, tenseType).
			WithMeta("tense", tenseType).
			WithMeta("sub_type", subType)
	}
	return verbs, nil
}

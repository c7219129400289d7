// Package dictionary holds the declarative keyword table shared by the
// column classifier and the facility resolver.
//
// The built-in table is embedded from default.yaml. Deployments extend it
// with their own YAML file; extension entries are merged in front of the
// defaults so a local synonym overrides a built-in one.
package dictionary

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/models"
	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/normalize"
)

//go:embed default.yaml
var defaultYAML []byte

// ErrInvalidDictionary indicates a dictionary file that parses but cannot be used.
var ErrInvalidDictionary = errors.New("invalid dictionary")

// Tier ranks Date keywords. Other roles only use TierGeneral.
type Tier int

const (
	TierNone Tier = iota
	TierGeneral
	TierPriority
)

// RoleKeywords lists header keywords per column role.
type RoleKeywords struct {
	Name         []string `yaml:"name"`
	Phone        []string `yaml:"phone"`
	DatePriority []string `yaml:"date_priority"`
	DateGeneral  []string `yaml:"date_general"`
	Procedure    []string `yaml:"procedure"`
}

// Synonym maps an abbreviated or garbled facility reference to its
// canonical name.
type Synonym struct {
	Match     string `yaml:"match"`
	Canonical string `yaml:"canonical"`
}

// FacilityRules configures facility resolution.
type FacilityRules struct {
	Sentinel string    `yaml:"sentinel"`
	Keywords []string  `yaml:"keywords"`
	Synonyms []Synonym `yaml:"synonyms"`
}

// Dictionary is the complete keyword table. It is read-only once built
// and safe for concurrent use.
type Dictionary struct {
	Version  int           `yaml:"version"`
	Roles    RoleKeywords  `yaml:"roles"`
	Facility FacilityRules `yaml:"facility"`
}

var (
	defaultOnce sync.Once
	defaultDict *Dictionary
)

// Default returns the built-in dictionary.
func Default() *Dictionary {
	defaultOnce.Do(func() {
		d, err := Parse(defaultYAML)
		if err != nil {
			panic(fmt.Sprintf("dictionary: embedded default is invalid: %v", err))
		}
		defaultDict = d
	})
	return defaultDict
}

// Parse decodes a dictionary document and folds its keywords.
func Parse(data []byte) (*Dictionary, error) {
	var d Dictionary
	if err := yaml.Unmarshal(normalize.StripControlBytes(data), &d); err != nil {
		return nil, fmt.Errorf("parsing dictionary: %w", err)
	}
	d.fold()
	return &d, nil
}

// Load reads an extension file and merges it over the built-in table.
// An empty path returns the built-in table.
func Load(path string) (*Dictionary, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dictionary %s: %w", path, err)
	}
	ext, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	merged := Default().Merge(ext)
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return merged, nil
}

// Merge returns a new dictionary with ext's entries placed before d's.
// A non-empty sentinel or a higher version in ext wins.
func (d *Dictionary) Merge(ext *Dictionary) *Dictionary {
	out := &Dictionary{
		Version: d.Version,
		Roles: RoleKeywords{
			Name:         mergeWords(ext.Roles.Name, d.Roles.Name),
			Phone:        mergeWords(ext.Roles.Phone, d.Roles.Phone),
			DatePriority: mergeWords(ext.Roles.DatePriority, d.Roles.DatePriority),
			DateGeneral:  mergeWords(ext.Roles.DateGeneral, d.Roles.DateGeneral),
			Procedure:    mergeWords(ext.Roles.Procedure, d.Roles.Procedure),
		},
		Facility: FacilityRules{
			Sentinel: d.Facility.Sentinel,
			Keywords: mergeWords(ext.Facility.Keywords, d.Facility.Keywords),
		},
	}
	if ext.Version > out.Version {
		out.Version = ext.Version
	}
	if ext.Facility.Sentinel != "" {
		out.Facility.Sentinel = ext.Facility.Sentinel
	}
	seen := make(map[string]struct{})
	for _, s := range append(append([]Synonym{}, ext.Facility.Synonyms...), d.Facility.Synonyms...) {
		if _, dup := seen[s.Match]; dup {
			continue
		}
		seen[s.Match] = struct{}{}
		out.Facility.Synonyms = append(out.Facility.Synonyms, s)
	}
	return out
}

// Validate reports a dictionary that would leave a resolver stage inert.
func (d *Dictionary) Validate() error {
	switch {
	case d.Facility.Sentinel == "":
		return fmt.Errorf("%w: facility sentinel is empty", ErrInvalidDictionary)
	case len(d.Roles.Name) == 0:
		return fmt.Errorf("%w: no name keywords", ErrInvalidDictionary)
	case len(d.Roles.DatePriority)+len(d.Roles.DateGeneral) == 0:
		return fmt.Errorf("%w: no date keywords", ErrInvalidDictionary)
	}
	for _, s := range d.Facility.Synonyms {
		if s.Match == "" || s.Canonical == "" {
			return fmt.Errorf("%w: synonym %q -> %q is incomplete", ErrInvalidDictionary, s.Match, s.Canonical)
		}
	}
	return nil
}

// MatchRole tests folded header text against the role keyword sets in
// classification order: name, phone, priority date, general date,
// procedure. The first set with a hit decides.
func (d *Dictionary) MatchRole(folded string) (models.ColumnRole, Tier, bool) {
	switch {
	case containsAny(folded, d.Roles.Name):
		return models.RoleName, TierGeneral, true
	case containsAny(folded, d.Roles.Phone):
		return models.RolePhone, TierGeneral, true
	case containsAny(folded, d.Roles.DatePriority):
		return models.RoleDate, TierPriority, true
	case containsAny(folded, d.Roles.DateGeneral):
		return models.RoleDate, TierGeneral, true
	case containsAny(folded, d.Roles.Procedure):
		return models.RoleProcedure, TierGeneral, true
	}
	return models.RoleUnknown, TierNone, false
}

// IsAnchor reports whether text contains the facility sentinel.
func (d *Dictionary) IsAnchor(text string) bool {
	return d.Facility.Sentinel != "" && strings.Contains(normalize.Fold(text), d.Facility.Sentinel)
}

// MatchSynonym returns the canonical facility name for text.
func (d *Dictionary) MatchSynonym(text string) (string, bool) {
	folded := normalize.Fold(text)
	for _, s := range d.Facility.Synonyms {
		if strings.Contains(folded, s.Match) {
			return s.Canonical, true
		}
	}
	return "", false
}

// FacilityKeyword returns the first facility keyword contained in text.
func (d *Dictionary) FacilityKeyword(text string) (string, bool) {
	folded := normalize.Fold(text)
	for _, k := range d.Facility.Keywords {
		if strings.Contains(folded, k) {
			return k, true
		}
	}
	return "", false
}

func (d *Dictionary) fold() {
	for _, list := range []*[]string{
		&d.Roles.Name, &d.Roles.Phone, &d.Roles.DatePriority,
		&d.Roles.DateGeneral, &d.Roles.Procedure, &d.Facility.Keywords,
	} {
		*list = mergeWords(*list)
	}
	d.Facility.Sentinel = normalize.Fold(d.Facility.Sentinel)
	for i := range d.Facility.Synonyms {
		d.Facility.Synonyms[i].Match = normalize.Fold(d.Facility.Synonyms[i].Match)
		d.Facility.Synonyms[i].Canonical = normalize.CellText(d.Facility.Synonyms[i].Canonical)
	}
}

// mergeWords folds and concatenates keyword lists, dropping blanks and
// duplicates while keeping first-seen order.
func mergeWords(lists ...[]string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, w := range list {
			w = normalize.Fold(w)
			if w == "" {
				continue
			}
			if _, dup := seen[w]; dup {
				continue
			}
			seen[w] = struct{}{}
			out = append(out, w)
		}
	}
	return out
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

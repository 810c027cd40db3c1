// Package ontology holds the controlled capability vocabulary: the canonical
// catalog, the synonym table, the dependency graph and the critical set.
//
// An Ontology is immutable after construction and safe for concurrent use.
// Construction fails fast on malformed tables (cycles, dangling references,
// conflicting synonyms); lookups never fail.
package ontology

import (
	"fmt"
	"strings"

	"github.com/ppiankov/deserts/internal/cache"
)

// Document is the serialisable form of the ontology tables
type Document struct {
	Critical     []string    `yaml:"critical"`
	Capabilities []EntrySpec `yaml:"capabilities"`
}

// EntrySpec declares one canonical capability
type EntrySpec struct {
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description,omitempty"`
	Synonyms     []string `yaml:"synonyms,omitempty"`
	Dependencies []string `yaml:"dependencies,omitempty"`
}

// Entry is a canonical capability
type Entry struct {
	CanonicalName string   `json:"canonical_name"`
	Description   string   `json:"description"`
	IsCritical    bool     `json:"is_critical"`
	Dependencies  []string `json:"dependencies"`
}

type synonym struct {
	variant   string
	canonical string
	entry     int
}

// Ontology is the loaded, validated knowledge base
type Ontology struct {
	entries  []Entry
	index    map[string]int
	critical []string
	isCrit   map[string]bool
	exact    map[string]string
	synonyms []synonym
	memo     *cache.Memo[resolution]
}

// New builds an ontology from doc and checks its consistency
func New(doc Document) (*Ontology, error) {
	o := &Ontology{
		entries: make([]Entry, 0, len(doc.Capabilities)),
		index:   make(map[string]int, len(doc.Capabilities)),
		isCrit:  make(map[string]bool, len(doc.Critical)),
		exact:   make(map[string]string),
		memo:    cache.NewMemo[resolution](0),
	}

	for _, name := range doc.Critical {
		o.isCrit[name] = true
	}
	o.critical = append([]string(nil), doc.Critical...)

	for i, spec := range doc.Capabilities {
		name := strings.TrimSpace(spec.Name)
		if name == "" {
			return nil, fmt.Errorf("capability %d: %w", i, ErrEmptyName)
		}
		if _, dup := o.index[name]; dup {
			return nil, fmt.Errorf("%s: %w", name, ErrDuplicateCapability)
		}
		o.index[name] = len(o.entries)
		o.entries = append(o.entries, Entry{
			CanonicalName: name,
			Description:   spec.Description,
			IsCritical:    o.isCrit[name],
			Dependencies:  append([]string(nil), spec.Dependencies...),
		})
	}

	// Canonical names resolve to themselves, which keeps normalisation idempotent.
	for i, e := range o.entries {
		if err := o.addSynonym(strings.ToLower(e.CanonicalName), e.CanonicalName, i); err != nil {
			return nil, err
		}
	}
	for i, spec := range doc.Capabilities {
		for _, raw := range spec.Synonyms {
			variant := strings.ToLower(strings.TrimSpace(raw))
			if variant == "" {
				continue
			}
			if err := o.addSynonym(variant, o.entries[i].CanonicalName, i); err != nil {
				return nil, err
			}
		}
	}
	for i, e := range o.entries {
		spaced := strings.ReplaceAll(strings.ToLower(e.CanonicalName), "_", " ")
		if _, taken := o.exact[spaced]; !taken {
			o.exact[spaced] = e.CanonicalName
			o.synonyms = append(o.synonyms, synonym{variant: spaced, canonical: e.CanonicalName, entry: i})
		}
	}

	if err := o.Check(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Ontology) addSynonym(variant, canonical string, entry int) error {
	if existing, ok := o.exact[variant]; ok {
		if existing != canonical {
			return fmt.Errorf("%q maps to both %s and %s: %w", variant, existing, canonical, ErrSynonymConflict)
		}
		return nil
	}
	o.exact[variant] = canonical
	o.synonyms = append(o.synonyms, synonym{variant: variant, canonical: canonical, entry: entry})
	return nil
}

// Default returns the built-in ontology. It panics if the built-in tables are
// inconsistent, which the package tests guard against.
func Default() *Ontology {
	o, err := New(DefaultDocument())
	if err != nil {
		panic(fmt.Sprintf("built-in ontology is inconsistent: %v", err))
	}
	return o
}

// Dependencies returns the declared dependencies of a canonical capability.
// The returned slice is a copy; unknown names have none.
func (o *Ontology) Dependencies(canonical string) []string {
	i, ok := o.index[canonical]
	if !ok || len(o.entries[i].Dependencies) == 0 {
		return []string{}
	}
	return append([]string(nil), o.entries[i].Dependencies...)
}

// IsCritical reports whether canonical belongs to the critical set
func (o *Ontology) IsCritical(canonical string) bool {
	return o.isCrit[canonical]
}

// Critical returns the critical set in declaration order
func (o *Ontology) Critical() []string {
	return append([]string(nil), o.critical...)
}

// Entry looks up a canonical capability
func (o *Ontology) Entry(canonical string) (Entry, bool) {
	i, ok := o.index[canonical]
	if !ok {
		return Entry{}, false
	}
	e := o.entries[i]
	e.Dependencies = append([]string(nil), e.Dependencies...)
	return e, true
}

// Entries returns every canonical capability in catalog order
func (o *Ontology) Entries() []Entry {
	out := make([]Entry, len(o.entries))
	for i, e := range o.entries {
		e.Dependencies = append([]string(nil), e.Dependencies...)
		out[i] = e
	}
	return out
}

// Has reports whether canonical is in the catalog
func (o *Ontology) Has(canonical string) bool {
	_, ok := o.index[canonical]
	return ok
}

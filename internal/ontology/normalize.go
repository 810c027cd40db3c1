package ontology

import (
	"strings"
	"unicode"

	"github.com/ppiankov/deserts/internal/cache"
)

type resolution struct {
	canonical string
	matched   bool
}

// Normalize maps raw capability text to its canonical name. Text that matches
// no synonym is returned unchanged.
func (o *Ontology) Normalize(text string) string {
	canonical, _ := o.Resolve(text)
	return canonical
}

// Resolve is Normalize that also reports whether the synonym table matched.
// Callers tag unmatched text as unverified.
//
// Lookup order: exact match on the lowercased, trimmed text, then partial
// containment in either direction. Among partial matches the longest synonym
// wins; equal lengths go to the entry declared first in the catalog.
// Variants shorter than minPartial ("er", "or", "a&e") take part in partial
// matching only as whole words.
func (o *Ontology) Resolve(text string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(text))
	if key == "" {
		return text, false
	}

	memoKey := cache.Key("normalize", text)
	if r, ok := o.memo.Get(memoKey); ok {
		return r.canonical, r.matched
	}

	r := o.resolve(key)
	if !r.matched {
		r.canonical = text
	}
	o.memo.Set(memoKey, r)
	return r.canonical, r.matched
}

func (o *Ontology) resolve(key string) resolution {
	if canonical, ok := o.exact[key]; ok {
		return resolution{canonical: canonical, matched: true}
	}

	words := wordSet(key)
	best := -1
	for i, s := range o.synonyms {
		if !partialMatch(key, s.variant, words) {
			continue
		}
		if best < 0 || betterMatch(s, o.synonyms[best]) {
			best = i
		}
	}
	if best < 0 {
		return resolution{}
	}
	return resolution{canonical: o.synonyms[best].canonical, matched: true}
}

const minPartial = 4

func partialMatch(key, variant string, words map[string]bool) bool {
	if len(variant) < minPartial {
		return words[variant]
	}
	if strings.Contains(key, variant) {
		return true
	}
	return len(key) >= minPartial && strings.Contains(variant, key)
}

func wordSet(key string) map[string]bool {
	fields := strings.FieldsFunc(key, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '&' && r != '/'
	})
	words := make(map[string]bool, len(fields))
	for _, f := range fields {
		words[f] = true
	}
	return words
}

func betterMatch(candidate, current synonym) bool {
	if len(candidate.variant) != len(current.variant) {
		return len(candidate.variant) > len(current.variant)
	}
	return candidate.entry < current.entry
}

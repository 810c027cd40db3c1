package validate

import (
	"strings"

	"github.com/ppiankov/deserts/internal/model"
)

// TypeClassifier maps free-text facility types onto the configured
// facility categories
type TypeClassifier struct {
	constraints map[string]model.FacilityConstraint
	keys        []string
}

// NewTypeClassifier creates a classifier over the given constraint table
func NewTypeClassifier(constraints map[string]model.FacilityConstraint) *TypeClassifier {
	c := &TypeClassifier{
		constraints: make(map[string]model.FacilityConstraint, len(constraints)),
		keys:        make([]string, 0, len(constraints)),
	}
	for key, fc := range constraints {
		norm := normalizeType(key)
		c.constraints[norm] = fc
		c.keys = append(c.keys, norm)
	}
	return c
}

// Category returns the category key for facilityType. An exact key wins;
// otherwise the longest key contained in the type is used, so
// "CHPS Compound" lands in "chps". Ties go to the lexically smaller key.
func (c *TypeClassifier) Category(facilityType string) (string, bool) {
	norm := normalizeType(facilityType)
	if norm == "" {
		return "", false
	}
	if _, ok := c.constraints[norm]; ok {
		return norm, true
	}

	best := ""
	for _, key := range c.keys {
		if !strings.Contains(norm, key) {
			continue
		}
		if len(key) > len(best) || (len(key) == len(best) && key < best) {
			best = key
		}
	}
	return best, best != ""
}

// Unlikely returns the unlikely-capability entry of facilityType's category
// that matches canonical, if any. Matching is containment in either direction.
func (c *TypeClassifier) Unlikely(facilityType, canonical string) (string, bool) {
	if canonical == "" {
		return "", false
	}
	category, ok := c.Category(facilityType)
	if !ok {
		return "", false
	}

	for _, unlikely := range c.constraints[category].Unlikely {
		if strings.Contains(canonical, unlikely) || strings.Contains(unlikely, canonical) {
			return unlikely, true
		}
	}
	return "", false
}

func normalizeType(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}

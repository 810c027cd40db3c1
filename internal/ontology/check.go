package ontology

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCycle is returned when the dependency graph is not acyclic
	ErrCycle = errors.New("dependency cycle")
	// ErrSynonymConflict is returned when one variant maps to two canonical names
	ErrSynonymConflict = errors.New("synonym maps to more than one capability")
	// ErrUnknownCanonical is returned when a dependency or critical name is not in the catalog
	ErrUnknownCanonical = errors.New("unknown canonical capability")
	// ErrDuplicateCapability is returned when a canonical name is declared twice
	ErrDuplicateCapability = errors.New("duplicate canonical capability")
	// ErrEmptyName is returned for a capability without a name
	ErrEmptyName = errors.New("empty canonical name")
)

// Check verifies that every critical name and dependency refers to a catalog
// entry and that the dependency graph is a DAG.
func (o *Ontology) Check() error {
	var errs []error

	for _, name := range o.critical {
		if !o.Has(name) {
			errs = append(errs, fmt.Errorf("critical %s: %w", name, ErrUnknownCanonical))
		}
	}
	for _, e := range o.entries {
		for _, dep := range e.Dependencies {
			if !o.Has(dep) {
				errs = append(errs, fmt.Errorf("%s depends on %s: %w", e.CanonicalName, dep, ErrUnknownCanonical))
			}
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	if cycle := o.findCycle(); cycle != nil {
		return fmt.Errorf("%s: %w", strings.Join(cycle, " -> "), ErrCycle)
	}
	return nil
}

const (
	unvisited = iota
	visiting
	done
)

// findCycle returns the first cycle found by depth-first search, or nil
func (o *Ontology) findCycle() []string {
	state := make([]int, len(o.entries))
	var stack []string

	var visit func(i int) []string
	visit = func(i int) []string {
		state[i] = visiting
		stack = append(stack, o.entries[i].CanonicalName)
		for _, dep := range o.entries[i].Dependencies {
			j := o.index[dep]
			switch state[j] {
			case visiting:
				start := 0
				for k, name := range stack {
					if name == dep {
						start = k
						break
					}
				}
				cycle := append([]string(nil), stack[start:]...)
				return append(cycle, dep)
			case unvisited:
				if c := visit(j); c != nil {
					return c
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[i] = done
		return nil
	}

	for i := range o.entries {
		if state[i] == unvisited {
			if c := visit(i); c != nil {
				return c
			}
		}
	}
	return nil
}

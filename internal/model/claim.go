package model

import "strings"

// CapabilityClaim is a single assertion that a facility offers a capability.
// Claims are produced by the extraction layer; the only mutation allowed
// here is appending quality flags during validation.
type CapabilityClaim struct {
	CapabilityText string       `json:"capability_text" yaml:"capability_text"`
	Evidence       []string     `json:"evidence" yaml:"evidence"`
	Confidence     float64      `json:"confidence" yaml:"confidence"`
	Availability   Availability `json:"availability" yaml:"availability"`
	Dependencies   []string     `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Flags          []Flag       `json:"flags,omitempty" yaml:"flags,omitempty"`

	FacilityID   string `json:"facility_id,omitempty" yaml:"facility_id,omitempty"`
	FacilityName string `json:"facility_name,omitempty" yaml:"facility_name,omitempty"`
	Region       string `json:"region,omitempty" yaml:"region,omitempty"`
	District     string `json:"district,omitempty" yaml:"district,omitempty"`
	FacilityType string `json:"facility_type,omitempty" yaml:"facility_type,omitempty"`
}

// HasFlag reports whether the claim already carries f.
func (c *CapabilityClaim) HasFlag(f Flag) bool {
	for _, existing := range c.Flags {
		if existing == f {
			return true
		}
	}
	return false
}

// AddFlag records f on the claim. Flags form a set, so re-adding is a no-op.
func (c *CapabilityClaim) AddFlag(f Flag) {
	if c.HasFlag(f) {
		return
	}
	c.Flags = append(c.Flags, f)
}

// Clone returns a copy that shares no slices with c
func (c CapabilityClaim) Clone() CapabilityClaim {
	out := c
	out.Evidence = cloneSlice(c.Evidence)
	out.Dependencies = cloneSlice(c.Dependencies)
	out.Flags = cloneSlice(c.Flags)
	return out
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

// EvidenceText joins the evidence quotes with single spaces.
func (c *CapabilityClaim) EvidenceText() string {
	return strings.Join(c.Evidence, " ")
}

// Availability is the declared availability status of a capability
type Availability string

const (
	AvailabilityAvailable   Availability = "available"
	AvailabilityLimited     Availability = "limited"
	AvailabilityUnavailable Availability = "unavailable"
	AvailabilityUnknown     Availability = "unknown"
)

// Normalized lowercases and trims the availability value.
func (a Availability) Normalized() Availability {
	return Availability(strings.ToLower(strings.TrimSpace(string(a))))
}

// Flag is a quality flag token attached to a claim
type Flag string

const (
	FlagContradiction           Flag = "contradiction"
	FlagMissingDependencies     Flag = "missing_dependencies"
	FlagUnlikelyForFacilityType Flag = "unlikely_for_facility_type"
	FlagWeakEvidence            Flag = "weak_evidence"
	FlagLowConfidence           Flag = "low_confidence"
	FlagUnverified              Flag = "unverified"
)

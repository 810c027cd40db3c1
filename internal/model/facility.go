package model

// FacilityProfile is a healthcare facility together with its capability claims.
// The caller owns it; analysis only reads it and annotates claim flags.
type FacilityProfile struct {
	FacilityID   string            `json:"facility_id" yaml:"facility_id"`
	Name         string            `json:"name" yaml:"name"`
	Region       string            `json:"region,omitempty" yaml:"region,omitempty"`
	District     string            `json:"district,omitempty" yaml:"district,omitempty"`
	Ownership    string            `json:"ownership,omitempty" yaml:"ownership,omitempty"`
	FacilityType string            `json:"facility_type,omitempty" yaml:"facility_type,omitempty"`
	Capabilities []CapabilityClaim `json:"capabilities" yaml:"capabilities"`
}

// Clone returns a deep copy, so flags added to the copy never reach p
func (p FacilityProfile) Clone() FacilityProfile {
	out := p
	if p.Capabilities != nil {
		out.Capabilities = make([]CapabilityClaim, len(p.Capabilities))
		for i, c := range p.Capabilities {
			out.Capabilities[i] = c.Clone()
		}
	}
	return out
}

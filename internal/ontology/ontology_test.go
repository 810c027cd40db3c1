package ontology

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault_IsConsistent(t *testing.T) {
	o, err := New(DefaultDocument())
	if err != nil {
		t.Fatalf("built-in ontology failed to load: %v", err)
	}
	if err := o.Check(); err != nil {
		t.Errorf("Check: %v", err)
	}
	if got := len(o.Critical()); got != 9 {
		t.Errorf("expected 9 critical capabilities, got %d", got)
	}
}

func TestNormalize_Scenarios(t *testing.T) {
	o := Default()

	tests := []struct {
		input string
		want  string
	}{
		{"A&E", "emergency_care"},
		{"labour ward", "maternity_delivery"},
		{"ICU", "intensive_care_unit"},
		{"  Intensive Care  ", "intensive_care_unit"},
		{"emergency_care", "emergency_care"},
		{"Emergency Department", "emergency_care"},
		{"x-ray", "xray"},
		{"C-Section", "cesarean_section"},
		{"blood transfusion", "blood_transfusion"},
		{"Ambulance Service", "ambulance_service"},
		{"general surgery", "general_surgery"},
		{"laboratory services", "laboratory_services"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := o.Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_UnknownIsIdentity(t *testing.T) {
	o := Default()

	canonical, matched := o.Resolve("Zzyzx Quokka")
	if matched {
		t.Errorf("expected no match, got %q", canonical)
	}
	if canonical != "Zzyzx Quokka" {
		t.Errorf("expected original text back, got %q", canonical)
	}

	if got, matched := o.Resolve("   "); matched || got != "   " {
		t.Errorf("expected blank text to pass through unmatched, got %q (matched=%v)", got, matched)
	}
}

func TestNormalize_LongestMatchWins(t *testing.T) {
	o := Default()

	// "emergency transport" (ambulance_service) is longer than "emergency" (emergency_care)
	if got := o.Normalize("emergency transport for patients"); got != "ambulance_service" {
		t.Errorf("expected ambulance_service, got %s", got)
	}
	// "critical care unit" beats "critical care"
	if got := o.Normalize("a critical care unit with 4 beds"); got != "intensive_care_unit" {
		t.Errorf("expected intensive_care_unit, got %s", got)
	}
}

func TestNormalize_ShortSynonymsMatchWholeWords(t *testing.T) {
	o := Default()

	if got := o.Normalize("ER open nightly"); got != "emergency_care" {
		t.Errorf("expected whole-word ER to match, got %s", got)
	}
	// "er" occurs inside "Interpreter" but is not a word there
	if got, matched := o.Resolve("Interpreter desk"); matched {
		t.Errorf("expected no match, got %s", got)
	}
	// text shorter than minPartial does not match inside longer synonyms
	if _, matched := o.Resolve("x"); matched {
		t.Error("expected single letter to stay unmatched")
	}
}

func TestNormalize_TieBreaksOnCatalogOrder(t *testing.T) {
	o := Default()

	// "chemo" and "renal" are both five characters; chemotherapy is declared first
	for _, text := range []string{"chemo renal", "renal chemo"} {
		if got := o.Normalize(text); got != "chemotherapy" {
			t.Errorf("Normalize(%q) = %s, want chemotherapy", text, got)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	o := Default()

	inputs := []string{
		"A&E", "labour ward", "icu", "unknown thing", "", "  ", "Operating Theatre",
		"x", "renal unit", "Paediatric ward", "MRI", "Dr. Mensah's clinic", "24/7 emergency",
	}
	for _, e := range o.Entries() {
		inputs = append(inputs, e.CanonicalName, strings.ToUpper(e.Description))
	}

	for _, in := range inputs {
		once := o.Normalize(in)
		twice := o.Normalize(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalize_Memoised(t *testing.T) {
	o := Default()

	first := o.Normalize("Labour Ward")
	if o.memo.Len() == 0 {
		t.Fatal("expected the resolution to be memoised")
	}
	if second := o.Normalize("Labour Ward"); second != first {
		t.Errorf("memoised result differs: %q vs %q", first, second)
	}
}

func TestDependencies(t *testing.T) {
	o := Default()

	want := []string{"operating_room", "anesthesia", "sterilization"}
	if diff := cmp.Diff(want, o.Dependencies("general_surgery")); diff != "" {
		t.Errorf("general_surgery dependencies mismatch (-want +got):\n%s", diff)
	}

	if deps := o.Dependencies("pharmacy"); len(deps) != 0 {
		t.Errorf("expected no dependencies for pharmacy, got %v", deps)
	}
	if deps := o.Dependencies("not_a_capability"); deps == nil || len(deps) != 0 {
		t.Errorf("expected empty non-nil set for unknown name, got %#v", deps)
	}

	// Returned slices are copies
	deps := o.Dependencies("general_surgery")
	deps[0] = "mutated"
	if o.Dependencies("general_surgery")[0] != "operating_room" {
		t.Error("Dependencies leaked internal state")
	}
}

func TestIsCritical(t *testing.T) {
	o := Default()

	if !o.IsCritical("emergency_care") {
		t.Error("emergency_care should be critical")
	}
	if o.IsCritical("dermatology") {
		t.Error("dermatology should not be critical")
	}
	if o.IsCritical("A&E") {
		t.Error("IsCritical expects canonical names")
	}
}

func TestNew_RejectsCycle(t *testing.T) {
	doc := Document{
		Capabilities: []EntrySpec{
			{Name: "a", Dependencies: []string{"b"}},
			{Name: "b", Dependencies: []string{"c"}},
			{Name: "c", Dependencies: []string{"a"}},
		},
	}

	_, err := New(doc)
	if !errors.Is(err, ErrCycle) {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
	if !strings.Contains(err.Error(), "a -> b -> c -> a") {
		t.Errorf("expected cycle path in error, got %q", err.Error())
	}
}

func TestNew_RejectsSelfDependency(t *testing.T) {
	_, err := New(Document{Capabilities: []EntrySpec{{Name: "a", Dependencies: []string{"a"}}}})
	if !errors.Is(err, ErrCycle) {
		t.Errorf("expected ErrCycle, got %v", err)
	}
}

func TestNew_RejectsSynonymConflict(t *testing.T) {
	doc := Document{
		Capabilities: []EntrySpec{
			{Name: "a", Synonyms: []string{"shared"}},
			{Name: "b", Synonyms: []string{"Shared"}},
		},
	}
	if _, err := New(doc); !errors.Is(err, ErrSynonymConflict) {
		t.Errorf("expected ErrSynonymConflict, got %v", err)
	}
}

func TestNew_RejectsUnknownReferences(t *testing.T) {
	doc := Document{
		Critical:     []string{"ghost"},
		Capabilities: []EntrySpec{{Name: "a", Dependencies: []string{"phantom"}}},
	}

	_, err := New(doc)
	if !errors.Is(err, ErrUnknownCanonical) {
		t.Fatalf("expected ErrUnknownCanonical, got %v", err)
	}
	for _, name := range []string{"ghost", "phantom"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("expected %q to be reported, got %q", name, err.Error())
		}
	}
}

func TestNew_RejectsDuplicates(t *testing.T) {
	doc := Document{Capabilities: []EntrySpec{{Name: "a"}, {Name: "a"}}}
	if _, err := New(doc); !errors.Is(err, ErrDuplicateCapability) {
		t.Errorf("expected ErrDuplicateCapability, got %v", err)
	}
}

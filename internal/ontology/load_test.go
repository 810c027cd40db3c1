package ontology

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleYAML = `
critical:
  - emergency
  - lab
capabilities:
  - name: emergency
    description: Emergency care
    synonyms: [casualty, "a&e"]
    dependencies: [lab]
  - name: lab
    synonyms: [laboratory]
`

func TestLoad(t *testing.T) {
	o, err := Load(strings.NewReader(sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := o.Normalize("Casualty"); got != "emergency" {
		t.Errorf("expected emergency, got %s", got)
	}
	if diff := cmp.Diff([]string{"emergency", "lab"}, o.Critical()); diff != "" {
		t.Errorf("critical mismatch (-want +got):\n%s", diff)
	}
	e, ok := o.Entry("emergency")
	if !ok || !e.IsCritical || e.Description != "Emergency care" {
		t.Errorf("unexpected entry: %+v (found=%v)", e, ok)
	}
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	_, err := Load(strings.NewReader("capabilities:\n  - name: a\n    weight: 3\n"))
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestLoad_RejectsCycle(t *testing.T) {
	doc := "capabilities:\n  - name: a\n    dependencies: [b]\n  - name: b\n    dependencies: [a]\n"
	if _, err := Load(strings.NewReader(doc)); !errors.Is(err, ErrCycle) {
		t.Errorf("expected ErrCycle, got %v", err)
	}
}

func TestEncode_RoundTripsDefault(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, DefaultDocument()); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	path := filepath.Join(t.TempDir(), "ontology.yaml")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if diff := cmp.Diff(Default().Entries(), loaded.Entries()); diff != "" {
		t.Errorf("entries changed after round trip (-want +got):\n%s", diff)
	}
}

func TestFromFile_EmptyPathUsesDefault(t *testing.T) {
	o, err := FromFile("")
	if err != nil {
		t.Fatal(err)
	}
	if !o.Has("emergency_care") {
		t.Error("expected built-in catalog")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

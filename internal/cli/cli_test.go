package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/deserts/internal/ontology"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

const facilitiesJSON = `[
  {"facility_id": "f1", "name": "Tamale Teaching Hospital", "region": "Northern", "district": "Tamale",
   "facility_type": "Teaching Hospital",
   "capabilities": [{"capability_text": "Pharmacy", "evidence": ["dispensary open 24/7 with 4 staff"], "confidence": 0.9, "availability": "available"}]},
  {"facility_id": "f2", "name": "Bawku CHPS", "region": "Upper East", "district": "Bawku West",
   "facility_type": "CHPS",
   "capabilities": [{"capability_text": "ICU", "evidence": ["may possibly have beds"], "confidence": 0.3, "availability": "unknown"}]}
]`

func writeFacilities(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "facilities.json")
	require.NoError(t, os.WriteFile(path, []byte(facilitiesJSON), 0o644))
	return path
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, version+"\n", out)
}

func TestNormalizeCommand(t *testing.T) {
	out, err := execute(t, "normalize", "C-section", "X-Ray", "Acupuncture")
	require.NoError(t, err)

	assert.Contains(t, out, "cesarean_section")
	assert.Contains(t, out, "operating_room,anesthesia,sterilization,blood_bank")
	assert.Contains(t, out, "xray")
	assert.Regexp(t, `Acupuncture\s+Acupuncture\s+no\s+no\s+-`, out)
}

func TestOntologyCheckCommand(t *testing.T) {
	out, err := execute(t, "ontology", "check", "--file", "")
	require.NoError(t, err)
	assert.Contains(t, out, "built-in ontology")

	path := filepath.Join(t.TempDir(), "cycle.yaml")
	doc := "capabilities:\n  - name: a\n    dependencies: [b]\n  - name: b\n    dependencies: [a]\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, err = execute(t, "ontology", "check", "--file", path)
	assert.ErrorIs(t, err, ontology.ErrCycle)
}

func TestAnalyzeCommand(t *testing.T) {
	input := writeFacilities(t)
	reportPath := filepath.Join(t.TempDir(), "report.json")

	out, err := execute(t, "analyze", input, "--json", reportPath, "--districts")
	require.NoError(t, err)
	assert.Contains(t, out, "Northern")
	assert.Contains(t, out, "Upper East / Bawku West")

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var report map[string]any
	require.NoError(t, json.Unmarshal(data, &report))
	assert.NotEmpty(t, report["run_id"])
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", writeFacilities(t), "--suspicious", "3", "--json", "")
	require.NoError(t, err)

	assert.Contains(t, out, "Facilities: 2 (1 with warnings)")
	assert.Contains(t, out, "Bawku CHPS")
	assert.Contains(t, out, "Unlikely for CHPS: intensive_care_unit is uncommon in this facility type")
}

func TestCapabilityCommand_RequiresCapability(t *testing.T) {
	_, err := execute(t, "capability", writeFacilities(t))
	assert.Error(t, err)
}

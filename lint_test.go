package dialogen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func logLint(t *testing.T, result LintResult) {
	t.Logf("### Response: %s", result.Summary)
	for _, err := range result.Errors {
		t.Logf("Error: %s", err)
	}
	for _, warn := range result.Warnings {
		t.Logf("Warning: %s", warn)
	}
}

func anyContains(list []string, sub string) bool {
	for _, s := range list {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func TestLintDataset_Valid(t *testing.T) {
	data := `{
  "categories": {"Support": {"scenarios": ["Printer"], "flow_type": "fix"}},
  "flow_definitions": {"fix": {"steps": ["describe", "fix"]}}
}`
	result := LintDataset([]byte(data))
	logLint(t, result)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestLintDataset_NotJSON(t *testing.T) {
	result := LintDataset([]byte(`{"categories": `))
	logLint(t, result)
	assert.False(t, result.Valid)
	assert.True(t, anyContains(result.Errors, "JSON parsing error"))
}

func TestLintDataset_MissingSections(t *testing.T) {
	result := LintDataset([]byte(`{"categories": []}`))
	logLint(t, result)
	assert.False(t, result.Valid)
	assert.True(t, anyContains(result.Errors, "'categories' section must be an object"))
	assert.True(t, anyContains(result.Errors, "'flow_definitions' section is missing"))
}

func TestLintDataset_Duplicates(t *testing.T) {
	data := `{
  "categories": {
    "A": {"scenarios": ["s"], "flow_type": "f"},
    "A": {"scenarios": ["t"], "flow_type": "f"}
  },
  "flow_definitions": {
    "f": {"steps": ["one"]},
    "f": {"steps": ["two"]}
  }
}`
	result := LintDataset([]byte(data))
	logLint(t, result)
	assert.False(t, result.Valid)
	assert.True(t, anyContains(result.Errors, "Duplicate category name 'A'"))
	assert.True(t, anyContains(result.Errors, "Duplicate flow name 'f'"))
}

func TestLintDataset_UnknownFlow(t *testing.T) {
	data := `{
  "categories": {"A": {"scenarios": ["s"], "flow_type": "missing"}},
  "flow_definitions": {}
}`
	result := LintDataset([]byte(data))
	logLint(t, result)
	assert.False(t, result.Valid)
	assert.True(t, anyContains(result.Errors, "unknown flow_type 'missing'"))
}

func TestLintDataset_Warnings(t *testing.T) {
	data := `{
  "categories": {
    "Empty": {"scenarios": [], "flow_type": "used"},
    "Twice": {"scenarios": ["s", "s"], "flow_type": "used"}
  },
  "flow_definitions": {
    "used": {"steps": []},
    "spare": {"steps": ["x"]}
  }
}`
	result := LintDataset([]byte(data))
	logLint(t, result)
	assert.True(t, result.Valid)
	assert.True(t, anyContains(result.Warnings, "'Empty' has no scenarios"))
	assert.True(t, anyContains(result.Warnings, "scenario 's' more than once"))
	assert.True(t, anyContains(result.Warnings, "Flow 'used' has no steps"))
	assert.True(t, anyContains(result.Warnings, "Flow 'spare' is defined but no category uses it"))
	assert.Equal(t, "Linting complete. Found 0 error(s), 4 warning(s).", result.Summary)
}

func TestLintDataset_EmptyScenarioIsWarning(t *testing.T) {
	data := `{
  "categories": {"A": {"scenarios": ["", "ok"], "flow_type": "f"}},
  "flow_definitions": {"f": {"steps": ["x"]}}
}`
	result := LintDataset([]byte(data))
	logLint(t, result)
	assert.True(t, result.Valid)
	assert.True(t, anyContains(result.Warnings, "'A' scenario 1 is empty"))

	ds, err := ParseDataset([]byte(data))
	if assert.NoError(t, err) {
		assert.Equal(t, []string{"", "ok"}, ds.Categories[0].Scenarios)
	}
}

func TestLintDataset_EmptyFlowTypeIsError(t *testing.T) {
	data := `{
  "categories": {"A": {"scenarios": ["s"], "flow_type": ""}},
  "flow_definitions": {"f": {"steps": ["x"]}}
}`
	result := LintDataset([]byte(data))
	logLint(t, result)
	assert.False(t, result.Valid)
	assert.True(t, anyContains(result.Errors, "unknown flow_type ''"))
}

func TestLintDataset_SchemaViolation(t *testing.T) {
	// scenarios must be a list of non-empty strings
	data := `{
  "categories": {"A": {"scenarios": ["ok", 3], "flow_type": "f"}},
  "flow_definitions": {"f": {"steps": ["x"]}}
}`
	result := LintDataset([]byte(data))
	logLint(t, result)
	assert.False(t, result.Valid)
	assert.True(t, anyContains(result.Errors, "The data file is invalid"))
}

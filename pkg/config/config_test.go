package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 10, cfg.Thresholds.Complexity)
	assert.Equal(t, 500, cfg.Thresholds.FileSize)
	assert.Equal(t, 2, cfg.Thresholds.ClassLCOM)
	assert.Equal(t, 2.0, cfg.Costs.OtherTableWrite)
	assert.Equal(t, 0.5, cfg.Costs.OtherTableRead)
	assert.Equal(t, 0.1, cfg.HoursPerLine)
	assert.Equal(t, 6, cfg.Duplicates.MinLines)
	assert.Equal(t, 0.8, cfg.Duplicates.Similarity)
	assert.Contains(t, cfg.Coupling.ReadMethods, "find_one")
	assert.Contains(t, cfg.Coupling.WriteMethods, "insert_many")
	require.NoError(t, cfg.Validate())
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := writeConfig(t, "augur.yaml", `
table_ownership:
  billing:
    - invoices
thresholds:
  complexity: 15
hours_per_line: 0.2
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.Thresholds.Complexity)
	assert.Equal(t, 0.2, cfg.HoursPerLine)
	assert.Equal(t, []string{"invoices"}, cfg.Ownership["billing"])
	// Untouched keys keep defaults.
	assert.Equal(t, 500, cfg.Thresholds.FileSize)
	assert.Equal(t, 6, cfg.Duplicates.MinLines)
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "augur.toml", `
hours_per_line = 0.3

[thresholds]
nesting = 6
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.3, cfg.HoursPerLine)
	assert.Equal(t, 6, cfg.Thresholds.Nesting)
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "augur.json", `{"workers": 4}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Workers)
}

func TestUnknownKeyIsFatal(t *testing.T) {
	path := writeConfig(t, "augur.yaml", `
treshold:
  complexity: 15
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
}

func TestWrongTypeIsFatal(t *testing.T) {
	path := writeConfig(t, "augur.yaml", `
thresholds:
  complexity: lots
`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestNegativeThresholdIsFatal(t *testing.T) {
	path := writeConfig(t, "augur.yaml", `
thresholds:
  complexity: -1
`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestSimilarityRange(t *testing.T) {
	cfg := Default()
	cfg.Duplicates.Similarity = 1.5
	assert.Error(t, cfg.Validate())
	cfg.Duplicates.Similarity = 0.9
	assert.NoError(t, cfg.Validate())
}

func TestEmptyOwnershipNamesRejected(t *testing.T) {
	cfg := Default()
	cfg.Ownership = map[string][]string{"billing": {""}}
	assert.Error(t, cfg.Validate())
	cfg.Ownership = map[string][]string{"": {"invoices"}}
	assert.Error(t, cfg.Validate())
}

func TestMissingFileIsFatal(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

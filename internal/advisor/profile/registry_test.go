package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	reg, err := NewRegistry("")
	require.NoError(t, err)

	p := reg.Current()
	assert.NotEmpty(t, p.SystemTemplate)
	require.NotNil(t, p.Schema())

	// The default schema bounds the adjustment.
	assert.Error(t, p.Schema().Validate(map[string]any{
		"adjustment": 0.9,
		"confidence": 0.5,
	}))
	assert.NoError(t, p.Schema().Validate(map[string]any{
		"adjustment": 0.1,
		"confidence": 0.5,
	}))
	// required fields
	assert.Error(t, p.Schema().Validate(map[string]any{"adjustment": 0.1}))
}

func TestRegistryLoadsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "advisory.yaml")
	content := `advisory:
  system_template: "custom analyst prompt"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	reg, err := NewRegistry(path)
	require.NoError(t, err)

	p := reg.Current()
	assert.Equal(t, "custom analyst prompt", p.SystemTemplate)
	// Schema absent in the file: falls back to the built-in one.
	assert.NotNil(t, p.Schema())

	snap := reg.Snapshot()
	assert.GreaterOrEqual(t, snap.Version, int64(1))
	assert.False(t, snap.LoadedAt.IsZero())
}

func TestRegistryRejectsMissingFile(t *testing.T) {
	_, err := NewRegistry(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestRegistryRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "advisory.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n  - ["), 0o644))
	_, err := NewRegistry(path)
	assert.Error(t, err)
}

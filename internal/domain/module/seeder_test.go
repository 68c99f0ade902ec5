package module

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSeedManifestMissingFile(t *testing.T) {
	descriptors, err := LoadSeedManifest(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultDescriptors(), descriptors)
}

func TestLoadSeedManifestOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modules.yaml")
	manifest := `modules:
  - id: mod-cpu
    name: Processor
    icon: cpu
  - id: mod-camera
    enabled: false
  - id: mod-unknown
    name: Ignored
`
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0o644))

	descriptors, err := LoadSeedManifest(path)
	require.NoError(t, err)

	byID := make(map[string]int)
	for i, d := range descriptors {
		byID[d.ID] = i
	}

	cpu := descriptors[byID["mod-cpu"]]
	assert.Equal(t, "Processor", cpu.Name)
	assert.Equal(t, "cpu", cpu.Icon)
	// dispatch key is immutable through the manifest
	assert.Equal(t, "cpu", cpu.DispatchKey)

	assert.False(t, descriptors[byID["mod-camera"]].Enabled)
	_, exists := byID["mod-unknown"]
	assert.False(t, exists, "manifest cannot introduce new descriptors")
}

func TestLoadSeedManifestMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("modules: {broken"), 0o644))

	_, err := LoadSeedManifest(path)
	assert.Error(t, err)
}

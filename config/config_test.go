package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsZeroValue(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, c)
}

func TestLoadParsesFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nyxrc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
max_alloc: 1000
max_steps: 5000
max_call_depth: 64
vm: true
vm_strict: false
trace: true
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{MaxAlloc: 1000, MaxSteps: 5000, MaxCallDepth: 64, VM: true, Trace: true}, c)
}

// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Run from an empty directory so no stray secrets.toml is picked up.
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "ai-keys", cfg.Namespace)
	assert.Equal(t, DefaultBaseDir(), cfg.BaseDir)
	assert.Empty(t, cfg.Backend)
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "secrets.toml")
	content := "namespace = \"work\"\nbase_dir = \"/tmp/work-secrets\"\nbackend = \"keyring\"\n"
	require.NoError(t, os.WriteFile(cfgFile, []byte(content), 0o600))

	cfg, err := Load(cfgFile)
	require.NoError(t, err)
	assert.Equal(t, "work", cfg.Namespace)
	assert.Equal(t, "/tmp/work-secrets", cfg.BaseDir)
	assert.Equal(t, "keyring", cfg.Backend)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestEnvOverridesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SECRETS_NAMESPACE", "from-env")
	t.Setenv("SECRETS_BASE_DIR", "/tmp/env-secrets")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Namespace)
	assert.Equal(t, "/tmp/env-secrets", cfg.BaseDir)
}

func TestBlankNamespaceRejected(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SECRETS_NAMESPACE", "   ")

	_, err := Load("")
	require.Error(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_MissingFileYieldsDefaults(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoadSettings_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := `server: https://apis.example.com
page_size: 25
activity_enabled: false
tls:
  insecure_skip_verify: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, "https://apis.example.com", s.Server)
	assert.Equal(t, 25, s.PageSize)
	assert.Equal(t, 30*time.Second, s.Timeout())
	assert.False(t, s.ActivityOn())
	require.NotNil(t, s.TLSConfig())
	assert.True(t, s.TLSConfig().InsecureSkipVerify)
}

func TestLoadSettings_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: localhost\npage_size: 500\n"), 0644))

	_, err := LoadSettings(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server")
	assert.Contains(t, err.Error(), "page_size")
}

func TestLoadSettings_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unterminated"), 0644))

	_, err := LoadSettings(path)
	assert.ErrorContains(t, err, "parsing")
}

func TestInitializeAt_WritesDefaultSettings(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "home")
	require.NoError(t, InitializeAt(dir))

	assert.Equal(t, filepath.Join(dir, ".session.json"), SessionFile)
	assert.Equal(t, filepath.Join(dir, "apiconsole.db"), DatabasePath)

	s, err := LoadSettings(SettingsFile)
	require.NoError(t, err)
	assert.Equal(t, DefaultServer, s.Server)
	assert.Nil(t, s.TLSConfig())
}

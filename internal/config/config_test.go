package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err, "explicit missing path must fail")
	assert.Nil(t, cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "JAVA_HOME", cfg.HomeVar)
	assert.Equal(t, ScopeSystem, cfg.Scope)
	assert.False(t, cfg.Sort)
	assert.True(t, cfg.Update.Enabled)
	assert.Empty(t, cfg.Update.Repository)
	assert.NotEmpty(t, cfg.StoreFile)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `home_var: _JAVA_HOME_
scope: user
sort: true
search_paths:
  - D:\jdks
  - ' D:\jdks '
  - ""
update:
  enabled: false
  last_check: 2026-10-01T10:00:00Z
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "_JAVA_HOME_", cfg.HomeVar)
	assert.Equal(t, ScopeUser, cfg.Scope)
	assert.True(t, cfg.Sort)
	assert.Equal(t, []string{filepath.Clean(`D:\jdks`)}, cfg.SearchPaths)
	assert.False(t, cfg.Update.Enabled)
	assert.True(t, cfg.Update.LastCheck.Equal(time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, path, cfg.Path())
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("JDKSWITCH_HOME_VAR", "JDK_HOME")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "JDK_HOME", cfg.HomeVar)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"ok", Config{HomeVar: "JAVA_HOME", Scope: ScopeSystem}, false},
		{"underscore", Config{HomeVar: "_JAVA_HOME_", Scope: ScopeUser}, false},
		{"percent", Config{HomeVar: "%JAVA_HOME%", Scope: ScopeSystem}, true},
		{"empty", Config{HomeVar: "", Scope: ScopeSystem}, true},
		{"scope", Config{HomeVar: "JAVA_HOME", Scope: "machine"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("home_var: JAVA_HOME\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	cfg.Update.SkipVersion = "1.4.0"
	cfg.Update.LastCheck = time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)
	require.NoError(t, cfg.Save())

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "1.4.0", again.Update.SkipVersion)
	assert.True(t, again.Update.LastCheck.Equal(cfg.Update.LastCheck))
}

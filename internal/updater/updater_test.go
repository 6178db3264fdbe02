package updater

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jdkswitch/internal/config"
	"jdkswitch/internal/logging"
)

type stubSource struct {
	release *selfupdate.Release
	found   bool
	err     error
	calls   int
}

func (s *stubSource) DetectLatest(context.Context, selfupdate.Repository) (*selfupdate.Release, bool, error) {
	s.calls++
	return s.release, s.found, s.err
}

func newTestUpdater(t *testing.T, version string, src releaseSource) (*Updater, *config.Config) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scope: user\nupdate:\n  repository: example/jdkswitch\n"), 0o644))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	return &Updater{
		cfg:     cfg,
		current: strings.TrimPrefix(version, "v"),
		source:  src,
		logger:  logging.ForTest(t),
		now:     func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) },
	}, cfg
}

func TestShouldCheck(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		version string
		mutate  func(*config.UpdateConfig)
		want    bool
	}{
		{"never checked", "v1.2.0", func(*config.UpdateConfig) {}, true},
		{"checked recently", "1.2.0", func(c *config.UpdateConfig) { c.LastCheck = now.Add(-time.Hour) }, false},
		{"interval elapsed", "1.2.0", func(c *config.UpdateConfig) { c.LastCheck = now.Add(-CheckInterval) }, true},
		{"disabled", "1.2.0", func(c *config.UpdateConfig) { c.Enabled = false }, false},
		{"auto check off", "1.2.0", func(c *config.UpdateConfig) { c.AutoCheck = false }, false},
		{"dev build", "dev", func(*config.UpdateConfig) {}, false},
		{"no repository", "1.2.0", func(c *config.UpdateConfig) { c.Repository = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, cfg := newTestUpdater(t, tt.version, &stubSource{})
			cfg.Update.Enabled = true
			cfg.Update.AutoCheck = true
			tt.mutate(&cfg.Update)
			assert.Equal(t, tt.want, u.ShouldCheck())
		})
	}
}

func TestCheck_SourceError(t *testing.T) {
	src := &stubSource{err: errors.New("rate limited")}
	u, _ := newTestUpdater(t, "1.0.0", src)

	_, err := u.Check(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
	assert.Equal(t, 1, src.calls)
}

func TestCheck_NoReleases(t *testing.T) {
	u, cfg := newTestUpdater(t, "1.0.0", &stubSource{})

	_, err := u.Check(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "example/jdkswitch")
	assert.True(t, cfg.Update.LastCheck.IsZero())
}

func TestCheck_NoRepository(t *testing.T) {
	src := &stubSource{}
	u, cfg := newTestUpdater(t, "1.0.0", src)
	cfg.Update.Repository = ""

	_, err := u.Check(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no update repository")
	assert.Zero(t, src.calls)
}

func TestSkip(t *testing.T) {
	u, cfg := newTestUpdater(t, "1.0.0", &stubSource{})
	require.NoError(t, u.Skip("1.1.0"))

	reloaded, err := config.Load(cfg.Path())
	require.NoError(t, err)
	assert.Equal(t, "1.1.0", reloaded.Update.SkipVersion)
}

func TestTruncateNotes(t *testing.T) {
	assert.Equal(t, "See the release notes on GitHub for details.", truncateNotes("  \n", 400))
	assert.Equal(t, "short", truncateNotes(" short ", 400))

	long := strings.Repeat("word ", 30) + "\n" + strings.Repeat("x", 200)
	got := truncateNotes(long, 160)
	assert.Equal(t, strings.Repeat("word ", 30)+"...", got)

	noBreaks := strings.Repeat("y", 300)
	assert.Equal(t, strings.Repeat("y", 160)+"...", truncateNotes(noBreaks, 160))
}

package updater

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creativeprojects/go-selfupdate"

	"jdkswitch/internal/config"
	"jdkswitch/internal/logging"
)

const (
	// CheckInterval is the minimum time between background checks.
	CheckInterval = 24 * time.Hour

	// Timeout bounds an interactive update.
	Timeout = 5 * time.Minute

	// BackgroundTimeout bounds the silent check run after a command.
	BackgroundTimeout = 5 * time.Second

	checksumFile = "SHA256SUMS.txt"
)

// releaseSource is the part of *selfupdate.Updater used here.
type releaseSource interface {
	DetectLatest(ctx context.Context, repository selfupdate.Repository) (*selfupdate.Release, bool, error)
}

// Updater checks GitHub releases for a newer jdkswitch and installs it.
type Updater struct {
	cfg     *config.Config
	current string
	source  releaseSource
	logger  *slog.Logger
	now     func() time.Time
}

// New creates an Updater for the running version. Downloads are verified
// against the release's SHA256SUMS.txt.
func New(cfg *config.Config, version string, logger *slog.Logger) (*Updater, error) {
	su, err := selfupdate.NewUpdater(selfupdate.Config{
		Validator: &selfupdate.ChecksumValidator{UniqueFilename: checksumFile},
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating updater")
	}
	return &Updater{
		cfg:     cfg,
		current: strings.TrimPrefix(version, "v"),
		source:  su,
		logger:  logging.OrDiscard(logger),
		now:     time.Now,
	}, nil
}

// Current is the running version without its v prefix.
func (u *Updater) Current() string {
	return u.current
}

// ShouldCheck reports whether a background check is due. Development
// builds and configs without a repository never check.
func (u *Updater) ShouldCheck() bool {
	up := u.cfg.Update
	if !up.Enabled || !up.AutoCheck || up.Repository == "" || u.current == "dev" {
		return false
	}
	return u.now().Sub(up.LastCheck) >= CheckInterval
}

// Check returns the latest release when it is newer than the running
// version and not skipped, or nil.
func (u *Updater) Check(ctx context.Context) (*selfupdate.Release, error) {
	repo := u.cfg.Update.Repository
	if repo == "" {
		return nil, errors.New("no update repository configured")
	}
	latest, found, err := u.source.DetectLatest(ctx, selfupdate.ParseSlug(repo))
	if err != nil {
		return nil, errors.Wrapf(err, "checking %s for updates", repo)
	}
	if !found {
		return nil, errors.Newf("no releases found in %s", repo)
	}

	u.cfg.Update.LastCheck = u.now()
	if err := u.cfg.Save(); err != nil {
		u.logger.Warn("failed to record update check", "error", err)
	}

	if latest.LessOrEqual(u.current) {
		u.logger.Debug("already up to date", "current", u.current, "latest", latest.Version())
		return nil, nil
	}
	if u.cfg.Update.SkipVersion == latest.Version() {
		u.logger.Debug("latest version skipped", "version", latest.Version())
		return nil, nil
	}
	return latest, nil
}

// Apply replaces the running executable with release. The old binary is
// kept as a backup and restored if the replacement fails.
func (u *Updater) Apply(ctx context.Context, release *selfupdate.Release) error {
	exe, err := os.Executable()
	if err != nil {
		return errors.Wrap(err, "locating executable")
	}

	backup := exe + ".backup"
	if err := copyFile(exe, backup); err != nil {
		return errors.Wrap(err, "creating backup")
	}

	if err := selfupdate.UpdateTo(ctx, release.AssetURL, release.AssetName, exe); err != nil {
		if rbErr := os.Rename(backup, exe); rbErr != nil {
			return errors.WithSecondaryError(errors.Wrap(err, "update failed and rollback failed"), rbErr)
		}
		return errors.Wrap(err, "update failed, rolled back")
	}

	if err := os.Remove(backup); err != nil {
		// Windows keeps the running image locked until exit.
		u.logger.Debug("backup left in place", "path", backup, "error", err)
	}
	u.logger.Info("updated", "from", u.current, "to", release.Version())
	return nil
}

// Skip records version so it is not offered again.
func (u *Updater) Skip(version string) error {
	u.cfg.Update.SkipVersion = version
	return u.cfg.Save()
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o755)
}

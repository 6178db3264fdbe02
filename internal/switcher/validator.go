package switcher

import (
	"log/slog"
	"runtime"
	"strings"

	"github.com/cockroachdb/errors"

	"jdkswitch/internal/env"
	jerrors "jdkswitch/internal/errors"
	"jdkswitch/internal/java"
	"jdkswitch/internal/logging"
)

// Discoverer lists installed JDKs. *java.Inventory implements it.
type Discoverer interface {
	Discover() []java.JDK
}

// DefaultLauncher is appended to a home directory to name its launcher.
var DefaultLauncher = defaultLauncher()

func defaultLauncher() string {
	if runtime.GOOS == "windows" {
		return `\bin\java.exe`
	}
	return "/bin/java"
}

// Deps are the collaborators of a Validator and a Switcher.
type Deps struct {
	Store     env.Store
	Inventory Discoverer
	Probe     Prober
	// HomeVar names the home variable, e.g. JAVA_HOME.
	HomeVar string
	// Launcher defaults to DefaultLauncher.
	Launcher string
	Logger   *slog.Logger
}

// Validator checks the home variable against the java found on PATH.
type Validator struct {
	store     env.Store
	inventory Discoverer
	probe     Prober
	homeVar   string
	launcher  string
	logger    *slog.Logger
}

// NewValidator creates a Validator.
func NewValidator(d Deps) *Validator {
	launcher := d.Launcher
	if launcher == "" {
		launcher = DefaultLauncher
	}
	return &Validator{
		store:     d.Store,
		inventory: d.Inventory,
		probe:     d.Probe,
		homeVar:   d.HomeVar,
		launcher:  launcher,
		logger:    logging.OrDiscard(d.Logger),
	}
}

// ValidateHome reports whether the home variable needs correcting and the
// value to correct it from.
//
// When the variable is unset the proposal is the last JDK the inventory
// found. Inventory order is listing order unless sorting is configured,
// so which JDK that is depends on the filesystem. An empty inventory
// fails with ErrNotFound.
//
// When the variable is set, home+launcher is compared byte for byte with
// the probed launcher. On a mismatch the stored home is returned so the
// caller can re-apply it; on a match ok is false.
func (v *Validator) ValidateHome() (proposal string, ok bool, err error) {
	home, err := v.store.Get(v.homeVar)
	obs := observation{home: home, homeSet: err == nil}
	switch {
	case errors.Is(err, jerrors.ErrNotFound):
		obs.jdks = v.inventory.Discover()
	case err != nil:
		return "", false, errors.Wrapf(err, "reading %s", v.homeVar)
	default:
		obs.launcher, obs.probeErr = v.probe.Locate()
	}
	return v.decide(obs)
}

// observation is the state ValidateHome decides from. jdks is consulted
// only when the home variable is unset, the probe result only when it is
// set.
type observation struct {
	home     string
	homeSet  bool
	jdks     []java.JDK
	launcher string
	probeErr error
}

func (v *Validator) decide(obs observation) (string, bool, error) {
	if !obs.homeSet {
		if len(obs.jdks) == 0 {
			return "", false, jerrors.NotFoundf("%s is not set and no JDK is installed", v.homeVar)
		}
		last := obs.jdks[len(obs.jdks)-1]
		v.logger.Info("home variable unset, proposing last discovered jdk", "var", v.homeVar, "jdk", last.Path)
		return last.Path, true, nil
	}
	if obs.probeErr != nil {
		return "", false, obs.probeErr
	}

	expected := obs.home + v.launcher
	if expected != obs.launcher {
		v.logger.Info("home variable is stale", "expected", expected, "actual", obs.launcher)
		return obs.home, true, nil
	}
	return "", false, nil
}

// RootFromLauncher derives a JDK home from a launcher path by dropping the
// file name and any trailing bin directories. Both separators are accepted.
func RootFromLauncher(launcher string) (string, bool) {
	p := strings.TrimRight(strings.TrimSpace(launcher), `\/`)
	i := strings.LastIndexAny(p, `\/`)
	if i < 0 {
		return "", false
	}
	sep := p[i : i+1]
	dir := strings.TrimRight(p[:i], `\/`)

	stripped := false
	for {
		j := strings.LastIndexAny(dir, `\/`)
		if j < 0 || !strings.EqualFold(dir[j+1:], "bin") {
			break
		}
		sep = dir[j : j+1]
		dir = strings.TrimRight(dir[:j], `\/`)
		stripped = true
	}
	if !stripped {
		return "", false
	}
	if dir == "" || strings.HasSuffix(dir, ":") {
		dir += sep
	}
	return dir, true
}

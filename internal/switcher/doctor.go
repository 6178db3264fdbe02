package switcher

import (
	"github.com/cockroachdb/errors"

	"jdkswitch/internal/env"
	jerrors "jdkswitch/internal/errors"
)

// Report summarizes the state of the java environment.
type Report struct {
	HomeVar string

	// Home is the stored, unexpanded home value; empty when unset.
	Home string

	// Resolved is Home with references expanded.
	Resolved string

	// Launcher is what the probe found, empty when it failed.
	Launcher string
	ProbeErr error

	// ActiveRoot is the JDK home derived from Launcher.
	ActiveRoot string

	JDKCount int
	Path     env.PathChange
	Proposal string
	NeedsFix bool
	Admin    bool

	// ValidateErr is set when validation could not finish, for example
	// when the home variable is unset and no JDK is installed.
	ValidateErr error
}

// Healthy reports whether nothing needs fixing.
func (r Report) Healthy() bool {
	return !r.NeedsFix && !r.Path.Changed() && r.ProbeErr == nil && r.ValidateErr == nil
}

// Diagnose collects a Report. Probe failures and an empty inventory are
// recorded instead of returned; store failures are returned.
func (s *Switcher) Diagnose() (Report, error) {
	r := Report{HomeVar: s.homeVar, Admin: env.IsAdmin()}

	home, err := s.store.Get(s.homeVar)
	switch {
	case err == nil:
		r.Home = home
	case !errors.Is(err, jerrors.ErrNotFound):
		return r, errors.Wrapf(err, "reading %s", s.homeVar)
	}
	obs := observation{home: home, homeSet: err == nil}

	if obs.homeSet {
		if r.Resolved, err = s.Current(); err != nil {
			return r, err
		}
		if r.Path, err = env.PlanPath(s.store, s.homeVar, s.logger); err != nil {
			return r, err
		}
	}

	obs.launcher, obs.probeErr = s.validator.probe.Locate()
	r.Launcher, r.ProbeErr = obs.launcher, obs.probeErr
	if r.ProbeErr == nil {
		r.ActiveRoot, _ = RootFromLauncher(r.Launcher)
	} else {
		r.Launcher = ""
	}

	obs.jdks = s.inventory.Discover()
	r.JDKCount = len(obs.jdks)

	r.Proposal, r.NeedsFix, err = s.validator.decide(obs)
	if err != nil {
		if !errors.Is(err, jerrors.ErrProbe) && !errors.Is(err, jerrors.ErrNotFound) {
			return r, err
		}
		r.ValidateErr = err
	}
	return r, nil
}

// Fix applies a proposal from ValidateHome: the home variable is set to it
// and PATH reconciled.
func (s *Switcher) Fix(proposal string) (Result, error) {
	if proposal == "" {
		return Result{}, jerrors.NotFoundf("nothing to fix")
	}
	return s.switchTo(proposal)
}

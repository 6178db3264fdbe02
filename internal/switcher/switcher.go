package switcher

import (
	"log/slog"

	"github.com/cockroachdb/errors"

	"jdkswitch/internal/env"
	jerrors "jdkswitch/internal/errors"
	"jdkswitch/internal/java"
	"jdkswitch/internal/logging"
)

// Switcher points the home variable at a JDK and keeps PATH in step.
type Switcher struct {
	store     env.Store
	inventory Discoverer
	resolver  *env.Resolver
	validator *Validator
	homeVar   string
	logger    *slog.Logger
}

// Result is the outcome of a switch.
type Result struct {
	Home string
	Path env.PathChange
}

// New creates a Switcher.
func New(d Deps) *Switcher {
	logger := logging.OrDiscard(d.Logger)
	d.Logger = logger
	return &Switcher{
		store:     d.Store,
		inventory: d.Inventory,
		resolver:  env.NewResolver(d.Store, logger),
		validator: NewValidator(d),
		homeVar:   d.HomeVar,
		logger:    logger,
	}
}

// Validator returns the validator sharing this switcher's collaborators.
func (s *Switcher) Validator() *Validator {
	return s.validator
}

// List returns the installed JDKs in inventory order.
func (s *Switcher) List() []java.JDK {
	return s.inventory.Discover()
}

// Select returns the JDK at a zero-based index into jdks.
func Select(jdks []java.JDK, index int) (java.JDK, error) {
	if len(jdks) == 0 {
		return java.JDK{}, jerrors.NotFoundf("no JDK installed")
	}
	if index < 0 || index >= len(jdks) {
		return java.JDK{}, errors.Mark(
			errors.Newf("index %d out of range, %d JDK(s) installed (0-%d)", index, len(jdks), len(jdks)-1),
			jerrors.ErrInvalidIndex)
	}
	return jdks[index], nil
}

// Current returns the fully expanded home variable, or "" when it is unset.
func (s *Switcher) Current() (string, error) {
	if _, err := s.resolver.Resolve(s.homeVar, false); err != nil {
		if errors.Is(err, jerrors.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return s.resolver.Resolve(s.homeVar, true)
}

// Switch sets the home variable to jdk's directory, then puts
// %HOME%\bin first on PATH. A failed PATH write leaves the home variable
// updated and is reported as ErrIO.
func (s *Switcher) Switch(jdk java.JDK) (Result, error) {
	return s.switchTo(jdk.Path)
}

func (s *Switcher) switchTo(home string) (Result, error) {
	if err := s.store.Set(s.homeVar, home); err != nil {
		return Result{}, jerrors.IOf(err, "setting %s", s.homeVar)
	}
	s.logger.Info("home variable set", "var", s.homeVar, "value", home)

	change, err := env.PlanPath(s.store, s.homeVar, s.logger)
	if err != nil {
		return Result{Home: home}, jerrors.IOf(err, "reading %s", env.PathVar)
	}
	if change.Changed() {
		if err := s.store.Set(env.PathVar, change.New); err != nil {
			return Result{Home: home}, jerrors.IOf(err, "updating %s", env.PathVar)
		}
		s.logger.Info("path updated", "entries", len(env.SplitList(change.New)))
	} else {
		s.logger.Debug("path already up to date")
	}

	if n, ok := s.store.(env.Notifier); ok {
		n.Notify()
	}
	return Result{Home: home, Path: change}, nil
}

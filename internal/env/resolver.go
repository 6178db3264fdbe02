package env

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"

	jerrors "jdkswitch/internal/errors"
	"jdkswitch/internal/logging"
)

// tokenPattern matches a %NAME% reference. Underscores are accepted so
// names like _JAVA_HOME_ resolve.
var tokenPattern = regexp.MustCompile(`%([A-Za-z0-9_-]+)%`)

const (
	// maxStalledVisits bounds revisits of one name that substitute nothing.
	// Outside of a reference cycle a revisit always follows the resolution
	// of a dependency, so only cycles stall.
	maxStalledVisits = 4

	// maxVisits bounds all visits of one name.
	maxVisits = 1024
)

// Resolver reads variables from a Store and expands references to other
// variables.
type Resolver struct {
	store  Store
	logger *slog.Logger
}

// NewResolver returns a resolver over store. A nil logger discards.
func NewResolver(store Store, logger *slog.Logger) *Resolver {
	return &Resolver{store: store, logger: logging.OrDiscard(logger)}
}

// Resolve returns the value of name. Without recursive the stored value is
// returned untouched. With recursive every %NAME% reference is replaced by
// the referenced variable's resolved value. A variable that is not set,
// name included, resolves to its own name. A missing name fails with
// ErrNotFound only without recursive; references that never settle fail
// with ErrCyclicReference.
func (r *Resolver) Resolve(name string, recursive bool) (string, error) {
	if !recursive {
		return r.store.Get(name)
	}
	return r.resolveRecursive(name)
}

func references(value string) []string {
	matches := tokenPattern.FindAllStringSubmatch(value, -1)
	if len(matches) == 0 {
		return nil
	}
	refs := make([]string, 0, len(matches))
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			refs = append(refs, m[1])
		}
	}
	return refs
}

// resolveRecursive runs a worklist over variable names. The stack is
// consumed from the back: a name with unresolved references is pushed
// again below each dependency, so dependencies resolve first and the name
// is revisited afterwards. Each name is fetched from the store at most
// once per call.
func (r *Resolver) resolveRecursive(name string) (string, error) {
	cache := make(map[string]string)   // fully resolved values
	pending := make(map[string]string) // values with references left
	visits := make(map[string]int)
	stalls := make(map[string]int)

	stack := []string{name}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		key := foldKey(cur)
		if _, ok := cache[key]; ok {
			continue
		}

		visits[key]++
		if visits[key] > maxVisits {
			return "", cyclic(name, cur)
		}

		value, revisit := pending[key]
		if !revisit {
			raw, err := r.store.Get(cur)
			switch {
			case err == nil:
				value = raw
			case !errors.Is(err, jerrors.ErrNotFound):
				return "", errors.Wrapf(err, "resolving %s", name)
			default:
				value = cur
			}
		}
		r.logger.Log(context.Background(), logging.LevelTrace, "resolve visit", "name", cur, "value", value)

		refs := references(value)
		if len(refs) == 0 {
			cache[key] = value
			delete(pending, key)
			continue
		}

		progressed := !revisit
		var unresolved []string
		for _, ref := range refs {
			resolved, ok := cache[foldKey(ref)]
			if !ok {
				unresolved = append(unresolved, ref)
				continue
			}
			value = strings.ReplaceAll(value, "%"+ref+"%", resolved)
			progressed = true
		}

		if !progressed {
			stalls[key]++
			if stalls[key] > maxStalledVisits {
				return "", cyclic(name, cur)
			}
		}

		if len(unresolved) == 0 {
			// Substitution may have formed new references; look again.
			if len(references(value)) == 0 {
				cache[key] = value
				delete(pending, key)
				continue
			}
			pending[key] = value
			stack = append(stack, cur)
			continue
		}

		pending[key] = value
		for _, ref := range unresolved {
			stack = append(stack, cur, ref)
		}
	}

	value, ok := cache[foldKey(name)]
	if !ok {
		return "", jerrors.NotFoundf("variable %s did not resolve", name)
	}
	return value, nil
}

func cyclic(name, at string) error {
	return errors.Mark(
		errors.Newf("resolving %s: %s references itself through other variables", name, at),
		jerrors.ErrCyclicReference,
	)
}

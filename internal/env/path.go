package env

import (
	"log/slog"
	"strings"

	"github.com/cockroachdb/errors"

	jerrors "jdkswitch/internal/errors"
)

const listSeparator = ";"

// Ref returns the symbolic reference %name%.
func Ref(name string) string {
	return "%" + name + "%"
}

// BinRef returns the PATH entry for a home reference: ref\bin.
func BinRef(homeRef string) string {
	return homeRef + `\bin`
}

// SplitList splits a raw PATH value. Blank segments, such as the one after
// a trailing separator, are dropped; other entries keep their text as is.
func SplitList(raw string) []string {
	parts := strings.Split(raw, listSeparator)
	entries := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		entries = append(entries, p)
	}
	return entries
}

// JoinList is the inverse of SplitList.
func JoinList(entries []string) string {
	return strings.Join(entries, listSeparator)
}

// pointsAt reports whether entry starts with bin, ignoring case,
// surrounding blanks and quotes. %JAVA_HOME%\bin\ and
// %JAVA_HOME%\bin\server both match %JAVA_HOME%\bin.
func pointsAt(entry, bin string) bool {
	entry = strings.Trim(strings.TrimSpace(entry), `"`)
	return len(entry) >= len(bin) && strings.EqualFold(entry[:len(bin)], bin)
}

// Reconcile returns entries with exactly one entry starting with
// homeRef\bin, placed first so the selected JDK wins lookups. Every entry
// starting with that path is removed from its old position; all other
// entries keep their text and relative order, duplicates included.
func Reconcile(entries []string, homeRef string) []string {
	bin := BinRef(homeRef)
	out := make([]string, 0, len(entries)+1)
	out = append(out, bin)
	for _, e := range entries {
		if pointsAt(e, bin) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// PathChange describes a rewrite of the PATH variable.
type PathChange struct {
	Old string
	New string
}

// Changed reports whether New differs from Old.
func (c PathChange) Changed() bool {
	return c.Old != c.New
}

// PlanPath reads PATH unexpanded and computes its reconciled value for the
// home variable homeVar. An unset PATH is treated as empty.
func PlanPath(store Store, homeVar string, logger *slog.Logger) (PathChange, error) {
	raw, err := store.Get(PathVar)
	if err != nil && !errors.Is(err, jerrors.ErrNotFound) {
		return PathChange{}, errors.Wrap(err, "reading PATH")
	}

	entries := SplitList(raw)
	next := JoinList(Reconcile(entries, Ref(homeVar)))
	if logger != nil {
		logger.Debug("planned PATH", "entries", len(entries), "changed", next != raw)
	}
	return PathChange{Old: raw, New: next}, nil
}

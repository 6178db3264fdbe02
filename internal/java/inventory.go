package java

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"jdkswitch/internal/logging"
)

// layout lists the directories every JDK home contains.
var layout = []string{"bin", "include", "lib"}

// Inventory finds installed JDKs. Each Discover call scans the filesystem
// again; nothing is remembered between calls.
type Inventory struct {
	fs          afero.Fs
	locator     Locator
	roots       []SearchRoot
	searchPaths []string
	sorted      bool
	logger      *slog.Logger
}

// Option configures an Inventory.
type Option func(*Inventory)

// WithFs scans fs instead of the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(inv *Inventory) { inv.fs = fs }
}

// WithLocator resolves search roots with l.
func WithLocator(l Locator) Option {
	return func(inv *Inventory) { inv.locator = l }
}

// WithRoots replaces DefaultRoots.
func WithRoots(roots ...SearchRoot) Option {
	return func(inv *Inventory) { inv.roots = roots }
}

// WithSearchPaths adds absolute directories scanned after the roots.
func WithSearchPaths(paths ...string) Option {
	return func(inv *Inventory) { inv.searchPaths = append(inv.searchPaths, paths...) }
}

// WithSort orders results by vendor, then version. Without it results come
// in directory listing order, which the caller must treat as arbitrary.
func WithSort(sorted bool) Option {
	return func(inv *Inventory) { inv.sorted = sorted }
}

// WithLogger sets the logger for skipped roots and unreadable entries.
func WithLogger(l *slog.Logger) Option {
	return func(inv *Inventory) { inv.logger = l }
}

// NewInventory creates an inventory over the OS filesystem and the
// default roots.
func NewInventory(opts ...Option) *Inventory {
	inv := &Inventory{
		fs:      afero.NewOsFs(),
		locator: SystemLocator(),
		roots:   DefaultRoots,
	}
	for _, opt := range opts {
		opt(inv)
	}
	inv.logger = logging.OrDiscard(inv.logger)
	return inv
}

// Discover scans every root for vendor directories and returns the JDKs
// inside them. Roots that cannot be resolved or read and entries that
// cannot be inspected are skipped.
func (inv *Inventory) Discover() []JDK {
	var jdks []JDK
	for _, root := range inv.rootPaths() {
		jdks = append(jdks, inv.scanRoot(root)...)
	}

	if inv.sorted {
		sort.SliceStable(jdks, func(i, j int) bool {
			a, b := jdks[i], jdks[j]
			if !strings.EqualFold(a.Vendor, b.Vendor) {
				return strings.ToLower(a.Vendor) < strings.ToLower(b.Vendor)
			}
			return strings.ToLower(a.Version) < strings.ToLower(b.Version)
		})
	}

	inv.logger.Debug("inventory complete", "jdks", len(jdks))
	return jdks
}

// IsJDK reports whether path holds the bin, include and lib directories.
func (inv *Inventory) IsJDK(path string) bool {
	return inv.hasLayout(newPathBuf(path))
}

func (inv *Inventory) rootPaths() []string {
	var paths []string
	seen := make(map[string]bool)
	add := func(p string) {
		p = filepath.Clean(p)
		key := strings.ToLower(p)
		if seen[key] {
			return
		}
		seen[key] = true
		paths = append(paths, p)
	}

	for _, root := range inv.roots {
		base, err := inv.locator.Locate(root.Location)
		if err != nil {
			inv.logger.Debug("skipping search root", "location", root.Location, "error", err)
			continue
		}
		add(filepath.Join(base, root.Subpath))
	}
	for _, p := range inv.searchPaths {
		add(p)
	}
	return paths
}

// readDir lists dir in listing order. A listing that fails part way
// returns the entries read so far.
func (inv *Inventory) readDir(dir string) []os.FileInfo {
	f, err := inv.fs.Open(dir)
	if err != nil {
		inv.logger.Debug("skipping directory", "path", dir, "error", err)
		return nil
	}
	defer f.Close()

	entries, err := f.Readdir(-1)
	if err != nil {
		inv.logger.Debug("incomplete directory listing", "path", dir, "read", len(entries), "error", err)
	}
	return entries
}

// isDir follows symlinks, so a linked JDK counts as a directory.
func (inv *Inventory) isDir(path string, info os.FileInfo) bool {
	if info.Mode()&fs.ModeSymlink == 0 {
		return info.IsDir()
	}
	target, err := inv.fs.Stat(path)
	if err != nil {
		inv.logger.Debug("skipping broken link", "path", path, "error", err)
		return false
	}
	return target.IsDir()
}

func (inv *Inventory) dirExists(path string) bool {
	info, err := inv.fs.Stat(path)
	return err == nil && info.IsDir()
}

func (inv *Inventory) scanRoot(root string) []JDK {
	var jdks []JDK
	buf := newPathBuf(root)
	for _, entry := range inv.readDir(root) {
		vendor, ok := LookupVendor(entry.Name())
		if !ok {
			continue
		}

		mark := buf.push(entry.Name())
		if inv.isDir(buf.String(), entry) {
			jdks = append(jdks, inv.scanVendor(buf, vendor)...)
		}
		buf.pop(mark)
	}
	return jdks
}

// scanVendor collects the children of the vendor directory held in buf.
// buf is returned unchanged.
func (inv *Inventory) scanVendor(buf *pathBuf, vendor Vendor) []JDK {
	var jdks []JDK
	for _, entry := range inv.readDir(buf.String()) {
		mark := buf.push(entry.Name())
		if inv.isDir(buf.String(), entry) && inv.hasLayout(buf) {
			jdks = append(jdks, JDK{
				Version: entry.Name(),
				Path:    buf.String(),
				Vendor:  vendor.DisplayName,
			})
		} else {
			inv.logger.Debug("not a jdk", "path", buf.String())
		}
		buf.pop(mark)
	}
	return jdks
}

func (inv *Inventory) hasLayout(buf *pathBuf) bool {
	for _, dir := range layout {
		mark := buf.push(dir)
		ok := inv.dirExists(buf.String())
		buf.pop(mark)
		if !ok {
			return false
		}
	}
	return true
}

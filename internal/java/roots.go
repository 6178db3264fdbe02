package java

import "fmt"

// Location is a well-known system directory.
type Location int

const (
	LocationProfile Location = iota
	LocationProgramFiles
	LocationProgramFilesX86
)

func (l Location) String() string {
	switch l {
	case LocationProfile:
		return "profile"
	case LocationProgramFiles:
		return "program-files"
	case LocationProgramFilesX86:
		return "program-files-x86"
	}
	return fmt.Sprintf("location(%d)", int(l))
}

// SearchRoot is a directory holding vendor directories: a system location
// plus a path below it.
type SearchRoot struct {
	Location Location
	Subpath  string
}

// DefaultRoots are scanned on every inventory: ~/.jdks (where IDEs download
// JDKs) and both Program Files trees.
var DefaultRoots = []SearchRoot{
	{LocationProfile, ".jdks"},
	{LocationProgramFiles, "."},
	{LocationProgramFilesX86, "."},
}

// Locator resolves a Location to an absolute directory.
type Locator interface {
	Locate(loc Location) (string, error)
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(loc Location) (string, error)

func (f LocatorFunc) Locate(loc Location) (string, error) {
	return f(loc)
}

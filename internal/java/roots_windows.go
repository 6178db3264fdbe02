//go:build windows

package java

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/sys/windows"
)

// KnownFolders resolves locations with SHGetKnownFolderPath.
type KnownFolders struct{}

// SystemLocator returns the locator for this platform.
func SystemLocator() Locator {
	return KnownFolders{}
}

func (KnownFolders) Locate(loc Location) (string, error) {
	var id *windows.KNOWNFOLDERID
	switch loc {
	case LocationProfile:
		id = windows.FOLDERID_Profile
	case LocationProgramFiles:
		id = windows.FOLDERID_ProgramFiles
	case LocationProgramFilesX86:
		id = windows.FOLDERID_ProgramFilesX86
	default:
		return "", errors.Newf("unknown location %s", loc)
	}

	path, err := windows.KnownFolderPath(id, windows.KF_FLAG_DEFAULT)
	if err != nil {
		return "", errors.Wrapf(err, "locating %s", loc)
	}
	return path, nil
}

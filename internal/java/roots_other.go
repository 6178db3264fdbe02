//go:build !windows

package java

import (
	"os"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

type envLocator struct{}

// SystemLocator returns the locator for this platform. The profile is the
// home directory; Program Files only resolve when ProgramFiles and
// ProgramFiles(x86) are set, as under Wine.
func SystemLocator() Locator {
	return envLocator{}
}

func (envLocator) Locate(loc Location) (string, error) {
	var name string
	switch loc {
	case LocationProfile:
		if xdg.Home == "" {
			return "", errors.New("home directory not found")
		}
		return xdg.Home, nil
	case LocationProgramFiles:
		name = "ProgramFiles"
	case LocationProgramFilesX86:
		name = "ProgramFiles(x86)"
	default:
		return "", errors.Newf("unknown location %s", loc)
	}

	if dir := os.Getenv(name); dir != "" {
		return dir, nil
	}
	return "", errors.Newf("%s is not available on this system", loc)
}

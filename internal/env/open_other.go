//go:build !windows

package env

import "os"

// Open returns the file-backed store; there is no registry to use.
func Open(scope, storeFile string) (Store, error) {
	return NewFileStore(storeFile), nil
}

// IsAdmin reports whether the process runs as root.
func IsAdmin() bool {
	return os.Geteuid() == 0
}

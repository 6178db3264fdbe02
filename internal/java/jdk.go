package java

import "fmt"

// JDK is an installation found by an Inventory scan. Path identifies it.
type JDK struct {
	Version string // directory name under the vendor directory
	Path    string
	Vendor  string // vendor display name
}

func (j JDK) String() string {
	return fmt.Sprintf("%s (%s) %s", j.Version, j.Vendor, j.Path)
}

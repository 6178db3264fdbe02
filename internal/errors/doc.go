// Package errors defines the error kinds shared by the jdkswitch packages
// and the ExitError used by the command layer.
//
// Kinds are sentinels checked with [Is]:
//
//	if errors.Is(err, errors.ErrNotFound) {
//	    // nothing installed
//	}
//
// Missing optional resources (a search root, one unreadable directory
// entry) never surface as errors. Missing required resources surface as
// [ErrNotFound]; store and filesystem failures as [ErrIO]; failures of the
// java launcher lookup as [ErrProbe].
package errors

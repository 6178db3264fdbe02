// Package logging builds the slog loggers used by jdkswitch.
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(verbosity),
//		Format: logging.FormatText,
//	})
//
// Tests use [ForTest] so output only shows up on failure or with -v.
package logging

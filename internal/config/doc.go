// Package config reads config.yaml from the XDG config directory, applies
// JDKSWITCH_* environment overrides and defaults, and writes back the
// update bookkeeping.
package config

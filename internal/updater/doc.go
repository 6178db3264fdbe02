// Package updater implements self-update from GitHub releases.
package updater

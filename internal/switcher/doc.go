// Package switcher selects a JDK: it validates the home variable against
// the java launcher found on PATH, writes the home variable for a chosen
// JDK and reconciles PATH so that the chosen JDK's bin directory wins.
package switcher

package updater

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/creativeprojects/go-selfupdate"

	"jdkswitch/internal/theme"
)

// Choices offered by Prompt.
const (
	ActionUpdate = "update"
	ActionSkip   = "skip"
	ActionLater  = "later"
)

// Prompt asks whether to install release. Choosing skip records it.
func (u *Updater) Prompt(release *selfupdate.Release) (string, error) {
	sizeMB := float64(release.AssetByteSize) / 1024 / 1024
	description := fmt.Sprintf("Download size: %.1f MB\n\n%s", sizeMB, truncateNotes(release.ReleaseNotes, 400))

	var action string
	err := huh.NewSelect[string]().
		Title(theme.Subtitle.Render(fmt.Sprintf("Update available: %s → %s", u.current, release.Version()))).
		Description(theme.Faint.Render(description)).
		Options(
			huh.NewOption(theme.SuccessStyle.Render("Update now"), ActionUpdate),
			huh.NewOption(theme.InfoStyle.Render("Skip this version"), ActionSkip),
			huh.NewOption(theme.WarningStyle.Render("Remind me later"), ActionLater),
		).
		Value(&action).
		Run()
	if err != nil {
		return "", err
	}

	if action == ActionSkip {
		if err := u.Skip(release.Version()); err != nil {
			u.logger.Warn("failed to save skipped version", "error", err)
		}
	}
	return action, nil
}

// Notify prints a one-line notice about an available release.
func Notify(w io.Writer, current, latest string) {
	fmt.Fprintf(w, "\n%s %s → %s %s\n",
		theme.InfoStyle.Render("ℹ Update available:"),
		theme.Faint.Render(current),
		theme.CurrentStyle.Render(latest),
		theme.Faint.Render("(run 'jdkswitch update')"))
}

// ShowSuccess prints the post-update banner.
func ShowSuccess(w io.Writer, version string) {
	fmt.Fprintln(w, theme.SuccessBox.Render(theme.SuccessStyle.Render("✓ Updated to "+version)))
	fmt.Fprintln(w, theme.Faint.Render("Restart your terminal to use the new version."))
}

// truncateNotes shortens release notes to at most maxLen bytes, preferring
// a line or word break in the second half.
func truncateNotes(notes string, maxLen int) string {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return "See the release notes on GitHub for details."
	}
	if len(notes) <= maxLen {
		return notes
	}

	cut := notes[:maxLen]
	if i := strings.LastIndex(cut, "\n"); i > maxLen/2 {
		cut = cut[:i]
	} else if i := strings.LastIndex(cut, " "); i > maxLen/2 {
		cut = cut[:i]
	}
	return cut + "..."
}
